package procpart

import (
	"errors"
	"log/slog"
	"math"

	"github.com/soypat/procpart/config"
	"github.com/soypat/procpart/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Dimensions of an octagon with unit diameter and unit length.
const (
	// NormSideLength is the length of one of the eight sides.
	NormSideLength     = 1 / (1 + sqrt2)
	NormHalfSideLength = NormSideLength / 2
	// NormSideOffset is the distance from a flat face to the corner of the
	// enclosing square.
	NormSideOffset = 0.5 - NormHalfSideLength
	NormRadius     = 0.5
	NormHalfHeight = 0.5
)

// ShapeParameters are the user editable dimensions of the prism. The
// axis of the prism is Y.
type ShapeParameters struct {
	Diameter float64 // distance between opposite flat faces
	Length   float64
}

// DerivedMetrics are dimensions computed from ShapeParameters.
type DerivedMetrics struct {
	HalfSideLength float64
	Radius         float64
	HalfHeight     float64
	SideOffset     float64
	Area           float64 // cross section area
	Volume         float64
}

// Metrics computes the derived dimensions of p.
func (p ShapeParameters) Metrics() DerivedMetrics {
	d, l := p.Diameter, p.Length
	m := DerivedMetrics{
		HalfSideLength: NormHalfSideLength * d,
		Radius:         NormRadius * d,
		HalfHeight:     NormHalfHeight * l,
		SideOffset:     NormSideOffset * d,
	}
	m.Area = d*d - m.SideOffset*m.SideOffset
	m.Volume = m.Area * l
	return m
}

// Volume returns the volume of a prism of diameter d and length l.
func Volume(d, l float64) float64 {
	off := d * NormSideOffset
	return (d*d - off*off) * l
}

// Corners returns the octagon's corners at height y. Consecutive corners
// share a side and the side between corner i-1 and i faces FaceNormals[i].
func (m DerivedMetrics) Corners(y float64) [8]r3.Vec {
	h, r := m.HalfSideLength, m.Radius
	return [8]r3.Vec{
		{X: -h, Y: y, Z: -r},
		{X: h, Y: y, Z: -r},
		{X: r, Y: y, Z: -h},
		{X: r, Y: y, Z: h},
		{X: h, Y: y, Z: r},
		{X: -h, Y: y, Z: r},
		{X: -r, Y: y, Z: h},
		{X: -r, Y: y, Z: -h},
	}
}

// FaceNormals are the outward unit normals of the eight sides.
var FaceNormals = [8]r3.Vec{
	{X: -invSqrt2, Z: -invSqrt2},
	{Z: -1},
	{X: invSqrt2, Z: -invSqrt2},
	{X: 1},
	{X: invSqrt2, Z: invSqrt2},
	{Z: 1},
	{X: -invSqrt2, Z: invSqrt2},
	{X: -1},
}

// Octagon is a procedurally generated octagonal prism. Parameter changes
// are staged with SetDiameter and SetLength and take effect on UpdateShape,
// which regenerates meshes and moves attached followers.
// Octagon is not safe for concurrent use.
type Octagon struct {
	cfg  config.Config
	host Host
	log  *slog.Logger

	params ShapeParameters
	// old are the parameters of the last update.
	old    ShapeParameters
	volume float64
	dirty  bool

	arena  []*AttachmentInfo
	top    []Attachment
	bottom []Attachment
	side   []Attachment
}

// NewOctagon returns an octagon with the configuration's initial dimensions.
// The shape has no geometry until the first call to UpdateShape.
// A nil logger uses slog.Default.
func NewOctagon(cfg config.Config, host Host, logger *slog.Logger) (*Octagon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if host.Listener == nil {
		host.Listener = nopListener{}
	}
	if cfg.SliderPrecision == 0 {
		cfg.SliderPrecision = defaultSliderPrecision
	}
	o := &Octagon{
		cfg:    cfg,
		host:   host,
		log:    logger.With(slog.String("shape", "octagon")),
		params: ShapeParameters{Diameter: cfg.InitialDiameter, Length: cfg.InitialLength},
	}
	return o, nil
}

// SetDiameter stages a new diameter.
func (o *Octagon) SetDiameter(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return errors.New("diameter must be a non-negative finite number")
	}
	o.params.Diameter = d
	return nil
}

// SetLength stages a new length.
func (o *Octagon) SetLength(l float64) error {
	if math.IsNaN(l) || math.IsInf(l, 0) || l < 0 {
		return errors.New("length must be a non-negative finite number")
	}
	o.params.Length = l
	return nil
}

// Parameters returns the staged parameters.
func (o *Octagon) Parameters() ShapeParameters { return o.params }

// Metrics returns the dimensions derived from the staged parameters.
func (o *Octagon) Metrics() DerivedMetrics { return o.params.Metrics() }

// Volume returns the volume computed by the last update.
func (o *Octagon) Volume() float64 { return o.volume }

// Config returns the configuration the shape was built with.
func (o *Octagon) Config() config.Config { return o.cfg }

// Bounds returns the axis aligned box enclosing the shape.
func (o *Octagon) Bounds() d3.Box {
	m := o.Metrics()
	top, bottom := m.Corners(m.HalfHeight), m.Corners(-m.HalfHeight)
	return d3.Set(append(top[:], bottom[:]...)).Bounds()
}

// ApplyBounds clamps the staged parameters into their configured ranges.
// Ranges that admit a single value leave the parameter as is.
func (o *Octagon) ApplyBounds() {
	if !o.cfg.Diameter.Fixed() {
		o.params.Diameter = o.cfg.Diameter.Clamp(o.params.Diameter)
	}
	if !o.cfg.Length.Fixed() {
		o.params.Length = o.cfg.Length.Clamp(o.params.Length)
	}
}

// FromCylindricCoordinates converts shape coordinates to a local position.
func (o *Octagon) FromCylindricCoordinates(c ShapeCoordinates) r3.Vec {
	m := o.Metrics()
	var pos r3.Vec
	switch c.HeightMode {
	case YRelativeToShape:
		pos.Y = m.HalfHeight * c.Y
	case YOffsetFromCenter:
		pos.Y = c.Y
	case YOffsetFromBottom:
		pos.Y = c.Y - m.HalfHeight
	case YOffsetFromTop:
		pos.Y = c.Y + m.HalfHeight
	default:
		o.log.Error("unhandled height mode", slog.String("mode", c.HeightMode.String()))
	}

	r := c.R
	switch c.RadiusMode {
	case ROffsetFromRadius:
		r += m.Radius
	case RRelativeToRadius:
		r *= m.Radius
	}
	theta := Lerp(0, tau, c.U)
	pos.X = math.Cos(theta) * r
	pos.Z = -math.Sin(theta) * r
	o.log.Debug("from cylindric", slog.String("coords", c.String()), slog.Any("pos", pos))
	return pos
}

// ToCylindricCoordinates converts a local position to shape coordinates
// interpreted with the given modes. Results undefined because of a
// degenerate shape are zero.
func (o *Octagon) ToCylindricCoordinates(pos r3.Vec, height YMode, radius RMode) ShapeCoordinates {
	m := o.Metrics()
	c := ShapeCoordinates{HeightMode: height, RadiusMode: radius}
	switch height {
	case YRelativeToShape:
		c.Y = pos.Y / m.HalfHeight
		if math.IsNaN(c.Y) {
			c.Y = 0
		}
	case YOffsetFromCenter:
		c.Y = pos.Y
	case YOffsetFromBottom:
		c.Y = pos.Y + m.HalfHeight
	case YOffsetFromTop:
		c.Y = pos.Y - m.HalfHeight
	default:
		o.log.Error("unhandled height mode", slog.String("mode", height.String()))
	}

	c.U = angularPosition(pos)
	dist := r3.Norm(d3.Horizontal(pos))
	switch radius {
	case ROffsetFromCenter:
		c.R = dist
	case ROffsetFromRadius:
		c.R = finiteOrZero(dist - m.Radius)
	default:
		c.R = finiteOrZero(dist / m.Radius)
	}
	o.log.Debug("to cylindric", slog.Any("pos", pos), slog.String("coords", c.String()))
	return c
}

// angularPosition returns the U coordinate in [0,1) of a position around the Y axis.
func angularPosition(pos r3.Vec) float64 {
	theta := math.Atan2(-pos.Z, pos.X)
	u := math.Mod(InverseLerp(-pi, pi, theta)+0.5, 1)
	if math.IsNaN(u) {
		return 0
	}
	return u
}

// angleOf returns the angle in radians of angular position u.
func angleOf(u float64) float64 {
	return Lerp(0, tau, u)
}

// UpdateShape applies staged parameters. Nothing happens unless force is
// set, parameters changed since the last update or attachments were added.
func (o *Octagon) UpdateShape(force bool) {
	if !force && !o.dirty && o.params == o.old {
		return
	}
	o.recalculateVolume()
	m := o.Metrics()
	o.log.Debug("update shape",
		slog.Float64("diameter", o.params.Diameter),
		slog.Float64("length", o.params.Length),
		slog.Float64("volume", o.volume),
	)

	o.updateNode(o.cfg.TopNode, m)
	o.updateNode(o.cfg.BottomNode, m)
	o.moveAttachments(m)

	o.writeSideMesh(m)
	o.writeEndMesh(m)
	o.writeColliderMesh(m)

	for _, p := range o.host.Props {
		p.UpdateProp()
	}
	o.old = o.params
	o.dirty = false
	o.host.Listener.ModelAndColliderChanged()
}

// updateNode resizes a connection point to match the diameter.
func (o *Octagon) updateNode(id string, m DerivedMetrics) {
	if o.host.Nodes == nil {
		return
	}
	node := o.host.Nodes.AttachNode(id)
	if node == nil {
		return
	}
	d := o.params.Diameter
	size := 0
	if step := o.cfg.Diameter.LargeStep; step > 0 {
		size = int(d / step)
	}
	size = min(size, 3)
	strength := math.Max(50*float64(size*size), 50)
	node.Size = size
	node.BreakingForce = strength
	node.BreakingTorque = strength
	o.host.Listener.AttachNodeSizeChanged(node, d, m.Area)
	o.host.Listener.TextureScaleChanged(id, o.cfg.EndsMaterial, r2.Vec{X: d, Y: d})
}
