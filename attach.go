package procpart

import (
	"errors"
	"log/slog"
	"math"
	"slices"

	"github.com/soypat/procpart/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnknownAttachment is returned for handles that were never issued by
// the shape or were already removed.
var ErrUnknownAttachment = errors.New("unknown attachment")

// Location is the surface an attachment is placed on.
type Location uint8

const (
	Top Location = iota
	Bottom
	Side
)

func (l Location) String() string {
	switch l {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Side:
		return "side"
	}
	return "unknown"
}

// Attachment identifies a follower tracked by a shape. Handles stay valid
// until removed and are never reused.
type Attachment int

// AttachmentInfo describes where a tracked follower lies on the surface.
// For caps UV is the offset in the cap's plane, for sides it is the
// angular position and the height fraction measured from the bottom.
type AttachmentInfo struct {
	Follower Follower
	Location Location
	UV       r2.Vec
}

// AddAttachment starts tracking f at its current local position. A
// normalized position lies on the surface of a shape of unit diameter and
// unit length. The shape regenerates on the next UpdateShape.
func (o *Octagon) AddAttachment(f Follower, normalized bool) (Attachment, error) {
	if f == nil {
		return -1, errors.New("nil follower")
	}
	pos := f.LocalPosition()
	if !d3.IsFinite(pos) {
		return -1, errors.New("follower position not finite")
	}
	var a AttachmentInfo
	a.Follower = f
	if normalized {
		o.classifyNormalized(&a, pos)
	} else {
		o.classify(&a, pos)
	}

	handle := Attachment(len(o.arena))
	o.arena = append(o.arena, &a)
	switch a.Location {
	case Top:
		f.SetLocalRotationReference(topOrientation)
		o.top = append(o.top, handle)
	case Bottom:
		f.SetLocalRotationReference(bottomOrientation)
		o.bottom = append(o.bottom, handle)
	case Side:
		// Insert before the first attachment that is strictly higher.
		at := slices.IndexFunc(o.side, func(h Attachment) bool {
			return o.arena[h].UV.Y > a.UV.Y
		})
		if at < 0 {
			at = len(o.side)
		}
		o.side = slices.Insert(o.side, at, handle)
	}
	o.dirty = true
	o.log.Debug("add attachment",
		slog.Int("handle", int(handle)),
		slog.Bool("normalized", normalized),
		slog.String("location", a.Location.String()),
		slog.Any("uv", a.UV),
	)
	return handle, nil
}

// classify places an attachment given in the shape's local space.
// Positions steeper than the shape's corner are on a cap.
func (o *Octagon) classify(a *AttachmentInfo, pos r3.Vec) {
	p := o.params
	m := p.Metrics()
	heightToRadius := pos.Y * pos.Y / (pos.X*pos.X + pos.Z*pos.Z)
	cornerHeightToRadius := p.Length * p.Length / (p.Diameter * p.Diameter)
	if heightToRadius > cornerHeightToRadius {
		a.UV = r2.Vec{X: pos.X/m.Radius + 0.5, Y: pos.Z/m.Radius + 0.5}
		a.Location = capLocation(pos.Y)
		return
	}
	a.Location = Side
	a.UV = r2.Vec{X: angularPosition(pos), Y: pos.Y/p.Length + 0.5}
	rot, _ := sideOrientation(math.Atan2(-pos.Z, pos.X))
	a.Follower.SetLocalRotationReference(rot)
}

// classifyNormalized places an attachment given on the unit shape.
func (o *Octagon) classifyNormalized(a *AttachmentInfo, pos r3.Vec) {
	// Transformed positions may be slightly off the cap.
	if math.Abs(math.Abs(pos.Y)-0.5) < 1e-5 {
		a.UV = r2.Vec{X: pos.X + 0.5, Y: pos.Z + 0.5}
		a.Location = capLocation(pos.Y)
		return
	}
	a.Location = Side
	a.UV = r2.Vec{X: angularPosition(pos), Y: 0.5 - pos.Y}
	a.Follower.SetLocalRotationReference(fromToRotation(vecUp, r3.Vec{X: 2 * pos.X, Z: 2 * pos.Z}))
}

func capLocation(y float64) Location {
	if y > 0 {
		return Top
	}
	return Bottom
}

// RemoveAttachment stops tracking a and returns its follower. With normalize
// set the follower is moved onto the unit shape at its surface position.
func (o *Octagon) RemoveAttachment(a Attachment, normalize bool) (Follower, error) {
	if a < 0 || int(a) >= len(o.arena) || o.arena[a] == nil {
		return nil, ErrUnknownAttachment
	}
	att := o.arena[a]
	o.arena[a] = nil
	f := att.Follower
	u, v := att.UV.X, att.UV.Y
	switch att.Location {
	case Top:
		o.top = deleteHandle(o.top, a)
		if normalize {
			f.SetLocalPosition(r3.Vec{X: u - 0.5, Y: 0.5, Z: v - 0.5})
		}
	case Bottom:
		o.bottom = deleteHandle(o.bottom, a)
		if normalize {
			f.SetLocalPosition(r3.Vec{X: u - 0.5, Y: -0.5, Z: v - 0.5})
		}
	case Side:
		o.side = deleteHandle(o.side, a)
		if normalize {
			rot, normal := sideOrientation(angleOf(u))
			f.SetLocalPosition(r3.Vec{X: normal.X * 0.5, Y: 0.5 - v, Z: normal.Z * 0.5})
			f.SetLocalRotation(rot)
		}
	}
	if normalize {
		f.ForceUpdate()
	}
	o.log.Debug("remove attachment", slog.Int("handle", int(a)), slog.Bool("normalize", normalize))
	return f, nil
}

func deleteHandle(list []Attachment, a Attachment) []Attachment {
	if i := slices.Index(list, a); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}

// Attachments returns the handles tracked on a surface in order. Side
// attachments are ordered by height from the bottom.
func (o *Octagon) Attachments(loc Location) []Attachment {
	switch loc {
	case Top:
		return slices.Clone(o.top)
	case Bottom:
		return slices.Clone(o.bottom)
	case Side:
		return slices.Clone(o.side)
	}
	return nil
}

// AttachmentInfo returns the placement of a tracked attachment.
func (o *Octagon) AttachmentInfo(a Attachment) (AttachmentInfo, error) {
	if a < 0 || int(a) >= len(o.arena) || o.arena[a] == nil {
		return AttachmentInfo{}, ErrUnknownAttachment
	}
	return *o.arena[a], nil
}

// moveAttachments places every follower at its stored surface position on
// a shape of the given dimensions.
func (o *Octagon) moveAttachments(m DerivedMetrics) {
	for _, h := range o.top {
		o.moveCap(o.arena[h], m.Radius, m.HalfHeight)
	}
	for _, h := range o.bottom {
		o.moveCap(o.arena[h], m.Radius, -m.HalfHeight)
	}
	length := o.params.Length
	for _, h := range o.side {
		a := o.arena[h]
		theta := angleOf(a.UV.X)
		rot, normal := sideOrientation(theta)
		pos := r3.Vec{
			X: normal.X * m.Radius,
			Y: a.UV.Y*length - length/2,
			Z: normal.Z * m.Radius,
		}
		a.Follower.SetLocalPosition(pos)
		a.Follower.SetLocalRotation(rot)
		a.Follower.ForceUpdate()
		o.log.Debug("move side attachment", slog.Any("uv", a.UV), slog.Any("pos", pos), slog.Float64("theta_deg", RtoD(theta)))
	}
}

func (o *Octagon) moveCap(a *AttachmentInfo, radius, y float64) {
	pos := r3.Vec{X: (a.UV.X - 0.5) * radius, Y: y, Z: (a.UV.Y - 0.5) * radius}
	a.Follower.SetLocalPosition(pos)
	a.Follower.ForceUpdate()
	o.log.Debug("move cap attachment", slog.Any("uv", a.UV), slog.Any("pos", pos))
}
