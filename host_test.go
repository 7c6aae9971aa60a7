package procpart

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/procpart/config"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type textureEvent struct {
	surface, material string
	scale             r2.Vec
}

type nodeEvent struct {
	id             string
	diameter, area float64
}

type recorder struct {
	nodes    []nodeEvent
	textures []textureEvent
	changed  int
	refresh  int
}

func (r *recorder) AttachNodeSizeChanged(n *AttachNode, diameter, area float64) {
	r.nodes = append(r.nodes, nodeEvent{id: n.ID, diameter: diameter, area: area})
}

func (r *recorder) TextureScaleChanged(surface, material string, scale r2.Vec) {
	r.textures = append(r.textures, textureEvent{surface: surface, material: material, scale: scale})
}

func (r *recorder) ModelAndColliderChanged() { r.changed++ }
func (r *recorder) RefreshEditor()           { r.refresh++ }

type sink struct {
	writes int
	mesh   MeshBuffer
}

func (s *sink) Write(vertices, normals []ms3.Vec, tangents []Tangent, uvs []ms2.Vec, triangles []int) {
	s.writes++
	s.mesh = MeshBuffer{
		Vertices:  append([]ms3.Vec(nil), vertices...),
		Normals:   append([]ms3.Vec(nil), normals...),
		Tangents:  append([]Tangent(nil), tangents...),
		UVs:       append([]ms2.Vec(nil), uvs...),
		Triangles: append([]int(nil), triangles...),
	}
}

type nodeMap map[string]*AttachNode

func (m nodeMap) AttachNode(id string) *AttachNode { return m[id] }

type propCounter int

func (p *propCounter) UpdateProp() { *p++ }

type testHost struct {
	Host
	rec                              *recorder
	sides, ends, sidesIcon, endsIcon *sink
	collider                         *sink
	nodes                            nodeMap
	prop                             *propCounter
	current                          Scene
}

func newTestHost() *testHost {
	th := &testHost{
		rec:       &recorder{},
		sides:     &sink{},
		ends:      &sink{},
		sidesIcon: &sink{},
		endsIcon:  &sink{},
		collider:  &sink{},
		nodes:     nodeMap{"top": {ID: "top"}, "bottom": {ID: "bottom"}},
		prop:      new(propCounter),
	}
	th.Host = Host{
		CurrentScene: func() Scene { return th.current },
		Nodes:        th.nodes,
		Meshes: Meshes{
			Sides:     th.sides,
			Ends:      th.ends,
			SidesIcon: th.sidesIcon,
			EndsIcon:  th.endsIcon,
			Collider:  th.collider,
		},
		Listener: th.rec,
		Props:    []PropUpdater{th.prop},
	}
	return th
}

func newTestOctagon(t *testing.T, cfg config.Config, th *testHost) *Octagon {
	t.Helper()
	o, err := NewOctagon(cfg, th.Host, nil)
	require.NoError(t, err)
	return o
}

func testConfig(d, l float64) config.Config {
	cfg := config.Default()
	cfg.InitialDiameter = d
	cfg.InitialLength = l
	return cfg
}

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
