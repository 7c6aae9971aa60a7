package procpart

import (
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Scene identifies the host context a shape is updated in.
type Scene uint8

const (
	SceneEditor Scene = iota
	SceneFlight
	// SceneLoading is active while the host builds part icons and prefabs.
	SceneLoading
)

func (s Scene) String() string {
	switch s {
	case SceneEditor:
		return "editor"
	case SceneFlight:
		return "flight"
	case SceneLoading:
		return "loading"
	}
	return "unknown"
}

// Tangent is a surface tangent direction and its bitangent sign.
type Tangent struct {
	Dir ms3.Vec
	W   float32
}

// MeshSink receives generated geometry. Slices are only valid for the
// duration of the call.
type MeshSink interface {
	Write(vertices, normals []ms3.Vec, tangents []Tangent, uvs []ms2.Vec, triangles []int)
}

// AttachNode is a host connection point whose strength follows the shape size.
type AttachNode struct {
	ID             string
	Size           int
	BreakingForce  float64
	BreakingTorque float64
}

// AttachNodes looks up connection points by identifier. It returns nil
// when the host has no node with the given id.
type AttachNodes interface {
	AttachNode(id string) *AttachNode
}

// Listener receives notifications of shape changes the host must react to.
type Listener interface {
	AttachNodeSizeChanged(node *AttachNode, diameter, area float64)
	TextureScaleChanged(surface, material string, scale r2.Vec)
	ModelAndColliderChanged()
	RefreshEditor()
}

// PropUpdater is implemented by host modules that depend on the shape's
// dimensions and must be refreshed after every rebuild.
type PropUpdater interface {
	UpdateProp()
}

// Follower is a transform kept on the shape's surface. Positions and
// rotations are local to the shape.
type Follower interface {
	LocalPosition() r3.Vec
	SetLocalPosition(r3.Vec)
	LocalRotation() r3.Rotation
	SetLocalRotation(r3.Rotation)
	// SetLocalRotationReference sets the rotation the follower's own
	// orientation is measured against.
	SetLocalRotationReference(r3.Rotation)
	// ForceUpdate propagates a local change immediately.
	ForceUpdate()
}

// Meshes are the destinations mesh generation writes into.
type Meshes struct {
	Sides, Ends         MeshSink
	SidesIcon, EndsIcon MeshSink
	Collider            MeshSink
}

// Host groups the collaborators an Octagon reports to. Any field may be
// left nil.
type Host struct {
	// CurrentScene reports the active scene. Nil means SceneEditor.
	CurrentScene func() Scene
	Nodes        AttachNodes
	Meshes       Meshes
	Listener     Listener
	Props        []PropUpdater
}

func (h *Host) scene() Scene {
	if h.CurrentScene == nil {
		return SceneEditor
	}
	return h.CurrentScene()
}

func (h *Host) sideSink() MeshSink {
	if h.scene() == SceneLoading {
		return h.Meshes.SidesIcon
	}
	return h.Meshes.Sides
}

func (h *Host) endSink() MeshSink {
	if h.scene() == SceneLoading {
		return h.Meshes.EndsIcon
	}
	return h.Meshes.Ends
}

// nopListener discards notifications.
type nopListener struct{}

func (nopListener) AttachNodeSizeChanged(*AttachNode, float64, float64) {}
func (nopListener) TextureScaleChanged(string, string, r2.Vec)          {}
func (nopListener) ModelAndColliderChanged()                            {}
func (nopListener) RefreshEditor()                                      {}
