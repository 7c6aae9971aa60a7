// Package follow implements transforms that are kept on the surface of a
// procedural part by the part itself.
package follow

import (
	"github.com/soypat/procpart/internal/d3"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a named object placed in the local space of a parent. Its
// world transform is only recomputed by ForceUpdate or SetParent.
type Transform struct {
	name   string
	parent d3.Transform
	world  d3.Transform

	pos r3.Vec
	rot r3.Rotation
	ref r3.Rotation

	updates int
}

// New returns a transform at local position pos with an identity parent.
func New(name string, pos r3.Vec) *Transform {
	identity := r3.Rotation{Real: 1}
	t := &Transform{name: name, pos: pos, rot: identity, ref: identity}
	t.refresh()
	return t
}

func (t *Transform) Name() string { return t.name }

func (t *Transform) LocalPosition() r3.Vec { return t.pos }

func (t *Transform) SetLocalPosition(p r3.Vec) { t.pos = p }

func (t *Transform) LocalRotation() r3.Rotation { return t.rot }

func (t *Transform) SetLocalRotation(q r3.Rotation) { t.rot = q }

// SetLocalRotationReference sets the orientation ObjectRotation is measured from.
func (t *Transform) SetLocalRotationReference(q r3.Rotation) { t.ref = q }

// RotationReference returns the last reference set.
func (t *Transform) RotationReference() r3.Rotation { return t.ref }

// ObjectRotation returns the local rotation relative to the rotation reference.
func (t *Transform) ObjectRotation() r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Conj(quat.Number(t.ref)), quat.Number(t.rot)))
}

// ForceUpdate recomputes the world transform from the local one.
func (t *Transform) ForceUpdate() {
	t.refresh()
	t.updates++
}

// Updates returns how many times ForceUpdate was called.
func (t *Transform) Updates() int { return t.updates }

// SetParent places the local space in the world.
func (t *Transform) SetParent(position, scale r3.Vec, q r3.Rotation) {
	t.parent = d3.ComposeTransform(position, scale, q)
	t.refresh()
}

// WorldPosition returns the position computed by the last update.
func (t *Transform) WorldPosition() r3.Vec { return t.world.Translation() }

// WorldDirection returns the local direction v in world space as of the last update.
func (t *Transform) WorldDirection(v r3.Vec) r3.Vec { return t.world.Direction(v) }

// SetWorldPosition moves the transform so it lies at p in world space.
func (t *Transform) SetWorldPosition(p r3.Vec) {
	t.pos = t.parent.Inv().Transform(p)
	t.refresh()
}

func (t *Transform) refresh() {
	t.world = t.parent.Mul(d3.ComposeTransform(t.pos, d3.Elem(1), t.rot))
}
