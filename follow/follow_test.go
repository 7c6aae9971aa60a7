package follow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func assertVec(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X")
	assert.InDelta(t, want.Y, got.Y, tol, "Y")
	assert.InDelta(t, want.Z, got.Z, tol, "Z")
}

func TestWorldPositionRefreshesOnForceUpdate(t *testing.T) {
	f := New("tank", r3.Vec{X: 1})
	f.SetParent(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Rotation{Real: 1})
	assertVec(t, r3.Vec{X: 2, Y: 2, Z: 3}, f.WorldPosition())

	f.SetLocalPosition(r3.Vec{Y: 1})
	assertVec(t, r3.Vec{X: 2, Y: 2, Z: 3}, f.WorldPosition())
	assert.Zero(t, f.Updates())

	f.ForceUpdate()
	assertVec(t, r3.Vec{X: 1, Y: 3, Z: 3}, f.WorldPosition())
	assert.Equal(t, 1, f.Updates())
	assert.Equal(t, "tank", f.Name())
}

func TestRotatedParent(t *testing.T) {
	f := New("", r3.Vec{X: 1})
	f.SetParent(r3.Vec{}, r3.Vec{X: 2, Y: 2, Z: 2}, r3.NewRotation(math.Pi/2, r3.Vec{Y: 1}))
	// Quarter turn about +Y takes +X to -Z.
	assertVec(t, r3.Vec{Z: -2}, f.WorldPosition())

	f.SetWorldPosition(r3.Vec{X: 4})
	assertVec(t, r3.Vec{Z: 2}, f.LocalPosition())
	assertVec(t, r3.Vec{X: 4}, f.WorldPosition())
}

func TestObjectRotation(t *testing.T) {
	f := New("", r3.Vec{})
	q := r3.NewRotation(0.3, r3.Vec{Z: 1})
	f.SetLocalRotation(q)
	f.SetLocalRotationReference(q)
	got := f.ObjectRotation()
	assert.InDelta(t, 1, math.Abs(got.Real), tol)
	assert.InDelta(t, 0, got.Imag, tol)
	assert.InDelta(t, 0, got.Jmag, tol)
	assert.InDelta(t, 0, got.Kmag, tol)
	assert.Equal(t, q, f.RotationReference())

	f.ForceUpdate()
	d := f.WorldDirection(r3.Vec{X: 1})
	assertVec(t, r3.Vec{X: math.Cos(0.3), Y: math.Sin(0.3)}, d)
}
