package procpart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFromToRotation(t *testing.T) {
	vecs := []r3.Vec{
		{X: 1}, {Y: 1}, {Z: -1}, {X: 1, Y: 1, Z: 1}, {X: -3, Y: 0.2, Z: 0.5}, {Y: -2},
	}
	for _, a := range vecs {
		for _, b := range vecs {
			q := fromToRotation(a, b)
			got := q.Rotate(r3.Unit(a))
			assertVecWithin(t, r3.Unit(b), got, 1e-9)
		}
	}
	assert.Equal(t, identityRotation, fromToRotation(r3.Vec{}, vecUp))
	assert.Equal(t, identityRotation, fromToRotation(vecUp, vecUp))
}

func TestLookRotation(t *testing.T) {
	q := lookRotation(r3.Vec{X: 2}, vecUp)
	assertVecWithin(t, r3.Vec{X: 1}, q.Rotate(r3.Vec{Z: 1}), 1e-12)
	assertVecWithin(t, vecUp, q.Rotate(r3.Vec{Y: 1}), 1e-12)
	// Parallel up vector still points forward.
	q = lookRotation(vecUp, vecUp)
	assertVecWithin(t, vecUp, q.Rotate(r3.Vec{Z: 1}), 1e-12)
	assert.Equal(t, identityRotation, lookRotation(r3.Vec{}, vecUp))
}

func TestSideNormal(t *testing.T) {
	for _, u := range []float64{0, 0.125, 0.25, 0.5, 0.8} {
		theta := angleOf(u)
		n := sideNormal(theta)
		assertVecWithin(t, r3.Vec{X: math.Cos(theta), Z: -math.Sin(theta)}, n, 1e-12)
		assert.InDelta(t, u, angularPosition(n), 1e-12)
		q, normal := sideOrientation(theta)
		assert.Equal(t, n, normal)
		assertVecWithin(t, n, q.Rotate(vecUp), 1e-12)
	}
}
