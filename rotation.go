package procpart

import (
	"math"

	"github.com/soypat/procpart/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	vecUp    = r3.Vec{Y: 1}
	vecDown  = r3.Vec{Y: -1}
	vecRight = r3.Vec{X: 1}
	vecLeft  = r3.Vec{X: -1}

	identityRotation = r3.Rotation{Real: 1}
)

// fromToRotation returns the shortest arc rotation that takes the direction
// of a onto the direction of b. Zero length arguments yield the identity.
func fromToRotation(a, b r3.Vec) r3.Rotation {
	// is either vector == 0?
	if d3.EqualWithin(a, r3.Vec{}, epsilon) || d3.EqualWithin(b, r3.Vec{}, epsilon) {
		return identityRotation
	}
	a = r3.Unit(a)
	b = r3.Unit(b)
	cos := Clamp(r3.Dot(a, b), -1, 1)
	// are the vectors the same?
	if d3.EqualWithin(a, b, epsilon) {
		return identityRotation
	}
	// are the vectors opposite (180 degrees apart)?
	if d3.EqualWithin(r3.Scale(-1, a), b, epsilon) {
		axis := r3.Cross(a, vecRight)
		if r3.Norm2(axis) < epsilon {
			axis = r3.Cross(a, r3.Vec{Z: 1})
		}
		return r3.NewRotation(pi, r3.Unit(axis))
	}
	return r3.NewRotation(math.Acos(cos), r3.Unit(r3.Cross(a, b)))
}

// lookRotation returns the rotation whose +Z axis points along forward and
// whose +Y axis lies in the plane of forward and upward.
func lookRotation(forward, upward r3.Vec) r3.Rotation {
	if d3.EqualWithin(forward, r3.Vec{}, epsilon) {
		return identityRotation
	}
	z := r3.Unit(forward)
	x := r3.Cross(upward, z)
	if r3.Norm2(x) < epsilon {
		// upward is parallel to forward, any perpendicular will do.
		return fromToRotation(r3.Vec{Z: 1}, z)
	}
	x = r3.Unit(x)
	y := r3.Cross(z, x)
	return rotationFromBasis(x, y, z)
}

// rotationFromBasis converts the orthonormal basis given as matrix columns
// x, y, z into a unit quaternion.
func rotationFromBasis(x, y, z r3.Vec) r3.Rotation {
	var q r3.Rotation
	trace := x.X + y.Y + z.Z
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q.Real = 0.25 / s
		q.Imag = (y.Z - z.Y) * s
		q.Jmag = (z.X - x.Z) * s
		q.Kmag = (x.Y - y.X) * s
	case x.X > y.Y && x.X > z.Z:
		s := 2 * math.Sqrt(1+x.X-y.Y-z.Z)
		q.Real = (y.Z - z.Y) / s
		q.Imag = 0.25 * s
		q.Jmag = (y.X + x.Y) / s
		q.Kmag = (z.X + x.Z) / s
	case y.Y > z.Z:
		s := 2 * math.Sqrt(1+y.Y-x.X-z.Z)
		q.Real = (z.X - x.Z) / s
		q.Imag = (y.X + x.Y) / s
		q.Jmag = 0.25 * s
		q.Kmag = (z.Y + y.Z) / s
	default:
		s := 2 * math.Sqrt(1+z.Z-x.X-y.Y)
		q.Real = (x.Y - y.X) / s
		q.Imag = (z.X + x.Z) / s
		q.Jmag = (z.Y + y.Z) / s
		q.Kmag = 0.25 * s
	}
	return q
}

// sideNormal returns the outward horizontal unit normal at angle theta,
// measured from +X towards -Z.
func sideNormal(theta float64) r3.Vec {
	return r3.NewRotation(theta, vecUp).Rotate(vecRight)
}

// sideOrientation returns the rotation taking +Y onto the outward normal at theta.
func sideOrientation(theta float64) (r3.Rotation, r3.Vec) {
	normal := sideNormal(theta)
	return fromToRotation(vecUp, normal), normal
}

// Orientations given to cap attachments. The up vector keeps textures aligned.
var (
	topOrientation    = lookRotation(vecUp, vecRight)
	bottomOrientation = lookRotation(vecDown, vecLeft)
)
