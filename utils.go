package procpart

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	pi       = math.Pi
	tau      = 2 * pi
	sqrt2    = 1.4142135623730951
	invSqrt2 = 0.7071067811865476
	epsilon  = 1e-12
)

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// Clamp x between a and b, assume a <= b
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Mix does a linear interpolation from x to y, a = [0,1]
func Mix(x, y, a float64) float64 {
	return x + (a * (y - x))
}

// Lerp is Mix with a clamped to [0,1].
func Lerp(x, y, a float64) float64 {
	return Mix(x, y, Clamp(a, 0, 1))
}

// InverseLerp returns where v lies between x and y as a fraction clamped to [0,1].
// It returns 0 when x == y.
func InverseLerp(x, y, v float64) float64 {
	if x == y {
		return 0
	}
	return Clamp((v-x)/(y-x), 0, 1)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// finiteOrZero returns x, or 0 if x is NaN or infinite.
func finiteOrZero(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return x
}

func vec32(v r3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func uv32(v r2.Vec) ms2.Vec {
	return ms2.Vec{X: float32(v.X), Y: float32(v.Y)}
}

// bad32 reports whether any component of v is NaN or infinite.
func bad32(v ms3.Vec) bool {
	return math32.IsNaN(v.X) || math32.IsInf(v.X, 0) ||
		math32.IsNaN(v.Y) || math32.IsInf(v.Y, 0) ||
		math32.IsNaN(v.Z) || math32.IsInf(v.Z, 0)
}
