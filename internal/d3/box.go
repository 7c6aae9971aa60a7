package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d axis aligned bounding box.
type Box r3.Box

// Equals test the equality of 3d boxes.
func (a Box) Equals(b Box, tol float64) bool {
	return EqualWithin(a.Min, b.Min, tol) && EqualWithin(a.Max, b.Max, tol)
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Center returns the center of a 3d box.
func (a Box) Center() r3.Vec {
	return r3.Add(a.Min, r3.Scale(0.5, a.Size()))
}

// Contains checks if the 3d box contains the given vector (considering bounds as inside).
// tol enlarges the box on every side.
func (a Box) Contains(v r3.Vec, tol float64) bool {
	return a.Min.X-tol <= v.X && a.Min.Y-tol <= v.Y && a.Min.Z-tol <= v.Z &&
		v.X <= a.Max.X+tol && v.Y <= a.Max.Y+tol && v.Z <= a.Max.Z+tol
}
