package procpart

import "strconv"

// YMode selects how the height component of ShapeCoordinates is interpreted.
type YMode uint8

const (
	// YRelativeToShape scales Y by the shape's half height so that
	// -1 lies on the bottom cap and 1 on the top cap.
	YRelativeToShape YMode = iota
	// YOffsetFromCenter is an absolute height measured from the shape's center.
	YOffsetFromCenter
	// YOffsetFromBottom is an absolute height measured from the bottom cap.
	YOffsetFromBottom
	// YOffsetFromTop is an absolute height measured from the top cap.
	YOffsetFromTop
)

func (m YMode) String() string {
	switch m {
	case YRelativeToShape:
		return "relative-to-shape"
	case YOffsetFromCenter:
		return "offset-from-center"
	case YOffsetFromBottom:
		return "offset-from-bottom"
	case YOffsetFromTop:
		return "offset-from-top"
	}
	return "YMode(" + strconv.Itoa(int(m)) + ")"
}

// RMode selects how the radial component of ShapeCoordinates is interpreted.
type RMode uint8

const (
	// ROffsetFromCenter is an absolute distance from the shape's axis.
	ROffsetFromCenter RMode = iota
	// ROffsetFromRadius is an absolute distance from the shape's radius.
	ROffsetFromRadius
	// RRelativeToRadius scales R by the shape's radius.
	RRelativeToRadius
)

func (m RMode) String() string {
	switch m {
	case ROffsetFromCenter:
		return "offset-from-center"
	case ROffsetFromRadius:
		return "offset-from-radius"
	case RRelativeToRadius:
		return "relative-to-radius"
	}
	return "RMode(" + strconv.Itoa(int(m)) + ")"
}

// ShapeCoordinates is a cylindrical parametrization of a point relative to a
// shape. U is the angular position in [0,1) with 0 along +X, R the radial
// component and Y the height component, both interpreted according to their modes.
type ShapeCoordinates struct {
	U, R, Y    float64
	HeightMode YMode
	RadiusMode RMode
}

func (c ShapeCoordinates) String() string {
	return "ShapeCoordinates(u=" + strconv.FormatFloat(c.U, 'f', 4, 64) +
		" r=" + strconv.FormatFloat(c.R, 'f', 4, 64) + "/" + c.RadiusMode.String() +
		" y=" + strconv.FormatFloat(c.Y, 'f', 4, 64) + "/" + c.HeightMode.String() + ")"
}
