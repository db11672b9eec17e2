package model

// Box represents an axis-aligned bounding box in a top-left origin
// coordinate system (Y increases downward).
//
// Valid boxes satisfy X0 <= X1 and Y0 <= Y1. Producers are responsible for
// this invariant; the library does not repair malformed boxes.
type Box struct {
	X0 float64 // Left edge
	Y0 float64 // Top edge
	X1 float64 // Right edge
	Y1 float64 // Bottom edge
}

// NewBox creates a box from its four edge coordinates.
func NewBox(x0, y0, x1, y1 float64) Box {
	return Box{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Y1 - b.Y0
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 {
	return b.X0 + b.Width()/2
}

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 {
	return b.Y0 + b.Height()/2
}

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	return Box{
		X0: minFloat64(b.X0, other.X0),
		Y0: minFloat64(b.Y0, other.Y0),
		X1: maxFloat64(b.X1, other.X1),
		Y1: maxFloat64(b.Y1, other.Y1),
	}
}

// Contains checks whether a point lies inside the box (edges inclusive).
func (b Box) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Intersects checks whether two boxes overlap.
func (b Box) Intersects(other Box) bool {
	return !(b.X1 < other.X0 ||
		b.X0 > other.X1 ||
		b.Y1 < other.Y0 ||
		b.Y0 > other.Y1)
}

// VerticalOverlap returns the length of the Y-range shared by two boxes,
// or 0 if they do not overlap vertically.
func (b Box) VerticalOverlap(other Box) float64 {
	overlap := minFloat64(b.Y1, other.Y1) - maxFloat64(b.Y0, other.Y0)
	if overlap < 0 {
		return 0
	}
	return overlap
}

// IsDegenerate returns true if the box has zero width or zero height.
// Degenerate boxes still participate in unions but are guarded against
// in ratio computations.
func (b Box) IsDegenerate() bool {
	return b.Width() == 0 || b.Height() == 0
}

// BoxUnion returns the bounding union of a set of boxes.
// Returns the zero box for an empty set.
func BoxUnion(boxes []Box) Box {
	if len(boxes) == 0 {
		return Box{}
	}

	result := boxes[0]
	for _, b := range boxes[1:] {
		result = result.Union(b)
	}
	return result
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
