package geom

// Rect2 is an axis-aligned rectangle. (X0, Y0) is the lower-left corner and
// (X1, Y1) the upper-right one; callers keep X0 <= X1 and Y0 <= Y1.
type Rect2 struct {
	X0 float32 `json:"x0"`
	Y0 float32 `json:"y0"`
	X1 float32 `json:"x1"`
	Y1 float32 `json:"y1"`
}

// Side names the face of a rectangle that was struck
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideBottom
	SideTop
)

// String returns the side name
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideTop:
		return "top"
	default:
		return "none"
	}
}

// FromPointAndDimensions builds a rectangle whose lower-left corner is origin
func FromPointAndDimensions(origin Vector2, width, height float32) Rect2 {
	return Rect2{
		X0: origin.X,
		Y0: origin.Y,
		X1: origin.X + width,
		Y1: origin.Y + height,
	}
}

// FromPoints builds a rectangle from its lower-left and upper-right corners
func FromPoints(lowerLeft, upperRight Vector2) Rect2 {
	return Rect2{X0: lowerLeft.X, Y0: lowerLeft.Y, X1: upperRight.X, Y1: upperRight.Y}
}

// BoundingRect returns the smallest rectangle covering a and b
func BoundingRect(a, b Rect2) Rect2 {
	return FromPoints(Min(a.LowerLeft(), b.LowerLeft()), Max(a.UpperRight(), b.UpperRight()))
}

// Translate returns r offset by t. r itself is not modified.
func (r Rect2) Translate(t Vector2) Rect2 {
	return Rect2{
		X0: r.X0 + t.X,
		Y0: r.Y0 + t.Y,
		X1: r.X1 + t.X,
		Y1: r.Y1 + t.Y,
	}
}

func (r Rect2) LowerLeft() Vector2  { return Vector2{X: r.X0, Y: r.Y0} }
func (r Rect2) LowerRight() Vector2 { return Vector2{X: r.X1, Y: r.Y0} }
func (r Rect2) UpperLeft() Vector2  { return Vector2{X: r.X0, Y: r.Y1} }
func (r Rect2) UpperRight() Vector2 { return Vector2{X: r.X1, Y: r.Y1} }

// Width returns the horizontal extent
func (r Rect2) Width() float32 { return r.X1 - r.X0 }

// Height returns the vertical extent
func (r Rect2) Height() float32 { return r.Y1 - r.Y0 }

// Center returns the midpoint of the rectangle
func (r Rect2) Center() Vector2 {
	return Vector2{X: (r.X0 + r.X1) * 0.5, Y: (r.Y0 + r.Y1) * 0.5}
}

// Overlaps reports whether the interiors of r and other intersect.
// Rectangles sharing only an edge or a corner do not overlap.
func (r Rect2) Overlaps(other Rect2) bool {
	if r.X0 >= other.X1 || r.X1 <= other.X0 {
		return false
	}
	if r.Y0 >= other.Y1 || r.Y1 <= other.Y0 {
		return false
	}
	return true
}

// CollisionSide returns the face of other that r entered through, chosen as
// the axis of least penetration. Ties prefer left, right, bottom, top in that order.
func (r Rect2) CollisionSide(other Rect2) Side {
	if !r.Overlaps(other) {
		return SideNone
	}

	// Penetration depth if r came in through each face of other
	depths := [...]struct {
		side  Side
		depth float32
	}{
		{SideLeft, r.X1 - other.X0},
		{SideRight, other.X1 - r.X0},
		{SideBottom, r.Y1 - other.Y0},
		{SideTop, other.Y1 - r.Y0},
	}

	best := depths[0]
	for _, d := range depths[1:] {
		if d.depth < best.depth {
			best = d
		}
	}
	return best.side
}

// CollidesWith tests r against other. When they overlap it returns the edge of
// other that was struck, walked counter-clockwise: striking the left face yields
// the vector from other's upper-left to its lower-left corner. The vector carries
// direction only; its magnitude is the edge length.
func (r Rect2) CollidesWith(other Rect2) (Vector2, bool) {
	switch r.CollisionSide(other) {
	case SideLeft:
		return other.LowerLeft().Sub(other.UpperLeft()), true
	case SideBottom:
		return other.LowerRight().Sub(other.LowerLeft()), true
	case SideRight:
		return other.UpperRight().Sub(other.LowerRight()), true
	case SideTop:
		return other.UpperLeft().Sub(other.UpperRight()), true
	default:
		return Vector2{}, false
	}
}
