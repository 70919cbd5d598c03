package geom

import "math"

// Vector2 is a 2D vector in grid space
type Vector2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Zero returns the zero vector
func Zero() Vector2 {
	return Vector2{}
}

// Vec creates a vector from its components
func Vec(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// IsZero reports whether both components are exactly zero.
// The comparison is not epsilon tolerant.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Length returns the euclidean norm of v
func (v Vector2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// NormalizeOrZero scales v to unit length in place. A zero vector is left as is.
func (v *Vector2) NormalizeOrZero() {
	denom := v.Length()
	if denom == 0 {
		return
	}
	v.X /= denom
	v.Y /= denom
}

// Normalized returns a unit-length copy of v, or the zero vector
func (v Vector2) Normalized() Vector2 {
	v.NormalizeOrZero()
	return v
}

// Scale multiplies both components by s
func (v Vector2) Scale(s float32) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Div divides both components by s
func (v Vector2) Div(s float32) Vector2 {
	return Vector2{X: v.X / s, Y: v.Y / s}
}

// Add returns v + o
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// AddAssign adds o to v in place
func (v *Vector2) AddAssign(o Vector2) {
	v.X += o.X
	v.Y += o.Y
}

// Neg returns -v
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Less orders vectors lexicographically on (X, Y)
func (v Vector2) Less(o Vector2) bool {
	if v.X != o.X {
		return v.X < o.X
	}
	return v.Y < o.Y
}

// Min returns the component-wise minimum of a and b
func Min(a, b Vector2) Vector2 {
	return Vector2{X: min(a.X, b.X), Y: min(a.Y, b.Y)}
}

// Max returns the component-wise maximum of a and b
func Max(a, b Vector2) Vector2 {
	return Vector2{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
}
