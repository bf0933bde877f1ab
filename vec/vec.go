// Package vec provides a minimal 2D vector type for the simulation core.
// All mutating operations work in place so systems can reuse scratch
// instances across frames without allocating.
package vec

import "math"

// Vec2 is a 2D vector with float64 components.
type Vec2 struct {
	X, Y float64
}

// New returns a Vec2 with the given components.
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Set assigns both components.
func (v *Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

// Copy assigns the components of o to v.
func (v *Vec2) Copy(o Vec2) {
	v.X = o.X
	v.Y = o.Y
}

// Zero resets both components to zero.
func (v *Vec2) Zero() {
	v.X = 0
	v.Y = 0
}

// Add adds o to v in place.
func (v *Vec2) Add(o Vec2) {
	v.X += o.X
	v.Y += o.Y
}

// Sub subtracts o from v in place.
func (v *Vec2) Sub(o Vec2) {
	v.X -= o.X
	v.Y -= o.Y
}

// Scale multiplies v by a scalar in place.
func (v *Vec2) Scale(f float64) {
	v.X *= f
	v.Y *= f
}

// AddScaled adds o*f to v in place. Equivalent to Add of a scaled copy
// without the copy.
func (v *Vec2) AddScaled(o Vec2, f float64) {
	v.X += o.X * f
	v.Y += o.Y * f
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LenSq returns the squared magnitude of v, avoiding the sqrt.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize scales v to unit length in place. Panics if v is the zero
// vector; callers are expected to guard degenerate inputs.
func (v *Vec2) Normalize() {
	l := v.Len()
	if l == 0 {
		panic("vec: normalize of zero vector")
	}
	v.X /= l
	v.Y /= l
}
