package math

// Vec2 is a 2D vector. Texture coordinates use X as u and Y as v.
type Vec2 struct {
	X, Y float32
}

// V2 builds a Vec2 from a flat slice starting at offset i.
func V2(s []float32, i int) Vec2 {
	return Vec2{s[i], s[i+1]}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Barycentric returns a*(1-b-g) + b1*b + b2*g.
func Barycentric(a, b1, b2 Vec2, b, g float32) Vec2 {
	return a.Scale(1 - b - g).Add(b1.Scale(b)).Add(b2.Scale(g))
}
