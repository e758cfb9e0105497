package vmath

import "math"

// Vec2 is a point or displacement in play-area units, Y grows upward
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair in play-area units
type Size struct {
	W, H float64
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// V2Mul multiplies componentwise
func V2Mul(a, b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// V2MulSize multiplies a grid coordinate by a cell size
func V2MulSize(v Vec2, s Size) Vec2 {
	return Vec2{v.X * s.W, v.Y * s.H}
}

// V2AddSize offsets a point by a size
func V2AddSize(v Vec2, s Size) Vec2 {
	return Vec2{v.X + s.W, v.Y + s.H}
}

// V2SubSize offsets a point by a negated size
func V2SubSize(v Vec2, s Size) Vec2 {
	return Vec2{v.X - s.W, v.Y - s.H}
}

func V2Equal(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func SizeAdd(a, b Size) Size {
	return Size{a.W + b.W, a.H + b.H}
}

func SizeScale(s Size, f float64) Size {
	return Size{s.W * f, s.H * f}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}
