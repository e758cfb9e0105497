package vmath

// Rect is an axis-aligned box, Min is the lower-left corner
type Rect struct {
	Min, Max Vec2
}

// RectCentered builds a box of size s around center
func RectCentered(center Vec2, s Size) Rect {
	hw, hh := s.W/2, s.H/2
	return Rect{
		Min: Vec2{center.X - hw, center.Y - hh},
		Max: Vec2{center.X + hw, center.Y + hh},
	}
}

// RectFromMin builds a box of size s with lower-left corner at min
func RectFromMin(min Vec2, s Size) Rect {
	return Rect{Min: min, Max: Vec2{min.X + s.W, min.Y + s.H}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Size() Size {
	return Size{r.Width(), r.Height()}
}

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Empty reports whether the box has no area
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains checks if point is within the box, max edges exclusive
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Overlaps reports whether two boxes share area
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Intersect returns the shared area of two boxes, ok is false when disjoint
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		Min: Vec2{max(r.Min.X, o.Min.X), max(r.Min.Y, o.Min.Y)},
		Max: Vec2{min(r.Max.X, o.Max.X), min(r.Max.Y, o.Max.Y)},
	}
	if out.Empty() {
		return Rect{}, false
	}
	return out, true
}

// Translate moves the box by d
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: V2Add(r.Min, d), Max: V2Add(r.Max, d)}
}
