package physics

import (
	"fmt"

	"github.com/lixenwraith/space-invasion/vmath"
)

// Category tags a body with the rule set that applies to it
type Category int

const (
	CategoryMissile Category = iota
	CategoryBomb
	CategoryShip
	CategoryInvader
	CategoryUfo
	CategoryShield

	CategoryCount
)

var categoryNames = [CategoryCount]string{
	CategoryMissile: "missile",
	CategoryBomb:    "bomb",
	CategoryShip:    "ship",
	CategoryInvader: "invader",
	CategoryUfo:     "ufo",
	CategoryShield:  "shield",
}

func (c Category) String() string {
	if c >= 0 && c < CategoryCount {
		return categoryNames[c]
	}
	return "unknown"
}

// IsProjectile reports whether bodies of this category are consumed by a hit
func (c Category) IsProjectile() bool {
	return c == CategoryMissile || c == CategoryBomb
}

// Body references a simulation object by category and id
// ID is the invader id, bomb rank or shield index, zero for singletons
type Body struct {
	Category Category
	ID       int
}

func (b Body) String() string {
	return fmt.Sprintf("%s#%d", b.Category, b.ID)
}

func (b Body) less(o Body) bool {
	if b.Category != o.Category {
		return b.Category < o.Category
	}
	return b.ID < o.ID
}

// Collider is a body with its box for one detection pass
type Collider struct {
	Body   Body
	Bounds vmath.Rect
}

// Contact is one detected overlap, A always sorts before B
// Began is false when the same pair already overlapped on the previous pass
type Contact struct {
	A, B  Body
	Point vmath.Vec2
	Began bool
}

// Involves reports whether either side has category c
func (c Contact) Involves(cat Category) bool {
	return c.A.Category == cat || c.B.Category == cat
}

// Split returns the side with category cat first, ok is false if neither matches
func (c Contact) Split(cat Category) (this, other Body, ok bool) {
	switch {
	case c.A.Category == cat:
		return c.A, c.B, true
	case c.B.Category == cat:
		return c.B, c.A, true
	}
	return Body{}, Body{}, false
}

type pair struct {
	a, b Body
}

func makePair(x, y Body) pair {
	if y.less(x) {
		x, y = y, x
	}
	return pair{a: x, b: y}
}
