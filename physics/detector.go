package physics

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/lixenwraith/space-invasion/vmath"
)

// interactions lists which category pairs produce contacts, keyed by the moving side
var interactions = map[Category][]Category{
	CategoryMissile: {CategoryInvader, CategoryUfo, CategoryShield, CategoryBomb},
	CategoryBomb:    {CategoryShip, CategoryShield},
	CategoryInvader: {CategoryShield},
}

// categoryTags are registered once, resolv tags are a process-wide bitset
var categoryTags = func() [CategoryCount]resolv.Tags {
	var tags [CategoryCount]resolv.Tags
	for c := Category(0); c < CategoryCount; c++ {
		tags[c] = resolv.NewTag(c.String())
	}
	return tags
}()

// Detector finds overlapping bodies with a resolv spatial hash for the broad phase
// It remembers last pass pairs so contacts can be flagged as beginning or continuing
type Detector struct {
	space *resolv.Space

	shapes map[Body]*entry
	owners map[resolv.IShape]Body

	previous map[pair]struct{}
}

type entry struct {
	shape *resolv.ConvexPolygon
	size  vmath.Size
	seen  bool
}

// NewDetector creates a detector covering a width x height area
func NewDetector(width, height float64, cellSize int) *Detector {
	d := &Detector{
		space:    resolv.NewSpace(int(width), int(height), cellSize, cellSize),
		shapes:   make(map[Body]*entry),
		owners:   make(map[resolv.IShape]Body),
		previous: make(map[pair]struct{}),
	}
	return d
}

// Detect syncs the space with colliders and returns contacts ordered by pair
func (d *Detector) Detect(colliders []Collider) []Contact {
	d.sync(colliders)

	boxes := make(map[Body]vmath.Rect, len(colliders))
	for _, c := range colliders {
		boxes[c.Body] = c.Bounds
	}

	found := make(map[pair]vmath.Vec2)
	for _, c := range colliders {
		targets, ok := interactions[c.Body.Category]
		if !ok {
			continue
		}
		shape := d.shapes[c.Body].shape
		for _, cat := range targets {
			// resolv only supplies candidates, its edge test misses boxes nested inside one another
			shape.SelectTouchingCells(0).FilterShapes().ByTags(categoryTags[cat]).ForEach(func(candidate resolv.IShape) bool {
				other, ok := d.owners[candidate]
				if !ok {
					return true
				}
				// Touching edges share no area
				if overlap, ok := c.Bounds.Intersect(boxes[other]); ok {
					found[makePair(c.Body, other)] = overlap.Center()
				}
				return true
			})
		}
	}

	contacts := make([]Contact, 0, len(found))
	current := make(map[pair]struct{}, len(found))
	for p, point := range found {
		_, continuing := d.previous[p]
		contacts = append(contacts, Contact{A: p.a, B: p.b, Point: point, Began: !continuing})
		current[p] = struct{}{}
	}
	d.previous = current

	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].A != contacts[j].A {
			return contacts[i].A.less(contacts[j].A)
		}
		return contacts[i].B.less(contacts[j].B)
	})
	return contacts
}

// sync adds, moves and removes shapes so the space mirrors colliders
func (d *Detector) sync(colliders []Collider) {
	for _, e := range d.shapes {
		e.seen = false
	}

	for _, c := range colliders {
		size := c.Bounds.Size()
		e, ok := d.shapes[c.Body]
		if ok && e.size != size {
			d.remove(c.Body, e)
			ok = false
		}
		if !ok {
			shape := resolv.NewRectangleFromTopLeft(c.Bounds.Min.X, c.Bounds.Min.Y, size.W, size.H)
			shape.Tags().Set(categoryTags[c.Body.Category])
			d.space.Add(shape)
			e = &entry{shape: shape, size: size}
			d.shapes[c.Body] = e
			d.owners[shape] = c.Body
		}
		e.shape.SetPosition(c.Bounds.Min.X, c.Bounds.Min.Y)
		e.seen = true
	}

	for body, e := range d.shapes {
		if !e.seen {
			d.remove(body, e)
		}
	}
}

func (d *Detector) remove(body Body, e *entry) {
	d.space.Remove(e.shape)
	delete(d.owners, e.shape)
	delete(d.shapes, body)
}

// Forget drops a pair from the continuing set so its next overlap begins anew
func (d *Detector) Forget(a, b Body) {
	delete(d.previous, makePair(a, b))
}

// Reset removes every shape and forgets previous contacts
func (d *Detector) Reset() {
	for body, e := range d.shapes {
		d.remove(body, e)
	}
	d.previous = make(map[pair]struct{})
}

// Len returns the number of tracked shapes
func (d *Detector) Len() int {
	return len(d.shapes)
}
