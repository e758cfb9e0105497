package entity

import (
	"math"

	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

const (
	ShieldCols = int(parameter.ShieldWidth / parameter.ShieldCellSize)
	ShieldRows = int(parameter.ShieldHeight / parameter.ShieldCellSize)
)

// bunkerPattern is the intact shield, top row first
var bunkerPattern = [ShieldRows]string{
	"....#########....",
	"...###########...",
	"..#############..",
	".###############.",
	"#################",
	"#################",
	"#################",
	"#################",
	"######.....######",
	"#####.......#####",
	"#####.......#####",
	"#####.......#####",
}

// Mask is a damage stamp in shield cells, centred on the contact point
type Mask struct {
	w, h  int
	cells []bool // row-major, top row first
}

func parseMask(rows ...string) Mask {
	m := Mask{w: len(rows[0]), h: len(rows)}
	m.cells = make([]bool, 0, m.w*m.h)
	for _, row := range rows {
		for _, ch := range row {
			m.cells = append(m.cells, ch == '#')
		}
	}
	return m
}

var (
	BombMask = parseMask(
		".##.",
		"####",
		"####",
		"####",
		".##.",
	)
	MissileMask = parseMask(
		".#.",
		"###",
		"###",
		".#.",
	)
)

// Shield is a destructible bunker eroded cell by cell
// Damage is monotonic, cells are only ever cleared
type Shield struct {
	Index    int
	Position vmath.Vec2 // centre of the full frame

	cells  [ShieldRows][ShieldCols]bool // row 0 is the bottom
	intact int
	bounds vmath.Rect
}

// NewShield creates an intact shield centred at pos
func NewShield(index int, pos vmath.Vec2) *Shield {
	s := &Shield{Index: index, Position: pos}
	s.Reset()
	return s
}

// ShieldPositions spaces n shields evenly across the play area width
func ShieldPositions(n int) []vmath.Vec2 {
	gap := (parameter.PlayAreaWidth - parameter.ShieldWidth*float64(n)) / float64(n+1)
	out := make([]vmath.Vec2, n)
	for i := range out {
		x := gap + parameter.ShieldWidth/2 + float64(i)*(gap+parameter.ShieldWidth)
		out[i] = vmath.Vec2{X: x, Y: parameter.ShieldY}
	}
	return out
}

// Reset restores the bunker pattern
func (s *Shield) Reset() {
	s.intact = 0
	for i, row := range bunkerPattern {
		r := ShieldRows - 1 - i
		for c, ch := range row {
			s.cells[r][c] = ch == '#'
			if ch == '#' {
				s.intact++
			}
		}
	}
	s.recomputeBounds()
}

// Frame is the full undamaged footprint
func (s *Shield) Frame() vmath.Rect {
	return vmath.RectCentered(s.Position, vmath.Size{W: parameter.ShieldWidth, H: parameter.ShieldHeight})
}

// Bounds is the tight box around intact cells, ok is false once nothing is left
func (s *Shield) Bounds() (vmath.Rect, bool) {
	return s.bounds, s.intact > 0
}

// Cell reports whether the cell at column c, row r (0 bottom) is intact
func (s *Shield) Cell(c, r int) bool {
	if c < 0 || c >= ShieldCols || r < 0 || r >= ShieldRows {
		return false
	}
	return s.cells[r][c]
}

// Intact returns the remaining cell count
func (s *Shield) Intact() int {
	return s.intact
}

// IntactFraction returns remaining cells relative to the intact bunker
func (s *Shield) IntactFraction() float64 {
	return float64(s.intact) / float64(bunkerCells)
}

// Bitmap packs each row into a word, bit c set for intact column c, row 0 first
func (s *Shield) Bitmap() []uint32 {
	out := make([]uint32, ShieldRows)
	for r := range s.cells {
		for c, on := range s.cells[r] {
			if on {
				out[r] |= 1 << c
			}
		}
	}
	return out
}

// RestoreBitmap replaces cell state from a packed bitmap
func (s *Shield) RestoreBitmap(rows []uint32) {
	s.intact = 0
	for r := range s.cells {
		var word uint32
		if r < len(rows) {
			word = rows[r]
		}
		for c := range s.cells[r] {
			s.cells[r][c] = word&(1<<c) != 0
			if s.cells[r][c] {
				s.intact++
			}
		}
	}
	s.recomputeBounds()
}

// IntactUnder reports whether any intact cell overlaps area
func (s *Shield) IntactUnder(area vmath.Rect) bool {
	found := false
	s.cellsIn(area, func(c, r int) bool {
		found = true
		return false
	})
	return found
}

// HitPoint returns the centroid of intact cells overlapping area
func (s *Shield) HitPoint(area vmath.Rect) (vmath.Vec2, bool) {
	var sum vmath.Vec2
	n := 0
	s.cellsIn(area, func(c, r int) bool {
		sum = vmath.V2Add(sum, s.cellRect(c, r).Center())
		n++
		return true
	})
	if n == 0 {
		return vmath.Vec2{}, false
	}
	return vmath.V2Scale(sum, 1/float64(n)), true
}

// Erode clears every intact cell overlapping area, returns cells cleared
func (s *Shield) Erode(area vmath.Rect) int {
	cleared := 0
	s.cellsIn(area, func(c, r int) bool {
		s.cells[r][c] = false
		cleared++
		return true
	})
	s.commit(cleared)
	return cleared
}

// ApplyMask punches m centred on the cell containing at, returns cells cleared
func (s *Shield) ApplyMask(m Mask, at vmath.Vec2) int {
	frame := s.Frame()
	pc := int(math.Floor((at.X - frame.Min.X) / parameter.ShieldCellSize))
	pr := int(math.Floor((at.Y - frame.Min.Y) / parameter.ShieldCellSize))

	cleared := 0
	for mi := 0; mi < m.h; mi++ {
		r := pr + (m.h-1)/2 - mi
		for mj := 0; mj < m.w; mj++ {
			c := pc - m.w/2 + mj
			if !m.cells[mi*m.w+mj] || !s.Cell(c, r) {
				continue
			}
			s.cells[r][c] = false
			cleared++
		}
	}
	s.commit(cleared)
	return cleared
}

func (s *Shield) commit(cleared int) {
	if cleared == 0 {
		return
	}
	s.intact -= cleared
	s.recomputeBounds()
}

func (s *Shield) cellRect(c, r int) vmath.Rect {
	frame := s.Frame()
	origin := vmath.Vec2{
		X: frame.Min.X + float64(c)*parameter.ShieldCellSize,
		Y: frame.Min.Y + float64(r)*parameter.ShieldCellSize,
	}
	return vmath.RectFromMin(origin, vmath.Size{W: parameter.ShieldCellSize, H: parameter.ShieldCellSize})
}

// cellsIn visits intact cells overlapping area until fn returns false
func (s *Shield) cellsIn(area vmath.Rect, fn func(c, r int) bool) {
	frame := s.Frame()
	overlap, ok := frame.Intersect(area)
	if !ok {
		return
	}
	c0 := int((overlap.Min.X - frame.Min.X) / parameter.ShieldCellSize)
	c1 := int(math.Ceil((overlap.Max.X-frame.Min.X)/parameter.ShieldCellSize)) - 1
	r0 := int((overlap.Min.Y - frame.Min.Y) / parameter.ShieldCellSize)
	r1 := int(math.Ceil((overlap.Max.Y-frame.Min.Y)/parameter.ShieldCellSize)) - 1

	for r := max(r0, 0); r <= min(r1, ShieldRows-1); r++ {
		for c := max(c0, 0); c <= min(c1, ShieldCols-1); c++ {
			if s.cells[r][c] && !fn(c, r) {
				return
			}
		}
	}
}

func (s *Shield) recomputeBounds() {
	if s.intact == 0 {
		s.bounds = vmath.Rect{}
		return
	}
	minC, minR, maxC, maxR := ShieldCols, ShieldRows, -1, -1
	for r := range s.cells {
		for c, on := range s.cells[r] {
			if !on {
				continue
			}
			minC, maxC = min(minC, c), max(maxC, c)
			minR, maxR = min(minR, r), max(maxR, r)
		}
	}
	lo := s.cellRect(minC, minR)
	hi := s.cellRect(maxC, maxR)
	s.bounds = vmath.Rect{Min: lo.Min, Max: hi.Max}
}

var bunkerCells = func() int {
	n := 0
	for _, row := range bunkerPattern {
		for _, ch := range row {
			if ch == '#' {
				n++
			}
		}
	}
	return n
}()
