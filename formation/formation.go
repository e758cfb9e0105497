package formation

import (
	"time"

	"github.com/lixenwraith/space-invasion/entity"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

// Config holds the formation tuning read at construction
type Config struct {
	FrameUnit      time.Duration
	BombDropChance float64
	FastBombChance float64
	InvadersPerRow int
	MaxLevel       int
	Seed           uint64
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		FrameUnit:      parameter.FormationFrameUnit,
		BombDropChance: parameter.BombDropChance,
		FastBombChance: parameter.FastBombChance,
		InvadersPerRow: parameter.InvadersPerRow,
		MaxLevel:       parameter.MaxLevel,
		Seed:           1,
	}
}

// Step describes one discrete formation move
type Step struct {
	Descended  bool
	MarchIndex int
	Dropped    []*entity.Bomb
}

// Formation is the invader grid moved as one rigid body
// The offset is the centre of the invader at row 0, column 0 and is the only mutable position
type Formation struct {
	cfg Config

	invaders  []*Invader // live invaders, creation order
	direction entity.Direction
	offset    vmath.Vec2

	bombs [RankCount]*entity.Bomb

	clock      Clock
	frame      int
	marchIndex int
	level      int

	bombsEnabled bool
	held         bool

	rng *vmath.FastRand
}

// New creates an empty formation, call SetupNextLevel to populate it
func New(cfg Config) *Formation {
	return &Formation{
		cfg:       cfg,
		direction: entity.DirectionRight,
		clock:     Clock{Unit: cfg.FrameUnit},
		rng:       vmath.NewFastRand(cfg.Seed),
	}
}

// SetupNextLevel advances the level counter and re-seeds the grid
func (f *Formation) SetupNextLevel() {
	f.level++
	f.SetupLevel(f.level)
}

// SetupLevel seeds a full grid for level, each level starting one row deeper up to MaxLevel
// Bombs stay disabled until EnableBombs
func (f *Formation) SetupLevel(level int) {
	f.level = level
	f.offset = StartOffset(level, f.cfg.InvadersPerRow, f.cfg.MaxLevel)
	f.direction = entity.DirectionRight

	f.invaders = f.invaders[:0]
	for row := 0; row < parameter.InvaderRows; row++ {
		for col := 0; col < f.cfg.InvadersPerRow; col++ {
			f.invaders = append(f.invaders, &Invader{
				ID:     row*f.cfg.InvadersPerRow + col,
				Rank:   rankForRow[row],
				Row:    row,
				Column: col,
				Alive:  true,
			})
		}
	}

	f.ClearBombs()
	f.clock.Reset()
	f.frame = 0
	f.marchIndex = 0
	f.bombsEnabled = false
	f.held = false
}

// StartOffset returns the level start offset, centred horizontally between the invader bounds
func StartOffset(level, perRow, maxLevel int) vmath.Vec2 {
	startRow := min(max(level-1, 0), maxLevel)
	rowWidth := parameter.InvaderCellWidth * float64(perRow-1)
	areaWidth := parameter.InvadersMaxX - parameter.InvadersMinX
	return vmath.Vec2{
		X: parameter.InvadersMinX + (areaWidth-rowWidth)/2,
		Y: parameter.InvadersMaxY - float64(startRow)*parameter.InvaderCellHeight,
	}
}

// Update advances the cadence and performs at most one step
// A held formation neither moves nor accumulates cadence time
func (f *Formation) Update(dt time.Duration) (Step, bool) {
	if f.held || len(f.invaders) == 0 {
		return Step{}, false
	}
	if !f.clock.Advance(dt, len(f.invaders)) {
		return Step{}, false
	}
	return f.step(), true
}

func (f *Formation) step() Step {
	move, descended := f.moveVector()
	f.offset = vmath.V2Add(f.offset, move)
	f.frame ^= 1

	s := Step{Descended: descended, MarchIndex: f.marchIndex}
	f.marchIndex = (f.marchIndex + 1) % parameter.MarchSoundCount

	if f.bombsEnabled && !f.held {
		s.Dropped = f.dropBombs()
	}
	return s
}

// moveVector applies the horizontal move unless it would push an edge column past
// the bounds, in which case the formation descends and reverses on this very step
func (f *Formation) moveVector() (vmath.Vec2, bool) {
	move := vmath.Vec2{X: parameter.InvaderStepX * float64(f.direction)}
	next := vmath.V2Add(f.offset, move)

	if f.leftColumnX(next) < parameter.InvadersMinX || f.rightColumnX(next) > parameter.InvadersMaxX {
		f.direction = f.direction.Reverse()
		return vmath.Vec2{Y: -parameter.InvaderStepY}, true
	}
	return move, false
}

// UpdateBombs moves in-flight bombs and frees the slots of spent ones
func (f *Formation) UpdateBombs(dt time.Duration) {
	if f.held {
		return
	}
	for rank, b := range f.bombs {
		if b == nil {
			continue
		}
		b.Update(dt)
		if !b.Active {
			f.bombs[rank] = nil
		}
	}
}

// Remove takes the invader with id out of the formation
// Returns false when it was already removed, so repeated hits are no-ops
func (f *Formation) Remove(id int) (Invader, bool) {
	for i, inv := range f.invaders {
		if inv.ID != id {
			continue
		}
		inv.Alive = false
		f.invaders = append(f.invaders[:i], f.invaders[i+1:]...)
		return *inv, true
	}
	return Invader{}, false
}

// Lookup returns a live invader by id
func (f *Formation) Lookup(id int) (Invader, bool) {
	for _, inv := range f.invaders {
		if inv.ID == id {
			return *inv, true
		}
	}
	return Invader{}, false
}

// Hold freezes the formation and clears in-flight bombs, used while the ship is exploding
func (f *Formation) Hold() {
	f.held = true
	f.bombsEnabled = false
	f.ClearBombs()
}

// Release resumes movement and bomb dropping after Hold
func (f *Formation) Release() {
	f.held = false
	f.bombsEnabled = true
}

// EnableBombs toggles the bomb lottery without touching movement
func (f *Formation) EnableBombs(on bool) {
	f.bombsEnabled = on
}

// ClearBombs deactivates and drops every in-flight bomb
func (f *Formation) ClearBombs() {
	for rank, b := range f.bombs {
		if b != nil {
			b.Deactivate()
		}
		f.bombs[rank] = nil
	}
}

// HaveInvaded reports whether the bottom row has crossed the defensive line
func (f *Formation) HaveInvaded() bool {
	if len(f.invaders) == 0 {
		return false
	}
	bottomY := f.offset.Y - float64(f.bottomRow())*parameter.InvaderCellHeight
	return bottomY < parameter.InvadersMinY
}

// Destroyed reports whether every invader has been removed
func (f *Formation) Destroyed() bool {
	return len(f.invaders) == 0
}

// Live returns the number of live invaders
func (f *Formation) Live() int {
	return len(f.invaders)
}

// Invaders returns copies of live invaders in creation order
func (f *Formation) Invaders() []Invader {
	out := make([]Invader, len(f.invaders))
	for i, inv := range f.invaders {
		out[i] = *inv
	}
	return out
}

// Position returns the absolute centre of an invader
func (f *Formation) Position(inv Invader) vmath.Vec2 {
	return vmath.V2Add(f.offset, inv.Local())
}

// InvaderBounds returns the absolute box of an invader
func (f *Formation) InvaderBounds(inv Invader) vmath.Rect {
	return vmath.RectCentered(f.Position(inv), invaderSize)
}

// Extent returns the box around all live invaders, ok is false when empty
func (f *Formation) Extent() (vmath.Rect, bool) {
	if len(f.invaders) == 0 {
		return vmath.Rect{}, false
	}
	topRow := parameter.InvaderRows
	for _, inv := range f.invaders {
		topRow = min(topRow, inv.Row)
	}
	halfW, halfH := parameter.InvaderWidth/2, parameter.InvaderHeight/2
	return vmath.Rect{
		Min: vmath.Vec2{
			X: f.leftColumnX(f.offset) - halfW,
			Y: f.offset.Y - float64(f.bottomRow())*parameter.InvaderCellHeight - halfH,
		},
		Max: vmath.Vec2{
			X: f.rightColumnX(f.offset) + halfW,
			Y: f.offset.Y - float64(topRow)*parameter.InvaderCellHeight + halfH,
		},
	}, true
}

// Bombs returns active in-flight bombs, at most one per rank
func (f *Formation) Bombs() []*entity.Bomb {
	out := make([]*entity.Bomb, 0, RankCount)
	for _, b := range f.bombs {
		if b != nil && b.Active {
			out = append(out, b)
		}
	}
	return out
}

// Bomb returns the bomb slot of a rank, nil when free
func (f *Formation) Bomb(r Rank) *entity.Bomb {
	if b := f.bombs[r]; b != nil && b.Active {
		return b
	}
	return nil
}

func (f *Formation) Offset() vmath.Vec2          { return f.offset }
func (f *Formation) Direction() entity.Direction { return f.direction }
func (f *Formation) Level() int                  { return f.level }
func (f *Formation) AnimationFrame() int         { return f.frame }
func (f *Formation) MarchIndex() int             { return f.marchIndex }
func (f *Formation) Held() bool                  { return f.held }
func (f *Formation) BombsEnabled() bool          { return f.bombsEnabled }

// Rand exposes the formation generator so collaborators share one deterministic stream
func (f *Formation) Rand() *vmath.FastRand { return f.rng }

func (f *Formation) leftColumn() int {
	col := f.cfg.InvadersPerRow
	for _, inv := range f.invaders {
		col = min(col, inv.Column)
	}
	return col
}

func (f *Formation) rightColumn() int {
	col := 0
	for _, inv := range f.invaders {
		col = max(col, inv.Column)
	}
	return col
}

func (f *Formation) bottomRow() int {
	row := 0
	for _, inv := range f.invaders {
		row = max(row, inv.Row)
	}
	return row
}

func (f *Formation) leftColumnX(offset vmath.Vec2) float64 {
	return offset.X + float64(f.leftColumn())*parameter.InvaderCellWidth
}

func (f *Formation) rightColumnX(offset vmath.Vec2) float64 {
	return offset.X + float64(f.rightColumn())*parameter.InvaderCellWidth
}
