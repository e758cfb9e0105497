package entity

import (
	"time"

	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

var (
	missileSize = vmath.Size{W: parameter.MissileWidth, H: parameter.MissileHeight}
	bombSize    = vmath.Size{W: parameter.BombWidth, H: parameter.BombHeight}
)

// Missile is the single ship projectile, rising until it passes MissileMaxY
type Missile struct {
	Position vmath.Vec2
	Active   bool
}

// Fire launches the missile from pos, returns false while one is in flight
func (m *Missile) Fire(pos vmath.Vec2) bool {
	if m.Active {
		return false
	}
	m.Position = pos
	m.Active = true
	return true
}

// Update moves the missile and deactivates it past the travel limit
func (m *Missile) Update(dt time.Duration) {
	if !m.Active {
		return
	}
	m.Position.Y += parameter.MissileSpeed * dt.Seconds()
	if m.Position.Y > parameter.MissileMaxY {
		m.Active = false
	}
}

func (m *Missile) Deactivate() {
	m.Active = false
}

func (m *Missile) Bounds() vmath.Rect {
	return vmath.RectCentered(m.Position, missileSize)
}

// BombKind selects bomb speed
type BombKind int

const (
	BombSlow BombKind = iota
	BombFast
)

// Speed returns fall speed in units per second
func (k BombKind) Speed() float64 {
	if k == BombFast {
		return parameter.BombFastSpeed
	}
	return parameter.BombSlowSpeed
}

func (k BombKind) String() string {
	if k == BombFast {
		return "fast"
	}
	return "slow"
}

// Bomb is an invader projectile falling toward the ship line
type Bomb struct {
	Position vmath.Vec2
	Kind     BombKind
	Active   bool
}

func NewBomb(pos vmath.Vec2, kind BombKind) *Bomb {
	return &Bomb{Position: pos, Kind: kind, Active: true}
}

// Update moves the bomb and deactivates it below the ship line
func (b *Bomb) Update(dt time.Duration) {
	if !b.Active {
		return
	}
	b.Position.Y -= b.Kind.Speed() * dt.Seconds()
	if b.Position.Y < parameter.BombMinY {
		b.Active = false
	}
}

func (b *Bomb) Deactivate() {
	b.Active = false
}

func (b *Bomb) Bounds() vmath.Rect {
	return vmath.RectCentered(b.Position, bombSize)
}
