package playarea

import (
	"time"

	"github.com/lixenwraith/space-invasion/entity"
	"github.com/lixenwraith/space-invasion/formation"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

// ExplosionKind selects explosion artwork
type ExplosionKind int

const (
	ExplosionInvader ExplosionKind = iota
	ExplosionShip
	ExplosionUfo
	ExplosionShield
)

var explosionDurations = [...]time.Duration{
	ExplosionInvader: parameter.InvaderExplosionDuration,
	ExplosionShip:    parameter.ShipExplosionDuration,
	ExplosionUfo:     parameter.UfoScoreDisplayDuration,
	ExplosionShield:  150 * time.Millisecond,
}

// Duration is the full lifetime of an explosion of this kind
func (k ExplosionKind) Duration() time.Duration {
	if k < 0 || int(k) >= len(explosionDurations) {
		return 0
	}
	return explosionDurations[k]
}

// Explosion is a transient presentation effect
// Score is the award shown in place of a destroyed Ufo
type Explosion struct {
	Kind      ExplosionKind `msgpack:"kind"`
	Position  vmath.Vec2    `msgpack:"pos"`
	Remaining time.Duration `msgpack:"remaining"`
	Score     int           `msgpack:"score,omitempty"`
}

func (p *PlayArea) addExplosion(kind ExplosionKind, pos vmath.Vec2) *Explosion {
	p.explosions = append(p.explosions, Explosion{Kind: kind, Position: pos, Remaining: kind.Duration()})
	return &p.explosions[len(p.explosions)-1]
}

func (p *PlayArea) ageExplosions(dt time.Duration) {
	kept := p.explosions[:0]
	for _, e := range p.explosions {
		e.Remaining -= dt
		if e.Remaining > 0 {
			kept = append(kept, e)
		}
	}
	p.explosions = kept
}

type InvaderView struct {
	ID       int            `msgpack:"id"`
	Rank     formation.Rank `msgpack:"rank"`
	Position vmath.Vec2     `msgpack:"pos"`
}

type BombView struct {
	Position vmath.Vec2 `msgpack:"pos"`
	Fast     bool       `msgpack:"fast"`
}

type ShieldView struct {
	Position vmath.Vec2 `msgpack:"pos"`
	Bitmap   []uint32   `msgpack:"bitmap"`
	Intact   float64    `msgpack:"intact"`
}

type BodyView struct {
	Position vmath.Vec2 `msgpack:"pos"`
	Active   bool       `msgpack:"active"`
}

// Frame is a read-only snapshot of everything presentation needs after an update
type Frame struct {
	Tick           uint64        `msgpack:"tick"`
	Level          int           `msgpack:"level"`
	Ship           BodyView      `msgpack:"ship"`
	Missile        BodyView      `msgpack:"missile"`
	Ufo            BodyView      `msgpack:"ufo"`
	Invaders       []InvaderView `msgpack:"invaders"`
	AnimationFrame int           `msgpack:"anim"`
	Bombs          []BombView    `msgpack:"bombs"`
	Shields        []ShieldView  `msgpack:"shields"`
	Explosions     []Explosion   `msgpack:"explosions"`
	Extent         vmath.Rect    `msgpack:"extent"`
	Respawning     bool          `msgpack:"respawning"`
}

// Frame captures the current state for renderers and spectators
func (p *PlayArea) Frame() Frame {
	f := Frame{
		Tick:           p.tick,
		Level:          p.formation.Level(),
		Ship:           BodyView{Position: p.ship.Position, Active: p.ship.Active},
		Missile:        BodyView{Position: p.missile.Position, Active: p.missile.Active},
		Ufo:            BodyView{Position: p.ufo.Position, Active: p.ufo.Active},
		AnimationFrame: p.formation.AnimationFrame(),
		Explosions:     append([]Explosion(nil), p.explosions...),
	}
	f.Extent, _ = p.formation.Extent()
	_, f.Respawning = p.RespawnPending()

	for _, inv := range p.formation.Invaders() {
		f.Invaders = append(f.Invaders, InvaderView{ID: inv.ID, Rank: inv.Rank, Position: p.formation.Position(inv)})
	}
	for _, b := range p.formation.Bombs() {
		f.Bombs = append(f.Bombs, BombView{Position: b.Position, Fast: b.Kind == entity.BombFast})
	}
	for _, s := range p.shields {
		f.Shields = append(f.Shields, ShieldView{Position: s.Position, Bitmap: s.Bitmap(), Intact: s.IntactFraction()})
	}
	return f
}
