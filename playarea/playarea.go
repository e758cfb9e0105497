package playarea

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/space-invasion/engine"
	"github.com/lixenwraith/space-invasion/entity"
	"github.com/lixenwraith/space-invasion/event"
	"github.com/lixenwraith/space-invasion/formation"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/physics"
	"github.com/lixenwraith/space-invasion/vmath"
)

// PlayArea owns every simulation body and arbitrates their contacts
// It is driven from a single goroutine, one Update per frame
type PlayArea struct {
	settings Settings
	controls Controls
	keeper   ScoreKeeper
	events   *event.Queue
	log      zerolog.Logger

	ship      *entity.Ship
	missile   entity.Missile
	formation *formation.Formation
	shields   []*entity.Shield
	ufo       entity.Ufo

	timers       *engine.Scheduler
	respawnTimer engine.TimerID
	ufoTimer     engine.TimerID

	detector *physics.Detector
	rng      *vmath.FastRand

	explosions []Explosion
	generation uint64 // bumped on every level start, stale contacts stop resolving
	tick       uint64
}

// Update runs one frame: timers, controls, movement, contact detection and resolution
func (p *PlayArea) Update(dt time.Duration) {
	dt = engine.ClampDelta(dt)
	p.tick++

	p.timers.Advance(dt)
	p.readControls()

	p.ship.Move(dt)
	p.missile.Update(dt)

	if step, ok := p.formation.Update(dt); ok {
		p.events.Emit(event.EventInvadersStepped, p.formation.Offset(), step.MarchIndex)
		for _, b := range step.Dropped {
			fast := 0
			if b.Kind == entity.BombFast {
				fast = 1
			}
			p.events.Emit(event.EventBombDropped, b.Position, fast)
		}
	}
	p.formation.UpdateBombs(dt)

	if p.ufo.Update(dt) {
		p.events.Emit(event.EventUfoEscaped, p.ufo.Position, 0)
		p.scheduleUfo()
	}

	p.ageExplosions(dt)

	contacts := p.detector.Detect(p.colliders())
	orderByRule(contacts)

	gen := p.generation
	for _, c := range contacts {
		if p.generation != gen {
			break
		}
		p.Resolve(c)
	}
}

func (p *PlayArea) readControls() {
	if !p.ship.Active {
		return
	}
	left, right := p.controls.MoveLeftPressed(), p.controls.MoveRightPressed()
	switch {
	case left && !right:
		p.ship.Direction = entity.DirectionLeft
	case right && !left:
		p.ship.Direction = entity.DirectionRight
	default:
		p.ship.Direction = entity.DirectionNone
	}

	if p.controls.FirePressed() && p.missile.Fire(p.ship.Nose()) {
		p.events.Emit(event.EventMissileFired, p.missile.Position, 0)
	}
}

// colliders lists every active body with its current box
func (p *PlayArea) colliders() []physics.Collider {
	out := make([]physics.Collider, 0, p.formation.Live()+len(p.shields)+8)

	if p.ship.Active {
		out = append(out, physics.Collider{Body: physics.Body{Category: physics.CategoryShip}, Bounds: p.ship.Bounds()})
	}
	if p.missile.Active {
		out = append(out, physics.Collider{Body: physics.Body{Category: physics.CategoryMissile}, Bounds: p.missile.Bounds()})
	}
	for r := formation.Rank(0); r < formation.RankCount; r++ {
		if b := p.formation.Bomb(r); b != nil {
			out = append(out, physics.Collider{Body: physics.Body{Category: physics.CategoryBomb, ID: int(r)}, Bounds: b.Bounds()})
		}
	}
	for _, inv := range p.formation.Invaders() {
		out = append(out, physics.Collider{Body: physics.Body{Category: physics.CategoryInvader, ID: inv.ID}, Bounds: p.formation.InvaderBounds(inv)})
	}
	if p.ufo.Active {
		out = append(out, physics.Collider{Body: physics.Body{Category: physics.CategoryUfo}, Bounds: p.ufo.Bounds()})
	}
	for _, s := range p.shields {
		if b, ok := s.Bounds(); ok {
			out = append(out, physics.Collider{Body: physics.Body{Category: physics.CategoryShield, ID: s.Index}, Bounds: b})
		}
	}
	return out
}

// Reset starts a new game at level one with intact shields
func (p *PlayArea) Reset() {
	for _, s := range p.shields {
		s.Reset()
	}
	p.startLevel(1)
}

// SetupNextLevel re-seeds the formation one level deeper, shields keep their damage
func (p *PlayArea) SetupNextLevel() {
	p.startLevel(p.formation.Level() + 1)
}

func (p *PlayArea) startLevel(level int) {
	p.timers.Clear()
	p.respawnTimer, p.ufoTimer = 0, 0
	p.missile.Deactivate()
	p.ufo.Deactivate()
	p.explosions = p.explosions[:0]
	p.ship.Reset()
	p.detector.Reset()

	p.formation.SetupLevel(level)
	p.generation++

	p.timers.After(p.settings.BombGrace, func() {
		p.formation.EnableBombs(true)
	})
	p.scheduleUfo()

	p.log.Debug().Int("level", level).Msg("level started")
	p.events.Emit(event.EventLevelStarted, p.formation.Offset(), level)
}

// scheduleUfo arms the next Ufo appearance with jitter
func (p *PlayArea) scheduleUfo() {
	p.timers.Cancel(p.ufoTimer)
	delay := p.settings.UfoInterval
	if p.settings.UfoJitter > 0 {
		delay += time.Duration(p.rng.Intn(int(p.settings.UfoJitter/time.Millisecond))) * time.Millisecond
	}
	p.ufoTimer = p.timers.After(delay, p.spawnUfo)
}

// spawnUfo launches the Ufo when the formation is large enough and the ship is alive, otherwise retries later
func (p *PlayArea) spawnUfo() {
	p.ufoTimer = 0
	if p.ufo.Active || !p.ship.Active || p.formation.Live() < parameter.UfoMinInvaders {
		p.scheduleUfo()
		return
	}
	dir := entity.DirectionRight
	if p.rng.Intn(2) == 0 {
		dir = entity.DirectionLeft
	}
	p.ufo.Spawn(dir)
	p.events.Emit(event.EventUfoSpawned, p.ufo.Position, int(dir))
}

// destroyShip starts the explosion and respawn sequence
// The formation holds until the respawn timer fires
func (p *PlayArea) destroyShip() {
	p.ship.Active = false
	p.ship.Direction = entity.DirectionNone
	p.formation.Hold()
	p.addExplosion(ExplosionShip, p.ship.Position)
	p.events.Emit(event.EventShipDestroyed, p.ship.Position, 0)

	p.timers.Cancel(p.respawnTimer)
	p.respawnTimer = p.timers.After(p.settings.RespawnDelay, p.respawnShip)

	p.log.Debug().Float64("x", p.ship.Position.X).Msg("ship destroyed")
	p.keeper.ShipDestroyed()
}

func (p *PlayArea) respawnShip() {
	p.respawnTimer = 0
	p.ship.Reset()
	p.formation.Release()
	p.events.Emit(event.EventShipRespawned, p.ship.Position, 0)
}

// Invaded reports whether the formation has crossed the defensive line
func (p *PlayArea) Invaded() bool {
	return p.formation.HaveInvaded()
}

// RespawnPending reports the time left before the ship returns
func (p *PlayArea) RespawnPending() (time.Duration, bool) {
	if p.respawnTimer == 0 {
		return 0, false
	}
	return p.timers.Remaining(p.respawnTimer)
}

func (p *PlayArea) Events() *event.Queue            { return p.events }
func (p *PlayArea) Ship() *entity.Ship              { return p.ship }
func (p *PlayArea) Missile() *entity.Missile        { return &p.missile }
func (p *PlayArea) Formation() *formation.Formation { return p.formation }
func (p *PlayArea) Shields() []*entity.Shield       { return p.shields }
func (p *PlayArea) Ufo() *entity.Ufo                { return &p.ufo }
func (p *PlayArea) Tick() uint64                    { return p.tick }
