package playarea

import (
	"sort"

	"github.com/lixenwraith/space-invasion/entity"
	"github.com/lixenwraith/space-invasion/event"
	"github.com/lixenwraith/space-invasion/formation"
	"github.com/lixenwraith/space-invasion/physics"
	"github.com/lixenwraith/space-invasion/vmath"
)

// rule maps contacts involving a category to a handler
// Handlers return true when they mutated state
type rule struct {
	name    string
	match   func(physics.Contact) bool
	resolve func(*PlayArea, physics.Contact) bool
}

func involving(cat physics.Category) func(physics.Contact) bool {
	return func(c physics.Contact) bool { return c.Involves(cat) }
}

func bothProjectiles(c physics.Contact) bool {
	return c.A.Category.IsProjectile() && c.B.Category.IsProjectile()
}

// rules are tried in order, the first match owns the contact
var rules = []rule{
	{"shield", involving(physics.CategoryShield), (*PlayArea).resolveShield},
	{"invader", involving(physics.CategoryInvader), (*PlayArea).resolveInvader},
	{"ufo", involving(physics.CategoryUfo), (*PlayArea).resolveUfo},
	{"ship", involving(physics.CategoryShip), (*PlayArea).resolveShip},
	{"mutual", bothProjectiles, (*PlayArea).resolveMutual},
}

// ruleIndex returns the position of the rule owning c, unmatched contacts rank last
func ruleIndex(c physics.Contact) int {
	for i, r := range rules {
		if r.match(c) {
			return i
		}
	}
	return len(rules)
}

// orderByRule stably sorts one tick's contacts so higher priority rules claim shared bodies first
func orderByRule(contacts []physics.Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		return ruleIndex(contacts[i]) < ruleIndex(contacts[j])
	})
}

// Resolve applies one contact, stale or unknown bodies are ignored
// Resolving the same contact twice never awards twice, the first pass consumes the bodies
func (p *PlayArea) Resolve(c physics.Contact) bool {
	for _, r := range rules {
		if r.match(c) {
			return r.resolve(p, c)
		}
	}
	return false
}

// bodyBounds returns the live box of a body, ok is false when it is gone or inactive
func (p *PlayArea) bodyBounds(b physics.Body) (vmath.Rect, bool) {
	switch b.Category {
	case physics.CategoryShip:
		return p.ship.Bounds(), p.ship.Active
	case physics.CategoryMissile:
		return p.missile.Bounds(), p.missile.Active
	case physics.CategoryBomb:
		if bomb := p.bomb(b.ID); bomb != nil {
			return bomb.Bounds(), true
		}
	case physics.CategoryInvader:
		if inv, ok := p.formation.Lookup(b.ID); ok {
			return p.formation.InvaderBounds(inv), true
		}
	case physics.CategoryUfo:
		return p.ufo.Bounds(), p.ufo.Active
	case physics.CategoryShield:
		if s := p.shield(b.ID); s != nil {
			return s.Bounds()
		}
	}
	return vmath.Rect{}, false
}

func (p *PlayArea) bomb(rank int) *entity.Bomb {
	if rank < 0 || rank >= formation.RankCount {
		return nil
	}
	return p.formation.Bomb(formation.Rank(rank))
}

func (p *PlayArea) shield(index int) *entity.Shield {
	if index < 0 || index >= len(p.shields) {
		return nil
	}
	return p.shields[index]
}

// deactivate consumes a projectile body
func (p *PlayArea) deactivate(b physics.Body) {
	switch b.Category {
	case physics.CategoryMissile:
		p.missile.Deactivate()
	case physics.CategoryBomb:
		if bomb := p.bomb(b.ID); bomb != nil {
			bomb.Deactivate()
		}
	}
}

// resolveShield erodes a shield where intact cells lie under the other body
// Invaders erode on every pass they overlap, projectiles only when the contact begins
func (p *PlayArea) resolveShield(c physics.Contact) bool {
	sb, other, _ := c.Split(physics.CategoryShield)
	s := p.shield(sb.ID)
	if s == nil {
		return false
	}
	area, ok := p.bodyBounds(other)
	if !ok {
		return false
	}

	var cleared int
	switch other.Category {
	case physics.CategoryInvader:
		cleared = s.Erode(area)

	case physics.CategoryBomb, physics.CategoryMissile:
		if !c.Began {
			return false
		}
		point, hit := s.HitPoint(area)
		if !hit {
			// Passing through a hole, the next overlap with intact cells must count as a new contact
			p.detector.Forget(sb, other)
			return false
		}
		mask := entity.BombMask
		if other.Category == physics.CategoryMissile {
			mask = entity.MissileMask
		}
		cleared = s.ApplyMask(mask, point)
		p.deactivate(other)
		p.addExplosion(ExplosionShield, point)

	default:
		return false
	}

	if cleared > 0 {
		p.events.Emit(event.EventShieldEroded, c.Point, s.Index)
	}
	return true
}

// resolveInvader removes an invader struck by the missile
func (p *PlayArea) resolveInvader(c physics.Contact) bool {
	ib, other, _ := c.Split(physics.CategoryInvader)
	if other.Category != physics.CategoryMissile || !p.missile.Active {
		return false
	}
	inv, ok := p.formation.Remove(ib.ID)
	if !ok {
		return false
	}
	p.missile.Deactivate()

	pos := p.formation.Position(inv)
	score := inv.Rank.Score()
	p.addExplosion(ExplosionInvader, pos)
	p.events.Emit(event.EventInvaderDestroyed, pos, score)
	p.keeper.AddToScore(score)

	if p.formation.Destroyed() {
		p.log.Debug().Int("level", p.formation.Level()).Msg("formation destroyed")
		p.keeper.InvadersDestroyed()
	}
	return true
}

// resolveUfo awards the Ufo score drawn at the moment of the hit
func (p *PlayArea) resolveUfo(c physics.Contact) bool {
	_, other, _ := c.Split(physics.CategoryUfo)
	if other.Category != physics.CategoryMissile || !p.missile.Active || !p.ufo.Active {
		return false
	}
	score := entity.DrawScore(p.rng)
	p.missile.Deactivate()
	p.ufo.Deactivate()

	p.addExplosion(ExplosionUfo, p.ufo.Position).Score = score
	p.events.Emit(event.EventUfoDestroyed, p.ufo.Position, score)
	p.keeper.AddToScore(score)
	p.scheduleUfo()
	return true
}

// resolveShip destroys the ship when a live bomb reaches it
func (p *PlayArea) resolveShip(c physics.Contact) bool {
	_, other, _ := c.Split(physics.CategoryShip)
	if other.Category != physics.CategoryBomb || !p.ship.Active {
		return false
	}
	bomb := p.bomb(other.ID)
	if bomb == nil {
		return false
	}
	bomb.Deactivate()
	p.destroyShip()
	return true
}

// resolveMutual consumes both projectiles of a missile and bomb collision
func (p *PlayArea) resolveMutual(c physics.Contact) bool {
	if _, okA := p.bodyBounds(c.A); !okA {
		return false
	}
	if _, okB := p.bodyBounds(c.B); !okB {
		return false
	}
	p.deactivate(c.A)
	p.deactivate(c.B)
	p.addExplosion(ExplosionShield, c.Point)
	p.events.Emit(event.EventProjectilesCollided, c.Point, 0)
	return true
}
