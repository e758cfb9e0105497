package playarea

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/space-invasion/entity"
	"github.com/lixenwraith/space-invasion/event"
	"github.com/lixenwraith/space-invasion/formation"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/physics"
	"github.com/lixenwraith/space-invasion/vmath"
)

const frame = parameter.NominalFrame

type fakeControls struct {
	left, right, fire bool
}

func (c *fakeControls) MoveLeftPressed() bool  { return c.left }
func (c *fakeControls) MoveRightPressed() bool { return c.right }
func (c *fakeControls) FirePressed() bool      { return c.fire }

type fakeKeeper struct {
	score             int
	shipDestroyed     int
	invadersDestroyed int
	onCleared         func()
}

func (k *fakeKeeper) AddToScore(n int) { k.score += n }
func (k *fakeKeeper) ShipDestroyed()   { k.shipDestroyed++ }
func (k *fakeKeeper) InvadersDestroyed() {
	k.invadersDestroyed++
	if k.onCleared != nil {
		k.onCleared()
	}
}

// frozenSettings keeps the formation still and the Ufo away
func frozenSettings() Settings {
	s := DefaultSettings()
	s.Formation.FrameUnit = time.Hour
	s.Formation.Seed = 11
	s.UfoInterval = 24 * time.Hour
	s.UfoJitter = 0
	return s
}

// bombingSettings steps fast and always drops slow bombs
func bombingSettings() Settings {
	s := frozenSettings()
	s.Formation.FrameUnit = time.Millisecond
	s.Formation.BombDropChance = 1
	s.Formation.FastBombChance = 0
	s.BombGrace = 0
	return s
}

func newTestArea(t *testing.T, settings Settings) (*PlayArea, *fakeControls, *fakeKeeper) {
	t.Helper()
	controls := &fakeControls{}
	keeper := &fakeKeeper{}
	p, err := NewBuilder(settings).WithControls(controls).WithScoreKeeper(keeper).Build()
	require.NoError(t, err)
	keeper.onCleared = p.SetupNextLevel
	p.Reset()
	return p, controls, keeper
}

func drainTypes(p *PlayArea) map[event.EventType]int {
	out := map[event.EventType]int{}
	for _, ev := range p.Events().Drain() {
		out[ev.Type]++
	}
	return out
}

// waitForPawnBomb runs frames until the pawn rank has a bomb in flight
func waitForPawnBomb(t *testing.T, p *PlayArea) *entity.Bomb {
	t.Helper()
	for i := 0; i < 200; i++ {
		p.Update(frame)
		if b := p.formation.Bomb(formation.RankPawn); b != nil {
			return b
		}
	}
	t.Fatal("no pawn bomb dropped")
	return nil
}

// ===== Builder =====

func TestBuilderRequiresCollaborators(t *testing.T) {
	_, err := NewBuilder(DefaultSettings()).WithScoreKeeper(&fakeKeeper{}).Build()
	assert.ErrorIs(t, err, ErrMissingControls)

	_, err = NewBuilder(DefaultSettings()).WithControls(&fakeControls{}).Build()
	assert.ErrorIs(t, err, ErrMissingScoreKeeper)

	q := event.NewQueue()
	p, err := NewBuilder(DefaultSettings()).
		WithControls(&fakeControls{}).
		WithScoreKeeper(&fakeKeeper{}).
		WithEvents(q).
		Build()
	require.NoError(t, err)
	assert.Same(t, q, p.Events())
	assert.Len(t, p.Shields(), parameter.NumShields)
}

func TestResetSeedsLevelOne(t *testing.T) {
	p, _, _ := newTestArea(t, frozenSettings())
	assert.Equal(t, 1, p.Formation().Level())
	assert.Equal(t, 55, p.Formation().Live())
	assert.True(t, p.Ship().Active)
	assert.Equal(t, 1, drainTypes(p)[event.EventLevelStarted])

	f := p.Frame()
	assert.Len(t, f.Invaders, 55)
	assert.Len(t, f.Shields, parameter.NumShields)
	assert.True(t, f.Ship.Active)
	assert.False(t, f.Missile.Active)
	assert.Equal(t, 1, f.Level)
}

// ===== Controls =====

func TestControlsMoveAndFire(t *testing.T) {
	p, controls, _ := newTestArea(t, frozenSettings())
	x := p.Ship().Position.X

	controls.left = true
	p.Update(frame)
	assert.Less(t, p.Ship().Position.X, x)

	controls.right = true
	x = p.Ship().Position.X
	p.Update(frame)
	assert.Equal(t, x, p.Ship().Position.X, "both directions cancel out")

	controls.left, controls.right, controls.fire = false, false, true
	p.Update(frame)
	require.True(t, p.Missile().Active)
	first := p.Missile().Position
	p.Update(frame)
	assert.Greater(t, p.Missile().Position.Y, first.Y, "held fire does not relaunch an active missile")
	assert.Equal(t, 1, drainTypes(p)[event.EventMissileFired])
}

func TestOversizedDeltaIsClamped(t *testing.T) {
	p, controls, _ := newTestArea(t, frozenSettings())
	controls.right = true
	x := p.Ship().Position.X
	p.Update(30 * time.Second)
	assert.InDelta(t, x+parameter.ShipSpeed*parameter.NominalFrame.Seconds(), p.Ship().Position.X, 1e-9)
}

// ===== Contact idempotence =====

func TestResolveTwiceAwardsOnce(t *testing.T) {
	p, _, keeper := newTestArea(t, frozenSettings())
	inv, ok := p.Formation().Lookup(0)
	require.True(t, ok)
	pos := p.Formation().Position(inv)
	require.True(t, p.Missile().Fire(pos))

	c := physics.Contact{
		A:     physics.Body{Category: physics.CategoryMissile},
		B:     physics.Body{Category: physics.CategoryInvader, ID: 0},
		Point: pos,
		Began: true,
	}
	assert.True(t, p.Resolve(c))
	assert.Equal(t, formation.RankGeneral.Score(), keeper.score)
	assert.False(t, p.Missile().Active)

	// Re-arm the missile, the invader is already gone
	require.True(t, p.Missile().Fire(pos))
	assert.False(t, p.Resolve(c))
	assert.Equal(t, formation.RankGeneral.Score(), keeper.score)
	assert.True(t, p.Missile().Active, "stale contact consumes nothing")
}

func TestResolveIgnoresStaleBodies(t *testing.T) {
	p, _, keeper := newTestArea(t, frozenSettings())

	// Inactive missile
	assert.False(t, p.Resolve(physics.Contact{
		A: physics.Body{Category: physics.CategoryMissile},
		B: physics.Body{Category: physics.CategoryInvader, ID: 3},
	}))
	// Unknown shield and bomb slot
	assert.False(t, p.Resolve(physics.Contact{
		A: physics.Body{Category: physics.CategoryBomb, ID: 9},
		B: physics.Body{Category: physics.CategoryShield, ID: 99},
	}))
	// Ship with an empty bomb slot
	assert.False(t, p.Resolve(physics.Contact{
		A: physics.Body{Category: physics.CategoryBomb, ID: 0},
		B: physics.Body{Category: physics.CategoryShip},
	}))
	assert.Zero(t, keeper.score)
	assert.Zero(t, keeper.shipDestroyed)
	assert.Equal(t, 55, p.Formation().Live())
}

func TestRulePriorityShieldBeforeInvader(t *testing.T) {
	require.Equal(t, "shield", rules[0].name)
	require.Equal(t, "invader", rules[1].name)
	require.Equal(t, "ufo", rules[2].name)
	require.Equal(t, "ship", rules[3].name)
	require.Equal(t, "mutual", rules[4].name)
}

// ===== End-to-end: clear a level =====

func TestClearingFormationReseedsOneRowDeeper(t *testing.T) {
	p, _, keeper := newTestArea(t, frozenSettings())
	startY := p.Formation().Offset().Y

	rng := vmath.NewFastRand(5)
	for p.Formation().Level() == 1 {
		invs := p.Formation().Invaders()
		require.NotEmpty(t, invs)
		target := invs[rng.Intn(len(invs))]
		pos := p.Formation().Position(target)

		// Launch just under the target, the next frame overlaps only it
		require.True(t, p.Missile().Fire(vmath.Vec2{X: pos.X, Y: pos.Y - 20}))
		live := p.Formation().Live()
		p.Update(frame)
		if p.Formation().Level() == 1 {
			require.Equal(t, live-1, p.Formation().Live())
			_, still := p.Formation().Lookup(target.ID)
			require.False(t, still)
		}
	}

	assert.Equal(t, 1, keeper.invadersDestroyed)
	assert.Equal(t, 11*30+22*20+22*10, keeper.score)
	assert.Equal(t, 2, p.Formation().Level())
	assert.Equal(t, 55, p.Formation().Live())
	assert.Equal(t, startY-parameter.InvaderCellHeight, p.Formation().Offset().Y)
	assert.False(t, p.Missile().Active)

	types := drainTypes(p)
	assert.Equal(t, 55, types[event.EventInvaderDestroyed])
	assert.Equal(t, 2, types[event.EventLevelStarted])

	// Nothing further fires on quiet frames
	for i := 0; i < 10; i++ {
		p.Update(frame)
	}
	assert.Equal(t, 1, keeper.invadersDestroyed)
}

// ===== End-to-end: ship hit =====

func TestShipHitSuspendsBombsUntilRespawn(t *testing.T) {
	p, _, keeper := newTestArea(t, bombingSettings())

	bomb := waitForPawnBomb(t, p)
	p.Events().Drain()

	// Drop the bomb onto the ship between the middle shields
	p.Ship().Position.X = parameter.PlayAreaWidth / 2
	bomb.Position = vmath.Vec2{X: p.Ship().Position.X, Y: p.Ship().Position.Y + 20}
	p.Update(frame)

	require.Equal(t, 1, keeper.shipDestroyed)
	assert.False(t, p.Ship().Active)
	assert.False(t, bomb.Active)
	assert.True(t, p.Formation().Held())
	assert.Empty(t, p.Formation().Bombs())
	remaining, pending := p.RespawnPending()
	require.True(t, pending)
	assert.Equal(t, parameter.ShipRespawnDelay, remaining)
	assert.Equal(t, 1, drainTypes(p)[event.EventShipDestroyed])

	offset := p.Formation().Offset()
	var waited time.Duration
	for waited+frame < parameter.ShipRespawnDelay {
		p.Update(frame)
		waited += frame
		require.False(t, p.Ship().Active, "ship back early at %v", waited)
		require.Empty(t, p.Formation().Bombs(), "bomb dropped during respawn at %v", waited)
	}
	assert.Equal(t, offset, p.Formation().Offset(), "formation held in place")
	assert.Zero(t, drainTypes(p)[event.EventBombDropped])

	p.Update(frame)
	require.True(t, p.Ship().Active)
	assert.False(t, p.Formation().Held())
	_, pending = p.RespawnPending()
	assert.False(t, pending)

	waitForPawnBomb(t, p)
	assert.Equal(t, 1, keeper.shipDestroyed)
	types := drainTypes(p)
	assert.Equal(t, 1, types[event.EventShipRespawned])
	assert.Positive(t, types[event.EventBombDropped])
}

// ===== Shields =====

func TestBombErodesShieldOnce(t *testing.T) {
	p, _, keeper := newTestArea(t, bombingSettings())
	bomb := waitForPawnBomb(t, p)
	p.Events().Drain()

	shield := p.Shields()[1]
	before := shield.Intact()
	bomb.Position = vmath.Vec2{X: shield.Position.X, Y: shield.Frame().Max.Y + 8}
	for i := 0; i < 10 && bomb.Active; i++ {
		p.Update(frame)
	}

	assert.False(t, bomb.Active)
	assert.Less(t, shield.Intact(), before)
	assert.Zero(t, keeper.shipDestroyed)
	assert.Equal(t, 1, drainTypes(p)[event.EventShieldEroded])
}

func TestMissilePassesThroughHole(t *testing.T) {
	p, _, _ := newTestArea(t, frozenSettings())
	shield := p.Shields()[0]
	frame0 := shield.Frame()

	// Punch a full-height hole in the middle columns
	hole := vmath.Rect{
		Min: vmath.Vec2{X: shield.Position.X - 8, Y: frame0.Min.Y},
		Max: vmath.Vec2{X: shield.Position.X + 8, Y: frame0.Max.Y},
	}
	shield.Erode(hole)
	before := shield.Intact()

	require.True(t, p.Missile().Fire(vmath.Vec2{X: shield.Position.X, Y: frame0.Min.Y - 10}))
	for i := 0; i < 20 && p.Missile().Position.Y < frame0.Max.Y+20; i++ {
		p.Update(frame)
	}
	assert.True(t, p.Missile().Active)
	assert.Equal(t, before, shield.Intact())
}

func TestInvaderErodesShieldWhileOverlapping(t *testing.T) {
	s := frozenSettings()
	s.Formation.FrameUnit = time.Millisecond
	p, _, _ := newTestArea(t, s)

	shield := p.Shields()[0]
	snap := p.Formation().Snapshot()
	snap.Offset = vmath.Vec2{X: shield.Frame().Min.X - 10, Y: shield.Position.Y + 4}
	snap.Invaders = []formation.InvaderState{{ID: 0, Rank: formation.RankGeneral, Row: 0, Column: 0}}
	snap.Direction = entity.DirectionRight
	require.NoError(t, p.Formation().Restore(snap))
	require.False(t, p.Invaded())

	full := shield.Intact()
	p.Update(frame)
	afterFirst := shield.Intact()
	require.Less(t, afterFirst, full)

	// The invader keeps stepping right across the shield, erosion continues on ongoing contact
	for i := 0; i < 5; i++ {
		p.Update(frame)
	}
	assert.Less(t, shield.Intact(), afterFirst)
}

// restoreLoneInvader replaces the formation with one general centred at pos
func restoreLoneInvader(t *testing.T, p *PlayArea, pos vmath.Vec2) formation.Invader {
	t.Helper()
	snap := p.Formation().Snapshot()
	snap.Offset = pos
	snap.Invaders = []formation.InvaderState{{ID: 0, Rank: formation.RankGeneral, Row: 0, Column: 0}}
	snap.Direction = entity.DirectionRight
	require.NoError(t, p.Formation().Restore(snap))
	inv, ok := p.Formation().Lookup(0)
	require.True(t, ok)
	return inv
}

func TestInvaderNestedInShieldErodes(t *testing.T) {
	p, _, _ := newTestArea(t, frozenSettings())

	shield := p.Shields()[2]
	inv := restoreLoneInvader(t, p, shield.Position)
	invBox := p.Formation().InvaderBounds(inv)
	shieldBox, ok := shield.Bounds()
	require.True(t, ok)
	overlap, ok := shieldBox.Intersect(invBox)
	require.True(t, ok)
	require.Equal(t, invBox, overlap, "invader box lies inside the shield")
	require.False(t, p.Invaded())
	require.True(t, shield.IntactUnder(invBox))

	full := shield.Intact()
	p.Update(frame)
	assert.Less(t, shield.Intact(), full)
	assert.False(t, shield.IntactUnder(invBox))
	assert.Equal(t, 1, drainTypes(p)[event.EventShieldEroded])

	// Nothing left under the invader, later frames clear no more cells
	after := shield.Intact()
	p.Update(frame)
	assert.Equal(t, after, shield.Intact())
	assert.Equal(t, 1, p.Formation().Live())
}

func TestMissileOnShieldAndInvaderHitsShieldFirst(t *testing.T) {
	p, _, keeper := newTestArea(t, frozenSettings())

	shield := p.Shields()[1]
	top := shield.Frame().Max.Y
	// Invader sits just above the shield, the missile spans the top cells and the invader's lower edge
	inv := restoreLoneInvader(t, p, vmath.Vec2{X: shield.Position.X, Y: top + parameter.InvaderHeight/2 + 1})
	invBox := p.Formation().InvaderBounds(inv)
	_, touching := invBox.Intersect(shield.Frame())
	require.False(t, touching)

	before := shield.Intact()
	step := parameter.MissileSpeed * frame.Seconds()
	require.True(t, p.Missile().Fire(vmath.Vec2{X: shield.Position.X, Y: top - 2 - step}))
	p.Update(frame)

	assert.False(t, p.Missile().Active)
	assert.Less(t, shield.Intact(), before)
	assert.Zero(t, keeper.score)
	assert.Zero(t, keeper.invadersDestroyed)
	_, alive := p.Formation().Lookup(inv.ID)
	assert.True(t, alive)
	types := drainTypes(p)
	assert.Equal(t, 1, types[event.EventShieldEroded])
	assert.Zero(t, types[event.EventInvaderDestroyed])
}

// ===== Projectiles =====

func TestMissileAndBombDestroyEachOther(t *testing.T) {
	p, _, _ := newTestArea(t, bombingSettings())
	bomb := waitForPawnBomb(t, p)
	p.Events().Drain()

	bomb.Position = vmath.Vec2{X: 20, Y: 400}
	require.True(t, p.Missile().Fire(vmath.Vec2{X: 20, Y: 385}))
	p.Update(frame)

	assert.False(t, bomb.Active)
	assert.False(t, p.Missile().Active)
	assert.Equal(t, 1, drainTypes(p)[event.EventProjectilesCollided])
}

// ===== Ufo =====

func TestUfoSpawnsAndScores(t *testing.T) {
	s := frozenSettings()
	s.UfoInterval = time.Second
	p, _, keeper := newTestArea(t, s)

	for i := 0; i < 61; i++ {
		p.Update(frame)
	}
	require.True(t, p.Ufo().Active)
	assert.Equal(t, 1, drainTypes(p)[event.EventUfoSpawned])

	ufo := p.Ufo()
	ufo.Position.X = 300
	require.True(t, p.Missile().Fire(vmath.Vec2{X: 300, Y: ufo.Position.Y - 20}))
	p.Update(frame)

	assert.False(t, ufo.Active)
	assert.Contains(t, []int{50, 100, 150, 300}, keeper.score)
	assert.Equal(t, 1, drainTypes(p)[event.EventUfoDestroyed])

	f := p.Frame()
	require.Len(t, f.Explosions, 1)
	assert.Equal(t, ExplosionUfo, f.Explosions[0].Kind)
	assert.Equal(t, keeper.score, f.Explosions[0].Score, "explosion shows the awarded score")
	assert.Equal(t, ExplosionUfo.Duration(), f.Explosions[0].Remaining)
	assert.Equal(t, 1, p.timers.Pending(), "next Ufo scheduled")
}

func TestUfoNeedsEnoughInvaders(t *testing.T) {
	s := frozenSettings()
	s.UfoInterval = time.Second
	p, _, _ := newTestArea(t, s)

	for _, inv := range p.Formation().Invaders()[parameter.UfoMinInvaders-1:] {
		p.Formation().Remove(inv.ID)
	}
	require.Less(t, p.Formation().Live(), parameter.UfoMinInvaders)

	for i := 0; i < 180; i++ {
		p.Update(frame)
	}
	assert.False(t, p.Ufo().Active)
}

func TestInvadedAfterDescent(t *testing.T) {
	p, _, _ := newTestArea(t, frozenSettings())
	snap := p.Formation().Snapshot()
	snap.Offset.Y = parameter.InvadersMinY + 4*parameter.InvaderCellHeight - 1
	require.NoError(t, p.Formation().Restore(snap))
	assert.True(t, p.Invaded())
}
