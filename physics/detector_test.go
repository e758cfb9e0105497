package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/space-invasion/vmath"
)

var (
	missile = Body{Category: CategoryMissile}
	ship    = Body{Category: CategoryShip}
	ufo     = Body{Category: CategoryUfo}
)

func box(x, y, w, h float64) vmath.Rect {
	return vmath.RectFromMin(vmath.Vec2{X: x, Y: y}, vmath.Size{W: w, H: h})
}

func newTestDetector() *Detector {
	return NewDetector(744, 768, 32)
}

func TestDetectMissileInvader(t *testing.T) {
	d := newTestDetector()
	invader := Body{Category: CategoryInvader, ID: 14}

	contacts := d.Detect([]Collider{
		{Body: invader, Bounds: box(100, 400, 36, 24)},
		{Body: missile, Bounds: box(110, 390, 4, 16)},
	})
	require.Len(t, contacts, 1)
	c := contacts[0]
	assert.Equal(t, missile, c.A, "lower category sorts first")
	assert.Equal(t, invader, c.B)
	assert.True(t, c.Began)
	assert.Equal(t, vmath.Vec2{X: 112, Y: 403}, c.Point)

	this, other, ok := c.Split(CategoryInvader)
	require.True(t, ok)
	assert.Equal(t, invader, this)
	assert.Equal(t, missile, other)
	assert.True(t, c.Involves(CategoryMissile))
	assert.False(t, c.Involves(CategoryShield))
}

func TestDetectBeganTracking(t *testing.T) {
	d := newTestDetector()
	shield := Body{Category: CategoryShield, ID: 2}
	invader := Body{Category: CategoryInvader, ID: 40}
	shieldBox := box(300, 168, 68, 48)

	overlapping := []Collider{
		{Body: shield, Bounds: shieldBox},
		{Body: invader, Bounds: box(310, 200, 36, 24)},
	}
	first := d.Detect(overlapping)
	require.Len(t, first, 1)
	assert.True(t, first[0].Began)

	second := d.Detect(overlapping)
	require.Len(t, second, 1)
	assert.False(t, second[0].Began, "continuing overlap")

	apart := []Collider{
		{Body: shield, Bounds: shieldBox},
		{Body: invader, Bounds: box(500, 400, 36, 24)},
	}
	assert.Empty(t, d.Detect(apart))

	again := d.Detect(overlapping)
	require.Len(t, again, 1)
	assert.True(t, again[0].Began)

	d.Forget(shield, invader)
	forgotten := d.Detect(overlapping)
	require.Len(t, forgotten, 1)
	assert.True(t, forgotten[0].Began)
}

func TestDetectTouchingEdgesIsNotContact(t *testing.T) {
	d := newTestDetector()
	contacts := d.Detect([]Collider{
		{Body: ufo, Bounds: box(200, 680, 48, 21)},
		{Body: missile, Bounds: box(248, 680, 4, 16)},
	})
	assert.Empty(t, contacts)
}

func TestDetectIgnoresNonInteractingPairs(t *testing.T) {
	d := newTestDetector()
	contacts := d.Detect([]Collider{
		{Body: ship, Bounds: box(300, 108, 44, 24)},
		{Body: Body{Category: CategoryShield}, Bounds: box(300, 108, 68, 48)},
		{Body: Body{Category: CategoryInvader, ID: 3}, Bounds: box(500, 600, 36, 24)},
		{Body: ufo, Bounds: box(500, 600, 48, 21)},
	})
	assert.Empty(t, contacts)
}

func TestDetectPairReportedOnce(t *testing.T) {
	d := newTestDetector()
	bomb := Body{Category: CategoryBomb, ID: 1}
	contacts := d.Detect([]Collider{
		{Body: bomb, Bounds: box(400, 300, 8, 20)},
		{Body: missile, Bounds: box(402, 310, 4, 16)},
	})
	require.Len(t, contacts, 1)
	assert.Equal(t, missile, contacts[0].A)
	assert.Equal(t, bomb, contacts[0].B)
}

func TestDetectMultipleContactsOrdered(t *testing.T) {
	d := newTestDetector()
	bomb0 := Body{Category: CategoryBomb, ID: 0}
	bomb2 := Body{Category: CategoryBomb, ID: 2}
	contacts := d.Detect([]Collider{
		{Body: ship, Bounds: box(300, 108, 44, 24)},
		{Body: bomb2, Bounds: box(330, 110, 8, 20)},
		{Body: bomb0, Bounds: box(305, 110, 8, 20)},
	})
	require.Len(t, contacts, 2)
	assert.Equal(t, bomb0, contacts[0].A)
	assert.Equal(t, bomb2, contacts[1].A)
	assert.Equal(t, ship, contacts[0].B)
}

func TestDetectNestedBoxes(t *testing.T) {
	tests := []struct {
		name  string
		outer Collider
		inner Collider
	}{
		{
			name:  "bomb inside ship",
			outer: Collider{Body: ship, Bounds: box(300, 108, 44, 24)},
			inner: Collider{Body: Body{Category: CategoryBomb, ID: 1}, Bounds: box(318, 112, 8, 16)},
		},
		{
			name:  "invader inside shield",
			outer: Collider{Body: Body{Category: CategoryShield, ID: 3}, Bounds: box(300, 168, 68, 48)},
			inner: Collider{Body: Body{Category: CategoryInvader, ID: 9}, Bounds: box(316, 180, 36, 24)},
		},
		{
			name:  "missile inside invader",
			outer: Collider{Body: Body{Category: CategoryInvader, ID: 4}, Bounds: box(100, 400, 36, 24)},
			inner: Collider{Body: missile, Bounds: box(116, 404, 4, 16)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlap, ok := tt.outer.Bounds.Intersect(tt.inner.Bounds)
			require.True(t, ok)
			require.Equal(t, tt.inner.Bounds, overlap, "inner box must be fully contained")

			for _, order := range [][]Collider{{tt.outer, tt.inner}, {tt.inner, tt.outer}} {
				d := newTestDetector()
				contacts := d.Detect(order)
				require.Len(t, contacts, 1)
				assert.True(t, contacts[0].Began)
				assert.Equal(t, tt.inner.Bounds.Center(), contacts[0].Point)
			}
		})
	}
}

func TestDetectContactSurvivesNesting(t *testing.T) {
	d := newTestDetector()
	shield := Body{Category: CategoryShield, ID: 0}
	invader := Body{Category: CategoryInvader, ID: 12}
	shieldBox := box(300, 168, 68, 48)

	// Straddling the left edge, then fully inside, then straddling the right edge
	steps := []vmath.Rect{
		box(280, 180, 36, 24),
		box(316, 180, 36, 24),
		box(350, 180, 36, 24),
	}
	for i, b := range steps {
		contacts := d.Detect([]Collider{
			{Body: shield, Bounds: shieldBox},
			{Body: invader, Bounds: b},
		})
		require.Len(t, contacts, 1, "step %d", i)
		assert.Equal(t, i == 0, contacts[0].Began, "step %d", i)
	}

	// Edges touching share no area
	contacts := d.Detect([]Collider{
		{Body: shield, Bounds: shieldBox},
		{Body: invader, Bounds: box(368, 180, 36, 24)},
	})
	assert.Empty(t, contacts)
}

func TestDetectSyncRemovesAndResizes(t *testing.T) {
	d := newTestDetector()
	shield := Body{Category: CategoryShield}
	d.Detect([]Collider{
		{Body: shield, Bounds: box(300, 168, 68, 48)},
		{Body: missile, Bounds: box(500, 500, 4, 16)},
	})
	assert.Equal(t, 2, d.Len())

	// Shield eroded from the top, missile passes over the remaining part
	contacts := d.Detect([]Collider{
		{Body: shield, Bounds: box(300, 168, 68, 20)},
		{Body: missile, Bounds: box(320, 200, 4, 16)},
	})
	assert.Empty(t, contacts)
	assert.Equal(t, 2, d.Len())

	d.Detect([]Collider{{Body: shield, Bounds: box(300, 168, 68, 20)}})
	assert.Equal(t, 1, d.Len())

	d.Reset()
	assert.Zero(t, d.Len())
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "shield", CategoryShield.String())
	assert.Equal(t, "unknown", Category(42).String())
	assert.Equal(t, "invader#7", Body{Category: CategoryInvader, ID: 7}.String())
	assert.True(t, CategoryBomb.IsProjectile())
	assert.False(t, CategoryUfo.IsProjectile())
}
