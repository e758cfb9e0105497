package entity

import (
	"time"

	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

var ufoSize = vmath.Size{W: parameter.UfoWidth, H: parameter.UfoHeight}

// Ufo is the bonus target crossing the top of the play area
type Ufo struct {
	Position  vmath.Vec2
	Active    bool
	Direction Direction
}

// Spawn places the Ufo just outside the edge it enters from
func (u *Ufo) Spawn(dir Direction) {
	x := -parameter.UfoWidth / 2
	if dir == DirectionLeft {
		x = parameter.PlayAreaWidth + parameter.UfoWidth/2
	}
	u.Position = vmath.Vec2{X: x, Y: parameter.UfoY}
	u.Direction = dir
	u.Active = true
}

// Update moves the Ufo, returns true on the frame it leaves the far edge
func (u *Ufo) Update(dt time.Duration) bool {
	if !u.Active {
		return false
	}
	u.Position.X += float64(u.Direction) * parameter.UfoSpeed * dt.Seconds()

	half := parameter.UfoWidth / 2
	if (u.Direction == DirectionRight && u.Position.X-half > parameter.PlayAreaWidth) ||
		(u.Direction == DirectionLeft && u.Position.X+half < 0) {
		u.Active = false
		return true
	}
	return false
}

func (u *Ufo) Deactivate() {
	u.Active = false
}

func (u *Ufo) Bounds() vmath.Rect {
	return vmath.RectCentered(u.Position, ufoSize)
}

// DetermineScore maps a uniform roll in [0, 1) onto the Ufo score table
func DetermineScore(roll float64) int {
	for _, bucket := range parameter.UfoScoreTable {
		if roll < bucket.Threshold {
			return bucket.Score
		}
	}
	return parameter.UfoScoreTable[len(parameter.UfoScoreTable)-1].Score
}

// DrawScore rolls a Ufo score from rng
func DrawScore(rng *vmath.FastRand) int {
	return DetermineScore(rng.Float64())
}
