package formation

import (
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

// Rank is an invader tier, it selects score and sprite
type Rank int

const (
	RankPawn Rank = iota
	RankCaptain
	RankGeneral

	RankCount = 3
)

var rankScores = [RankCount]int{
	RankPawn:    10,
	RankCaptain: 20,
	RankGeneral: 30,
}

var rankNames = [RankCount]string{
	RankPawn:    "pawn",
	RankCaptain: "captain",
	RankGeneral: "general",
}

// Score is the award for destroying an invader of this rank
func (r Rank) Score() int {
	if r < 0 || r >= RankCount {
		return 0
	}
	return rankScores[r]
}

func (r Rank) String() string {
	if r < 0 || r >= RankCount {
		return "unknown"
	}
	return rankNames[r]
}

// rankForRow assigns ranks top row first
var rankForRow = [parameter.InvaderRows]Rank{
	RankGeneral,
	RankCaptain,
	RankCaptain,
	RankPawn,
	RankPawn,
}

var (
	invaderSize = vmath.Size{W: parameter.InvaderWidth, H: parameter.InvaderHeight}
	cellSize    = vmath.Size{W: parameter.InvaderCellWidth, H: parameter.InvaderCellHeight}
)

// Invader is one member of the grid, Row 0 is the top row
// Row and Column never change after creation
type Invader struct {
	ID     int
	Rank   Rank
	Row    int
	Column int
	Alive  bool
}

// Local is the invader centre relative to the formation offset
func (inv Invader) Local() vmath.Vec2 {
	return vmath.V2MulSize(vmath.Vec2{X: float64(inv.Column), Y: -float64(inv.Row)}, cellSize)
}
