package formation

import (
	"github.com/lixenwraith/space-invasion/entity"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

// dropBombs runs the per-step lottery
// Each rank with a free slot rolls once; on success one of its bottom-of-column
// invaders is picked uniformly and releases a bomb
func (f *Formation) dropBombs() []*entity.Bomb {
	var dropped []*entity.Bomb
	bottom := f.bottomRowByColumn()

	for r := Rank(0); r < RankCount; r++ {
		if f.Bomb(r) != nil {
			continue
		}
		eligible := f.bottomInvaders(r, bottom)
		if len(eligible) == 0 {
			continue
		}
		if !f.rng.Chance(f.cfg.BombDropChance) {
			continue
		}
		inv := eligible[f.rng.Intn(len(eligible))]
		dropped = append(dropped, f.dropBomb(inv))
	}
	return dropped
}

func (f *Formation) dropBomb(inv *Invader) *entity.Bomb {
	kind := entity.BombSlow
	if f.rng.Chance(f.cfg.FastBombChance) {
		kind = entity.BombFast
	}
	pos := vmath.V2Sub(f.Position(*inv), vmath.Vec2{Y: parameter.InvaderHeight})
	b := entity.NewBomb(pos, kind)
	f.bombs[inv.Rank] = b
	return b
}

// bottomRowByColumn maps each occupied column to its lowest live row
func (f *Formation) bottomRowByColumn() map[int]int {
	bottom := make(map[int]int, f.cfg.InvadersPerRow)
	for _, inv := range f.invaders {
		if row, ok := bottom[inv.Column]; !ok || inv.Row > row {
			bottom[inv.Column] = inv.Row
		}
	}
	return bottom
}

func (f *Formation) bottomInvaders(r Rank, bottom map[int]int) []*Invader {
	var out []*Invader
	for _, inv := range f.invaders {
		if inv.Rank == r && bottom[inv.Column] == inv.Row {
			out = append(out, inv)
		}
	}
	return out
}
