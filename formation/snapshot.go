package formation

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/space-invasion/entity"
	"github.com/lixenwraith/space-invasion/vmath"
)

// InvaderState is the persisted form of a live invader
type InvaderState struct {
	ID     int  `msgpack:"id"`
	Rank   Rank `msgpack:"rank"`
	Row    int  `msgpack:"row"`
	Column int  `msgpack:"col"`
}

// BombState is the persisted form of an in-flight bomb
type BombState struct {
	Rank     Rank            `msgpack:"rank"`
	Position vmath.Vec2      `msgpack:"pos"`
	Kind     entity.BombKind `msgpack:"kind"`
}

// Snapshot captures everything that influences future stepping
type Snapshot struct {
	Level        int              `msgpack:"level"`
	Offset       vmath.Vec2       `msgpack:"offset"`
	Direction    entity.Direction `msgpack:"dir"`
	Invaders     []InvaderState   `msgpack:"invaders"`
	Bombs        []BombState      `msgpack:"bombs"`
	ClockLast    time.Duration    `msgpack:"clock_last"`
	ClockElapsed time.Duration    `msgpack:"clock_elapsed"`
	Frame        int              `msgpack:"frame"`
	MarchIndex   int              `msgpack:"march"`
	BombsEnabled bool             `msgpack:"bombs_enabled"`
	Held         bool             `msgpack:"held"`
	RandState    uint64           `msgpack:"rng"`
}

// Snapshot captures the formation mid-level
func (f *Formation) Snapshot() Snapshot {
	s := Snapshot{
		Level:        f.level,
		Offset:       f.offset,
		Direction:    f.direction,
		Invaders:     make([]InvaderState, 0, len(f.invaders)),
		Frame:        f.frame,
		MarchIndex:   f.marchIndex,
		BombsEnabled: f.bombsEnabled,
		Held:         f.held,
		RandState:    f.rng.State(),
	}
	s.ClockLast, s.ClockElapsed = f.clock.State()

	for _, inv := range f.invaders {
		s.Invaders = append(s.Invaders, InvaderState{ID: inv.ID, Rank: inv.Rank, Row: inv.Row, Column: inv.Column})
	}
	for r := Rank(0); r < RankCount; r++ {
		if b := f.Bomb(r); b != nil {
			s.Bombs = append(s.Bombs, BombState{Rank: r, Position: b.Position, Kind: b.Kind})
		}
	}
	return s
}

// Restore replaces the formation state with a snapshot
func (f *Formation) Restore(s Snapshot) error {
	if s.Direction != entity.DirectionLeft && s.Direction != entity.DirectionRight {
		return fmt.Errorf("invalid march direction %d", s.Direction)
	}

	invaders := make([]*Invader, 0, len(s.Invaders))
	for _, is := range s.Invaders {
		if is.Rank < 0 || is.Rank >= RankCount {
			return fmt.Errorf("invader %d: invalid rank %d", is.ID, is.Rank)
		}
		invaders = append(invaders, &Invader{ID: is.ID, Rank: is.Rank, Row: is.Row, Column: is.Column, Alive: true})
	}

	var bombs [RankCount]*entity.Bomb
	for _, bs := range s.Bombs {
		if bs.Rank < 0 || bs.Rank >= RankCount {
			return fmt.Errorf("bomb: invalid rank %d", bs.Rank)
		}
		if bombs[bs.Rank] != nil {
			return fmt.Errorf("bomb: duplicate rank %s", bs.Rank)
		}
		bombs[bs.Rank] = entity.NewBomb(bs.Position, bs.Kind)
	}

	f.level = s.Level
	f.offset = s.Offset
	f.direction = s.Direction
	f.invaders = invaders
	f.bombs = bombs
	f.clock.Restore(s.ClockLast, s.ClockElapsed)
	f.frame = s.Frame
	f.marchIndex = s.MarchIndex
	f.bombsEnabled = s.BombsEnabled
	f.held = s.Held
	f.rng.Restore(s.RandState)
	return nil
}

// Encode serializes a snapshot with msgpack
func (s Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode formation snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a msgpack snapshot
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode formation snapshot: %w", err)
	}
	return s, nil
}
