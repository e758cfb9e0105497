package entity

import (
	"time"

	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

// Ship is the player cannon, Position is its centre
type Ship struct {
	Position  vmath.Vec2
	Active    bool
	Direction Direction
}

// NewShip creates an active ship centred on the ship line
func NewShip() *Ship {
	s := &Ship{}
	s.Reset()
	return s
}

// Reset puts the ship back at the centre of the ship line
func (s *Ship) Reset() {
	s.Position = vmath.Vec2{X: parameter.PlayAreaWidth / 2, Y: parameter.ShipY}
	s.Active = true
	s.Direction = DirectionNone
}

// Move advances the ship along its direction, clamped to the ship lane
func (s *Ship) Move(dt time.Duration) {
	if !s.Active || s.Direction == DirectionNone {
		return
	}
	x := s.Position.X + float64(s.Direction)*parameter.ShipSpeed*dt.Seconds()
	s.Position.X = vmath.Clamp(x, parameter.ShipMinX, parameter.ShipMaxX)
}

// Nose is the spawn point of a missile
func (s *Ship) Nose() vmath.Vec2 {
	return vmath.Vec2{X: s.Position.X, Y: s.Position.Y + parameter.ShipHeight/2}
}

func (s *Ship) Bounds() vmath.Rect {
	return vmath.RectCentered(s.Position, vmath.Size{W: parameter.ShipWidth, H: parameter.ShipHeight})
}
