package entity

// Direction is a horizontal heading, its value is the X sign of movement
type Direction int

const (
	DirectionLeft  Direction = -1
	DirectionNone  Direction = 0
	DirectionRight Direction = 1
)

// Reverse flips Left and Right, None stays None
func (d Direction) Reverse() Direction {
	return -d
}

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}
