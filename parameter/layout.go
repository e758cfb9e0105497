package parameter

// Play Area
// Units are logical play-area units, origin bottom-left, Y grows upward
const (
	PlayAreaWidth  = 744.0
	PlayAreaHeight = 768.0
)

// Invader Grid
const (
	InvadersPerRow = 11
	InvaderRows    = 5

	InvaderWidth  = 36.0
	InvaderHeight = 24.0

	// InvaderPaddingX/Y separate neighbouring invaders, cell = size + padding
	InvaderPaddingX = 12.0
	InvaderPaddingY = 24.0

	InvaderCellWidth  = InvaderWidth + InvaderPaddingX  // 48
	InvaderCellHeight = InvaderHeight + InvaderPaddingY // 48

	// InvadersMinX/MaxX bound the centres of the outermost live columns
	InvadersMinX = 72.0
	InvadersMaxX = 672.0

	// InvadersMinY is the defensive line; the bottom row crossing it is an invasion
	InvadersMinY = 148.0

	// InvadersMaxY is the top row Y at level one
	InvadersMaxY = 580.0

	// InvaderStepX is the horizontal move of one formation step
	InvaderStepX = 8.0

	// InvaderStepY is the descend of one formation step
	InvaderStepY = 24.0

	// MaxLevel caps the start row offset, deeper starts would seed the bottom row below InvadersMinY
	MaxLevel = 4
)

// Ship
const (
	ShipWidth  = 44.0
	ShipHeight = 24.0

	ShipMargin = 90.0
	ShipMinX   = ShipMargin
	ShipMaxX   = PlayAreaWidth - ShipMargin

	ShipY = 120.0

	// LivesIndicatorY is where the spare ship icons are drawn
	LivesIndicatorY = 60.0
)

// Shields
const (
	NumShields   = 4
	ShieldWidth  = 68.0
	ShieldHeight = 48.0
	ShieldY      = ShipY + 72.0

	// ShieldCellSize is the edge of one erodable cell of the shield bitmap
	ShieldCellSize = 4.0
)

// Ufo
const (
	UfoWidth  = 48.0
	UfoHeight = 21.0
	UfoY      = 680.0
)
