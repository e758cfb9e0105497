package parameter

// Terminal mapping
const (
	// UnitsPerColumn and UnitsPerRow size one terminal cell in play area units
	UnitsPerColumn = 8.0
	UnitsPerRow    = 24.0

	// HUDRows are reserved above the play field
	HUDRows = 1

	// GroundY is where the ground line is drawn, just under the ship
	GroundY = ShipY - ShipHeight
)
