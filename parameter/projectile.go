package parameter

// Missile
const (
	MissileWidth  = 4.0
	MissileHeight = 16.0

	// MissileSpeed is in units per second
	MissileSpeed = 360.0

	// MissileMaxY deactivates the missile once its centre rises past it
	MissileMaxY = 705.0
)

// Bombs
const (
	BombWidth  = 8.0
	BombHeight = 20.0

	BombSlowSpeed = 240.0
	BombFastSpeed = 360.0

	// BombMinY is the ship line, bombs falling below it deactivate
	BombMinY = ShipY
)

// Damage masks, width x height in shield cells, punched centred on the contact point
const (
	BombMaskCellsW    = 4
	BombMaskCellsH    = 5
	MissileMaskCellsW = 2
	MissileMaskCellsH = 4
)
