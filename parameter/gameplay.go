package parameter

import "time"

// Formation Cadence
const (
	// FormationFrameUnit is the step interval contributed by each live invader
	FormationFrameUnit = time.Second / 120

	// MarchSoundCount is the number of march tones cycled per step
	MarchSoundCount = 4
)

// Bomb Policy
const (
	// BombDropChance is rolled once per rank per formation step
	BombDropChance = 0.07

	// FastBombChance selects the fast variant of a dropped bomb
	FastBombChance = 0.15

	// BombGraceDelay keeps bombs disabled at level start
	BombGraceDelay = time.Second
)

// Ship
const (
	// ShipSpeed is in units per second
	ShipSpeed = 192.0

	ShipRespawnDelay = 2 * time.Second
)

// Ufo
const (
	UfoSpeed = 150.0

	// UfoMinInvaders is the live count below which no Ufo appears
	UfoMinInvaders = 8

	UfoSpawnInterval = 20 * time.Second
	UfoSpawnJitter   = 10 * time.Second
)

// Ufo score table, cumulative thresholds over a uniform roll
var UfoScoreTable = []struct {
	Threshold float64
	Score     int
}{
	{0.05, 300},
	{0.25, 150},
	{0.75, 100},
	{1.00, 50},
}

// Session
const (
	StartingLives = 3

	// LimboDuration is the pause between a lost life and play resuming
	LimboDuration = 2 * time.Second
)

// Presentation timings
const (
	InvaderExplosionDuration = 500 * time.Millisecond
	ShipExplosionDuration    = ShipRespawnDelay
	UfoScoreDisplayDuration  = time.Second
)
