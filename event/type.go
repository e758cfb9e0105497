package event

import "github.com/lixenwraith/space-invasion/vmath"

// EventType represents the type of presentation event emitted by the simulation
type EventType int

const (
	// EventInvadersStepped fires once per formation step
	// Value: march sound index
	EventInvadersStepped EventType = iota

	// EventInvaderDestroyed fires when a missile removes an invader
	// Position: invader centre | Value: awarded score
	EventInvaderDestroyed

	// EventBombDropped fires when a rank slot receives a bomb
	// Position: bomb spawn | Value: 1 for a fast bomb
	EventBombDropped

	// EventMissileFired fires when the ship launches a missile
	EventMissileFired

	// EventShipDestroyed fires when a bomb or invader hits the ship
	EventShipDestroyed

	// EventShipRespawned fires when the respawn timer elapses
	EventShipRespawned

	// EventUfoSpawned fires when a Ufo enters the play area
	// Value: direction, -1 left or 1 right
	EventUfoSpawned

	// EventUfoDestroyed fires when a missile hits the Ufo
	// Value: awarded score
	EventUfoDestroyed

	// EventUfoEscaped fires when the Ufo leaves the far edge
	EventUfoEscaped

	// EventShieldEroded fires when a shield loses cells
	// Value: shield index
	EventShieldEroded

	// EventProjectilesCollided fires when a missile and a bomb destroy each other
	EventProjectilesCollided

	// EventLevelStarted fires after the formation is seeded
	// Value: level number
	EventLevelStarted

	// EventLifeLost fires when the session deducts a life
	// Value: remaining lives
	EventLifeLost

	// EventGameOver fires once per session end
	// Value: final score
	EventGameOver
)

var typeNames = [...]string{
	EventInvadersStepped:     "invaders_stepped",
	EventInvaderDestroyed:    "invader_destroyed",
	EventBombDropped:         "bomb_dropped",
	EventMissileFired:        "missile_fired",
	EventShipDestroyed:       "ship_destroyed",
	EventShipRespawned:       "ship_respawned",
	EventUfoSpawned:          "ufo_spawned",
	EventUfoDestroyed:        "ufo_destroyed",
	EventUfoEscaped:          "ufo_escaped",
	EventShieldEroded:        "shield_eroded",
	EventProjectilesCollided: "projectiles_collided",
	EventLevelStarted:        "level_started",
	EventLifeLost:            "life_lost",
	EventGameOver:            "game_over",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Event is a single presentation notification
type Event struct {
	Type     EventType
	Position vmath.Vec2
	Value    int
}
