package playarea

import (
	"time"

	"github.com/lixenwraith/space-invasion/formation"
	"github.com/lixenwraith/space-invasion/parameter"
)

// Settings holds play area tuning
type Settings struct {
	Formation formation.Config

	NumShields   int
	RespawnDelay time.Duration
	BombGrace    time.Duration

	UfoInterval time.Duration
	UfoJitter   time.Duration
}

// DefaultSettings returns the stock tuning
func DefaultSettings() Settings {
	return Settings{
		Formation:    formation.DefaultConfig(),
		NumShields:   parameter.NumShields,
		RespawnDelay: parameter.ShipRespawnDelay,
		BombGrace:    parameter.BombGraceDelay,
		UfoInterval:  parameter.UfoSpawnInterval,
		UfoJitter:    parameter.UfoSpawnJitter,
	}
}
