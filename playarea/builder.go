package playarea

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/space-invasion/engine"
	"github.com/lixenwraith/space-invasion/entity"
	"github.com/lixenwraith/space-invasion/event"
	"github.com/lixenwraith/space-invasion/formation"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/physics"
	"github.com/lixenwraith/space-invasion/vmath"
)

var (
	ErrMissingControls    = errors.New("playarea: controls are required")
	ErrMissingScoreKeeper = errors.New("playarea: score keeper is required")
)

// ufoSeedSalt decorrelates the Ufo stream from the formation stream
const ufoSeedSalt = 0x9e3779b97f4a7c15

// Builder assembles a PlayArea, Build fails while a mandatory collaborator is missing
type Builder struct {
	settings Settings
	controls Controls
	keeper   ScoreKeeper
	events   *event.Queue
	logger   zerolog.Logger
}

func NewBuilder(settings Settings) *Builder {
	return &Builder{settings: settings, logger: zerolog.Nop()}
}

func (b *Builder) WithControls(c Controls) *Builder {
	b.controls = c
	return b
}

func (b *Builder) WithScoreKeeper(k ScoreKeeper) *Builder {
	b.keeper = k
	return b
}

// WithEvents shares a presentation queue, a private one is created otherwise
func (b *Builder) WithEvents(q *event.Queue) *Builder {
	b.events = q
	return b
}

func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	b.logger = l
	return b
}

// Build creates a play area with shields in place and no level seeded
// The caller starts play with Reset or SetupNextLevel
func (b *Builder) Build() (*PlayArea, error) {
	if b.controls == nil {
		return nil, ErrMissingControls
	}
	if b.keeper == nil {
		return nil, ErrMissingScoreKeeper
	}
	events := b.events
	if events == nil {
		events = event.NewQueue()
	}

	p := &PlayArea{
		settings:  b.settings,
		controls:  b.controls,
		keeper:    b.keeper,
		events:    events,
		log:       b.logger.With().Str("component", "playarea").Logger(),
		ship:      entity.NewShip(),
		formation: formation.New(b.settings.Formation),
		timers:    engine.NewScheduler(),
		detector:  physics.NewDetector(parameter.PlayAreaWidth, parameter.PlayAreaHeight, parameter.CollisionCellSize),
		rng:       vmath.NewFastRand(b.settings.Formation.Seed ^ ufoSeedSalt),
	}
	for i, pos := range entity.ShieldPositions(b.settings.NumShields) {
		p.shields = append(p.shields, entity.NewShield(i, pos))
	}
	return p, nil
}
