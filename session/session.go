package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/space-invasion/engine"
	"github.com/lixenwraith/space-invasion/event"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/playarea"
	"github.com/lixenwraith/space-invasion/store"
)

// ErrNotAttached is returned when the session is started before a play area is attached
var ErrNotAttached = errors.New("session: no play area attached")

// State is the session phase
type State int

const (
	StatePlaying State = iota
	StateLimbo
	StateGameOver
)

var stateNames = [...]string{
	StatePlaying:  "playing",
	StateLimbo:    "limbo",
	StateGameOver: "game_over",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Settings holds session tuning
type Settings struct {
	Lives       int
	Limbo       time.Duration
	SaveTimeout time.Duration
}

// DefaultSettings returns the stock tuning
func DefaultSettings() Settings {
	return Settings{
		Lives:       parameter.StartingLives,
		Limbo:       parameter.LimboDuration,
		SaveTimeout: time.Second,
	}
}

// Session keeps score, lives and game flow around a play area
// It is the play area's ScoreKeeper and runs on the update goroutine
type Session struct {
	settings Settings
	store    store.HighScoreStore
	log      zerolog.Logger

	area   *playarea.PlayArea
	events *event.Queue

	score     int
	highScore int
	lives     int
	state     State
	paused    bool
	limbo     time.Duration
}

var _ playarea.ScoreKeeper = (*Session)(nil)

func New(settings Settings, st store.HighScoreStore, log zerolog.Logger) *Session {
	if st == nil {
		st = store.NewMemoryStore()
	}
	return &Session{
		settings: settings,
		store:    st,
		log:      log.With().Str("component", "session").Logger(),
		state:    StateGameOver,
	}
}

// Attach binds the play area the session drives
// The area is built with this session as its score keeper, so it is attached afterwards
func (s *Session) Attach(area *playarea.PlayArea) {
	s.area = area
	s.events = area.Events()
}

// Start loads the high score and begins a new game
// A failed load is returned but the game still starts
func (s *Session) Start(ctx context.Context) error {
	if s.area == nil {
		return ErrNotAttached
	}

	var loadErr error
	if hs, err := s.store.Load(ctx); err != nil {
		loadErr = fmt.Errorf("failed to load high score: %w", err)
		s.log.Error().Err(err).Msg("high score unavailable")
	} else if hs > s.highScore {
		s.highScore = hs
	}

	s.score = 0
	s.lives = s.settings.Lives
	s.state = StatePlaying
	s.paused = false
	s.limbo = 0
	s.area.Reset()

	s.log.Debug().Int("lives", s.lives).Int("high_score", s.highScore).Msg("session started")
	return loadErr
}

// Restart begins a new game, only honoured once the previous one is over
func (s *Session) Restart(ctx context.Context) (bool, error) {
	if s.state != StateGameOver {
		return false, nil
	}
	return true, s.Start(ctx)
}

// Update advances the session and its play area by one frame
func (s *Session) Update(dt time.Duration) {
	if s.area == nil || s.paused || s.state == StateGameOver {
		return
	}
	dt = engine.ClampDelta(dt)

	s.area.Update(dt)

	if s.state == StateLimbo {
		s.limbo -= dt
		if s.limbo <= 0 {
			s.limbo = 0
			s.state = StatePlaying
		}
	}

	if s.state != StateGameOver && s.area.Invaded() {
		s.log.Debug().Int("level", s.Level()).Msg("formation invaded")
		s.gameOver()
	}
}

// TogglePause flips the pause flag, ignored after game over
func (s *Session) TogglePause() bool {
	if s.state == StateGameOver {
		return false
	}
	s.paused = !s.paused
	return s.paused
}

// AddToScore awards points and persists every new high score
func (s *Session) AddToScore(amount int) {
	s.score += amount
	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score

	ctx, cancel := context.WithTimeout(context.Background(), s.settings.SaveTimeout)
	defer cancel()
	if err := s.store.Save(ctx, s.highScore); err != nil {
		s.log.Error().Err(err).Int("score", s.highScore).Msg("failed to save high score")
	}
}

// ShipDestroyed deducts a life, the game ends when none remain
func (s *Session) ShipDestroyed() {
	if s.state == StateGameOver {
		return
	}
	s.lives--
	s.events.Emit(event.EventLifeLost, s.area.Ship().Position, s.lives)
	s.log.Debug().Int("lives", s.lives).Msg("life lost")

	if s.lives <= 0 {
		s.gameOver()
		return
	}
	s.state = StateLimbo
	s.limbo = s.settings.Limbo
}

// InvadersDestroyed advances to the next level
func (s *Session) InvadersDestroyed() {
	if s.state == StateGameOver {
		return
	}
	s.log.Debug().Int("level", s.Level()).Int("score", s.score).Msg("level cleared")
	s.area.SetupNextLevel()
}

func (s *Session) gameOver() {
	s.state = StateGameOver
	s.paused = false
	s.events.Emit(event.EventGameOver, s.area.Ship().Position, s.score)
	s.log.Info().Int("score", s.score).Int("level", s.Level()).Msg("game over")
}

func (s *Session) Score() int     { return s.score }
func (s *Session) HighScore() int { return s.highScore }
func (s *Session) Lives() int     { return s.lives }
func (s *Session) State() State   { return s.state }
func (s *Session) Paused() bool   { return s.paused }

// LimboRemaining is the time left before play resumes after a lost life
func (s *Session) LimboRemaining() time.Duration { return s.limbo }

// Level returns the current level, zero before the first start
func (s *Session) Level() int {
	if s.area == nil {
		return 0
	}
	return s.area.Formation().Level()
}
