package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/space-invasion/audio"
	"github.com/lixenwraith/space-invasion/config"
	"github.com/lixenwraith/space-invasion/engine"
	"github.com/lixenwraith/space-invasion/input"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/render"
	"github.com/lixenwraith/space-invasion/session"
	"github.com/lixenwraith/space-invasion/spectate"
	"github.com/lixenwraith/space-invasion/store"
	"github.com/lixenwraith/space-invasion/telemetry"
)

// game owns the terminal, the frame loop and every presentation consumer
type game struct {
	cfg *config.Config
	log zerolog.Logger

	*world
	keys     *input.KeyState
	clock    *engine.FrameClock
	sound    *audio.SoundManager
	recorder *telemetry.Recorder
	hub      *spectate.Hub

	screen   tcell.Screen
	renderer *render.TerminalRenderer

	debug bool
	muted bool
}

func newGame(cfg *config.Config, st store.HighScoreStore, log zerolog.Logger) (*game, error) {
	timeSource := engine.NewMonotonicTimeProvider()
	keys := input.NewKeyState(input.DefaultKeyTable(), timeSource)

	w, err := newWorld(cfg, st, keys, log)
	if err != nil {
		return nil, err
	}

	recorder, err := telemetry.NewRecorder(telemetry.Meter())
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry recorder: %w", err)
	}

	g := &game{
		cfg:      cfg,
		log:      log,
		world:    w,
		keys:     keys,
		clock:    engine.NewFrameClock(engine.NewPausableClock(timeSource)),
		recorder: recorder,
		debug:    cfg.Debug,
	}

	audioCfg := audio.DefaultAudioConfig()
	audioCfg.Enabled = cfg.Audio.Enabled
	g.sound = audio.NewSoundManager(audioCfg)

	if cfg.Spectate.Enabled {
		g.hub = spectate.NewHub(log, parameter.SpectateFrameEvery)
	}
	return g, nil
}

func (g *game) run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	g.screen = screen
	g.renderer = render.NewTerminalRenderer(screen)
	defer screen.Fini()
	defer recoverTerminal(screen.Fini, "SPACE-INVASION")

	screen.HideCursor()

	if err := g.sound.Initialize(); err != nil {
		g.log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
	}
	defer g.sound.Cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if g.hub != nil {
		go func() {
			if err := g.hub.Serve(ctx, g.cfg.Spectate.Addr); err != nil {
				g.log.Error().Err(err).Msg("spectator server stopped")
			}
		}()
	}

	if err := g.session.Start(ctx); err != nil {
		g.log.Warn().Err(err).Msg("starting without stored high score")
	}

	eventCh := make(chan tcell.Event, 256)
	go g.pollEvents(screen, eventCh)

	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventCh:
			if !ok {
				return nil
			}
			if !g.handleEvent(ctx, ev) {
				return nil
			}
		case <-ticker.C:
			g.step(ctx)
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized
func (g *game) pollEvents(screen tcell.Screen, out chan<- tcell.Event) {
	defer recoverTerminal(func() { screen.Fini() }, "EVENT POLLER")
	defer close(out)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		out <- ev
	}
}

// handleEvent applies one terminal event, false ends the game
func (g *game) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		return g.handleIntent(ctx, g.keys.HandleKey(ev))
	}
	return true
}

func (g *game) handleIntent(ctx context.Context, intent input.IntentType) bool {
	switch intent {
	case input.IntentQuit:
		g.log.Info().Int("score", g.session.Score()).Msg("quit")
		return false
	case input.IntentPause:
		if g.session.TogglePause() {
			g.clock.Pause()
		} else {
			g.clock.Resume()
		}
		g.keys.Release()
		g.sound.Suspend(g.session.Paused() || g.muted)
	case input.IntentRestart:
		if ok, err := g.session.Restart(ctx); err != nil {
			g.log.Warn().Err(err).Msg("restart without stored high score")
		} else if ok {
			g.keys.Release()
		}
	case input.IntentToggleMute:
		g.muted = !g.muted
		g.sound.Suspend(g.session.Paused() || g.muted)
	case input.IntentToggleDebug:
		g.debug = !g.debug
	}
	return true
}

// step runs one frame: simulate, hand events to consumers, draw
func (g *game) step(ctx context.Context) {
	g.session.Update(g.clock.Tick())

	events := g.events.Drain()
	if len(events) > 0 {
		g.sound.HandleEvents(events)
		g.recorder.Record(ctx, events)
	}

	frame := g.area.Frame()
	g.renderer.Draw(render.View{
		Frame:     frame,
		Score:     g.session.Score(),
		HighScore: g.session.HighScore(),
		Lives:     g.session.Lives(),
		Paused:    g.session.Paused(),
		GameOver:  g.session.State() == session.StateGameOver,
		Limbo:     g.session.LimboRemaining(),
		Debug:     g.debug,
		Muted:     g.muted,
	})

	if g.hub != nil {
		g.hub.Publish(spectate.Message{
			Frame:     frame,
			Score:     g.session.Score(),
			HighScore: g.session.HighScore(),
			Lives:     g.session.Lives(),
			State:     g.session.State().String(),
			Paused:    g.session.Paused(),
		})
	}
}
