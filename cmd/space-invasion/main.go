package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/space-invasion/config"
	"github.com/lixenwraith/space-invasion/event"
	"github.com/lixenwraith/space-invasion/logging"
	"github.com/lixenwraith/space-invasion/playarea"
	"github.com/lixenwraith/space-invasion/session"
	"github.com/lixenwraith/space-invasion/store"
)

var (
	configDir = flag.String("config", "", "directory holding invasion.toml")
	debugFlag = flag.Bool("debug", false, "enable debug logging and overlay")
	seedFlag  = flag.Uint64("seed", 0, "random seed, 0 derives one from the clock")
	soakFlag  = flag.Int("soak", 0, "run N frames headless with an autopilot and print the result")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "space-invasion: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configDir)
	if err != nil {
		return err
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	log, logCloser, err := logging.Setup(cfg.Debug, cfg.LogsDir)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log.Info().Str("config", cfg.File).Uint64("seed", cfg.Seed).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *soakFlag > 0 {
		return runSoak(ctx, cfg, log, *soakFlag, os.Stdout)
	}

	st := openStore(cfg, log)
	defer st.Close()

	g, err := newGame(cfg, st, log)
	if err != nil {
		return err
	}
	return g.run(ctx)
}

// openStore prefers the sqlite store and falls back to memory so a bad data dir never blocks play
func openStore(cfg *config.Config, log zerolog.Logger) store.HighScoreStore {
	st, err := store.OpenSQLStore(cfg.DataDir, log)
	if err != nil {
		log.Error().Err(err).Str("dir", cfg.DataDir).Msg("high score store unavailable, scores kept in memory")
		return store.NewMemoryStore()
	}
	return st
}

// world is the simulation half shared by the terminal game and the soak run
type world struct {
	session *session.Session
	area    *playarea.PlayArea
	events  *event.Queue
}

func newWorld(cfg *config.Config, st store.HighScoreStore, controls playarea.Controls, log zerolog.Logger) (*world, error) {
	settings := session.DefaultSettings()
	settings.Lives = cfg.Game.Lives

	sess := session.New(settings, st, log)
	events := event.NewQueue()
	area, err := playarea.NewBuilder(cfg.Settings()).
		WithControls(controls).
		WithScoreKeeper(sess).
		WithEvents(events).
		WithLogger(log).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build play area: %w", err)
	}
	sess.Attach(area)
	return &world{session: sess, area: area, events: events}, nil
}

// recoverTerminal restores the terminal and reports a crash from any goroutine
func recoverTerminal(restore func(), where string) {
	if r := recover(); r != nil {
		if restore != nil {
			restore()
		}
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", where, r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
}
