package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/space-invasion/config"
	"github.com/lixenwraith/space-invasion/engine"
	"github.com/lixenwraith/space-invasion/event"
	"github.com/lixenwraith/space-invasion/playarea"
	"github.com/lixenwraith/space-invasion/session"
	"github.com/lixenwraith/space-invasion/store"
)

// autopilot steers under the lowest invader and fires whenever it can
type autopilot struct {
	area   *playarea.PlayArea
	target float64
}

// aimTolerance stops the ship jittering around its target
const aimTolerance = 4.0

func (a *autopilot) plan() {
	if a.area == nil {
		return
	}
	f := a.area.Formation()
	lowest := math.Inf(1)
	for _, inv := range f.Invaders() {
		if p := f.Position(inv); p.Y < lowest {
			lowest = p.Y
			a.target = p.X
		}
	}
}

func (a *autopilot) MoveLeftPressed() bool {
	return a.area != nil && a.area.Ship().Position.X > a.target+aimTolerance
}

func (a *autopilot) MoveRightPressed() bool {
	return a.area != nil && a.area.Ship().Position.X < a.target-aimTolerance
}

func (a *autopilot) FirePressed() bool { return true }

// soakResult summarizes a headless run
type soakResult struct {
	Frames    int
	Games     int
	BestScore int
	MaxLevel  int
	Events    map[event.EventType]int
}

// runSoak plays frames nominal frames on a manual clock, restarting after each game over
// The same seed always yields the same result
func runSoak(ctx context.Context, cfg *config.Config, log zerolog.Logger, frames int, out io.Writer) error {
	res, err := soak(ctx, cfg, log, frames)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seed=%d frames=%d games=%d best=%d level=%d\n",
		cfg.Seed, res.Frames, res.Games, res.BestScore, res.MaxLevel)
	for t := event.EventType(0); t < event.EventGameOver+1; t++ {
		if n := res.Events[t]; n > 0 {
			fmt.Fprintf(out, "  %-22s %d\n", t, n)
		}
	}
	return nil
}

func soak(ctx context.Context, cfg *config.Config, log zerolog.Logger, frames int) (soakResult, error) {
	pilot := &autopilot{}
	w, err := newWorld(cfg, store.NewMemoryStore(), pilot, log)
	if err != nil {
		return soakResult{}, err
	}
	pilot.area = w.area

	tp := engine.NewManualTimeProvider(time.Unix(0, 0))
	clock := engine.NewFrameClock(engine.NewPausableClock(tp))

	res := soakResult{Games: 1, Events: make(map[event.EventType]int)}
	if err := w.session.Start(ctx); err != nil {
		return res, err
	}

	for res.Frames < frames {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		tp.Step(1)
		pilot.plan()
		w.session.Update(clock.Tick())
		res.Frames++

		for _, ev := range w.events.Drain() {
			res.Events[ev.Type]++
		}
		res.MaxLevel = max(res.MaxLevel, w.session.Level())
		res.BestScore = max(res.BestScore, w.session.Score())

		if w.session.State() == session.StateGameOver && res.Frames < frames {
			if _, err := w.session.Restart(ctx); err != nil {
				return res, err
			}
			res.Games++
		}
	}
	log.Info().Int("frames", res.Frames).Int("games", res.Games).Int("best", res.BestScore).Msg("soak finished")
	return res, nil
}
