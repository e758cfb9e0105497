package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/space-invasion/event"
)

const instrumentationName = "github.com/lixenwraith/space-invasion/telemetry"

// Meter returns the global meter, a no-op unless a provider is installed
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Recorder turns presentation events into metrics
type Recorder struct {
	events metric.Int64Counter
	score  metric.Int64Counter
	level  metric.Int64Gauge
	lives  metric.Int64Gauge

	// one attribute option per event type, built once
	typeAttrs map[event.EventType]metric.AddOption
}

// NewRecorder creates the instruments on m
func NewRecorder(m metric.Meter) (*Recorder, error) {
	r := &Recorder{typeAttrs: make(map[event.EventType]metric.AddOption)}

	var err error
	r.events, err = m.Int64Counter(
		"game.events",
		metric.WithDescription("Simulation events by type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating events counter: %w", err)
	}

	r.score, err = m.Int64Counter(
		"game.score.awarded",
		metric.WithDescription("Points awarded for destroyed invaders and Ufos"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating score counter: %w", err)
	}

	r.level, err = m.Int64Gauge(
		"game.level",
		metric.WithDescription("Current level"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating level gauge: %w", err)
	}

	r.lives, err = m.Int64Gauge(
		"game.lives",
		metric.WithDescription("Lives remaining"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lives gauge: %w", err)
	}

	return r, nil
}

func (r *Recorder) typeAttr(t event.EventType) metric.AddOption {
	opt, ok := r.typeAttrs[t]
	if !ok {
		opt = metric.WithAttributes(attribute.String("event", t.String()))
		r.typeAttrs[t] = opt
	}
	return opt
}

// Record counts a batch of drained events
// Must be called from a single goroutine
func (r *Recorder) Record(ctx context.Context, events []event.Event) {
	for _, ev := range events {
		r.events.Add(ctx, 1, r.typeAttr(ev.Type))

		switch ev.Type {
		case event.EventInvaderDestroyed, event.EventUfoDestroyed:
			r.score.Add(ctx, int64(ev.Value))
		case event.EventLevelStarted:
			r.level.Record(ctx, int64(ev.Value))
		case event.EventLifeLost:
			r.lives.Record(ctx, int64(ev.Value))
		}
	}
}
