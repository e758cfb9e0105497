package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	assert.Nil(t, q.Drain())

	q.Emit(EventInvadersStepped, vmath.Vec2{}, 0)
	q.Emit(EventInvaderDestroyed, vmath.Vec2{X: 100, Y: 400}, 30)
	q.Push(Event{Type: EventBombDropped, Value: 1})
	assert.Equal(t, 3, q.Len())

	got := q.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, EventInvadersStepped, got[0].Type)
	assert.Equal(t, 30, got[1].Value)
	assert.Equal(t, vmath.Vec2{X: 100, Y: 400}, got[1].Position)
	assert.Equal(t, EventBombDropped, got[2].Type)

	assert.Zero(t, q.Len())
	assert.Nil(t, q.Drain())
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Emit(EventShieldEroded, vmath.Vec2{}, i)
	}

	assert.Equal(t, parameter.EventQueueSize, q.Len())
	got := q.Drain()
	require.Len(t, got, parameter.EventQueueSize)
	assert.Equal(t, 10, got[0].Value)
	assert.Equal(t, total-1, got[len(got)-1].Value)
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 32; i++ {
				q.Emit(EventMissileFired, vmath.Vec2{}, i)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Drain(), 128)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "ufo_destroyed", EventUfoDestroyed.String())
	assert.Equal(t, "game_over", EventGameOver.String())
	assert.Equal(t, "unknown", EventType(999).String())
}
