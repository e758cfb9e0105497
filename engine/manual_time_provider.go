package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/space-invasion/parameter"
)

// ManualTimeProvider only moves when told to, it drives headless runs and tests
type ManualTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

var _ TimeProvider = (*ManualTimeProvider)(nil)

func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{now: start}
}

func (m *ManualTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set jumps to t, backwards jumps are allowed
func (m *ManualTimeProvider) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

func (m *ManualTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Step advances by n nominal frames and returns the new time
func (m *ManualTimeProvider) Step(n int) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(time.Duration(n) * parameter.NominalFrame)
	return m.now
}
