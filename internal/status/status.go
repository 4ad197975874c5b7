// Package status provides a thread-safe status tracker for the heater
// controller. The control loop is its only writer; the display and the
// print-state mode read immutable snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/heater-controller/internal/control"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	HeartbeatMs int64
	Settings    control.Settings
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Cycles      uint64
	Record      control.Record
	Temperature control.Temperature
	Decision    control.Decision
	Heater      control.HeaterState
	Output      control.Output
	Counts      control.EventCounts
	LastSample  time.Time
	StartTime   time.Time
	Now         time.Time
	Config      Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Sampled reports whether at least one cycle has completed.
func (s Snapshot) Sampled() bool {
	return s.Cycles > 0
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// Update records the outcome of one control cycle.
// Called from runLoop on every tick.
func (t *Tracker) Update(at time.Time, res control.Result, counts control.EventCounts) {
	t.mu.Lock()
	t.snap.Cycles++
	t.snap.Record = res.Record
	t.snap.Temperature = res.Temperature
	t.snap.Decision = res.Decision
	t.snap.Heater = res.Heater
	t.snap.Output = res.Output
	t.snap.Counts = counts
	t.snap.LastSample = at
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
