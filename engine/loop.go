package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/marker-anchor/status"
)

// Loop is the host per-tick scheduler
// Systems run sequentially on the goroutine calling Run or Step
type Loop struct {
	interval time.Duration
	clock    Clock
	systems  []System

	frame    atomic.Int64
	lastTick time.Time
	running  atomic.Bool

	crashHandler func(r any)

	statTicks *atomic.Int64
}

// NewLoop creates a loop ticking every interval
// reg may be nil when tick metrics are not wanted
func NewLoop(interval time.Duration, clock Clock, reg *status.Registry) *Loop {
	if clock == nil {
		clock = NewTimeProvider()
	}
	l := &Loop{
		interval: interval,
		clock:    clock,
	}
	if reg != nil {
		l.statTicks = reg.Ints.Get(status.KeyTicks)
	}
	return l
}

// AddSystem registers a system, keeping priority order
// Must be called before Run
func (l *Loop) AddSystem(s System) {
	l.systems = append(l.systems, s)

	// Insertion keeps registration order within a priority band
	for i := len(l.systems) - 1; i > 0; i-- {
		if l.systems[i-1].Priority() <= l.systems[i].Priority() {
			break
		}
		l.systems[i-1], l.systems[i] = l.systems[i], l.systems[i-1]
	}
}

// Systems returns a copy of the registered systems in run order
func (l *Loop) Systems() []System {
	out := make([]System, len(l.systems))
	copy(out, l.systems)
	return out
}

// SetCrashHandler installs a handler for panics escaping a system
// Without one, panics propagate out of Run
func (l *Loop) SetCrashHandler(fn func(r any)) {
	l.crashHandler = fn
}

// Frame returns the number of completed ticks
func (l *Loop) Frame() int64 {
	return l.frame.Load()
}

// Step runs exactly one tick synchronously
func (l *Loop) Step() {
	now := l.clock.Now()
	var delta time.Duration
	if !l.lastTick.IsZero() {
		delta = now.Sub(l.lastTick)
	}
	l.lastTick = now

	t := Tick{
		Frame: l.frame.Load(),
		Delta: delta,
		Now:   now,
	}
	for _, s := range l.systems {
		s.Update(t)
	}

	l.frame.Add(1)
	if l.statTicks != nil {
		l.statTicks.Add(1)
	}
}

// Run ticks until ctx is cancelled and returns ctx.Err()
func (l *Loop) Run(ctx context.Context) (err error) {
	if l.interval <= 0 {
		return fmt.Errorf("engine: tick interval must be positive, got %s", l.interval)
	}
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("engine: loop already running")
	}
	defer l.running.Store(false)

	if l.crashHandler != nil {
		defer func() {
			if r := recover(); r != nil {
				l.crashHandler(r)
				err = fmt.Errorf("engine: system panic: %v\n%s", r, debug.Stack())
			}
		}()
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Step()
		}
	}
}
