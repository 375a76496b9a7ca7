package engine

import "time"

// Tick is the per-frame context handed to every system
type Tick struct {
	Frame int64         // Host frame counter, starts at 0
	Delta time.Duration // Time since previous tick, 0 on the first
	Now   time.Time
}

// System is a unit of per-tick work driven by the Loop
// Lower priority runs first
type System interface {
	Name() string
	Priority() int
	Update(t Tick)
}

// Priority bands
const (
	PriorityInput   = 100
	PrioritySource  = 200
	PriorityScan    = 300
	PriorityScene   = 400
	PriorityRender  = 500
	PriorityMetrics = 600
)

// SystemFunc adapts a function to System
type SystemFunc struct {
	SystemName     string
	SystemPriority int
	Fn             func(t Tick)
}

func (s SystemFunc) Name() string  { return s.SystemName }
func (s SystemFunc) Priority() int { return s.SystemPriority }
func (s SystemFunc) Update(t Tick) { s.Fn(t) }
