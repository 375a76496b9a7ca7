// Package inspect exposes a read-only HTTP view of scanner state
package inspect

import (
	"sync"

	"github.com/lixenwraith/marker-anchor/anchor"
)

// Journal keeps placements in arrival order for readers off the tick goroutine
type Journal struct {
	mu      sync.RWMutex
	entries []anchor.Placement
}

func NewJournal() *Journal {
	return &Journal{}
}

// Record appends p, usable directly as an anchor.PlacementListener
func (j *Journal) Record(p anchor.Placement) {
	j.mu.Lock()
	j.entries = append(j.entries, p)
	j.mu.Unlock()
}

// Entries returns a copy of all placements
func (j *Journal) Entries() []anchor.Placement {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]anchor.Placement, len(j.entries))
	copy(out, j.entries)
	return out
}

// Find returns the placement for payload, at most one exists per payload
func (j *Journal) Find(payload string) (anchor.Placement, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, p := range j.entries {
		if p.Payload == payload {
			return p, true
		}
	}
	return anchor.Placement{}, false
}

func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}
