package audio

import (
	"github.com/lixenwraith/marker-anchor/engine"
	"github.com/lixenwraith/marker-anchor/status"
)

// CueSystem watches scanner counters and plays one cue per tick on change
// Placements win over unmapped payloads and misses
type CueSystem struct {
	sm  *SoundManager
	reg *status.Registry

	lastPlaced   int64
	lastUnmapped int64
	lastMisses   int64
}

func NewCueSystem(sm *SoundManager, reg *status.Registry) *CueSystem {
	return &CueSystem{sm: sm, reg: reg}
}

func (s *CueSystem) Name() string  { return "audio-cues" }
func (s *CueSystem) Priority() int { return engine.PriorityRender }

func (s *CueSystem) Update(engine.Tick) {
	placed := s.reg.Ints.Get(status.KeyPlacements).Load()
	unmapped := s.reg.Ints.Get(status.KeyUnmapped).Load()
	misses := s.reg.Ints.Get(status.KeyRaycastMisses).Load()

	switch {
	case placed > s.lastPlaced:
		s.sm.Play(CuePlaced)
	case unmapped > s.lastUnmapped:
		s.sm.Play(CueUnmapped)
	case misses > s.lastMisses:
		s.sm.Play(CueMiss)
	}

	s.lastPlaced, s.lastUnmapped, s.lastMisses = placed, unmapped, misses
}
