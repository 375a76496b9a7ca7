package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Output receives cue streamers, speaker in production, a recorder in tests
type Output interface {
	Play(s beep.Streamer)
}

// SpeakerOutput mixes cues onto the system speaker
type SpeakerOutput struct {
	mixer *beep.Mixer
}

// NewSpeakerOutput initializes the speaker with a 100ms buffer
func NewSpeakerOutput() (*SpeakerOutput, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	out := &SpeakerOutput{mixer: &beep.Mixer{}}
	speaker.Play(out.mixer)
	return out, nil
}

func (o *SpeakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Close drops queued cues and releases the device
func (o *SpeakerOutput) Close() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// SoundManager turns cues into sounds on an Output
type SoundManager struct {
	mu     sync.Mutex
	out    Output
	volume float64
	muted  bool
	played map[Cue]int
}

// NewSoundManager creates a manager, nil out discards cues
func NewSoundManager(out Output, volume float64) *SoundManager {
	return &SoundManager{
		out:    out,
		volume: volume,
		played: make(map[Cue]int),
	}
}

// Play queues the sound for c
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.out == nil || sm.muted || c == CueNone {
		return
	}
	sm.out.Play(c.Streamer(sampleRate, sm.volume))
	sm.played[c]++
}

func (sm *SoundManager) SetMuted(m bool) {
	sm.mu.Lock()
	sm.muted = m
	sm.mu.Unlock()
}

func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// Played returns how many times c was queued
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}
