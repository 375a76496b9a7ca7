package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue identifies a placement feedback sound
type Cue int

const (
	CueNone Cue = iota
	CuePlaced
	CueUnmapped
	CueMiss
)

func (c Cue) String() string {
	switch c {
	case CuePlaced:
		return "placed"
	case CueUnmapped:
		return "unmapped"
	case CueMiss:
		return "miss"
	default:
		return "none"
	}
}

// Cue timings
const (
	chimeNoteDuration = 90 * time.Millisecond
	chimeAttack       = 4 * time.Millisecond
	chimeRelease      = 60 * time.Millisecond
	buzzDuration      = 150 * time.Millisecond
	buzzAttack        = 5 * time.Millisecond
	buzzRelease       = 80 * time.Millisecond
	missDuration      = 120 * time.Millisecond
	missAttack        = 10 * time.Millisecond
	missRelease       = 100 * time.Millisecond
)

// NewChime is a rising two-note chime for a successful placement
func NewChime(rate beep.SampleRate, vol float64) beep.Streamer {
	n1 := NewEnvelope(NewOscillator(987.77, chimeNoteDuration, WaveSine, rate), chimeNoteDuration, chimeAttack, chimeRelease, rate)
	n2 := NewEnvelope(NewOscillator(1318.51, chimeNoteDuration, WaveSine, rate), chimeNoteDuration, chimeAttack, chimeRelease, rate)
	return newVolume(beep.Seq(n1, n2), vol)
}

// NewBuzz is a low saw buzz for an unmapped payload
func NewBuzz(rate beep.SampleRate, vol float64) beep.Streamer {
	fund := NewEnvelope(NewOscillator(110, buzzDuration, WaveSaw, rate), buzzDuration, buzzAttack, buzzRelease, rate)
	over := NewEnvelope(NewOscillator(220, buzzDuration, WaveSquare, rate), buzzDuration, buzzAttack, buzzRelease, rate)
	mixed := beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.2))
	return newVolume(mixed, vol)
}

// NewMissNoise is a soft noise burst for a raycast miss
func NewMissNoise(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewEnvelope(NewOscillator(0, missDuration, WaveNoise, rate), missDuration, missAttack, missRelease, rate)
	return newVolume(noise, vol*0.5)
}

// Streamer returns the sound for c, nil for CueNone
func (c Cue) Streamer(rate beep.SampleRate, vol float64) beep.Streamer {
	switch c {
	case CuePlaced:
		return NewChime(rate, vol)
	case CueUnmapped:
		return NewBuzz(rate, vol)
	case CueMiss:
		return NewMissNoise(rate, vol)
	default:
		return nil
	}
}
