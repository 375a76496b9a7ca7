package anchor

import (
	"image/color"
	"sync/atomic"

	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/frame"
	"github.com/lixenwraith/marker-anchor/status"
)

// Sample is a validated frame and its pixels for one scan
type Sample struct {
	Frame  frame.Frame
	Pixels []color.RGBA
}

// Sampler throttles scans to every Nth tick and validates the frame
type Sampler struct {
	gate      *Gate
	source    frame.Source
	frequency int64
	minDim    int
	diag      *diag.Emitter

	statInvalid  *atomic.Int64
	statNoPixels *atomic.Int64
}

func NewSampler(gate *Gate, source frame.Source, frequency, minDim int, d *diag.Emitter, reg *status.Registry) *Sampler {
	return &Sampler{
		gate:         gate,
		source:       source,
		frequency:    int64(frequency),
		minDim:       minDim,
		diag:         d,
		statInvalid:  reg.Ints.Get(status.KeyFrameInvalid),
		statNoPixels: reg.Ints.Get(status.KeyNoPixels),
	}
}

// Due reports whether tick is a scan tick, independent of readiness
func (s *Sampler) Due(tick int64) bool {
	return tick%s.frequency == 0
}

// Sample returns the frame to scan on tick, false when this tick is skipped
func (s *Sampler) Sample(tick int64) (Sample, bool) {
	if !s.gate.Ready() || !s.Due(tick) {
		return Sample{}, false
	}

	f := s.source.Frame()
	if f == nil || f.Width() <= s.minDim || f.Height() <= s.minDim {
		s.statInvalid.Add(1)
		if f == nil {
			s.diag.Warn("camera frame not initialized properly")
		} else {
			s.diag.Warn("camera frame not initialized properly", "width", f.Width(), "height", f.Height())
		}
		return Sample{}, false
	}

	pixels := f.Pixels()
	if len(pixels) == 0 {
		s.statNoPixels.Add(1)
		s.diag.Warn("no pixel data from camera")
		return Sample{}, false
	}

	return Sample{Frame: f, Pixels: pixels}, true
}
