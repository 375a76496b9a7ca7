package anchor

import (
	"sync/atomic"

	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/frame"
	"github.com/lixenwraith/marker-anchor/status"
)

// Gate holds the pipeline closed until the camera source yields a frame
// Polled once per tick, it never blocks and never times out
type Gate struct {
	source frame.Source
	diag   *diag.Emitter
	ready  bool

	statWaits  *atomic.Int64
	statCamera *status.AtomicString
}

func NewGate(source frame.Source, d *diag.Emitter, reg *status.Registry) *Gate {
	g := &Gate{
		source:     source,
		diag:       d,
		statWaits:  reg.Ints.Get(status.KeyGateWaits),
		statCamera: reg.Strings.Get(status.KeyCameraState),
	}
	g.statCamera.Store("waiting")
	return g
}

// Poll checks the source once; once satisfied it stays satisfied
func (g *Gate) Poll() bool {
	if g.ready {
		return true
	}
	if g.source.Frame() == nil {
		g.statWaits.Add(1)
		g.diag.Info("waiting for camera frames")
		return false
	}
	g.ready = true
	g.statCamera.Store("ready")
	g.diag.Info("camera ready")
	return true
}

// Ready reports whether the gate has been satisfied
func (g *Gate) Ready() bool {
	return g.ready
}
