package anchor

import (
	"image/color"
	"testing"
	"time"

	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/frame"
	"github.com/lixenwraith/marker-anchor/marker"
	"github.com/lixenwraith/marker-anchor/scene"
	"github.com/lixenwraith/marker-anchor/status"
	"github.com/lixenwraith/marker-anchor/vmath"
)

// switchSource returns nil until Frame is set
type switchSource struct {
	F frame.Frame
}

func (s *switchSource) Frame() frame.Frame {
	if s.F == nil {
		return nil
	}
	return s.F
}

func blankFrame(w, h int) *frame.RGBAFrame {
	return frame.NewRGBAFrame(w, h, make([]color.RGBA, w*h))
}

// scriptedDecoder returns det on every call, nil det means nothing found
type scriptedDecoder struct {
	det   *marker.Detection
	calls int
}

func (d *scriptedDecoder) Decode([]color.RGBA, int, int) (*marker.Detection, error) {
	d.calls++
	if d.det == nil {
		return nil, nil
	}
	cp := *d.det
	return &cp, nil
}

// recordingProjection returns a ray pointing straight down from above the image point
type recordingProjection struct {
	points []vmath.Vec2I
}

func (p *recordingProjection) ImagePointToWorldRay(pt vmath.Vec2I) Ray {
	p.points = append(p.points, pt)
	return Ray{Origin: vmath.Vec3F{X: float64(pt.X), Y: 10, Z: float64(pt.Y)}, Direction: vmath.Vec3F{Y: -1}}
}

// fixedSurface returns hit when ok, can be changed between ticks
type fixedSurface struct {
	hit  Hit
	ok   bool
	rays int
}

func (s *fixedSurface) Raycast(Ray) (Hit, bool) {
	s.rays++
	return s.hit, s.ok
}

type fixture struct {
	source     *switchSource
	decoder    *scriptedDecoder
	projection *recordingProjection
	surface    *fixedSurface
	graph      *scene.Graph
	sink       *diag.MemorySink
	reg        *status.Registry
	nodeA      scene.NodeID
	debug      scene.NodeID
	scanner    *Scanner
}

func corners(cx, cy, half float64) []vmath.Vec2F {
	return []vmath.Vec2F{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
	}
}

// newFixture wires a scanner with one binding "A" and a ready 200x200 camera
func newFixture(t *testing.T, mutate func(*Config)) *fixture {
	t.Helper()
	f := &fixture{
		source:     &switchSource{F: blankFrame(200, 200)},
		decoder:    &scriptedDecoder{det: &marker.Detection{Payload: "A", Corners: corners(100, 100, 20)}},
		projection: &recordingProjection{},
		surface:    &fixedSurface{hit: Hit{Point: vmath.Vec3F{X: 1, Y: 0.5, Z: 2}, Normal: vmath.V3FUp}, ok: true},
		graph:      scene.NewGraph(),
		sink:       &diag.MemorySink{},
		reg:        status.NewRegistry(),
	}
	f.nodeA = f.graph.Create("nodeA")
	f.debug = f.graph.Create("debug-cube")

	cfg := DefaultConfig()
	cfg.ScanFrameFrequency = 1
	cfg.DebugVisual = f.debug
	if mutate != nil {
		mutate(&cfg)
	}

	s, err := NewScanner(cfg, []TargetBinding{{Payload: "A", Node: f.nodeA}}, Deps{
		Source:     f.source,
		Decoder:    f.decoder,
		Projection: f.projection,
		Surface:    f.surface,
		Scene:      f.graph,
		Diag:       diag.New(nil, f.sink, f.reg),
		Status:     f.reg,
	})
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	f.scanner = s
	return f
}

func (f *fixture) run(from, to int64) {
	for tick := from; tick < to; tick++ {
		f.scanner.Tick(tick, time.Unix(0, 0).Add(time.Duration(tick)*time.Millisecond))
	}
}

func (f *fixture) metric(key string) int64 {
	return f.reg.Ints.Get(key).Load()
}

func (f *fixture) sawLine(prefix string) bool {
	for _, l := range f.sink.Lines {
		if len(l) >= len(prefix) && l[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
