package anchor

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/engine"
	"github.com/lixenwraith/marker-anchor/frame"
	"github.com/lixenwraith/marker-anchor/marker"
	"github.com/lixenwraith/marker-anchor/scene"
	"github.com/lixenwraith/marker-anchor/status"
)

var (
	ErrInvalidFrequency = errors.New("anchor: scan frame frequency must be positive")
	ErrNilDependency    = errors.New("anchor: missing dependency")
)

// Defaults
const (
	DefaultScanFrameFrequency = 10
	DefaultMinFrameDimension  = 16
	DefaultMinAnchorHeight    = 0.1
	DefaultDebugVisualOffset  = 0.05
	DefaultHitMarkerLifetime  = 5 * time.Second
	DefaultHitMarkerScale     = 0.05
)

// Config tunes a Scanner
type Config struct {
	ScanFrameFrequency int     // Scan on ticks where tick % frequency == 0
	MinFrameDimension  int     // Width and height must exceed this
	MinAnchorHeight    float64 // Anchored Y never goes below this
	DebugVisualOffset  float64 // Debug visual sits this far above the anchor

	// DebugVisual is moved on every detection that hits a surface; NoNode disables it
	DebugVisual scene.NodeID

	// RequireSurfaceHit withholds placement when the ray misses
	// Off by default: a miss anchors at the clamped fallback pose
	RequireSurfaceHit bool

	HitMarker HitMarkerConfig
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		ScanFrameFrequency: DefaultScanFrameFrequency,
		MinFrameDimension:  DefaultMinFrameDimension,
		MinAnchorHeight:    DefaultMinAnchorHeight,
		DebugVisualOffset:  DefaultDebugVisualOffset,
		HitMarker: HitMarkerConfig{
			Enabled:  true,
			Lifetime: DefaultHitMarkerLifetime,
			Scale:    DefaultHitMarkerScale,
		},
	}
}

// Deps are the collaborators a Scanner drives
type Deps struct {
	Source     frame.Source
	Decoder    marker.Decoder
	Projection Projection
	Surface    Surface
	Scene      *scene.Graph
	Diag       *diag.Emitter    // Optional, defaults to diag.Nop
	Status     *status.Registry // Optional, defaults to a private registry
}

// Scanner is the detection-to-anchoring component, one Tick per host frame
type Scanner struct {
	cfg     Config
	started bool

	gate      *Gate
	sampler   *Sampler
	adapter   *marker.Adapter
	projector *Projector
	resolver  *Resolver
	placer    *Placer

	registry *Registry
	ledger   *Ledger
	diag     *diag.Emitter

	statScans      *atomic.Int64
	statDetections *atomic.Int64
	statMisses     *atomic.Int64
}

// NewScanner builds the registry from bindings and wires the pipeline
func NewScanner(cfg Config, bindings []TargetBinding, deps Deps) (*Scanner, error) {
	if cfg.ScanFrameFrequency <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFrequency, cfg.ScanFrameFrequency)
	}
	switch {
	case deps.Source == nil:
		return nil, fmt.Errorf("%w: frame source", ErrNilDependency)
	case deps.Decoder == nil:
		return nil, fmt.Errorf("%w: decoder", ErrNilDependency)
	case deps.Projection == nil:
		return nil, fmt.Errorf("%w: projection", ErrNilDependency)
	case deps.Surface == nil:
		return nil, fmt.Errorf("%w: surface", ErrNilDependency)
	case deps.Scene == nil:
		return nil, fmt.Errorf("%w: scene", ErrNilDependency)
	}

	d := deps.Diag
	if d == nil {
		d = diag.Nop()
	}
	reg := deps.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	registry := NewRegistry(bindings)
	ledger := NewLedger()
	gate := NewGate(deps.Source, d, reg)

	s := &Scanner{
		cfg:       cfg,
		gate:      gate,
		sampler:   NewSampler(gate, deps.Source, cfg.ScanFrameFrequency, cfg.MinFrameDimension, d, reg),
		adapter:   marker.NewAdapter(deps.Decoder, d.Logger()),
		projector: NewProjector(deps.Projection, d),
		resolver:  NewResolver(deps.Surface, deps.Scene, cfg.MinAnchorHeight, cfg.HitMarker, d, reg),
		placer: &Placer{
			registry:    registry,
			ledger:      ledger,
			scene:       deps.Scene,
			diag:        d,
			minHeight:   cfg.MinAnchorHeight,
			debugVisual: cfg.DebugVisual,
			debugOffset: cfg.DebugVisualOffset,
			requireHit:  cfg.RequireSurfaceHit,
			statPlaced:  reg.Ints.Get(status.KeyPlacements),
			statDedup:   reg.Ints.Get(status.KeyDedupSkips),
			statUnmap:   reg.Ints.Get(status.KeyUnmapped),
			statDebug:   reg.Ints.Get(status.KeyDebugMoves),
			statPayload: reg.Strings.Get(status.KeyLastPayload),
		},
		registry:       registry,
		ledger:         ledger,
		diag:           d,
		statScans:      reg.Ints.Get(status.KeyScans),
		statDetections: reg.Ints.Get(status.KeyDetections),
		statMisses:     reg.Ints.Get(status.KeyNoDetection),
	}
	return s, nil
}

// OnPlaced registers a listener, must be called before the first Tick
func (s *Scanner) OnPlaced(fn PlacementListener) {
	s.placer.listeners = append(s.placer.listeners, fn)
}

// Start performs the initial readiness poll
// Called implicitly by the first Tick if omitted
func (s *Scanner) Start() {
	if s.started {
		return
	}
	s.started = true
	s.diag.Info("initializing marker scanner", "targets", s.registry.Len(), "frequency", s.cfg.ScanFrameFrequency)
	s.gate.Poll()
}

// Tick runs one host frame: scan if due, then poll the gate if still closed
func (s *Scanner) Tick(tick int64, now time.Time) {
	if !s.started {
		s.Start()
	}

	s.scan(tick, now)

	if !s.gate.Ready() {
		s.gate.Poll()
	}
}

func (s *Scanner) scan(tick int64, now time.Time) {
	sample, ok := s.sampler.Sample(tick)
	if !ok {
		return
	}
	s.statScans.Add(1)

	f := sample.Frame
	det, found := s.adapter.Detect(sample.Pixels, f.Width(), f.Height())
	if !found {
		s.statMisses.Add(1)
		s.diag.Info("no marker detected in this frame")
		return
	}
	s.statDetections.Add(1)
	s.diag.Info("marker detected", "payload", det.Payload)

	_, ray := s.projector.Project(det.Corners, f.Height())
	pose, hit := s.resolver.Resolve(ray)
	s.placer.Apply(det, pose, hit, tick, now)
}

func (s *Scanner) Name() string  { return "marker-scanner" }
func (s *Scanner) Priority() int { return engine.PriorityScan }

// Update adapts Tick to the host loop
func (s *Scanner) Update(t engine.Tick) {
	s.Tick(t.Frame, t.Now)
}

// Ready reports whether the readiness gate has opened
func (s *Scanner) Ready() bool {
	return s.gate.Ready()
}

// Placed reports whether payload has been anchored
func (s *Scanner) Placed(payload string) bool {
	return s.ledger.Has(payload)
}

// PlacedPayloads returns anchored payloads in placement order
func (s *Scanner) PlacedPayloads() []string {
	return s.ledger.Payloads()
}

// Registry exposes the read-only target registry
func (s *Scanner) Registry() *Registry {
	return s.registry
}
