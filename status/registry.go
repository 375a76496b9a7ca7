package status

import "sync/atomic"

// Metric keys written by the scan pipeline and the host loop
const (
	KeyTicks          = "engine.ticks"
	KeyScans          = "scan.attempts"
	KeyFrameInvalid   = "scan.frame_invalid"
	KeyNoPixels       = "scan.no_pixels"
	KeyDetections     = "scan.detections"
	KeyNoDetection    = "scan.no_detection"
	KeyRaycastHits    = "surface.hits"
	KeyRaycastMisses  = "surface.misses"
	KeyPlacements     = "placement.placed"
	KeyDedupSkips     = "placement.dedup_skips"
	KeyUnmapped       = "placement.unmapped"
	KeyDebugMoves     = "placement.debug_moves"
	KeyGateWaits      = "gate.waits"
	KeyLastPayload    = "scan.last_payload"
	KeyCameraState    = "gate.camera"
	KeyLastDiagnostic = "diag.last"
)

// Registry is the metrics facade shared by the pipeline, the loop and inspect
// Components cache pointers at construction; the tick path only touches atomics
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Snapshot is a point-in-time copy of all metrics
type Snapshot struct {
	Ints    map[string]int64  `json:"ints"`
	Strings map[string]string `json:"strings"`
}

// Snapshot copies current values; individual reads are atomic, the set is not
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Ints:    make(map[string]int64, r.Ints.Count()),
		Strings: make(map[string]string, r.Strings.Count()),
	}
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		snap.Ints[key] = ptr.Load()
	})
	r.Strings.Range(func(key string, ptr *AtomicString) {
		snap.Strings[key] = ptr.Load()
	})
	return snap
}
