package anchor

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/scene"
	"github.com/lixenwraith/marker-anchor/status"
	"github.com/lixenwraith/marker-anchor/vmath"
)

// HitMarkerName names transient hit markers in the scene
const HitMarkerName = "hit-marker"

// HitMarkerConfig controls the transient sphere dropped at each surface hit
type HitMarkerConfig struct {
	Enabled  bool
	Lifetime time.Duration
	Scale    float64
}

// ClampHeight raises Y to floor, X and Z untouched
func ClampHeight(pos vmath.Vec3F, floor float64) vmath.Vec3F {
	if pos.Y < floor {
		pos.Y = floor
	}
	return pos
}

// Resolver derives an anchor pose from the environment hit under a ray
type Resolver struct {
	surface   Surface
	scene     *scene.Graph
	minHeight float64
	hitMarker HitMarkerConfig
	diag      *diag.Emitter

	statHits   *atomic.Int64
	statMisses *atomic.Int64
}

func NewResolver(surface Surface, g *scene.Graph, minHeight float64, hm HitMarkerConfig, d *diag.Emitter, reg *status.Registry) *Resolver {
	return &Resolver{
		surface:    surface,
		scene:      g,
		minHeight:  minHeight,
		hitMarker:  hm,
		diag:       d,
		statHits:   reg.Ints.Get(status.KeyRaycastHits),
		statMisses: reg.Ints.Get(status.KeyRaycastMisses),
	}
}

// Resolve returns the clamped pose at the hit, or FallbackPose and false on a miss
func (r *Resolver) Resolve(ray Ray) (Pose, bool) {
	hit, ok := r.surface.Raycast(ray)
	if !ok {
		r.statMisses.Add(1)
		r.diag.Warn("raycast failed, no surface hit")
		return FallbackPose, false
	}

	r.statHits.Add(1)
	r.diag.Info("raycast hit", "point", hit.Point.String())

	if r.hitMarker.Enabled && r.scene != nil {
		r.scene.Spawn(HitMarkerName, hit.Point, r.hitMarker.Scale, r.hitMarker.Lifetime)
	}

	return Pose{
		Position: ClampHeight(hit.Point, r.minHeight),
		Rotation: vmath.QFromTo(vmath.V3FUp, hit.Normal),
	}, true
}
