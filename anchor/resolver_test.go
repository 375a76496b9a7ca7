package anchor

import (
	"testing"
	"time"

	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/scene"
	"github.com/lixenwraith/marker-anchor/status"
	"github.com/lixenwraith/marker-anchor/vmath"
)

func TestClampHeight(t *testing.T) {
	tests := []struct {
		in, want vmath.Vec3F
	}{
		{vmath.Vec3F{X: 1, Y: -3, Z: 2}, vmath.Vec3F{X: 1, Y: 0.1, Z: 2}},
		{vmath.Vec3F{X: 1, Y: 0.0999, Z: 2}, vmath.Vec3F{X: 1, Y: 0.1, Z: 2}},
		{vmath.Vec3F{X: 1, Y: 0.1, Z: 2}, vmath.Vec3F{X: 1, Y: 0.1, Z: 2}},
		{vmath.Vec3F{X: -4, Y: 2.5, Z: 7}, vmath.Vec3F{X: -4, Y: 2.5, Z: 7}},
	}
	for _, tt := range tests {
		if got := ClampHeight(tt.in, 0.1); got != tt.want {
			t.Errorf("ClampHeight(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestResolverHit verifies pose derivation, clamping and hit marker spawn
func TestResolverHit(t *testing.T) {
	g := scene.NewGraph()
	normal := vmath.V3FNormalize(vmath.Vec3F{X: 1, Y: 1})
	surface := &fixedSurface{hit: Hit{Point: vmath.Vec3F{X: 3, Y: 0.02, Z: 4}, Normal: normal}, ok: true}
	reg := status.NewRegistry()
	r := NewResolver(surface, g, 0.1, HitMarkerConfig{Enabled: true, Lifetime: time.Second, Scale: 0.05}, diag.Nop(), reg)

	pose, hit := r.Resolve(Ray{})
	if !hit {
		t.Fatal("Expected hit")
	}
	if pose.Position != (vmath.Vec3F{X: 3, Y: 0.1, Z: 4}) {
		t.Errorf("Expected clamped position, got %v", pose.Position)
	}
	if up := vmath.QRotate(pose.Rotation, vmath.V3FUp); !vmath.V3FNear(up, normal, 1e-9) {
		t.Errorf("Expected rotation to map up onto normal, got %v", up)
	}

	id, ok := g.Find(HitMarkerName)
	if !ok {
		t.Fatal("Expected hit marker in scene")
	}
	n, _ := g.Get(id)
	if n.Position != surface.hit.Point || n.Lifetime != time.Second || !n.Active {
		t.Errorf("Unexpected hit marker %+v", n)
	}
	if reg.Ints.Get(status.KeyRaycastHits).Load() != 1 {
		t.Error("Expected hit metric")
	}
}

func TestResolverMiss(t *testing.T) {
	g := scene.NewGraph()
	reg := status.NewRegistry()
	sink := &diag.MemorySink{}
	r := NewResolver(&fixedSurface{}, g, 0.1, HitMarkerConfig{Enabled: true}, diag.New(nil, sink, nil), reg)

	pose, hit := r.Resolve(Ray{})
	if hit {
		t.Fatal("Expected miss")
	}
	if pose != FallbackPose {
		t.Errorf("Expected fallback pose, got %+v", pose)
	}
	if g.Len() != 0 {
		t.Error("Expected no hit marker on miss")
	}
	if sink.Last() != "raycast failed, no surface hit" {
		t.Errorf("Unexpected diagnostic %q", sink.Last())
	}
	if reg.Ints.Get(status.KeyRaycastMisses).Load() != 1 {
		t.Error("Expected miss metric")
	}
}

func TestResolverHitMarkerDisabled(t *testing.T) {
	g := scene.NewGraph()
	r := NewResolver(&fixedSurface{ok: true, hit: Hit{Normal: vmath.V3FUp}}, g, 0.1, HitMarkerConfig{}, diag.Nop(), status.NewRegistry())
	r.Resolve(Ray{})
	if g.Len() != 0 {
		t.Error("Expected no hit marker when disabled")
	}
}
