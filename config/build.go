package config

import (
	"github.com/lixenwraith/marker-anchor/anchor"
	"github.com/lixenwraith/marker-anchor/env"
	"github.com/lixenwraith/marker-anchor/scene"
	"github.com/lixenwraith/marker-anchor/vmath"
)

func (v Vec3) Vec() vmath.Vec3F {
	return vmath.Vec3F{X: v.X, Y: v.Y, Z: v.Z}
}

// Scene holds the nodes created from configuration
type Scene struct {
	Bindings    []anchor.TargetBinding
	DebugVisual scene.NodeID
	ByName      map[string]scene.NodeID
}

// BuildScene creates configured nodes in g and resolves targets to node ids
// Target order is preserved so duplicate payloads keep first-wins semantics
func (c *Config) BuildScene(g *scene.Graph) Scene {
	out := Scene{ByName: make(map[string]scene.NodeID, len(c.Nodes))}
	for _, n := range c.Nodes {
		id := g.Create(n.Name)
		g.SetPose(id, n.Position.Vec(), vmath.QIdentity)
		g.SetActive(id, n.Active)
		out.ByName[n.Name] = id
	}
	for _, t := range c.Targets {
		out.Bindings = append(out.Bindings, anchor.TargetBinding{Payload: t.Payload, Node: out.ByName[t.Node]})
	}
	if c.DebugVisual != "" {
		out.DebugVisual = out.ByName[c.DebugVisual]
	}
	return out
}

// ScannerConfig converts scan settings, debugVisual comes from BuildScene
func (c *Config) ScannerConfig(debugVisual scene.NodeID) anchor.Config {
	return anchor.Config{
		ScanFrameFrequency: c.Scan.FrameFrequency,
		MinFrameDimension:  c.Scan.MinFrameDimension,
		MinAnchorHeight:    c.Scan.MinAnchorHeight,
		DebugVisualOffset:  c.Scan.DebugVisualOffset,
		DebugVisual:        debugVisual,
		RequireSurfaceHit:  c.Scan.RequireSurfaceHit,
		HitMarker: anchor.HitMarkerConfig{
			Enabled:  c.Scan.HitMarker,
			Lifetime: c.Scan.HitMarkerLifetime,
			Scale:    c.Scan.HitMarkerScale,
		},
	}
}

// Projection builds the pinhole camera for a frame size
func (c *Config) Projection(width, height int) *env.PinholeCamera {
	in := env.IntrinsicsFromFOV(width, height, c.Camera.VFOV)
	if c.Camera.Fx > 0 {
		in = env.Intrinsics{Fx: c.Camera.Fx, Fy: c.Camera.Fy, Cx: c.Camera.Cx, Cy: c.Camera.Cy}
		if in.Fy <= 0 {
			in.Fy = in.Fx
		}
	}
	return env.NewPinholeCamera(in, c.Camera.Position.Vec(), c.Camera.Yaw, c.Camera.Pitch)
}

// Environment builds the room plus any extra surfaces
func (c *Config) Environment() *env.PlaneSet {
	var set *env.PlaneSet
	if c.Room.HalfX > 0 && c.Room.HalfZ > 0 {
		set = env.Room(c.Room.HalfX, c.Room.HalfZ)
	} else {
		set = &env.PlaneSet{Planes: []env.Plane{{Name: "floor", Normal: vmath.V3FUp}}}
	}
	set.MaxDistance = c.Room.MaxDistance
	for _, s := range c.Surfaces {
		set.Planes = append(set.Planes, env.Plane{
			Name:   s.Name,
			Point:  s.Point.Vec(),
			Normal: s.Normal.Vec(),
			Radius: s.Radius,
		})
	}
	return set
}
