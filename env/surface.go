package env

import (
	"math"

	"github.com/lixenwraith/marker-anchor/anchor"
	"github.com/lixenwraith/marker-anchor/vmath"
)

const rayEps = 1e-9

// Plane is a flat surface; Radius > 0 bounds it to a disc around Point
type Plane struct {
	Name   string
	Point  vmath.Vec3F
	Normal vmath.Vec3F
	Radius float64
}

// PlaneSet is an environment made of planes
type PlaneSet struct {
	Planes      []Plane
	MaxDistance float64 // 0 means unlimited
}

// Raycast returns the nearest forward hit, normal facing the ray origin
func (s *PlaneSet) Raycast(r anchor.Ray) (anchor.Hit, bool) {
	dir := vmath.V3FNormalize(r.Direction)
	if vmath.V3FMagSq(dir) == 0 {
		return anchor.Hit{}, false
	}

	best := math.Inf(1)
	var hit anchor.Hit
	for _, pl := range s.Planes {
		n := vmath.V3FNormalize(pl.Normal)
		denom := vmath.V3FDot(dir, n)
		if math.Abs(denom) < rayEps {
			continue
		}

		t := vmath.V3FDot(vmath.V3FSub(pl.Point, r.Origin), n) / denom
		if t <= rayEps || t >= best {
			continue
		}
		if s.MaxDistance > 0 && t > s.MaxDistance {
			continue
		}

		point := vmath.V3FAdd(r.Origin, vmath.V3FScale(dir, t))
		if pl.Radius > 0 && vmath.V3FMag(vmath.V3FSub(point, pl.Point)) > pl.Radius {
			continue
		}

		if denom > 0 {
			n = vmath.V3FScale(n, -1)
		}
		best = t
		hit = anchor.Hit{Point: point, Normal: n}
	}
	return hit, !math.IsInf(best, 1)
}

// Room is a floor at y=0 with four walls at +-halfX and +-halfZ
func Room(halfX, halfZ float64) *PlaneSet {
	return &PlaneSet{Planes: []Plane{
		{Name: "floor", Normal: vmath.V3FUp},
		{Name: "wall+x", Point: vmath.Vec3F{X: halfX}, Normal: vmath.Vec3F{X: -1}},
		{Name: "wall-x", Point: vmath.Vec3F{X: -halfX}, Normal: vmath.Vec3F{X: 1}},
		{Name: "wall+z", Point: vmath.Vec3F{Z: halfZ}, Normal: vmath.Vec3F{Z: -1}},
		{Name: "wall-z", Point: vmath.Vec3F{Z: -halfZ}, Normal: vmath.Vec3F{Z: 1}},
	}}
}
