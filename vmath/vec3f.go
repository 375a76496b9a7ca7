package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector in world space
// Left-handed, Y up, Z forward
type Vec3F struct {
	X, Y, Z float64
}

// Canonical axes
var (
	V3FZero    = Vec3F{}
	V3FUp      = Vec3F{0, 1, 0}
	V3FForward = Vec3F{0, 0, 1}
	V3FRight   = Vec3F{1, 0, 0}
)

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FNormalize returns the unit vector, zero vector stays zero
func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FNear reports component-wise equality within eps
func V3FNear(a, b Vec3F, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// V3FWithY returns v with the Y component replaced
func V3FWithY(v Vec3F, y float64) Vec3F {
	v.Y = y
	return v
}

// String formats like a host engine vector dump, two decimals
func (v Vec3F) String() string {
	return "(" + ftoa2(v.X) + ", " + ftoa2(v.Y) + ", " + ftoa2(v.Z) + ")"
}
