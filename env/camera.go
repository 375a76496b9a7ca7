// Package env provides stand-in camera projection and environment geometry
// collaborators for running the anchor pipeline without a headset runtime
package env

import (
	"math"

	"github.com/lixenwraith/marker-anchor/anchor"
	"github.com/lixenwraith/marker-anchor/vmath"
)

// Intrinsics are pinhole parameters in pixels, principal point in bottom-left origin space
type Intrinsics struct {
	Fx, Fy float64
	Cx, Cy float64
}

// IntrinsicsFromFOV derives square-pixel intrinsics from a vertical field of view
func IntrinsicsFromFOV(width, height int, vfovDeg float64) Intrinsics {
	fy := (float64(height) / 2) / math.Tan(vfovDeg*math.Pi/360)
	return Intrinsics{
		Fx: fy,
		Fy: fy,
		Cx: float64(width) / 2,
		Cy: float64(height) / 2,
	}
}

// PinholeCamera maps image points to world rays from a fixed camera pose
type PinholeCamera struct {
	Intrinsics
	Position vmath.Vec3F
	Rotation vmath.Quat
}

// NewPinholeCamera places a camera looking along +Z, then pitched (positive looks down) and yawed
func NewPinholeCamera(in Intrinsics, pos vmath.Vec3F, yawDeg, pitchDeg float64) *PinholeCamera {
	yaw := vmath.QAxisAngle(vmath.V3FUp, yawDeg*math.Pi/180)
	pitch := vmath.QAxisAngle(vmath.V3FRight, pitchDeg*math.Pi/180)
	return &PinholeCamera{
		Intrinsics: in,
		Position:   pos,
		Rotation:   vmath.QMul(yaw, pitch),
	}
}

// ImagePointToWorldRay returns a unit-direction ray through pixel p
func (c *PinholeCamera) ImagePointToWorldRay(p vmath.Vec2I) anchor.Ray {
	local := vmath.Vec3F{
		X: (float64(p.X) - c.Cx) / c.Fx,
		Y: (float64(p.Y) - c.Cy) / c.Fy,
		Z: 1,
	}
	dir := vmath.QRotate(c.Rotation, vmath.V3FNormalize(local))
	return anchor.Ray{Origin: c.Position, Direction: dir}
}
