package vmath

import "math"

// Quat is a unit rotation quaternion, W is the scalar part
type Quat struct {
	X, Y, Z, W float64
}

// QIdentity is the no-rotation quaternion
var QIdentity = Quat{W: 1}

// parallelEps bounds the dot product treated as (anti)parallel
const parallelEps = 1e-9

// QFromTo returns the shortest rotation mapping direction from onto direction to
// Inputs need not be normalized; a zero input yields identity
func QFromTo(from, to Vec3F) Quat {
	f := V3FNormalize(from)
	t := V3FNormalize(to)
	if V3FMagSq(f) == 0 || V3FMagSq(t) == 0 {
		return QIdentity
	}

	d := V3FDot(f, t)
	if d >= 1-parallelEps {
		return QIdentity
	}

	if d <= -1+parallelEps {
		// Half turn about any axis orthogonal to from
		axis := V3FCross(V3FRight, f)
		if V3FMagSq(axis) < parallelEps {
			axis = V3FCross(V3FUp, f)
		}
		axis = V3FNormalize(axis)
		return Quat{axis.X, axis.Y, axis.Z, 0}
	}

	c := V3FCross(f, t)
	return QNormalize(Quat{c.X, c.Y, c.Z, 1 + d})
}

// QAxisAngle builds a rotation of angle radians about axis
func QAxisAngle(axis Vec3F, angle float64) Quat {
	a := V3FNormalize(axis)
	if V3FMagSq(a) == 0 {
		return QIdentity
	}
	s, c := math.Sincos(angle / 2)
	return Quat{a.X * s, a.Y * s, a.Z * s, c}
}

// QMul composes rotations, b applied first
func QMul(a, b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

func QNormalize(q Quat) Quat {
	m := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if m == 0 {
		return QIdentity
	}
	inv := 1.0 / m
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// QRotate applies q to v
// v' = v + 2w(u×v) + 2u×(u×v), u = vector part
func QRotate(q Quat, v Vec3F) Vec3F {
	u := Vec3F{q.X, q.Y, q.Z}
	t := V3FScale(V3FCross(u, v), 2)
	return V3FAdd(V3FAdd(v, V3FScale(t, q.W)), V3FCross(u, t))
}

// QNear compares rotations, q and -q are the same rotation
func QNear(a, b Quat, eps float64) bool {
	d := math.Abs(a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W)
	return d >= 1-eps
}
