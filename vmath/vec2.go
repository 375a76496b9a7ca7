package vmath

import (
	"math"
	"strconv"
)

// Vec2F is a float64 2D image-space point
type Vec2F struct {
	X, Y float64
}

// Vec2I is an integer 2D image-space point
type Vec2I struct {
	X, Y int
}

// RoundToInt rounds half to even, matching the host engine's rounding rule
// 0.5 -> 0, 1.5 -> 2, 2.5 -> 2
func RoundToInt(f float64) int {
	return int(math.RoundToEven(f))
}

// Mean2F returns the arithmetic mean of points, zero when empty
func Mean2F(points []Vec2F) (Vec2F, bool) {
	if len(points) == 0 {
		return Vec2F{}, false
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Vec2F{sumX / n, sumY / n}, true
}

func (v Vec2I) String() string {
	return "(" + strconv.Itoa(v.X) + ", " + strconv.Itoa(v.Y) + ")"
}

func ftoa2(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
