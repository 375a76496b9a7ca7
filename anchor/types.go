package anchor

import (
	"time"

	"github.com/lixenwraith/marker-anchor/scene"
	"github.com/lixenwraith/marker-anchor/vmath"
)

// Ray is a world-space half line, Direction need not be unit length
type Ray struct {
	Origin    vmath.Vec3F
	Direction vmath.Vec3F
}

// At returns the point at parameter t
func (r Ray) At(t float64) vmath.Vec3F {
	return vmath.V3FAdd(r.Origin, vmath.V3FScale(r.Direction, t))
}

// Hit is the nearest environment intersection
type Hit struct {
	Point  vmath.Vec3F
	Normal vmath.Vec3F
}

// Pose is a world position and orientation
type Pose struct {
	Position vmath.Vec3F
	Rotation vmath.Quat
}

// FallbackPose is reported on a raycast miss
var FallbackPose = Pose{Rotation: vmath.QIdentity}

// Projection maps an image point (bottom-left origin) to a world ray
type Projection interface {
	ImagePointToWorldRay(p vmath.Vec2I) Ray
}

// Surface intersects rays with the physical environment
type Surface interface {
	Raycast(r Ray) (Hit, bool)
}

// TargetBinding pairs a marker payload with the scene node it anchors
type TargetBinding struct {
	Payload string
	Node    scene.NodeID
}

// Placement records one successful anchoring
type Placement struct {
	ID       string       `json:"id"`
	Payload  string       `json:"payload"`
	Node     scene.NodeID `json:"node"`
	NodeName string       `json:"node_name"`
	Pose     Pose         `json:"pose"`
	Hit      bool         `json:"surface_hit"`
	Frame    int64        `json:"frame"`
	At       time.Time    `json:"at"`
}

// PlacementListener observes placements, called synchronously on the tick goroutine
type PlacementListener func(p Placement)
