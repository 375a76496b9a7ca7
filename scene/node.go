package scene

import (
	"time"

	"github.com/lixenwraith/marker-anchor/vmath"
)

// NodeID addresses a node in the Graph
// IDs are never reused, a stale ID simply fails lookup
type NodeID uint64

// NoNode is the zero ID, never assigned
const NoNode NodeID = 0

// Node is a placeable scene object
type Node struct {
	ID       NodeID
	Name     string
	Position vmath.Vec3F
	Rotation vmath.Quat
	Scale    vmath.Vec3F
	Active   bool

	// Lifetime > 0 marks a transient node, reaped when it runs out
	Lifetime time.Duration
}
