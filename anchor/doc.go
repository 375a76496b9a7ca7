// Package anchor places scene nodes at the world pose of detected markers
//
// A Scanner runs once per host tick. After its readiness gate sees the first
// camera frame it samples every Nth tick, decodes a marker, projects the
// marker centroid into a world ray, intersects the ray with the environment
// and anchors the node bound to the marker payload. Each payload is anchored
// at most once for the Scanner's lifetime.
//
// Nothing in this package locks: all state is owned by the Scanner and
// touched only from the goroutine driving Tick.
package anchor
