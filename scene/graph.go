package scene

import (
	"sync"
	"time"

	"github.com/lixenwraith/marker-anchor/engine"
	"github.com/lixenwraith/marker-anchor/vmath"
)

// Graph owns scene nodes; everything else holds NodeIDs and resolves by lookup
type Graph struct {
	mu     sync.RWMutex
	nextID NodeID
	nodes  map[NodeID]*Node
	order  []NodeID // Creation order for stable iteration
}

// NewGraph creates an empty scene
func NewGraph() *Graph {
	return &Graph{
		nextID: 1,
		nodes:  make(map[NodeID]*Node),
		order:  make([]NodeID, 0, 16),
	}
}

// Create adds an inactive node at the origin with unit scale
func (g *Graph) Create(name string) NodeID {
	return g.insert(Node{
		Name:     name,
		Rotation: vmath.QIdentity,
		Scale:    vmath.Vec3F{X: 1, Y: 1, Z: 1},
	})
}

// Spawn adds an active transient node destroyed after lifetime elapses
func (g *Graph) Spawn(name string, pos vmath.Vec3F, scale float64, lifetime time.Duration) NodeID {
	return g.insert(Node{
		Name:     name,
		Position: pos,
		Rotation: vmath.QIdentity,
		Scale:    vmath.Vec3F{X: scale, Y: scale, Z: scale},
		Active:   true,
		Lifetime: lifetime,
	})
}

func (g *Graph) insert(n Node) NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	n.ID = g.nextID
	g.nextID++
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return n.ID
}

// Get returns a copy of the node
func (g *Graph) Get(id NodeID) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Has reports whether id is alive
func (g *Graph) Has(id NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Find returns the first live node with name
func (g *Graph) Find(name string) (NodeID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, id := range g.order {
		if n := g.nodes[id]; n != nil && n.Name == name {
			return id, true
		}
	}
	return NoNode, false
}

// SetPose moves and orients a node, false if id is gone
func (g *Graph) SetPose(id NodeID, pos vmath.Vec3F, rot vmath.Quat) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	n.Position = pos
	n.Rotation = rot
	return true
}

// SetActive toggles visibility, false if id is gone
func (g *Graph) SetActive(id NodeID, active bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	n.Active = active
	return true
}

// Destroy removes a node, no-op for unknown ids
func (g *Graph) Destroy(id NodeID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeLocked(id)
}

func (g *Graph) removeLocked(id NodeID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Reap advances transient lifetimes by dt and destroys expired nodes
// Returns the number destroyed
func (g *Graph) Reap(dt time.Duration) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	var expired []NodeID
	for _, id := range g.order {
		n := g.nodes[id]
		if n.Lifetime <= 0 {
			continue
		}
		n.Lifetime -= dt
		if n.Lifetime <= 0 {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		g.removeLocked(id)
	}
	return len(expired)
}

// Nodes returns copies of all live nodes in creation order
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.nodes[id])
	}
	return out
}

// Len returns the number of live nodes
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Reaper drives Graph.Reap once per host tick
type Reaper struct {
	graph *Graph
}

func NewReaper(g *Graph) *Reaper {
	return &Reaper{graph: g}
}

func (r *Reaper) Name() string  { return "scene-reaper" }
func (r *Reaper) Priority() int { return engine.PriorityScene }

func (r *Reaper) Update(t engine.Tick) {
	r.graph.Reap(t.Delta)
}
