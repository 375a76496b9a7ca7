package anchor

import "github.com/lixenwraith/marker-anchor/scene"

// Registry maps marker payloads to scene nodes, built once and read-only after
type Registry struct {
	targets map[string]scene.NodeID
	order   []string
}

// NewRegistry keeps the first binding for each payload, later duplicates are ignored
func NewRegistry(bindings []TargetBinding) *Registry {
	r := &Registry{
		targets: make(map[string]scene.NodeID, len(bindings)),
		order:   make([]string, 0, len(bindings)),
	}
	for _, b := range bindings {
		if _, exists := r.targets[b.Payload]; exists {
			continue
		}
		r.targets[b.Payload] = b.Node
		r.order = append(r.order, b.Payload)
	}
	return r
}

// Lookup returns the node bound to payload
func (r *Registry) Lookup(payload string) (scene.NodeID, bool) {
	id, ok := r.targets[payload]
	return id, ok
}

// Len returns the number of distinct payloads
func (r *Registry) Len() int {
	return len(r.targets)
}

// Payloads returns payloads in first-seen order
func (r *Registry) Payloads() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
