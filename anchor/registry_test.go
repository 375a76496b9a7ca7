package anchor

import (
	"testing"

	"github.com/lixenwraith/marker-anchor/scene"
)

// TestRegistryFirstWins verifies duplicates keep the node from their first occurrence
func TestRegistryFirstWins(t *testing.T) {
	r := NewRegistry([]TargetBinding{
		{Payload: "A", Node: 1},
		{Payload: "B", Node: 2},
		{Payload: "A", Node: 3},
		{Payload: "B", Node: 4},
		{Payload: "C", Node: 5},
	})

	want := map[string]scene.NodeID{"A": 1, "B": 2, "C": 5}
	if r.Len() != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), r.Len())
	}
	for payload, node := range want {
		got, ok := r.Lookup(payload)
		if !ok || got != node {
			t.Errorf("Lookup(%q) = %d, %v; want %d", payload, got, ok, node)
		}
	}

	order := r.Payloads()
	if len(order) != 3 || order[0] != "A" || order[1] != "B" || order[2] != "C" {
		t.Errorf("Unexpected payload order %v", order)
	}
}

func TestRegistryEmpty(t *testing.T) {
	r := NewRegistry(nil)
	if r.Len() != 0 {
		t.Errorf("Expected empty registry, got %d", r.Len())
	}
	if _, ok := r.Lookup("A"); ok {
		t.Error("Expected lookup on empty registry to fail")
	}
}

func TestLedgerMonotonic(t *testing.T) {
	l := NewLedger()
	if !l.Add("A") {
		t.Error("Expected first add to succeed")
	}
	if l.Add("A") {
		t.Error("Expected duplicate add to report false")
	}
	l.Add("B")
	if l.Len() != 2 || !l.Has("A") || !l.Has("B") {
		t.Errorf("Unexpected ledger %v", l.Payloads())
	}
}
