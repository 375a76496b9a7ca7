package inspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lixenwraith/marker-anchor/anchor"
	"github.com/lixenwraith/marker-anchor/status"
	"github.com/lixenwraith/marker-anchor/vmath"
)

func newTestServer() (*Server, *status.Registry, *Journal) {
	reg := status.NewRegistry()
	j := NewJournal()
	return NewServer(reg, j, nil), reg, j
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s, reg, _ := newTestServer()

	var body healthResponse
	w := get(t, s, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Camera != "waiting" {
		t.Errorf("Expected waiting camera, got %q", body.Camera)
	}

	reg.Strings.Get(status.KeyCameraState).Store("ready")
	w = get(t, s, "/healthz")
	json.NewDecoder(w.Body).Decode(&body)
	if body.Camera != "ready" {
		t.Errorf("Expected ready camera, got %q", body.Camera)
	}
}

func TestMetrics(t *testing.T) {
	s, reg, _ := newTestServer()
	reg.Ints.Get(status.KeyPlacements).Add(2)
	reg.Strings.Get(status.KeyLastPayload).Store("A")

	w := get(t, s, "/metrics")
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}
	var snap status.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Ints[status.KeyPlacements] != 2 {
		t.Errorf("Expected 2 placements, got %d", snap.Ints[status.KeyPlacements])
	}
	if snap.Strings[status.KeyLastPayload] != "A" {
		t.Errorf("Expected last payload A, got %q", snap.Strings[status.KeyLastPayload])
	}
}

func TestPlacements(t *testing.T) {
	s, _, j := newTestServer()

	w := get(t, s, "/placements")
	if w.Body.String() != "[]\n" {
		t.Errorf("Expected empty list, got %q", w.Body.String())
	}

	j.Record(anchor.Placement{
		ID:      "p1",
		Payload: "A",
		Node:    1,
		Pose:    anchor.Pose{Position: vmath.Vec3F{X: 1, Y: 0.1, Z: 2}, Rotation: vmath.QIdentity},
		Hit:     true,
		At:      time.Unix(10, 0).UTC(),
	})

	var list []anchor.Placement
	w = get(t, s, "/placements")
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Payload != "A" || list[0].Pose.Position.Z != 2 {
		t.Errorf("Unexpected placements %+v", list)
	}

	w = get(t, s, "/placements/A")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for placed payload, got %d", w.Code)
	}
	w = get(t, s, "/placements/B")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unplaced payload, got %d", w.Code)
	}
}

func TestJournalCopies(t *testing.T) {
	j := NewJournal()
	j.Record(anchor.Placement{Payload: "A"})
	entries := j.Entries()
	entries[0].Payload = "mutated"
	if p, _ := j.Find("A"); p.Payload != "A" {
		t.Error("Expected journal unaffected by caller mutation")
	}
}
