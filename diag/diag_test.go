package diag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/marker-anchor/status"
)

func TestEmitterMirrorsToSinkAndLog(t *testing.T) {
	var buf bytes.Buffer
	sink := &MemorySink{}
	reg := status.NewRegistry()
	e := New(NewLogger(&buf, slog.LevelInfo, "text"), sink, reg)

	e.Info("marker detected", "payload", "A")

	if got := sink.Last(); got != "marker detected payload=A" {
		t.Errorf("Unexpected sink line %q", got)
	}
	if !strings.Contains(buf.String(), "payload=A") {
		t.Errorf("Expected log output to contain payload, got %q", buf.String())
	}
	if got := reg.Strings.Get(status.KeyLastDiagnostic).Load(); got != "marker detected payload=A" {
		t.Errorf("Unexpected last diagnostic %q", got)
	}
	if e.Count() != 1 {
		t.Errorf("Expected count 1, got %d", e.Count())
	}
}

func TestDebugSkipsSink(t *testing.T) {
	sink := &MemorySink{}
	e := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), sink, nil)
	e.Debug("ray", "origin", "x")
	if len(sink.Lines) != 0 {
		t.Errorf("Expected debug to bypass sink, got %v", sink.Lines)
	}
}

func TestWithSharesSink(t *testing.T) {
	sink := &MemorySink{}
	e := New(nil, sink, nil).With("component", "scanner")
	e.Warn("frame invalid")
	if sink.Last() != "frame invalid" {
		t.Errorf("Unexpected sink line %q", sink.Last())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestScreenSinkDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 5)

	sink := NewScreenSink(screen, -1)
	sink.SetText("camera ready")
	sink.Draw()
	screen.Show()

	if sink.Text() != "camera ready" {
		t.Errorf("Unexpected text %q", sink.Text())
	}
}
