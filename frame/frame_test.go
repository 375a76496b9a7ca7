package frame

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/marker-anchor/engine"
)

func solid(w, h int, c color.RGBA) *RGBAFrame {
	px := make([]color.RGBA, w*h)
	for i := range px {
		px[i] = c
	}
	return NewRGBAFrame(w, h, px)
}

func TestFromImageRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	f := FromImage(img)
	if f.Width() != 3 || f.Height() != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", f.Width(), f.Height())
	}
	if got := f.Pixels()[1*3+2]; got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Unexpected pixel %v", got)
	}

	back := ToImage(f.Pixels(), 3, 2)
	if back == nil || back.RGBAAt(2, 1) != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Error("Expected round trip to preserve pixel")
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 7))
	img.Set(5, 5, color.RGBA{R: 1, A: 255})
	f := FromImage(img)
	if f.Pixels()[0].R != 1 {
		t.Errorf("Expected origin-shifted copy, got %v", f.Pixels()[0])
	}
}

func TestToImageShortBuffer(t *testing.T) {
	if ToImage(make([]color.RGBA, 3), 2, 2) != nil {
		t.Error("Expected nil for short buffer")
	}
}

func TestStaticSource(t *testing.T) {
	var s StaticSource
	if s.Frame() != nil {
		t.Error("Expected nil frame from empty source")
	}
	s.F = solid(2, 2, color.RGBA{})
	if s.Frame() == nil {
		t.Error("Expected frame")
	}
}

// TestSequenceWarmupAndHold verifies readiness delay and frame cycling
func TestSequenceWarmupAndHold(t *testing.T) {
	a := solid(20, 20, color.RGBA{R: 1})
	b := solid(20, 20, color.RGBA{R: 2})
	s, err := NewSequenceSource([]Frame{a, b}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	if s.Frame() != nil {
		t.Fatal("Expected nil frame during warmup")
	}
	s.Update(engine.Tick{})
	if s.Frame() != nil {
		t.Fatal("Expected nil frame after one warmup tick")
	}
	s.Update(engine.Tick{})
	if s.Frame() != Frame(a) {
		t.Fatal("Expected first frame after warmup")
	}

	for i := 0; i < 3; i++ {
		s.Update(engine.Tick{})
	}
	if s.Frame() != Frame(b) {
		t.Errorf("Expected second frame after hold, index %d", s.Index())
	}
	for i := 0; i < 3; i++ {
		s.Update(engine.Tick{})
	}
	if s.Frame() != Frame(a) {
		t.Errorf("Expected loop back to first frame, index %d", s.Index())
	}
}

func TestSequenceEmpty(t *testing.T) {
	if _, err := NewSequenceSource(nil, 0, 1); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("Expected ErrEmptySequence, got %v", err)
	}
}

func TestLoadSequence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	s, err := LoadSequence([]string{path}, 0, 1)
	if err != nil {
		t.Fatalf("LoadSequence failed: %v", err)
	}
	if w, h := s.Size(); w != 32 || h != 24 {
		t.Errorf("Expected 32x24 size, got %dx%d", w, h)
	}
	fr := s.Frame()
	if fr == nil || fr.Width() != 32 || fr.Height() != 24 {
		t.Errorf("Unexpected frame %v", fr)
	}

	if _, err := LoadSequence([]string{filepath.Join(dir, "missing.png")}, 0, 1); err == nil {
		t.Error("Expected error for missing file")
	}
}
