package marker

import (
	"errors"
	"image/color"
	"testing"

	"github.com/lixenwraith/marker-anchor/vmath"
)

func TestAdapterNormalizes(t *testing.T) {
	tests := []struct {
		name      string
		decoder   DecoderFunc
		wantFound bool
		wantLen   int
	}{
		{
			name:    "nothing found",
			decoder: func([]color.RGBA, int, int) (*Detection, error) { return nil, nil },
		},
		{
			name: "decoder error",
			decoder: func([]color.RGBA, int, int) (*Detection, error) {
				return nil, errors.New("checksum")
			},
		},
		{
			name: "nil corners",
			decoder: func([]color.RGBA, int, int) (*Detection, error) {
				return &Detection{Payload: "A"}, nil
			},
			wantFound: true,
		},
		{
			name: "four corners",
			decoder: func([]color.RGBA, int, int) (*Detection, error) {
				return &Detection{Payload: "A", Corners: make([]vmath.Vec2F, 4)}, nil
			},
			wantFound: true,
			wantLen:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(tt.decoder, nil)
			det, ok := a.Detect(nil, 0, 0)
			if ok != tt.wantFound {
				t.Fatalf("Expected found=%v, got %v", tt.wantFound, ok)
			}
			if !ok {
				return
			}
			if det.Corners == nil {
				t.Error("Expected non-nil corners")
			}
			if len(det.Corners) != tt.wantLen {
				t.Errorf("Expected %d corners, got %d", tt.wantLen, len(det.Corners))
			}
		})
	}
}

// TestQRDecoderReadsGeneratedCode encodes a payload and decodes it back from pixels
func TestQRDecoderReadsGeneratedCode(t *testing.T) {
	f, err := EncodeQR("chair-01", 200)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if f.Width() != 200 || f.Height() != 200 {
		t.Errorf("Expected 200x200 frame, got %dx%d", f.Width(), f.Height())
	}

	det, err := NewQRDecoder(true).Decode(f.Pixels(), f.Width(), f.Height())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if det == nil {
		t.Fatal("Expected detection")
	}
	if det.Payload != "chair-01" {
		t.Errorf("Expected payload chair-01, got %q", det.Payload)
	}
	if len(det.Corners) < 3 {
		t.Errorf("Expected at least 3 result points, got %d", len(det.Corners))
	}
}

func TestQRDecoderBlankFrame(t *testing.T) {
	px := make([]color.RGBA, 64*64)
	for i := range px {
		px[i] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	det, err := NewQRDecoder(false).Decode(px, 64, 64)
	if err != nil || det != nil {
		t.Errorf("Expected no detection, got %v, %v", det, err)
	}
}

func TestQRDecoderShortBuffer(t *testing.T) {
	det, err := NewQRDecoder(false).Decode(make([]color.RGBA, 4), 64, 64)
	if err != nil || det != nil {
		t.Errorf("Expected no detection for short buffer, got %v, %v", det, err)
	}
}
