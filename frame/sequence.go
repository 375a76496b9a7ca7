package frame

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/lixenwraith/marker-anchor/engine"
)

var ErrEmptySequence = errors.New("frame: sequence has no images")

// SequenceSource replays still images as a camera feed
// Stays unready for warmup ticks, then shows each image for hold ticks and loops
type SequenceSource struct {
	frames []Frame
	warmup int
	hold   int

	ticks   int
	current int
	ready   bool
}

// NewSequenceSource builds a source from decoded frames
func NewSequenceSource(frames []Frame, warmup, hold int) (*SequenceSource, error) {
	if len(frames) == 0 {
		return nil, ErrEmptySequence
	}
	if hold < 1 {
		hold = 1
	}
	if warmup < 0 {
		warmup = 0
	}
	return &SequenceSource{
		frames: frames,
		warmup: warmup,
		hold:   hold,
		ready:  warmup == 0,
	}, nil
}

// LoadSequence decodes image files in order
func LoadSequence(paths []string, warmup, hold int) (*SequenceSource, error) {
	frames := make([]Frame, 0, len(paths))
	for _, p := range paths {
		f, err := loadImage(p)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return NewSequenceSource(frames, warmup, hold)
}

func loadImage(path string) (Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("frame: open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("frame: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// Frame returns the current image, nil during warmup
func (s *SequenceSource) Frame() Frame {
	if !s.ready {
		return nil
	}
	return s.frames[s.current]
}

// Index returns the position of the current image
func (s *SequenceSource) Index() int {
	return s.current
}

// Size returns the first image's dimensions, available during warmup
func (s *SequenceSource) Size() (int, int) {
	return s.frames[0].Width(), s.frames[0].Height()
}

func (s *SequenceSource) Name() string  { return "frame-sequence" }
func (s *SequenceSource) Priority() int { return engine.PrioritySource }

// Update advances warmup and playback by one tick
func (s *SequenceSource) Update(engine.Tick) {
	s.ticks++
	if !s.ready {
		if s.ticks >= s.warmup {
			s.ready = true
			s.ticks = 0
		}
		return
	}
	if s.ticks >= s.hold {
		s.ticks = 0
		s.current = (s.current + 1) % len(s.frames)
	}
}
