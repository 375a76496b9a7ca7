package diag

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ScreenSink shows the latest diagnostic on one row of a tcell screen
type ScreenSink struct {
	mu     sync.Mutex
	screen tcell.Screen
	row    int
	style  tcell.Style
	text   string
}

// NewScreenSink draws on row; negative row counts from the bottom
func NewScreenSink(screen tcell.Screen, row int) *ScreenSink {
	return &ScreenSink{
		screen: screen,
		row:    row,
		style:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
}

// SetText replaces the line, drawn on the next Draw
func (s *ScreenSink) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Text returns the current line
func (s *ScreenSink) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Draw paints the line, clipped to screen width
func (s *ScreenSink) Draw() {
	s.mu.Lock()
	text := s.text
	s.mu.Unlock()

	w, h := s.screen.Size()
	row := s.row
	if row < 0 {
		row = h + row
	}
	if row < 0 || row >= h {
		return
	}

	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		s.screen.SetContent(x, row, r, nil, s.style)
		x++
	}
	for ; x < w; x++ {
		s.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}
}

// MemorySink keeps every line, for tests
type MemorySink struct {
	mu    sync.Mutex
	Lines []string
}

func (m *MemorySink) SetText(text string) {
	m.mu.Lock()
	m.Lines = append(m.Lines, text)
	m.mu.Unlock()
}

// Last returns the newest line or ""
func (m *MemorySink) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Lines) == 0 {
		return ""
	}
	return m.Lines[len(m.Lines)-1]
}
