package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/marker-anchor/anchor"
	"github.com/lixenwraith/marker-anchor/audio"
	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/engine"
	"github.com/lixenwraith/marker-anchor/scene"
	"github.com/lixenwraith/marker-anchor/status"
)

const (
	headerRows = 1
	footerRows = 1
)

var (
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlaced  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleIdle    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleHit     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCamera  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleUnknown = tcell.StyleDefault.Foreground(tcell.ColorPurple)
)

// View draws a top-down map of the room and the latest diagnostic line
type View struct {
	screen  tcell.Screen
	graph   *scene.Graph
	scanner *anchor.Scanner
	reg     *status.Registry
	sink    *diag.ScreenSink
	sound   *audio.SoundManager

	halfX, halfZ float64
	camX, camZ   float64
	debugVisual  scene.NodeID
}

func (v *View) Name() string  { return "terminal-view" }
func (v *View) Priority() int { return engine.PriorityRender + 10 }

func (v *View) Update(t engine.Tick) {
	v.screen.Clear()
	w, h := v.screen.Size()
	mapH := h - headerRows - footerRows
	if w < 4 || mapH < 3 {
		v.sink.Draw()
		v.screen.Show()
		return
	}

	v.drawHeader(w, t.Frame)
	v.drawBorder(w, mapH)

	for _, n := range v.graph.Nodes() {
		if !n.Active {
			continue
		}
		col, row := v.toCell(n.Position.X, n.Position.Z, w, mapH)
		r, style := v.glyph(n)
		v.screen.SetContent(col, row, r, nil, style)
	}
	col, row := v.toCell(v.camX, v.camZ, w, mapH)
	v.screen.SetContent(col, row, '@', nil, styleCamera)

	v.sink.Draw()
	v.screen.Show()
}

func (v *View) glyph(n scene.Node) (rune, tcell.Style) {
	switch {
	case n.Name == anchor.HitMarkerName:
		return '*', styleHit
	case n.ID == v.debugVisual:
		return '+', styleUnknown
	}
	r := '?'
	if n.Name != "" {
		r = []rune(strings.ToUpper(n.Name))[0]
	}
	// Anchored nodes are bright, pre-placed active nodes dim
	for _, p := range v.scanner.PlacedPayloads() {
		if id, ok := v.scanner.Registry().Lookup(p); ok && id == n.ID {
			return r, stylePlaced
		}
	}
	return r, styleIdle
}

// toCell maps world X/Z into the map area, +Z points up the screen
func (v *View) toCell(x, z float64, w, mapH int) (int, int) {
	fx := (x + v.halfX) / (2 * v.halfX)
	fz := (v.halfZ - z) / (2 * v.halfZ)
	col := 1 + int(math.Round(clamp01(fx)*float64(w-3)))
	row := headerRows + 1 + int(math.Round(clamp01(fz)*float64(mapH-3)))
	return col, row
}

func (v *View) drawHeader(w int, frame int64) {
	camera := v.reg.Strings.Get(status.KeyCameraState).Load()
	if camera == "" {
		camera = "waiting"
	}
	mute := ""
	if v.sound != nil && v.sound.Muted() {
		mute = " [muted]"
	}
	text := fmt.Sprintf(" marker-anchor  frame=%d  camera=%s  placed=%d/%d  scans=%d%s  (q quit, m mute)",
		frame, camera,
		len(v.scanner.PlacedPayloads()), v.scanner.Registry().Len(),
		v.reg.Ints.Get(status.KeyScans).Load(), mute)
	drawText(v.screen, 0, 0, w, text, styleHeader)
}

func (v *View) drawBorder(w, mapH int) {
	top := headerRows
	bottom := headerRows + mapH - 1
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, top, tcell.RuneHLine, nil, styleBorder)
		v.screen.SetContent(x, bottom, tcell.RuneHLine, nil, styleBorder)
	}
	for y := top; y <= bottom; y++ {
		v.screen.SetContent(0, y, tcell.RuneVLine, nil, styleBorder)
		v.screen.SetContent(w-1, y, tcell.RuneVLine, nil, styleBorder)
	}
	v.screen.SetContent(0, top, tcell.RuneULCorner, nil, styleBorder)
	v.screen.SetContent(w-1, top, tcell.RuneURCorner, nil, styleBorder)
	v.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, styleBorder)
	v.screen.SetContent(w-1, bottom, tcell.RuneLRCorner, nil, styleBorder)
}

func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
