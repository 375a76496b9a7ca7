package main

import (
	"image/color"

	"github.com/lixenwraith/marker-anchor/frame"
)

func blankFrame(size int) *frame.RGBAFrame {
	px := make([]color.RGBA, size*size)
	for i := range px {
		px[i] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return frame.NewRGBAFrame(size, size, px)
}
