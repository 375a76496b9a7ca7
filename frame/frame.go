// Package frame models camera frames and the sources that expose them
package frame

import (
	"image"
	"image/color"
	"image/draw"
)

// Frame is one camera image
// Pixels are row-major, top row first
type Frame interface {
	Width() int
	Height() int
	Pixels() []color.RGBA
}

// Source exposes the current camera frame
// Frame returns nil until the camera has produced one
type Source interface {
	Frame() Frame
}

// RGBAFrame is an in-memory Frame
type RGBAFrame struct {
	width, height int
	pixels        []color.RGBA
}

// NewRGBAFrame wraps a pixel buffer without copying
func NewRGBAFrame(width, height int, pixels []color.RGBA) *RGBAFrame {
	return &RGBAFrame{width: width, height: height, pixels: pixels}
}

// FromImage converts any image into an RGBAFrame
func FromImage(img image.Image) *RGBAFrame {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	pixels := make([]color.RGBA, 0, w*h)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4]
			pixels = append(pixels, color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]})
		}
	}
	return NewRGBAFrame(w, h, pixels)
}

func (f *RGBAFrame) Width() int           { return f.width }
func (f *RGBAFrame) Height() int          { return f.height }
func (f *RGBAFrame) Pixels() []color.RGBA { return f.pixels }

// ToImage packs a pixel buffer back into an image.RGBA
// Returns nil when the buffer is shorter than width*height
func ToImage(pixels []color.RGBA, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 || len(pixels) < width*height {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		p := pixels[i]
		o := i * 4
		img.Pix[o] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = p.A
	}
	return img
}

// StaticSource always returns the same frame, nil frame means never ready
type StaticSource struct {
	F Frame
}

func (s *StaticSource) Frame() Frame {
	if s.F == nil {
		return nil
	}
	return s.F
}
