// Package marker turns camera pixels into decoded planar marker detections
package marker

import (
	"image/color"
	"log/slog"

	"github.com/lixenwraith/marker-anchor/vmath"
)

// Detection is one decoded marker, consumed within the tick that produced it
type Detection struct {
	Payload string
	Corners []vmath.Vec2F // Image coordinates, top-left origin
}

// Decoder is the external decoding collaborator
// A nil detection with nil error means nothing was found
type Decoder interface {
	Decode(pixels []color.RGBA, width, height int) (*Detection, error)
}

// DecoderFunc adapts a function to Decoder
type DecoderFunc func(pixels []color.RGBA, width, height int) (*Detection, error)

func (f DecoderFunc) Decode(pixels []color.RGBA, width, height int) (*Detection, error) {
	return f(pixels, width, height)
}

// Adapter normalizes decoder output to found / not found
type Adapter struct {
	decoder Decoder
	logger  *slog.Logger
}

// NewAdapter wraps a decoder; nil logger uses slog.Default
func NewAdapter(d Decoder, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{decoder: d, logger: logger}
}

// Detect runs the decoder once
// Errors are treated as no detection; corners are never nil on success
func (a *Adapter) Detect(pixels []color.RGBA, width, height int) (Detection, bool) {
	det, err := a.decoder.Decode(pixels, width, height)
	if err != nil {
		a.logger.Debug("decoder error", "error", err)
		return Detection{}, false
	}
	if det == nil {
		return Detection{}, false
	}

	out := Detection{Payload: det.Payload, Corners: det.Corners}
	if out.Corners == nil {
		out.Corners = []vmath.Vec2F{}
	}
	return out, true
}
