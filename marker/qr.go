package marker

import (
	"image/color"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/lixenwraith/marker-anchor/frame"
	"github.com/lixenwraith/marker-anchor/vmath"
)

// QRDecoder decodes QR codes with gozxing
// Result points are the finder (and alignment) pattern centres
type QRDecoder struct {
	reader gozxing.Reader
	hints  map[gozxing.DecodeHintType]interface{}
}

// NewQRDecoder creates a decoder; tryHarder trades speed for recall
func NewQRDecoder(tryHarder bool) *QRDecoder {
	hints := make(map[gozxing.DecodeHintType]interface{})
	if tryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}
	return &QRDecoder{
		reader: qrcode.NewQRCodeReader(),
		hints:  hints,
	}
}

// Decode returns nil, nil when no code is found
func (d *QRDecoder) Decode(pixels []color.RGBA, width, height int) (*Detection, error) {
	img := frame.ToImage(pixels, width, height)
	if img == nil {
		return nil, nil
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, err
	}

	result, err := d.reader.Decode(bmp, d.hints)
	if err != nil {
		// NotFound, checksum and format failures all mean no usable marker this frame
		return nil, nil
	}

	points := result.GetResultPoints()
	corners := make([]vmath.Vec2F, 0, len(points))
	for _, p := range points {
		if p == nil {
			continue
		}
		corners = append(corners, vmath.Vec2F{X: p.GetX(), Y: p.GetY()})
	}
	return &Detection{Payload: result.GetText(), Corners: corners}, nil
}

// EncodeQR renders payload as a size x size QR frame, dark modules on white
func EncodeQR(payload string, size int) (*frame.RGBAFrame, error) {
	matrix, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		return nil, err
	}
	return frame.FromImage(matrix), nil
}
