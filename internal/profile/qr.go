package profile

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"
	"rsc.io/qr"
)

// QROptions controls the rendered QR image
type QROptions struct {
	// Size is the target width and height in pixels.
	Size int
	// Margin is the quiet zone around the code, in modules.
	Margin int
	// Level is the error correction level.
	Level qr.Level
}

// DefaultQROptions matches the share dialog: 256px, 2 module margin.
func DefaultQROptions() QROptions {
	return QROptions{Size: 256, Margin: 2, Level: qr.M}
}

var (
	qrDark  = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	qrLight = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// EncodeQR encodes text as a QR code and returns it as a PNG.
// Modules are scaled by a whole factor so every module keeps the same width;
// any remaining space is filled with the light color around the code.
func EncodeQR(text string, opts QROptions) ([]byte, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultQROptions().Size
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}

	code, err := qr.Encode(text, opts.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	modules := code.Size + 2*opts.Margin
	img := imaging.New(modules, modules, qrLight)
	for y := 0; y < code.Size; y++ {
		for x := 0; x < code.Size; x++ {
			if code.Black(x, y) {
				img.Set(x+opts.Margin, y+opts.Margin, qrDark)
			}
		}
	}

	scale := opts.Size / modules
	if scale < 1 {
		scale = 1
	}
	scaled := imaging.Resize(img, modules*scale, modules*scale, imaging.NearestNeighbor)

	canvasSize := opts.Size
	if canvasSize < modules*scale {
		canvasSize = modules * scale
	}
	canvas := imaging.PasteCenter(imaging.New(canvasSize, canvasSize, qrLight), scaled)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode QR image: %w", err)
	}
	return buf.Bytes(), nil
}
