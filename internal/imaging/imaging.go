// Package imaging decodes uploaded images and normalizes them for the embedding models.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder

	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/kailas-cloud/mediasense/internal/domain"
)

// ModelSide is the square input side of CLIP ViT-B/32.
const ModelSide = 224

// MaxBytes caps accepted uploads.
const MaxBytes = 20 << 20

// Decode reads any registered format and returns an opaque RGBA image.
// Alpha is flattened onto white so transparent PNGs compare like their visible content.
func Decode(data []byte) (*image.RGBA, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty image", domain.ErrDecode)
	}
	if len(data) > MaxBytes {
		return nil, "", domain.Validationf("image exceeds %d bytes", MaxBytes)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, "", fmt.Errorf("%w: zero-sized image", domain.ErrDecode)
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst, format, nil
}

// Resize scales img to side x side with Catmull-Rom resampling.
func Resize(img image.Image, side int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Normalize decodes and resizes to the model input side.
func Normalize(data []byte) (*image.RGBA, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Resize(img, ModelSide), nil
}

// EncodeJPEG re-encodes a normalized image for upload to a remote backend.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
