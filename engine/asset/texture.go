// texture.go decodes static texture assets to tightly packed RGBA8 pixels
// ready for queue.WriteTexture upload.
package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/Carmen-Shannon/wgslbox/common"
	"golang.org/x/image/draw"
)

// Texture is a decoded image ready for GPU upload.
type Texture struct {
	// Path is the asset path from the manifest.
	Path string

	// Width and Height are the pixel dimensions.
	Width  uint32
	Height uint32

	// Pixels is the RGBA8 data, 4*Width bytes per row, no padding.
	Pixels []byte
}

// DecodeTexture decodes PNG or JPEG bytes into RGBA8.
//
// Parameters:
//   - name: the asset path, for error reporting
//   - data: the raw encoded bytes
//
// Returns:
//   - *Texture: the decoded texture
//   - error: common.ErrImageDecode wrapping the decoder failure
func DecodeTexture(name string, data []byte) (*Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", name, err, common.ErrImageDecode)
	}
	return fromImage(name, img), nil
}

// fromImage blits any decoded image into a tightly packed RGBA buffer.
func fromImage(name string, img image.Image) *Texture {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return &Texture{
		Path:   name,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Pixels: rgba.Pix,
	}
}

// BlackTexture returns a 1×1 opaque black texture, the degraded substitute
// for a camera or video source that cannot be opened.
func BlackTexture() *Texture {
	return &Texture{
		Path:   "black",
		Width:  1,
		Height: 1,
		Pixels: []byte{0, 0, 0, 255},
	}
}
