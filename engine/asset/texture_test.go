package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Carmen-Shannon/wgslbox/common"
)

func TestDecodeTexturePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	tex, err := DecodeTexture("sprite.png", buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeTexture: %v", err)
	}
	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", tex.Width, tex.Height)
	}
	if len(tex.Pixels) != 8 {
		t.Fatalf("pixel bytes = %d, want 8", len(tex.Pixels))
	}
	if tex.Pixels[0] != 255 || tex.Pixels[3] != 255 {
		t.Errorf("pixel 0 = %v, want opaque red", tex.Pixels[0:4])
	}
	if tex.Pixels[5] != 255 {
		t.Errorf("pixel 1 = %v, want opaque green", tex.Pixels[4:8])
	}
}

func TestDecodeTextureGarbage(t *testing.T) {
	_, err := DecodeTexture("sprite.png", []byte("jpeg? never heard of it"))
	if !errors.Is(err, common.ErrImageDecode) {
		t.Fatalf("err = %v, want ErrImageDecode", err)
	}
}

func TestBlackTexture(t *testing.T) {
	tex := BlackTexture()
	if tex.Width != 1 || tex.Height != 1 {
		t.Fatalf("size = %dx%d, want 1x1", tex.Width, tex.Height)
	}
	want := []byte{0, 0, 0, 255}
	if !bytes.Equal(tex.Pixels, want) {
		t.Errorf("Pixels = %v, want %v", tex.Pixels, want)
	}
}
