package raster

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/matzehuels/perfwall/pkg/errors"
)

// Decode reads an encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP) and
// returns it as an Image along with the detected format name.
//
// Decoding failures and empty images are reported as INVALID_IMAGE.
func Decode(r io.Reader) (*Image, string, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image")
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, format, errors.New(errors.ErrCodeInvalidImage, "image has no pixels (%dx%d)", b.Dx(), b.Dy())
	}
	return FromImage(src), format, nil
}

// DecodeBytes is a convenience wrapper around Decode.
func DecodeBytes(data []byte) (*Image, string, error) {
	return Decode(bytes.NewReader(data))
}

// EncodePNG writes the image as PNG.
func EncodePNG(w io.Writer, m *Image) error {
	return png.Encode(w, m.ToNRGBA())
}

// EncodeBMP writes the image as an uncompressed BMP.
func EncodeBMP(w io.Writer, m *Image) error {
	return bmp.Encode(w, m.ToNRGBA())
}

// Fit downscales the image so that neither side exceeds maxDim, keeping the
// aspect ratio. Images already within bounds (or maxDim <= 0) are returned
// unchanged. Scaling uses Catmull-Rom resampling.
func Fit(m *Image, maxDim int) *Image {
	if maxDim <= 0 || (m.Width <= maxDim && m.Height <= maxDim) {
		return m
	}
	w, h := m.Width, m.Height
	if w >= h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), m.ToNRGBA(), image.Rect(0, 0, m.Width, m.Height), draw.Src, nil)
	return FromImage(dst)
}

// Uniform returns a width×height image filled with a single gray level.
func Uniform(width, height int, gray uint8) *Image {
	m := New(width, height)
	c := color.NRGBA{R: gray, G: gray, B: gray, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Set(x, y, c)
		}
	}
	return m
}

// Gradient returns a width×height horizontal gray ramp from black on the
// left to white on the right. Handy as a demo source when no image is
// supplied.
func Gradient(width, height int) *Image {
	m := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if width > 1 {
				v = uint8(x * 255 / (width - 1))
			}
			m.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return m
}
