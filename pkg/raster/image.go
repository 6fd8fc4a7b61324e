package raster

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image"
	"image/color"
	"image/draw"
)

// Image is a decoded RGBA8 raster: 4 bytes per pixel, row-major,
// top-to-bottom. Pix has exactly Width*Height*4 bytes.
//
// Every source (file upload, URL fetch, stdin) converges on this type before
// reaching the layout engine, so two sources carrying the same pixels
// produce identical layouts.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates a zeroed (transparent black) image.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// FromImage converts any image.Image into an Image. Colors are converted to
// non-premultiplied RGBA so that brightness is independent of how the source
// encoded alpha.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}
	pix := make([]byte, len(nrgba.Pix))
	copy(pix, nrgba.Pix)
	return &Image{Width: b.Dx(), Height: b.Dy(), Pix: pix}
}

// ToNRGBA returns a standard library view of the image. The pixel buffer is
// copied.
func (m *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	copy(out.Pix, m.Pix)
	return out
}

// Valid reports whether the dimensions and buffer length agree.
func (m *Image) Valid() bool {
	return m != nil && m.Width > 0 && m.Height > 0 && len(m.Pix) == m.Width*m.Height*4
}

// RGBA returns the four channels of the pixel at (x, y). Coordinates are
// clamped to the image.
func (m *Image) RGBA(x, y int) (r, g, b, a uint8) {
	x = clamp(x, 0, m.Width-1)
	y = clamp(y, 0, m.Height-1)
	i := (y*m.Width + x) * 4
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]
}

// Set writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (m *Image) Set(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	i := (y*m.Width + x) * 4
	m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Brightness returns the mean of the R, G and B channels at (x, y),
// normalized to [0,1]. Alpha is ignored. Coordinates are clamped.
func (m *Image) Brightness(x, y int) float64 {
	r, g, b, _ := m.RGBA(x, y)
	return (float64(r) + float64(g) + float64(b)) / 3 / 255
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	pix := make([]byte, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{Width: m.Width, Height: m.Height, Pix: pix}
}

// Rotate90 returns a new image rotated by a quarter turn. The result is
// Height×Width; the source pixel at (x, y) lands at (y, Width-1-x). All four
// channels are preserved and the receiver is left untouched.
func (m *Image) Rotate90() *Image {
	out := New(m.Height, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			src := (y*m.Width + x) * 4
			dx, dy := y, m.Width-1-x
			dst := (dy*out.Width + dx) * 4
			copy(out.Pix[dst:dst+4], m.Pix[src:src+4])
		}
	}
	return out
}

// Hash returns a content hash covering dimensions and pixels. Used for cache
// keys; two images with the same pixels hash equally regardless of source.
func (m *Image) Hash() string {
	if m == nil {
		return ""
	}
	h := sha256.New()
	var dims [16]byte
	binary.BigEndian.PutUint64(dims[:8], uint64(m.Width))
	binary.BigEndian.PutUint64(dims[8:], uint64(m.Height))
	h.Write(dims[:])
	h.Write(m.Pix)
	return hex.EncodeToString(h.Sum(nil))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
