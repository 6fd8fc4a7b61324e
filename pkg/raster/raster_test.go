package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/matzehuels/perfwall/pkg/errors"
)

func patterned(w, h int) *Image {
	m := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 20), B: uint8(x + y), A: uint8(200 + x)})
		}
	}
	return m
}

func TestRotate90Law(t *testing.T) {
	src := patterned(3, 2)
	rot := src.Rotate90()

	if rot.Width != 2 || rot.Height != 3 {
		t.Fatalf("rotated dims = %dx%d, want 2x3", rot.Width, rot.Height)
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			r1, g1, b1, a1 := src.RGBA(x, y)
			r2, g2, b2, a2 := rot.RGBA(y, src.Width-1-x)
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Errorf("pixel (%d,%d) not at (%d,%d) after rotation", x, y, y, src.Width-1-x)
			}
		}
	}
}

func TestRotate90FourTimesIsIdentity(t *testing.T) {
	src := patterned(5, 3)
	out := src.Rotate90().Rotate90().Rotate90().Rotate90()
	if out.Width != src.Width || out.Height != src.Height {
		t.Fatalf("dims = %dx%d, want %dx%d", out.Width, out.Height, src.Width, src.Height)
	}
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Error("four quarter turns did not reproduce the source pixels")
	}
}

func TestRotate90DoesNotAlias(t *testing.T) {
	src := patterned(2, 2)
	before := src.Clone()
	rot := src.Rotate90()
	rot.Pix[0] = 99
	if !bytes.Equal(src.Pix, before.Pix) {
		t.Error("rotation modified the source image")
	}
}

func TestBrightness(t *testing.T) {
	m := New(2, 1)
	m.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	m.Set(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	if got := m.Brightness(0, 0); got != 1 {
		t.Errorf("white brightness = %v, want 1 (alpha ignored)", got)
	}
	if got := m.Brightness(1, 0); math.Abs(got-1.0/3) > 1e-12 {
		t.Errorf("red brightness = %v, want 1/3", got)
	}
}

func TestSamplerPixel(t *testing.T) {
	img := New(100, 50)
	tests := []struct {
		name   string
		region Region
		cx, cy int
		a, b   int
		wantX  int
		wantY  int
	}{
		{"origin", Region{0, 0, 100, 50}, 10, 5, 0, 0, 0, 0},
		{"floored ratio", Region{0, 0, 100, 50}, 3, 3, 1, 2, 33, 33},
		{"offset region", Region{40, 10, 20, 20}, 4, 4, 2, 3, 50, 25},
		{"clamped right", Region{90, 0, 40, 50}, 2, 1, 1, 0, 99, 0},
		{"clamped bottom", Region{0, 45, 100, 20}, 1, 2, 0, 1, 0, 49},
		{"negative origin", Region{-5, -5, 10, 10}, 2, 2, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampler(img, tt.region, tt.cx, tt.cy, false)
			x, y := s.Pixel(tt.a, tt.b)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Pixel(%d,%d) = (%d,%d), want (%d,%d)", tt.a, tt.b, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestSamplerInvert(t *testing.T) {
	img := Uniform(4, 4, 51) // 0.2
	plain := NewSampler(img, Region{0, 0, 4, 4}, 2, 2, false)
	inv := NewSampler(img, Region{0, 0, 4, 4}, 2, 2, true)

	if got := plain.Sample(1, 1); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("Sample = %v, want 0.2", got)
	}
	if got := inv.Sample(1, 1); math.Abs(got-0.8) > 1e-12 {
		t.Errorf("inverted Sample = %v, want 0.8", got)
	}
}

func TestRegionFor(t *testing.T) {
	img := New(1000, 800)
	r := RegionFor(img, 0.25, 0.5, 0.375, 0.125)
	want := Region{X: 250, Y: 400, W: 375, H: 100}
	if r != want {
		t.Errorf("RegionFor = %+v, want %+v", r, want)
	}
}

func TestDecode(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if img.Width != 3 || img.Height != 2 || !img.Valid() {
		t.Fatalf("decoded %dx%d valid=%v", img.Width, img.Height, img.Valid())
	}
	if r, g, b, _ := img.RGBA(2, 1); r != 10 || g != 20 || b != 30 {
		t.Errorf("pixel = (%d,%d,%d), want (10,20,30)", r, g, b)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, _, err := DecodeBytes([]byte("not an image"))
	if !errors.Is(err, errors.ErrCodeInvalidImage) {
		t.Errorf("err = %v, want INVALID_IMAGE", err)
	}
}

func TestBMPRoundTrip(t *testing.T) {
	src := Gradient(8, 2)
	var buf bytes.Buffer
	if err := EncodeBMP(&buf, src); err != nil {
		t.Fatal(err)
	}
	got, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "bmp" {
		t.Errorf("format = %q, want bmp", format)
	}
	if got.Brightness(7, 1) != 1 || got.Brightness(0, 0) != 0 {
		t.Error("gradient endpoints not preserved")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{400, 200, 100, 100, 50},
		{200, 400, 100, 50, 100},
		{50, 40, 100, 50, 40},
		{50, 40, 0, 50, 40},
	}
	for _, tt := range tests {
		got := Fit(Uniform(tt.w, tt.h, 128), tt.max)
		if got.Width != tt.wantW || got.Height != tt.wantH {
			t.Errorf("Fit(%dx%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, got.Width, got.Height, tt.wantW, tt.wantH)
		}
	}
}

func TestHash(t *testing.T) {
	a := Uniform(4, 4, 10)
	b := Uniform(4, 4, 10)
	c := Uniform(4, 4, 11)
	if a.Hash() != b.Hash() {
		t.Error("equal images hash differently")
	}
	if a.Hash() == c.Hash() {
		t.Error("different images hash equally")
	}
	if Uniform(2, 8, 10).Hash() == a.Hash() {
		t.Error("same bytes with different dims hash equally")
	}
}
