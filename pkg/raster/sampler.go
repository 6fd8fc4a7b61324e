package raster

import "math"

// Region is a rectangle in pixel space. It may extend past the image edges;
// samples falling outside are clamped to the nearest valid pixel.
type Region struct {
	X, Y int // origin (top-left)
	W, H int // extent
}

// RegionFor maps a normalized footprint (origin and extent as fractions of
// the whole image) to pixel space. Every component is floored.
func RegionFor(img *Image, nx, ny, nw, nh float64) Region {
	return Region{
		X: int(math.Floor(nx * float64(img.Width))),
		Y: int(math.Floor(ny * float64(img.Height))),
		W: int(math.Floor(nw * float64(img.Width))),
		H: int(math.Floor(nh * float64(img.Height))),
	}
}

// Sampler reads a countX×countY grid of brightness samples from a region.
//
// Sample (a, b) reads the pixel at
//
//	x = region.X + floor(a/countX * region.W)
//	y = region.Y + floor(b/countY * region.H)
//
// which is nearest-neighbor by floored index ratio.
type Sampler struct {
	img    *Image
	region Region
	countX int
	countY int
	invert bool
}

// NewSampler creates a sampler. Counts below 1 are treated as 1 so that
// Sample never divides by zero; callers that have no cells simply never
// call Sample.
func NewSampler(img *Image, region Region, countX, countY int, invert bool) *Sampler {
	return &Sampler{
		img:    img,
		region: region,
		countX: max(countX, 1),
		countY: max(countY, 1),
		invert: invert,
	}
}

// Pixel returns the (clamped) pixel coordinate for sample (a, b).
func (s *Sampler) Pixel(a, b int) (x, y int) {
	x = s.region.X + int(math.Floor(float64(a)/float64(s.countX)*float64(s.region.W)))
	y = s.region.Y + int(math.Floor(float64(b)/float64(s.countY)*float64(s.region.H)))
	return clamp(x, 0, s.img.Width-1), clamp(y, 0, s.img.Height-1)
}

// Sample returns the brightness in [0,1] for sample (a, b), inverted if the
// sampler was built with invert set.
func (s *Sampler) Sample(a, b int) float64 {
	v := s.img.Brightness(s.Pixel(a, b))
	if s.invert {
		return 1 - v
	}
	return v
}
