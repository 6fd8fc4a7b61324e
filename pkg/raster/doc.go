// Package raster holds decoded image pixels and reads brightness samples
// from them.
//
// # Overview
//
// The wall layout engine never touches encoded image bytes. Every source is
// decoded once into an [Image] (RGBA8, row-major, top-to-bottom), and each
// panel then reads its cell grid through a [Sampler] restricted to the
// panel's footprint on the image.
//
// # Sampling
//
// A [Sampler] is nearest-neighbor by floored index ratio: sample (a, b) of a
// countX×countY grid reads the pixel at
//
//	region.X + floor(a/countX * region.W), region.Y + floor(b/countY * region.H)
//
// clamped to the image. Brightness is the plain mean of the R, G and B
// channels normalized to [0,1]; alpha is ignored.
//
// # Rotation
//
// [Image.Rotate90] rotates by a quarter turn into a fresh buffer. Applying
// it four times yields the original pixels.
//
// # Formats
//
// [Decode] accepts PNG, JPEG and GIF from the standard library plus BMP,
// TIFF and WebP from golang.org/x/image. [Fit] downscales oversized uploads
// before they are sampled.
package raster
