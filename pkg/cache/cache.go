// Package cache stores computed layouts, rendered artifacts and downloaded
// images between runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI.
//   - [RedisCache]: a shared Redis instance, for `perfwall serve` replicas.
//   - [NullCache]: caching disabled.
//
// # Keys
//
// Keys are produced by a [Keyer] so that every component derives them the
// same way. Layout keys hash the wall parameters together with the image
// content hash; artifact keys hash the layout together with the render
// options. [ScopedKeyer] prefixes every key, which lets several tenants or
// environments share one backend.
package cache

import (
	"context"
	"time"
)

// Time-to-live for each kind of entry. Zero means no expiry.
const (
	TTLImage    = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// HTTPKey is the key for a downloaded resource.
	HTTPKey(namespace, key string) string

	// LayoutKey is the key for a wall layout computed from the given
	// parameters and image.
	LayoutKey(paramsHash, imageHash string) string

	// ArtifactKey is the key for one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every render option that changes artifact bytes.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	PixelsPerMeter float64 `json:"ppm,omitempty"`
	Dimensions     bool    `json:"dims,omitempty"`
	Figure         bool    `json:"figure,omitempty"`
	Ground         bool    `json:"ground,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>". The key is kept readable so
// that `perfwall cache` listings can be matched to URLs.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// LayoutKey hashes the parameter and image hashes.
func (DefaultKeyer) LayoutKey(paramsHash, imageHash string) string {
	return hashKey("layout", paramsHash, imageHash)
}

// ArtifactKey hashes the layout hash and the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
