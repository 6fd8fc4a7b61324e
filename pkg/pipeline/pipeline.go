// Package pipeline provides the image → layout → cost → render pipeline
// shared by the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Image: load and decode the source image (file, stdin or URL)
//  2. Layout: compute panels and cells with [wall.Build] and price them
//  3. Render: produce SVG, PNG, PDF and JSON outputs concurrently
//
// Each stage can be run on its own. Layouts are cached by a hash of the
// parameters and the image content; artifacts by a hash of the layout and
// the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Params:  params,
//	    Image:   "photo.jpg",
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/perfwall/pkg/cache"
	"github.com/matzehuels/perfwall/pkg/config"
	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/render/sink"
	"github.com/matzehuels/perfwall/pkg/source"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPixelsPerMeter is the raster preview scale.
	DefaultPixelsPerMeter = sink.DefaultPixelsPerMeter
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Params wall.Params `json:"params"`
	Image  string      `json:"image,omitempty"` // path, "-" or URL; empty means no image

	// Image options
	MaxImageSize int  `json:"maxImageSize,omitempty"` // 0 samples the decoded image as is
	Refresh      bool `json:"refresh,omitempty"`      // bypass the layout cache

	// Render options
	Formats        []string `json:"formats,omitempty"`
	PixelsPerMeter float64  `json:"pixelsPerMeter,omitempty"`
	Dimensions     bool     `json:"dimensions,omitempty"`
	Figure         bool     `json:"figure,omitempty"`
	Ground         bool     `json:"ground,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Stdin  io.Reader   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// FromConfig builds options from a config file's wall and render sections.
func FromConfig(f config.File) Options {
	return Options{
		Params:         f.Wall,
		MaxImageSize:   f.Render.MaxImageSize,
		Formats:        append([]string(nil), f.Render.Formats...),
		PixelsPerMeter: f.Render.PixelsPerMeter,
		Dimensions:     f.Render.Dimensions,
		Figure:         f.Render.Figure,
		Ground:         f.Render.Ground,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Image is the decoded source, nil when no image was given.
	Image *source.Loaded

	// Layout is the computed wall.
	Layout wall.Layout

	// LayoutHash is the content hash of the layout.
	LayoutHash string

	// Breakdown is the price of the layout.
	Breakdown cost.Breakdown

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Panels     int
	Holes      int
	ImageTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ImageHit  bool // Whether the image download came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the parameters and formats and applies
// defaults. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Params.Validate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.MaxImageSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "maxImageSize must be >= 0, got %d", o.MaxImageSize)
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PixelsPerMeter <= 0 {
		o.PixelsPerMeter = DefaultPixelsPerMeter
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// SinkOptions returns the preview options for the SVG, PNG and PDF sinks.
func (o *Options) SinkOptions() []sink.Option {
	opts := []sink.Option{sink.WithPixelsPerMeter(o.PixelsPerMeter)}
	if o.Dimensions {
		opts = append(opts, sink.WithDimensions())
	}
	if o.Figure {
		opts = append(opts, sink.WithFigure())
	}
	if o.Ground {
		opts = append(opts, sink.WithGround())
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Dimensions: o.Dimensions,
		Figure:     o.Figure,
		Ground:     o.Ground,
	}
	if format != FormatJSON {
		k.PixelsPerMeter = o.PixelsPerMeter
	}
	return k
}
