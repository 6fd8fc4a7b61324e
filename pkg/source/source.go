// Package source loads the picture that drives a wall layout.
//
// A source string is one of:
//
//   - "-": read from stdin
//   - "http://..." or "https://...": download through an [httputil.Fetcher]
//   - anything else: a local file path
//
// Every source converges on a [raster.Image] via [raster.Decode], optionally
// downscaled so its longer side is at most [Options.MaxDim] pixels.
//
// [httputil.Fetcher]: github.com/matzehuels/perfwall/pkg/httputil.Fetcher
// [raster.Image]: github.com/matzehuels/perfwall/pkg/raster.Image
// [raster.Decode]: github.com/matzehuels/perfwall/pkg/raster.Decode
package source

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/httputil"
	"github.com/matzehuels/perfwall/pkg/observability"
	"github.com/matzehuels/perfwall/pkg/raster"
)

// Kind classifies a source string.
type Kind string

const (
	KindFile  Kind = "file"
	KindStdin Kind = "stdin"
	KindURL   Kind = "url"
)

// KindOf reports how src will be loaded.
func KindOf(src string) Kind {
	switch {
	case src == "-":
		return KindStdin
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return KindURL
	default:
		return KindFile
	}
}

// Options controls loading.
type Options struct {
	Fetcher *httputil.Fetcher // required for URLs; a default fetcher is used when nil
	Stdin   io.Reader         // defaults to os.Stdin
	MaxDim  int               // downscale bound in pixels, 0 keeps the original size
	MaxSize int64             // byte limit for files and stdin, 0 means httputil.DefaultMaxBytes
}

// Loaded is a decoded source image.
type Loaded struct {
	Image  *raster.Image
	Format string // decoder name: png, jpeg, gif, bmp, tiff, webp
	Source string
	Kind   Kind
	Cached bool // served from the download cache
	Bytes  int  // encoded size
}

// Load reads and decodes src.
func Load(ctx context.Context, src string, opts Options) (*Loaded, error) {
	hooks := observability.Pipeline()
	hooks.OnImageLoadStart(ctx, src)
	start := time.Now()

	l, err := load(ctx, src, opts)
	if err != nil {
		hooks.OnImageLoadComplete(ctx, src, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnImageLoadComplete(ctx, src, l.Image.Width, l.Image.Height, time.Since(start), nil)
	return l, nil
}

func load(ctx context.Context, src string, opts Options) (*Loaded, error) {
	limit := opts.MaxSize
	if limit <= 0 {
		limit = httputil.DefaultMaxBytes
	}

	l := &Loaded{Source: src, Kind: KindOf(src)}
	var data []byte
	var err error
	switch l.Kind {
	case KindURL:
		f := opts.Fetcher
		if f == nil {
			f = httputil.NewFetcher(nil)
		}
		data, l.Cached, err = f.Fetch(ctx, src)
	case KindStdin:
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err = readLimited(in, limit, "stdin")
	default:
		data, err = readFile(src, limit)
	}
	if err != nil {
		return nil, err
	}

	img, format, err := raster.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if opts.MaxDim > 0 {
		img = raster.Fit(img, opts.MaxDim)
	}
	l.Image, l.Format, l.Bytes = img, format, len(data)
	return l, nil
}

func readFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "image %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open image")
	}
	defer f.Close()
	return readLimited(f, limit, path)
}

func readLimited(r io.Reader, limit int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", name)
	}
	if int64(len(data)) > limit {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is larger than %d bytes", name, limit)
	}
	return data, nil
}
