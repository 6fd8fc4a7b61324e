package pipeline

import (
	"context"

	"github.com/matzehuels/perfwall/pkg/httputil"
	"github.com/matzehuels/perfwall/pkg/source"
)

// LoadImage loads opts.Image. It returns nil without error when no image
// was requested. Downloads go through the runner's cache.
func (r *Runner) LoadImage(ctx context.Context, opts Options) (*source.Loaded, error) {
	if opts.Image == "" {
		return nil, nil
	}
	f := r.Fetcher
	if f == nil {
		f = httputil.NewFetcher(r.Cache)
		f.Keyer = r.Keyer
	}
	return source.Load(ctx, opts.Image, source.Options{
		Fetcher: f,
		Stdin:   opts.Stdin,
		MaxDim:  opts.MaxImageSize,
	})
}
