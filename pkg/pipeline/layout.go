package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/perfwall/pkg/cache"
	"github.com/matzehuels/perfwall/pkg/observability"
	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// noImage stands in for the image hash when a layout has no image.
const noImage = "none"

// LayoutWithCacheInfo computes the layout for p and img with caching and
// returns whether it came from the cache. refresh skips the cache read but
// still stores the fresh result.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, p wall.Params, img *raster.Image, refresh bool) (wall.Layout, bool, error) {
	if err := p.Validate(); err != nil {
		return wall.Layout{}, false, err
	}

	paramsHash, err := cache.HashJSON(p)
	if err != nil {
		return wall.Layout{}, false, err
	}
	imageHash := noImage
	if img != nil {
		imageHash = img.Hash()
	}
	cacheKey := r.Keyer.LayoutKey(paramsHash, imageHash)

	// Try cache first
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached wall.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l, err := Layout(ctx, p, img)
	if err != nil {
		return wall.Layout{}, false, err
	}

	if data, err := json.Marshal(l); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// Layout computes a layout without caching and reports it to the
// pipeline hooks.
func Layout(ctx context.Context, p wall.Params, img *raster.Image) (wall.Layout, error) {
	hooks := observability.Pipeline()
	panels := 0
	if p.Validate() == nil {
		panels = wall.NewPartition(p).Count()
	}
	hooks.OnLayoutStart(ctx, panels)
	start := time.Now()

	l, err := wall.Build(p, img)
	hooks.OnLayoutComplete(ctx, l.TotalHoleCount, time.Since(start), err)
	return l, err
}
