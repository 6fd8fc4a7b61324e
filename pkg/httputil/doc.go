// Package httputil downloads source images over HTTP.
//
// # Overview
//
//   - [Fetcher]: GET with a size limit, retries and an optional cache
//   - [Retry]: automatic retry with exponential backoff
//
// # Caching
//
// A [Fetcher] with a [cache.Cache] stores every successful download under
// [cache.Keyer.HTTPKey] ("http:image:<url>") for [cache.TTLImage]. The CLI
// wires a file cache under the user cache directory; the server wires Redis
// when configured.
//
//	f := httputil.NewFetcher(fileCache)
//	data, hit, err := f.Fetch(ctx, "https://example.com/wall.jpg")
//
// # Retry
//
// Network errors, 5xx responses and 429 rate limit responses are retried
// with exponential backoff (3 attempts, 1 second initial delay). Other
// 4xx responses fail immediately.
//
// [cache.Cache]: github.com/matzehuels/perfwall/pkg/cache.Cache
// [cache.Keyer.HTTPKey]: github.com/matzehuels/perfwall/pkg/cache.Keyer
// [cache.TTLImage]: github.com/matzehuels/perfwall/pkg/cache.TTLImage
package httputil
