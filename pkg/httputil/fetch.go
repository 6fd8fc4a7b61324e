package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/perfwall/pkg/buildinfo"
	"github.com/matzehuels/perfwall/pkg/cache"
	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/observability"
)

// DefaultMaxBytes bounds a single download.
const DefaultMaxBytes = 32 << 20

// Fetcher downloads URLs with retries and an optional cache.
// The zero value is not usable; call [NewFetcher].
type Fetcher struct {
	Client   *http.Client
	Cache    cache.Cache
	Keyer    cache.Keyer
	TTL      time.Duration
	Attempts int
	Delay    time.Duration
	MaxBytes int64
}

// NewFetcher returns a Fetcher with default settings. A nil c disables
// caching.
func NewFetcher(c cache.Cache) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Cache:    c,
		Keyer:    cache.NewDefaultKeyer(),
		TTL:      cache.TTLImage,
		Attempts: 3,
		Delay:    time.Second,
		MaxBytes: DefaultMaxBytes,
	}
}

// Fetch returns the body of rawURL and whether it came from the cache.
// Failures carry ErrCodeInvalidInput for bad URLs, ErrCodeNotFound for 404
// and ErrCodeNetwork for everything else.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, bool, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, false, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid URL")
	}

	key := f.Keyer.HTTPKey("image", rawURL)
	if data, hit, err := f.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "image")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "image")

	var body []byte
	err = Retry(ctx, f.Attempts, f.Delay, func() error {
		var err error
		body, err = f.get(ctx, u)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	if err := f.Cache.Set(ctx, key, body, f.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "image", len(body))
	}
	return body, false, nil
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) ([]byte, error) {
	hooks := observability.HTTP()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	start := time.Now()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	resp, err := f.Client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", u.Redacted())}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "%s: not found", u.Redacted())
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{
			Err:   errors.New(errors.ErrCodeNetwork, "%s: %s", u.Redacted(), resp.Status),
			After: retryAfter(resp.Header),
		}
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.ErrCodeNetwork, "%s: %s", u.Redacted(), resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", u.Redacted())}
	}
	if int64(len(data)) > limit {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: larger than %s", u.Redacted(), byteSize(limit))
	}
	return data, nil
}

func byteSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%d MiB", n>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%d KiB", n>>10)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
