package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/perfwall/pkg/cache"
	"github.com/matzehuels/perfwall/pkg/errors"
)

func newTestFetcher(t *testing.T, c cache.Cache) *Fetcher {
	t.Helper()
	f := NewFetcher(c)
	f.Delay = time.Millisecond
	return f
}

func TestFetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !strings.HasPrefix(r.UserAgent(), "perfwall/") {
			t.Errorf("User-Agent = %q", r.UserAgent())
		}
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := newTestFetcher(t, fc)
	ctx := context.Background()

	data, hit, err := f.Fetch(ctx, srv.URL+"/wall.png")
	if err != nil || hit || string(data) != "image-bytes" {
		t.Fatalf("first Fetch = %q, %v, %v", data, hit, err)
	}
	data, hit, err = f.Fetch(ctx, srv.URL+"/wall.png")
	if err != nil || !hit || string(data) != "image-bytes" {
		t.Fatalf("second Fetch = %q, %v, %v", data, hit, err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestFetchStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []int
		wantReqs int32
		wantCode errors.Code
	}{
		{"not found is final", []int{404}, 1, errors.ErrCodeNotFound},
		{"forbidden is final", []int{403}, 1, errors.ErrCodeNetwork},
		{"server errors are retried", []int{503, 503, 503}, 3, errors.ErrCodeNetwork},
		{"rate limit then success", []int{429, 200}, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reqs atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				i := int(reqs.Add(1)) - 1
				status := tt.statuses[min(i, len(tt.statuses)-1)]
				w.WriteHeader(status)
				w.Write([]byte("ok"))
			}))
			defer srv.Close()

			_, _, err := newTestFetcher(t, nil).Fetch(context.Background(), srv.URL)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q (err %v), want %q", got, err, tt.wantCode)
			}
			if n := reqs.Load(); n != tt.wantReqs {
				t.Errorf("requests = %d, want %d", n, tt.wantReqs)
			}
		})
	}
}

func TestFetchSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	f.MaxBytes = 10
	if _, _, err := f.Fetch(context.Background(), srv.URL); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestFetchRejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "ftp://example.com/a.png", "file:///etc/passwd"} {
		if _, _, err := newTestFetcher(t, nil).Fetch(context.Background(), u); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Fetch(%q) err = %v", u, err)
		}
	}
}
