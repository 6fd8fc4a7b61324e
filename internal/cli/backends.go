package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/perfwall/pkg/cache"
	"github.com/matzehuels/perfwall/pkg/config"
	"github.com/matzehuels/perfwall/pkg/order"
	"github.com/matzehuels/perfwall/pkg/pipeline"
)

// redisKeyPrefix namespaces every key perfwall writes to a shared Redis.
const redisKeyPrefix = "perfwall:"

// backends holds the services selected by the [server] config section:
// Redis for the cache and order notifications when a URL is set, MongoDB or
// SQLite for orders, and local fallbacks otherwise.
type backends struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Orders   order.Store
	Notifier order.Notifier

	describe []string // human-readable backend choices
}

// openBackends connects every configured backend. localOrders is the
// SQLite path used when neither MongoDB nor SQLite is configured; empty
// selects an in-memory order store.
func openBackends(ctx context.Context, s config.Server, logger *log.Logger, noCache bool, localOrders string) (*backends, error) {
	b := &backends{Keyer: cache.NewDefaultKeyer()}
	notifiers := order.Multi{order.LogNotifier{Logger: logger}}

	switch {
	case noCache:
		b.Cache = cache.NewNullCache()
		b.describe = append(b.describe, "cache: disabled")
	case s.RedisURL != "":
		rc, err := cache.NewRedisCache(ctx, s.RedisURL)
		if err != nil {
			return nil, err
		}
		b.Cache = rc
		b.Keyer = cache.NewScopedKeyer(b.Keyer, redisKeyPrefix)
		notifiers = append(notifiers, order.RedisNotifier{Client: rc.Client(), Channel: s.NotifyChannel})
		b.describe = append(b.describe, "cache: redis", "notify: redis "+s.NotifyChannel)
	default:
		dir := s.CacheDir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		b.Cache = fc
		b.describe = append(b.describe, "cache: "+dir)
	}
	b.Notifier = notifiers

	var err error
	switch {
	case s.MongoURI != "":
		b.Orders, err = order.OpenMongo(ctx, s.MongoURI, s.MongoDatabase)
		b.describe = append(b.describe, "orders: mongodb "+s.MongoDatabase)
	case s.SQLitePath != "" || localOrders != "":
		path := s.SQLitePath
		if path == "" {
			path = localOrders
		}
		b.Orders, err = order.OpenSQLite(ctx, path)
		b.describe = append(b.describe, "orders: "+path)
	default:
		b.Orders = order.NewMemoryStore()
		b.describe = append(b.describe, "orders: memory")
	}
	if err != nil {
		b.Cache.Close()
		return nil, fmt.Errorf("open order store: %w", err)
	}
	return b, nil
}

// runner returns a pipeline runner on top of the backend cache.
func (b *backends) runner(logger *log.Logger) *pipeline.Runner {
	return pipeline.NewRunner(b.Cache, b.Keyer, logger)
}

// Close closes the order store and then the cache, which owns the Redis
// client used by the notifier.
func (b *backends) Close() error {
	var first error
	if b.Orders != nil {
		first = b.Orders.Close()
	}
	if b.Cache != nil {
		if err := b.Cache.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// defaultOrderDB returns the local order book path.
func defaultOrderDB() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "orders.db"), nil
}
