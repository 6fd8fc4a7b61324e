package config

import (
	"strconv"
	"time"
)

// Server holds settings for `perfwall serve`. Empty backend URLs disable
// the corresponding backend and fall back to in-memory or local storage.
type Server struct {
	Addr          string        `toml:"addr" yaml:"addr" json:"addr"`
	RedisURL      string        `toml:"redisURL" yaml:"redisURL" json:"redisURL"`
	MongoURI      string        `toml:"mongoURI" yaml:"mongoURI" json:"mongoURI"`
	MongoDatabase string        `toml:"mongoDatabase" yaml:"mongoDatabase" json:"mongoDatabase"`
	SQLitePath    string        `toml:"sqlitePath" yaml:"sqlitePath" json:"sqlitePath"`
	CacheDir      string        `toml:"cacheDir" yaml:"cacheDir" json:"cacheDir"`
	NotifyChannel string        `toml:"notifyChannel" yaml:"notifyChannel" json:"notifyChannel"`
	SessionTTL    time.Duration `toml:"sessionTTL" yaml:"sessionTTL" json:"sessionTTL"`
	MaxUploadMB   int           `toml:"maxUploadMB" yaml:"maxUploadMB" json:"maxUploadMB"`
}

// DefaultServer returns local-only server settings.
func DefaultServer() Server {
	return Server{
		Addr:          ":8080",
		MongoDatabase: "perfwall",
		NotifyChannel: "perfwall:orders",
		SessionTTL:    2 * time.Hour,
		MaxUploadMB:   20,
	}
}

// Environment variables that override the [server] section.
const (
	EnvAddr          = "PERFWALL_ADDR"
	EnvRedisURL      = "PERFWALL_REDIS_URL"
	EnvMongoURI      = "PERFWALL_MONGO_URI"
	EnvMongoDatabase = "PERFWALL_MONGO_DB"
	EnvSQLitePath    = "PERFWALL_SQLITE_PATH"
	EnvCacheDir      = "PERFWALL_CACHE_DIR"
	EnvSessionTTL    = "PERFWALL_SESSION_TTL"
)

// ApplyEnv overrides fields from environment variables. getenv is usually
// os.Getenv; tests pass a map lookup. Malformed durations are ignored.
func (s *Server) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&s.Addr, EnvAddr)
	set(&s.RedisURL, EnvRedisURL)
	set(&s.MongoURI, EnvMongoURI)
	set(&s.MongoDatabase, EnvMongoDatabase)
	set(&s.SQLitePath, EnvSQLitePath)
	set(&s.CacheDir, EnvCacheDir)
	if v := getenv(EnvSessionTTL); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.SessionTTL = d
		} else if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			s.SessionTTL = time.Duration(secs) * time.Second
		}
	}
}
