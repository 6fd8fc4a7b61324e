package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/api"
	"github.com/matzehuels/perfwall/pkg/config"
	"github.com/matzehuels/perfwall/pkg/observability"
	"github.com/matzehuels/perfwall/pkg/order"
	"github.com/matzehuels/perfwall/pkg/session"
)

// sessionSweepInterval is how often expired configurator sessions are removed.
const sessionSweepInterval = time.Minute

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		noCache    bool
		hooks      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Backends come from the [server] section of --config and PERFWALL_*
environment variables:

  redisURL / PERFWALL_REDIS_URL      shared cache and order notifications
  mongoURI / PERFWALL_MONGO_URI      order storage
  sqlitePath / PERFWALL_SQLITE_PATH  order storage without MongoDB
  cacheDir / PERFWALL_CACHE_DIR      file cache without Redis

Without any of them the server keeps orders in memory and caches to disk.
Configurator sessions always live in memory and expire after sessionTTL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			file := config.Defaults()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				file = loaded
			} else {
				file.Server.ApplyEnv(os.Getenv)
			}
			if addr != "" {
				file.Server.Addr = addr
			}
			if hooks {
				observability.NewLogHooks(c.Logger).RegisterAll()
				defer observability.Reset()
			}

			b, err := openBackends(ctx, file.Server, c.Logger, noCache, "")
			if err != nil {
				return err
			}
			defer b.Close()
			for _, d := range b.describe {
				c.Logger.Info("backend", "use", d)
			}

			sessions := session.NewMemoryStore(file.Server.SessionTTL)
			go session.Janitor(ctx, sessions, sessionSweepInterval, c.Logger)

			srv := api.New(api.Config{
				Runner:         b.runner(c.Logger),
				Orders:         order.NewService(b.Orders, order.WithNotifier(b.Notifier), order.WithLogger(c.Logger)),
				Sessions:       sessions,
				Logger:         c.Logger,
				MaxUploadBytes: int64(file.Server.MaxUploadMB) << 20,
				MaxImageSize:   file.Render.MaxImageSize,
			})

			printSuccess("Listening on %s", StyleLink.Render(displayAddr(file.Server.Addr)))
			return srv.ListenAndServe(ctx, file.Server.Addr)
		},
	}
	cmd.Flags().StringVarP(&configPath, flagConfig, "c", "", "config file (.toml, .yaml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, flagNoCache, false, "disable caching")
	cmd.Flags().BoolVar(&hooks, "trace", false, "log pipeline, cache, fetch and order events")
	return cmd
}

// displayAddr turns a listen address into a clickable URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return fmt.Sprintf("http://localhost%s", addr)
	}
	return "http://" + addr
}
