// Package cli implements the perfwall command-line interface.
//
// Every command works on one wall configuration. Values come from the
// defaults, then an optional TOML or YAML file (--config), then the
// per-parameter flags, with later sources winning. Commands that accept an
// image take it as the first argument: a file path, "-" for stdin, or an
// http(s) URL.
//
// # Commands
//
//   - layout: compute the wall and write it as JSON
//   - cost: print the price breakdown and order summary
//   - render: write SVG, PNG, PDF or JSON previews
//   - fabricate: write per-panel DXF cutting blanks (and STL sheets)
//   - materials: list the material price table
//   - rotate: rotate an image by 90° steps
//   - order: submit or list orders in the local order book
//   - serve: run the HTTP API
//   - watch: re-render whenever the config or image changes
//   - tui: interactive configurator
//   - cache: inspect and clear the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is also attached to the command context.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/buildinfo"
	"github.com/matzehuels/perfwall/pkg/cache"
	"github.com/matzehuels/perfwall/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "perfwall"

	// defaultBase is the output base name when no image names the output.
	defaultBase = "wall"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "perfwall designs perforated metal wall panels",
		Long: `perfwall lays out a wall of perforated metal panels, optionally modulating
the hole sizes from a grayscale image, prices it per material and exports
previews, cutting files and orders.`,
		Version:      buildinfo.Current(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.costCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.fabricateCommand())
	root.AddCommand(c.materialsCommand())
	root.AddCommand(c.rotateCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/perfwall/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the data directory using XDG standard (~/.local/share/perfwall/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// basePath derives the output base from the -o flag and the image source.
// A known format extension on output is stripped; without output the image
// file name minus its extension is used, or "wall" for stdin, URLs and no
// image at all.
func basePath(output, image string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if image == "" || image == "-" || strings.Contains(image, "://") {
		return defaultBase
	}
	return strings.TrimSuffix(image, filepath.Ext(image))
}
