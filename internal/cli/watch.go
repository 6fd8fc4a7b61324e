package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/source"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "watch [image]",
		Short: "Re-render previews whenever the config or image changes",
		Long: `Re-render previews whenever the config or image changes.

The config file (--config) and a local image are watched. Every save
recomputes the whole wall and rewrites the preview files; errors are
logged and the watch continues. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
	}
	wf := addWallFlags(cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output base path (default: image name or 'wall')")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&ro.pixelsPerMeter, "ppm", 0, "pixels per meter for SVG/PNG/PDF")
	cmd.Flags().BoolVar(&ro.noDimensions, "no-dimensions", false, "omit dimension lines")
	cmd.Flags().BoolVar(&ro.noFigure, "no-figure", false, "omit the reference figure")
	cmd.Flags().BoolVar(&ro.noGround, "no-ground", false, "omit the ground line")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		image := imageArg(args)
		targets := watchTargets(wf.config, image)
		if len(targets) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "nothing to watch: pass --config or a local image")
		}
		return c.runWatch(cmd, wf, &ro, image, targets)
	}
	return cmd
}

// watchTargets returns the absolute paths of the local files that feed a
// render. Stdin and URLs cannot be watched.
func watchTargets(configPath, image string) []string {
	var out []string
	if configPath != "" {
		out = append(out, configPath)
	}
	if image != "" && source.KindOf(image) == source.KindFile {
		out = append(out, image)
	}
	for i, p := range out {
		if abs, err := filepath.Abs(p); err == nil {
			out[i] = abs
		}
	}
	return out
}

func (c *CLI) runWatch(cmd *cobra.Command, wf *wallFlags, ro *renderOpts, image string, targets []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files by rename, so watch the directories and
	// filter by name.
	watched := make(map[string]bool, len(targets))
	dirs := make(map[string]bool)
	for _, t := range targets {
		watched[t] = true
		dir := filepath.Dir(t)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	runner, err := c.newRunner(wf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	rebuild := func() {
		file, err := wf.load(cmd)
		if err != nil {
			printError("%v", err)
			return
		}
		ro.apply(cmd, &file)
		opts := wf.options(file, image)
		paths, res, err := renderToFiles(cmd, runner, opts, basePath(ro.output, image))
		if err != nil {
			printError("%v", err)
			return
		}
		printSuccess("Rendered %d file(s) · %d holes · €%.2f", len(paths), res.Stats.Holes, res.Breakdown.Total)
	}

	rebuild()
	for _, t := range targets {
		printDetail("watching %s", t)
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-pending:
			pending = nil
			rebuild()
		}
	}
}
