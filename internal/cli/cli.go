// Package cli implements the chartgeom command-line interface.
//
// # Commands
//
//   - derive: derive the geometry of a chart spec and print it as JSON or a table
//   - replay: run a scripted update sequence and report each gate decision
//   - inspect: explore a chart interactively and watch recompute decisions
//   - graph: draw the item, axis and stack topology of a spec (DOT or SVG)
//   - serve: host the HTTP API
//   - cache: manage the derived-geometry cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// lives on [CLI] and is also attached to the command context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeom/pkg/buildinfo"
	"github.com/matzehuels/chartgeom/pkg/cache"
	"github.com/matzehuels/chartgeom/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "chartgeom"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
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
		Short: "chartgeom derives cartesian chart geometry and decides when to recompute it",
		Long: `chartgeom resolves chart specs (axes, stacked series, bar sizing) into
per-item geometry, caches the result and shows when an update needs a
recompute, a repaint, or neither.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.deriveCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cacheFlags selects the cache backend of a command.
type cacheFlags struct {
	noCache bool
	redis   string
	mongo   string
	scope   string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redis, "redis", "", "cache in Redis at this URL (redis://host:port/db)")
	cmd.Flags().StringVar(&f.mongo, "mongo", "", "cache in MongoDB at this URI")
	cmd.Flags().StringVar(&f.scope, "cache-scope", "", "prefix for cache keys in a shared backend")
}

// newRunner creates a pipeline runner backed by the cache selected in f.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	cc, err := openCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, f.keyer(), c.Logger), nil
}

// keyer returns the cache keyer for f, scoped when --cache-scope is set.
func (f cacheFlags) keyer() cache.Keyer {
	if f.scope == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, f.scope+":")
}

// openCache picks a backend: none, Redis, MongoDB, or the local file cache.
// An unusable home directory disables the file cache instead of failing.
func openCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.redis != "":
		return cache.NewRedisCache(ctx, f.redis, appName+":")
	case f.mongo != "":
		return cache.NewMongoCache(ctx, f.mongo, appName, "geometry")
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/chartgeom/).
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
