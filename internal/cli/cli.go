// Package cli implements the dxd command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dxdlab/dxd/pkg/buildinfo"
	"github.com/dxdlab/dxd/pkg/cache"
	"github.com/dxdlab/dxd/pkg/config"
)

// appName is the application name used for directories and display.
const appName = "dxd"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

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
	var verbose bool

	root := &cobra.Command{
		Use:          "dxd",
		Short:        "dxd counts exact covers with Dancing Links and dynamic decomposition",
		Long:         `dxd is a CLI for counting the exact covers of a sparse 0/1 matrix using Algorithm X (Dancing Links), augmented with dynamic connected-component splitting of the row graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().String("config", "", "path to a TOML config file")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// loadConfig resolves the layered config for a command: built-in defaults,
// then the file named by --config if any, with any per-command flag
// overrides applied by the caller afterward via Config.Merge.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path, _ = cmd.InheritedFlags().GetString("config")
	}
	return config.Load(path)
}

// newCache builds the redis or file cache backend named by
// cfg.CacheBackend and a no-op cache for "none" or any other value; the
// file backend falls back to a no-op cache if the cache directory cannot
// be resolved or created.
func newCache(cfg config.Config) cache.Cache {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		return cache.NewRedisCache(cfg.RedisAddr)
	case config.CacheBackendFile:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return cache.NewNullCache()
		}
		return fc
	default:
		return cache.NewNullCache()
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/dxd/).
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
