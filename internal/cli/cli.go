package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lhartmann/guestree/pkg/buildinfo"
	"github.com/lhartmann/guestree/pkg/cache"
	"github.com/lhartmann/guestree/pkg/config"
	"github.com/lhartmann/guestree/pkg/errors"
	"github.com/lhartmann/guestree/pkg/snapshot"
	"github.com/lhartmann/guestree/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "guestree"

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

	cfg        config.Config
	configPath string
	dataFile   string // --file override; empty means cfg.DataFile
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		cfg: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Guestree manages a guest list as a family tree",
		Long:         `Guestree keeps a small graph of people and typed relationships (parent-child, spouse, partner, sibling, friend, acquaintance) for event planning, and renders it as a generational tree or an editable table.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./guestree.toml or ~/.config/guestree/config.toml)")
	root.PersistentFlags().StringVarP(&c.dataFile, "file", "f", "", "snapshot file to operate on (default from config)")

	// Register all subcommands
	root.AddCommand(c.personCommand())
	root.AddCommand(c.relCommand())
	root.AddCommand(c.rootSelCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Loading / Saving
// =============================================================================

// dataPath resolves the snapshot file commands operate on.
func (c *CLI) dataPath() string {
	if c.dataFile != "" {
		return c.dataFile
	}
	return c.cfg.DataFile
}

// loadStore reads the snapshot file into a store.
// A missing file yields an empty store, so first runs just work.
func (c *CLI) loadStore() (*store.Store, error) {
	path := c.dataPath()
	st, err := snapshot.ImportFile(path)
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			c.Logger.Debug("no snapshot file yet, starting empty", "path", path)
			return store.New(), nil
		}
		return nil, err
	}
	c.Logger.Debug("loaded snapshot", "path", path, "people", st.PersonCount(), "relationships", st.RelationshipCount())
	return st, nil
}

// saveStore writes the store back to the snapshot file.
func (c *CLI) saveStore(st *store.Store) error {
	path := c.dataPath()
	if err := snapshot.ExportFile(st, path); err != nil {
		return err
	}
	c.Logger.Debug("saved snapshot", "path", path)
	return nil
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache creates the render artifact cache from config and the --no-cache flag.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache || c.cfg.Cache.Disabled {
		return cache.NewNullCache()
	}
	dir, err := c.cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheTTL returns the configured artifact lifetime.
func (c *CLI) cacheTTL() time.Duration {
	return time.Duration(c.cfg.Cache.TTLHours) * time.Hour
}
