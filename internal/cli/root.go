package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sandeepkv93/lifeboost/internal/config"
	"github.com/sandeepkv93/lifeboost/internal/logger"
	"github.com/sandeepkv93/lifeboost/internal/storage"
	"github.com/sandeepkv93/lifeboost/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// app carries what every subcommand needs: the --config flag value and
// the clock used for "today".
type app struct {
	configFile string
	now        func() time.Time
}

// NewRootCommand builds the lifeboost command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{now: time.Now})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "lifeboost",
		Short: "Personal planner for tasks, money, lessons and challenges",
		Long: `lifeboost keeps a daily planner in one local snapshot: prioritized tasks,
income and expenses, loans, lessons learned and daily challenges.
Without a subcommand it opens the terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (TOML); defaults to ~/.config/lifeboost/config.toml")

	root.AddCommand(a.newTUICommand())
	root.AddCommand(a.newRunCommand())
	root.AddCommand(a.newReportCommand())
	root.AddCommand(a.newTrashCommand())
	root.AddCommand(a.newProfileCommand())
	root.AddCommand(a.newResetCommand())
	root.AddCommand(a.newMigrateCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func (a *app) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

func openBackend(cfg config.StorageConfig) (storage.Backend, error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemoryBackend(), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return storage.OpenSQLite(cfg.Path)
	case "file":
		return storage.NewFileBackend(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// openStore opens the configured backend and loads the snapshot. As with
// store.Open, a failed load returns a usable store on defaults together
// with the error; callers that must not overwrite the stored snapshot treat
// that as fatal.
func (a *app) openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (*store.Store, error) {
	backend, err := openBackend(cfg.Storage)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, backend, store.WithLogger(log), store.WithClock(a.now))
	if st == nil {
		_ = backend.Close()
	}
	return st, err
}

// withStore loads configuration, opens the store and runs fn against it.
func (a *app) withStore(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, st *store.Store) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := a.openStore(ctx, cfg, log)
	if err != nil {
		if st != nil {
			_ = st.Close()
		}
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()
	return fn(ctx, cfg, st)
}
