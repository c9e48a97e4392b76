package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/lifeboost/internal/storage"
	"github.com/spf13/cobra"
)

var errNotSQLite = errors.New("migrations only apply to the sqlite backend")

// newMigrateCommand manages the SQLite schema by hand. OpenSQLite already
// migrates up on every start; these exist for rollbacks and inspection.
func (a *app) newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "SQLite schema migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMigration(cmd, "up", storage.MigrateUp)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations, dropping the snapshot table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMigration(cmd, "down", storage.MigrateDown)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.sqlitePath()
			if err != nil {
				return err
			}
			version, dirty, err := storage.MigrationVersion(path)
			if err != nil {
				return fmt.Errorf("read migration version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d dirty: %t\n", version, dirty)
			return nil
		},
	})
	return migrateCmd
}

func (a *app) sqlitePath() (string, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Storage.Backend != "sqlite" {
		return "", fmt.Errorf("%w (configured: %s)", errNotSQLite, cfg.Storage.Backend)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return cfg.Storage.Path, nil
}

func (a *app) runMigration(cmd *cobra.Command, direction string, step func(string) error) error {
	path, err := a.sqlitePath()
	if err != nil {
		return err
	}
	if err := step(path); err != nil {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}
	version, _, err := storage.MigrationVersion(path)
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migration %s completed (version %d)\n", direction, version)
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lifeboost version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lifeboost %s\n", Version)
		},
	}
}
