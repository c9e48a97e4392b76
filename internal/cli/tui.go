package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifeboost/internal/logger"
	"github.com/sandeepkv93/lifeboost/internal/notify"
	"github.com/sandeepkv93/lifeboost/internal/scheduler"
	"github.com/sandeepkv93/lifeboost/internal/update"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	log, err := logger.ForTUI(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	st, loadErr := a.openStore(ctx, cfg, log)
	if st == nil {
		return fmt.Errorf("open store: %w", loadErr)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()
	// A failed load keeps the UI running on defaults with a warning in the
	// status bar. The stored snapshot is only overwritten by a real edit.
	var touchErr error
	if loadErr == nil {
		touchErr = st.Touch(ctx)
	}

	engine := scheduler.NewEngine(cfg.Reminders.Buffer)
	engine.Start()
	defer engine.Stop()

	var planner *scheduler.Planner
	if cfg.Reminders.Enabled {
		planner, err = scheduler.NewPlanner(engine, notify.NewExecNotifier(),
			scheduler.WithLookahead(cfg.Reminders.Lookahead),
			scheduler.WithPlannerLogger(log),
		)
		if err != nil {
			return err
		}
	}

	m := update.NewModel(update.Options{
		Store:   st,
		Planner: planner,
		UI:      cfg.UI,
		Log:     log,
		Now:     a.now,
		Context: ctx,
	})
	switch {
	case loadErr != nil:
		m.Status = update.StatusBar{Text: "could not load saved data, starting fresh: " + loadErr.Error(), IsError: true}
	case touchErr != nil:
		m.Status = update.StatusBar{Text: "not saved: " + touchErr.Error(), IsError: true}
	}

	log.Info("starting tui", zap.String("backend", cfg.Storage.Backend), zap.Bool("reminders", planner != nil))
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("lifeboost tui: %w", err)
	}
	if dropped := engine.Dropped(); dropped > 0 {
		log.Warn("reminder events dropped", zap.Uint64("count", dropped))
	}
	return nil
}
