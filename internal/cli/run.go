package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sandeepkv93/lifeboost/internal/commands"
	"github.com/sandeepkv93/lifeboost/internal/config"
	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/store"
	"github.com/sandeepkv93/lifeboost/internal/views"
	"github.com/spf13/cobra"
)

func (a *app) newRunCommand() *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "run <command...>",
		Short: "Run one planner command, as typed in the command palette",
		Long: `Run one planner command and print its result, for example:

  lifeboost run add task "call the bank" '!high'
  lifeboost run add expense 12.50 lunch
  lifeboost run done 3f9a1c2e
  lifeboost run -- date -1

Arguments that start with "-" need a "--" before the command.
Reminders need the running UI and are refused here.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, cfg config.Config, st *store.Store) error {
				session := commands.NewSession(st, nil, a.now)
				if day != "" {
					d, err := dates.ParseDay(day)
					if err != nil {
						return err
					}
					session.Day = d
				}
				if err := st.Touch(ctx); err != nil {
					return err
				}
				res, err := session.Run(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if res.Message != "" {
					fmt.Fprintln(out, res.Message)
				}
				if res.Show != "" {
					r := reporter{cfg: cfg, now: a.now}
					return r.show(out, st.Snapshot(), res.Show, session.Day)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "selected day (YYYY-MM-DD) for day-bound commands; defaults to today")
	return cmd
}

func (a *app) newReportCommand() *cobra.Command {
	var raw bool
	report := &cobra.Command{
		Use:   "report",
		Short: "Print a day, month, wallet or notifications report",
	}

	report.AddCommand(&cobra.Command{
		Use:   "day [YYYY-MM-DD|today|+N|-N]",
		Short: "Tasks, money, lessons and challenges for one day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(_ context.Context, cfg config.Config, st *store.Store) error {
				today := dates.Today(a.now())
				day := today
				if len(args) == 1 {
					c, err := commands.Parse("date " + args[0])
					if err != nil {
						return err
					}
					day = c.Date.Resolve(today, today)
				}
				r := reporter{cfg: cfg, now: a.now}
				return r.show(cmd.OutOrStdout(), st.Snapshot(), commands.SubjectDay, day)
			})
		},
	})

	month := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Calendar grid of full, partial and missed days",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(_ context.Context, cfg config.Config, st *store.Store) error {
				day := dates.Today(a.now())
				if len(args) == 1 {
					t, err := time.Parse("2006-01", args[0])
					if err != nil {
						return fmt.Errorf("%w: month %q, want YYYY-MM", dates.ErrInvalidDate, args[0])
					}
					day = dates.Of(t.Year(), t.Month(), 1)
				}
				r := reporter{cfg: cfg, now: a.now, raw: raw}
				return r.show(cmd.OutOrStdout(), st.Snapshot(), commands.SubjectMonth, day)
			})
		},
	}
	month.Flags().BoolVar(&raw, "raw", false, "print markdown instead of rendering it")
	report.AddCommand(month)

	for _, subject := range []commands.Subject{commands.SubjectWallet, commands.SubjectNotifications} {
		report.AddCommand(&cobra.Command{
			Use:   string(subject),
			Short: "Print the " + string(subject) + " report",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd, func(_ context.Context, cfg config.Config, st *store.Store) error {
					r := reporter{cfg: cfg, now: a.now}
					return r.show(cmd.OutOrStdout(), st.Snapshot(), subject, dates.Today(a.now()))
				})
			},
		})
	}
	return report
}

func (a *app) newTrashCommand() *cobra.Command {
	trash := &cobra.Command{
		Use:   "trash",
		Short: "List trashed items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(_ context.Context, cfg config.Config, st *store.Store) error {
				r := reporter{cfg: cfg, now: a.now}
				return r.show(cmd.OutOrStdout(), st.Snapshot(), commands.SubjectTrash, dates.Today(a.now()))
			})
		},
	}
	trash.AddCommand(&cobra.Command{
		Use:   "empty",
		Short: "Delete everything in the trash for good",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, _ config.Config, st *store.Store) error {
				n, err := st.EmptyTrash(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "emptied trash (%d removed)\n", n)
				return nil
			})
		},
	})
	return trash
}

func (a *app) newProfileCommand() *cobra.Command {
	var (
		profile store.Profile
		gender  string
		onboard bool
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change name, gender and currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, _ config.Config, st *store.Store) error {
				profile.Gender = model.Gender(strings.ToLower(strings.TrimSpace(gender)))
				changed := profile != store.Profile{}
				switch {
				case onboard:
					if err := st.CompleteOnboarding(ctx, profile); err != nil {
						return err
					}
				case changed:
					if err := st.UpdateProfile(ctx, profile); err != nil {
						return err
					}
				}
				rec := st.Snapshot()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "name: %s\n", rec.Name)
				fmt.Fprintf(out, "gender: %s\n", rec.Gender)
				fmt.Fprintf(out, "currency: %s\n", rec.Currency)
				fmt.Fprintf(out, "onboarded: %t\n", rec.HasOnboarded)
				fmt.Fprintf(out, "joined: %s\n", rec.JoinDate)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&profile.Name, "name", "", "display name")
	cmd.Flags().StringVar(&gender, "gender", "", "male or female")
	cmd.Flags().StringVar(&profile.Currency, "currency", "", "currency code, e.g. AED, USD, EUR")
	cmd.Flags().BoolVar(&onboard, "onboard", false, "mark onboarding complete and restart the join date")
	return cmd
}

func (a *app) newResetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all data with a fresh record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes everything; rerun with --yes")
			}
			return a.withStore(cmd, func(ctx context.Context, _ config.Config, st *store.Store) error {
				if err := st.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "all data reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

// reporter renders one show subject as plain text.
type reporter struct {
	cfg config.Config
	now func() time.Time
	raw bool
}

func (r reporter) show(w io.Writer, rec model.Record, subject commands.Subject, day dates.Day) error {
	today := dates.Today(r.now())
	var out string
	switch subject {
	case commands.SubjectDay:
		data, err := views.BuildDay(rec, day, views.DayOptions{
			Before:   r.cfg.UI.DaysBefore,
			After:    r.cfg.UI.DaysAfter,
			Today:    today,
			Currency: rec.Currency,
		})
		if err != nil {
			return err
		}
		out = views.RenderDayPanel(data)
	case commands.SubjectMonth:
		data, err := views.BuildMonth(rec, day.Year, day.Month, today, day)
		if err != nil {
			return err
		}
		md := views.MonthMarkdown(data)
		out = md
		if !r.raw {
			if rendered := views.RenderMarkdown(md); rendered != "" {
				out = rendered
			}
		}
	case commands.SubjectWallet:
		out = views.RenderWalletPanel(views.BuildWallet(rec))
	case commands.SubjectTrash:
		out = views.RenderTrashPanel(views.BuildTrash(rec))
	case commands.SubjectNotifications:
		out = views.RenderNotificationsPanel(views.BuildNotifications(rec))
	default:
		return fmt.Errorf("nothing to show for %q", subject)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(out, "\n"))
	return err
}
