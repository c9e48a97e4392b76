package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/scheduler"
	"github.com/sandeepkv93/lifeboost/internal/store"
)

// Session binds the command verbs to a store and a selected day. The TUI
// palette and `lifeboost run` both drive one.
type Session struct {
	Store *store.Store
	// Planner is optional; remind fails without one.
	Planner *scheduler.Planner
	Day     dates.Day
	Now     func() time.Time
}

func NewSession(s *store.Store, planner *scheduler.Planner, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{Store: s, Planner: planner, Day: dates.Today(now()), Now: now}
}

// Run parses and executes one command line.
func (s *Session) Run(ctx context.Context, input string) (Result, error) {
	cmd, err := Parse(input)
	if err != nil {
		return Result{}, err
	}
	res, err := Execute(cmd, s.Handlers(ctx))
	if !res.Day.IsZero() {
		s.Day = res.Day
	}
	return res, err
}

func (s *Session) Handlers(ctx context.Context) Handlers {
	return Handlers{
		Add:     func(a AddArgs) (Result, error) { return s.add(ctx, a) },
		Done:    func(a TargetArgs) (Result, error) { return s.done(ctx, a) },
		Paid:    func(a TargetArgs) (Result, error) { return s.paid(ctx, a) },
		Trash:   func(a TrashArgs) (Result, error) { return s.trash(ctx, a) },
		Restore: func(a TargetArgs) (Result, error) { return s.restore(ctx, a) },
		Purge:   func(a TargetArgs) (Result, error) { return s.purge(ctx, a) },
		Show: func(a ShowArgs) (Result, error) {
			return Result{Show: a.Subject}, nil
		},
		Remind: func(a RemindArgs) (Result, error) { return s.remind(ctx, a) },
		Date: func(a DateArgs) (Result, error) {
			day := a.Resolve(s.Day, dates.Today(s.Now()))
			return Result{Message: "viewing " + day.String(), Day: day}, nil
		},
	}
}

// dayDate is the date new entities get: the selected day, or now when the
// selection is today so transactions keep their time of day.
func (s *Session) dayDate(kind model.Kind) string {
	if kind == model.KindIncome || kind == model.KindExpense {
		if s.Day == dates.Today(s.Now()) {
			return ""
		}
	}
	return s.Day.String()
}

func (s *Session) add(ctx context.Context, a AddArgs) (Result, error) {
	in := store.EntityInput{
		Text:        a.Text,
		Priority:    a.Priority,
		Amount:      a.Amount,
		Description: a.Description,
		Person:      a.Person,
		Direction:   a.Direction,
		DueDate:     a.DueDate,
	}
	if a.Kind != model.KindLoan {
		in.Date = s.dayDate(a.Kind)
	}
	e, err := s.Store.Add(ctx, a.Kind, in)
	if e == nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("added %s %s", a.Kind.Label(), model.ShortID(e.EntityID()))}, err
}

func (s *Session) done(ctx context.Context, a TargetArgs) (Result, error) {
	rec := s.Store.Snapshot()
	if id, ok, err := resolveID(rec.LiveIDs(model.KindTask), a.ID); err != nil {
		return Result{}, err
	} else if ok {
		t, err := s.Store.ToggleTaskCompleted(ctx, id)
		return Result{Message: fmt.Sprintf("task %q %s", t.Text, doneWord(t.Completed))}, err
	}
	id, ok, err := resolveID(rec.LiveIDs(model.KindChallenge), a.ID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, fmt.Errorf("%w: task or challenge %q", store.ErrNotFound, a.ID)
	}
	c, err := s.Store.ToggleChallengeCompleted(ctx, id)
	return Result{Message: fmt.Sprintf("challenge %q %s", c.Text, doneWord(c.Completed))}, err
}

func (s *Session) paid(ctx context.Context, a TargetArgs) (Result, error) {
	id, _, err := resolveID(s.Store.Snapshot().LiveIDs(model.KindLoan), a.ID)
	if err != nil {
		return Result{}, err
	}
	l, err := s.Store.ToggleLoanPaid(ctx, id)
	if l.ID == "" {
		return Result{}, err
	}
	state := "unpaid"
	if l.IsPaid {
		state = "paid"
	}
	return Result{Message: fmt.Sprintf("loan with %s marked %s", l.Person, state)}, err
}

func (s *Session) trash(ctx context.Context, a TrashArgs) (Result, error) {
	id, _, err := resolveID(s.Store.Snapshot().LiveIDs(a.Kind), a.ID)
	if err != nil {
		return Result{}, err
	}
	item, err := s.Store.MoveToTrash(ctx, a.Kind, id)
	if item.Entity == nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("moved %s %s to trash", a.Kind.Label(), model.ShortID(id))}, err
}

func (s *Session) trashIDs() []string {
	rec := s.Store.Snapshot()
	out := make([]string, 0, len(rec.Trash))
	for _, item := range rec.Trash {
		out = append(out, item.EntityID())
	}
	return out
}

func (s *Session) restore(ctx context.Context, a TargetArgs) (Result, error) {
	id, _, err := resolveID(s.trashIDs(), a.ID)
	if err != nil {
		return Result{}, err
	}
	item, err := s.Store.RestoreFromTrash(ctx, id)
	if item.Entity == nil || (err != nil && !store.IsPersistFailure(err)) {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("restored %s %s", item.Kind.Label(), model.ShortID(id))}, err
}

func (s *Session) purge(ctx context.Context, a TargetArgs) (Result, error) {
	id, _, err := resolveID(s.trashIDs(), a.ID)
	if err != nil {
		return Result{}, err
	}
	item, err := s.Store.DeletePermanently(ctx, id)
	if item.Entity == nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("deleted %s %s for good", item.Kind.Label(), model.ShortID(id))}, err
}

func (s *Session) remind(ctx context.Context, a RemindArgs) (Result, error) {
	if s.Planner == nil {
		return Result{}, fmt.Errorf("%w: reminders are disabled", scheduler.ErrNotScheduled)
	}
	r, err := s.Planner.ScheduleAt(ctx, a.Message, a.At, s.Now())
	if err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("reminder set for %s", r.TriggerTime.Format("15:04"))}, nil
}

// resolveID matches target against ids exactly or as a unique suffix, so
// the model.ShortID tail shown to users is accepted back by every verb. An
// unmatched target is returned unchanged with ok=false so the store can
// report it as not found.
func resolveID(ids []string, target string) (string, bool, error) {
	var matches []string
	for _, id := range ids {
		if id == target {
			return id, true, nil
		}
		if strings.HasSuffix(id, target) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return target, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return "", false, invalid("id %q matches %d entries", target, len(matches))
	}
}

func doneWord(done bool) string {
	if done {
		return "done"
	}
	return "reopened"
}

// IsUserError reports whether err is a rejected command rather than a
// storage problem.
func IsUserError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrDuplicateID) ||
		errors.Is(err, model.ErrInvalidInput) ||
		errors.Is(err, model.ErrInvalidAmount) ||
		errors.Is(err, dates.ErrInvalidDate) ||
		errors.Is(err, scheduler.ErrNotScheduled)
}
