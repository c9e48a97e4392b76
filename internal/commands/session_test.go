package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/lifeboost/internal/aggregate"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/notify"
	"github.com/sandeepkv93/lifeboost/internal/scheduler"
	"github.com/sandeepkv93/lifeboost/internal/storage"
	"github.com/sandeepkv93/lifeboost/internal/store"
)

var sessionNow = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

func newSession(t *testing.T) *Session {
	t.Helper()
	n := 0
	clock := func() time.Time { return sessionNow }
	s, err := store.Open(context.Background(), storage.NewMemoryBackend(),
		store.WithClock(clock),
		store.WithIDGenerator(func() (string, error) {
			n++
			return fmt.Sprintf("0000-%08d", n), nil
		}),
	)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	planner, err := scheduler.NewPlanner(scheduler.NewEngine(4), notify.NoopNotifier{})
	if err != nil {
		t.Fatalf("planner: %v", err)
	}
	return NewSession(s, planner, clock)
}

func mustRun(t *testing.T, s *Session, input string) Result {
	t.Helper()
	res, err := s.Run(context.Background(), input)
	if err != nil {
		t.Fatalf("run %q: %v", input, err)
	}
	return res
}

func TestSessionAddUsesSelectedDay(t *testing.T) {
	s := newSession(t)

	mustRun(t, s, "add task plan week !high")
	mustRun(t, s, "date +2")
	mustRun(t, s, "add lesson slow down")
	mustRun(t, s, "add expense 20 taxi")

	rec := s.Store.Snapshot()
	if rec.Tasks[0].Date != "2024-03-05" || rec.Tasks[0].Priority != model.PriorityHigh {
		t.Fatalf("unexpected task: %+v", rec.Tasks[0])
	}
	if rec.Mistakes[0].Date != "2024-03-07" {
		t.Fatalf("lesson should land on the selected day, got %s", rec.Mistakes[0].Date)
	}
	if rec.Expenses[0].Date != "2024-03-07" {
		t.Fatalf("expense should land on the selected day, got %s", rec.Expenses[0].Date)
	}
}

func TestSessionTodayTransactionsKeepTime(t *testing.T) {
	s := newSession(t)
	mustRun(t, s, "add income 100 bonus")
	if got := s.Store.Snapshot().Incomes[0].Date; got != "2024-03-05T09:00:00.000Z" {
		t.Fatalf("expected a timestamp for today, got %s", got)
	}
}

func TestSessionTodayMoneyInZoneAheadOfUTC(t *testing.T) {
	now := time.Date(2024, 3, 5, 1, 30, 0, 0, time.FixedZone("UTC+4", 4*3600))
	clock := func() time.Time { return now }
	st, err := store.Open(context.Background(), storage.NewMemoryBackend(), store.WithClock(clock))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s := NewSession(st, nil, clock)

	mustRun(t, s, "add income 500")
	mustRun(t, s, "add expense 200")
	rec := s.Store.Snapshot()
	if s.Day.String() != "2024-03-05" {
		t.Fatalf("unexpected selected day %s", s.Day)
	}
	balance, err := aggregate.DayBalance(rec, s.Day.String())
	if err != nil {
		t.Fatalf("day balance: %v", err)
	}
	if balance.IntPart() != 300 {
		t.Fatalf("expected 300 on the selected day, got %s (income date %q)", balance, rec.Incomes[0].Date)
	}

	mustRun(t, s, "trash expense "+rec.Expenses[0].ID)
	if balance, _ = aggregate.DayBalance(s.Store.Snapshot(), s.Day.String()); balance.IntPart() != 500 {
		t.Fatalf("expected 500 with the expense trashed, got %s", balance)
	}
}

func TestSessionDoneResolvesSuffix(t *testing.T) {
	s := newSession(t)
	res := mustRun(t, s, "add task read")
	if !strings.Contains(res.Message, "00000001") {
		t.Fatalf("expected the short id in %q", res.Message)
	}
	mustRun(t, s, "add challenge no coffee")

	mustRun(t, s, "done 00000001")
	mustRun(t, s, "done 2")

	rec := s.Store.Snapshot()
	if !rec.Tasks[0].Completed || !rec.Challenges[0].Completed {
		t.Fatalf("expected both toggled: %+v %+v", rec.Tasks, rec.Challenges)
	}
	if _, err := s.Run(context.Background(), "done 99"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSessionAmbiguousSuffix(t *testing.T) {
	s := newSession(t)
	for i := 0; i < 11; i++ {
		mustRun(t, s, fmt.Sprintf("add task t%d", i))
	}
	_, err := s.Run(context.Background(), "done 1")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
}

func TestSessionTrashRestorePurge(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()
	mustRun(t, s, "add income 500 salary")
	mustRun(t, s, "add expense 200 rent")

	mustRun(t, s, "trash expense 2")
	if len(s.Store.Snapshot().Trash) != 1 {
		t.Fatalf("expected one trashed entry")
	}
	mustRun(t, s, "restore 2")
	if len(s.Store.Snapshot().Expenses) != 1 {
		t.Fatalf("expected the expense back")
	}
	mustRun(t, s, "trash expense 2")
	mustRun(t, s, "purge 2")
	if s.Store.Snapshot().EntityCount() != 1 {
		t.Fatalf("expected only the income left")
	}
	if _, err := s.Run(ctx, "purge 2"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found on second purge, got %v", err)
	}
	if _, err := s.Run(ctx, "trash task 1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("wrong kind must be not found, got %v", err)
	}
}

func TestSessionPaid(t *testing.T) {
	s := newSession(t)
	mustRun(t, s, "add loan lent Sami 100")
	res := mustRun(t, s, "paid 1")
	if !strings.Contains(res.Message, "paid") || !s.Store.Snapshot().Loans[0].IsPaid {
		t.Fatalf("loan not marked paid: %q", res.Message)
	}
}

func TestSessionShowAndDate(t *testing.T) {
	s := newSession(t)
	res := mustRun(t, s, "show month")
	if res.Show != SubjectMonth {
		t.Fatalf("expected month view, got %q", res.Show)
	}
	res = mustRun(t, s, "date 2024-01-01")
	if s.Day.String() != "2024-01-01" || res.Day.String() != "2024-01-01" {
		t.Fatalf("date not selected: %s", s.Day)
	}
	mustRun(t, s, "date today")
	if s.Day.String() != "2024-03-05" {
		t.Fatalf("today not selected: %s", s.Day)
	}
}

func TestSessionRemind(t *testing.T) {
	s := newSession(t)
	res := mustRun(t, s, "remind 10:15 stretch")
	if res.Message != "reminder set for 10:15" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	_, err := s.Run(context.Background(), "remind 08:00 too late")
	if !errors.Is(err, scheduler.ErrNotScheduled) {
		t.Fatalf("expected not scheduled, got %v", err)
	}

	s.Planner = nil
	if _, err := s.Run(context.Background(), "remind 10:15 x"); !errors.Is(err, scheduler.ErrNotScheduled) {
		t.Fatalf("expected disabled reminders error, got %v", err)
	}
}

func TestSessionInvalidAmountIsUserError(t *testing.T) {
	s := newSession(t)
	_, err := s.Run(context.Background(), "add expense abc coffee")
	if !errors.Is(err, model.ErrInvalidAmount) || !IsUserError(err) {
		t.Fatalf("expected a user-facing invalid amount, got %v", err)
	}
}
