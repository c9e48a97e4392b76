package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
)

// EntityInput carries the caller-supplied fields of a new entity. Fields
// that do not apply to the kind are ignored; empty fields take defaults.
type EntityInput struct {
	Text        string
	Priority    model.Priority
	Amount      string
	Description string
	Person      string
	Direction   model.LoanDirection
	DueDate     string
	// Date defaults to today for day-keyed kinds and to now for
	// transactions.
	Date string
}

// Add builds an entity of kind from in, gives it a fresh id and prepends it
// to its collection.
func (s *Store) Add(ctx context.Context, kind model.Kind, in EntityInput) (model.Entity, error) {
	var added model.Entity
	err := s.mutate(ctx, "add "+string(kind), func(rec *model.Record) error {
		id, err := s.generateID(rec, kind)
		if err != nil {
			return err
		}
		entity, err := s.build(kind, id, in)
		if err != nil {
			return err
		}
		if err := entity.Validate(); err != nil {
			return err
		}
		if err := prependEntity(rec, kind, entity); err != nil {
			return err
		}
		added = entity
		return nil
	})
	if added == nil {
		return nil, err
	}
	return added, err
}

func (s *Store) AddTask(ctx context.Context, text string, priority model.Priority, date string) (model.Task, error) {
	e, err := s.Add(ctx, model.KindTask, EntityInput{Text: text, Priority: priority, Date: date})
	return as[model.Task](e), err
}

func (s *Store) AddIncome(ctx context.Context, amount, description, date string) (model.Transaction, error) {
	e, err := s.Add(ctx, model.KindIncome, EntityInput{Amount: amount, Description: description, Date: date})
	return as[model.Transaction](e), err
}

func (s *Store) AddExpense(ctx context.Context, amount, description, date string) (model.Transaction, error) {
	e, err := s.Add(ctx, model.KindExpense, EntityInput{Amount: amount, Description: description, Date: date})
	return as[model.Transaction](e), err
}

func (s *Store) AddLoan(ctx context.Context, direction model.LoanDirection, person, amount, dueDate string) (model.Loan, error) {
	e, err := s.Add(ctx, model.KindLoan, EntityInput{Direction: direction, Person: person, Amount: amount, DueDate: dueDate})
	return as[model.Loan](e), err
}

func (s *Store) AddMistake(ctx context.Context, text, date string) (model.Mistake, error) {
	e, err := s.Add(ctx, model.KindMistake, EntityInput{Text: text, Date: date})
	return as[model.Mistake](e), err
}

func (s *Store) AddChallenge(ctx context.Context, text, date string) (model.Challenge, error) {
	e, err := s.Add(ctx, model.KindChallenge, EntityInput{Text: text, Date: date})
	return as[model.Challenge](e), err
}

func as[T model.Entity](e model.Entity) T {
	v, _ := e.(T)
	return v
}

func (s *Store) build(kind model.Kind, id string, in EntityInput) (model.Entity, error) {
	now := s.now()
	switch kind {
	case model.KindTask:
		day, err := dayOrToday(in.Date, now)
		if err != nil {
			return nil, err
		}
		priority := in.Priority
		if priority == "" {
			priority = model.PriorityMedium
		}
		return model.Task{
			ID:         id,
			Text:       strings.TrimSpace(in.Text),
			Priority:   priority,
			IsPriority: priority == model.PriorityUrgent,
			Date:       day,
		}, nil
	case model.KindChallenge:
		day, err := dayOrToday(in.Date, now)
		if err != nil {
			return nil, err
		}
		return model.Challenge{ID: id, Text: strings.TrimSpace(in.Text), Date: day}, nil
	case model.KindMistake:
		day, err := dayOrToday(in.Date, now)
		if err != nil {
			return nil, err
		}
		return model.Mistake{ID: id, Text: strings.TrimSpace(in.Text), Date: day}, nil
	case model.KindIncome, model.KindExpense:
		amount, err := model.ParseAmount(in.Amount)
		if err != nil {
			return nil, err
		}
		date := strings.TrimSpace(in.Date)
		if date == "" {
			date = dates.FormatZonedTimestamp(now)
		} else if _, err := dates.ParseDay(date); err != nil {
			return nil, err
		}
		description := strings.TrimSpace(in.Description)
		if description == "" {
			description = defaultDescription(kind)
		}
		return model.Transaction{
			ID:          id,
			Amount:      amount,
			Description: description,
			Date:        date,
		}, nil
	case model.KindLoan:
		amount, err := model.ParseAmount(in.Amount)
		if err != nil {
			return nil, err
		}
		due := strings.TrimSpace(in.DueDate)
		if due != "" {
			d, err := dates.ParseDay(due)
			if err != nil {
				return nil, err
			}
			due = d.String()
		}
		return model.Loan{
			ID:        id,
			Person:    strings.TrimSpace(in.Person),
			Amount:    amount,
			Direction: in.Direction,
			DueDate:   due,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidKind, kind)
	}
}

func defaultDescription(kind model.Kind) string {
	if kind == model.KindIncome {
		return "Income"
	}
	return "Expense"
}

// dayOrToday canonicalizes a day-keyed date to YYYY-MM-DD so that exact
// string lookups by day keep matching.
func dayOrToday(raw string, now time.Time) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return dates.Today(now).String(), nil
	}
	d, err := dates.ParseDay(raw)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func prependEntity(rec *model.Record, kind model.Kind, e model.Entity) error {
	return placeEntity(rec, kind, e, true)
}

func appendEntity(rec *model.Record, kind model.Kind, e model.Entity) error {
	return placeEntity(rec, kind, e, false)
}

func placeEntity(rec *model.Record, kind model.Kind, e model.Entity, front bool) error {
	var ok bool
	switch kind {
	case model.KindTask:
		rec.Tasks, ok = place(rec.Tasks, e, front)
	case model.KindChallenge:
		rec.Challenges, ok = place(rec.Challenges, e, front)
	case model.KindMistake:
		rec.Mistakes, ok = place(rec.Mistakes, e, front)
	case model.KindIncome:
		rec.Incomes, ok = place(rec.Incomes, e, front)
	case model.KindExpense:
		rec.Expenses, ok = place(rec.Expenses, e, front)
	case model.KindLoan:
		rec.Loans, ok = place(rec.Loans, e, front)
	default:
		return fmt.Errorf("%w: %q", model.ErrInvalidKind, kind)
	}
	if !ok {
		return fmt.Errorf("%w: %T does not belong in %s", model.ErrInvalidInput, e, kind)
	}
	return nil
}

func place[T model.Entity](items []T, e model.Entity, front bool) ([]T, bool) {
	v, ok := e.(T)
	if !ok {
		return items, false
	}
	if front {
		return slices.Insert(items, 0, v), true
	}
	return append(items, v), true
}

// takeEntity removes the entity with id from the collection of kind.
func takeEntity(rec *model.Record, kind model.Kind, id string) (model.Entity, error) {
	var (
		e  model.Entity
		ok bool
	)
	switch kind {
	case model.KindTask:
		rec.Tasks, e, ok = take(rec.Tasks, id)
	case model.KindChallenge:
		rec.Challenges, e, ok = take(rec.Challenges, id)
	case model.KindMistake:
		rec.Mistakes, e, ok = take(rec.Mistakes, id)
	case model.KindIncome:
		rec.Incomes, e, ok = take(rec.Incomes, id)
	case model.KindExpense:
		rec.Expenses, e, ok = take(rec.Expenses, id)
	case model.KindLoan:
		rec.Loans, e, ok = take(rec.Loans, id)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidKind, kind)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
	}
	return e, nil
}

func take[T model.Entity](items []T, id string) ([]T, model.Entity, bool) {
	i := slices.IndexFunc(items, func(v T) bool { return v.EntityID() == id })
	if i < 0 {
		return items, nil, false
	}
	e := items[i]
	return slices.Delete(items, i, i+1), e, true
}

// toggle replaces the entity with id by a flipped copy at the same position.
func toggle[T model.Entity](items []T, kind model.Kind, id string, flip func(T) T) (T, error) {
	i := slices.IndexFunc(items, func(v T) bool { return v.EntityID() == id })
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
	}
	items[i] = flip(items[i])
	return items[i], nil
}

func (s *Store) ToggleTaskCompleted(ctx context.Context, id string) (model.Task, error) {
	var out model.Task
	err := s.mutate(ctx, "toggle task", func(rec *model.Record) error {
		t, err := toggle(rec.Tasks, model.KindTask, id, func(t model.Task) model.Task {
			t.Completed = !t.Completed
			return t
		})
		out = t
		return err
	})
	return out, err
}

func (s *Store) ToggleChallengeCompleted(ctx context.Context, id string) (model.Challenge, error) {
	var out model.Challenge
	err := s.mutate(ctx, "toggle challenge", func(rec *model.Record) error {
		c, err := toggle(rec.Challenges, model.KindChallenge, id, func(c model.Challenge) model.Challenge {
			c.Completed = !c.Completed
			return c
		})
		out = c
		return err
	})
	return out, err
}

func (s *Store) ToggleLoanPaid(ctx context.Context, id string) (model.Loan, error) {
	var out model.Loan
	err := s.mutate(ctx, "toggle loan", func(rec *model.Record) error {
		l, err := toggle(rec.Loans, model.KindLoan, id, func(l model.Loan) model.Loan {
			l.IsPaid = !l.IsPaid
			return l
		})
		out = l
		return err
	})
	return out, err
}
