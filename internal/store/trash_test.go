package store

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/sandeepkv93/lifeboost/internal/model"
)

func assertMutualExclusion(t *testing.T, rec model.Record) {
	t.Helper()
	for _, item := range rec.Trash {
		for _, kind := range model.Kinds {
			if slices.Contains(rec.LiveIDs(kind), item.EntityID()) {
				t.Fatalf("id %s is both live in %s and in the trash", item.EntityID(), kind)
			}
		}
	}
}

func TestTrashConservationForEveryKind(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	task, _ := s.AddTask(ctx, "t", "", "")
	income, _ := s.AddIncome(ctx, "10", "", "")
	expense, _ := s.AddExpense(ctx, "5", "", "")
	loan, _ := s.AddLoan(ctx, model.LoanLent, "p", "1", "")
	challenge, _ := s.AddChallenge(ctx, "c", "")
	mistake, _ := s.AddMistake(ctx, "m", "")

	entities := []struct {
		kind model.Kind
		id   string
	}{
		{model.KindTask, task.ID},
		{model.KindIncome, income.ID},
		{model.KindExpense, expense.ID},
		{model.KindLoan, loan.ID},
		{model.KindChallenge, challenge.ID},
		{model.KindMistake, mistake.ID},
	}

	for _, e := range entities {
		before := s.Snapshot().EntityCount()

		item, err := s.MoveToTrash(ctx, e.kind, e.id)
		if err != nil {
			t.Fatalf("trash %s: %v", e.kind, err)
		}
		if item.Kind != e.kind || item.EntityID() != e.id || item.DeletedAt != "2024-03-05T09:30:00.000Z" {
			t.Fatalf("unexpected wrapper: %+v", item)
		}
		mid := s.Snapshot()
		if slices.Contains(mid.LiveIDs(e.kind), e.id) || mid.Trash[0].EntityID() != e.id {
			t.Fatalf("%s not moved to the head of the trash", e.kind)
		}
		assertMutualExclusion(t, mid)

		if _, err := s.RestoreFromTrash(ctx, e.id); err != nil {
			t.Fatalf("restore %s: %v", e.kind, err)
		}
		after := s.Snapshot()
		if !slices.Contains(after.LiveIDs(e.kind), e.id) {
			t.Fatalf("%s not back in its collection", e.kind)
		}
		if len(after.Trash) != 0 {
			t.Fatalf("trash should be empty after restore, got %d", len(after.Trash))
		}
		if after.EntityCount() != before || mid.EntityCount() != before {
			t.Fatalf("entity count not conserved: %d -> %d -> %d", before, mid.EntityCount(), after.EntityCount())
		}
		assertMutualExclusion(t, after)
	}
}

func TestRestoreAppendsToOrigin(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	a, _ := s.AddTask(ctx, "a", "", "")
	_, _ = s.AddTask(ctx, "b", "", "")
	_, _ = s.AddTask(ctx, "c", "", "")

	if _, err := s.MoveToTrash(ctx, model.KindTask, a.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}
	if _, err := s.RestoreFromTrash(ctx, a.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	tasks := s.Snapshot().Tasks
	if tasks[len(tasks)-1].ID != a.ID {
		t.Fatalf("restored entity should be appended, got %+v", tasks)
	}
}

func TestMoveToTrashWrongKindIsNotFound(t *testing.T) {
	s, backend := setupStore(t)
	ctx := context.Background()
	task, _ := s.AddTask(ctx, "t", "", "")
	saves := backend.Saves()

	_, err := s.MoveToTrash(ctx, model.KindExpense, task.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	rec := s.Snapshot()
	if len(rec.Trash) != 0 || len(rec.Tasks) != 1 {
		t.Fatalf("state must be unchanged: %+v", rec)
	}
	if backend.Saves() != saves {
		t.Fatalf("failed trash must not write")
	}
}

func TestRestoreAndPurgeMissingAreNotFound(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	if _, err := s.RestoreFromTrash(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on restore, got %v", err)
	}
	if _, err := s.DeletePermanently(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on purge, got %v", err)
	}
}

func TestRestoreRefusesLiveDuplicate(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	task, _ := s.AddTask(ctx, "t", "", "")
	if _, err := s.MoveToTrash(ctx, model.KindTask, task.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}
	// force the same id back into the live collection
	s.rec.Tasks = append(s.rec.Tasks, task)

	_, err := s.RestoreFromTrash(ctx, task.ID)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	rec := s.Snapshot()
	if len(rec.Trash) != 1 || len(rec.Tasks) != 1 {
		t.Fatalf("state must be unchanged after a refused restore")
	}
}

func TestDeletePermanentlyRemovesFirstMatchOnly(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	a, _ := s.AddMistake(ctx, "a", "")
	b, _ := s.AddMistake(ctx, "b", "")
	_, _ = s.MoveToTrash(ctx, model.KindMistake, a.ID)
	_, _ = s.MoveToTrash(ctx, model.KindMistake, b.ID)

	item, err := s.DeletePermanently(ctx, a.ID)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if item.EntityID() != a.ID {
		t.Fatalf("purged the wrong entry: %+v", item)
	}
	rec := s.Snapshot()
	if len(rec.Trash) != 1 || rec.Trash[0].EntityID() != b.ID {
		t.Fatalf("unexpected trash after purge: %+v", rec.Trash)
	}
	if rec.EntityCount() != 1 {
		t.Fatalf("purged entity must be gone everywhere")
	}
}

func TestEmptyTrash(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	a, _ := s.AddTask(ctx, "a", "", "")
	b, _ := s.AddTask(ctx, "b", "", "")
	_, _ = s.MoveToTrash(ctx, model.KindTask, a.ID)
	_, _ = s.MoveToTrash(ctx, model.KindTask, b.ID)

	n, err := s.EmptyTrash(ctx)
	if err != nil {
		t.Fatalf("empty trash: %v", err)
	}
	if n != 2 || len(s.Snapshot().Trash) != 0 {
		t.Fatalf("expected 2 purged and an empty trash, got %d", n)
	}
}
