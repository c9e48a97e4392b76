package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEffectivePriorityLegacyPrecedence(t *testing.T) {
	cases := []struct {
		name string
		task Task
		want Priority
	}{
		{"explicit wins", Task{Priority: PriorityLow, IsPriority: true}, PriorityLow},
		{"legacy flag without priority", Task{IsPriority: true}, PriorityUrgent},
		{"neither set", Task{}, PriorityMedium},
		{"explicit urgent", Task{Priority: PriorityUrgent}, PriorityUrgent},
	}
	for _, tc := range cases {
		if got := tc.task.EffectivePriority(); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	task := Task{ID: "t1", Text: "read", Priority: PriorityHigh, Date: "2024-03-05"}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got %v", err)
	}

	task.Priority = Priority("someday")
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}

	task.Priority = ""
	task.Text = "  "
	if err := task.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	task.Text = "read"
	task.Date = "soon"
	if err := task.Validate(); err == nil || !strings.Contains(err.Error(), "invalid date") {
		t.Fatalf("expected invalid date error, got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	ok := map[string]float64{
		"500":      500,
		"12.34":    12.34,
		"12,34":    12.34,
		"1,200.50": 1200.5,
		" 0 ":      0,
	}
	for in, want := range ok {
		got, err := ParseAmount(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "abc", "-5", "NaN", "12.3.4", "five"} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("parse %q: expected ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestSumAvoidsFloatDrift(t *testing.T) {
	got := Sum(0.1, 0.2)
	if got.String() != "0.3" {
		t.Fatalf("expected 0.3, got %s", got)
	}
}

func TestLoanValidate(t *testing.T) {
	loan := Loan{ID: "l1", Person: "Sam", Amount: 50, Direction: LoanLent}
	if err := loan.Validate(); err != nil {
		t.Fatalf("expected valid loan, got %v", err)
	}
	loan.Direction = "gifted"
	if err := loan.Validate(); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
	loan.Direction = LoanBorrowed
	loan.Amount = -1
	if err := loan.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestParseKindAliases(t *testing.T) {
	cases := map[string]Kind{
		"task":      KindTask,
		"Tasks":     KindTask,
		"lesson":    KindMistake,
		"mistake":   KindMistake,
		"incomes":   KindIncome,
		"expense":   KindExpense,
		"loan":      KindLoan,
		"challenge": KindChallenge,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("parse kind %q = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseKind("habit"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestTrashItemDecodesDataByType(t *testing.T) {
	raw := `[
		{"type":"task","data":{"id":"1","text":"run","completed":true,"isPriority":true,"date":"2024-03-05"},"deletedAt":"2024-03-05T10:00:00.000Z"},
		{"type":"income","data":{"id":"2","amount":500,"description":"salary","date":"2024-03-05T09:00:00.000Z"},"deletedAt":"2024-03-05T10:00:00.000Z"},
		{"type":"loan","data":{"id":"3","person":"Ali","amount":20,"type":"borrowed","isPaid":false},"deletedAt":"2024-03-05T10:00:00.000Z"}
	]`
	var items []TrashItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	task, ok := items[0].Entity.(Task)
	if !ok || task.EffectivePriority() != PriorityUrgent || !task.Completed {
		t.Fatalf("unexpected task entity: %#v", items[0].Entity)
	}
	income, ok := items[1].Entity.(Transaction)
	if !ok || income.Amount != 500 {
		t.Fatalf("unexpected income entity: %#v", items[1].Entity)
	}
	loan, ok := items[2].Entity.(Loan)
	if !ok || loan.Direction != LoanBorrowed {
		t.Fatalf("unexpected loan entity: %#v", items[2].Entity)
	}

	out, err := json.Marshal(items[2])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"type":"loan"`) || !strings.Contains(string(out), `"person":"Ali"`) {
		t.Fatalf("unexpected encoded trash item: %s", out)
	}
}

func TestTrashItemRejectsUnknownType(t *testing.T) {
	var item TrashItem
	err := json.Unmarshal([]byte(`{"type":"habit","data":{"id":"1"}}`), &item)
	if !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestBackfillFillsMissingFields(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	r := Record{Name: "Old", Tasks: []Task{{ID: "t", Text: "x", Date: "2024-03-05"}}}
	if !r.Backfill(now) {
		t.Fatal("expected backfill to report changes")
	}
	if r.Currency != DefaultCurrency || r.Gender != GenderMale {
		t.Fatalf("unexpected defaults: %+v", r)
	}
	if r.JoinDate != "2024-03-05T12:00:00.000Z" {
		t.Fatalf("unexpected join date: %s", r.JoinDate)
	}
	if r.Incomes == nil || r.Trash == nil || r.Notifications == nil || r.Loans == nil {
		t.Fatalf("expected collections to be non-nil: %+v", r)
	}
	if !strings.HasPrefix(r.UserID, "TNAV") || len(r.UserID) != 8 {
		t.Fatalf("unexpected display id: %q", r.UserID)
	}
	if r.Name != "Old" || len(r.Tasks) != 1 {
		t.Fatalf("backfill must keep existing data: %+v", r)
	}
	if r.Backfill(now) {
		t.Fatal("expected second backfill to be a no-op")
	}
}

func TestCloneSharesNoSlices(t *testing.T) {
	r := NewRecord(time.Now())
	r.Tasks = append(r.Tasks, Task{ID: "a", Text: "a", Date: "2024-03-05"})
	c := r.Clone()
	c.Tasks[0].Completed = true
	if r.Tasks[0].Completed {
		t.Fatal("clone mutated original")
	}
}

func TestSupportedCurrency(t *testing.T) {
	if !IsSupportedCurrency("MAD") || IsSupportedCurrency("XYZ") {
		t.Fatal("unexpected currency support")
	}
}

func TestShortIDAndLabel(t *testing.T) {
	if got := ShortID("0190b2c4-7e1a-7abc-9def-1234567890ab"); got != "567890ab" {
		t.Fatalf("unexpected short id %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Fatalf("short ids stay as they are, got %q", got)
	}
	if KindMistake.Label() != "lesson" || KindLoan.Label() != "loan" {
		t.Fatalf("unexpected labels %q %q", KindMistake.Label(), KindLoan.Label())
	}
}
