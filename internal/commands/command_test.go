package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add task pay rent !high", TypeAdd},
		{"add income 500 salary", TypeAdd},
		{"done 1a2b3c4d", TypeDone},
		{"paid 1a2b3c4d", TypePaid},
		{"trash expense 1a2b3c4d", TypeTrash},
		{"restore 1a2b3c4d", TypeRestore},
		{"purge 1a2b3c4d", TypePurge},
		{"show wallet", TypeShow},
		{"remind 18:30 call mom", TypeRemind},
		{"DATE +1", TypeDate},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddVariants(t *testing.T) {
	cmd, err := Parse("add task !urgent file taxes")
	if err != nil {
		t.Fatalf("parse task: %v", err)
	}
	if cmd.Add.Kind != model.KindTask || cmd.Add.Text != "file taxes" || cmd.Add.Priority != model.PriorityUrgent {
		t.Fatalf("unexpected task args: %+v", cmd.Add)
	}

	cmd, err = Parse("add expense 12,50 lunch with team")
	if err != nil {
		t.Fatalf("parse expense: %v", err)
	}
	if cmd.Add.Kind != model.KindExpense || cmd.Add.Amount != "12,50" || cmd.Add.Description != "lunch with team" {
		t.Fatalf("unexpected expense args: %+v", cmd.Add)
	}

	cmd, err = Parse("add loan Borrowed Nadia 40 due:2024-04-01")
	if err != nil {
		t.Fatalf("parse loan: %v", err)
	}
	if cmd.Add.Direction != model.LoanBorrowed || cmd.Add.Person != "Nadia" || cmd.Add.DueDate != "2024-04-01" {
		t.Fatalf("unexpected loan args: %+v", cmd.Add)
	}

	cmd, err = Parse("add lesson check the weather first")
	if err != nil {
		t.Fatalf("parse lesson: %v", err)
	}
	if cmd.Add.Kind != model.KindMistake {
		t.Fatalf("lesson should map to the mistake kind, got %s", cmd.Add.Kind)
	}
}

func TestParseRejectsBadArguments(t *testing.T) {
	inputs := []string{
		"add",
		"add habit read",
		"add task !someday x",
		"add task !high",
		"add income",
		"add loan gifted Sami 4",
		"add loan lent Sami",
		"done",
		"done a b",
		"trash 1a2b",
		"trash pets 1a2b",
		"show everything",
		"remind later call mom",
		"remind 18:30",
		"date tomorrow-ish",
		"date +x",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if ce.Suggestion != "" {
		t.Fatalf("no verb is close to %q, got suggestion %q", "unknown", ce.Suggestion)
	}
}

func TestParseSuggestsClosestVerb(t *testing.T) {
	_, err := Parse("restor 1a2b")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Suggestion != "restore" {
		t.Fatalf("expected restore suggestion, got %v", err)
	}
	if got := Suggest("dnoe"); got != "done" {
		t.Fatalf("expected done, got %q", got)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input, got %v", in, err)
		}
	}
}

func TestDateArgsResolve(t *testing.T) {
	current := dates.MustParseDay("2024-03-10")
	today := dates.MustParseDay("2024-03-05")

	cases := []struct {
		in   string
		want string
	}{
		{"date today", "2024-03-05"},
		{"date +3", "2024-03-13"},
		{"date -10", "2024-02-29"},
		{"date 2024-12-31", "2024-12-31"},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got := cmd.Date.Resolve(current, today).String(); got != tc.want {
			t.Fatalf("%q resolved to %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add task write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show day")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
