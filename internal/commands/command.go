package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeDone    Type = "done"
	TypePaid    Type = "paid"
	TypeTrash   Type = "trash"
	TypeRestore Type = "restore"
	TypePurge   Type = "purge"
	TypeShow    Type = "show"
	TypeRemind  Type = "remind"
	TypeDate    Type = "date"
)

// Types lists every verb the parser understands.
var Types = []Type{TypeAdd, TypeDone, TypePaid, TypeTrash, TypeRestore, TypePurge, TypeShow, TypeRemind, TypeDate}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code       ErrorCode
	Message    string
	Suggestion string
}

func (e *CommandError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (did you mean %q?)", e.Code, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Kind        model.Kind
	Text        string
	Priority    model.Priority
	Amount      string
	Description string
	Person      string
	Direction   model.LoanDirection
	DueDate     string
}

// TargetArgs names one entity by id or by a unique id suffix.
type TargetArgs struct {
	ID string
}

type TrashArgs struct {
	Kind model.Kind
	ID   string
}

type Subject string

const (
	SubjectDay           Subject = "day"
	SubjectMonth         Subject = "month"
	SubjectWallet        Subject = "wallet"
	SubjectTrash         Subject = "trash"
	SubjectNotifications Subject = "notifications"
)

var subjects = []Subject{SubjectDay, SubjectMonth, SubjectWallet, SubjectTrash, SubjectNotifications}

type ShowArgs struct {
	Subject Subject
}

type RemindArgs struct {
	At      string
	Message string
}

// DateArgs moves the selected day: either to an absolute day or by an
// offset from the current selection. Today is an absolute move.
type DateArgs struct {
	Today  bool
	Day    dates.Day
	Offset int
}

// Resolve returns the day this argument selects given the current
// selection and today.
func (d DateArgs) Resolve(current, today dates.Day) dates.Day {
	switch {
	case d.Today:
		return today
	case !d.Day.IsZero():
		return d.Day
	default:
		return current.AddDays(d.Offset)
	}
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Trash  *TrashArgs
	Show   *ShowArgs
	Remind *RemindArgs
	Date   *DateArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypePaid, TypeRestore, TypePurge:
		return parseTarget(input, Type(head), args)
	case TypeTrash:
		return parseTrash(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeRemind:
		return parseRemind(input, args)
	case TypeDate:
		return parseDate(input, args)
	default:
		return Command{}, &CommandError{
			Code:       ErrCodeUnknownCommand,
			Message:    fmt.Sprintf("unsupported command: %s", head),
			Suggestion: Suggest(head),
		}
	}
}

// Suggest returns the known verb closest to word, or "" when nothing is
// within two edits.
func Suggest(word string) string {
	best, bestDist := "", 3
	for _, t := range Types {
		if d := levenshtein.ComputeDistance(word, string(t)); d < bestDist {
			best, bestDist = string(t), d
		}
	}
	return best
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("add requires a kind: task, income, expense, loan, lesson or challenge")
	}
	kind, err := model.ParseKind(args[0])
	if err != nil {
		return Command{}, invalid("unknown kind %q", args[0])
	}
	rest := args[1:]
	add := AddArgs{Kind: kind}

	switch kind {
	case model.KindTask:
		var words []string
		for _, arg := range rest {
			if strings.HasPrefix(arg, "!") && len(arg) > 1 {
				p, err := model.ParsePriority(arg[1:])
				if err != nil {
					return Command{}, invalid("unknown priority %q", arg[1:])
				}
				add.Priority = p
				continue
			}
			words = append(words, arg)
		}
		add.Text = strings.Join(words, " ")
		if add.Text == "" {
			return Command{}, invalid("add task requires text")
		}
	case model.KindMistake, model.KindChallenge:
		add.Text = strings.Join(rest, " ")
		if add.Text == "" {
			return Command{}, invalid("add %s requires text", kind)
		}
	case model.KindIncome, model.KindExpense:
		if len(rest) == 0 {
			return Command{}, invalid("add %s requires an amount", kind)
		}
		add.Amount = rest[0]
		add.Description = strings.Join(rest[1:], " ")
	case model.KindLoan:
		if len(rest) < 3 {
			return Command{}, invalid("add loan requires lent|borrowed, a person and an amount")
		}
		add.Direction = model.LoanDirection(strings.ToLower(rest[0]))
		if !add.Direction.IsValid() {
			return Command{}, invalid("loan direction must be lent or borrowed, got %q", rest[0])
		}
		add.Person = rest[1]
		add.Amount = rest[2]
		for _, arg := range rest[3:] {
			if due, ok := strings.CutPrefix(strings.ToLower(arg), "due:"); ok {
				add.DueDate = due
			}
		}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires exactly one id", typ)
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: args[0]}}, nil
}

func parseTrash(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("trash requires a kind and an id")
	}
	kind, err := model.ParseKind(args[0])
	if err != nil {
		return Command{}, invalid("unknown kind %q", args[0])
	}
	return Command{Type: TypeTrash, Raw: raw, Trash: &TrashArgs{Kind: kind, ID: args[1]}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("show requires a subject")
	}
	subject := Subject(strings.ToLower(args[0]))
	for _, s := range subjects {
		if s == subject {
			return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
		}
	}
	return Command{}, invalid("unknown subject %q", args[0])
}

func parseRemind(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("remind requires HH:MM and a message")
	}
	if _, _, err := dates.ParseClock(args[0]); err != nil {
		return Command{}, invalid("remind time must be HH:MM, got %q", args[0])
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{At: args[0], Message: strings.Join(args[1:], " ")}}, nil
}

func parseDate(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("date requires YYYY-MM-DD, today, +N or -N")
	}
	arg := strings.ToLower(args[0])
	if arg == "today" {
		return Command{Type: TypeDate, Raw: raw, Date: &DateArgs{Today: true}}, nil
	}
	if strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-") {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Command{}, invalid("bad day offset %q", args[0])
		}
		return Command{Type: TypeDate, Raw: raw, Date: &DateArgs{Offset: n}}, nil
	}
	day, err := dates.ParseDay(arg)
	if err != nil {
		return Command{}, invalid("bad date %q", args[0])
	}
	return Command{Type: TypeDate, Raw: raw, Date: &DateArgs{Day: day}}, nil
}
