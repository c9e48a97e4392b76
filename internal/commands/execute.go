package commands

import (
	"fmt"

	"github.com/sandeepkv93/lifeboost/internal/dates"
)

// Result is what a handler reports back. Show asks the caller to display
// a view; Day is set when the selected day changed.
type Result struct {
	Message string
	Show    Subject
	Day     dates.Day
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Done    func(TargetArgs) (Result, error)
	Paid    func(TargetArgs) (Result, error)
	Trash   func(TrashArgs) (Result, error)
	Restore func(TargetArgs) (Result, error)
	Purge   func(TargetArgs) (Result, error)
	Show    func(ShowArgs) (Result, error)
	Remind  func(RemindArgs) (Result, error)
	Date    func(DateArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func run[A any](t Type, h func(A) (Result, error), args *A) (Result, error) {
	if h == nil {
		return Result{}, missing(t)
	}
	if args == nil {
		return Result{}, invalid("%s is missing its arguments", t)
	}
	return h(*args)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		return run(cmd.Type, handlers.Add, cmd.Add)
	case TypeDone:
		return run(cmd.Type, handlers.Done, cmd.Target)
	case TypePaid:
		return run(cmd.Type, handlers.Paid, cmd.Target)
	case TypeTrash:
		return run(cmd.Type, handlers.Trash, cmd.Trash)
	case TypeRestore:
		return run(cmd.Type, handlers.Restore, cmd.Target)
	case TypePurge:
		return run(cmd.Type, handlers.Purge, cmd.Target)
	case TypeShow:
		return run(cmd.Type, handlers.Show, cmd.Show)
	case TypeRemind:
		return run(cmd.Type, handlers.Remind, cmd.Remind)
	case TypeDate:
		return run(cmd.Type, handlers.Date, cmd.Date)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
