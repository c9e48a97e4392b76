package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("model: invalid amount")
	ErrInvalidDirection = errors.New("model: invalid loan direction")
)

// ParseAmount turns free-text input into a non-negative amount. Both
// "12.50" and "12,50" are accepted; "1,200.50" treats the comma as a
// thousands separator.
func ParseAmount(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, text)
	}
	f, _ := d.Float64()
	if err := checkAmount(f); err != nil {
		return 0, err
	}
	return f, nil
}

// Sum adds amounts without accumulating float error.
func Sum(amounts ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total
}

func checkAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: not a number", ErrInvalidAmount)
	}
	if v < 0 {
		return fmt.Errorf("%w: %v is negative", ErrInvalidAmount, v)
	}
	return nil
}

// Transaction is an income or an expense; which one is decided by the
// collection holding it.
type Transaction struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

func (t Transaction) EntityID() string { return t.ID }

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: transaction id is required")
	}
	if err := checkAmount(t.Amount); err != nil {
		return err
	}
	if _, err := dates.ParseDay(t.Date); err != nil {
		return fmt.Errorf("model: transaction date: %w", err)
	}
	return nil
}

type LoanDirection string

const (
	LoanLent     LoanDirection = "lent"
	LoanBorrowed LoanDirection = "borrowed"
)

func (d LoanDirection) IsValid() bool {
	switch d {
	case LoanLent, LoanBorrowed:
		return true
	default:
		return false
	}
}

type Loan struct {
	ID        string        `json:"id"`
	Person    string        `json:"person"`
	Amount    float64       `json:"amount"`
	Direction LoanDirection `json:"type"`
	DueDate   string        `json:"dueDate,omitempty"`
	IsPaid    bool          `json:"isPaid"`
}

func (l Loan) EntityID() string { return l.ID }

func (l Loan) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("model: loan id is required")
	}
	if strings.TrimSpace(l.Person) == "" {
		return fmt.Errorf("%w: loan person is required", ErrInvalidInput)
	}
	if err := checkAmount(l.Amount); err != nil {
		return err
	}
	if !l.Direction.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, l.Direction)
	}
	if l.DueDate != "" {
		if _, err := dates.ParseDay(l.DueDate); err != nil {
			return fmt.Errorf("model: loan due date: %w", err)
		}
	}
	return nil
}
