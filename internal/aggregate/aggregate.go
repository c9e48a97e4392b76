// Package aggregate computes date-scoped views over a snapshot record.
// Nothing here mutates the record and the trash is never read.
package aggregate

import (
	"fmt"
	"iter"
	"time"

	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/shopspring/decimal"
)

type DayStatus string

const (
	StatusEmpty   DayStatus = "empty"
	StatusFull    DayStatus = "full"
	StatusPartial DayStatus = "partial"
	StatusMissed  DayStatus = "missed"
)

// TasksForDate returns the tasks whose date string equals date exactly,
// in collection order.
func TasksForDate(rec model.Record, date string) ([]model.Task, error) {
	return exactDay(rec.Tasks, date, func(t model.Task) string { return t.Date })
}

func MistakesForDate(rec model.Record, date string) ([]model.Mistake, error) {
	return exactDay(rec.Mistakes, date, func(m model.Mistake) string { return m.Date })
}

func ChallengesForDate(rec model.Record, date string) ([]model.Challenge, error) {
	return exactDay(rec.Challenges, date, func(c model.Challenge) string { return c.Date })
}

func exactDay[T any](items []T, date string, dateOf func(T) string) ([]T, error) {
	if _, err := dates.ParseDay(date); err != nil {
		return nil, err
	}
	out := []T{}
	for _, item := range items {
		if dateOf(item) == date {
			out = append(out, item)
		}
	}
	return out, nil
}

// Totals holds the income and expense of a period.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// DayTotals sums the incomes and expenses that fall on the same calendar
// day as date, whatever their time of day.
func DayTotals(rec model.Record, date string) (Totals, error) {
	day, err := dates.ParseDay(date)
	if err != nil {
		return Totals{}, err
	}
	income, err := sumOnDay(rec.Incomes, day, model.KindIncome)
	if err != nil {
		return Totals{}, err
	}
	expense, err := sumOnDay(rec.Expenses, day, model.KindExpense)
	if err != nil {
		return Totals{}, err
	}
	return Totals{Income: income, Expense: expense}, nil
}

// DayBalance is the day's incomes minus the day's expenses.
func DayBalance(rec model.Record, date string) (decimal.Decimal, error) {
	totals, err := DayTotals(rec, date)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Balance(), nil
}

func sumOnDay(items []model.Transaction, day dates.Day, kind model.Kind) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range items {
		d, err := dates.ParseDay(tx.Date)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s %s: %w", kind, tx.ID, err)
		}
		if d == day {
			total = total.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return total, nil
}

// CalendarDayStatus classifies a day by its tasks. Emptiness is checked
// first, then the completion ratio.
func CalendarDayStatus(rec model.Record, date string) (DayStatus, error) {
	day, err := dates.ParseDay(date)
	if err != nil {
		return "", err
	}
	byDay, err := tasksByDay(rec.Tasks)
	if err != nil {
		return "", err
	}
	return statusOf(byDay[day]), nil
}

func statusOf(tasks []model.Task) DayStatus {
	if len(tasks) == 0 {
		return StatusEmpty
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	switch done {
	case len(tasks):
		return StatusFull
	case 0:
		return StatusMissed
	default:
		return StatusPartial
	}
}

func tasksByDay(tasks []model.Task) (map[dates.Day][]model.Task, error) {
	out := make(map[dates.Day][]model.Task)
	for _, t := range tasks {
		d, err := dates.ParseDay(t.Date)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		out[d] = append(out[d], t)
	}
	return out, nil
}

// Cell is one slot of the month grid. Leading blanks have a zero Day and
// no status.
type Cell struct {
	Day    dates.Day
	Status DayStatus
}

func (c Cell) Blank() bool { return c.Day.IsZero() }

type Report struct {
	Year  int
	Month time.Month
	Cells []Cell
	// Full counts the active days, Missed the zero days.
	Full   int
	Missed int
}

// MonthReport classifies every day of the month on a Sunday-first
// grid and counts full and missed days.
func MonthReport(rec model.Record, year int, month time.Month) (Report, error) {
	if month < time.January || month > time.December {
		return Report{}, fmt.Errorf("%w: month %d", dates.ErrInvalidDate, month)
	}
	byDay, err := tasksByDay(rec.Tasks)
	if err != nil {
		return Report{}, err
	}
	report := Report{Year: year, Month: month}
	for _, day := range dates.MonthGrid(year, month) {
		if day.IsZero() {
			report.Cells = append(report.Cells, Cell{})
			continue
		}
		status := statusOf(byDay[day])
		switch status {
		case StatusFull:
			report.Full++
		case StatusMissed:
			report.Missed++
		}
		report.Cells = append(report.Cells, Cell{Day: day, Status: status})
	}
	return report, nil
}

// DateRangeAround yields the days [center-before, center+after] lazily.
func DateRangeAround(center string, before, after int) (iter.Seq[dates.Day], error) {
	day, err := dates.ParseDay(center)
	if err != nil {
		return nil, err
	}
	return dates.Range(day, before, after)
}
