package aggregate

import (
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/shopspring/decimal"
)

// Buckets groups a day's tasks by effective priority.
type Buckets map[model.Priority][]model.Task

func (b Buckets) Count(p model.Priority) int { return len(b[p]) }

func PriorityBuckets(rec model.Record, date string) (Buckets, error) {
	tasks, err := TasksForDate(rec, date)
	if err != nil {
		return nil, err
	}
	out := make(Buckets, len(model.Priorities))
	for _, p := range model.Priorities {
		out[p] = []model.Task{}
	}
	for _, t := range tasks {
		p := t.EffectivePriority()
		out[p] = append(out[p], t)
	}
	return out, nil
}

type Progress struct {
	Completed int
	Total     int
}

// Percent is the rounded-down completion percentage; 0 for an empty day.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

func DayProgress(rec model.Record, date string) (Progress, error) {
	tasks, err := TasksForDate(rec, date)
	if err != nil {
		return Progress{}, err
	}
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	return p, nil
}

// Summary is everything recorded against one day.
type Summary struct {
	Date       string
	Tasks      []model.Task
	Progress   Progress
	Totals     Totals
	Mistakes   []model.Mistake
	Challenges []model.Challenge
}

func DaySummary(rec model.Record, date string) (Summary, error) {
	tasks, err := TasksForDate(rec, date)
	if err != nil {
		return Summary{}, err
	}
	progress, err := DayProgress(rec, date)
	if err != nil {
		return Summary{}, err
	}
	totals, err := DayTotals(rec, date)
	if err != nil {
		return Summary{}, err
	}
	mistakes, err := MistakesForDate(rec, date)
	if err != nil {
		return Summary{}, err
	}
	challenges, err := ChallengesForDate(rec, date)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Date:       date,
		Tasks:      tasks,
		Progress:   progress,
		Totals:     totals,
		Mistakes:   mistakes,
		Challenges: challenges,
	}, nil
}

// Wallet is the all-time money overview.
type Wallet struct {
	Totals
	// IncomeShare and ExpenseShare are percentages of all money moved.
	IncomeShare  decimal.Decimal
	ExpenseShare decimal.Decimal
	// Lent and Borrowed only count unpaid loans.
	Lent     decimal.Decimal
	Borrowed decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

func WalletSummary(rec model.Record) Wallet {
	w := Wallet{
		Totals: Totals{
			Income:  sumAmounts(rec.Incomes),
			Expense: sumAmounts(rec.Expenses),
		},
		IncomeShare:  decimal.Zero,
		ExpenseShare: decimal.Zero,
		Lent:         decimal.Zero,
		Borrowed:     decimal.Zero,
	}
	moved := w.Income.Add(w.Expense)
	if moved.IsPositive() {
		w.IncomeShare = w.Income.Mul(hundred).Div(moved).Round(1)
		w.ExpenseShare = hundred.Sub(w.IncomeShare)
	}
	for _, l := range rec.Loans {
		if l.IsPaid {
			continue
		}
		amount := decimal.NewFromFloat(l.Amount)
		switch l.Direction {
		case model.LoanLent:
			w.Lent = w.Lent.Add(amount)
		case model.LoanBorrowed:
			w.Borrowed = w.Borrowed.Add(amount)
		}
	}
	return w
}

func sumAmounts(items []model.Transaction) decimal.Decimal {
	amounts := make([]float64, 0, len(items))
	for _, tx := range items {
		amounts = append(amounts, tx.Amount)
	}
	return model.Sum(amounts...)
}

// UnreadNotifications returns the unread notifications, newest first as
// stored.
func UnreadNotifications(rec model.Record) []model.Notification {
	out := []model.Notification{}
	for _, n := range rec.Notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}
