package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/lifeboost/internal/aggregate"
	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/shopspring/decimal"
)

const recentTransactions = 5

// DayOptions controls the date strip drawn above the day view.
type DayOptions struct {
	Before   int
	After    int
	Today    dates.Day
	Currency string
}

func BuildDay(rec model.Record, day dates.Day, opts DayOptions) (DayPanelData, error) {
	date := day.String()
	sum, err := aggregate.DaySummary(rec, date)
	if err != nil {
		return DayPanelData{}, err
	}
	buckets, err := aggregate.PriorityBuckets(rec, date)
	if err != nil {
		return DayPanelData{}, err
	}
	span, err := aggregate.DateRangeAround(date, opts.Before, opts.After)
	if err != nil {
		return DayPanelData{}, err
	}

	data := DayPanelData{
		Title:    day.Time().Format("Monday 02 January 2006"),
		Progress: fmt.Sprintf("%d/%d done (%d%%)", sum.Progress.Completed, sum.Progress.Total, sum.Progress.Percent()),
		Income:   formatMoney(sum.Totals.Income),
		Expense:  formatMoney(sum.Totals.Expense),
		Balance:  formatMoney(sum.Totals.Balance()) + " " + opts.Currency,
	}
	for d := range span {
		status, err := aggregate.CalendarDayStatus(rec, d.String())
		if err != nil {
			return DayPanelData{}, err
		}
		data.Strip = append(data.Strip, StripDay{
			Label:    d.Time().Format("02"),
			Date:     d.String(),
			Status:   string(status),
			Selected: d == day,
			Today:    d == opts.Today,
		})
	}
	for _, p := range model.Priorities {
		bucket := BucketData{Priority: string(p)}
		for _, t := range buckets[p] {
			bucket.Items = append(bucket.Items, ItemData{ID: t.ID, ShortID: model.ShortID(t.ID), Text: t.Text, Done: t.Completed})
		}
		data.Buckets = append(data.Buckets, bucket)
	}
	for _, m := range sum.Mistakes {
		data.Lessons = append(data.Lessons, ItemData{ID: m.ID, ShortID: model.ShortID(m.ID), Text: m.Text})
	}
	for _, c := range sum.Challenges {
		data.Challenges = append(data.Challenges, ItemData{ID: c.ID, ShortID: model.ShortID(c.ID), Text: c.Text, Done: c.Completed})
	}
	return data, nil
}

func BuildWallet(rec model.Record) WalletPanelData {
	w := aggregate.WalletSummary(rec)
	data := WalletPanelData{
		Currency:     rec.Currency,
		Income:       formatMoney(w.Income),
		Expense:      formatMoney(w.Expense),
		Balance:      formatMoney(w.Balance()),
		IncomeShare:  w.IncomeShare.StringFixed(1),
		ExpenseShare: w.ExpenseShare.StringFixed(1),
		Lent:         formatMoney(w.Lent),
		Borrowed:     formatMoney(w.Borrowed),
	}
	for _, l := range rec.Loans {
		data.Loans = append(data.Loans, LoanRow{
			ID:        l.ID,
			ShortID:   model.ShortID(l.ID),
			Person:    l.Person,
			Direction: string(l.Direction),
			Amount:    formatAmount(l.Amount),
			Due:       l.DueDate,
			Paid:      l.IsPaid,
		})
	}

	recent := make([]TxRow, 0, len(rec.Incomes)+len(rec.Expenses))
	for _, tx := range rec.Incomes {
		recent = append(recent, txRow(model.KindIncome, tx))
	}
	for _, tx := range rec.Expenses {
		recent = append(recent, txRow(model.KindExpense, tx))
	}
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}
	data.Recent = recent
	return data
}

func txRow(kind model.Kind, tx model.Transaction) TxRow {
	return TxRow{
		ShortID:     model.ShortID(tx.ID),
		Kind:        string(kind),
		Amount:      formatAmount(tx.Amount),
		Description: tx.Description,
		Date:        displayDay(tx.Date),
	}
}

// BuildMonth lays the month report out in weeks. selected is highlighted
// when it falls inside the month.
func BuildMonth(rec model.Record, year int, month time.Month, today, selected dates.Day) (MonthPanelData, error) {
	report, err := aggregate.MonthReport(rec, year, month)
	if err != nil {
		return MonthPanelData{}, err
	}
	data := MonthPanelData{
		Title:  fmt.Sprintf("%s %d", month, year),
		Full:   report.Full,
		Missed: report.Missed,
	}
	var week []CellData
	for _, cell := range report.Cells {
		c := CellData{}
		if !cell.Blank() {
			c = CellData{
				Label:    fmt.Sprintf("%d", cell.Day.Day),
				Status:   string(cell.Status),
				Today:    cell.Day == today,
				Selected: cell.Day == selected,
			}
		}
		week = append(week, c)
		if len(week) == 7 {
			data.Weeks = append(data.Weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		data.Weeks = append(data.Weeks, week)
	}
	return data, nil
}

func BuildTrash(rec model.Record) TrashPanelData {
	data := TrashPanelData{Items: make([]TrashRow, 0, len(rec.Trash))}
	for _, item := range rec.Trash {
		data.Items = append(data.Items, TrashRow{
			ID:        item.EntityID(),
			ShortID:   model.ShortID(item.EntityID()),
			Kind:      item.Kind.Label(),
			Summary:   describe(item.Entity),
			DeletedAt: displayDay(item.DeletedAt),
		})
	}
	return data
}

func BuildNotifications(rec model.Record) NotificationsPanelData {
	data := NotificationsPanelData{
		Unread: len(aggregate.UnreadNotifications(rec)),
		Items:  make([]NotificationRow, 0, len(rec.Notifications)),
	}
	for _, n := range rec.Notifications {
		data.Items = append(data.Items, NotificationRow{
			Title:   n.Title,
			Message: n.Message,
			Date:    displayDay(n.Date),
			Type:    string(n.Type),
			Read:    n.Read,
		})
	}
	return data
}

func describe(e model.Entity) string {
	switch v := e.(type) {
	case model.Task:
		return v.Text
	case model.Challenge:
		return v.Text
	case model.Mistake:
		return v.Text
	case model.Transaction:
		return strings.TrimSpace(formatAmount(v.Amount) + " " + v.Description)
	case model.Loan:
		return fmt.Sprintf("%s %s %s", v.Direction, v.Person, formatAmount(v.Amount))
	default:
		return ""
	}
}

// displayDay shortens stored timestamps to their calendar day; strings
// that do not parse are shown as stored.
func displayDay(raw string) string {
	d, err := dates.ParseDay(raw)
	if err != nil {
		return raw
	}
	return d.String()
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatAmount(v float64) string {
	return formatMoney(decimal.NewFromFloat(v))
}
