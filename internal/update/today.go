package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/views"
)

// dayRow is one selectable line of the day view.
type dayRow struct {
	Kind model.Kind
	ID   string
}

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		return m.runCommand("date -1")
	case "l", "right":
		return m.runCommand("date +1")
	case "t":
		return m.runCommand("date today")
	}

	_, rows, err := m.dayData(m.Store.Snapshot())
	if err != nil {
		m.setError(err)
		return m
	}
	switch msg.String() {
	case "up", "k":
		m.moveCursor(ViewToday, -1, len(rows))
	case "down", "j":
		m.moveCursor(ViewToday, 1, len(rows))
	case " ", "enter":
		row, ok := selectedRow(rows, m.Cursor[ViewToday])
		if !ok {
			return m
		}
		if row.Kind == model.KindMistake {
			m.Status = StatusBar{Text: "lessons cannot be completed"}
			return m
		}
		return m.runCommand("done " + row.ID)
	case "x":
		if row, ok := selectedRow(rows, m.Cursor[ViewToday]); ok {
			return m.runCommand("trash " + string(row.Kind) + " " + row.ID)
		}
	}
	return m
}

// dayData builds the day view for the session's selected day with the
// cursor applied, and returns its selectable rows in display order.
func (m Model) dayData(rec model.Record) (views.DayPanelData, []dayRow, error) {
	data, err := views.BuildDay(rec, m.Session.Day, views.DayOptions{
		Before:   m.UI.DaysBefore,
		After:    m.UI.DaysAfter,
		Today:    dates.Today(m.now()),
		Currency: rec.Currency,
	})
	if err != nil {
		return views.DayPanelData{}, nil, err
	}

	var rows []dayRow
	cursor := m.Cursor[ViewToday]
	mark := func(items []views.ItemData, kind model.Kind) {
		for i := range items {
			items[i].Selected = len(rows) == cursor
			rows = append(rows, dayRow{Kind: kind, ID: items[i].ID})
		}
	}
	for i := range data.Buckets {
		mark(data.Buckets[i].Items, model.KindTask)
	}
	mark(data.Lessons, model.KindMistake)
	mark(data.Challenges, model.KindChallenge)
	return data, rows, nil
}

func selectedRow[T any](rows []T, cursor int) (T, bool) {
	var zero T
	if cursor < 0 || cursor >= len(rows) {
		return zero, false
	}
	return rows[cursor], true
}

func (m *Model) moveCursor(v View, delta, n int) {
	c := m.Cursor[v] + delta
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.Cursor[v] = c
}
