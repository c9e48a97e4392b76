package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		return m.runCommand("date -1")
	case "l", "right":
		return m.runCommand("date +1")
	case "k", "up":
		return m.runCommand("date -7")
	case "j", "down":
		return m.runCommand("date +7")
	case "p":
		return m.shiftMonth(-1)
	case "n":
		return m.shiftMonth(1)
	case "t":
		return m.runCommand("date today")
	case "enter":
		m.CurrentView = ViewToday
		m.Status = StatusBar{Text: "viewing " + m.Session.Day.String()}
	}
	return m
}

// shiftMonth moves the selection by whole months, clamping to the last day
// when the target month is shorter.
func (m Model) shiftMonth(delta int) Model {
	d := m.Session.Day
	first := dates.Of(d.Year, d.Month, 1).Time().AddDate(0, delta, 0)
	day := d.Day
	if n := dates.DaysIn(first.Year(), first.Month()); day > n {
		day = n
	}
	return m.runCommand("date " + dates.Of(first.Year(), first.Month(), day).String())
}

func (m Model) monthData(rec model.Record) (views.MonthPanelData, error) {
	d := m.Session.Day
	return views.BuildMonth(rec, d.Year, d.Month, dates.Today(m.now()), d)
}
