package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifeboost/internal/commands"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/store"
	"github.com/sandeepkv93/lifeboost/internal/views"
	"go.uber.org/zap"
)

func (m Model) Init() tea.Cmd {
	if m.Planner != nil {
		return waitForReminderCmd(m.Planner.Events())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}

		keyStr := typed.String()
		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible && m.reference == "" {
				m.reference = views.RenderMarkdown(views.CommandReference)
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		for _, v := range allViews {
			if keyStr == m.viewKey(v) {
				m.CurrentView = v
				return m, nil
			}
		}

		switch m.CurrentView {
		case ViewToday:
			return m.handleTodayKey(typed), nil
		case ViewWallet:
			return m.handleWalletKey(typed), nil
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewTrash:
			return m.handleTrashKey(typed), nil
		case ViewNotifications:
			return m.handleNotificationsKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	case ReminderDueMsg:
		var deliver tea.Cmd
		m, deliver = m.onReminder(typed.Event)
		if m.Planner != nil {
			return m, tea.Batch(deliver, waitForReminderCmd(m.Planner.Events()))
		}
		return m, nil
	case ReminderDeliveredMsg:
		return m.onReminderDelivered(typed), nil
	}

	return m, nil
}

// runCommand executes one command line against the session and reflects
// the result in the status bar and the current view.
func (m Model) runCommand(input string) Model {
	res, err := m.Session.Run(m.ctx, input)
	if v, ok := viewForSubject(res.Show); ok {
		m.CurrentView = v
		if res.Message == "" {
			res.Message = "showing " + strings.ToLower(string(v))
		}
	}
	if !res.Day.IsZero() {
		m.Cursor[ViewToday] = 0
	}
	if err != nil {
		m.setError(err)
		if res.Message != "" {
			m.Status.Text = res.Message + " (" + m.Status.Text + ")"
		}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

// setError shows err in the status bar. Storage failures keep the change
// in memory, so the app carries on and only says it was not saved.
func (m *Model) setError(err error) {
	m.LastError = err
	text := err.Error()
	if store.IsPersistFailure(err) {
		text = "not saved: " + text
	}
	m.Status = StatusBar{Text: text, IsError: true}
	if !commands.IsUserError(err) {
		m.log.Warn("tui operation failed", zap.Error(err))
	}
}

func (m Model) View() string {
	rec := m.Store.Snapshot()
	body, err := m.renderBody(rec)
	if err != nil {
		body = "error: " + err.Error()
	}
	side := m.renderHelpIfVisible()
	if side == "" {
		side = m.renderSide(rec)
	}

	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}

	tabs := make([]views.Tab, 0, len(allViews))
	for _, v := range allViews {
		tabs = append(tabs, views.Tab{Key: m.viewKey(v), Name: strings.ToLower(string(v)), Active: v == m.CurrentView})
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("lifeboost | %s | %s | %s", rec.Name, m.CurrentView, m.Session.Day),
		Tabs:          tabs,
		Body:          body,
		Side:          side,
		Palette:       views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer:        fmt.Sprintf("keys: 1-5 views | / cmd | %s help | %s quit", m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderBody(rec model.Record) (string, error) {
	switch m.CurrentView {
	case ViewWallet:
		return views.RenderWalletPanel(m.walletData(rec)), nil
	case ViewCalendar:
		data, err := m.monthData(rec)
		if err != nil {
			return "", err
		}
		return views.RenderMonthPanel(data), nil
	case ViewTrash:
		return views.RenderTrashPanel(m.trashData(rec)), nil
	case ViewNotifications:
		return views.RenderNotificationsPanel(views.BuildNotifications(rec)), nil
	default:
		data, _, err := m.dayData(rec)
		if err != nil {
			return "", err
		}
		return views.RenderDayPanel(data), nil
	}
}

func (m Model) renderSide(rec model.Record) string {
	notes := views.BuildNotifications(rec)
	lines := []string{fmt.Sprintf("unread notifications: %d", notes.Unread)}
	if len(m.ReminderLog) > 0 {
		last := m.ReminderLog[len(m.ReminderLog)-1]
		lines = append(lines, views.RenderNotification("reminder", last.Message+" @ "+last.TriggerAt.Local().Format("15:04")))
	}
	if m.Planner != nil {
		lines = append(lines, fmt.Sprintf("reminders: up to %s ahead", m.Planner.Lookahead()))
	} else {
		lines = append(lines, "reminders: off")
	}
	return strings.Join(lines, "\n")
}
