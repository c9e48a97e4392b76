package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/scheduler"
)

const reminderLogSize = 20

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

// deliverReminderCmd sends ev to the desktop notifier off the update loop.
func deliverReminderCmd(ctx context.Context, planner *scheduler.Planner, ev scheduler.ReminderEvent) tea.Cmd {
	return func() tea.Msg {
		return ReminderDeliveredMsg{Event: ev, Err: planner.Deliver(ctx, ev)}
	}
}

// onReminder records a fired reminder as an in-app notification and
// returns the command that hands it to the desktop notifier.
func (m Model) onReminder(ev scheduler.ReminderEvent) (Model, tea.Cmd) {
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > reminderLogSize {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-reminderLogSize:]
	}

	var deliver tea.Cmd
	if m.Planner != nil {
		deliver = deliverReminderCmd(m.ctx, m.Planner, ev)
	}
	if _, err := m.Store.AddNotification(m.ctx, "Reminder", ev.Message, model.NotificationInfo); err != nil {
		m.setError(err)
		return m, deliver
	}
	m.Status = StatusBar{Text: "reminder: " + ev.Message}
	return m, deliver
}

// onReminderDelivered flags a failed desktop delivery. The in-app copy is
// already stored.
func (m Model) onReminderDelivered(msg ReminderDeliveredMsg) Model {
	if msg.Err != nil {
		m.Status = StatusBar{Text: "reminder: " + msg.Event.Message + " (desktop notification failed)", IsError: true}
	}
	return m
}
