package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/views"
)

func (m Model) walletData(rec model.Record) views.WalletPanelData {
	data := views.BuildWallet(rec)
	for i := range data.Loans {
		data.Loans[i].Selected = i == m.Cursor[ViewWallet]
	}
	return data
}

func (m Model) handleWalletKey(msg tea.KeyMsg) Model {
	loans := m.walletData(m.Store.Snapshot()).Loans
	switch msg.String() {
	case "up", "k":
		m.moveCursor(ViewWallet, -1, len(loans))
	case "down", "j":
		m.moveCursor(ViewWallet, 1, len(loans))
	case "p", " ", "enter":
		if l, ok := selectedRow(loans, m.Cursor[ViewWallet]); ok {
			return m.runCommand("paid " + l.ID)
		}
	case "x":
		if l, ok := selectedRow(loans, m.Cursor[ViewWallet]); ok {
			return m.runCommand("trash loan " + l.ID)
		}
	}
	return m
}

func (m Model) trashData(rec model.Record) views.TrashPanelData {
	data := views.BuildTrash(rec)
	for i := range data.Items {
		data.Items[i].Selected = i == m.Cursor[ViewTrash]
	}
	return data
}

func (m Model) handleTrashKey(msg tea.KeyMsg) Model {
	items := m.trashData(m.Store.Snapshot()).Items
	switch msg.String() {
	case "up", "k":
		m.moveCursor(ViewTrash, -1, len(items))
	case "down", "j":
		m.moveCursor(ViewTrash, 1, len(items))
	case "r", "enter":
		if item, ok := selectedRow(items, m.Cursor[ViewTrash]); ok {
			m = m.runCommand("restore " + item.ID)
			m.moveCursor(ViewTrash, 0, len(items)-1)
		}
	case "x":
		if item, ok := selectedRow(items, m.Cursor[ViewTrash]); ok {
			m = m.runCommand("purge " + item.ID)
			m.moveCursor(ViewTrash, 0, len(items)-1)
		}
	case "E":
		n, err := m.Store.EmptyTrash(m.ctx)
		m.Cursor[ViewTrash] = 0
		if err != nil {
			m.setError(err)
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("emptied trash (%d removed)", n)}
	}
	return m
}

func (m Model) handleNotificationsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "r":
		if err := m.Store.MarkAllNotificationsRead(m.ctx); err != nil {
			m.setError(err)
			return m
		}
		m.Status = StatusBar{Text: "all notifications read"}
	case "c":
		if err := m.Store.ClearNotifications(m.ctx); err != nil {
			m.setError(err)
			return m
		}
		m.Status = StatusBar{Text: "notifications cleared"}
	}
	return m
}
