package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/lifeboost/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: toBindings(m.globalBindings()),
			full:  [][]key.Binding{toBindings(m.globalBindings()), toBindings(m.viewBindings())},
		}),
		Reference: m.reference,
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Today, Action: "today"},
		{Key: m.Keys.Wallet, Action: "wallet"},
		{Key: m.Keys.Calendar, Action: "calendar"},
		{Key: m.Keys.Trash, Action: "trash"},
		{Key: m.Keys.Notifications, Action: "notifications"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewToday:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "t", Action: "jump to today"},
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle done"},
			{Key: "x", Action: "move to trash"},
		}
	case ViewWallet:
		return []KeyBinding{
			{Key: "j/k", Action: "move loan selection"},
			{Key: "p", Action: "toggle paid"},
			{Key: "x", Action: "move loan to trash"},
		}
	case ViewCalendar:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "j/k", Action: "next/previous week"},
			{Key: "p/n", Action: "previous/next month"},
			{Key: "enter", Action: "open day"},
		}
	case ViewTrash:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "r", Action: "restore"},
			{Key: "x", Action: "delete for good"},
			{Key: "E", Action: "empty trash"},
		}
	case ViewNotifications:
		return []KeyBinding{
			{Key: "r", Action: "mark all read"},
			{Key: "c", Action: "clear all"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func toBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
