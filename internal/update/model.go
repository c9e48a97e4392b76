package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/lifeboost/internal/commands"
	"github.com/sandeepkv93/lifeboost/internal/config"
	"github.com/sandeepkv93/lifeboost/internal/scheduler"
	"github.com/sandeepkv93/lifeboost/internal/store"
	"go.uber.org/zap"
)

type View string

const (
	ViewToday         View = "Today"
	ViewWallet        View = "Wallet"
	ViewCalendar      View = "Calendar"
	ViewTrash         View = "Trash"
	ViewNotifications View = "Notifications"
)

var allViews = []View{ViewToday, ViewWallet, ViewCalendar, ViewTrash, ViewNotifications}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today         string
	Wallet        string
	Calendar      string
	Trash         string
	Notifications string
	Help          string
	Quit          string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Options wires the model to its collaborators. Store is required;
// Planner may be nil when reminders are disabled.
type Options struct {
	Store   *store.Store
	Planner *scheduler.Planner
	UI      config.UIConfig
	Log     *zap.Logger
	Now     func() time.Time
	Context context.Context
}

type Model struct {
	CurrentView View
	Session     *commands.Session
	Store       *store.Store
	Planner     *scheduler.Planner
	UI          config.UIConfig
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	// Cursor is the selected row per view.
	Cursor      map[View]int
	ReminderLog []scheduler.ReminderEvent
	Quitting    bool
	LastError   error

	commandInput textinput.Model
	helpModel    help.Model
	reference    string
	log          *zap.Logger
	now          func() time.Time
	ctx          context.Context
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

// ReminderDeliveredMsg reports the outcome of a desktop notification.
type ReminderDeliveredMsg struct {
	Event scheduler.ReminderEvent
	Err   error
}

func NewModel(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		CurrentView: ViewToday,
		Session:     commands.NewSession(opts.Store, opts.Planner, now),
		Store:       opts.Store,
		Planner:     opts.Planner,
		UI:          opts.UI,
		Cursor:      make(map[View]int),
		Keys: GlobalKeyMap{
			Today:         "1",
			Wallet:        "2",
			Calendar:      "3",
			Trash:         "4",
			Notifications: "5",
			Help:          "?",
			Quit:          "q",
		},
		log: log,
		now: now,
		ctx: ctx,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 56

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}

func (m Model) viewKey(v View) string {
	switch v {
	case ViewToday:
		return m.Keys.Today
	case ViewWallet:
		return m.Keys.Wallet
	case ViewCalendar:
		return m.Keys.Calendar
	case ViewTrash:
		return m.Keys.Trash
	case ViewNotifications:
		return m.Keys.Notifications
	default:
		return ""
	}
}

func isKnownView(v View) bool {
	for _, known := range allViews {
		if known == v {
			return true
		}
	}
	return false
}

// viewForSubject maps a `show` subject onto the view that displays it.
func viewForSubject(s commands.Subject) (View, bool) {
	switch s {
	case commands.SubjectDay:
		return ViewToday, true
	case commands.SubjectMonth:
		return ViewCalendar, true
	case commands.SubjectWallet:
		return ViewWallet, true
	case commands.SubjectTrash:
		return ViewTrash, true
	case commands.SubjectNotifications:
		return ViewNotifications, true
	default:
		return "", false
	}
}
