package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type StripDay struct {
	Label    string
	Date     string
	Status   string
	Selected bool
	Today    bool
}

type ItemData struct {
	ID       string
	ShortID  string
	Text     string
	Done     bool
	Selected bool
}

type BucketData struct {
	Priority string
	Items    []ItemData
}

type DayPanelData struct {
	Title      string
	Strip      []StripDay
	Progress   string
	Income     string
	Expense    string
	Balance    string
	Buckets    []BucketData
	Lessons    []ItemData
	Challenges []ItemData
}

type LoanRow struct {
	ID        string
	ShortID   string
	Person    string
	Direction string
	Amount    string
	Due       string
	Paid      bool
	Selected  bool
}

type TxRow struct {
	ShortID     string
	Kind        string
	Amount      string
	Description string
	Date        string
}

type WalletPanelData struct {
	Currency     string
	Income       string
	Expense      string
	Balance      string
	IncomeShare  string
	ExpenseShare string
	Lent         string
	Borrowed     string
	Loans        []LoanRow
	Recent       []TxRow
}

type CellData struct {
	Label    string
	Status   string
	Today    bool
	Selected bool
}

type MonthPanelData struct {
	Title  string
	Weeks  [][]CellData
	Full   int
	Missed int
}

type TrashRow struct {
	ID        string
	ShortID   string
	Kind      string
	Summary   string
	DeletedAt string
	Selected  bool
}

type TrashPanelData struct {
	Items []TrashRow
}

type NotificationRow struct {
	Title   string
	Message string
	Date    string
	Type    string
	Read    bool
}

type NotificationsPanelData struct {
	Unread int
	Items  []NotificationRow
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
	Reference   string
}

// CommandReference is the palette cheat sheet shown under help.
const CommandReference = `## Commands

| command | effect |
| --- | --- |
| add task <text> [!urgent/!high/!medium/!low] | new task on the selected day |
| add income <amount> [desc] | record income |
| add expense <amount> [desc] | record an expense |
| add loan <lent/borrowed> <person> <amount> [due:YYYY-MM-DD] | track a loan |
| add lesson <text> | note a lesson learned |
| add challenge <text> | set a challenge |
| done <id> | toggle a task or challenge |
| paid <id> | toggle a loan paid |
| trash <kind> <id> | move to trash |
| restore <id> / purge <id> | restore or delete for good |
| show day/month/wallet/trash/notifications | switch view |
| remind <HH:MM> <text> | reminder later today |
| date <YYYY-MM-DD/today/+N/-N> | select a day |

Ids are the short codes shown next to each entry.
`

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

var dayStatusColors = map[string]lipgloss.Color{
	"full":    lipgloss.Color("10"),
	"partial": lipgloss.Color("11"),
	"missed":  lipgloss.Color("9"),
	"empty":   lipgloss.Color("8"),
}

func statusMark(status string) string {
	switch status {
	case "full":
		return "●"
	case "partial":
		return "◐"
	case "missed":
		return "○"
	default:
		return "·"
	}
}

func statusColor(status string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := dayStatusColors[status]; ok {
		style = style.Foreground(c)
	}
	return style
}

func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	b.WriteString(renderStrip(data.Strip) + "\n\n")
	b.WriteString(fmt.Sprintf("progress: %s\n", data.Progress))
	b.WriteString(fmt.Sprintf("money: +%s  -%s  = %s\n", data.Income, data.Expense, data.Balance))
	for _, bucket := range data.Buckets {
		b.WriteString(fmt.Sprintf("\n%s (%d):\n", bucket.Priority, len(bucket.Items)))
		renderItems(&b, bucket.Items, true)
	}
	b.WriteString("\nlessons:\n")
	renderItems(&b, data.Lessons, false)
	b.WriteString("\nchallenges:\n")
	renderItems(&b, data.Challenges, true)
	return strings.TrimSpace(b.String())
}

func renderStrip(days []StripDay) string {
	cells := make([]string, 0, len(days))
	for _, d := range days {
		cell := d.Label + statusMark(d.Status)
		if d.Selected {
			cell = "[" + cell + "]"
		} else {
			cell = " " + cell + " "
		}
		style := statusColor(d.Status)
		if d.Today {
			style = style.Bold(true)
		}
		cells = append(cells, style.Render(cell))
	}
	return strings.Join(cells, "")
}

func renderItems(b *strings.Builder, items []ItemData, checkbox bool) {
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		box := "-"
		if checkbox {
			box = "[ ]"
			if item.Done {
				box = "[x]"
			}
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor(item.Selected), box, mutedStyle.Render(item.ShortID), item.Text))
	}
}

func cursor(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func RenderWalletPanel(data WalletPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("wallet ("+data.Currency+")") + "\n")
	b.WriteString(fmt.Sprintf("income:   %s (%s%%)\n", data.Income, data.IncomeShare))
	b.WriteString(fmt.Sprintf("expenses: %s (%s%%)\n", data.Expense, data.ExpenseShare))
	b.WriteString(fmt.Sprintf("balance:  %s\n", data.Balance))
	b.WriteString(fmt.Sprintf("lent: %s  borrowed: %s\n", data.Lent, data.Borrowed))

	b.WriteString("\nloans:\n")
	if len(data.Loans) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, l := range data.Loans {
		state := "open"
		if l.Paid {
			state = "paid"
		}
		line := fmt.Sprintf("%s %s %s %s %s [%s]", cursor(l.Selected), mutedStyle.Render(l.ShortID), l.Direction, l.Person, l.Amount, state)
		if l.Due != "" {
			line += " due " + l.Due
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\nrecent:\n")
	if len(data.Recent) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, tx := range data.Recent {
		sign := "+"
		if tx.Kind == "expense" {
			sign = "-"
		}
		b.WriteString(fmt.Sprintf("  %s %s %s%s %s\n", mutedStyle.Render(tx.ShortID), tx.Date, sign, tx.Amount, tx.Description))
	}
	return strings.TrimSpace(b.String())
}

func RenderMonthPanel(data MonthPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	b.WriteString(mutedStyle.Render(strings.Join(weekdayHeader, " ")) + "\n")
	for _, week := range data.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			style := statusColor(c.Status)
			if c.Today {
				style = style.Bold(true)
			}
			if c.Selected {
				style = style.Reverse(true)
			}
			cells = append(cells, style.Render(fmt.Sprintf("%2s", c.Label)))
		}
		b.WriteString(strings.Join(cells, " ") + "\n")
	}
	b.WriteString(fmt.Sprintf("\nfull: %d  missed: %d\n", data.Full, data.Missed))
	b.WriteString(mutedStyle.Render("● full  ◐ partial  ○ missed  · empty"))
	return strings.TrimSpace(b.String())
}

// MonthMarkdown renders the month as a markdown table for glamour or a
// plain terminal.
func MonthMarkdown(data MonthPanelData) string {
	var b strings.Builder
	b.WriteString("# " + data.Title + "\n\n")
	b.WriteString("| " + strings.Join(weekdayHeader, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(weekdayHeader)) + "\n")
	for _, week := range data.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			if c.Label == "" {
				cells = append(cells, " ")
				continue
			}
			cells = append(cells, c.Label+" "+statusMark(c.Status))
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString(fmt.Sprintf("\nfull days: %d, missed days: %d\n", data.Full, data.Missed))
	return b.String()
}

func RenderTrashPanel(data TrashPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("trash (%d)", len(data.Items))) + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(trash is empty)")
		return b.String()
	}
	for _, item := range data.Items {
		b.WriteString(fmt.Sprintf("%s %s %-9s %s", cursor(item.Selected), mutedStyle.Render(item.ShortID), item.Kind, item.Summary))
		if item.DeletedAt != "" {
			b.WriteString(mutedStyle.Render(" deleted " + item.DeletedAt))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nactions: restore <id> | purge <id>")
	return strings.TrimSpace(b.String())
}

func RenderNotificationsPanel(data NotificationsPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("notifications (%d unread)", data.Unread)) + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(no notifications)")
		return b.String()
	}
	for _, n := range data.Items {
		marker := "*"
		if n.Read {
			marker = " "
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s: %s", marker, strings.ToUpper(n.Type), n.Title, n.Message))
		if n.Date != "" {
			b.WriteString(mutedStyle.Render(" " + n.Date))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nactions: [r]mark all read [c]clear")
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	out := fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
	if data.Reference != "" {
		out += "\n\n" + data.Reference
	}
	return out
}
