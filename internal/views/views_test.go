package views

import (
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
)

func sampleRecord() model.Record {
	rec := model.NewRecord(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	rec.Tasks = []model.Task{
		{ID: "task-00000001", Text: "file taxes", Priority: model.PriorityUrgent, Date: "2024-03-05"},
		{ID: "task-00000002", Text: "stretch", Priority: model.PriorityLow, Completed: true, Date: "2024-03-05"},
		{ID: "task-00000003", Text: "old chore", Date: "2024-03-04"},
	}
	rec.Mistakes = []model.Mistake{{ID: "mist-00000004", Text: "check the weather", Date: "2024-03-05"}}
	rec.Challenges = []model.Challenge{{ID: "chal-00000005", Text: "no sugar", Date: "2024-03-05", Completed: true}}
	rec.Incomes = []model.Transaction{{ID: "inc-00000006", Amount: 500, Description: "salary", Date: "2024-03-05T08:00:00.000Z"}}
	rec.Expenses = []model.Transaction{{ID: "exp-00000007", Amount: 300, Description: "rent", Date: "2024-03-05"}}
	rec.Loans = []model.Loan{
		{ID: "loan-00000008", Person: "Sami", Amount: 40, Direction: model.LoanLent},
		{ID: "loan-00000009", Person: "Nadia", Amount: 15, Direction: model.LoanBorrowed, IsPaid: true},
	}
	return rec
}

func TestBuildDay(t *testing.T) {
	day := dates.MustParseDay("2024-03-05")
	data, err := BuildDay(sampleRecord(), day, DayOptions{Before: 3, After: 7, Today: day, Currency: "AED"})
	if err != nil {
		t.Fatalf("build day: %v", err)
	}
	if len(data.Strip) != 11 {
		t.Fatalf("expected 11 strip days, got %d", len(data.Strip))
	}
	if data.Strip[0].Date != "2024-03-02" || !data.Strip[3].Selected || data.Strip[3].Status != "partial" {
		t.Fatalf("unexpected strip: %+v", data.Strip[:4])
	}
	if data.Strip[2].Status != "missed" {
		t.Fatalf("the day with an open task should be missed, got %q", data.Strip[2].Status)
	}
	if data.Progress != "1/2 done (50%)" || data.Balance != "200.00 AED" {
		t.Fatalf("unexpected header figures: %q %q", data.Progress, data.Balance)
	}
	if len(data.Buckets) != 4 || data.Buckets[0].Priority != "urgent" || len(data.Buckets[0].Items) != 1 {
		t.Fatalf("unexpected buckets: %+v", data.Buckets)
	}
	if data.Buckets[0].Items[0].ShortID != "00000001" {
		t.Fatalf("expected short ids, got %q", data.Buckets[0].Items[0].ShortID)
	}

	out := RenderDayPanel(data)
	for _, want := range []string{"Tuesday 05 March 2024", "urgent (1)", "file taxes", "[x]", "check the weather", "no sugar"} {
		if !strings.Contains(out, want) {
			t.Fatalf("day panel missing %q:\n%s", want, out)
		}
	}
}

func TestBuildDayRejectsNegativeSpan(t *testing.T) {
	day := dates.MustParseDay("2024-03-05")
	if _, err := BuildDay(sampleRecord(), day, DayOptions{Before: -1}); err == nil {
		t.Fatalf("expected an error for a negative span")
	}
}

func TestBuildWallet(t *testing.T) {
	data := BuildWallet(sampleRecord())
	if data.Balance != "200.00" || data.IncomeShare != "62.5" || data.ExpenseShare != "37.5" {
		t.Fatalf("unexpected totals: %+v", data)
	}
	if data.Lent != "40.00" || data.Borrowed != "0.00" {
		t.Fatalf("paid loans must not count: lent=%s borrowed=%s", data.Lent, data.Borrowed)
	}
	if len(data.Recent) != 2 || data.Recent[0].Date != "2024-03-05" {
		t.Fatalf("unexpected recent rows: %+v", data.Recent)
	}
	out := RenderWalletPanel(data)
	for _, want := range []string{"wallet (AED)", "Sami", "[paid]", "-300.00 rent"} {
		if !strings.Contains(out, want) {
			t.Fatalf("wallet panel missing %q:\n%s", want, out)
		}
	}
}

func TestBuildMonth(t *testing.T) {
	today := dates.MustParseDay("2024-03-05")
	data, err := BuildMonth(sampleRecord(), 2024, time.March, today, today)
	if err != nil {
		t.Fatalf("build month: %v", err)
	}
	if data.Title != "March 2024" || len(data.Weeks) != 6 {
		t.Fatalf("unexpected layout: %q with %d weeks", data.Title, len(data.Weeks))
	}
	if data.Weeks[0][4].Label != "" || data.Weeks[0][5].Label != "1" {
		t.Fatalf("March 2024 starts on a Friday: %+v", data.Weeks[0])
	}
	if data.Full != 0 || data.Missed != 1 {
		t.Fatalf("unexpected counts full=%d missed=%d", data.Full, data.Missed)
	}
	if !data.Weeks[1][2].Selected || !data.Weeks[1][2].Today {
		t.Fatalf("the fifth should be selected: %+v", data.Weeks[1][2])
	}

	out := RenderMonthPanel(data)
	if !strings.Contains(out, "Su Mo Tu We Th Fr Sa") || !strings.Contains(out, "31") {
		t.Fatalf("unexpected month panel:\n%s", out)
	}
	md := MonthMarkdown(data)
	if !strings.Contains(md, "# March 2024") || !strings.Contains(md, "| Su | Mo |") || !strings.Contains(md, "5 ◐") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}
}

func TestBuildMonthRejectsBadMonth(t *testing.T) {
	if _, err := BuildMonth(sampleRecord(), 2024, 13, dates.Day{}, dates.Day{}); err == nil {
		t.Fatalf("expected an error for month 13")
	}
}

func TestBuildTrashAndNotifications(t *testing.T) {
	rec := sampleRecord()
	rec.Trash = []model.TrashItem{
		{Kind: model.KindMistake, Entity: model.Mistake{ID: "mist-0000000a", Text: "skipped lunch"}, DeletedAt: "2024-03-04T10:00:00.000Z"},
		{Kind: model.KindExpense, Entity: model.Transaction{ID: "exp-0000000b", Amount: 12.5, Description: "taxi"}, DeletedAt: "2024-03-04"},
	}
	rec.Notifications = []model.Notification{
		{ID: "n1", Title: "Welcome", Message: "hello", Type: model.NotificationInfo, Date: "2024-03-05T09:00:00.000Z"},
		{ID: "n2", Title: "Saved", Message: "ok", Type: model.NotificationSuccess, Read: true},
	}

	trash := BuildTrash(rec)
	if len(trash.Items) != 2 || trash.Items[0].Kind != "lesson" || trash.Items[1].Summary != "12.50 taxi" {
		t.Fatalf("unexpected trash rows: %+v", trash.Items)
	}
	if trash.Items[0].DeletedAt != "2024-03-04" {
		t.Fatalf("expected the deletion day, got %q", trash.Items[0].DeletedAt)
	}
	if out := RenderTrashPanel(trash); !strings.Contains(out, "trash (2)") || !strings.Contains(out, "skipped lunch") {
		t.Fatalf("unexpected trash panel:\n%s", out)
	}
	if out := RenderTrashPanel(TrashPanelData{}); !strings.Contains(out, "trash is empty") {
		t.Fatalf("unexpected empty trash panel:\n%s", out)
	}

	notes := BuildNotifications(rec)
	if notes.Unread != 1 || len(notes.Items) != 2 {
		t.Fatalf("unexpected notifications: %+v", notes)
	}
	if out := RenderNotificationsPanel(notes); !strings.Contains(out, "1 unread") || !strings.Contains(out, "[INFO] Welcome") {
		t.Fatalf("unexpected notifications panel:\n%s", out)
	}
}

func TestRenderApp(t *testing.T) {
	out := RenderApp(AppData{
		Header:        "lifeboost",
		Tabs:          []Tab{{Key: "1", Name: "today", Active: true}, {Key: "2", Name: "wallet"}},
		Body:          "body text",
		Side:          "side text",
		Palette:       RenderCommandPalette(true, "/add"),
		StatusLine:    "storage unavailable",
		StatusIsError: true,
		Footer:        "q quit",
	})
	for _, want := range []string{"lifeboost", "1 today", "2 wallet", "body text", "side text", "command: /add", "storage unavailable", "q quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("app view missing %q:\n%s", want, out)
		}
	}
	if RenderCommandPalette(false, "/add") != "" {
		t.Fatalf("inactive palette must render nothing")
	}
}

func TestRenderMarkdown(t *testing.T) {
	if RenderMarkdown("  ") != "" {
		t.Fatalf("blank markdown renders nothing")
	}
	if out := RenderMarkdown(CommandReference); !strings.Contains(out, "Commands") {
		t.Fatalf("unexpected reference rendering:\n%s", out)
	}
}
