package model

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/lifeboost/internal/dates"
)

// SnapshotKey is the namespaced key the whole record is stored under.
const SnapshotKey = "lifebooster_data"

const (
	DefaultName     = "User"
	DefaultCurrency = "AED"
	displayIDPrefix = "TNAV"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

type Currency struct {
	Code string
	Name string
}

var Currencies = []Currency{
	{Code: "MAD", Name: "Moroccan Dirham"},
	{Code: "AED", Name: "United Arab Emirates Dirham"},
	{Code: "USD", Name: "United States Dollar"},
	{Code: "EUR", Name: "Euro"},
	{Code: "GBP", Name: "British Pound"},
	{Code: "SAR", Name: "Saudi Riyal"},
	{Code: "QAR", Name: "Qatari Rial"},
	{Code: "DZD", Name: "Algerian Dinar"},
	{Code: "TND", Name: "Tunisian Dinar"},
	{Code: "EGP", Name: "Egyptian Pound"},
	{Code: "CAD", Name: "Canadian Dollar"},
}

func IsSupportedCurrency(code string) bool {
	return slices.ContainsFunc(Currencies, func(c Currency) bool { return c.Code == code })
}

// Record is the complete snapshot: profile fields plus every collection.
type Record struct {
	HasOnboarded   bool           `json:"hasOnboarded"`
	JoinDate       string         `json:"joinDate"`
	Name           string         `json:"name"`
	UserID         string         `json:"userId"`
	Gender         Gender         `json:"gender"`
	Currency       string         `json:"currency"`
	ProfileImage   string         `json:"profileImage,omitempty"`
	CoverImage     string         `json:"coverImage,omitempty"`
	Tasks          []Task         `json:"tasks"`
	Challenges     []Challenge    `json:"challenges"`
	Expenses       []Transaction  `json:"expenses"`
	Incomes        []Transaction  `json:"incomes"`
	Loans          []Loan         `json:"loans"`
	Mistakes       []Mistake      `json:"mistakes"`
	Trash          []TrashItem    `json:"trash"`
	Notifications  []Notification `json:"notifications"`
	LastActiveDate string         `json:"lastActiveDate"`
}

// ShortID is the id tail shown to users. Ids are time-ordered, so their
// tails are what tells them apart.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

// NewDisplayID returns a short human-facing user id such as TNAV4821.
func NewDisplayID() string {
	return fmt.Sprintf("%s%d", displayIDPrefix, rand.IntN(9000)+1000)
}

func NewRecord(now time.Time) Record {
	ts := dates.FormatTimestamp(now)
	return Record{
		JoinDate:       ts,
		Name:           DefaultName,
		UserID:         NewDisplayID(),
		Gender:         GenderMale,
		Currency:       DefaultCurrency,
		Tasks:          []Task{},
		Challenges:     []Challenge{},
		Expenses:       []Transaction{},
		Incomes:        []Transaction{},
		Loans:          []Loan{},
		Mistakes:       []Mistake{},
		Trash:          []TrashItem{},
		Notifications:  []Notification{},
		LastActiveDate: ts,
	}
}

// Backfill fills the fields older snapshots may lack. It reports whether
// anything changed.
func (r *Record) Backfill(now time.Time) bool {
	changed := false
	if strings.TrimSpace(r.Currency) == "" {
		r.Currency = DefaultCurrency
		changed = true
	}
	if r.Incomes == nil {
		r.Incomes = []Transaction{}
		changed = true
	}
	if r.Gender == "" {
		r.Gender = GenderMale
		changed = true
	}
	if r.JoinDate == "" {
		r.JoinDate = dates.FormatTimestamp(now)
		changed = true
	}
	if r.Trash == nil {
		r.Trash = []TrashItem{}
		changed = true
	}
	if r.Notifications == nil {
		r.Notifications = []Notification{}
		changed = true
	}
	if strings.TrimSpace(r.UserID) == "" {
		r.UserID = NewDisplayID()
		changed = true
	}
	// always present in written snapshots; normalized so they encode as []
	if r.Tasks == nil {
		r.Tasks = []Task{}
	}
	if r.Challenges == nil {
		r.Challenges = []Challenge{}
	}
	if r.Expenses == nil {
		r.Expenses = []Transaction{}
	}
	if r.Loans == nil {
		r.Loans = []Loan{}
	}
	if r.Mistakes == nil {
		r.Mistakes = []Mistake{}
	}
	return changed
}

// Clone returns a copy that shares no slices with r. Entities are plain
// values so copying the slices is enough.
func (r Record) Clone() Record {
	out := r
	out.Tasks = cloneSlice(r.Tasks)
	out.Challenges = cloneSlice(r.Challenges)
	out.Expenses = cloneSlice(r.Expenses)
	out.Incomes = cloneSlice(r.Incomes)
	out.Loans = cloneSlice(r.Loans)
	out.Mistakes = cloneSlice(r.Mistakes)
	out.Trash = cloneSlice(r.Trash)
	out.Notifications = cloneSlice(r.Notifications)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// LiveIDs returns the ids currently held by the collection of kind k.
func (r Record) LiveIDs(k Kind) []string {
	switch k {
	case KindTask:
		return ids(r.Tasks)
	case KindExpense:
		return ids(r.Expenses)
	case KindIncome:
		return ids(r.Incomes)
	case KindLoan:
		return ids(r.Loans)
	case KindChallenge:
		return ids(r.Challenges)
	case KindMistake:
		return ids(r.Mistakes)
	default:
		return nil
	}
}

// EntityCount counts every entity in the live collections plus the trash.
func (r Record) EntityCount() int {
	return len(r.Tasks) + len(r.Challenges) + len(r.Expenses) + len(r.Incomes) +
		len(r.Loans) + len(r.Mistakes) + len(r.Trash)
}

func ids[T Entity](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.EntityID())
	}
	return out
}
