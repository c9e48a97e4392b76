package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/lifeboost/internal/dates"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidInput    = errors.New("model: invalid input")
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the tiers from most to least pressing.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	// IsPriority is the pre-tier flag kept so old snapshots still load.
	IsPriority bool     `json:"isPriority"`
	Priority   Priority `json:"priority,omitempty"`
	Date       string   `json:"date"`
}

func (t Task) EntityID() string { return t.ID }

// EffectivePriority resolves the tier of a task. An explicit priority
// always wins; a task without one is urgent when the legacy flag is set
// and medium otherwise.
func (t Task) EffectivePriority() Priority {
	if t.Priority != "" {
		return t.Priority
	}
	if t.IsPriority {
		return PriorityUrgent
	}
	return PriorityMedium
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("%w: task text is required", ErrInvalidInput)
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if _, err := dates.ParseDay(t.Date); err != nil {
		return fmt.Errorf("model: task date: %w", err)
	}
	return nil
}

type Challenge struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"`
}

func (c Challenge) EntityID() string { return c.ID }

func (c Challenge) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: challenge id is required")
	}
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("%w: challenge text is required", ErrInvalidInput)
	}
	if _, err := dates.ParseDay(c.Date); err != nil {
		return fmt.Errorf("model: challenge date: %w", err)
	}
	return nil
}

// Mistake is a lesson logged against a day.
type Mistake struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
}

func (m Mistake) EntityID() string { return m.ID }

func (m Mistake) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model: mistake id is required")
	}
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("%w: mistake text is required", ErrInvalidInput)
	}
	if _, err := dates.ParseDay(m.Date); err != nil {
		return fmt.Errorf("model: mistake date: %w", err)
	}
	return nil
}
