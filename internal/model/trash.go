package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidKind = errors.New("model: invalid entity kind")

// Kind names the live collection an entity belongs to.
type Kind string

const (
	KindTask      Kind = "task"
	KindExpense   Kind = "expense"
	KindIncome    Kind = "income"
	KindLoan      Kind = "loan"
	KindChallenge Kind = "challenge"
	KindMistake   Kind = "mistake"
)

var Kinds = []Kind{KindTask, KindExpense, KindIncome, KindLoan, KindChallenge, KindMistake}

func (k Kind) IsValid() bool {
	switch k {
	case KindTask, KindExpense, KindIncome, KindLoan, KindChallenge, KindMistake:
		return true
	default:
		return false
	}
}

// Label is the user-facing name; mistakes are shown as lessons.
func (k Kind) Label() string {
	if k == KindMistake {
		return "lesson"
	}
	return string(k)
}

// ParseKind also accepts the user-facing aliases ("lesson", plurals).
func ParseKind(s string) (Kind, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	switch raw {
	case "lesson", "lessons", "mistakes":
		return KindMistake, nil
	case "tasks", "expenses", "incomes", "loans", "challenges":
		raw = strings.TrimSuffix(raw, "s")
	}
	k := Kind(raw)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

// Entity is any record that can live in a collection or in the trash.
type Entity interface {
	EntityID() string
	Validate() error
}

// TrashItem wraps one soft-deleted entity with the collection it came from.
type TrashItem struct {
	Kind      Kind   `json:"type"`
	Entity    Entity `json:"data"`
	DeletedAt string `json:"deletedAt"`
}

func (t TrashItem) EntityID() string {
	if t.Entity == nil {
		return ""
	}
	return t.Entity.EntityID()
}

func (t TrashItem) Validate() error {
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	if t.Entity == nil {
		return errors.New("model: trash item has no data")
	}
	return t.Entity.Validate()
}

func (t *TrashItem) UnmarshalJSON(b []byte) error {
	var raw struct {
		Kind      Kind            `json:"type"`
		Data      json.RawMessage `json:"data"`
		DeletedAt string          `json:"deletedAt"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	entity, err := decodeEntity(raw.Kind, raw.Data)
	if err != nil {
		return err
	}
	t.Kind = raw.Kind
	t.Entity = entity
	t.DeletedAt = raw.DeletedAt
	return nil
}

func decodeEntity(kind Kind, data json.RawMessage) (Entity, error) {
	switch kind {
	case KindTask:
		return decodeAs[Task](data)
	case KindExpense, KindIncome:
		return decodeAs[Transaction](data)
	case KindLoan:
		return decodeAs[Loan](data)
	case KindChallenge:
		return decodeAs[Challenge](data)
	case KindMistake:
		return decodeAs[Mistake](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}

func decodeAs[T Entity](data json.RawMessage) (Entity, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
