package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidNotificationType = errors.New("model: invalid notification type")

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

func (n NotificationType) IsValid() bool {
	switch n {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	default:
		return false
	}
}

// Notification is an in-app message shown in the notifications view.
type Notification struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Date    string           `json:"date"`
	Read    bool             `json:"read"`
	Type    NotificationType `json:"type"`
}

func (n Notification) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: notification id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: notification title is required", ErrInvalidInput)
	}
	if !n.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidNotificationType, n.Type)
	}
	return nil
}

// Reminder is a same-day alert handed to the platform notifier. It is
// never persisted.
type Reminder struct {
	ID          string
	Message     string
	TriggerTime time.Time
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reminder id is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("%w: reminder message is required", ErrInvalidInput)
	}
	if r.TriggerTime.IsZero() {
		return errors.New("model: reminder trigger_time is required")
	}
	return nil
}
