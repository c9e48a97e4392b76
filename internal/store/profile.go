package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
)

// Profile holds the user-editable identity fields. Empty fields are left
// as they are.
type Profile struct {
	Name     string
	Gender   model.Gender
	Currency string
}

func (p Profile) apply(rec *model.Record) error {
	if p.Gender != "" && !p.Gender.IsValid() {
		return fmt.Errorf("%w: gender %q", model.ErrInvalidInput, p.Gender)
	}
	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency != "" && !model.IsSupportedCurrency(currency) {
		return fmt.Errorf("%w: currency %q", model.ErrInvalidInput, p.Currency)
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		rec.Name = name
	}
	if p.Gender != "" {
		rec.Gender = p.Gender
	}
	if currency != "" {
		rec.Currency = currency
	}
	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, p Profile) error {
	return s.mutate(ctx, "update profile", p.apply)
}

// CompleteOnboarding applies p, marks the user onboarded and restarts the
// join date at now.
func (s *Store) CompleteOnboarding(ctx context.Context, p Profile) error {
	return s.mutate(ctx, "onboard", func(rec *model.Record) error {
		if err := p.apply(rec); err != nil {
			return err
		}
		rec.HasOnboarded = true
		rec.JoinDate = dates.FormatTimestamp(s.now())
		return nil
	})
}

// Touch records now as the last active date.
func (s *Store) Touch(ctx context.Context) error {
	return s.mutate(ctx, "touch", func(rec *model.Record) error {
		rec.LastActiveDate = dates.FormatTimestamp(s.now())
		return nil
	})
}

// Reset replaces everything with a fresh default record.
func (s *Store) Reset(ctx context.Context) error {
	return s.mutate(ctx, "reset", func(rec *model.Record) error {
		*rec = model.NewRecord(s.now())
		return nil
	})
}

// AddNotification prepends an unread in-app notification.
func (s *Store) AddNotification(ctx context.Context, title, message string, typ model.NotificationType) (model.Notification, error) {
	var n model.Notification
	err := s.mutate(ctx, "notify", func(rec *model.Record) error {
		id, err := s.newID()
		if err != nil {
			return fmt.Errorf("store: generate id: %w", err)
		}
		if typ == "" {
			typ = model.NotificationInfo
		}
		n = model.Notification{
			ID:      id,
			Title:   strings.TrimSpace(title),
			Message: strings.TrimSpace(message),
			Date:    dates.FormatTimestamp(s.now()),
			Type:    typ,
		}
		if err := n.Validate(); err != nil {
			return err
		}
		rec.Notifications = slices.Insert(rec.Notifications, 0, n)
		return nil
	})
	return n, err
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context) error {
	return s.mutate(ctx, "read notifications", func(rec *model.Record) error {
		for i := range rec.Notifications {
			rec.Notifications[i].Read = true
		}
		return nil
	})
}

func (s *Store) ClearNotifications(ctx context.Context) error {
	return s.mutate(ctx, "clear notifications", func(rec *model.Record) error {
		rec.Notifications = []model.Notification{}
		return nil
	})
}
