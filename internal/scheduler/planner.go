package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/notify"
	"go.uber.org/zap"
)

// DefaultLookahead bounds how far ahead a same-day reminder may be set.
const DefaultLookahead = 6 * time.Hour

const reminderTitle = "LifeBoost"

var ErrNotScheduled = errors.New("scheduler: reminder not scheduled")

type Reason string

const (
	ReasonPermissionDenied Reason = "permission denied"
	ReasonNotInFuture      Reason = "time already passed"
	ReasonBeyondLookahead  Reason = "too far ahead"
	ReasonEmptyMessage     Reason = "empty message"
)

// NotScheduledError explains why a best-effort reminder was skipped.
type NotScheduledError struct {
	Reason Reason
	Target time.Time
}

func (e *NotScheduledError) Error() string {
	if e.Target.IsZero() {
		return fmt.Sprintf("reminder not scheduled: %s", e.Reason)
	}
	return fmt.Sprintf("reminder for %s not scheduled: %s", e.Target.Format("15:04"), e.Reason)
}

func (e *NotScheduledError) Unwrap() error { return ErrNotScheduled }

type PlannerOption func(*Planner)

func WithLookahead(d time.Duration) PlannerOption {
	return func(p *Planner) {
		if d > 0 {
			p.lookahead = d
		}
	}
}

func WithPlannerLogger(log *zap.Logger) PlannerOption {
	return func(p *Planner) {
		if log != nil {
			p.log = log
		}
	}
}

// Planner turns "remind me at HH:MM" requests into engine events and hands
// fired events to the platform notifier.
type Planner struct {
	engine    *Engine
	notifier  notify.Notifier
	lookahead time.Duration
	log       *zap.Logger
}

func NewPlanner(engine *Engine, notifier notify.Notifier, opts ...PlannerOption) (*Planner, error) {
	if engine == nil {
		return nil, errors.New("scheduler: nil engine")
	}
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	p := &Planner{
		engine:    engine,
		notifier:  notifier,
		lookahead: DefaultLookahead,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Planner) Lookahead() time.Duration { return p.lookahead }

// ScheduleAt queues message for clock ("HH:MM") on now's day. It only
// schedules when notifications are permitted and the target is later
// today within the lookahead window; otherwise it returns a
// *NotScheduledError.
func (p *Planner) ScheduleAt(ctx context.Context, message, clock string, now time.Time) (model.Reminder, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return model.Reminder{}, &NotScheduledError{Reason: ReasonEmptyMessage}
	}
	hour, minute, err := dates.ParseClock(clock)
	if err != nil {
		return model.Reminder{}, err
	}
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	perm, err := p.notifier.RequestPermission(ctx)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("scheduler: request permission: %w", err)
	}
	if perm != notify.PermissionGranted {
		return model.Reminder{}, &NotScheduledError{Reason: ReasonPermissionDenied, Target: target}
	}

	diff := target.Sub(now)
	switch {
	case diff <= 0:
		return model.Reminder{}, &NotScheduledError{Reason: ReasonNotInFuture, Target: target}
	case diff >= p.lookahead:
		return model.Reminder{}, &NotScheduledError{Reason: ReasonBeyondLookahead, Target: target}
	}

	reminder := model.Reminder{ID: uuid.NewString(), Message: message, TriggerTime: target}
	if err := reminder.Validate(); err != nil {
		return model.Reminder{}, err
	}
	if err := p.engine.Schedule(ReminderEvent{ID: reminder.ID, Message: message, TriggerAt: target.UTC()}); err != nil {
		return model.Reminder{}, err
	}
	p.log.Debug("reminder scheduled", zap.String("id", reminder.ID), zap.Time("at", target))
	return reminder, nil
}

// Deliver sends a fired event to the notifier. Failures are logged and
// returned; nothing is retried.
func (p *Planner) Deliver(ctx context.Context, ev ReminderEvent) error {
	err := p.notifier.Send(ctx, notify.Message{Title: reminderTitle, Body: ev.Message})
	if err != nil {
		p.log.Warn("reminder delivery failed", zap.String("id", ev.ID), zap.Error(err))
		return err
	}
	p.log.Debug("reminder delivered", zap.String("id", ev.ID))
	return nil
}

// Events is the engine's fired-event channel, for callers that deliver
// events themselves instead of calling Run.
func (p *Planner) Events() <-chan ReminderEvent { return p.engine.C() }

// Run delivers fired events until ctx is done or the engine stops.
func (p *Planner) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-p.engine.C():
			if !ok {
				return
			}
			_ = p.Deliver(ctx, ev)
		}
	}
}
