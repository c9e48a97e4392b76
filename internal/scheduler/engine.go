package scheduler

import (
	"cmp"
	"container/heap"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// ReminderEvent is one pending alert. Events only carry text; firing one
// never touches the record store.
type ReminderEvent struct {
	ID        string
	Message   string
	TriggerAt time.Time
}

// slot is a queued event. seq keeps events with equal trigger times in
// the order they were scheduled; index is the slot's heap position.
type slot struct {
	ev    ReminderEvent
	seq   uint64
	index int
}

type timeline []*slot

func (t timeline) Len() int { return len(t) }

func (t timeline) Less(i, j int) bool {
	if c := t[i].ev.TriggerAt.Compare(t[j].ev.TriggerAt); c != 0 {
		return c < 0
	}
	return t[i].seq < t[j].seq
}

func (t timeline) Swap(i, j int) {
	t[i], t[j] = t[j], t[i]
	t[i].index = i
	t[j].index = j
}

func (t *timeline) Push(x any) {
	s := x.(*slot)
	s.index = len(*t)
	*t = append(*t, s)
}

func (t *timeline) Pop() any {
	old := *t
	n := len(old)
	s := old[n-1]
	old[n-1] = nil
	s.index = -1
	*t = old[:n-1]
	return s
}

type engineState int

const (
	engineIdle engineState = iota
	engineRunning
	engineStopped
)

type EngineOption func(*Engine)

// WithEngineClock sets the clock used to decide which events are due.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine fires scheduled events on C at their trigger time. Events can be
// queued before Start. Delivery never blocks: with a full buffer the event
// is dropped and counted.
type Engine struct {
	mu      sync.Mutex
	line    timeline
	seq     uint64
	state   engineState
	now     func() time.Time
	out     chan ReminderEvent
	wake    chan struct{}
	quit    chan struct{}
	done    chan struct{}
	dropped atomic.Uint64
}

func NewEngine(bufferSize int, opts ...EngineOption) *Engine {
	e := &Engine{
		now:  time.Now,
		out:  make(chan ReminderEvent, max(bufferSize, 1)),
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// C delivers fired events. It is closed once the engine stops.
func (e *Engine) C() <-chan ReminderEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != engineIdle {
		return
	}
	e.state = engineRunning
	go e.run()
}

// Stop ends the dispatch loop, closes C and waits for the loop to exit.
// Anything still queued is discarded. Stop on an engine that never
// started does nothing.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state != engineRunning {
		e.mu.Unlock()
		return
	}
	e.state = engineStopped
	close(e.quit)
	e.mu.Unlock()
	<-e.done
}

func (e *Engine) Schedule(ev ReminderEvent) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == engineStopped {
		return ErrStopped
	}
	e.seq++
	heap.Push(&e.line, &slot{ev: ev, seq: e.seq})
	e.nudge()
	return nil
}

// Cancel removes the earliest queued event with id and reports whether
// one was found.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	var hit *slot
	for _, s := range e.line {
		if s.ev.ID == id && (hit == nil || e.line.Less(s.index, hit.index)) {
			hit = s
		}
	}
	if hit == nil {
		return false
	}
	heap.Remove(&e.line, hit.index)
	e.nudge()
	return true
}

// Pending returns the queued events in firing order.
func (e *Engine) Pending() []ReminderEvent {
	e.mu.Lock()
	slots := slices.Clone(e.line)
	e.mu.Unlock()

	slices.SortFunc(slots, func(a, b *slot) int {
		if c := a.ev.TriggerAt.Compare(b.ev.TriggerAt); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]ReminderEvent, len(slots))
	for i, s := range slots {
		out[i] = s.ev
	}
	return out
}

// Dropped counts events discarded because the consumer was not keeping up.
func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.out)

	timer := time.NewTimer(0)
	timer.Stop()
	defer timer.Stop()

	for {
		var fire <-chan time.Time
		if wait, ok := e.untilNext(); ok {
			timer.Reset(wait)
			fire = timer.C
		} else {
			timer.Stop()
		}

		select {
		case <-fire:
			for _, ev := range e.takeDue() {
				select {
				case e.out <- ev:
				default:
					e.dropped.Add(1)
				}
			}
		case <-e.wake:
		case <-e.quit:
			return
		}
	}
}

// nudge wakes the loop so it re-reads the head of the queue. Callers hold
// e.mu.
func (e *Engine) nudge() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) untilNext() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.line) == 0 {
		return 0, false
	}
	return max(e.line[0].ev.TriggerAt.Sub(e.now()), 0), true
}

func (e *Engine) takeDue() []ReminderEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	var due []ReminderEvent
	for len(e.line) > 0 && !e.line[0].ev.TriggerAt.After(now) {
		due = append(due, heap.Pop(&e.line).(*slot).ev)
	}
	return due
}
