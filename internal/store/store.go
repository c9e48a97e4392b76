package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"github.com/sandeepkv93/lifeboost/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("store: not found")
	ErrDuplicateID = errors.New("store: duplicate id")
)

// PersistError reports a mutation that was applied in memory but could not
// be written through to the backend. It unwraps to storage.ErrStorageFailure.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("store: %s applied but not saved: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the UUIDv7 generator used for new entities.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Store owns the snapshot record. Every mutation runs under one mutex and
// is written through to the backend before the call returns.
type Store struct {
	mu      sync.Mutex
	rec     model.Record
	backend storage.Backend
	log     *zap.Logger
	now     func() time.Time
	newID   func() (string, error)
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Open loads the snapshot from backend. A load failure still yields a
// usable store on the default record; the failure is returned alongside
// it so the caller can show a warning.
func Open(ctx context.Context, backend storage.Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("store: nil backend")
	}
	s := &Store{
		backend: backend,
		log:     zap.NewNop(),
		now:     time.Now,
		newID:   newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}

	rec, found, err := backend.Load(ctx)
	switch {
	case err != nil:
		s.log.Warn("snapshot load failed, starting from defaults", zap.Error(err))
		s.rec = model.NewRecord(s.now())
		return s, err
	case !found:
		s.log.Debug("no snapshot stored, starting from defaults")
		s.rec = model.NewRecord(s.now())
	default:
		if rec.Backfill(s.now()) {
			s.log.Debug("backfilled missing snapshot fields")
		}
		s.rec = rec
	}
	return s, nil
}

// Snapshot returns a copy of the current record that later mutations do
// not affect.
func (s *Store) Snapshot() model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

// Save rewrites the current record to the backend without changing it.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, "save")
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// mutate applies fn to a copy of the record and commits the copy only when
// fn succeeds, so a rejected mutation leaves the state untouched.
func (s *Store) mutate(ctx context.Context, op string, fn func(rec *model.Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.rec.Clone()
	if err := fn(&next); err != nil {
		s.log.Debug("mutation rejected", zap.String("op", op), zap.Error(err))
		return err
	}
	s.rec = next
	return s.persist(ctx, op)
}

func (s *Store) persist(ctx context.Context, op string) error {
	if err := s.backend.Save(ctx, s.rec); err != nil {
		s.log.Warn("snapshot write failed, change kept in memory", zap.String("op", op), zap.Error(err))
		return &PersistError{Op: op, Err: err}
	}
	s.log.Debug("snapshot written", zap.String("op", op))
	return nil
}

func (s *Store) generateID(rec *model.Record, kind model.Kind) (string, error) {
	id, err := s.newID()
	if err != nil {
		return "", fmt.Errorf("store: generate id: %w", err)
	}
	for _, live := range rec.LiveIDs(kind) {
		if live == id {
			return "", fmt.Errorf("%w: %s %s", ErrDuplicateID, kind, id)
		}
	}
	return id, nil
}

// IsPersistFailure reports whether err only signals a failed write-through.
func IsPersistFailure(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}
