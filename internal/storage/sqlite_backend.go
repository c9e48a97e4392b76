package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/lifeboost/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteBackend keeps the snapshot as one row keyed by model.SnapshotKey.
type SQLiteBackend struct {
	db  *sql.DB
	key string
	now func() time.Time
}

func NewSQLiteBackend(db *sql.DB) (*SQLiteBackend, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	db.SetMaxOpenConns(1)
	return &SQLiteBackend{db: db, key: model.SnapshotKey, now: time.Now}, nil
}

// OpenSQLite migrates the database at path and opens a backend on it.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if err := MigrateUp(path); err != nil {
		return nil, failure("migrate sqlite", err)
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, failure("open sqlite", err)
	}
	backend, err := NewSQLiteBackend(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return backend, nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) Load(ctx context.Context) (model.Record, bool, error) {
	var payload string
	err := b.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, b.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Record{}, false, nil
		}
		return model.Record{}, false, failure("read snapshot row", err)
	}
	rec, err := DecodeSnapshot([]byte(payload))
	if err != nil {
		return model.Record{}, false, err
	}
	return rec, true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, rec model.Record) error {
	payload, err := EncodeSnapshot(rec)
	if err != nil {
		return err
	}
	_, err = b.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		b.key, string(payload), mustTime(b.now()),
	)
	if err != nil {
		return failure("write snapshot row", err)
	}
	return nil
}

// UpdatedAt returns when the snapshot row was last written.
func (b *SQLiteBackend) UpdatedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := b.db.QueryRowContext(ctx, `SELECT updated_at FROM snapshots WHERE key = ?`, b.key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, failure("read snapshot timestamp", err)
	}
	return parseRequiredTime(raw)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}
