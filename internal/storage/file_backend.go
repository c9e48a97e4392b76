package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sandeepkv93/lifeboost/internal/model"
)

// FileBackend stores the snapshot as one JSON file. Writes land in a
// sibling temp file that is synced and renamed into place, so a crash never
// leaves a truncated snapshot behind.
//
// A snapshot that fails to decode is never overwritten: the first Save
// after such a Load moves it aside to CorruptPath.
type FileBackend struct {
	path string

	mu         sync.Mutex
	unreadable bool
}

func NewFileBackend(path string) (*FileBackend, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("storage: empty snapshot path")
	}
	return &FileBackend{path: trimmed}, nil
}

func (b *FileBackend) Path() string { return b.path }

// CorruptPath is where an undecodable snapshot is kept.
func (b *FileBackend) CorruptPath() string { return b.path + ".corrupt" }

func (b *FileBackend) Close() error { return nil }

func (b *FileBackend) Load(_ context.Context) (model.Record, bool, error) {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Record{}, false, nil
		}
		return model.Record{}, false, failure("read "+b.path, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return model.Record{}, false, nil
	}
	rec, err := DecodeSnapshot(raw)
	if err != nil {
		b.mu.Lock()
		b.unreadable = true
		b.mu.Unlock()
		return model.Record{}, false, err
	}
	return rec, true, nil
}

func (b *FileBackend) Save(_ context.Context, rec model.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	dir := filepath.Dir(b.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return failure("create snapshot dir", err)
		}
	}
	compact, err := EncodeSnapshot(rec)
	if err != nil {
		return err
	}
	var payload bytes.Buffer
	if err := json.Indent(&payload, compact, "", "  "); err != nil {
		return failure("indent snapshot", err)
	}
	payload.WriteByte('\n')

	if b.unreadable {
		if err := os.Rename(b.path, b.CorruptPath()); err != nil && !os.IsNotExist(err) {
			return failure("keep unreadable snapshot", err)
		}
		b.unreadable = false
	}

	tmp := b.path + ".tmp"
	if err := writeSynced(tmp, payload.Bytes()); err != nil {
		_ = os.Remove(tmp)
		return failure("write "+tmp, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		_ = os.Remove(tmp)
		return failure("rename snapshot", err)
	}
	return nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
