package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/lifeboost/internal/model"
)

// ErrStorageFailure marks every read, write or decode failure of a backend.
var ErrStorageFailure = errors.New("storage: failure")

// Backend persists the single snapshot record. Load reports found=false
// when nothing has been stored yet.
type Backend interface {
	Load(ctx context.Context) (rec model.Record, found bool, err error)
	Save(ctx context.Context, rec model.Record) error
	Close() error
}

// EncodeSnapshot serializes rec in the persisted snapshot shape.
func EncodeSnapshot(rec model.Record) ([]byte, error) {
	out, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: encode snapshot: %w", ErrStorageFailure, err)
	}
	return out, nil
}

// DecodeSnapshot parses a stored snapshot. Missing fields are left empty;
// the store backfills them.
func DecodeSnapshot(raw []byte) (model.Record, error) {
	var rec model.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.Record{}, fmt.Errorf("%w: corrupt snapshot: %w", ErrStorageFailure, err)
	}
	return rec, nil
}

func failure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, err)
}
