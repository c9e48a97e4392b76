package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/sandeepkv93/lifeboost/internal/dates"
	"github.com/sandeepkv93/lifeboost/internal/model"
	"go.uber.org/zap"
)

// MoveToTrash soft-deletes the entity with id from the collection of kind.
// An id that is not live in that collection is ErrNotFound and nothing is
// added to the trash.
func (s *Store) MoveToTrash(ctx context.Context, kind model.Kind, id string) (model.TrashItem, error) {
	var item model.TrashItem
	err := s.mutate(ctx, "trash "+string(kind), func(rec *model.Record) error {
		e, err := takeEntity(rec, kind, id)
		if err != nil {
			return err
		}
		item = model.TrashItem{Kind: kind, Entity: e, DeletedAt: dates.FormatTimestamp(s.now())}
		rec.Trash = slices.Insert(rec.Trash, 0, item)
		return nil
	})
	if err == nil || IsPersistFailure(err) {
		s.log.Debug("moved to trash", zap.String("kind", string(kind)), zap.String("id", id))
	}
	return item, err
}

// RestoreFromTrash moves the first trash entry wrapping id back to the end
// of its origin collection.
func (s *Store) RestoreFromTrash(ctx context.Context, id string) (model.TrashItem, error) {
	var item model.TrashItem
	err := s.mutate(ctx, "restore", func(rec *model.Record) error {
		i, err := trashIndex(rec, id)
		if err != nil {
			return err
		}
		item = rec.Trash[i]
		if slices.Contains(rec.LiveIDs(item.Kind), id) {
			return fmt.Errorf("%w: %s %q is already live", ErrDuplicateID, item.Kind, id)
		}
		if err := appendEntity(rec, item.Kind, item.Entity); err != nil {
			return err
		}
		rec.Trash = slices.Delete(rec.Trash, i, i+1)
		return nil
	})
	return item, err
}

// DeletePermanently erases the first trash entry wrapping id.
func (s *Store) DeletePermanently(ctx context.Context, id string) (model.TrashItem, error) {
	var item model.TrashItem
	err := s.mutate(ctx, "purge", func(rec *model.Record) error {
		i, err := trashIndex(rec, id)
		if err != nil {
			return err
		}
		item = rec.Trash[i]
		rec.Trash = slices.Delete(rec.Trash, i, i+1)
		return nil
	})
	return item, err
}

// EmptyTrash erases every trash entry and reports how many there were.
func (s *Store) EmptyTrash(ctx context.Context) (int, error) {
	var n int
	err := s.mutate(ctx, "empty trash", func(rec *model.Record) error {
		n = len(rec.Trash)
		rec.Trash = []model.TrashItem{}
		return nil
	})
	return n, err
}

func trashIndex(rec *model.Record, id string) (int, error) {
	i := slices.IndexFunc(rec.Trash, func(t model.TrashItem) bool { return t.EntityID() == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: trash entry %q", ErrNotFound, id)
	}
	return i, nil
}
