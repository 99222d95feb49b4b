package softdelete

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store abstracts the row operations the executor needs, so the cascade
// semantics stay testable against an in-memory double the way services are
// tested against in-memory repositories.
type Store interface {
	// Transaction runs fn atomically; any error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	// HardDelete removes the row physically. A row already gone returns
	// (false, nil): concurrent deletion is tolerated.
	HardDelete(ctx context.Context, info *TypeInfo, id uuid.UUID) (bool, error)
	// SoftFlip marks alive rows of one type as deleted and returns the ids
	// actually flipped (rows deleted concurrently are simply not returned).
	SoftFlip(ctx context.Context, info *TypeInfo, ids []uuid.UUID, at time.Time, por *uuid.UUID) ([]uuid.UUID, error)
	// Unflip restores soft-deleted rows and returns the ids actually flipped.
	Unflip(ctx context.Context, info *TypeInfo, ids []uuid.UUID) ([]uuid.UUID, error)
}

// GormStore is the production Store over a gorm connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) HardDelete(ctx context.Context, info *TypeInfo, id uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).Exec("DELETE FROM "+info.Tabla+" WHERE id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) SoftFlip(ctx context.Context, info *TypeInfo, ids []uuid.UUID, at time.Time, por *uuid.UUID) ([]uuid.UUID, error) {
	var flipped []uuid.UUID
	err := s.db.WithContext(ctx).Raw(
		"UPDATE "+info.Tabla+" SET deleted_at = ?, deleted_by_id = ? WHERE id IN ? AND deleted_at IS NULL RETURNING id",
		at, por, ids,
	).Scan(&flipped).Error
	return flipped, err
}

func (s *GormStore) Unflip(ctx context.Context, info *TypeInfo, ids []uuid.UUID) ([]uuid.UUID, error) {
	var flipped []uuid.UUID
	err := s.db.WithContext(ctx).Raw(
		"UPDATE "+info.Tabla+" SET deleted_at = NULL, deleted_by_id = NULL WHERE id IN ? AND deleted_at IS NOT NULL RETURNING id",
		ids,
	).Scan(&flipped).Error
	return flipped, err
}
