package repository

import (
	"context"

	"github.com/dsocial118/SISOC-sub004/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistorialRepository is the append-only audit store. There is deliberately
// no Update/Delete: history rows are immutable.
type HistorialRepository interface {
	Create(ctx context.Context, h *model.HistorialCambio) error
	ListPorEntidad(ctx context.Context, tipoEntidad string, entidadID uuid.UUID, page, limit int) ([]model.HistorialCambio, int64, error)
}

type historialRepo struct{ db *gorm.DB }

func NewHistorialRepository(db *gorm.DB) HistorialRepository { return &historialRepo{db: db} }

func (r *historialRepo) Create(ctx context.Context, h *model.HistorialCambio) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *historialRepo) ListPorEntidad(
	ctx context.Context,
	tipoEntidad string,
	entidadID uuid.UUID,
	page, limit int,
) ([]model.HistorialCambio, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.HistorialCambio{}).
		Where("tipo_entidad = ? AND entidad_id = ?", tipoEntidad, entidadID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.HistorialCambio
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("tipo_entidad = ? AND entidad_id = ?", tipoEntidad, entidadID).
		Order("registrado DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
