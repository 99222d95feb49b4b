package repository

import (
	"context"

	"github.com/dsocial118/SISOC-sub004/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpedienteRepository interface {
	Create(ctx context.Context, e *model.ExpedientePago) error
	ListPorAdmision(ctx context.Context, admisionID uuid.UUID) ([]model.ExpedientePago, error)
	CreateNota(ctx context.Context, n *model.NotaExpediente) error
	ListNotas(ctx context.Context, expedienteID uuid.UUID) ([]model.NotaExpediente, error)
}

type expedienteRepo struct{ db *gorm.DB }

func NewExpedienteRepository(db *gorm.DB) ExpedienteRepository { return &expedienteRepo{db: db} }

func (r *expedienteRepo) Create(ctx context.Context, e *model.ExpedientePago) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expedienteRepo) ListPorAdmision(ctx context.Context, admisionID uuid.UUID) ([]model.ExpedientePago, error) {
	var expedientes []model.ExpedientePago
	err := r.db.WithContext(ctx).
		Where("admision_id = ?", admisionID).
		Order("created_at ASC").
		Find(&expedientes).Error
	return expedientes, err
}

func (r *expedienteRepo) CreateNota(ctx context.Context, n *model.NotaExpediente) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *expedienteRepo) ListNotas(ctx context.Context, expedienteID uuid.UUID) ([]model.NotaExpediente, error) {
	var notas []model.NotaExpediente
	err := r.db.WithContext(ctx).
		Where("expediente_id = ? AND deleted_at IS NULL", expedienteID).
		Order("created_at ASC").
		Find(&notas).Error
	return notas, err
}
