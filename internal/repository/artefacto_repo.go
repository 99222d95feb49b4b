package repository

import (
	"context"

	"github.com/dsocial118/SISOC-sub004/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArtefactoRepository interface {
	// Upsert replaces the artifact of an admission in place: unique per
	// admision, so re-validation never duplicates.
	Upsert(ctx context.Context, a *model.ArtefactoInforme) error
	FindPorAdmision(ctx context.Context, admisionID uuid.UUID) (*model.ArtefactoInforme, error)
}

type artefactoRepo struct{ db *gorm.DB }

func NewArtefactoRepository(db *gorm.DB) ArtefactoRepository { return &artefactoRepo{db: db} }

func (r *artefactoRepo) Upsert(ctx context.Context, a *model.ArtefactoInforme) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "admision_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"informe_id", "variante", "pdf_path", "docx_path", "updated_at",
				"deleted_at", "deleted_by_id",
			}),
		}).
		Create(a).Error
}

func (r *artefactoRepo) FindPorAdmision(ctx context.Context, admisionID uuid.UUID) (*model.ArtefactoInforme, error) {
	var a model.ArtefactoInforme
	err := r.db.WithContext(ctx).
		Where("admision_id = ? AND deleted_at IS NULL", admisionID).
		First(&a).Error
	return &a, err
}
