package repository

import (
	"context"

	"github.com/dsocial118/SISOC-sub004/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComedorRepository interface {
	Create(ctx context.Context, c *model.Comedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comedor, error)
	List(ctx context.Context, busqueda string, page, limit int) ([]model.Comedor, int64, error)
}

type comedorRepo struct{ db *gorm.DB }

func NewComedorRepository(db *gorm.DB) ComedorRepository { return &comedorRepo{db: db} }

func (r *comedorRepo) Create(ctx context.Context, c *model.Comedor) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comedor, error) {
	var c model.Comedor
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&c).Error
	return &c, err
}

func (r *comedorRepo) List(ctx context.Context, busqueda string, page, limit int) ([]model.Comedor, int64, error) {
	var comedores []model.Comedor
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Comedor{}).Where("deleted_at IS NULL")
	if busqueda != "" {
		q = q.Where("nombre ILIKE ?", "%"+busqueda+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}
	err := q.Order("nombre ASC").Limit(limit).Offset((page - 1) * limit).Find(&comedores).Error
	return comedores, total, err
}
