package repository

import (
	"context"

	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdmisionRepository is the data access contract for admissions and their
// documents. The default finders return only alive rows; the *Todas variants
// bypass the soft-delete filter (base manager view).
type AdmisionRepository interface {
	Create(ctx context.Context, a *model.Admision) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Admision, error)
	FindByIDTodas(ctx context.Context, id uuid.UUID) (*model.Admision, error)
	List(ctx context.Context, filter dto.AdmisionFilter) ([]model.Admision, int64, error)
	Update(ctx context.Context, a *model.Admision) error

	// Documentos
	CreateDocumento(ctx context.Context, d *model.DocumentoAdmision) error
	FindDocumentoByID(ctx context.Context, id uuid.UUID) (*model.DocumentoAdmision, error)
	FindDocumentoPorTipo(ctx context.Context, admisionID, tipoID uuid.UUID) (*model.DocumentoAdmision, error)
	ListDocumentos(ctx context.Context, admisionID uuid.UUID) ([]model.DocumentoAdmision, error)
	UpdateDocumento(ctx context.Context, d *model.DocumentoAdmision) error

	// Catalogo de tipos
	FindTipoDocumento(ctx context.Context, id uuid.UUID) (*model.TipoDocumento, error)
	ListTiposDocumento(ctx context.Context) ([]model.TipoDocumento, error)

	// Anexo
	FindAnexo(ctx context.Context, admisionID uuid.UUID) (*model.Anexo, error)
}

type admisionRepo struct{ db *gorm.DB }

func NewAdmisionRepository(db *gorm.DB) AdmisionRepository { return &admisionRepo{db: db} }

func (r *admisionRepo) Create(ctx context.Context, a *model.Admision) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *admisionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Admision, error) {
	var a model.Admision
	err := r.db.WithContext(ctx).
		Preload("Comedor").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&a).Error
	return &a, err
}

func (r *admisionRepo) FindByIDTodas(ctx context.Context, id uuid.UUID) (*model.Admision, error) {
	var a model.Admision
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *admisionRepo) List(ctx context.Context, filter dto.AdmisionFilter) ([]model.Admision, int64, error) {
	var admisiones []model.Admision
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Admision{}).Where("deleted_at IS NULL")
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ComedorID != "" {
		q = q.Where("comedor_id = ?", filter.ComedorID)
	}
	if filter.TipoConvenio != "" {
		q = q.Where("tipo_convenio = ?", filter.TipoConvenio)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).
		Preload("Comedor").Find(&admisiones).Error
	return admisiones, total, err
}

func (r *admisionRepo) Update(ctx context.Context, a *model.Admision) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *admisionRepo) CreateDocumento(ctx context.Context, d *model.DocumentoAdmision) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *admisionRepo) FindDocumentoByID(ctx context.Context, id uuid.UUID) (*model.DocumentoAdmision, error) {
	var d model.DocumentoAdmision
	err := r.db.WithContext(ctx).
		Preload("Tipo").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&d).Error
	return &d, err
}

// FindDocumentoPorTipo enforces the "at most one alive document per
// predefined kind" invariant: it returns the existing alive row, if any.
func (r *admisionRepo) FindDocumentoPorTipo(ctx context.Context, admisionID, tipoID uuid.UUID) (*model.DocumentoAdmision, error) {
	var d model.DocumentoAdmision
	err := r.db.WithContext(ctx).
		Where("admision_id = ? AND tipo_id = ? AND deleted_at IS NULL", admisionID, tipoID).
		First(&d).Error
	return &d, err
}

func (r *admisionRepo) ListDocumentos(ctx context.Context, admisionID uuid.UUID) ([]model.DocumentoAdmision, error) {
	var docs []model.DocumentoAdmision
	err := r.db.WithContext(ctx).
		Preload("Tipo").
		Where("admision_id = ? AND deleted_at IS NULL", admisionID).
		Order("created_at ASC").
		Find(&docs).Error
	return docs, err
}

func (r *admisionRepo) UpdateDocumento(ctx context.Context, d *model.DocumentoAdmision) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *admisionRepo) FindTipoDocumento(ctx context.Context, id uuid.UUID) (*model.TipoDocumento, error) {
	var t model.TipoDocumento
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *admisionRepo) ListTiposDocumento(ctx context.Context) ([]model.TipoDocumento, error) {
	var tipos []model.TipoDocumento
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&tipos).Error
	return tipos, err
}

func (r *admisionRepo) FindAnexo(ctx context.Context, admisionID uuid.UUID) (*model.Anexo, error) {
	var a model.Anexo
	err := r.db.WithContext(ctx).
		Where("admision_id = ? AND deleted_at IS NULL", admisionID).
		First(&a).Error
	return &a, err
}
