package repository

import (
	"context"

	"github.com/dsocial118/SISOC-sub004/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InformeRepository covers informes, their transient review annotations and
// the complementarios.
type InformeRepository interface {
	Create(ctx context.Context, i *model.InformeTecnico) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InformeTecnico, error)
	FindPorVariante(ctx context.Context, admisionID uuid.UUID, variante string) (*model.InformeTecnico, error)
	Update(ctx context.Context, i *model.InformeTecnico) error

	// Anotaciones transitorias de revision. Clear* son borrados fisicos:
	// estas filas no llevan sobre de baja logica.
	CreateCampos(ctx context.Context, campos []model.CampoASubsanar) error
	ListCampos(ctx context.Context, informeID uuid.UUID) ([]model.CampoASubsanar, error)
	ClearCampos(ctx context.Context, informeID uuid.UUID) error
	UpsertObservacion(ctx context.Context, o *model.ObservacionRevision) error
	ListObservaciones(ctx context.Context, informeID uuid.UUID) ([]model.ObservacionRevision, error)
	ClearObservaciones(ctx context.Context, informeID uuid.UUID) error

	// Complementarios
	CreateComplementario(ctx context.Context, c *model.InformeComplementario) error
	FindComplementario(ctx context.Context, id uuid.UUID) (*model.InformeComplementario, error)
	UpdateComplementario(ctx context.Context, c *model.InformeComplementario) error

	// Informes validados sin artefacto: alimenta el reintento de render.
	ListValidadosSinArtefacto(ctx context.Context, limit int) ([]model.InformeTecnico, error)
}

type informeRepo struct{ db *gorm.DB }

func NewInformeRepository(db *gorm.DB) InformeRepository { return &informeRepo{db: db} }

func (r *informeRepo) Create(ctx context.Context, i *model.InformeTecnico) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *informeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InformeTecnico, error) {
	var i model.InformeTecnico
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&i).Error
	return &i, err
}

// FindPorVariante resolves the single alive informe of one variant, which is
// what keeps "at most one active informe per (admision, variante)" true.
func (r *informeRepo) FindPorVariante(ctx context.Context, admisionID uuid.UUID, variante string) (*model.InformeTecnico, error) {
	var i model.InformeTecnico
	err := r.db.WithContext(ctx).
		Where("admision_id = ? AND variante = ? AND deleted_at IS NULL", admisionID, variante).
		First(&i).Error
	return &i, err
}

func (r *informeRepo) Update(ctx context.Context, i *model.InformeTecnico) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *informeRepo) CreateCampos(ctx context.Context, campos []model.CampoASubsanar) error {
	if len(campos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&campos).Error
}

func (r *informeRepo) ListCampos(ctx context.Context, informeID uuid.UUID) ([]model.CampoASubsanar, error) {
	var campos []model.CampoASubsanar
	err := r.db.WithContext(ctx).
		Where("informe_id = ?", informeID).
		Order("created_at ASC").
		Find(&campos).Error
	return campos, err
}

func (r *informeRepo) ClearCampos(ctx context.Context, informeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("informe_id = ?", informeID).
		Delete(&model.CampoASubsanar{}).Error
}

func (r *informeRepo) UpsertObservacion(ctx context.Context, o *model.ObservacionRevision) error {
	var existente model.ObservacionRevision
	err := r.db.WithContext(ctx).Where("informe_id = ?", o.InformeID).First(&existente).Error
	if err == nil {
		existente.Texto = o.Texto
		existente.RevisorID = o.RevisorID
		*o = existente
		return r.db.WithContext(ctx).Save(&existente).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *informeRepo) ListObservaciones(ctx context.Context, informeID uuid.UUID) ([]model.ObservacionRevision, error) {
	var obs []model.ObservacionRevision
	err := r.db.WithContext(ctx).Where("informe_id = ?", informeID).Find(&obs).Error
	return obs, err
}

func (r *informeRepo) ClearObservaciones(ctx context.Context, informeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("informe_id = ?", informeID).
		Delete(&model.ObservacionRevision{}).Error
}

func (r *informeRepo) CreateComplementario(ctx context.Context, c *model.InformeComplementario) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *informeRepo) FindComplementario(ctx context.Context, id uuid.UUID) (*model.InformeComplementario, error) {
	var c model.InformeComplementario
	err := r.db.WithContext(ctx).
		Preload("Respuestas").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&c).Error
	return &c, err
}

func (r *informeRepo) UpdateComplementario(ctx context.Context, c *model.InformeComplementario) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *informeRepo) ListValidadosSinArtefacto(ctx context.Context, limit int) ([]model.InformeTecnico, error) {
	var informes []model.InformeTecnico
	err := r.db.WithContext(ctx).
		Where("estado = ? AND deleted_at IS NULL", model.InformeValidado).
		Where("NOT EXISTS (SELECT 1 FROM artefactos_informe a WHERE a.informe_id = informes_tecnicos.id AND a.deleted_at IS NULL)").
		Limit(limit).
		Find(&informes).Error
	return informes, err
}
