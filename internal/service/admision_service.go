package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/model"
	"github.com/dsocial118/SISOC-sub004/internal/repository"
	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// nombreTipoConvenio is the catalog name of the signed-agreement document.
// When the lawyer accepts it, the admission pins it via DocumentoConvenioID
// and the cascade engine keeps that row out of any soft deletion.
const nombreTipoConvenio = "Convenio firmado"

type AdmisionService interface {
	Crear(ctx context.Context, actor *uuid.UUID, req dto.CrearAdmisionRequest) (*dto.AdmisionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.AdmisionResponse, error)
	Listar(ctx context.Context, filter dto.AdmisionFilter) (*dto.AdmisionListResponse, error)
	Eliminar(ctx context.Context, actor *uuid.UUID, id uuid.UUID) (*dto.EliminacionResponse, error)

	AdjuntarDocumento(ctx context.Context, actor *uuid.UUID, admisionID uuid.UUID, req dto.AdjuntarDocumentoRequest) (*dto.DocumentoResponse, error)
	EliminarDocumento(ctx context.Context, actor *uuid.UUID, admisionID, docID uuid.UUID) error
	ActualizarEstadoDocumento(ctx context.Context, actor *uuid.UUID, rolActor string, docID uuid.UUID, req dto.ActualizarEstadoDocumentoRequest) (*dto.DocumentoResponse, error)
	ListarTiposDocumento(ctx context.Context) ([]dto.TipoDocumentoResponse, error)
}

type admisionService struct {
	repo        repository.AdmisionRepository
	comedorRepo repository.ComedorRepository
	engine      *softdelete.Engine
	recorder    *audit.Recorder
}

func NewAdmisionService(
	repo repository.AdmisionRepository,
	comedorRepo repository.ComedorRepository,
	engine *softdelete.Engine,
	recorder *audit.Recorder,
) AdmisionService {
	return &admisionService{
		repo:        repo,
		comedorRepo: comedorRepo,
		engine:      engine,
		recorder:    recorder,
	}
}

// Crear opens a new admission in estado borrador and seeds one placeholder
// document per catalog entry, so the operator sees the full checklist from
// day one.
func (s *admisionService) Crear(ctx context.Context, actor *uuid.UUID, req dto.CrearAdmisionRequest) (*dto.AdmisionResponse, error) {
	comedorID, err := uuid.Parse(req.ComedorID)
	if err != nil {
		return nil, fmt.Errorf("%w: comedor_id invalido", ErrValidacion)
	}
	if _, err := s.comedorRepo.FindByID(ctx, comedorID); err != nil {
		return nil, fmt.Errorf("%w: comedor %s", ErrNoEncontrado, req.ComedorID)
	}

	a := &model.Admision{
		ComedorID:    comedorID,
		TipoConvenio: req.TipoConvenio,
		Estado:       model.AdmisionBorrador,
		CreadoPorID:  actor,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.recorder.Creacion(ctx, actor, model.TipoAdmision, a.ID, audit.Snapshot(a))

	tipos, err := s.repo.ListTiposDocumento(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tipos {
		doc := &model.DocumentoAdmision{
			AdmisionID: a.ID,
			TipoID:     &tipos[i].ID,
			Estado:     model.DocumentoNoPresentado,
		}
		if err := s.repo.CreateDocumento(ctx, doc); err != nil {
			return nil, err
		}
		s.recorder.Creacion(ctx, actor, model.TipoDocumentoAdmision, doc.ID, audit.Snapshot(doc))
	}

	return s.Obtener(ctx, a.ID)
}

func (s *admisionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.AdmisionResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	docs, err := s.repo.ListDocumentos(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := admisionToResponse(a)
	resp.Documentos = make([]dto.DocumentoResponse, 0, len(docs))
	for i := range docs {
		resp.Documentos = append(resp.Documentos, documentoToResponse(&docs[i]))
	}
	return &resp, nil
}

func (s *admisionService) Listar(ctx context.Context, filter dto.AdmisionFilter) (*dto.AdmisionListResponse, error) {
	admisiones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdmisionResponse, 0, len(admisiones))
	for i := range admisiones {
		out = append(out, admisionToResponse(&admisiones[i]))
	}
	return &dto.AdmisionListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Eliminar soft-deletes the admission and everything it owns through the
// cascade engine. The pinned convenio document survives; audit rows for
// every flipped descendant arrive via the signal bus.
func (s *admisionService) Eliminar(ctx context.Context, actor *uuid.UUID, id uuid.UUID) (*dto.EliminacionResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	total, porTipo, err := s.engine.Baja(ctx, a, actor, true)
	if err != nil {
		return nil, err
	}
	return &dto.EliminacionResponse{Total: total, PorTipo: porTipo}, nil
}

// AdjuntarDocumento attaches a file. Predefined kinds reuse their placeholder
// row; one alive file per (admision, tipo). Ad-hoc names create a fresh row
// each time.
func (s *admisionService) AdjuntarDocumento(ctx context.Context, actor *uuid.UUID, admisionID uuid.UUID, req dto.AdjuntarDocumentoRequest) (*dto.DocumentoResponse, error) {
	if (req.TipoID == nil) == (req.NombrePersonalizado == nil) {
		return nil, fmt.Errorf("%w: exactamente uno de tipo_id / nombre_personalizado", ErrValidacion)
	}

	a, err := s.repo.FindByID(ctx, admisionID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if !a.Mutable() {
		return nil, fmt.Errorf("%w: la admision esta cerrada", ErrEstadoInvalido)
	}

	var doc *model.DocumentoAdmision
	if req.TipoID != nil {
		tipoID, err := uuid.Parse(*req.TipoID)
		if err != nil {
			return nil, fmt.Errorf("%w: tipo_id invalido", ErrValidacion)
		}
		if _, err := s.repo.FindTipoDocumento(ctx, tipoID); err != nil {
			return nil, fmt.Errorf("%w: tipo de documento %s", ErrNoEncontrado, *req.TipoID)
		}

		existente, err := s.repo.FindDocumentoPorTipo(ctx, admisionID, tipoID)
		switch {
		case err == nil:
			if existente.Inmutable() {
				return nil, fmt.Errorf("%w: el documento ya no admite cambios", ErrEstadoInvalido)
			}
			if existente.ArchivoPath != nil && existente.Estado != model.DocumentoASubsanar {
				return nil, ErrDocumentoDuplicado
			}
			doc = existente
		case errors.Is(err, gorm.ErrRecordNotFound):
			doc = &model.DocumentoAdmision{AdmisionID: admisionID, TipoID: &tipoID}
			if err := s.repo.CreateDocumento(ctx, doc); err != nil {
				return nil, err
			}
			s.recorder.Creacion(ctx, actor, model.TipoDocumentoAdmision, doc.ID, audit.Snapshot(doc))
		default:
			return nil, err
		}
	} else {
		doc = &model.DocumentoAdmision{AdmisionID: admisionID, NombrePersonalizado: req.NombrePersonalizado}
		if err := s.repo.CreateDocumento(ctx, doc); err != nil {
			return nil, err
		}
		s.recorder.Creacion(ctx, actor, model.TipoDocumentoAdmision, doc.ID, audit.Snapshot(doc))
	}

	antes := audit.Snapshot(doc)
	doc.ArchivoPath = &req.ArchivoPath
	doc.Estado = model.DocumentoEnAnalisis
	if err := s.repo.UpdateDocumento(ctx, doc); err != nil {
		return nil, err
	}
	s.recorder.Actualizacion(ctx, actor, model.TipoDocumentoAdmision, doc.ID, antes, audit.Snapshot(doc))

	if a.Estado == model.AdmisionBorrador {
		antesAdm := audit.Snapshot(a)
		a.Estado = model.AdmisionEnDocumentos
		a.ModificadoPorID = actor
		if err := s.repo.Update(ctx, a); err != nil {
			return nil, err
		}
		s.recorder.Actualizacion(ctx, actor, model.TipoAdmision, a.ID, antesAdm, audit.Snapshot(a))
	}

	resp := documentoToResponse(doc)
	return &resp, nil
}

// EliminarDocumento detaches a file. Predefined kinds keep their checklist
// row and fall back to no_presentado; ad-hoc rows are soft-deleted.
func (s *admisionService) EliminarDocumento(ctx context.Context, actor *uuid.UUID, admisionID, docID uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, admisionID)
	if err != nil {
		return ErrNoEncontrado
	}
	if !a.Mutable() {
		return fmt.Errorf("%w: la admision esta cerrada", ErrEstadoInvalido)
	}

	doc, err := s.repo.FindDocumentoByID(ctx, docID)
	if err != nil || doc.AdmisionID != admisionID {
		return ErrNoEncontrado
	}
	if doc.Inmutable() {
		return fmt.Errorf("%w: el documento ya no admite cambios", ErrEstadoInvalido)
	}
	if a.DocumentoConvenioID != nil && *a.DocumentoConvenioID == doc.ID {
		return fmt.Errorf("%w: el convenio aceptado no puede eliminarse", ErrEstadoInvalido)
	}

	if doc.TipoID != nil {
		antes := audit.Snapshot(doc)
		doc.ArchivoPath = nil
		doc.Estado = model.DocumentoNoPresentado
		doc.Observaciones = nil
		if err := s.repo.UpdateDocumento(ctx, doc); err != nil {
			return err
		}
		s.recorder.Actualizacion(ctx, actor, model.TipoDocumentoAdmision, doc.ID, antes, audit.Snapshot(doc))
		return nil
	}

	_, _, err = s.engine.Baja(ctx, doc, actor, false)
	return err
}

// docTransiciones maps estado → allowed next estados with the roles that may
// drive each edge.
var docTransiciones = map[string]map[string][]string{
	model.DocumentoEnAnalisis: {
		model.DocumentoASubsanar: {model.RolRevisor, model.RolAdministrador},
		model.DocumentoValidado:  {model.RolRevisor, model.RolAdministrador},
		model.DocumentoAceptado:  {model.RolAbogado, model.RolAdministrador},
	},
	model.DocumentoValidado: {
		model.DocumentoAValidarAbogado: {model.RolRevisor, model.RolAdministrador},
		model.DocumentoAceptado:        {model.RolAbogado, model.RolAdministrador},
	},
	model.DocumentoAValidarAbogado: {
		model.DocumentoAceptado:  {model.RolAbogado, model.RolAdministrador},
		model.DocumentoASubsanar: {model.RolAbogado, model.RolAdministrador},
	},
}

func (s *admisionService) ActualizarEstadoDocumento(ctx context.Context, actor *uuid.UUID, rolActor string, docID uuid.UUID, req dto.ActualizarEstadoDocumentoRequest) (*dto.DocumentoResponse, error) {
	doc, err := s.repo.FindDocumentoByID(ctx, docID)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	roles, ok := docTransiciones[doc.Estado][req.Estado]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrEstadoInvalido, doc.Estado, req.Estado)
	}
	if !contiene(roles, rolActor) {
		return nil, fmt.Errorf("%w: rol %s no puede aplicar %s", ErrPermisoDenegado, rolActor, req.Estado)
	}
	if req.Estado == model.DocumentoASubsanar && (req.Observaciones == nil || *req.Observaciones == "") {
		return nil, fmt.Errorf("%w: a_subsanar requiere observaciones", ErrValidacion)
	}

	antes := audit.Snapshot(doc)
	doc.Estado = req.Estado
	doc.Observaciones = req.Observaciones
	if err := s.repo.UpdateDocumento(ctx, doc); err != nil {
		return nil, err
	}
	s.recorder.Actualizacion(ctx, actor, model.TipoDocumentoAdmision, doc.ID, antes, audit.Snapshot(doc))

	// Accepting the signed convenio pins it against future cascades.
	if req.Estado == model.DocumentoAceptado && doc.TipoID != nil {
		if tipo, err := s.repo.FindTipoDocumento(ctx, *doc.TipoID); err == nil && tipo.Nombre == nombreTipoConvenio {
			if a, err := s.repo.FindByID(ctx, doc.AdmisionID); err == nil && a.DocumentoConvenioID == nil {
				antesAdm := audit.Snapshot(a)
				a.DocumentoConvenioID = &doc.ID
				a.ModificadoPorID = actor
				if err := s.repo.Update(ctx, a); err != nil {
					return nil, err
				}
				s.recorder.Actualizacion(ctx, actor, model.TipoAdmision, a.ID, antesAdm, audit.Snapshot(a))
			}
		}
	}

	resp := documentoToResponse(doc)
	return &resp, nil
}

func (s *admisionService) ListarTiposDocumento(ctx context.Context) ([]dto.TipoDocumentoResponse, error) {
	tipos, err := s.repo.ListTiposDocumento(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TipoDocumentoResponse, 0, len(tipos))
	for i := range tipos {
		out = append(out, dto.TipoDocumentoResponse{
			ID:          tipos[i].ID.String(),
			Nombre:      tipos[i].Nombre,
			Obligatorio: tipos[i].Obligatorio,
		})
	}
	return out, nil
}

func contiene(roles []string, rol string) bool {
	for _, r := range roles {
		if r == rol {
			return true
		}
	}
	return false
}

func admisionToResponse(a *model.Admision) dto.AdmisionResponse {
	resp := dto.AdmisionResponse{
		ID:           a.ID.String(),
		ComedorID:    a.ComedorID.String(),
		TipoConvenio: a.TipoConvenio,
		Estado:       a.Estado,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.Comedor != nil {
		resp.Comedor = a.Comedor.Nombre
	}
	if a.DocumentoConvenioID != nil {
		id := a.DocumentoConvenioID.String()
		resp.DocumentoConvenioID = &id
	}
	return resp
}

func documentoToResponse(d *model.DocumentoAdmision) dto.DocumentoResponse {
	resp := dto.DocumentoResponse{
		ID:                  d.ID.String(),
		AdmisionID:          d.AdmisionID.String(),
		NombrePersonalizado: d.NombrePersonalizado,
		ArchivoPath:         d.ArchivoPath,
		Estado:              d.Estado,
		Observaciones:       d.Observaciones,
		UpdatedAt:           d.UpdatedAt.Format(time.RFC3339),
	}
	if d.TipoID != nil {
		id := d.TipoID.String()
		resp.TipoID = &id
	}
	if d.Tipo != nil {
		resp.Tipo = &d.Tipo.Nombre
	}
	return resp
}
