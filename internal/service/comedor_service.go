package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/model"
	"github.com/dsocial118/SISOC-sub004/internal/repository"
)

type ComedorService interface {
	Crear(ctx context.Context, actor *uuid.UUID, req dto.CrearComedorRequest) (*dto.ComedorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ComedorResponse, error)
	Listar(ctx context.Context, filter dto.ComedorFilter) (*dto.ComedorListResponse, error)
}

type comedorService struct {
	repo     repository.ComedorRepository
	recorder *audit.Recorder
}

func NewComedorService(repo repository.ComedorRepository, recorder *audit.Recorder) ComedorService {
	return &comedorService{repo: repo, recorder: recorder}
}

func (s *comedorService) Crear(ctx context.Context, actor *uuid.UUID, req dto.CrearComedorRequest) (*dto.ComedorResponse, error) {
	c := &model.Comedor{
		Nombre:    req.Nombre,
		Localidad: req.Localidad,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.recorder.Creacion(ctx, actor, model.TipoComedor, c.ID, audit.Snapshot(c))

	resp := comedorToResponse(c)
	return &resp, nil
}

func (s *comedorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ComedorResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	resp := comedorToResponse(c)
	return &resp, nil
}

func (s *comedorService) Listar(ctx context.Context, filter dto.ComedorFilter) (*dto.ComedorListResponse, error) {
	comedores, total, err := s.repo.List(ctx, filter.Busqueda, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ComedorResponse, 0, len(comedores))
	for i := range comedores {
		out = append(out, comedorToResponse(&comedores[i]))
	}
	return &dto.ComedorListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func comedorToResponse(c *model.Comedor) dto.ComedorResponse {
	return dto.ComedorResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Localidad: c.Localidad,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
