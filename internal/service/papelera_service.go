package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dsocial118/SISOC-sub004/internal/config"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// PapeleraService exposes the administrator trash: listing soft-deleted rows
// of every registered type, previewing a restore cascade and executing it.
type PapeleraService interface {
	Listar(ctx context.Context, filter dto.PapeleraFilter) (*dto.PapeleraListResponse, error)
	PreviewRestaurar(ctx context.Context, tipo string, id uuid.UUID) (*dto.ResumenResponse, error)
	Restaurar(ctx context.Context, actor *uuid.UUID, tipo string, id uuid.UUID, confirmado bool) (*dto.RestaurarResponse, error)
}

type papeleraService struct {
	db     *gorm.DB
	engine *softdelete.Engine
	cfg    *config.Config
}

func NewPapeleraService(db *gorm.DB, engine *softdelete.Engine, cfg *config.Config) PapeleraService {
	return &papeleraService{db: db, engine: engine, cfg: cfg}
}

// Listar walks the registered soft-deletable types in registration order and
// pages across their concatenated tombstone lists.
func (s *papeleraService) Listar(ctx context.Context, filter dto.PapeleraFilter) (*dto.PapeleraListResponse, error) {
	tipos := s.engine.Reg.Keys()
	if filter.Tipo != "" {
		if _, ok := s.engine.Reg.Lookup(filter.Tipo); !ok {
			return nil, fmt.Errorf("%w: %s", ErrTipoDesconocido, filter.Tipo)
		}
		tipos = []string{filter.Tipo}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = s.cfg.PapeleraPageSize
	}
	offset := (filter.Page - 1) * limit

	resp := &dto.PapeleraListResponse{
		Data:  []dto.PapeleraItem{},
		Page:  filter.Page,
		Limit: limit,
	}

	for _, key := range tipos {
		info, _ := s.engine.Reg.Lookup(key)
		if !info.SoftDeletable || info.ListarEliminados == nil {
			continue
		}

		restante := limit - len(resp.Data)
		entidades, total, err := info.ListarEliminados(s.sesion(ctx), filter.Busqueda, restante, offset)
		if err != nil {
			return nil, err
		}
		resp.Total += int(total)

		// Offset consumes whole types before any row is emitted.
		if offset >= int(total) {
			offset -= int(total)
			continue
		}
		offset = 0

		for _, e := range entidades {
			if len(resp.Data) >= limit {
				break
			}
			resp.Data = append(resp.Data, papeleraItem(info, e))
		}
	}
	return resp, nil
}

func papeleraItem(info *softdelete.TypeInfo, e softdelete.Entity) dto.PapeleraItem {
	item := dto.PapeleraItem{
		Tipo:        info.Key,
		Etiqueta:    info.Etiqueta,
		ID:          e.PK().String(),
		Descripcion: fmt.Sprintf("%v", e),
	}
	if sd, ok := e.(softdelete.SoftDeletable); ok {
		if at := sd.EliminadoEl(); at != nil {
			item.EliminadoEl = at.Format(time.RFC3339)
		}
		if por := sd.EliminadoPor(); por != nil {
			s := por.String()
			item.EliminadoPor = &s
		}
	}
	return item
}

// PreviewRestaurar plans the restore cascade without executing it and
// returns the per-type summary the confirmation screen shows.
func (s *papeleraService) PreviewRestaurar(ctx context.Context, tipo string, id uuid.UUID) (*dto.ResumenResponse, error) {
	e, err := s.enPapelera(ctx, tipo, id)
	if err != nil {
		return nil, err
	}

	plan, err := s.engine.Planner.PlanRestaurar(e)
	if err != nil {
		return nil, err
	}

	resumen := softdelete.Resumir(s.engine.Reg, plan, s.cfg.CascadeSampleLimit)
	return resumenToResponse(resumen), nil
}

// Restaurar executes the restore cascade. Requires confirmado so the
// two-step UI (preview, confirm) cannot be bypassed.
func (s *papeleraService) Restaurar(ctx context.Context, actor *uuid.UUID, tipo string, id uuid.UUID, confirmado bool) (*dto.RestaurarResponse, error) {
	if !confirmado {
		return nil, ErrNoConfirmado
	}

	e, err := s.enPapelera(ctx, tipo, id)
	if err != nil {
		return nil, err
	}

	total, porTipo, err := s.engine.Restaurar(ctx, e, actor, true)
	if err != nil {
		return nil, err
	}
	return &dto.RestaurarResponse{Total: total, PorTipo: porTipo}, nil
}

// sesion returns a context-scoped session, or nil when the service runs
// against in-memory fetch closures (unit test mode).
func (s *papeleraService) sesion(ctx context.Context) *gorm.DB {
	if s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx)
}

// enPapelera resolves (tipo, id) to a soft-deleted instance or the matching
// sentinel error.
func (s *papeleraService) enPapelera(ctx context.Context, tipo string, id uuid.UUID) (softdelete.SoftDeletable, error) {
	info, ok := s.engine.Reg.Lookup(tipo)
	if !ok || !info.SoftDeletable {
		return nil, fmt.Errorf("%w: %s", ErrTipoDesconocido, tipo)
	}

	e, err := info.PorID(s.sesion(ctx), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	sd, ok := e.(softdelete.SoftDeletable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTipoDesconocido, tipo)
	}
	if !sd.Eliminado() {
		return nil, ErrNoEnPapelera
	}
	return sd, nil
}

func resumenToResponse(r softdelete.Resumen) *dto.ResumenResponse {
	resp := &dto.ResumenResponse{
		Operacion: string(r.Operacion),
		Total:     r.Total,
		PorTipo:   make([]dto.ResumenTipoResponse, 0, len(r.PorTipo)),
	}
	for _, t := range r.PorTipo {
		resp.PorTipo = append(resp.PorTipo, dto.ResumenTipoResponse{
			Tipo:     t.Tipo,
			Etiqueta: t.Etiqueta,
			Modo:     t.Modo,
			Cantidad: t.Cantidad,
			Ejemplos: t.Ejemplos,
		})
	}
	return resp
}
