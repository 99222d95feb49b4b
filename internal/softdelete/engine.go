package softdelete

import (
	"context"

	"github.com/google/uuid"
)

// Engine is the facade callers use: plan + execute in one call, with the
// per-instance no-cascade variants.
type Engine struct {
	Reg      *Registry
	Planner  *Planner
	Executor *Executor
	Bus      *Bus
}

func NewEngine(store Store, planner *Planner, reg *Registry, bus *Bus) *Engine {
	return &Engine{
		Reg:      reg,
		Planner:  planner,
		Executor: NewExecutor(store, reg, bus),
		Bus:      bus,
	}
}

// Baja soft-deletes instance. With cascade it plans and executes the whole
// ownership subtree; without, it flips exactly this row.
func (e *Engine) Baja(ctx context.Context, instancia SoftDeletable, actor *uuid.UUID, cascade bool) (int, map[string]int, error) {
	var plan *Plan
	var err error
	if cascade {
		plan, err = e.Planner.PlanEliminar(instancia)
	} else {
		plan, err = e.planUnitario(OpEliminar, instancia)
	}
	if err != nil {
		return 0, nil, err
	}
	return e.Executor.Execute(ctx, plan, actor)
}

// Restaurar is the inverse of Baja for rows currently soft-deleted.
func (e *Engine) Restaurar(ctx context.Context, instancia SoftDeletable, actor *uuid.UUID, cascade bool) (int, map[string]int, error) {
	var plan *Plan
	var err error
	if cascade {
		plan, err = e.Planner.PlanRestaurar(instancia)
	} else {
		plan, err = e.planUnitarioRestaurar(instancia)
	}
	if err != nil {
		return 0, nil, err
	}
	return e.Executor.Execute(ctx, plan, actor)
}

func (e *Engine) planUnitario(op Operation, instancia SoftDeletable) (*Plan, error) {
	plan := newPlan(op)
	plan.Cascade = false
	if instancia.PK() == uuid.Nil || instancia.Eliminado() {
		return plan, nil
	}
	key := NodeKey{Tipo: instancia.TypeKey(), ID: instancia.PK()}
	plan.Root = key
	plan.put(key, &Node{Instancia: instancia, Mode: ModeSoft})
	return plan, nil
}

func (e *Engine) planUnitarioRestaurar(instancia SoftDeletable) (*Plan, error) {
	plan := newPlan(OpRestaurar)
	plan.Cascade = false
	if instancia.PK() == uuid.Nil || !instancia.Eliminado() {
		return plan, nil
	}
	key := NodeKey{Tipo: instancia.TypeKey(), ID: instancia.PK()}
	plan.Root = key
	plan.put(key, &Node{Instancia: instancia, Mode: ModeSoft})
	return plan, nil
}
