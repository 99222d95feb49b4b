package softdelete

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ErrPlanMismatch is returned when a plan's operation tag does not match the
// requested execution.
var ErrPlanMismatch = errors.New("softdelete: operacion del plan no coincide con la ejecucion")

// Executor applies a plan atomically: hard deletes depth-first, soft flips
// grouped per type, signals for the rows actually flipped.
type Executor struct {
	store Store
	reg   *Registry
	bus   *Bus
}

func NewExecutor(store Store, reg *Registry, bus *Bus) *Executor {
	return &Executor{store: store, reg: reg, bus: bus}
}

// Execute runs the plan inside one transaction and returns the total of rows
// affected plus a per-type count map keyed "<modulo>.<Tipo>". Executing an
// already-applied plan touches nothing and emits nothing.
func (ex *Executor) Execute(ctx context.Context, plan *Plan, actor *uuid.UUID) (int, map[string]int, error) {
	conteos := make(map[string]int)
	if plan == nil || plan.Empty() {
		return 0, conteos, nil
	}
	switch plan.Operation {
	case OpEliminar:
		return ex.ejecutarBaja(ctx, plan, actor)
	case OpRestaurar:
		return ex.ejecutarRestauracion(ctx, plan, actor)
	default:
		return 0, conteos, ErrPlanMismatch
	}
}

type grupoSoft struct {
	info  *TypeInfo
	ids   []uuid.UUID
	nodos map[uuid.UUID]*Node
}

func (ex *Executor) ejecutarBaja(ctx context.Context, plan *Plan, actor *uuid.UUID) (int, map[string]int, error) {
	conteos := make(map[string]int)
	ahora := time.Now().UTC()

	type nodoDuro struct {
		key  NodeKey
		node *Node
	}
	var duros []nodoDuro
	grupos, orden := ex.agrupar(plan, ModeSoft)
	plan.Walk(func(key NodeKey, node *Node) {
		if node.Mode == ModeHard {
			duros = append(duros, nodoDuro{key: key, node: node})
		}
	})
	// Leaves first: physical deletes must not trip FK constraints.
	sort.SliceStable(duros, func(i, j int) bool {
		return duros[i].node.Depth > duros[j].node.Depth
	})

	var eliminados []Event
	err := ex.store.Transaction(ctx, func(tx Store) error {
		for _, d := range duros {
			info, ok := ex.reg.Lookup(d.key.Tipo)
			if !ok {
				return errors.New("softdelete: tipo no registrado " + d.key.Tipo)
			}
			borrado, err := tx.HardDelete(ctx, info, d.key.ID)
			if err != nil {
				return err
			}
			if borrado {
				conteos[d.key.Tipo]++
			}
		}
		for _, tipo := range orden {
			g := grupos[tipo]
			flipped, err := tx.SoftFlip(ctx, g.info, g.ids, ahora, actor)
			if err != nil {
				return err
			}
			for _, id := range flipped {
				nodo := g.nodos[id]
				conteos[tipo]++
				eliminados = append(eliminados, Event{
					Signal:    SignalBaja,
					Instancia: nodo.Instancia,
					Actor:     actor,
					Cascade:   plan.Cascade,
					Root:      ex.raiz(plan),
				})
			}
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	// In-memory state and signals only after the transaction committed, so
	// listeners never see rows that were rolled back.
	for _, ev := range eliminados {
		if sd, ok := ev.Instancia.(SoftDeletable); ok {
			sd.MarcarBaja(ahora, actor)
		}
		ex.bus.publish(ev)
	}
	return total(conteos), conteos, nil
}

func (ex *Executor) ejecutarRestauracion(ctx context.Context, plan *Plan, actor *uuid.UUID) (int, map[string]int, error) {
	conteos := make(map[string]int)
	grupos, orden := ex.agrupar(plan, ModeSoft)

	var restaurados []Event
	err := ex.store.Transaction(ctx, func(tx Store) error {
		for _, tipo := range orden {
			g := grupos[tipo]
			flipped, err := tx.Unflip(ctx, g.info, g.ids)
			if err != nil {
				return err
			}
			for _, id := range flipped {
				nodo := g.nodos[id]
				conteos[tipo]++
				restaurados = append(restaurados, Event{
					Signal:    SignalRestauracion,
					Instancia: nodo.Instancia,
					Actor:     actor,
					Cascade:   plan.Cascade,
					Root:      ex.raiz(plan),
				})
			}
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	for _, ev := range restaurados {
		if sd, ok := ev.Instancia.(SoftDeletable); ok {
			sd.MarcarAlta()
		}
		ex.bus.publish(ev)
	}
	return total(conteos), conteos, nil
}

// agrupar groups same-mode nodes per type, preserving plan iteration order
// both across types and within each id list.
func (ex *Executor) agrupar(plan *Plan, mode Mode) (map[string]*grupoSoft, []string) {
	grupos := make(map[string]*grupoSoft)
	var orden []string
	plan.Walk(func(key NodeKey, node *Node) {
		if node.Mode != mode {
			return
		}
		g, ok := grupos[key.Tipo]
		if !ok {
			info, registrado := ex.reg.Lookup(key.Tipo)
			if !registrado {
				return
			}
			g = &grupoSoft{info: info, nodos: make(map[uuid.UUID]*Node)}
			grupos[key.Tipo] = g
			orden = append(orden, key.Tipo)
		}
		g.ids = append(g.ids, key.ID)
		g.nodos[key.ID] = node
	})
	return grupos, orden
}

func (ex *Executor) raiz(plan *Plan) Entity {
	if nodo := plan.Node(plan.Root); nodo != nil {
		return nodo.Instancia
	}
	return nil
}

func total(conteos map[string]int) int {
	t := 0
	for _, c := range conteos {
		t += c
	}
	return t
}
