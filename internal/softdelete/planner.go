package softdelete

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Planner builds cascade plans by walking the registered ownership graph
// from a root instance. It only reads; all writes happen in the Executor.
type Planner struct {
	db  *gorm.DB
	reg *Registry
}

func NewPlanner(db *gorm.DB, reg *Registry) *Planner {
	return &Planner{db: db, reg: reg}
}

// PlanEliminar builds a delete plan rooted at root. The root is visited in
// soft mode; descendants whose type lacks the envelope upgrade themselves
// (and their whole subtree) to hard. An already soft-deleted root yields an
// empty plan.
func (p *Planner) PlanEliminar(root Entity) (*Plan, error) {
	plan := newPlan(OpEliminar)
	if err := p.visitaEliminar(plan, root, ModeSoft, 0); err != nil {
		return nil, err
	}
	if plan.Len() > 0 {
		plan.Root = NodeKey{Tipo: root.TypeKey(), ID: root.PK()}
	}
	return plan, nil
}

// PlanRestaurar builds a restore plan rooted at root. Only soft-deleted rows
// of soft-deletable types are visited; a root that is alive yields an empty
// plan.
func (p *Planner) PlanRestaurar(root Entity) (*Plan, error) {
	info, ok := p.reg.Lookup(root.TypeKey())
	if !ok {
		return nil, fmt.Errorf("softdelete: tipo no registrado %q", root.TypeKey())
	}
	if !info.SoftDeletable {
		return nil, fmt.Errorf("softdelete: el tipo %q no admite baja logica", info.Key)
	}
	plan := newPlan(OpRestaurar)
	if err := p.visitaRestaurar(plan, root, 0); err != nil {
		return nil, err
	}
	if plan.Len() > 0 {
		plan.Root = NodeKey{Tipo: root.TypeKey(), ID: root.PK()}
	}
	return plan, nil
}

func (p *Planner) visitaEliminar(plan *Plan, e Entity, mode Mode, depth int) error {
	if e.PK() == uuid.Nil {
		return nil
	}
	info, ok := p.reg.Lookup(e.TypeKey())
	if !ok {
		return fmt.Errorf("softdelete: tipo no registrado %q", e.TypeKey())
	}
	if !info.SoftDeletable {
		mode = ModeHard
	}

	key := NodeKey{Tipo: info.Key, ID: e.PK()}
	if existente := plan.get(key); existente != nil {
		if depth > existente.Depth {
			existente.Depth = depth
		}
		if existente.Mode == ModeHard {
			return nil // hard dominates
		}
		if mode == ModeSoft {
			return nil // already planned soft
		}
		// Soft→hard upgrade: keep walking so the whole subtree hardens.
		existente.Mode = ModeHard
	} else {
		if mode == ModeSoft {
			if sd, ok := e.(SoftDeletable); ok && sd.Eliminado() {
				return nil // logical tombstone already
			}
		}
		plan.put(key, &Node{Instancia: e, Mode: mode, Depth: depth})
	}

	// While the parent survives as a tombstone, rows it still references via
	// PROTECT/RESTRICT FKs are left untouched.
	var protegidos map[string][]uuid.UUID
	if mode == ModeSoft && info.Protegidos != nil {
		var err error
		protegidos, err = info.Protegidos(p.db, e)
		if err != nil {
			return err
		}
	}

	for _, rel := range info.Relations {
		hijoInfo, ok := p.reg.Lookup(rel.Child)
		if !ok {
			return fmt.Errorf("softdelete: relacion hacia tipo no registrado %q", rel.Child)
		}
		modoHijo := ModeSoft
		if mode == ModeHard || !hijoInfo.SoftDeletable {
			modoHijo = ModeHard
		}
		scope := ScopeTodos
		if mode == ModeSoft && hijoInfo.SoftDeletable {
			scope = ScopeVivos
		}
		hijos, err := rel.Fetch(p.db, e, scope)
		if err != nil {
			return err
		}
		excluidos := idSet(protegidos[rel.Child])
		for _, hijo := range hijos {
			if _, prot := excluidos[hijo.PK()]; prot {
				continue
			}
			if err := p.visitaEliminar(plan, hijo, modoHijo, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Planner) visitaRestaurar(plan *Plan, e Entity, depth int) error {
	if e.PK() == uuid.Nil {
		return nil
	}
	sd, ok := e.(SoftDeletable)
	if !ok || !sd.Eliminado() {
		return nil // alive rows are never touched by a restore
	}
	info, ok := p.reg.Lookup(e.TypeKey())
	if !ok {
		return fmt.Errorf("softdelete: tipo no registrado %q", e.TypeKey())
	}

	key := NodeKey{Tipo: info.Key, ID: e.PK()}
	if existente := plan.get(key); existente != nil {
		if depth > existente.Depth {
			existente.Depth = depth
		}
		return nil
	}
	plan.put(key, &Node{Instancia: e, Mode: ModeSoft, Depth: depth})

	for _, rel := range info.Relations {
		hijoInfo, ok := p.reg.Lookup(rel.Child)
		if !ok {
			return fmt.Errorf("softdelete: relacion hacia tipo no registrado %q", rel.Child)
		}
		if !hijoInfo.SoftDeletable {
			continue
		}
		hijos, err := rel.Fetch(p.db, e, ScopeEliminados)
		if err != nil {
			return err
		}
		for _, hijo := range hijos {
			if err := p.visitaRestaurar(plan, hijo, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
