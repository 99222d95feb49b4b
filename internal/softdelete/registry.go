package softdelete

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope restricts which rows a relation fetch returns.
type Scope int

const (
	// ScopeVivos returns only rows not soft-deleted.
	ScopeVivos Scope = iota
	// ScopeTodos returns every row, deleted or not (base manager view).
	ScopeTodos
	// ScopeEliminados returns only soft-deleted rows (restore walks).
	ScopeEliminados
)

// FetchFunc returns the children of parent under the given scope. For child
// types without the soft-delete envelope the scope is ignored.
type FetchFunc func(db *gorm.DB, parent Entity, scope Scope) ([]Entity, error)

// Relation is a reverse CASCADE edge: deleting the owner propagates to the
// rows this fetch returns.
type Relation struct {
	Child string
	Fetch FetchFunc
}

// TypeInfo describes one registered entity type.
type TypeInfo struct {
	Key           string
	Etiqueta      string
	Tabla         string
	SoftDeletable bool
	// Relations are the reverse CASCADE edges owned by this type.
	Relations []Relation
	// Protegidos returns, per child type key, the ids this parent instance
	// still references through PROTECT/RESTRICT FKs. Those rows must survive
	// while the parent is only a logical tombstone.
	Protegidos func(db *gorm.DB, parent Entity) (map[string][]uuid.UUID, error)
	// PorID materializes an instance by primary key regardless of its
	// deleted state. Used by the papelera to resolve restore roots.
	PorID func(db *gorm.DB, id uuid.UUID) (Entity, error)
	// ListarEliminados backs the papelera list view: soft-deleted rows of
	// this type with optional text search and pagination.
	ListarEliminados func(db *gorm.DB, busqueda string, limit, offset int) ([]Entity, int64, error)
}

// Registry holds every registered type, keyed by type key. Registration
// happens once at startup; lookups afterwards are read-only.
type Registry struct {
	tipos map[string]*TypeInfo
}

func NewRegistry() *Registry {
	return &Registry{tipos: make(map[string]*TypeInfo)}
}

func (r *Registry) Register(info *TypeInfo) {
	if _, dup := r.tipos[info.Key]; dup {
		panic(fmt.Sprintf("softdelete: tipo %q registrado dos veces", info.Key))
	}
	r.tipos[info.Key] = info
}

func (r *Registry) Lookup(key string) (*TypeInfo, bool) {
	info, ok := r.tipos[key]
	return info, ok
}

// Keys returns the registered type keys in stable order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.tipos))
	for k := range r.tipos {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
