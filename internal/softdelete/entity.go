// Package softdelete implements the logical-deletion engine: a registry of
// entity types and their ownership relations, a cascade planner that decides
// which rows to touch and how, an executor that applies a plan inside one
// transaction, and a signal bus observers can subscribe to.
//
// Types register themselves at startup (see model.NuevoRegistro); the engine
// never reflects over the schema at runtime.
package softdelete

import (
	"time"

	"github.com/google/uuid"
)

// Entity is anything the cascade engine can walk: it has a primary key and
// knows its registered type key ("<modulo>.<Tipo>").
type Entity interface {
	PK() uuid.UUID
	TypeKey() string
}

// SoftDeletable is implemented by entities that carry the Envelope.
type SoftDeletable interface {
	Entity
	Eliminado() bool
	EliminadoEl() *time.Time
	EliminadoPor() *uuid.UUID
	MarcarBaja(at time.Time, por *uuid.UUID)
	MarcarAlta()
}

// Envelope is embedded in every soft-deletable gorm model. A row is alive
// iff DeletedAt is null. DeletedBy is a weak actor reference (SET NULL).
type Envelope struct {
	DeletedAt   *time.Time `gorm:"index" json:"deleted_at,omitempty"`
	DeletedByID *uuid.UUID `gorm:"type:uuid" json:"deleted_by_id,omitempty"`
}

func (e *Envelope) Eliminado() bool { return e.DeletedAt != nil }

func (e *Envelope) EliminadoEl() *time.Time { return e.DeletedAt }

func (e *Envelope) EliminadoPor() *uuid.UUID { return e.DeletedByID }

func (e *Envelope) MarcarBaja(at time.Time, por *uuid.UUID) {
	e.DeletedAt = &at
	e.DeletedByID = por
}

func (e *Envelope) MarcarAlta() {
	e.DeletedAt = nil
	e.DeletedByID = nil
}
