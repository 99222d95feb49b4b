package model

import (
	"time"

	"github.com/google/uuid"
)

// HistorialCambio is one append-only audit row: who did what to which entity
// and the field-level diff. Rows are never updated or deleted.
// Accion: "crear" | "actualizar" | "eliminar"
type HistorialCambio struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Registrado  time.Time  `gorm:"index;not null"`
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	Accion      string     `gorm:"type:varchar(20);not null"`
	TipoEntidad string     `gorm:"type:varchar(80);not null;index:idx_historial_entidad,priority:1"`
	EntidadID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_historial_entidad,priority:2"`
	// Diff is `{campo: {"old": ..., "new": ...}}` for updates and a full
	// snapshot for creations and deletions.
	Diff      []byte `gorm:"type:jsonb"`
	CreatedAt time.Time
}

// Acciones auditadas.
const (
	AccionCrear      = "crear"
	AccionActualizar = "actualizar"
	AccionEliminar   = "eliminar"
)
