package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// Admision is a case opened for a comedor under a convention type. It owns
// its documents, informes, anexo, artefactos and expedientes; destruction
// always goes through the cascade engine.
// Estado: "borrador" | "en_documentacion" | "enviada_a_revision" |
// "validada" | "a_subsanar" | "cerrada"
type Admision struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComedorID    uuid.UUID `gorm:"type:uuid;index;not null"`
	TipoConvenio string    `gorm:"type:varchar(40);not null"`
	Estado       string    `gorm:"type:varchar(30);not null;default:'borrador'"`
	// DocumentoConvenioID pins the signed convenio document with a RESTRICT
	// FK: while the admission exists (even as a tombstone) that row must
	// survive the cascade.
	DocumentoConvenioID *uuid.UUID `gorm:"type:uuid"`
	CreadoPorID         *uuid.UUID `gorm:"type:uuid"`
	ModificadoPorID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	softdelete.Envelope

	Comedor    *Comedor            `gorm:"foreignKey:ComedorID"`
	Documentos []DocumentoAdmision `gorm:"foreignKey:AdmisionID"`
}

// Estados de una admision.
const (
	AdmisionBorrador     = "borrador"
	AdmisionEnDocumentos = "en_documentacion"
	AdmisionEnRevision   = "enviada_a_revision"
	AdmisionValidada     = "validada"
	AdmisionASubsanar    = "a_subsanar"
	AdmisionCerrada      = "cerrada"
)

func (a *Admision) PK() uuid.UUID   { return a.ID }
func (a *Admision) TypeKey() string { return TipoAdmision }

func (a *Admision) String() string {
	return fmt.Sprintf("Admision %s (%s)", a.TipoConvenio, a.Estado)
}

// Mutable reports whether operator-side edits are still allowed.
func (a *Admision) Mutable() bool { return a.Estado != AdmisionCerrada }
