package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// ArtefactoInforme stores the rendered PDF (and optional DOCX) of a
// validated informe. Unique per admision: re-validation replaces the prior
// row via update-or-create, never duplicates.
type ArtefactoInforme struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdmisionID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	InformeID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Variante   string    `gorm:"type:varchar(20);not null"`
	PDFPath    string    `gorm:"column:pdf_path;not null"`
	DOCXPath   *string   `gorm:"column:docx_path"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	softdelete.Envelope
}

func (a *ArtefactoInforme) PK() uuid.UUID   { return a.ID }
func (a *ArtefactoInforme) TypeKey() string { return TipoArtefactoInforme }
func (a *ArtefactoInforme) String() string  { return "Artefacto de informe " + a.Variante }
