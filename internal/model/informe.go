package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// InformeTecnico is the reviewer-facing technical report of an admission.
// Variante: "base" | "juridico". At most one alive informe per
// (admision, variante).
// EstadoFormulario: "borrador" | "finalizado"
// Estado: "iniciado" | "para_revision" | "a_subsanar" | "validado"
type InformeTecnico struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdmisionID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Variante         string    `gorm:"type:varchar(20);not null"`
	EstadoFormulario string    `gorm:"type:varchar(20);not null;default:'borrador'"`
	Estado           string    `gorm:"type:varchar(20);not null;default:'iniciado'"`

	// Cuerpo del informe.
	Diagnostico      *string
	Evaluacion       *string
	Conclusion       *string
	DictamenJuridico *string

	RedactadoPorID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	softdelete.Envelope
}

// Variantes de informe.
const (
	InformeBase     = "base"
	InformeJuridico = "juridico"
)

// Estados de formulario.
const (
	FormularioBorrador   = "borrador"
	FormularioFinalizado = "finalizado"
)

// Estados de workflow de un informe.
const (
	InformeIniciado     = "iniciado"
	InformeParaRevision = "para_revision"
	InformeASubsanar    = "a_subsanar"
	InformeValidado     = "validado"
)

func (i *InformeTecnico) PK() uuid.UUID   { return i.ID }
func (i *InformeTecnico) TypeKey() string { return TipoInformeTecnico }

func (i *InformeTecnico) String() string {
	return fmt.Sprintf("Informe %s (%s)", i.Variante, i.Estado)
}

// CampoASubsanar is a transient reviewer annotation: the name of one form
// field the operator must fix. Cleared whenever the informe leaves the
// subsanation loop, so it carries no soft-delete envelope (always hard).
type CampoASubsanar struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InformeID   uuid.UUID `gorm:"type:uuid;index;not null"`
	NombreCampo string    `gorm:"not null"`
	CreatedAt   time.Time
}

func (c *CampoASubsanar) PK() uuid.UUID   { return c.ID }
func (c *CampoASubsanar) TypeKey() string { return TipoCampoASubsanar }
func (c *CampoASubsanar) String() string  { return "Campo " + c.NombreCampo }

// ObservacionRevision is the reviewer's free-text note attached alongside a
// subsanation request. One alive observation per informe (upserted).
type ObservacionRevision struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InformeID uuid.UUID  `gorm:"type:uuid;index;not null"`
	RevisorID *uuid.UUID `gorm:"type:uuid"`
	Texto     string     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *ObservacionRevision) PK() uuid.UUID   { return o.ID }
func (o *ObservacionRevision) TypeKey() string { return TipoObservacionRevision }
func (o *ObservacionRevision) String() string  { return "Observacion de revision" }
