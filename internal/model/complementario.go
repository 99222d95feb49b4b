package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// InformeComplementario is a follow-up report answering a subsanation round
// on a validated or a-subsanar informe. It renders its own PDF without
// touching the parent informe's state.
type InformeComplementario struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InformeID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	PDFPath     *string    `gorm:"column:pdf_path"`
	CreadoPorID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	softdelete.Envelope

	Respuestas []RespuestaComplementario `gorm:"foreignKey:ComplementarioID"`
}

func (c *InformeComplementario) PK() uuid.UUID   { return c.ID }
func (c *InformeComplementario) TypeKey() string { return TipoInformeComplementario }
func (c *InformeComplementario) String() string  { return "Informe complementario" }

// RespuestaComplementario is one (campo, valor) subsanation answer. Pure
// child rows, always hard-deleted with their complementario.
type RespuestaComplementario struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComplementarioID uuid.UUID `gorm:"type:uuid;index;not null"`
	Campo            string    `gorm:"not null"`
	Valor            string
	CreatedAt        time.Time
}

func (r *RespuestaComplementario) PK() uuid.UUID   { return r.ID }
func (r *RespuestaComplementario) TypeKey() string { return TipoRespuestaComplementario }
func (r *RespuestaComplementario) String() string  { return "Respuesta " + r.Campo }
