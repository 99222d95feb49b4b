package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// ExpedientePago is a pure link row tying an admission to a payment
// expediente. Link tables carry no soft-delete envelope: when their parent
// is cascaded they are always removed physically, and so is everything
// hanging under them.
type ExpedientePago struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdmisionID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	NroExpediente string          `gorm:"not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt     time.Time
}

func (e *ExpedientePago) PK() uuid.UUID   { return e.ID }
func (e *ExpedientePago) TypeKey() string { return TipoExpedientePago }
func (e *ExpedientePago) String() string  { return "Expediente " + e.NroExpediente }

// NotaExpediente is a soft-deletable note on an expediente. Even though the
// type soft-deletes, a hard-deleted parent forces these rows hard too.
type NotaExpediente struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExpedienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	Texto        string    `gorm:"not null"`
	CreatedAt    time.Time

	softdelete.Envelope
}

func (n *NotaExpediente) PK() uuid.UUID   { return n.ID }
func (n *NotaExpediente) TypeKey() string { return TipoNotaExpediente }
func (n *NotaExpediente) String() string  { return "Nota de expediente" }
