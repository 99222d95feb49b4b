package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// Anexo is the structured form attached to an admission. Its counts feed the
// presentation data of rendered informes (meal-count text) and the review.
type Anexo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdmisionID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	ComensalesDesayuno int `gorm:"not null;default:0"`
	ComensalesAlmuerzo int `gorm:"not null;default:0"`
	ComensalesMerienda int `gorm:"not null;default:0"`
	ComensalesCena     int `gorm:"not null;default:0"`
	DiasPorSemana      int `gorm:"not null;default:5"`
	// MontoPrestacion is the monthly benefit amount tied to the anexo.
	MontoPrestacion decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	softdelete.Envelope
}

func (a *Anexo) PK() uuid.UUID   { return a.ID }
func (a *Anexo) TypeKey() string { return TipoAnexo }
func (a *Anexo) String() string  { return "Anexo de admision" }

// TotalComensales suma las cuatro prestaciones diarias.
func (a *Anexo) TotalComensales() int {
	return a.ComensalesDesayuno + a.ComensalesAlmuerzo + a.ComensalesMerienda + a.ComensalesCena
}
