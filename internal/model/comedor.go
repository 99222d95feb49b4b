package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// Comedor is the subject an admission is opened for. Kept minimal here: the
// full comedores module lives outside this service and only consumes the
// cascade engine.
type Comedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Localidad string
	CreatedAt time.Time
	UpdatedAt time.Time

	softdelete.Envelope
}

func (c *Comedor) PK() uuid.UUID   { return c.ID }
func (c *Comedor) TypeKey() string { return TipoComedor }
func (c *Comedor) String() string  { return c.Nombre }
