package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// TipoDocumento is the catalog of predefined document kinds an admission may
// require (DNI del titular, convenio firmado, habilitacion, etc.).
type TipoDocumento struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Obligatorio bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

// DocumentoAdmision is a required or ad-hoc attachment on an admission.
// Exactly one of TipoID / NombrePersonalizado is set; predefined kinds allow
// at most one alive row per (admision, tipo), ad-hoc names may repeat.
// Estado: "no_presentado" | "en_analisis" | "a_subsanar" | "validado" |
// "a_validar_abogado" | "aceptado"
type DocumentoAdmision struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdmisionID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	TipoID              *uuid.UUID `gorm:"type:uuid;index"`
	NombrePersonalizado *string
	ArchivoPath         *string
	Estado              string `gorm:"type:varchar(30);not null;default:'no_presentado'"`
	Observaciones       *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	softdelete.Envelope

	Tipo *TipoDocumento `gorm:"foreignKey:TipoID"`
}

// Estados de un documento.
const (
	DocumentoNoPresentado    = "no_presentado"
	DocumentoEnAnalisis      = "en_analisis"
	DocumentoASubsanar       = "a_subsanar"
	DocumentoValidado        = "validado"
	DocumentoAValidarAbogado = "a_validar_abogado"
	DocumentoAceptado        = "aceptado"
)

func (d *DocumentoAdmision) PK() uuid.UUID   { return d.ID }
func (d *DocumentoAdmision) TypeKey() string { return TipoDocumentoAdmision }

func (d *DocumentoAdmision) String() string {
	if d.Tipo != nil {
		return "Documento " + d.Tipo.Nombre
	}
	if d.NombrePersonalizado != nil {
		return "Documento " + *d.NombrePersonalizado
	}
	return "Documento"
}

// Inmutable reports whether the operator side may no longer touch this
// document (accepted, or waiting on the lawyer).
func (d *DocumentoAdmision) Inmutable() bool {
	return d.Estado == DocumentoAceptado || d.Estado == DocumentoAValidarAbogado
}
