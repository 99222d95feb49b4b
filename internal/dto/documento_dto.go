package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AdjuntarDocumentoRequest attaches a file to an admission. Exactly one of
// tipo_id / nombre_personalizado must be set; the cross-field rule lives in
// the service.
type AdjuntarDocumentoRequest struct {
	TipoID              *string `json:"tipo_id"              validate:"omitempty,uuid"`
	NombrePersonalizado *string `json:"nombre_personalizado" validate:"omitempty,min=2,max=120"`
	ArchivoPath         string  `json:"archivo_path"         validate:"required,min=1"`
}

type ActualizarEstadoDocumentoRequest struct {
	Estado        string  `json:"estado"        validate:"required,oneof=no_presentado en_analisis a_subsanar validado a_validar_abogado aceptado"`
	Observaciones *string `json:"observaciones" validate:"omitempty,max=2000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DocumentoResponse struct {
	ID                  string  `json:"id"`
	AdmisionID          string  `json:"admision_id"`
	TipoID              *string `json:"tipo_id,omitempty"`
	Tipo                *string `json:"tipo,omitempty"`
	NombrePersonalizado *string `json:"nombre_personalizado,omitempty"`
	ArchivoPath         *string `json:"archivo_path,omitempty"`
	Estado              string  `json:"estado"`
	Observaciones       *string `json:"observaciones,omitempty"`
	UpdatedAt           string  `json:"updated_at"`
}

type TipoDocumentoResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Obligatorio bool   `json:"obligatorio"`
}
