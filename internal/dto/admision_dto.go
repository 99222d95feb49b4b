package dto

// ─── Filter / List ──────────────────────────────────────────────────────────

// AdmisionFilter is bound from query string of GET /v1/admisiones.
type AdmisionFilter struct {
	Estado       string `form:"estado"        validate:"omitempty,oneof=borrador en_documentacion enviada_a_revision validada a_subsanar cerrada"`
	ComedorID    string `form:"comedor_id"    validate:"omitempty,uuid"`
	TipoConvenio string `form:"tipo_convenio"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=25" validate:"min=1,max=100"`
}

type AdmisionListResponse struct {
	Data  []AdmisionResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearAdmisionRequest struct {
	ComedorID    string `json:"comedor_id"    validate:"required,uuid"`
	TipoConvenio string `json:"tipo_convenio" validate:"required,min=2,max=40"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AdmisionResponse struct {
	ID                  string              `json:"id"`
	ComedorID           string              `json:"comedor_id"`
	Comedor             string              `json:"comedor,omitempty"`
	TipoConvenio        string              `json:"tipo_convenio"`
	Estado              string              `json:"estado"`
	DocumentoConvenioID *string             `json:"documento_convenio_id,omitempty"`
	Documentos          []DocumentoResponse `json:"documentos,omitempty"`
	CreatedAt           string              `json:"created_at"`
	UpdatedAt           string              `json:"updated_at"`
}

// EliminacionResponse summarizes an executed cascade deletion.
type EliminacionResponse struct {
	Total   int            `json:"total"`
	PorTipo map[string]int `json:"por_tipo"`
}
