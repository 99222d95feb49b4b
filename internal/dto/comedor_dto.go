package dto

// ─── Filter / List ──────────────────────────────────────────────────────────

// ComedorFilter is bound from query string of GET /v1/comedores.
type ComedorFilter struct {
	Busqueda string `form:"busqueda"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=25" validate:"min=1,max=100"`
}

type ComedorListResponse struct {
	Data  []ComedorResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearComedorRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2,max=120"`
	Localidad string `json:"localidad" validate:"omitempty,max=120"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComedorResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Localidad string `json:"localidad,omitempty"`
	CreatedAt string `json:"created_at"`
}
