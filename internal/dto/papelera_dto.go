package dto

// ─── Filter / List ──────────────────────────────────────────────────────────

// PapeleraFilter is bound from query string of GET /v1/papelera.
type PapeleraFilter struct {
	Tipo     string `form:"tipo"`
	Busqueda string `form:"busqueda"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=25" validate:"min=1,max=100"`
}

type PapeleraItem struct {
	Tipo         string  `json:"tipo"`
	Etiqueta     string  `json:"etiqueta"`
	ID           string  `json:"id"`
	Descripcion  string  `json:"descripcion"`
	EliminadoEl  string  `json:"eliminado_el"`
	EliminadoPor *string `json:"eliminado_por,omitempty"`
}

type PapeleraListResponse struct {
	Data  []PapeleraItem `json:"data"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Preview / restore ───────────────────────────────────────────────────────

// ResumenTipoResponse is one (type, mode) row of a cascade preview.
type ResumenTipoResponse struct {
	Tipo     string   `json:"tipo"`
	Etiqueta string   `json:"etiqueta"`
	Modo     string   `json:"modo"`
	Cantidad int      `json:"cantidad"`
	Ejemplos []string `json:"ejemplos"`
}

type ResumenResponse struct {
	Operacion string                `json:"operacion"`
	Total     int                   `json:"total"`
	PorTipo   []ResumenTipoResponse `json:"por_tipo"`
}

// RestaurarResponse summarizes an executed cascade restore.
type RestaurarResponse struct {
	Total   int            `json:"total"`
	PorTipo map[string]int `json:"por_tipo"`
}
