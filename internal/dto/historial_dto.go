package dto

import "encoding/json"

// HistorialItem is one immutable audit row of an entity.
type HistorialItem struct {
	ID          string          `json:"id"`
	Registrado  string          `json:"registrado"`
	ActorID     *string         `json:"actor_id,omitempty"`
	Accion      string          `json:"accion"`
	TipoEntidad string          `json:"tipo_entidad"`
	EntidadID   string          `json:"entidad_id"`
	Diff        json.RawMessage `json:"diff"`
}

type HistorialListResponse struct {
	Data  []HistorialItem `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
