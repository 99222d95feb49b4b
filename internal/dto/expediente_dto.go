package dto

// ─── Response DTOs ───────────────────────────────────────────────────────────

type NotaExpedienteResponse struct {
	ID        string `json:"id"`
	Texto     string `json:"texto"`
	CreatedAt string `json:"created_at"`
}

type ExpedienteResponse struct {
	ID            string                   `json:"id"`
	AdmisionID    string                   `json:"admision_id"`
	NroExpediente string                   `json:"nro_expediente"`
	Monto         string                   `json:"monto"`
	Notas         []NotaExpedienteResponse `json:"notas,omitempty"`
	CreatedAt     string                   `json:"created_at"`
}
