package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// GuardarInformeRequest saves the informe form. accion=guardar keeps it as a
// draft with no field validation; accion=enviar validates every required
// section and moves the informe to para_revision.
type GuardarInformeRequest struct {
	Accion           string  `json:"accion" validate:"required,oneof=guardar enviar"`
	Diagnostico      *string `json:"diagnostico"`
	Evaluacion       *string `json:"evaluacion"`
	Conclusion       *string `json:"conclusion"`
	DictamenJuridico *string `json:"dictamen_juridico"`
}

// RevisarInformeRequest is the reviewer's verdict on a submitted informe.
// resultado=a_subsanar requires at least one campo; observacion is the
// reviewer's free-text note.
type RevisarInformeRequest struct {
	Resultado   string   `json:"resultado"   validate:"required,oneof=validado a_subsanar"`
	Campos      []string `json:"campos"      validate:"omitempty,dive,min=1"`
	Observacion *string  `json:"observacion" validate:"omitempty,max=4000"`
}

// CrearComplementarioRequest answers the subsanation fields of a validated
// informe with an additional mini-report.
type CrearComplementarioRequest struct {
	Respuestas []RespuestaComplementarioRequest `json:"respuestas" validate:"required,min=1,dive"`
}

type RespuestaComplementarioRequest struct {
	Campo string `json:"campo" validate:"required,min=1"`
	Valor string `json:"valor" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InformeResponse struct {
	ID               string   `json:"id"`
	AdmisionID       string   `json:"admision_id"`
	Variante         string   `json:"variante"`
	EstadoFormulario string   `json:"estado_formulario"`
	Estado           string   `json:"estado"`
	Diagnostico      *string  `json:"diagnostico,omitempty"`
	Evaluacion       *string  `json:"evaluacion,omitempty"`
	Conclusion       *string  `json:"conclusion,omitempty"`
	DictamenJuridico *string  `json:"dictamen_juridico,omitempty"`
	CamposASubsanar  []string `json:"campos_a_subsanar,omitempty"`
	Observacion      *string  `json:"observacion,omitempty"`
	UpdatedAt        string   `json:"updated_at"`
}

type ArtefactoResponse struct {
	AdmisionID string  `json:"admision_id"`
	InformeID  string  `json:"informe_id"`
	Variante   string  `json:"variante"`
	PDFPath    string  `json:"pdf_path"`
	DOCXPath   *string `json:"docx_path,omitempty"`
}

type ComplementarioResponse struct {
	ID        string  `json:"id"`
	InformeID string  `json:"informe_id"`
	PDFPath   *string `json:"pdf_path,omitempty"`
	CreatedAt string  `json:"created_at"`
}
