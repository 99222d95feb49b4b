package model

// Explicit Spanish table names: the cascade store builds raw UPDATE/DELETE
// statements against them, so they must not depend on gorm's inflection.

func (Usuario) TableName() string                 { return "usuarios" }
func (Comedor) TableName() string                 { return "comedores" }
func (Admision) TableName() string                { return "admisiones" }
func (TipoDocumento) TableName() string           { return "tipos_documento" }
func (DocumentoAdmision) TableName() string       { return "documentos_admision" }
func (InformeTecnico) TableName() string          { return "informes_tecnicos" }
func (CampoASubsanar) TableName() string          { return "campos_a_subsanar" }
func (ObservacionRevision) TableName() string     { return "observaciones_revision" }
func (InformeComplementario) TableName() string   { return "informes_complementarios" }
func (RespuestaComplementario) TableName() string { return "respuestas_complementario" }
func (Anexo) TableName() string                   { return "anexos" }
func (ExpedientePago) TableName() string          { return "expedientes_pago" }
func (NotaExpediente) TableName() string          { return "notas_expediente" }
func (ArtefactoInforme) TableName() string        { return "artefactos_informe" }
func (HistorialCambio) TableName() string         { return "historial_cambios" }
