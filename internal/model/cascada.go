package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
)

// Type keys namespaced "<modulo>.<Tipo>", mirroring the app layout the rest
// of the platform uses in its audit rows and papelera URLs.
const (
	TipoComedor                 = "comedores.Comedor"
	TipoAdmision                = "admisiones.Admision"
	TipoDocumentoAdmision       = "admisiones.DocumentoAdmision"
	TipoInformeTecnico          = "admisiones.InformeTecnico"
	TipoCampoASubsanar          = "admisiones.CampoASubsanar"
	TipoObservacionRevision     = "admisiones.ObservacionRevision"
	TipoInformeComplementario   = "admisiones.InformeComplementario"
	TipoRespuestaComplementario = "admisiones.RespuestaComplementario"
	TipoAnexo                   = "admisiones.Anexo"
	TipoArtefactoInforme        = "admisiones.ArtefactoInforme"
	TipoExpedientePago          = "expedientes.ExpedientePago"
	TipoNotaExpediente          = "expedientes.NotaExpediente"
)

// NuevoRegistro wires every domain type into the cascade registry. This is
// the static replacement for schema introspection: each type declares its
// reverse CASCADE relations and its PROTECT references once, at startup.
func NuevoRegistro() *softdelete.Registry {
	reg := softdelete.NewRegistry()

	reg.Register(&softdelete.TypeInfo{
		Key:           TipoComedor,
		Etiqueta:      "Comedor",
		Tabla:         Comedor{}.TableName(),
		SoftDeletable: true,
		Relations: []softdelete.Relation{
			{Child: TipoAdmision, Fetch: hijosBlandos[Admision]("comedor_id")},
		},
		PorID:            porID[Comedor],
		ListarEliminados: listaEliminados[Comedor]("nombre", "localidad"),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:           TipoAdmision,
		Etiqueta:      "Admisión",
		Tabla:         Admision{}.TableName(),
		SoftDeletable: true,
		Relations: []softdelete.Relation{
			{Child: TipoDocumentoAdmision, Fetch: hijosBlandos[DocumentoAdmision]("admision_id")},
			{Child: TipoInformeTecnico, Fetch: hijosBlandos[InformeTecnico]("admision_id")},
			{Child: TipoAnexo, Fetch: hijosBlandos[Anexo]("admision_id")},
			{Child: TipoArtefactoInforme, Fetch: hijosBlandos[ArtefactoInforme]("admision_id")},
			{Child: TipoExpedientePago, Fetch: hijosDuros[ExpedientePago]("admision_id")},
		},
		Protegidos:       protegidosAdmision,
		PorID:            porID[Admision],
		ListarEliminados: listaEliminados[Admision]("tipo_convenio", "estado"),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:              TipoDocumentoAdmision,
		Etiqueta:         "Documento de admisión",
		Tabla:            DocumentoAdmision{}.TableName(),
		SoftDeletable:    true,
		PorID:            porID[DocumentoAdmision],
		ListarEliminados: listaEliminados[DocumentoAdmision]("estado", "nombre_personalizado"),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:           TipoInformeTecnico,
		Etiqueta:      "Informe técnico",
		Tabla:         InformeTecnico{}.TableName(),
		SoftDeletable: true,
		Relations: []softdelete.Relation{
			{Child: TipoCampoASubsanar, Fetch: hijosDuros[CampoASubsanar]("informe_id")},
			{Child: TipoObservacionRevision, Fetch: hijosDuros[ObservacionRevision]("informe_id")},
			{Child: TipoInformeComplementario, Fetch: hijosBlandos[InformeComplementario]("informe_id")},
		},
		PorID:            porID[InformeTecnico],
		ListarEliminados: listaEliminados[InformeTecnico]("variante", "estado"),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:      TipoCampoASubsanar,
		Etiqueta: "Campo a subsanar",
		Tabla:    CampoASubsanar{}.TableName(),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:      TipoObservacionRevision,
		Etiqueta: "Observación de revisión",
		Tabla:    ObservacionRevision{}.TableName(),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:           TipoInformeComplementario,
		Etiqueta:      "Informe complementario",
		Tabla:         InformeComplementario{}.TableName(),
		SoftDeletable: true,
		Relations: []softdelete.Relation{
			{Child: TipoRespuestaComplementario, Fetch: hijosDuros[RespuestaComplementario]("complementario_id")},
		},
		PorID:            porID[InformeComplementario],
		ListarEliminados: listaEliminados[InformeComplementario](),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:      TipoRespuestaComplementario,
		Etiqueta: "Respuesta de complementario",
		Tabla:    RespuestaComplementario{}.TableName(),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:              TipoAnexo,
		Etiqueta:         "Anexo",
		Tabla:            Anexo{}.TableName(),
		SoftDeletable:    true,
		PorID:            porID[Anexo],
		ListarEliminados: listaEliminados[Anexo](),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:              TipoArtefactoInforme,
		Etiqueta:         "Artefacto de informe",
		Tabla:            ArtefactoInforme{}.TableName(),
		SoftDeletable:    true,
		PorID:            porID[ArtefactoInforme],
		ListarEliminados: listaEliminados[ArtefactoInforme]("variante"),
	})

	reg.Register(&softdelete.TypeInfo{
		Key:      TipoExpedientePago,
		Etiqueta: "Expediente de pago",
		Tabla:    ExpedientePago{}.TableName(),
		Relations: []softdelete.Relation{
			{Child: TipoNotaExpediente, Fetch: hijosBlandos[NotaExpediente]("expediente_id")},
		},
	})

	reg.Register(&softdelete.TypeInfo{
		Key:              TipoNotaExpediente,
		Etiqueta:         "Nota de expediente",
		Tabla:            NotaExpediente{}.TableName(),
		SoftDeletable:    true,
		PorID:            porID[NotaExpediente],
		ListarEliminados: listaEliminados[NotaExpediente]("texto"),
	})

	return reg
}

// protegidosAdmision lists the child ids an admission pins via RESTRICT FKs:
// today only the signed convenio document.
func protegidosAdmision(_ *gorm.DB, parent softdelete.Entity) (map[string][]uuid.UUID, error) {
	a, ok := parent.(*Admision)
	if !ok || a.DocumentoConvenioID == nil {
		return nil, nil
	}
	return map[string][]uuid.UUID{
		TipoDocumentoAdmision: {*a.DocumentoConvenioID},
	}, nil
}

// ── Fetch helpers ────────────────────────────────────────────────────────────

type puntero[T any] interface {
	*T
	softdelete.Entity
}

// hijosBlandos builds a fetcher for soft-deletable children linked by
// columna, honoring the requested scope.
func hijosBlandos[T any, PT puntero[T]](columna string) softdelete.FetchFunc {
	return func(db *gorm.DB, parent softdelete.Entity, scope softdelete.Scope) ([]softdelete.Entity, error) {
		var filas []T
		q := db.Where(columna+" = ?", parent.PK())
		switch scope {
		case softdelete.ScopeVivos:
			q = q.Where("deleted_at IS NULL")
		case softdelete.ScopeEliminados:
			q = q.Where("deleted_at IS NOT NULL")
		}
		if err := q.Find(&filas).Error; err != nil {
			return nil, err
		}
		return aEntidades[T, PT](filas), nil
	}
}

// hijosDuros builds a fetcher for children without the envelope; the scope
// does not apply to them.
func hijosDuros[T any, PT puntero[T]](columna string) softdelete.FetchFunc {
	return func(db *gorm.DB, parent softdelete.Entity, _ softdelete.Scope) ([]softdelete.Entity, error) {
		var filas []T
		if err := db.Where(columna+" = ?", parent.PK()).Find(&filas).Error; err != nil {
			return nil, err
		}
		return aEntidades[T, PT](filas), nil
	}
}

func porID[T any, PT puntero[T]](db *gorm.DB, id uuid.UUID) (softdelete.Entity, error) {
	var fila T
	if err := db.First(&fila, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return PT(&fila), nil
}

// listaEliminados backs the papelera list for one type: soft-deleted rows,
// newest deletion first, with optional ILIKE search over buscables.
func listaEliminados[T any, PT puntero[T]](buscables ...string) func(*gorm.DB, string, int, int) ([]softdelete.Entity, int64, error) {
	return func(db *gorm.DB, busqueda string, limit, offset int) ([]softdelete.Entity, int64, error) {
		var filas []T
		var total int64

		q := db.Model(new(T)).Where("deleted_at IS NOT NULL")
		if busqueda != "" && len(buscables) > 0 {
			patron := "%" + busqueda + "%"
			cond := db.Where(buscables[0]+" ILIKE ?", patron)
			for _, col := range buscables[1:] {
				cond = cond.Or(col+" ILIKE ?", patron)
			}
			q = q.Where(cond)
		}
		if err := q.Count(&total).Error; err != nil {
			return nil, 0, err
		}
		if err := q.Order("deleted_at DESC").Limit(limit).Offset(offset).Find(&filas).Error; err != nil {
			return nil, 0, err
		}
		return aEntidades[T, PT](filas), total, nil
	}
}

func aEntidades[T any, PT puntero[T]](filas []T) []softdelete.Entity {
	out := make([]softdelete.Entity, len(filas))
	for i := range filas {
		out[i] = PT(&filas[i])
	}
	return out
}
