package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/model"
	"github.com/dsocial118/SISOC-sub004/internal/repository"
	"github.com/dsocial118/SISOC-sub004/internal/service"
	"github.com/dsocial118/SISOC-sub004/internal/softdelete"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubAdmisionRepo is an in-memory AdmisionRepository. The alive filters
// mirror the SQL ones: a row with the envelope set is invisible to the
// default finders.
type stubAdmisionRepo struct {
	admisiones map[uuid.UUID]*model.Admision
	documentos map[uuid.UUID]*model.DocumentoAdmision
	tipos      map[uuid.UUID]*model.TipoDocumento
	anexos     map[uuid.UUID]*model.Anexo // keyed by admision
}

func newStubAdmisionRepo() *stubAdmisionRepo {
	return &stubAdmisionRepo{
		admisiones: make(map[uuid.UUID]*model.Admision),
		documentos: make(map[uuid.UUID]*model.DocumentoAdmision),
		tipos:      make(map[uuid.UUID]*model.TipoDocumento),
		anexos:     make(map[uuid.UUID]*model.Anexo),
	}
}

func (r *stubAdmisionRepo) Create(_ context.Context, a *model.Admision) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.admisiones[a.ID] = a
	return nil
}

func (r *stubAdmisionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Admision, error) {
	a, ok := r.admisiones[id]
	if !ok || a.Eliminado() {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAdmisionRepo) FindByIDTodas(_ context.Context, id uuid.UUID) (*model.Admision, error) {
	a, ok := r.admisiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAdmisionRepo) List(_ context.Context, filter dto.AdmisionFilter) ([]model.Admision, int64, error) {
	var out []model.Admision
	for _, a := range r.admisiones {
		if a.Eliminado() {
			continue
		}
		if filter.Estado != "" && a.Estado != filter.Estado {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAdmisionRepo) Update(_ context.Context, a *model.Admision) error {
	a.UpdatedAt = time.Now()
	r.admisiones[a.ID] = a
	return nil
}

func (r *stubAdmisionRepo) CreateDocumento(_ context.Context, d *model.DocumentoAdmision) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Estado == "" {
		d.Estado = model.DocumentoNoPresentado
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	r.documentos[d.ID] = d
	return nil
}

func (r *stubAdmisionRepo) FindDocumentoByID(_ context.Context, id uuid.UUID) (*model.DocumentoAdmision, error) {
	d, ok := r.documentos[id]
	if !ok || d.Eliminado() {
		return nil, gorm.ErrRecordNotFound
	}
	if d.TipoID != nil {
		d.Tipo = r.tipos[*d.TipoID]
	}
	return d, nil
}

func (r *stubAdmisionRepo) FindDocumentoPorTipo(_ context.Context, admisionID, tipoID uuid.UUID) (*model.DocumentoAdmision, error) {
	for _, d := range r.documentos {
		if d.AdmisionID == admisionID && d.TipoID != nil && *d.TipoID == tipoID && !d.Eliminado() {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAdmisionRepo) ListDocumentos(_ context.Context, admisionID uuid.UUID) ([]model.DocumentoAdmision, error) {
	var out []model.DocumentoAdmision
	for _, d := range r.documentos {
		if d.AdmisionID == admisionID && !d.Eliminado() {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubAdmisionRepo) UpdateDocumento(_ context.Context, d *model.DocumentoAdmision) error {
	d.UpdatedAt = time.Now()
	r.documentos[d.ID] = d
	return nil
}

func (r *stubAdmisionRepo) FindTipoDocumento(_ context.Context, id uuid.UUID) (*model.TipoDocumento, error) {
	t, ok := r.tipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubAdmisionRepo) ListTiposDocumento(_ context.Context) ([]model.TipoDocumento, error) {
	var out []model.TipoDocumento
	for _, t := range r.tipos {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubAdmisionRepo) FindAnexo(_ context.Context, admisionID uuid.UUID) (*model.Anexo, error) {
	a, ok := r.anexos[admisionID]
	if !ok || a.Eliminado() {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

var _ repository.AdmisionRepository = (*stubAdmisionRepo)(nil)

// stubComedorRepo holds comedores in memory.
type stubComedorRepo struct {
	comedores map[uuid.UUID]*model.Comedor
}

func newStubComedorRepo() *stubComedorRepo {
	return &stubComedorRepo{comedores: make(map[uuid.UUID]*model.Comedor)}
}

func (r *stubComedorRepo) Create(_ context.Context, c *model.Comedor) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.comedores[c.ID] = c
	return nil
}

func (r *stubComedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comedor, error) {
	c, ok := r.comedores[id]
	if !ok || c.Eliminado() {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubComedorRepo) List(_ context.Context, _ string, _, _ int) ([]model.Comedor, int64, error) {
	var out []model.Comedor
	for _, c := range r.comedores {
		if !c.Eliminado() {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

var _ repository.ComedorRepository = (*stubComedorRepo)(nil)

// colaAuditoria captures enqueued audit events.
type colaAuditoria struct {
	eventos []audit.Evento
}

func (c *colaAuditoria) EncolarAuditoria(_ context.Context, ev audit.Evento) error {
	c.eventos = append(c.eventos, ev)
	return nil
}

func (c *colaAuditoria) conAccion(accion string) []audit.Evento {
	var out []audit.Evento
	for _, ev := range c.eventos {
		if ev.Accion == accion {
			out = append(out, ev)
		}
	}
	return out
}

var _ audit.Encolador = (*colaAuditoria)(nil)

// cascadeStore is an in-memory softdelete.Store keyed by table name.
type cascadeStore struct {
	filas map[string]map[uuid.UUID]bool // tabla -> id -> eliminada
}

func newCascadeStore() *cascadeStore {
	return &cascadeStore{filas: make(map[string]map[uuid.UUID]bool)}
}

func (s *cascadeStore) sembrar(tabla string, id uuid.UUID) {
	if s.filas[tabla] == nil {
		s.filas[tabla] = make(map[uuid.UUID]bool)
	}
	s.filas[tabla][id] = false
}

func (s *cascadeStore) Transaction(_ context.Context, fn func(tx softdelete.Store) error) error {
	return fn(s)
}

func (s *cascadeStore) HardDelete(_ context.Context, info *softdelete.TypeInfo, id uuid.UUID) (bool, error) {
	if _, ok := s.filas[info.Tabla][id]; !ok {
		return false, nil
	}
	delete(s.filas[info.Tabla], id)
	return true, nil
}

func (s *cascadeStore) SoftFlip(_ context.Context, info *softdelete.TypeInfo, ids []uuid.UUID, _ time.Time, _ *uuid.UUID) ([]uuid.UUID, error) {
	var flipped []uuid.UUID
	for _, id := range ids {
		eliminada, ok := s.filas[info.Tabla][id]
		if !ok || eliminada {
			continue
		}
		s.filas[info.Tabla][id] = true
		flipped = append(flipped, id)
	}
	return flipped, nil
}

func (s *cascadeStore) Unflip(_ context.Context, info *softdelete.TypeInfo, ids []uuid.UUID) ([]uuid.UUID, error) {
	var flipped []uuid.UUID
	for _, id := range ids {
		eliminada, ok := s.filas[info.Tabla][id]
		if !ok || !eliminada {
			continue
		}
		s.filas[info.Tabla][id] = false
		flipped = append(flipped, id)
	}
	return flipped, nil
}

var _ softdelete.Store = (*cascadeStore)(nil)

// registroAdmisiones registers the admission subtree over the stub repo's
// in-memory rows.
func registroAdmisiones(repo *stubAdmisionRepo) *softdelete.Registry {
	reg := softdelete.NewRegistry()
	reg.Register(&softdelete.TypeInfo{
		Key:           model.TipoAdmision,
		Etiqueta:      "Admisión",
		Tabla:         model.Admision{}.TableName(),
		SoftDeletable: true,
		Relations: []softdelete.Relation{
			{Child: model.TipoDocumentoAdmision, Fetch: func(_ *gorm.DB, parent softdelete.Entity, scope softdelete.Scope) ([]softdelete.Entity, error) {
				var out []softdelete.Entity
				for _, d := range repo.documentos {
					if d.AdmisionID != parent.PK() {
						continue
					}
					if scope == softdelete.ScopeVivos && d.Eliminado() {
						continue
					}
					if scope == softdelete.ScopeEliminados && !d.Eliminado() {
						continue
					}
					out = append(out, d)
				}
				return out, nil
			}},
		},
		Protegidos: func(_ *gorm.DB, parent softdelete.Entity) (map[string][]uuid.UUID, error) {
			a := parent.(*model.Admision)
			if a.DocumentoConvenioID == nil {
				return nil, nil
			}
			return map[string][]uuid.UUID{model.TipoDocumentoAdmision: {*a.DocumentoConvenioID}}, nil
		},
	})
	reg.Register(&softdelete.TypeInfo{
		Key:           model.TipoDocumentoAdmision,
		Etiqueta:      "Documento de admisión",
		Tabla:         model.DocumentoAdmision{}.TableName(),
		SoftDeletable: true,
	})
	return reg
}

type admisionEnv struct {
	svc       service.AdmisionService
	repo      *stubAdmisionRepo
	comedores *stubComedorRepo
	store     *cascadeStore
	cola      *colaAuditoria
}

func buildAdmisionSvc() *admisionEnv {
	repo := newStubAdmisionRepo()
	comedores := newStubComedorRepo()
	store := newCascadeStore()
	cola := &colaAuditoria{}

	reg := registroAdmisiones(repo)
	bus := softdelete.NewBus()
	engine := softdelete.NewEngine(store, softdelete.NewPlanner(nil, reg), reg, bus)
	recorder := audit.NewRecorder(cola, nil)
	bus.Subscribe(recorder.ObservarCascada)

	return &admisionEnv{
		svc:       service.NewAdmisionService(repo, comedores, engine, recorder),
		repo:      repo,
		comedores: comedores,
		store:     store,
		cola:      cola,
	}
}

func (e *admisionEnv) seedComedor(nombre string) *model.Comedor {
	c := &model.Comedor{ID: uuid.New(), Nombre: nombre, Localidad: "CABA"}
	e.comedores.comedores[c.ID] = c
	return c
}

func (e *admisionEnv) seedTipo(nombre string, obligatorio bool) *model.TipoDocumento {
	t := &model.TipoDocumento{ID: uuid.New(), Nombre: nombre, Obligatorio: obligatorio}
	e.repo.tipos[t.ID] = t
	return t
}

func (e *admisionEnv) seedAdmision(comedorID uuid.UUID, estado string) *model.Admision {
	a := &model.Admision{ID: uuid.New(), ComedorID: comedorID, TipoConvenio: "anual", Estado: estado}
	e.repo.admisiones[a.ID] = a
	e.store.sembrar(model.Admision{}.TableName(), a.ID)
	return a
}

func (e *admisionEnv) seedDocumento(admisionID uuid.UUID, tipoID *uuid.UUID, estado string) *model.DocumentoAdmision {
	d := &model.DocumentoAdmision{ID: uuid.New(), AdmisionID: admisionID, TipoID: tipoID, Estado: estado}
	e.repo.documentos[d.ID] = d
	e.store.sembrar(model.DocumentoAdmision{}.TableName(), d.ID)
	return d
}

func strPtr(s string) *string { return &s }

// ── Crear ─────────────────────────────────────────────────────────────────────

func TestCrearAdmision_SiembraChecklist(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	env.seedTipo("DNI del titular", true)
	env.seedTipo(nombreTipoConvenioTest, true)

	actor := uuid.New()
	resp, err := env.svc.Crear(context.Background(), &actor, dto.CrearAdmisionRequest{
		ComedorID:    c.ID.String(),
		TipoConvenio: "anual",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AdmisionBorrador, resp.Estado)
	require.Len(t, resp.Documentos, 2)
	for _, d := range resp.Documentos {
		assert.Equal(t, model.DocumentoNoPresentado, d.Estado)
		assert.NotNil(t, d.TipoID)
	}

	// One creation event per row: the admission plus its two placeholders.
	assert.Len(t, env.cola.conAccion(model.AccionCrear), 3)
}

const nombreTipoConvenioTest = "Convenio firmado"

func TestCrearAdmision_ComedorInexistente(t *testing.T) {
	env := buildAdmisionSvc()
	_, err := env.svc.Crear(context.Background(), nil, dto.CrearAdmisionRequest{
		ComedorID:    uuid.New().String(),
		TipoConvenio: "anual",
	})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

// ── AdjuntarDocumento ─────────────────────────────────────────────────────────

func TestAdjuntarDocumento_ReutilizaPlaceholder(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionBorrador)
	placeholder := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoNoPresentado)

	actor := uuid.New()
	resp, err := env.svc.AdjuntarDocumento(context.Background(), &actor, a.ID, dto.AdjuntarDocumentoRequest{
		TipoID:      strPtr(tipo.ID.String()),
		ArchivoPath: "/archivos/dni.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, placeholder.ID.String(), resp.ID)
	assert.Equal(t, model.DocumentoEnAnalisis, resp.Estado)
	require.NotNil(t, resp.ArchivoPath)
	assert.Equal(t, "/archivos/dni.pdf", *resp.ArchivoPath)

	// First attachment moves the draft into en_documentacion.
	assert.Equal(t, model.AdmisionEnDocumentos, env.repo.admisiones[a.ID].Estado)
}

func TestAdjuntarDocumento_XORDeIdentificadores(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	a := env.seedAdmision(c.ID, model.AdmisionBorrador)

	_, err := env.svc.AdjuntarDocumento(context.Background(), nil, a.ID, dto.AdjuntarDocumentoRequest{
		ArchivoPath: "/archivos/x.pdf",
	})
	assert.ErrorIs(t, err, service.ErrValidacion)

	tipo := env.seedTipo("DNI del titular", true)
	_, err = env.svc.AdjuntarDocumento(context.Background(), nil, a.ID, dto.AdjuntarDocumentoRequest{
		TipoID:              strPtr(tipo.ID.String()),
		NombrePersonalizado: strPtr("Nota aclaratoria"),
		ArchivoPath:         "/archivos/x.pdf",
	})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestAdjuntarDocumento_DuplicadoPorTipo(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoEnAnalisis)
	d.ArchivoPath = strPtr("/archivos/dni.pdf")

	_, err := env.svc.AdjuntarDocumento(context.Background(), nil, a.ID, dto.AdjuntarDocumentoRequest{
		TipoID:      strPtr(tipo.ID.String()),
		ArchivoPath: "/archivos/dni-v2.pdf",
	})
	assert.ErrorIs(t, err, service.ErrDocumentoDuplicado)
}

func TestAdjuntarDocumento_ReemplazoTrasSubsanar(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionASubsanar)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoASubsanar)
	d.ArchivoPath = strPtr("/archivos/dni.pdf")
	d.Observaciones = strPtr("ilegible")

	resp, err := env.svc.AdjuntarDocumento(context.Background(), nil, a.ID, dto.AdjuntarDocumentoRequest{
		TipoID:      strPtr(tipo.ID.String()),
		ArchivoPath: "/archivos/dni-v2.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, d.ID.String(), resp.ID)
	assert.Equal(t, model.DocumentoEnAnalisis, resp.Estado)
	assert.Equal(t, "/archivos/dni-v2.pdf", *resp.ArchivoPath)
}

func TestAdjuntarDocumento_InmutableRechaza(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo(nombreTipoConvenioTest, true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	env.seedDocumento(a.ID, &tipo.ID, model.DocumentoAceptado)

	_, err := env.svc.AdjuntarDocumento(context.Background(), nil, a.ID, dto.AdjuntarDocumentoRequest{
		TipoID:      strPtr(tipo.ID.String()),
		ArchivoPath: "/archivos/convenio-v2.pdf",
	})
	assert.ErrorIs(t, err, service.ErrEstadoInvalido)
}

func TestAdjuntarDocumento_AdHocCreaFila(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)

	resp, err := env.svc.AdjuntarDocumento(context.Background(), nil, a.ID, dto.AdjuntarDocumentoRequest{
		NombrePersonalizado: strPtr("Nota aclaratoria"),
		ArchivoPath:         "/archivos/nota.pdf",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.TipoID)
	assert.Equal(t, "Nota aclaratoria", *resp.NombrePersonalizado)
	assert.Equal(t, model.DocumentoEnAnalisis, resp.Estado)

	// Ad-hoc names may repeat: a second one creates another row.
	resp2, err := env.svc.AdjuntarDocumento(context.Background(), nil, a.ID, dto.AdjuntarDocumentoRequest{
		NombrePersonalizado: strPtr("Nota aclaratoria"),
		ArchivoPath:         "/archivos/nota-2.pdf",
	})
	require.NoError(t, err)
	assert.NotEqual(t, resp.ID, resp2.ID)
}

// ── EliminarDocumento ─────────────────────────────────────────────────────────

func TestEliminarDocumento_PredefinidoVuelveANoPresentado(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoASubsanar)
	d.ArchivoPath = strPtr("/archivos/dni.pdf")
	d.Observaciones = strPtr("ilegible")

	require.NoError(t, env.svc.EliminarDocumento(context.Background(), nil, a.ID, d.ID))

	guardado := env.repo.documentos[d.ID]
	assert.Equal(t, model.DocumentoNoPresentado, guardado.Estado)
	assert.Nil(t, guardado.ArchivoPath)
	assert.Nil(t, guardado.Observaciones)
	assert.False(t, guardado.Eliminado())
}

func TestEliminarDocumento_AdHocBajaLogica(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, nil, model.DocumentoEnAnalisis)
	d.NombrePersonalizado = strPtr("Nota aclaratoria")

	require.NoError(t, env.svc.EliminarDocumento(context.Background(), nil, a.ID, d.ID))
	assert.True(t, env.repo.documentos[d.ID].Eliminado())
}

func TestEliminarDocumento_ConvenioFijadoProtegido(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo(nombreTipoConvenioTest, true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoEnAnalisis)
	a.DocumentoConvenioID = &d.ID

	err := env.svc.EliminarDocumento(context.Background(), nil, a.ID, d.ID)
	assert.ErrorIs(t, err, service.ErrEstadoInvalido)
}

// ── ActualizarEstadoDocumento ─────────────────────────────────────────────────

func TestActualizarEstadoDocumento_TransicionValida(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoEnAnalisis)

	resp, err := env.svc.ActualizarEstadoDocumento(context.Background(), nil, model.RolRevisor, d.ID,
		dto.ActualizarEstadoDocumentoRequest{Estado: model.DocumentoValidado})
	require.NoError(t, err)
	assert.Equal(t, model.DocumentoValidado, resp.Estado)
}

func TestActualizarEstadoDocumento_TransicionInvalida(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoNoPresentado)

	_, err := env.svc.ActualizarEstadoDocumento(context.Background(), nil, model.RolRevisor, d.ID,
		dto.ActualizarEstadoDocumentoRequest{Estado: model.DocumentoAceptado})
	assert.ErrorIs(t, err, service.ErrEstadoInvalido)
}

func TestActualizarEstadoDocumento_RolInsuficiente(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoAValidarAbogado)

	// Only the lawyer (or the admin) closes the legal review.
	_, err := env.svc.ActualizarEstadoDocumento(context.Background(), nil, model.RolRevisor, d.ID,
		dto.ActualizarEstadoDocumentoRequest{Estado: model.DocumentoAceptado})
	assert.ErrorIs(t, err, service.ErrPermisoDenegado)
}

func TestActualizarEstadoDocumento_ASubsanarRequiereObservaciones(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoEnAnalisis)

	_, err := env.svc.ActualizarEstadoDocumento(context.Background(), nil, model.RolRevisor, d.ID,
		dto.ActualizarEstadoDocumentoRequest{Estado: model.DocumentoASubsanar})
	assert.ErrorIs(t, err, service.ErrValidacion)

	resp, err := env.svc.ActualizarEstadoDocumento(context.Background(), nil, model.RolRevisor, d.ID,
		dto.ActualizarEstadoDocumentoRequest{Estado: model.DocumentoASubsanar, Observaciones: strPtr("foto ilegible")})
	require.NoError(t, err)
	assert.Equal(t, "foto ilegible", *resp.Observaciones)
}

func TestActualizarEstadoDocumento_AceptarConvenioLoFija(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo(nombreTipoConvenioTest, true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoAValidarAbogado)

	abogado := uuid.New()
	_, err := env.svc.ActualizarEstadoDocumento(context.Background(), &abogado, model.RolAbogado, d.ID,
		dto.ActualizarEstadoDocumentoRequest{Estado: model.DocumentoAceptado})
	require.NoError(t, err)

	require.NotNil(t, a.DocumentoConvenioID)
	assert.Equal(t, d.ID, *a.DocumentoConvenioID)
}

func TestActualizarEstadoDocumento_AbogadoAceptaSinEscalamiento(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)

	// The abogado can short-circuit the review and accept straight from
	// en_analisis or validado, without passing through a_validar_abogado.
	for _, desde := range []string{model.DocumentoEnAnalisis, model.DocumentoValidado} {
		d := env.seedDocumento(a.ID, &tipo.ID, desde)

		abogado := uuid.New()
		resp, err := env.svc.ActualizarEstadoDocumento(context.Background(), &abogado, model.RolAbogado, d.ID,
			dto.ActualizarEstadoDocumentoRequest{Estado: model.DocumentoAceptado})
		require.NoError(t, err, "desde %s", desde)
		assert.Equal(t, model.DocumentoAceptado, resp.Estado)
	}
}

func TestActualizarEstadoDocumento_RevisorNoAceptaDirecto(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipo := env.seedTipo("DNI del titular", true)
	a := env.seedAdmision(c.ID, model.AdmisionEnDocumentos)
	d := env.seedDocumento(a.ID, &tipo.ID, model.DocumentoEnAnalisis)

	_, err := env.svc.ActualizarEstadoDocumento(context.Background(), nil, model.RolRevisor, d.ID,
		dto.ActualizarEstadoDocumentoRequest{Estado: model.DocumentoAceptado})
	assert.ErrorIs(t, err, service.ErrPermisoDenegado)
}

// ── Eliminar (cascada) ────────────────────────────────────────────────────────

func TestEliminarAdmision_CascadaConConvenioProtegido(t *testing.T) {
	env := buildAdmisionSvc()
	c := env.seedComedor("Los Pinos")
	tipoDNI := env.seedTipo("DNI del titular", true)
	tipoConvenio := env.seedTipo(nombreTipoConvenioTest, true)
	a := env.seedAdmision(c.ID, model.AdmisionValidada)
	dni := env.seedDocumento(a.ID, &tipoDNI.ID, model.DocumentoValidado)
	convenio := env.seedDocumento(a.ID, &tipoConvenio.ID, model.DocumentoAceptado)
	a.DocumentoConvenioID = &convenio.ID

	actor := uuid.New()
	resp, err := env.svc.Eliminar(context.Background(), &actor, a.ID)
	require.NoError(t, err)

	// Admission plus the DNI document; the pinned convenio survives.
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.PorTipo[model.TipoAdmision])
	assert.Equal(t, 1, resp.PorTipo[model.TipoDocumentoAdmision])

	assert.True(t, a.Eliminado())
	assert.True(t, dni.Eliminado())
	assert.False(t, convenio.Eliminado())

	// Each flipped row lands in the audit queue as an elimination.
	assert.Len(t, env.cola.conAccion(model.AccionEliminar), 2)
}

func TestEliminarAdmision_Inexistente(t *testing.T) {
	env := buildAdmisionSvc()
	_, err := env.svc.Eliminar(context.Background(), nil, uuid.New())
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}
