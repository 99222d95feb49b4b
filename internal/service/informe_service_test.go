package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
	"github.com/dsocial118/SISOC-sub004/internal/config"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/model"
	"github.com/dsocial118/SISOC-sub004/internal/repository"
	"github.com/dsocial118/SISOC-sub004/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubInformeRepo is an in-memory InformeRepository.
type stubInformeRepo struct {
	informes        map[uuid.UUID]*model.InformeTecnico
	campos          []model.CampoASubsanar
	observaciones   map[uuid.UUID]*model.ObservacionRevision // keyed by informe
	complementarios map[uuid.UUID]*model.InformeComplementario
	artefactos      *stubArtefactoRepo
}

func newStubInformeRepo(artefactos *stubArtefactoRepo) *stubInformeRepo {
	return &stubInformeRepo{
		informes:        make(map[uuid.UUID]*model.InformeTecnico),
		observaciones:   make(map[uuid.UUID]*model.ObservacionRevision),
		complementarios: make(map[uuid.UUID]*model.InformeComplementario),
		artefactos:      artefactos,
	}
}

func (r *stubInformeRepo) Create(_ context.Context, i *model.InformeTecnico) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.EstadoFormulario == "" {
		i.EstadoFormulario = model.FormularioBorrador
	}
	if i.Estado == "" {
		i.Estado = model.InformeIniciado
	}
	r.informes[i.ID] = i
	return nil
}

func (r *stubInformeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InformeTecnico, error) {
	i, ok := r.informes[id]
	if !ok || i.Eliminado() {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubInformeRepo) FindPorVariante(_ context.Context, admisionID uuid.UUID, variante string) (*model.InformeTecnico, error) {
	for _, i := range r.informes {
		if i.AdmisionID == admisionID && i.Variante == variante && !i.Eliminado() {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInformeRepo) Update(_ context.Context, i *model.InformeTecnico) error {
	i.UpdatedAt = time.Now()
	r.informes[i.ID] = i
	return nil
}

func (r *stubInformeRepo) CreateCampos(_ context.Context, campos []model.CampoASubsanar) error {
	for i := range campos {
		if campos[i].ID == uuid.Nil {
			campos[i].ID = uuid.New()
		}
	}
	r.campos = append(r.campos, campos...)
	return nil
}

func (r *stubInformeRepo) ListCampos(_ context.Context, informeID uuid.UUID) ([]model.CampoASubsanar, error) {
	var out []model.CampoASubsanar
	for _, c := range r.campos {
		if c.InformeID == informeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubInformeRepo) ClearCampos(_ context.Context, informeID uuid.UUID) error {
	var quedan []model.CampoASubsanar
	for _, c := range r.campos {
		if c.InformeID != informeID {
			quedan = append(quedan, c)
		}
	}
	r.campos = quedan
	return nil
}

func (r *stubInformeRepo) UpsertObservacion(_ context.Context, o *model.ObservacionRevision) error {
	if existente, ok := r.observaciones[o.InformeID]; ok {
		existente.Texto = o.Texto
		existente.RevisorID = o.RevisorID
		*o = *existente
		return nil
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.observaciones[o.InformeID] = o
	return nil
}

func (r *stubInformeRepo) ListObservaciones(_ context.Context, informeID uuid.UUID) ([]model.ObservacionRevision, error) {
	if o, ok := r.observaciones[informeID]; ok {
		return []model.ObservacionRevision{*o}, nil
	}
	return nil, nil
}

func (r *stubInformeRepo) ClearObservaciones(_ context.Context, informeID uuid.UUID) error {
	delete(r.observaciones, informeID)
	return nil
}

func (r *stubInformeRepo) CreateComplementario(_ context.Context, c *model.InformeComplementario) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.complementarios[c.ID] = c
	return nil
}

func (r *stubInformeRepo) FindComplementario(_ context.Context, id uuid.UUID) (*model.InformeComplementario, error) {
	c, ok := r.complementarios[id]
	if !ok || c.Eliminado() {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubInformeRepo) UpdateComplementario(_ context.Context, c *model.InformeComplementario) error {
	r.complementarios[c.ID] = c
	return nil
}

func (r *stubInformeRepo) ListValidadosSinArtefacto(_ context.Context, limit int) ([]model.InformeTecnico, error) {
	var out []model.InformeTecnico
	for _, i := range r.informes {
		if len(out) >= limit {
			break
		}
		if i.Estado != model.InformeValidado || i.Eliminado() {
			continue
		}
		if _, ok := r.artefactos.porAdmision[i.AdmisionID]; ok {
			continue
		}
		out = append(out, *i)
	}
	return out, nil
}

var _ repository.InformeRepository = (*stubInformeRepo)(nil)

// stubArtefactoRepo mimics the unique-per-admision upsert.
type stubArtefactoRepo struct {
	porAdmision map[uuid.UUID]*model.ArtefactoInforme
}

func newStubArtefactoRepo() *stubArtefactoRepo {
	return &stubArtefactoRepo{porAdmision: make(map[uuid.UUID]*model.ArtefactoInforme)}
}

func (r *stubArtefactoRepo) Upsert(_ context.Context, a *model.ArtefactoInforme) error {
	if existente, ok := r.porAdmision[a.AdmisionID]; ok {
		a.ID = existente.ID
	} else if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.porAdmision[a.AdmisionID] = a
	return nil
}

func (r *stubArtefactoRepo) FindPorAdmision(_ context.Context, admisionID uuid.UUID) (*model.ArtefactoInforme, error) {
	a, ok := r.porAdmision[admisionID]
	if !ok || a.Eliminado() {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

var _ repository.ArtefactoRepository = (*stubArtefactoRepo)(nil)

// stubUsuarioRepo backs the notification lookups.
type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListByRol(_ context.Context, rol string) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Rol == rol && u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// stubExpedienteRepo captures the payment expedientes opened on validation.
type stubExpedienteRepo struct {
	expedientes map[uuid.UUID]*model.ExpedientePago
	notas       map[uuid.UUID][]model.NotaExpediente // keyed by expediente
}

func newStubExpedienteRepo() *stubExpedienteRepo {
	return &stubExpedienteRepo{
		expedientes: make(map[uuid.UUID]*model.ExpedientePago),
		notas:       make(map[uuid.UUID][]model.NotaExpediente),
	}
}

func (r *stubExpedienteRepo) Create(_ context.Context, e *model.ExpedientePago) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	r.expedientes[e.ID] = e
	return nil
}

func (r *stubExpedienteRepo) ListPorAdmision(_ context.Context, admisionID uuid.UUID) ([]model.ExpedientePago, error) {
	var out []model.ExpedientePago
	for _, e := range r.expedientes {
		if e.AdmisionID == admisionID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExpedienteRepo) CreateNota(_ context.Context, n *model.NotaExpediente) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.notas[n.ExpedienteID] = append(r.notas[n.ExpedienteID], *n)
	return nil
}

func (r *stubExpedienteRepo) ListNotas(_ context.Context, expedienteID uuid.UUID) ([]model.NotaExpediente, error) {
	return r.notas[expedienteID], nil
}

var _ repository.ExpedienteRepository = (*stubExpedienteRepo)(nil)

type informeEnv struct {
	svc         service.InformeService
	repo        *stubInformeRepo
	admisiones  *stubAdmisionRepo
	artefactos  *stubArtefactoRepo
	usuarios    *stubUsuarioRepo
	expedientes *stubExpedienteRepo
	cola        *colaAuditoria
}

func buildInformeSvc(t *testing.T) *informeEnv {
	t.Helper()
	admisiones := newStubAdmisionRepo()
	artefactos := newStubArtefactoRepo()
	repo := newStubInformeRepo(artefactos)
	usuarios := newStubUsuarioRepo()
	expedientes := newStubExpedienteRepo()
	cola := &colaAuditoria{}
	cfg := &config.Config{ArtefactosStoragePath: t.TempDir(), CascadeSampleLimit: 5}

	svc := service.NewInformeService(repo, admisiones, artefactos, usuarios, expedientes,
		audit.NewRecorder(cola, nil), nil, cfg)
	return &informeEnv{
		svc:         svc,
		repo:        repo,
		admisiones:  admisiones,
		artefactos:  artefactos,
		usuarios:    usuarios,
		expedientes: expedientes,
		cola:        cola,
	}
}

func (e *informeEnv) seedAdmision(estado string) *model.Admision {
	a := &model.Admision{
		ID:           uuid.New(),
		ComedorID:    uuid.New(),
		TipoConvenio: "anual",
		Estado:       estado,
		Comedor:      &model.Comedor{Nombre: "Los Pinos"},
	}
	e.admisiones.admisiones[a.ID] = a
	return a
}

func (e *informeEnv) seedInforme(admisionID uuid.UUID, variante, estado string) *model.InformeTecnico {
	i := &model.InformeTecnico{
		ID:               uuid.New(),
		AdmisionID:       admisionID,
		Variante:         variante,
		EstadoFormulario: model.FormularioBorrador,
		Estado:           estado,
		Diagnostico:      strPtr("diagnostico"),
		Evaluacion:       strPtr("evaluacion"),
		Conclusion:       strPtr("conclusion"),
	}
	e.repo.informes[i.ID] = i
	return i
}

// ── Guardar ───────────────────────────────────────────────────────────────────

func TestGuardarInforme_BorradorSinValidacion(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnDocumentos)

	resp, err := env.svc.Guardar(context.Background(), nil, a.ID, model.InformeBase, dto.GuardarInformeRequest{
		Accion:      "guardar",
		Diagnostico: strPtr("solo el diagnostico"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.InformeIniciado, resp.Estado)
	assert.Equal(t, model.FormularioBorrador, resp.EstadoFormulario)
	assert.Equal(t, "solo el diagnostico", *resp.Diagnostico)
	assert.Nil(t, resp.Conclusion)
}

func TestGuardarInforme_VarianteDesconocida(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnDocumentos)

	_, err := env.svc.Guardar(context.Background(), nil, a.ID, "economico", dto.GuardarInformeRequest{Accion: "guardar"})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestGuardarInforme_EnviarSeccionesIncompletas(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnDocumentos)

	_, err := env.svc.Guardar(context.Background(), nil, a.ID, model.InformeBase, dto.GuardarInformeRequest{
		Accion:      "enviar",
		Diagnostico: strPtr("diagnostico"),
	})
	require.ErrorIs(t, err, service.ErrValidacion)
	assert.ErrorContains(t, err, "evaluacion")
	assert.ErrorContains(t, err, "conclusion")
}

func TestGuardarInforme_JuridicoExigeDictamen(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnDocumentos)

	_, err := env.svc.Guardar(context.Background(), nil, a.ID, model.InformeJuridico, dto.GuardarInformeRequest{
		Accion:      "enviar",
		Diagnostico: strPtr("d"),
		Evaluacion:  strPtr("e"),
		Conclusion:  strPtr("c"),
	})
	require.ErrorIs(t, err, service.ErrValidacion)
	assert.ErrorContains(t, err, "dictamen_juridico")
}

func TestGuardarInforme_EnviarFinalizaYNotifica(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnDocumentos)
	email := "revisora@sisoc.gob.ar"
	env.usuarios.Create(context.Background(), &model.Usuario{
		Username: "revisora", Nombre: "Revisora", Rol: model.RolRevisor, Activo: true, Email: &email,
	})

	actor := uuid.New()
	resp, err := env.svc.Guardar(context.Background(), &actor, a.ID, model.InformeBase, dto.GuardarInformeRequest{
		Accion:      "enviar",
		Diagnostico: strPtr("d"),
		Evaluacion:  strPtr("e"),
		Conclusion:  strPtr("c"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.InformeParaRevision, resp.Estado)
	assert.Equal(t, model.FormularioFinalizado, resp.EstadoFormulario)
	assert.Equal(t, model.AdmisionEnRevision, a.Estado)
}

func TestGuardarInforme_EnRevisionBloqueado(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnRevision)
	env.seedInforme(a.ID, model.InformeBase, model.InformeParaRevision)

	_, err := env.svc.Guardar(context.Background(), nil, a.ID, model.InformeBase, dto.GuardarInformeRequest{
		Accion:      "guardar",
		Diagnostico: strPtr("cambio tardio"),
	})
	assert.ErrorIs(t, err, service.ErrEstadoInvalido)
}

// ── Revisar ───────────────────────────────────────────────────────────────────

func TestRevisarInforme_SoloParaRevision(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnDocumentos)
	inf := env.seedInforme(a.ID, model.InformeBase, model.InformeIniciado)

	_, err := env.svc.Revisar(context.Background(), nil, inf.ID, dto.RevisarInformeRequest{Resultado: model.InformeValidado})
	assert.ErrorIs(t, err, service.ErrEstadoInvalido)
}

func TestRevisarInforme_ValidadoReabreASubsanar(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionValidada)
	inf := env.seedInforme(a.ID, model.InformeBase, model.InformeValidado)

	revisor := uuid.New()
	resp, err := env.svc.Revisar(context.Background(), &revisor, inf.ID, dto.RevisarInformeRequest{
		Resultado:   model.InformeASubsanar,
		Campos:      []string{"evaluacion"},
		Observacion: strPtr("se detecto un error luego de validar"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.InformeASubsanar, resp.Estado)
	assert.Equal(t, model.FormularioBorrador, resp.EstadoFormulario)
	assert.ElementsMatch(t, []string{"evaluacion"}, resp.CamposASubsanar)
	assert.Equal(t, model.AdmisionASubsanar, a.Estado)
}

func TestRevisarInforme_ValidadoNoSeRevalida(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionValidada)
	inf := env.seedInforme(a.ID, model.InformeBase, model.InformeValidado)

	_, err := env.svc.Revisar(context.Background(), nil, inf.ID, dto.RevisarInformeRequest{Resultado: model.InformeValidado})
	assert.ErrorIs(t, err, service.ErrEstadoInvalido)
}

func TestRevisarInforme_ASubsanarSinCampos(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnRevision)
	inf := env.seedInforme(a.ID, model.InformeBase, model.InformeParaRevision)

	_, err := env.svc.Revisar(context.Background(), nil, inf.ID, dto.RevisarInformeRequest{Resultado: model.InformeASubsanar})
	assert.ErrorIs(t, err, service.ErrValidacion)
}

func TestRevisarInforme_ASubsanarAnota(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnRevision)
	inf := env.seedInforme(a.ID, model.InformeBase, model.InformeParaRevision)

	revisor := uuid.New()
	resp, err := env.svc.Revisar(context.Background(), &revisor, inf.ID, dto.RevisarInformeRequest{
		Resultado:   model.InformeASubsanar,
		Campos:      []string{"diagnostico", "conclusion"},
		Observacion: strPtr("faltan fuentes"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.InformeASubsanar, resp.Estado)
	assert.Equal(t, model.FormularioBorrador, resp.EstadoFormulario)
	assert.ElementsMatch(t, []string{"diagnostico", "conclusion"}, resp.CamposASubsanar)
	require.NotNil(t, resp.Observacion)
	assert.Equal(t, "faltan fuentes", *resp.Observacion)

	assert.Equal(t, model.AdmisionASubsanar, a.Estado)
}

func TestRevisarInforme_ReenvioLimpiaAnotaciones(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnRevision)
	inf := env.seedInforme(a.ID, model.InformeBase, model.InformeParaRevision)

	_, err := env.svc.Revisar(context.Background(), nil, inf.ID, dto.RevisarInformeRequest{
		Resultado:   model.InformeASubsanar,
		Campos:      []string{"conclusion"},
		Observacion: strPtr("muy corta"),
	})
	require.NoError(t, err)

	resp, err := env.svc.Guardar(context.Background(), nil, a.ID, model.InformeBase, dto.GuardarInformeRequest{
		Accion:      "enviar",
		Diagnostico: strPtr("d"),
		Evaluacion:  strPtr("e"),
		Conclusion:  strPtr("una conclusion mas larga"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.InformeParaRevision, resp.Estado)
	assert.Empty(t, resp.CamposASubsanar)
	assert.Nil(t, resp.Observacion)
}

func TestRevisarInforme_ValidadoGeneraArtefactos(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnRevision)
	inf := env.seedInforme(a.ID, model.InformeBase, model.InformeParaRevision)
	env.admisiones.anexos[a.ID] = &model.Anexo{
		ID: uuid.New(), AdmisionID: a.ID,
		ComensalesAlmuerzo: 80, ComensalesMerienda: 40, DiasPorSemana: 5,
	}

	resp, err := env.svc.Revisar(context.Background(), nil, inf.ID, dto.RevisarInformeRequest{Resultado: model.InformeValidado})
	require.NoError(t, err)
	assert.Equal(t, model.InformeValidado, resp.Estado)
	assert.Equal(t, model.AdmisionValidada, a.Estado)

	art, err := env.artefactos.FindPorAdmision(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, inf.ID, art.InformeID)
	assert.Equal(t, model.InformeBase, art.Variante)

	// The PDF really exists on disk.
	info, err := os.Stat(art.PDFPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// Validation opens the payment expediente at the anexo's monto, with the
	// initial note.
	abiertos, err := env.expedientes.ListPorAdmision(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, abiertos, 1)
	assert.Contains(t, abiertos[0].NroExpediente, "EX-")
	notas, err := env.expedientes.ListNotas(context.Background(), abiertos[0].ID)
	require.NoError(t, err)
	require.Len(t, notas, 1)
	assert.Contains(t, notas[0].Texto, "base")
}

func TestRevisarInforme_ValidadoNoDuplicaExpediente(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnRevision)
	base := env.seedInforme(a.ID, model.InformeBase, model.InformeParaRevision)
	juridico := env.seedInforme(a.ID, model.InformeJuridico, model.InformeParaRevision)
	juridico.DictamenJuridico = strPtr("dictamen")

	_, err := env.svc.Revisar(context.Background(), nil, base.ID, dto.RevisarInformeRequest{Resultado: model.InformeValidado})
	require.NoError(t, err)
	a.Estado = model.AdmisionEnRevision
	_, err = env.svc.Revisar(context.Background(), nil, juridico.ID, dto.RevisarInformeRequest{Resultado: model.InformeValidado})
	require.NoError(t, err)

	abiertos, err := env.expedientes.ListPorAdmision(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, abiertos, 1)
}

// ── Complementarios ───────────────────────────────────────────────────────────

func TestCrearComplementario_SobreValidado(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionValidada)
	inf := env.seedInforme(a.ID, model.InformeBase, model.InformeValidado)

	resp, err := env.svc.CrearComplementario(context.Background(), nil, inf.ID, dto.CrearComplementarioRequest{
		Respuestas: []dto.RespuestaComplementarioRequest{
			{Campo: "cantidad de raciones", Valor: "120"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, inf.ID.String(), resp.InformeID)
	require.NotNil(t, resp.PDFPath)

	info, err := os.Stat(*resp.PDFPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCrearComplementario_EstadoInvalido(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionEnRevision)
	inf := env.seedInforme(a.ID, model.InformeBase, model.InformeParaRevision)

	_, err := env.svc.CrearComplementario(context.Background(), nil, inf.ID, dto.CrearComplementarioRequest{
		Respuestas: []dto.RespuestaComplementarioRequest{{Campo: "x", Valor: "y"}},
	})
	assert.ErrorIs(t, err, service.ErrEstadoInvalido)
}

// ── Reintento de artefactos ───────────────────────────────────────────────────

func TestReintentarArtefactos_ReconstruyeFaltantes(t *testing.T) {
	env := buildInformeSvc(t)
	a := env.seedAdmision(model.AdmisionValidada)
	env.seedInforme(a.ID, model.InformeBase, model.InformeValidado)

	hechos, err := env.svc.ReintentarArtefactos(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, hechos)

	art, err := env.artefactos.FindPorAdmision(context.Background(), a.ID)
	require.NoError(t, err)
	_, err = os.Stat(art.PDFPath)
	require.NoError(t, err)

	// Nothing left to rebuild on the second pass.
	hechos, err = env.svc.ReintentarArtefactos(context.Background(), 10)
	require.NoError(t, err)
	assert.Zero(t, hechos)
}
