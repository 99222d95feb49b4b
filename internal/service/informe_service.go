package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
	"github.com/dsocial118/SISOC-sub004/internal/config"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/infra"
	"github.com/dsocial118/SISOC-sub004/internal/model"
	"github.com/dsocial118/SISOC-sub004/internal/repository"
	"github.com/dsocial118/SISOC-sub004/internal/worker"
)

type InformeService interface {
	Obtener(ctx context.Context, admisionID uuid.UUID, variante string) (*dto.InformeResponse, error)
	Guardar(ctx context.Context, actor *uuid.UUID, admisionID uuid.UUID, variante string, req dto.GuardarInformeRequest) (*dto.InformeResponse, error)
	Revisar(ctx context.Context, actor *uuid.UUID, informeID uuid.UUID, req dto.RevisarInformeRequest) (*dto.InformeResponse, error)
	CrearComplementario(ctx context.Context, actor *uuid.UUID, informeID uuid.UUID, req dto.CrearComplementarioRequest) (*dto.ComplementarioResponse, error)

	// ReintentarArtefactos rebuilds missing artifacts for validated informes.
	// Consumed by the render-retry cron.
	ReintentarArtefactos(ctx context.Context, limite int) (int, error)
}

type informeService struct {
	repo           repository.InformeRepository
	admisionRepo   repository.AdmisionRepository
	artefactoRepo  repository.ArtefactoRepository
	usuarioRepo    repository.UsuarioRepository
	expedienteRepo repository.ExpedienteRepository
	recorder       *audit.Recorder
	dispatcher     *worker.Dispatcher
	cfg            *config.Config
}

func NewInformeService(
	repo repository.InformeRepository,
	admisionRepo repository.AdmisionRepository,
	artefactoRepo repository.ArtefactoRepository,
	usuarioRepo repository.UsuarioRepository,
	expedienteRepo repository.ExpedienteRepository,
	recorder *audit.Recorder,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) InformeService {
	return &informeService{
		repo:           repo,
		admisionRepo:   admisionRepo,
		artefactoRepo:  artefactoRepo,
		usuarioRepo:    usuarioRepo,
		expedienteRepo: expedienteRepo,
		recorder:       recorder,
		dispatcher:     dispatcher,
		cfg:            cfg,
	}
}

func (s *informeService) Obtener(ctx context.Context, admisionID uuid.UUID, variante string) (*dto.InformeResponse, error) {
	inf, err := s.repo.FindPorVariante(ctx, admisionID, variante)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return s.conAnotaciones(ctx, inf)
}

// Guardar saves the informe form of an admission. accion=guardar keeps the
// draft as-is; accion=enviar validates every required section, finalizes the
// form, clears prior review annotations and notifies the reviewers.
func (s *informeService) Guardar(ctx context.Context, actor *uuid.UUID, admisionID uuid.UUID, variante string, req dto.GuardarInformeRequest) (*dto.InformeResponse, error) {
	if variante != model.InformeBase && variante != model.InformeJuridico {
		return nil, fmt.Errorf("%w: variante %q", ErrValidacion, variante)
	}

	a, err := s.admisionRepo.FindByID(ctx, admisionID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if !a.Mutable() {
		return nil, fmt.Errorf("%w: la admision esta cerrada", ErrEstadoInvalido)
	}

	inf, err := s.repo.FindPorVariante(ctx, admisionID, variante)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		inf = &model.InformeTecnico{
			AdmisionID:     admisionID,
			Variante:       variante,
			RedactadoPorID: actor,
		}
		if err := s.repo.Create(ctx, inf); err != nil {
			return nil, err
		}
		s.recorder.Creacion(ctx, actor, model.TipoInformeTecnico, inf.ID, audit.Snapshot(inf))
	case err != nil:
		return nil, err
	}

	// Submitted reports only reopen through the reviewer's a_subsanar.
	if inf.Estado == model.InformeParaRevision || inf.Estado == model.InformeValidado {
		return nil, fmt.Errorf("%w: el informe esta %s", ErrEstadoInvalido, inf.Estado)
	}

	antes := audit.Snapshot(inf)
	inf.Diagnostico = req.Diagnostico
	inf.Evaluacion = req.Evaluacion
	inf.Conclusion = req.Conclusion
	inf.DictamenJuridico = req.DictamenJuridico

	if req.Accion == "enviar" {
		if err := validarSecciones(inf); err != nil {
			return nil, err
		}
		inf.EstadoFormulario = model.FormularioFinalizado
		inf.Estado = model.InformeParaRevision

		// Leaving the subsanation loop drops the reviewer annotations.
		if err := s.repo.ClearCampos(ctx, inf.ID); err != nil {
			return nil, err
		}
		if err := s.repo.ClearObservaciones(ctx, inf.ID); err != nil {
			return nil, err
		}
	} else {
		inf.EstadoFormulario = model.FormularioBorrador
	}

	if err := s.repo.Update(ctx, inf); err != nil {
		return nil, err
	}
	s.recorder.Actualizacion(ctx, actor, model.TipoInformeTecnico, inf.ID, antes, audit.Snapshot(inf))

	if req.Accion == "enviar" {
		s.actualizarEstadoAdmision(ctx, actor, a, model.AdmisionEnRevision)
		s.notificarRevisores(ctx, a, inf)
	}

	return s.conAnotaciones(ctx, inf)
}

func validarSecciones(inf *model.InformeTecnico) error {
	faltan := []string{}
	vacio := func(p *string) bool { return p == nil || strings.TrimSpace(*p) == "" }
	if vacio(inf.Diagnostico) {
		faltan = append(faltan, "diagnostico")
	}
	if vacio(inf.Evaluacion) {
		faltan = append(faltan, "evaluacion")
	}
	if vacio(inf.Conclusion) {
		faltan = append(faltan, "conclusion")
	}
	if inf.Variante == model.InformeJuridico && vacio(inf.DictamenJuridico) {
		faltan = append(faltan, "dictamen_juridico")
	}
	if len(faltan) > 0 {
		return fmt.Errorf("%w: secciones incompletas: %s", ErrValidacion, strings.Join(faltan, ", "))
	}
	return nil
}

// Revisar applies the reviewer verdict on a submitted informe. a_subsanar
// reopens the form and records the annotations; validado freezes it and
// builds the PDF/DOCX artifact. A render failure never rolls back the
// validation. An already validated informe can still be sent back to
// a_subsanar, which reopens the whole ciclo.
func (s *informeService) Revisar(ctx context.Context, actor *uuid.UUID, informeID uuid.UUID, req dto.RevisarInformeRequest) (*dto.InformeResponse, error) {
	inf, err := s.repo.FindByID(ctx, informeID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	reabre := inf.Estado == model.InformeValidado && req.Resultado == model.InformeASubsanar
	if inf.Estado != model.InformeParaRevision && !reabre {
		return nil, fmt.Errorf("%w: el informe esta %s", ErrEstadoInvalido, inf.Estado)
	}

	a, err := s.admisionRepo.FindByID(ctx, inf.AdmisionID)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	antes := audit.Snapshot(inf)
	switch req.Resultado {
	case model.InformeASubsanar:
		if len(req.Campos) == 0 {
			return nil, fmt.Errorf("%w: a_subsanar requiere al menos un campo", ErrValidacion)
		}
		campos := make([]model.CampoASubsanar, 0, len(req.Campos))
		for _, nombre := range req.Campos {
			campos = append(campos, model.CampoASubsanar{InformeID: inf.ID, NombreCampo: nombre})
		}
		if err := s.repo.ClearCampos(ctx, inf.ID); err != nil {
			return nil, err
		}
		if err := s.repo.CreateCampos(ctx, campos); err != nil {
			return nil, err
		}
		if req.Observacion != nil {
			obs := &model.ObservacionRevision{InformeID: inf.ID, RevisorID: actor, Texto: *req.Observacion}
			if err := s.repo.UpsertObservacion(ctx, obs); err != nil {
				return nil, err
			}
		}

		inf.Estado = model.InformeASubsanar
		inf.EstadoFormulario = model.FormularioBorrador
		if err := s.repo.Update(ctx, inf); err != nil {
			return nil, err
		}
		s.recorder.Actualizacion(ctx, actor, model.TipoInformeTecnico, inf.ID, antes, audit.Snapshot(inf))
		s.actualizarEstadoAdmision(ctx, actor, a, model.AdmisionASubsanar)
		s.notificarOperador(ctx, a, inf, req.Observacion)

	case model.InformeValidado:
		inf.Estado = model.InformeValidado
		if err := s.repo.Update(ctx, inf); err != nil {
			return nil, err
		}
		s.recorder.Actualizacion(ctx, actor, model.TipoInformeTecnico, inf.ID, antes, audit.Snapshot(inf))
		s.actualizarEstadoAdmision(ctx, actor, a, model.AdmisionValidada)
		s.abrirExpediente(ctx, actor, a, inf)

		if _, err := s.generarArtefactos(ctx, a, inf); err != nil {
			// Validation stands; the retry cron picks this informe up later.
			log.Error().Err(err).
				Str("informe_id", inf.ID.String()).
				Msg("informes: artifact build failed, validation kept")
		}

	default:
		return nil, fmt.Errorf("%w: resultado %q", ErrValidacion, req.Resultado)
	}

	return s.conAnotaciones(ctx, inf)
}

// CrearComplementario answers a subsanation round on a validated informe
// with a follow-up mini report and its own PDF.
func (s *informeService) CrearComplementario(ctx context.Context, actor *uuid.UUID, informeID uuid.UUID, req dto.CrearComplementarioRequest) (*dto.ComplementarioResponse, error) {
	inf, err := s.repo.FindByID(ctx, informeID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if inf.Estado != model.InformeValidado && inf.Estado != model.InformeASubsanar {
		return nil, fmt.Errorf("%w: el informe esta %s", ErrEstadoInvalido, inf.Estado)
	}

	c := &model.InformeComplementario{
		InformeID:   inf.ID,
		CreadoPorID: actor,
	}
	for _, r := range req.Respuestas {
		c.Respuestas = append(c.Respuestas, model.RespuestaComplementario{Campo: r.Campo, Valor: r.Valor})
	}
	if err := s.repo.CreateComplementario(ctx, c); err != nil {
		return nil, err
	}
	s.recorder.Creacion(ctx, actor, model.TipoInformeComplementario, c.ID, audit.Snapshot(c))

	filas := make([]infra.RespuestaRender, 0, len(req.Respuestas))
	for _, r := range req.Respuestas {
		filas = append(filas, infra.RespuestaRender{Campo: r.Campo, Valor: r.Valor})
	}
	pdfPath := filepath.Join(s.cfg.ArtefactosStoragePath, "complementarios",
		fmt.Sprintf("complementario-%s.pdf", c.ID))
	if err := infra.GenerarComplementarioPDF("Informe complementario", filas, pdfPath); err != nil {
		log.Error().Err(err).Str("complementario_id", c.ID.String()).
			Msg("informes: complementario PDF failed")
	} else {
		c.PDFPath = &pdfPath
		if err := s.repo.UpdateComplementario(ctx, c); err != nil {
			return nil, err
		}
	}

	return &dto.ComplementarioResponse{
		ID:        c.ID.String(),
		InformeID: c.InformeID.String(),
		PDFPath:   c.PDFPath,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *informeService) ReintentarArtefactos(ctx context.Context, limite int) (int, error) {
	pendientes, err := s.repo.ListValidadosSinArtefacto(ctx, limite)
	if err != nil {
		return 0, err
	}
	hechos := 0
	for i := range pendientes {
		inf := &pendientes[i]
		a, err := s.admisionRepo.FindByIDTodas(ctx, inf.AdmisionID)
		if err != nil {
			continue
		}
		if _, err := s.generarArtefactos(ctx, a, inf); err != nil {
			log.Warn().Err(err).Str("informe_id", inf.ID.String()).
				Msg("informes: artifact retry failed")
			continue
		}
		hechos++
	}
	return hechos, nil
}

// generarArtefactos renders the PDF (required) and DOCX (best effort) for a
// validated informe and upserts the admission's artifact row. On a PDF
// failure the rendered text is dumped to a temp file for inspection.
func (s *informeService) generarArtefactos(ctx context.Context, a *model.Admision, inf *model.InformeTecnico) (*model.ArtefactoInforme, error) {
	contenido := s.construirContenido(ctx, a, inf)

	pdfPath := filepath.Join(s.cfg.ArtefactosStoragePath, inf.Variante,
		fmt.Sprintf("informe-%s.pdf", inf.ID))
	if err := infra.GenerarInformePDF(contenido, pdfPath); err != nil {
		dump := volcarTexto(contenido)
		log.Error().Err(err).Str("dump", dump).
			Str("informe_id", inf.ID.String()).
			Msg("informes: PDF render failed, text dumped")
		return nil, err
	}

	var docxPath *string
	candidato := filepath.Join(s.cfg.ArtefactosStoragePath, inf.Variante,
		fmt.Sprintf("informe-%s.docx", inf.ID))
	if err := infra.GenerarInformeDOCX(contenido, candidato); err != nil {
		log.Warn().Err(err).Str("informe_id", inf.ID.String()).
			Msg("informes: styled DOCX failed, falling back to plain text")
		if err := infra.GenerarInformeDOCXPlano(contenido, candidato); err != nil {
			log.Warn().Err(err).Str("informe_id", inf.ID.String()).
				Msg("informes: plain DOCX failed too, keeping PDF only")
		} else {
			docxPath = &candidato
		}
	} else {
		docxPath = &candidato
	}

	art := &model.ArtefactoInforme{
		AdmisionID: a.ID,
		InformeID:  inf.ID,
		Variante:   inf.Variante,
		PDFPath:    pdfPath,
		DOCXPath:   docxPath,
	}
	if err := s.artefactoRepo.Upsert(ctx, art); err != nil {
		return nil, err
	}
	return art, nil
}

func (s *informeService) construirContenido(ctx context.Context, a *model.Admision, inf *model.InformeTecnico) *infra.ContenidoInforme {
	contenido := &infra.ContenidoInforme{
		Titulo:     "Informe tecnico de admision",
		Convenio:   a.TipoConvenio,
		Variante:   inf.Variante,
		GeneradoEl: time.Now(),
	}
	if inf.Variante == model.InformeJuridico {
		contenido.Titulo = "Informe tecnico juridico de admision"
	}
	if a.Comedor != nil {
		contenido.Comedor = a.Comedor.Nombre
	}

	// Presentation data from the anexo: a missing anexo just leaves the
	// meal-count line out.
	if anexo, err := s.admisionRepo.FindAnexo(ctx, a.ID); err == nil {
		contenido.Raciones = fmt.Sprintf("Comensales: %d en %d dias por semana",
			anexo.TotalComensales(), anexo.DiasPorSemana)
	}

	texto := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	contenido.Secciones = []infra.SeccionInforme{
		{Titulo: "Diagnostico", Texto: texto(inf.Diagnostico)},
		{Titulo: "Evaluacion", Texto: texto(inf.Evaluacion)},
		{Titulo: "Conclusion", Texto: texto(inf.Conclusion)},
	}
	if inf.Variante == model.InformeJuridico {
		contenido.Secciones = append(contenido.Secciones,
			infra.SeccionInforme{Titulo: "Dictamen juridico", Texto: texto(inf.DictamenJuridico)})
	}
	return contenido
}

// volcarTexto writes the flattened contenido to a temp file and returns its
// path ("" when even that fails).
func volcarTexto(contenido *infra.ContenidoInforme) string {
	f, err := os.CreateTemp("", "informe-dump-*.txt")
	if err != nil {
		return ""
	}
	defer f.Close()
	for _, linea := range contenido.TextoPlano() {
		fmt.Fprintln(f, linea)
	}
	return f.Name()
}

// abrirExpediente opens the payment expediente of an admission the first
// time one of its informes is validated. The monto comes from the anexo;
// a missing anexo opens the expediente at zero. Best effort: a failure here
// never rolls back the validation.
func (s *informeService) abrirExpediente(ctx context.Context, actor *uuid.UUID, a *model.Admision, inf *model.InformeTecnico) {
	existentes, err := s.expedienteRepo.ListPorAdmision(ctx, a.ID)
	if err != nil {
		log.Warn().Err(err).Str("admision_id", a.ID.String()).
			Msg("informes: expediente lookup failed")
		return
	}
	if len(existentes) > 0 {
		return
	}

	exp := &model.ExpedientePago{
		AdmisionID:    a.ID,
		NroExpediente: fmt.Sprintf("EX-%d-%s", time.Now().Year(), a.ID.String()[:8]),
	}
	if anexo, err := s.admisionRepo.FindAnexo(ctx, a.ID); err == nil {
		exp.Monto = anexo.MontoPrestacion
	}
	if err := s.expedienteRepo.Create(ctx, exp); err != nil {
		log.Error().Err(err).Str("admision_id", a.ID.String()).
			Msg("informes: expediente create failed")
		return
	}
	s.recorder.Creacion(ctx, actor, model.TipoExpedientePago, exp.ID, audit.Snapshot(exp))

	nota := &model.NotaExpediente{
		ExpedienteID: exp.ID,
		Texto:        fmt.Sprintf("Expediente abierto por validacion del informe %s.", inf.Variante),
	}
	if err := s.expedienteRepo.CreateNota(ctx, nota); err != nil {
		log.Warn().Err(err).Str("expediente_id", exp.ID.String()).
			Msg("informes: nota inicial failed")
	}
}

func (s *informeService) actualizarEstadoAdmision(ctx context.Context, actor *uuid.UUID, a *model.Admision, estado string) {
	if a.Estado == estado {
		return
	}
	antes := audit.Snapshot(a)
	a.Estado = estado
	a.ModificadoPorID = actor
	if err := s.admisionRepo.Update(ctx, a); err != nil {
		log.Error().Err(err).Str("admision_id", a.ID.String()).
			Msg("informes: admission state update failed")
		return
	}
	s.recorder.Actualizacion(ctx, actor, model.TipoAdmision, a.ID, antes, audit.Snapshot(a))
}

func (s *informeService) notificarRevisores(ctx context.Context, a *model.Admision, inf *model.InformeTecnico) {
	revisores, err := s.usuarioRepo.ListByRol(ctx, model.RolRevisor)
	if err != nil {
		log.Warn().Err(err).Msg("informes: could not list reviewers for notification")
		return
	}
	to := emailsDe(revisores)
	if len(to) == 0 {
		return
	}
	s.encolarEmail(ctx, worker.EmailJobPayload{
		ToEmails: to,
		Subject:  fmt.Sprintf("Informe %s enviado a revision", inf.Variante),
		Body: fmt.Sprintf("El informe %s de la admision %s (%s) fue enviado a revision.",
			inf.Variante, a.ID, a.TipoConvenio),
	})
}

func (s *informeService) notificarOperador(ctx context.Context, a *model.Admision, inf *model.InformeTecnico, observacion *string) {
	if a.CreadoPorID == nil {
		return
	}
	operador, err := s.usuarioRepo.FindByID(ctx, *a.CreadoPorID)
	if err != nil || operador.Email == nil {
		return
	}
	body := fmt.Sprintf("El informe %s de la admision %s volvio a subsanacion.", inf.Variante, a.ID)
	if observacion != nil {
		body += "\n\nObservacion del revisor: " + *observacion
	}
	s.encolarEmail(ctx, worker.EmailJobPayload{
		ToEmails: []string{*operador.Email},
		Subject:  "Informe a subsanar",
		Body:     body,
	})
}

func (s *informeService) encolarEmail(ctx context.Context, payload worker.EmailJobPayload) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Warn().Err(err).Msg("informes: email enqueue failed")
	}
}

func (s *informeService) conAnotaciones(ctx context.Context, inf *model.InformeTecnico) (*dto.InformeResponse, error) {
	resp := informeToResponse(inf)

	campos, err := s.repo.ListCampos(ctx, inf.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range campos {
		resp.CamposASubsanar = append(resp.CamposASubsanar, c.NombreCampo)
	}

	observaciones, err := s.repo.ListObservaciones(ctx, inf.ID)
	if err != nil {
		return nil, err
	}
	if len(observaciones) > 0 {
		resp.Observacion = &observaciones[0].Texto
	}
	return &resp, nil
}

func emailsDe(usuarios []model.Usuario) []string {
	out := make([]string, 0, len(usuarios))
	for i := range usuarios {
		if usuarios[i].Email != nil && *usuarios[i].Email != "" {
			out = append(out, *usuarios[i].Email)
		}
	}
	return out
}

func informeToResponse(inf *model.InformeTecnico) dto.InformeResponse {
	return dto.InformeResponse{
		ID:               inf.ID.String(),
		AdmisionID:       inf.AdmisionID.String(),
		Variante:         inf.Variante,
		EstadoFormulario: inf.EstadoFormulario,
		Estado:           inf.Estado,
		Diagnostico:      inf.Diagnostico,
		Evaluacion:       inf.Evaluacion,
		Conclusion:       inf.Conclusion,
		DictamenJuridico: inf.DictamenJuridico,
		UpdatedAt:        inf.UpdatedAt.Format(time.RFC3339),
	}
}
