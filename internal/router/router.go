package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dsocial118/SISOC-sub004/internal/audit"
	"github.com/dsocial118/SISOC-sub004/internal/config"
	"github.com/dsocial118/SISOC-sub004/internal/handler"
	"github.com/dsocial118/SISOC-sub004/internal/middleware"
	"github.com/dsocial118/SISOC-sub004/internal/repository"
	"github.com/dsocial118/SISOC-sub004/internal/service"
	"github.com/dsocial118/SISOC-sub004/internal/softdelete"
	"github.com/dsocial118/SISOC-sub004/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine plus the
// informe service (the render-retry cron consumes it).
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	engine *softdelete.Engine,
	recorder *audit.Recorder,
	dispatcher *worker.Dispatcher,
) (*gin.Engine, service.InformeService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	comedorRepo := repository.NewComedorRepository(db)
	admisionRepo := repository.NewAdmisionRepository(db)
	informeRepo := repository.NewInformeRepository(db)
	artefactoRepo := repository.NewArtefactoRepository(db)
	historialRepo := repository.NewHistorialRepository(db)
	expedienteRepo := repository.NewExpedienteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	comedorSvc := service.NewComedorService(comedorRepo, recorder)
	admisionSvc := service.NewAdmisionService(admisionRepo, comedorRepo, engine, recorder)
	informeSvc := service.NewInformeService(informeRepo, admisionRepo, artefactoRepo, usuarioRepo, expedienteRepo, recorder, dispatcher, cfg)
	papeleraSvc := service.NewPapeleraService(db, engine, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	comedoresH := handler.NewComedoresHandler(comedorSvc)
	admisionesH := handler.NewAdmisionesHandler(admisionSvc)
	documentosH := handler.NewDocumentosHandler(admisionSvc)
	informesH := handler.NewInformesHandler(informeSvc)
	papeleraH := handler.NewPapeleraHandler(papeleraSvc)
	historialH := handler.NewHistorialHandler(historialRepo)
	expedientesH := handler.NewExpedientesHandler(expedienteRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("operador", "revisor", "abogado", "administrador")
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/comedores", todos, comedoresH.Listar)
		v1.GET("/comedores/:id", todos, comedoresH.Obtener)
		v1.POST("/comedores", middleware.RequireRole("operador", "administrador"), comedoresH.Crear)

		v1.GET("/admisiones", todos, admisionesH.Listar)
		v1.GET("/admisiones/:id", todos, admisionesH.Obtener)
		v1.POST("/admisiones", middleware.RequireRole("operador", "administrador"), admisionesH.Crear)
		// Deletion cascades; only the platform admin may trigger it.
		v1.DELETE("/admisiones/:id", middleware.RequireRole("administrador"), admisionesH.Eliminar)

		v1.POST("/admisiones/:id/documentos", middleware.RequireRole("operador", "administrador"), admisionesH.AdjuntarDocumento)
		v1.DELETE("/admisiones/:id/documentos/:doc_id", middleware.RequireRole("operador", "administrador"), admisionesH.EliminarDocumento)
		v1.GET("/tipos-documento", todos, admisionesH.ListarTiposDocumento)

		v1.GET("/admisiones/:id/expedientes", todos, expedientesH.ListarPorAdmision)

		// The transition table enforces per-edge roles; the route only
		// requires an authenticated reviewer-side actor.
		v1.PUT("/documentos/:id/estado", middleware.RequireRole("revisor", "abogado", "administrador"), documentosH.ActualizarEstado)

		v1.GET("/admisiones/:id/informes/:variante", todos, informesH.Obtener)
		v1.PUT("/admisiones/:id/informes/:variante", middleware.RequireRole("operador", "abogado", "administrador"), informesH.Guardar)
		v1.POST("/informes/:id/revision", middleware.RequireRole("revisor", "administrador"), informesH.Revisar)
		v1.POST("/informes/:id/complementario", middleware.RequireRole("operador", "administrador"), informesH.CrearComplementario)

		v1.GET("/historial/:tipo/:id", middleware.RequireRole("revisor", "administrador"), historialH.ListarPorEntidad)

		papelera := v1.Group("/papelera", middleware.RequireRole("administrador"))
		{
			papelera.GET("", papeleraH.Listar)
			papelera.GET("/:tipo/:id/preview", papeleraH.Preview)
			papelera.POST("/:tipo/:id/restaurar", papeleraH.Restaurar)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.POST("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, informeSvc
}
