package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/apierror"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/service"
)

type InformesHandler struct{ svc service.InformeService }

func NewInformesHandler(svc service.InformeService) *InformesHandler {
	return &InformesHandler{svc: svc}
}

// Obtener godoc
// @Summary      Obtener el informe de una admision
// @Tags         informes
// @Produce      json
// @Security     BearerAuth
// @Param        id       path string true "UUID de la admision"
// @Param        variante path string true "base | juridico"
// @Success      200  {object} dto.InformeResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/admisiones/{id}/informes/{variante} [get]
func (h *InformesHandler) Obtener(c *gin.Context) {
	admisionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), admisionID, c.Param("variante"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Guardar godoc
// @Summary      Guardar o enviar el informe
// @Description  accion=guardar conserva el borrador sin validar; accion=enviar valida las secciones y lo pasa a revision.
// @Tags         informes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path string true "UUID de la admision"
// @Param        variante path string true "base | juridico"
// @Param        body     body dto.GuardarInformeRequest true "Formulario"
// @Success      200  {object} dto.InformeResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/admisiones/{id}/informes/{variante} [put]
func (h *InformesHandler) Guardar(c *gin.Context) {
	admisionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.GuardarInformeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), actorID(c), admisionID, c.Param("variante"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Revisar godoc
// @Summary      Revisar un informe enviado
// @Description  a_subsanar devuelve el informe al operador con campos y observacion; validado lo congela y genera el artefacto PDF/DOCX.
// @Tags         informes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del informe"
// @Param        body body dto.RevisarInformeRequest true "Veredicto"
// @Success      200  {object} dto.InformeResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/informes/{id}/revision [post]
func (h *InformesHandler) Revisar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RevisarInformeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Revisar(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearComplementario godoc
// @Summary      Crear informe complementario
// @Tags         informes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del informe"
// @Param        body body dto.CrearComplementarioRequest true "Respuestas de subsanacion"
// @Success      201  {object} dto.ComplementarioResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/informes/{id}/complementario [post]
func (h *InformesHandler) CrearComplementario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CrearComplementarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearComplementario(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
