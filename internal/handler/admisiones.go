package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/apierror"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/service"
)

type AdmisionesHandler struct{ svc service.AdmisionService }

func NewAdmisionesHandler(svc service.AdmisionService) *AdmisionesHandler {
	return &AdmisionesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear admision
// @Description  Abre una admision en borrador y genera los documentos requeridos del catalogo.
// @Tags         admisiones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearAdmisionRequest true "Datos de la admision"
// @Success      201  {object} dto.AdmisionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/admisiones [post]
func (h *AdmisionesHandler) Crear(c *gin.Context) {
	var req dto.CrearAdmisionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Obtener admision con sus documentos
// @Tags         admisiones
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la admision"
// @Success      200  {object} dto.AdmisionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/admisiones/{id} [get]
func (h *AdmisionesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar admisiones
// @Tags         admisiones
// @Produce      json
// @Security     BearerAuth
// @Param        estado        query string false "Filtro por estado"
// @Param        comedor_id    query string false "Filtro por comedor"
// @Param        tipo_convenio query string false "Filtro por tipo de convenio"
// @Param        page          query int    false "Pagina"
// @Param        limit         query int    false "Tamano de pagina"
// @Success      200  {object} dto.AdmisionListResponse
// @Router       /v1/admisiones [get]
func (h *AdmisionesHandler) Listar(c *gin.Context) {
	var filter dto.AdmisionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar admision (baja logica en cascada)
// @Description  Marca la admision y todo lo que posee como eliminados; el convenio aceptado queda protegido.
// @Tags         admisiones
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la admision"
// @Success      200  {object} dto.EliminacionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/admisiones/{id} [delete]
func (h *AdmisionesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Eliminar(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdjuntarDocumento godoc
// @Summary      Adjuntar archivo a un documento de la admision
// @Tags         admisiones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la admision"
// @Param        body body dto.AdjuntarDocumentoRequest true "Archivo y tipo o nombre"
// @Success      201  {object} dto.DocumentoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/admisiones/{id}/documentos [post]
func (h *AdmisionesHandler) AdjuntarDocumento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AdjuntarDocumentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjuntarDocumento(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EliminarDocumento godoc
// @Summary      Quitar un archivo adjunto
// @Tags         admisiones
// @Security     BearerAuth
// @Param        id     path string true "UUID de la admision"
// @Param        doc_id path string true "UUID del documento"
// @Success      204
// @Failure      409  {object} apierror.APIError
// @Router       /v1/admisiones/{id}/documentos/{doc_id} [delete]
func (h *AdmisionesHandler) EliminarDocumento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	docID, err := uuid.Parse(c.Param("doc_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de documento invalido"))
		return
	}
	if err := h.svc.EliminarDocumento(c.Request.Context(), actorID(c), id, docID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarTiposDocumento godoc
// @Summary      Catalogo de tipos de documento
// @Tags         admisiones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.TipoDocumentoResponse
// @Router       /v1/tipos-documento [get]
func (h *AdmisionesHandler) ListarTiposDocumento(c *gin.Context) {
	resp, err := h.svc.ListarTiposDocumento(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
