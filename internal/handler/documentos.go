package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/apierror"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/middleware"
	"github.com/dsocial118/SISOC-sub004/internal/service"
)

type DocumentosHandler struct{ svc service.AdmisionService }

func NewDocumentosHandler(svc service.AdmisionService) *DocumentosHandler {
	return &DocumentosHandler{svc: svc}
}

// ActualizarEstado godoc
// @Summary      Cambiar el estado de un documento
// @Description  Aplica la tabla de transiciones con control de rol: el revisor analiza, el abogado acepta.
// @Tags         documentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del documento"
// @Param        body body dto.ActualizarEstadoDocumentoRequest true "Nuevo estado"
// @Success      200  {object} dto.DocumentoResponse
// @Failure      403  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/documentos/{id}/estado [put]
func (h *DocumentosHandler) ActualizarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarEstadoDocumentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ActualizarEstadoDocumento(c.Request.Context(), actorID(c), claims.Rol, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
