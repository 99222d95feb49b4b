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

type ComedoresHandler struct{ svc service.ComedorService }

func NewComedoresHandler(svc service.ComedorService) *ComedoresHandler {
	return &ComedoresHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear comedor
// @Tags         comedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearComedorRequest true "Datos del comedor"
// @Success      201  {object} dto.ComedorResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/comedores [post]
func (h *ComedoresHandler) Crear(c *gin.Context) {
	var req dto.CrearComedorRequest
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
// @Summary      Obtener comedor
// @Tags         comedores
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del comedor"
// @Success      200  {object} dto.ComedorResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/comedores/{id} [get]
func (h *ComedoresHandler) Obtener(c *gin.Context) {
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
// @Summary      Listar comedores
// @Tags         comedores
// @Produce      json
// @Security     BearerAuth
// @Param        busqueda query string false "Busqueda por nombre o localidad"
// @Param        page     query int    false "Pagina"
// @Param        limit    query int    false "Tamano de pagina"
// @Success      200  {object} dto.ComedorListResponse
// @Router       /v1/comedores [get]
func (h *ComedoresHandler) Listar(c *gin.Context) {
	var filter dto.ComedorFilter
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

// actorID extracts the authenticated user id from the JWT claims, nil when
// the route is unauthenticated.
func actorID(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}
	return &id
}
