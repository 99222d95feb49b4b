package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/apierror"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/service"
)

// PapeleraHandler exposes the administrador-only trash endpoints.
type PapeleraHandler struct{ svc service.PapeleraService }

func NewPapeleraHandler(svc service.PapeleraService) *PapeleraHandler {
	return &PapeleraHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar elementos eliminados
// @Tags         papelera
// @Produce      json
// @Security     BearerAuth
// @Param        tipo     query string false "Filtro por tipo registrado"
// @Param        busqueda query string false "Busqueda de texto"
// @Param        page     query int    false "Pagina"
// @Param        limit    query int    false "Tamano de pagina"
// @Success      200  {object} dto.PapeleraListResponse
// @Router       /v1/papelera [get]
func (h *PapeleraHandler) Listar(c *gin.Context) {
	var filter dto.PapeleraFilter
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

// Preview godoc
// @Summary      Previsualizar la restauracion en cascada
// @Description  Devuelve cuantas filas de cada tipo volverian a la vida, con ejemplos, sin ejecutar nada.
// @Tags         papelera
// @Produce      json
// @Security     BearerAuth
// @Param        tipo path string true "Clave de tipo (p.ej. admisiones.Admision)"
// @Param        id   path string true "UUID del elemento"
// @Success      200  {object} dto.ResumenResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/papelera/{tipo}/{id}/preview [get]
func (h *PapeleraHandler) Preview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.PreviewRestaurar(c.Request.Context(), c.Param("tipo"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Restaurar godoc
// @Summary      Restaurar un elemento y su cascada
// @Description  Requiere confirmed=1: la pantalla de confirmacion debe haberse mostrado antes.
// @Tags         papelera
// @Produce      json
// @Security     BearerAuth
// @Param        tipo      path  string true "Clave de tipo"
// @Param        id        path  string true "UUID del elemento"
// @Param        confirmed query string true "Debe ser 1"
// @Success      200  {object} dto.RestaurarResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/papelera/{tipo}/{id}/restaurar [post]
func (h *PapeleraHandler) Restaurar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	confirmado := c.Query("confirmed") == "1"
	resp, err := h.svc.Restaurar(c.Request.Context(), actorID(c), c.Param("tipo"), id, confirmado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
