package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dsocial118/SISOC-sub004/internal/apierror"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/repository"
)

// HistorialHandler serves the immutable audit trail of an entity.
type HistorialHandler struct {
	repo repository.HistorialRepository
}

func NewHistorialHandler(repo repository.HistorialRepository) *HistorialHandler {
	return &HistorialHandler{repo: repo}
}

// ListarPorEntidad godoc
// @Summary      Historial de cambios de una entidad
// @Description  Retorna las filas de auditoria de una entidad, ordenadas por fecha descendente.
// @Tags         historial
// @Produce      json
// @Security     BearerAuth
// @Param        tipo  path  string true  "Clave de tipo (p.ej. admisiones.Admision)"
// @Param        id    path  string true  "UUID de la entidad"
// @Param        page  query int    false "Pagina (default 1)"
// @Param        limit query int    false "Registros por pagina (default 50, max 200)"
// @Success      200   {object} dto.HistorialListResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/historial/{tipo}/{id} [get]
func (h *HistorialHandler) ListarPorEntidad(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	rows, total, err := h.repo.ListPorEntidad(c.Request.Context(), c.Param("tipo"), id, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener el historial"))
		return
	}

	items := make([]dto.HistorialItem, 0, len(rows))
	for i := range rows {
		item := dto.HistorialItem{
			ID:          rows[i].ID.String(),
			Registrado:  rows[i].Registrado.Format(time.RFC3339),
			Accion:      rows[i].Accion,
			TipoEntidad: rows[i].TipoEntidad,
			EntidadID:   rows[i].EntidadID.String(),
			Diff:        rows[i].Diff,
		}
		if rows[i].ActorID != nil {
			actor := rows[i].ActorID.String()
			item.ActorID = &actor
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, dto.HistorialListResponse{
		Data:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
