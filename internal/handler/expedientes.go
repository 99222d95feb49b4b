package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dsocial118/SISOC-sub004/internal/apierror"
	"github.com/dsocial118/SISOC-sub004/internal/dto"
	"github.com/dsocial118/SISOC-sub004/internal/repository"
)

// ExpedientesHandler serves the payment expedientes of an admission.
type ExpedientesHandler struct {
	repo repository.ExpedienteRepository
}

func NewExpedientesHandler(repo repository.ExpedienteRepository) *ExpedientesHandler {
	return &ExpedientesHandler{repo: repo}
}

// ListarPorAdmision godoc
// @Summary      Expedientes de pago de una admision
// @Description  Retorna los expedientes abiertos para la admision, con sus notas vivas.
// @Tags         expedientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la admision"
// @Success      200 {array} dto.ExpedienteResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/admisiones/{id}/expedientes [get]
func (h *ExpedientesHandler) ListarPorAdmision(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}

	expedientes, err := h.repo.ListPorAdmision(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener los expedientes"))
		return
	}

	out := make([]dto.ExpedienteResponse, 0, len(expedientes))
	for i := range expedientes {
		exp := &expedientes[i]
		resp := dto.ExpedienteResponse{
			ID:            exp.ID.String(),
			AdmisionID:    exp.AdmisionID.String(),
			NroExpediente: exp.NroExpediente,
			Monto:         exp.Monto.StringFixed(2),
			CreatedAt:     exp.CreatedAt.Format(time.RFC3339),
		}
		notas, err := h.repo.ListNotas(c.Request.Context(), exp.ID)
		if err != nil {
			log.Warn().Err(err).Str("expediente_id", exp.ID.String()).
				Msg("expedientes: notas lookup failed")
		}
		for j := range notas {
			resp.Notas = append(resp.Notas, dto.NotaExpedienteResponse{
				ID:        notas[j].ID.String(),
				Texto:     notas[j].Texto,
				CreatedAt: notas[j].CreatedAt.Format(time.RFC3339),
			})
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, out)
}
