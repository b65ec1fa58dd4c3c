package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/dto"
	"github.com/black-yen/sketer-workmoney/internal/middleware"
)

// rosterHandler handles HTTP requests for the coach roster.
type rosterHandler struct {
	rosterSvc portssvc.RosterSvcFacade
}

func newRosterHandler(rosterSvc portssvc.RosterSvcFacade) *rosterHandler {
	return &rosterHandler{rosterSvc: rosterSvc}
}

// listCoaches godoc
// @Summary List the coach roster
// @Tags coaches
// @Produce json
// @Param X-Coach-Name header string true "Acting coach"
// @Success 200 {object} dto.ListCoachesResponse
// @Router /coaches [get]
func (h *rosterHandler) listCoaches(c *gin.Context) {
	coaches := h.rosterSvc.ListCoaches(c.Request.Context())
	out := make([]dto.CoachResponse, len(coaches))
	for i, coach := range coaches {
		out[i] = dto.ToCoachResponse(coach)
	}
	c.JSON(http.StatusOK, dto.ListCoachesResponse{Coaches: out})
}

// updateCoachRole godoc
// @Summary Update a coach's default role
// @Description Explicit, audited role change. Filing a ledger entry under a different role never changes the stored default.
// @Tags coaches
// @Accept json
// @Produce json
// @Param X-Coach-Name header string true "Acting coach"
// @Param name path string true "Target coach"
// @Param request body dto.UpdateCoachRoleRequest true "New default role"
// @Success 200 {object} dto.CoachResponse
// @Failure 403 {object} map[string]string "Only admins may change another coach's role"
// @Failure 404 {object} map[string]string "Coach not found"
// @Router /coaches/{name}/role [put]
func (h *rosterHandler) updateCoachRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateCoachRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actingCoach, ok := middleware.GetCoachNameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	targetCoach := c.Param("name")
	coach, err := h.rosterSvc.UpdateDefaultRole(c.Request.Context(), actingCoach, targetCoach, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Coach not found"})
		default:
			logger.Error("Failed to update coach role", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coach role"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCoachResponse(coach))
}
