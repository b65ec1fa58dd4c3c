package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/dto"
	"github.com/black-yen/sketer-workmoney/internal/middleware"
)

// ratesHandler exposes the rate resolver for form rendering.
type ratesHandler struct {
	rateSvc   portssvc.RateSvcFacade
	rosterSvc portssvc.RosterSvcFacade
	cfg       domain.PayrollConfig
}

func newRatesHandler(rateSvc portssvc.RateSvcFacade, rosterSvc portssvc.RosterSvcFacade, cfg domain.PayrollConfig) *ratesHandler {
	return &ratesHandler{rateSvc: rateSvc, rosterSvc: rosterSvc, cfg: cfg}
}

// getRoleRates godoc
// @Summary Billable items and prices for a role
// @Description Unknown roles yield an empty item set; only equipment sales remain possible for them.
// @Tags rates
// @Produce json
// @Param X-Coach-Name header string true "Acting coach"
// @Param role query string false "Role name; defaults to the acting coach's stored default role"
// @Success 200 {object} dto.RoleRatesResponse
// @Router /rates [get]
func (h *ratesHandler) getRoleRates(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		if name, ok := middleware.GetCoachNameFromContext(c.Request.Context()); ok {
			if coach, err := h.rosterSvc.FindCoach(c.Request.Context(), name); err == nil {
				role = coach.Role
			}
		}
	}

	c.JSON(http.StatusOK, dto.RoleRatesResponse{
		Role:   role,
		IsLead: h.cfg.IsLeadRole(role),
		Items:  h.rateSvc.ItemsForRole(role),
		Extras: h.rateSvc.Extras(),
	})
}
