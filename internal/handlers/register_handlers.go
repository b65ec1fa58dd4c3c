package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
)

// Services bundles everything the HTTP layer needs.
type Services struct {
	Rate      portssvc.RateSvcFacade
	Ledger    portssvc.LedgerSvcFacade
	Reporting portssvc.ReportingSvcFacade
	Roster    portssvc.RosterSvcFacade
	Payroll   domain.PayrollConfig
}

// RegisterValidations installs custom binding rules. nonblank rejects
// strings that are empty after trimming, which "required" alone does not.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

// RegisterRoutes wires every API route onto the given group.
func RegisterRoutes(group *gin.RouterGroup, svcs Services) {
	entriesHandler := newEntriesHandler(svcs.Ledger)
	entries := group.Group("/entries")
	{
		entries.POST("", entriesHandler.submitEntry)
		entries.GET("", entriesHandler.listEntries)
		entries.DELETE("", entriesHandler.deleteEntries)
	}

	reportsHandler := newReportsHandler(svcs.Reporting)
	reports := group.Group("/reports")
	{
		reports.GET("/monthly", reportsHandler.monthlySummary)
		reports.GET("/monthly/export", reportsHandler.exportMonthly)
	}

	rosterHandler := newRosterHandler(svcs.Roster)
	coaches := group.Group("/coaches")
	{
		coaches.GET("", rosterHandler.listCoaches)
		coaches.PUT("/:name/role", rosterHandler.updateCoachRole)
	}

	ratesHandler := newRatesHandler(svcs.Rate, svcs.Roster, svcs.Payroll)
	group.GET("/rates", ratesHandler.getRoleRates)
}
