package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/dto"
	"github.com/black-yen/sketer-workmoney/internal/middleware"
)

// reportsHandler handles HTTP requests for monthly payroll reports.
type reportsHandler struct {
	reportingSvc portssvc.ReportingSvcFacade
}

func newReportsHandler(reportingSvc portssvc.ReportingSvcFacade) *reportsHandler {
	return &reportsHandler{reportingSvc: reportingSvc}
}

// monthlySummary godoc
// @Summary Monthly payroll summary
// @Description Per-coach rollup for one calendar month. Admins see every coach, others only themselves.
// @Tags reports
// @Produce json
// @Param X-Coach-Name header string true "Acting coach"
// @Param year query int true "Calendar year"
// @Param month query int true "Calendar month 1-12"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 503 {object} map[string]string "Row store unavailable"
// @Router /reports/monthly [get]
func (h *reportsHandler) monthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actingCoach, ok := middleware.GetCoachNameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	summaries, err := h.reportingSvc.MonthlySummary(c.Request.Context(), actingCoach, year, month)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Row store unavailable"})
		default:
			logger.Error("Failed to compute monthly summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute monthly summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(year, month, summaries))
}

// exportMonthly godoc
// @Summary Export the monthly payroll summary
// @Description Renders the monthly summary as CSV or PDF
// @Tags reports
// @Produce text/csv
// @Produce application/pdf
// @Param X-Coach-Name header string true "Acting coach"
// @Param year query int true "Calendar year"
// @Param month query int true "Calendar month 1-12"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid period or format"
// @Router /reports/monthly/export [get]
func (h *reportsHandler) exportMonthly(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actingCoach, ok := middleware.GetCoachNameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	var buf bytes.Buffer
	var contentType, filename string
	var err error

	switch format {
	case "csv":
		contentType = "text/csv"
		filename = fmt.Sprintf("payroll-%04d-%02d.csv", year, month)
		err = h.reportingSvc.ExportMonthlyCSV(c.Request.Context(), actingCoach, year, month, &buf)
	case "pdf":
		contentType = "application/pdf"
		filename = fmt.Sprintf("payroll-%04d-%02d.pdf", year, month)
		err = h.reportingSvc.ExportMonthlyPDF(c.Request.Context(), actingCoach, year, month, &buf)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export format"})
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Row store unavailable"})
		default:
			logger.Error("Failed to export monthly summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export monthly summary"})
		}
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func reportPeriod(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return 0, 0, false
	}
	return year, month, true
}
