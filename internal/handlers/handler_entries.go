package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/dto"
	"github.com/black-yen/sketer-workmoney/internal/middleware"
)

// entriesHandler handles HTTP requests for ledger entries.
type entriesHandler struct {
	ledgerSvc portssvc.LedgerSvcFacade
}

func newEntriesHandler(ledgerSvc portssvc.LedgerSvcFacade) *entriesHandler {
	return &entriesHandler{ledgerSvc: ledgerSvc}
}

// submitEntry godoc
// @Summary File one payroll submission
// @Description Derives ledger entries (primary, equipment, deduction mirror) and appends them to the row store
// @Tags entries
// @Accept json
// @Produce json
// @Param X-Coach-Name header string true "Acting coach"
// @Param submission body dto.SubmitEntryRequest true "Submission"
// @Success 200 {object} dto.SubmitEntryResponse
// @Failure 400 {object} map[string]string "Invalid submission"
// @Failure 207 {object} dto.PartialWriteResponse "Some derived entries landed before a failure"
// @Failure 503 {object} map[string]string "Row store unavailable"
// @Router /entries [post]
func (h *entriesHandler) submitEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind submission", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actingCoach, ok := middleware.GetCoachNameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.ledgerSvc.SubmitEntry(c.Request.Context(), actingCoach, req)
	if err != nil {
		var partial *apperrors.PartialWriteError
		switch {
		case errors.As(err, &partial):
			logger.Error("Partial write on submission", slog.String("error", partial.Error()))
			c.JSON(http.StatusMultiStatus, dto.PartialWriteResponse{
				Error:     "Submission partially persisted",
				LandedIDs: partial.LandedIDs,
				FailedID:  partial.FailedID,
			})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Row store unavailable"})
		default:
			logger.Error("Failed to submit entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SubmitEntryResponse{Entries: dto.ToEntryResponses(entries)})
}

// listEntries godoc
// @Summary List ledger entries
// @Description Returns entries matching the AND-composed filters, newest billing day first
// @Tags entries
// @Produce json
// @Param X-Coach-Name header string true "Acting coach"
// @Param coach query string false "Exact coach name (admins only; others always see their own)"
// @Param year query int false "Calendar year"
// @Param month query int false "Calendar month 1-12"
// @Param lastDays query int false "Trailing window in days"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 503 {object} map[string]string "Row store unavailable"
// @Router /entries [get]
func (h *entriesHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actingCoach, ok := middleware.GetCoachNameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter := domain.EntryFilter{CoachName: c.Query("coach")}
	var err error
	if filter.Year, err = intQuery(c, "year"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	if filter.Month, err = intQuery(c, "month"); err != nil || filter.Month < 0 || filter.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}
	if filter.LastDays, err = intQuery(c, "lastDays"); err != nil || filter.LastDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lastDays"})
		return
	}

	entries, err := h.ledgerSvc.ListEntries(c.Request.Context(), actingCoach, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Row store unavailable"})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: dto.ToEntryResponses(entries)})
}

// deleteEntries godoc
// @Summary Delete ledger entries by identifier
// @Description Removes the identified entries; absent identifiers are a no-op. Non-admins may only delete their own entries.
// @Tags entries
// @Accept json
// @Produce json
// @Param X-Coach-Name header string true "Acting coach"
// @Param request body dto.DeleteEntriesRequest true "Entry identifiers"
// @Success 200 {object} dto.DeleteEntriesResponse
// @Failure 403 {object} map[string]string "Entry belongs to another coach"
// @Failure 409 {object} map[string]string "Delete target went stale"
// @Failure 503 {object} map[string]string "Row store unavailable"
// @Router /entries [delete]
func (h *entriesHandler) deleteEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DeleteEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actingCoach, ok := middleware.GetCoachNameFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deleted, err := h.ledgerSvc.DeleteEntries(c.Request.Context(), actingCoach, req.EntryIDs)
	if err != nil {
		var stale *apperrors.StaleDeleteTargetError
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.As(err, &stale):
			logger.Warn("Stale delete target", slog.String("entry_id", stale.EntryID), slog.Int("row", stale.Row))
			c.JSON(http.StatusConflict, gin.H{"error": "Delete target changed, please retry"})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Row store unavailable"})
		default:
			logger.Error("Failed to delete entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entries"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DeleteEntriesResponse{Deleted: deleted})
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
