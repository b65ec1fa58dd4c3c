package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portsrepo "github.com/black-yen/sketer-workmoney/internal/core/ports/repositories"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/middleware"
)

// reportingService rolls ledger entries up into per-coach monthly payroll
// summaries and renders CSV/PDF exports.
type reportingService struct {
	repo      portsrepo.LedgerReader
	rosterSvc portssvc.RosterSvcFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(repo portsrepo.LedgerReader, rosterSvc portssvc.RosterSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{repo: repo, rosterSvc: rosterSvc}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Aggregate groups entries by coach name, summing totals, entry counts,
// headcounts and equipment quantities. Output is sorted by coach name for
// stable reports.
func Aggregate(entries []domain.LedgerEntry) []domain.CoachSummary {
	byCoach := make(map[string]*domain.CoachSummary)
	for _, e := range entries {
		s, ok := byCoach[e.CoachName]
		if !ok {
			s = &domain.CoachSummary{CoachName: e.CoachName}
			byCoach[e.CoachName] = s
		}
		s.EntryCount++
		s.TotalAmount += e.TotalAmount
		s.HeadcountSum += e.Quantity
		s.ShoesSum += e.ShoesQty
		s.GearSum += e.GearQty
	}

	out := make([]domain.CoachSummary, 0, len(byCoach))
	for _, s := range byCoach {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CoachName < out[j].CoachName })
	return out
}

// MonthlySummary aggregates one calendar month. Admins see every coach;
// everyone else gets only their own rollup.
func (s *reportingService) MonthlySummary(ctx context.Context, actingCoach string, year, month int) ([]domain.CoachSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if year <= 0 || month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: invalid report period %d-%d", apperrors.ErrValidation, year, month)
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		logger.Error("Failed to list entries for monthly summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	filter := domain.EntryFilter{Year: year, Month: month}
	if !s.rosterSvc.IsAdmin(ctx, actingCoach) {
		filter.CoachName = actingCoach
	}

	matched := make([]domain.LedgerEntry, 0, len(all))
	for _, e := range all {
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}

	summaries := Aggregate(matched)
	logger.Debug("Monthly summary computed",
		slog.Int("year", year), slog.Int("month", month),
		slog.Int("coach_count", len(summaries)))
	return summaries, nil
}

var exportHeader = []string{"coach_name", "entry_count", "headcount_sum", "shoes_sum", "gear_sum", "total_amount"}

// ExportMonthlyCSV writes the monthly summary as CSV.
func (s *reportingService) ExportMonthlyCSV(ctx context.Context, actingCoach string, year, month int, w io.Writer) error {
	summaries, err := s.MonthlySummary(ctx, actingCoach, year, month)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, sum := range summaries {
		record := []string{
			sum.CoachName,
			strconv.Itoa(sum.EntryCount),
			strconv.FormatInt(sum.HeadcountSum, 10),
			strconv.FormatInt(sum.ShoesSum, 10),
			strconv.FormatInt(sum.GearSum, 10),
			strconv.FormatInt(sum.TotalAmount, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record for %s: %w", sum.CoachName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportMonthlyPDF renders the monthly summary as a one-page PDF table.
func (s *reportingService) ExportMonthlyPDF(ctx context.Context, actingCoach string, year, month int, w io.Writer) error {
	summaries, err := s.MonthlySummary(ctx, actingCoach, year, month)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Monthly Payroll Summary %04d-%02d", year, month))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 11)
	widths := []float64{50, 25, 30, 25, 25, 35}
	for i, col := range exportHeader {
		pdf.CellFormat(widths[i], 8, col, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, sum := range summaries {
		cells := []string{
			sum.CoachName,
			strconv.Itoa(sum.EntryCount),
			strconv.FormatInt(sum.HeadcountSum, 10),
			strconv.FormatInt(sum.ShoesSum, 10),
			strconv.FormatInt(sum.GearSum, 10),
			strconv.FormatInt(sum.TotalAmount, 10),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
