package services

import (
	"context"
	"io"
	"time"

	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	"github.com/black-yen/sketer-workmoney/internal/dto"
)

// RateSvcFacade resolves unit prices from the configured rate and extras
// tables. Pure lookups, no I/O.
type RateSvcFacade interface {
	// Resolve returns the unit price for (role, item). Lookup order: the
	// role's rate table, then the extras table, then the caller-supplied
	// custom price. A free-text item with no custom price is a validation
	// error.
	Resolve(role, item string, customPrice *int64) (int64, error)

	// ItemsForRole returns the billable items for a role, empty for roles
	// absent from the rate table.
	ItemsForRole(role string) map[string]int64

	// Extras returns the equipment price table.
	Extras() map[string]int64
}

// LedgerSvcFacade is the ledger engine: derivation, submission, querying and
// deletion of payroll entries.
type LedgerSvcFacade interface {
	// SubmitEntry derives entries from the submission and appends them to
	// the row store. A failure after some appends succeeded is returned as
	// *apperrors.PartialWriteError.
	SubmitEntry(ctx context.Context, actingCoach string, req dto.SubmitEntryRequest) ([]domain.LedgerEntry, error)

	// DeriveEntries computes the entries a submission produces without
	// touching the store. now stamps every derived entry.
	DeriveEntries(input domain.SubmissionInput, now time.Time) ([]domain.LedgerEntry, error)

	// ListEntries returns entries matching the filter, newest billing day
	// first. Non-admin coaches only ever see their own entries.
	ListEntries(ctx context.Context, actingCoach string, filter domain.EntryFilter) ([]domain.LedgerEntry, error)

	// DeleteEntries removes the identified entries. Non-admin coaches may
	// only delete their own. Returns the number of rows removed; absent IDs
	// are a no-op.
	DeleteEntries(ctx context.Context, actingCoach string, entryIDs []string) (int, error)
}

// ReportingSvcFacade aggregates ledger entries into monthly payroll
// summaries and exports them.
type ReportingSvcFacade interface {
	MonthlySummary(ctx context.Context, actingCoach string, year, month int) ([]domain.CoachSummary, error)
	ExportMonthlyCSV(ctx context.Context, actingCoach string, year, month int, w io.Writer) error
	ExportMonthlyPDF(ctx context.Context, actingCoach string, year, month int, w io.Writer) error
}

// RosterSvcFacade exposes the coach roster and the explicit default-role
// update command.
type RosterSvcFacade interface {
	ListCoaches(ctx context.Context) []domain.Coach
	FindCoach(ctx context.Context, name string) (domain.Coach, error)
	IsAdmin(ctx context.Context, name string) bool

	// UpdateDefaultRole changes a coach's stored default role. This is a
	// deliberate, audited command; filing a ledger entry under a different
	// role never changes the stored default.
	UpdateDefaultRole(ctx context.Context, actingCoach, targetCoach, newRole string) (domain.Coach, error)
}
