package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portsrepo "github.com/black-yen/sketer-workmoney/internal/core/ports/repositories"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/dto"
	"github.com/black-yen/sketer-workmoney/internal/middleware"
)

var (
	ErrQuantityNegative = errors.New("quantity must not be negative")
	ErrDateMissing      = errors.New("submission date is required")
	ErrUnknownCoach     = errors.New("acting coach is not on the roster")
)

// ledgerService is the ledger engine: it derives entries from submissions,
// appends them to the row store, and supports filtered listing and
// identifier-based deletion.
type ledgerService struct {
	cfg       domain.PayrollConfig
	rateSvc   portssvc.RateSvcFacade
	rosterSvc portssvc.RosterSvcFacade
	repo      portsrepo.LedgerRepositoryFacade
	loc       *time.Location
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(cfg domain.PayrollConfig, rateSvc portssvc.RateSvcFacade, rosterSvc portssvc.RosterSvcFacade, repo portsrepo.LedgerRepositoryFacade, loc *time.Location) portssvc.LedgerSvcFacade {
	return &ledgerService{
		cfg:       cfg,
		rateSvc:   rateSvc,
		rosterSvc: rosterSvc,
		repo:      repo,
		loc:       loc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// DeriveEntries computes the ledger entries one submission produces. It
// performs no I/O and fails only on malformed input.
//
// Rules:
//  1. Lead roles earn unit price times headcount; flat roles earn the unit
//     price once, with quantity recorded as 1.
//  2. The primary entry is emitted only when its amount is non-zero or the
//     quantity was explicitly non-zero, so a pure equipment sale produces
//     no no-op teaching row.
//  3. Equipment quantities attach to the primary entry as a bonus when one
//     exists; otherwise each equipment type with a positive count becomes
//     its own zero-base entry with the amount carried as equipment bonus.
//  4. Naming an assisted head coach mirrors the primary entry's base amount
//     as a negative entry against that coach. Zero-amount deductions are
//     suppressed.
//  5. Every entry of the submission shares one creation timestamp but has
//     its own identifier, so the deduction row can be deleted on its own.
func (s *ledgerService) DeriveEntries(in domain.SubmissionInput, now time.Time) ([]domain.LedgerEntry, error) {
	if in.CoachName == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: coach name and role are required", apperrors.ErrValidation)
	}
	if in.Quantity < 0 || in.ShoesQty < 0 || in.GearQty < 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrQuantityNegative)
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDateMissing)
	}

	unitPrice, err := s.rateSvc.Resolve(in.Role, in.Item, in.CustomPrice)
	if err != nil {
		return nil, err
	}

	day := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, s.loc)
	bonus := in.ShoesQty*s.cfg.ShoePrice() + in.GearQty*s.cfg.GearPrice()

	var base, recordedQty int64
	if s.cfg.IsLeadRole(in.Role) {
		base = unitPrice * in.Quantity
		recordedQty = in.Quantity
	} else {
		// Flat roles are paid per session; the entered quantity is not a
		// multiplier and is recorded as 1 for bookkeeping.
		base = unitPrice
		recordedQty = 1
	}

	var entries []domain.LedgerEntry

	emitPrimary := base != 0 || in.Quantity > 0
	if emitPrimary {
		entries = append(entries, domain.LedgerEntry{
			EntryID:        uuid.NewString(),
			Date:           day,
			CoachName:      in.CoachName,
			Role:           in.Role,
			ItemLabel:      in.Item,
			Quantity:       recordedQty,
			BaseAmount:     base,
			AssistedCoach:  normalizeAssist(in.AssistedCoach, in.CoachName),
			ShoesQty:       in.ShoesQty,
			GearQty:        in.GearQty,
			EquipmentBonus: bonus,
			TotalAmount:    base + bonus,
			CreatedAt:      now,
		})
	} else {
		// Standalone equipment rows carry their money as equipment bonus with
		// a zero base, so total = base + shoes*price + gear*price holds on
		// every row. Quantity stays zero: equipment counts are not headcount.
		if in.ShoesQty > 0 {
			amount := in.ShoesQty * s.cfg.ShoePrice()
			entries = append(entries, domain.LedgerEntry{
				EntryID:        uuid.NewString(),
				Date:           day,
				CoachName:      in.CoachName,
				Role:           in.Role,
				ItemLabel:      s.cfg.Equipment.ShoesItem,
				ShoesQty:       in.ShoesQty,
				EquipmentBonus: amount,
				TotalAmount:    amount,
				CreatedAt:      now,
			})
		}
		if in.GearQty > 0 {
			amount := in.GearQty * s.cfg.GearPrice()
			entries = append(entries, domain.LedgerEntry{
				EntryID:        uuid.NewString(),
				Date:           day,
				CoachName:      in.CoachName,
				Role:           in.Role,
				ItemLabel:      s.cfg.Equipment.GearItem,
				GearQty:        in.GearQty,
				EquipmentBonus: amount,
				TotalAmount:    amount,
				CreatedAt:      now,
			})
		}
	}

	// Deduction mirroring: the assisted head coach absorbs the assistant's
	// base pay as a negative entry. Equipment never participates, and a
	// zero base produces no deduction row.
	assisted := normalizeAssist(in.AssistedCoach, in.CoachName)
	if assisted != "" && emitPrimary && base != 0 {
		entries = append(entries, domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			Date:          day,
			CoachName:     assisted,
			Role:          in.Role,
			ItemLabel:     fmt.Sprintf("助教扣款（%s）", in.CoachName),
			BaseAmount:    -base,
			AssistedCoach: in.CoachName, // back-reference to the acting coach
			IsDeduction:   true,
			TotalAmount:   -base,
			CreatedAt:     now,
		})
	}

	return entries, nil
}

// normalizeAssist maps the sentinel "none" choices and self-assists to the
// empty string.
func normalizeAssist(assisted, actingCoach string) string {
	if assisted == "" || assisted == domain.AssistNone || assisted == "none" || assisted == actingCoach {
		return ""
	}
	return assisted
}

// SubmitEntry derives the entries for one submission and appends them to
// the row store. Appends are sequential and individually durable; if one
// fails after others landed, a *apperrors.PartialWriteError names the
// entries that made it.
func (s *ledgerService) SubmitEntry(ctx context.Context, actingCoach string, req dto.SubmitEntryRequest) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.rosterSvc.FindCoach(ctx, actingCoach); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnknownCoach)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}

	input := domain.SubmissionInput{
		CoachName:     actingCoach,
		Role:          req.Role,
		Item:          req.Item,
		Quantity:      req.Quantity,
		CustomPrice:   req.CustomPrice,
		ShoesQty:      req.ShoesQty,
		GearQty:       req.GearQty,
		AssistedCoach: req.AssistedCoach,
		Date:          date,
	}

	now := time.Now().In(s.loc)
	entries, err := s.DeriveEntries(input, now)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: submission produces no entries", apperrors.ErrValidation)
	}

	landed := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := s.repo.Append(ctx, entry); err != nil {
			logger.Error("Failed to append ledger entry",
				slog.String("entry_id", entry.EntryID),
				slog.String("coach", entry.CoachName),
				slog.String("error", err.Error()))
			if len(landed) > 0 {
				return nil, &apperrors.PartialWriteError{LandedIDs: landed, FailedID: entry.EntryID, Err: err}
			}
			return nil, fmt.Errorf("failed to append entry %s: %w", entry.EntryID, err)
		}
		landed = append(landed, entry.EntryID)
	}

	logger.Info("Submission persisted",
		slog.String("coach", actingCoach),
		slog.Int("entry_count", len(entries)),
		slog.Int64("total", sumTotals(entries)))
	return entries, nil
}

// ListEntries returns entries matching the filter, newest billing day
// first. Non-admin coaches are pinned to their own entries regardless of
// the requested coach filter.
func (s *ledgerService) ListEntries(ctx context.Context, actingCoach string, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !s.rosterSvc.IsAdmin(ctx, actingCoach) {
		filter.CoachName = actingCoach
	}
	if filter.Now.IsZero() {
		filter.Now = time.Now().In(s.loc)
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	matched := make([]domain.LedgerEntry, 0, len(all))
	for _, e := range all {
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}

	// The store guarantees no ordering; sort for display.
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

// DeleteEntries removes the identified entries from the store. Deleting an
// absent identifier is a no-op. Non-admin coaches may only delete entries
// they own.
func (s *ledgerService) DeleteEntries(ctx context.Context, actingCoach string, entryIDs []string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(entryIDs) == 0 {
		return 0, nil
	}

	if !s.rosterSvc.IsAdmin(ctx, actingCoach) {
		all, err := s.repo.ListAll(ctx)
		if err != nil {
			logger.Error("Failed to list entries for delete authorization", slog.String("error", err.Error()))
			return 0, fmt.Errorf("failed to list ledger entries: %w", err)
		}
		owner := make(map[string]string, len(all))
		for _, e := range all {
			owner[e.EntryID] = e.CoachName
		}
		for _, id := range entryIDs {
			if name, exists := owner[id]; exists && name != actingCoach {
				logger.Warn("Coach attempted to delete another coach's entry",
					slog.String("acting_coach", actingCoach),
					slog.String("entry_id", id),
					slog.String("entry_owner", name))
				return 0, fmt.Errorf("%w: entry %s belongs to %s", apperrors.ErrForbidden, id, name)
			}
		}
	}

	deleted, err := s.repo.DeleteByIDs(ctx, entryIDs)
	if err != nil {
		logger.Error("Failed to delete ledger entries", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to delete ledger entries: %w", err)
	}

	logger.Info("Ledger entries deleted", slog.String("acting_coach", actingCoach), slog.Int("deleted", deleted))
	return deleted, nil
}

func sumTotals(entries []domain.LedgerEntry) int64 {
	var sum int64
	for _, e := range entries {
		sum += e.TotalAmount
	}
	return sum
}
