// Package pgsql implements the ledger row store on PostgreSQL. Unlike the
// spreadsheet store it supports native identifier-based deletion, so no
// position resolution is needed.
package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portsrepo "github.com/black-yen/sketer-workmoney/internal/core/ports/repositories"
)

// PgxLedgerRepository persists ledger entries in the ledger_entries table.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewPgxLedgerRepository creates a new repository over the given pool.
func NewPgxLedgerRepository(pool *pgxpool.Pool, loc *time.Location) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool, loc: loc}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// EnsureHeader is a no-op: the schema is managed by migrations.
func (r *PgxLedgerRepository) EnsureHeader(ctx context.Context) error {
	return nil
}

// Append inserts one ledger entry.
func (r *PgxLedgerRepository) Append(ctx context.Context, e domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries
			(entry_id, entry_date, coach_name, role, item_label, quantity, base_amount,
			 assisted_coach, deduction_flag, shoes_qty, gear_qty, equipment_bonus, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		e.EntryID,
		e.Date,
		e.CoachName,
		e.Role,
		e.ItemLabel,
		e.Quantity,
		e.BaseAmount,
		e.AssistedCoach,
		e.IsDeduction,
		e.ShoesQty,
		e.GearQty,
		e.EquipmentBonus,
		e.TotalAmount,
		e.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to insert entry %s: %w", e.EntryID, err))
	}
	return nil
}

// ListAll retrieves every ledger entry.
func (r *PgxLedgerRepository) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, entry_date, coach_name, role, item_label, quantity, base_amount,
		       assisted_coach, deduction_flag, shoes_qty, gear_qty, equipment_bonus, total_amount, created_at
		FROM ledger_entries;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to query ledger entries: %w", err))
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(
			&e.EntryID,
			&e.Date,
			&e.CoachName,
			&e.Role,
			&e.ItemLabel,
			&e.Quantity,
			&e.BaseAmount,
			&e.AssistedCoach,
			&e.IsDeduction,
			&e.ShoesQty,
			&e.GearQty,
			&e.EquipmentBonus,
			&e.TotalAmount,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		e.Date = e.Date.In(r.loc)
		e.CreatedAt = e.CreatedAt.In(r.loc)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("failed to iterate ledger entries: %w", err))
	}
	return entries, nil
}

// DeleteByIDs removes the identified entries; absent IDs are ignored.
func (r *PgxLedgerRepository) DeleteByIDs(ctx context.Context, entryIDs []string) (int, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = ANY($1);`, entryIDs)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to delete ledger entries: %w", err))
	}
	return int(tag.RowsAffected()), nil
}

// classify maps connection-level failures to ErrStoreUnavailable. Query
// errors with a SQLSTATE are logical and pass through untouched.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && !pgconn.Timeout(err) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}
