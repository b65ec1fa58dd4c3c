package repositories

import (
	"context"

	"github.com/black-yen/sketer-workmoney/internal/core/domain"
)

// LedgerReader defines read operations against the row store.
type LedgerReader interface {
	// ListAll retrieves every ledger entry currently in the store, in store
	// order. Callers must not rely on any particular ordering.
	ListAll(ctx context.Context) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations against the row store.
type LedgerWriter interface {
	// Append persists a single ledger entry. Appends are individually
	// durable; there is no transaction spanning multiple calls.
	Append(ctx context.Context, entry domain.LedgerEntry) error

	// DeleteByIDs removes every entry whose ID is in the given set and
	// returns the number of rows actually removed. Absent IDs are ignored;
	// the call is idempotent.
	DeleteByIDs(ctx context.Context, entryIDs []string) (int, error)

	// EnsureHeader prepares the store so that appended rows land under the
	// canonical column layout. Safe to call repeatedly.
	EnsureHeader(ctx context.Context) error
}

// LedgerRepositoryFacade combines all row-store operations. This is the
// facade consumed by the ledger and reporting services.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
