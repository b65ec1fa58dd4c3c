// Package csvfile implements the ledger row store on a local flat file.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portsrepo "github.com/black-yen/sketer-workmoney/internal/core/ports/repositories"
	"github.com/black-yen/sketer-workmoney/internal/utils/mapping"
)

// CSVRepository persists ledger entries in a single CSV file under the
// canonical column layout. A process-wide mutex serializes writers; the
// file itself offers no cross-process synchronization.
type CSVRepository struct {
	mu   sync.Mutex
	path string
	loc  *time.Location
}

// NewCSVRepository creates a repository backed by the file at path.
func NewCSVRepository(path string, loc *time.Location) portsrepo.LedgerRepositoryFacade {
	return &CSVRepository{path: path, loc: loc}
}

var _ portsrepo.LedgerRepositoryFacade = (*CSVRepository)(nil)

// EnsureHeader creates the file with the canonical header row if it does
// not exist yet. Safe to call repeatedly.
func (r *CSVRepository) EnsureHeader(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(mapping.HeaderColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Append writes one entry to the end of the file.
func (r *CSVRepository) Append(ctx context.Context, entry domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(mapping.EntryToRow(entry)); err != nil {
		return fmt.Errorf("failed to append entry %s: %w", entry.EntryID, err)
	}
	w.Flush()
	return w.Error()
}

// ListAll reads every entry from the file. Rows that fail to parse are
// skipped rather than failing the whole listing.
func (r *CSVRepository) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

func (r *CSVRepository) readAll() ([]domain.LedgerEntry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var entries []domain.LedgerEntry
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
		}
		if first {
			first = false
			if len(record) > 0 && record[0] == mapping.HeaderColumns[0] {
				continue
			}
		}
		entry, err := mapping.RowToEntry(record, r.loc)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteByIDs removes the identified entries by rewriting the file through
// a temp file and renaming it into place. Absent IDs are ignored.
func (r *CSVRepository) DeleteByIDs(ctx context.Context, entryIDs []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	targets := make(map[string]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		targets[id] = struct{}{}
	}

	entries, err := r.readAll()
	if err != nil {
		return 0, err
	}

	kept := make([]domain.LedgerEntry, 0, len(entries))
	deleted := 0
	for _, e := range entries {
		if _, hit := targets[e.EntryID]; hit {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	if deleted == 0 {
		return 0, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "workmoney-*.csv")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	tmpPath := tmp.Name()
	w := csv.NewWriter(tmp)
	writeErr := w.Write(mapping.HeaderColumns)
	for _, e := range kept {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(mapping.EntryToRow(e))
	}
	w.Flush()
	if writeErr == nil {
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to rewrite %s: %w", r.path, writeErr)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return deleted, nil
}
