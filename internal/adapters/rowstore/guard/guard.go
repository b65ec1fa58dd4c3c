// Package guard decorates a ledger repository with a circuit breaker and a
// bounded retry for transient connectivity failures. Logical errors pass
// through untouched and are never retried.
package guard

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portsrepo "github.com/black-yen/sketer-workmoney/internal/core/ports/repositories"
)

const (
	readAttempts = 3
	retryBackoff = 200 * time.Millisecond
)

// GuardedRepository wraps another repository. Read operations are retried a
// bounded number of times on ErrStoreUnavailable; writes go through the
// breaker but are never retried, since a retry after an ambiguous append
// failure could duplicate a row.
type GuardedRepository struct {
	inner   portsrepo.LedgerRepositoryFacade
	breaker *gobreaker.CircuitBreaker
}

// Wrap decorates the given repository.
func Wrap(inner portsrepo.LedgerRepositoryFacade) *GuardedRepository {
	settings := gobreaker.Settings{
		Name: "rowstore",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		Timeout: 30 * time.Second,
		IsSuccessful: func(err error) bool {
			// Only connectivity failures count against the breaker.
			return err == nil || !errors.Is(err, apperrors.ErrStoreUnavailable)
		},
	}
	return &GuardedRepository{inner: inner, breaker: gobreaker.NewCircuitBreaker(settings)}
}

var _ portsrepo.LedgerRepositoryFacade = (*GuardedRepository)(nil)

func (g *GuardedRepository) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := g.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.Join(apperrors.ErrStoreUnavailable, err)
	}
	return result, err
}

func (g *GuardedRepository) executeWithRetry(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	var result interface{}
	var err error
	for attempt := 0; attempt < readAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff):
			}
		}
		result, err = g.execute(fn)
		if err == nil || !errors.Is(err, apperrors.ErrStoreUnavailable) {
			return result, err
		}
	}
	return result, err
}

// EnsureHeader is idempotent and safe to retry.
func (g *GuardedRepository) EnsureHeader(ctx context.Context) error {
	_, err := g.executeWithRetry(ctx, func() (interface{}, error) {
		return nil, g.inner.EnsureHeader(ctx)
	})
	return err
}

// ListAll is read-only and safe to retry.
func (g *GuardedRepository) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	result, err := g.executeWithRetry(ctx, func() (interface{}, error) {
		return g.inner.ListAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	entries, _ := result.([]domain.LedgerEntry)
	return entries, nil
}

// Append is not retried: an ambiguous failure could have landed the row.
func (g *GuardedRepository) Append(ctx context.Context, entry domain.LedgerEntry) error {
	_, err := g.execute(func() (interface{}, error) {
		return nil, g.inner.Append(ctx, entry)
	})
	return err
}

// DeleteByIDs is not retried; the inner store re-resolves positions on
// every call, so the caller decides whether to reissue.
func (g *GuardedRepository) DeleteByIDs(ctx context.Context, entryIDs []string) (int, error) {
	result, err := g.execute(func() (interface{}, error) {
		return g.inner.DeleteByIDs(ctx, entryIDs)
	})
	if err != nil {
		return 0, err
	}
	deleted, _ := result.(int)
	return deleted, nil
}
