package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
	"github.com/black-yen/sketer-workmoney/internal/middleware"
)

// rosterService holds the coach roster loaded from configuration. The only
// mutation it supports is the explicit default-role update command; filing
// a ledger entry under a different role never touches the roster.
type rosterService struct {
	mu      sync.RWMutex
	coaches []domain.Coach
	roles   map[string]domain.RoleConfig
}

// NewRosterService creates a roster service from the payroll configuration.
func NewRosterService(cfg domain.PayrollConfig) portssvc.RosterSvcFacade {
	coaches := make([]domain.Coach, len(cfg.Coaches))
	copy(coaches, cfg.Coaches)
	return &rosterService{coaches: coaches, roles: cfg.Roles}
}

var _ portssvc.RosterSvcFacade = (*rosterService)(nil)

// ListCoaches returns a snapshot of the roster.
func (s *rosterService) ListCoaches(ctx context.Context) []domain.Coach {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Coach, len(s.coaches))
	copy(out, s.coaches)
	return out
}

// FindCoach looks up a roster member by name.
func (s *rosterService) FindCoach(ctx context.Context, name string) (domain.Coach, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.coaches {
		if c.Name == name {
			return c, nil
		}
	}
	return domain.Coach{}, fmt.Errorf("coach %q: %w", name, apperrors.ErrNotFound)
}

// IsAdmin reports whether the named coach is an admin. Unknown coaches are
// never admins.
func (s *rosterService) IsAdmin(ctx context.Context, name string) bool {
	coach, err := s.FindCoach(ctx, name)
	return err == nil && coach.IsAdmin
}

// UpdateDefaultRole changes a coach's stored default role. Coaches may
// change their own default; changing someone else's requires admin. The
// change is audit-logged and held for the process lifetime; the
// configuration document remains the source of truth at boot.
func (s *rosterService) UpdateDefaultRole(ctx context.Context, actingCoach, targetCoach, newRole string) (domain.Coach, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if newRole == "" {
		return domain.Coach{}, fmt.Errorf("%w: role must not be empty", apperrors.ErrValidation)
	}
	if _, known := s.roles[newRole]; !known {
		return domain.Coach{}, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, newRole)
	}
	if actingCoach != targetCoach && !s.IsAdmin(ctx, actingCoach) {
		return domain.Coach{}, fmt.Errorf("%w: only admins may change another coach's role", apperrors.ErrForbidden)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.coaches {
		if s.coaches[i].Name == targetCoach {
			previous := s.coaches[i].Role
			s.coaches[i].Role = newRole
			logger.Info("Coach default role updated",
				slog.String("acting_coach", actingCoach),
				slog.String("target_coach", targetCoach),
				slog.String("previous_role", previous),
				slog.String("new_role", newRole))
			return s.coaches[i], nil
		}
	}
	return domain.Coach{}, fmt.Errorf("coach %q: %w", targetCoach, apperrors.ErrNotFound)
}
