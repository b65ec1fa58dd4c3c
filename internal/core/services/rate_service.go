package services

import (
	"fmt"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portssvc "github.com/black-yen/sketer-workmoney/internal/core/ports/services"
)

// rateService resolves unit prices from an injected payroll configuration.
// It holds no mutable state and performs no I/O.
type rateService struct {
	cfg domain.PayrollConfig
}

// NewRateService creates a new rate resolver over the given configuration.
func NewRateService(cfg domain.PayrollConfig) portssvc.RateSvcFacade {
	return &rateService{cfg: cfg}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// Resolve returns the unit price for (role, item). The role's rate table is
// consulted first, then the extras table. An item found in neither is a
// free-text custom label and requires an explicit caller-supplied price;
// there is no default.
func (s *rateService) Resolve(role, item string, customPrice *int64) (int64, error) {
	if items, ok := s.cfg.Rates[role]; ok {
		if price, ok := items[item]; ok {
			return price, nil
		}
	}
	if price, ok := s.cfg.Extras[item]; ok {
		return price, nil
	}
	if customPrice == nil {
		return 0, fmt.Errorf("%w: custom item %q requires an explicit price", apperrors.ErrValidation, item)
	}
	if *customPrice < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}
	return *customPrice, nil
}

// ItemsForRole returns the billable items for a role. Roles missing from
// the rate table yield an empty set rather than an error.
func (s *rateService) ItemsForRole(role string) map[string]int64 {
	return s.cfg.Rates.ItemsForRole(role)
}

// Extras returns a copy of the equipment price table.
func (s *rateService) Extras() map[string]int64 {
	out := make(map[string]int64, len(s.cfg.Extras))
	for k, v := range s.cfg.Extras {
		out[k] = v
	}
	return out
}
