// Package memory provides process-lifetime storage for the portfolio ledger.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/simaogato/fintech-analyzer/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	mu       sync.RWMutex
	holdings []*domain.Holding
}

// NewHoldingRepository creates a new empty holding repository
func NewHoldingRepository() domain.HoldingRepository {
	return &holdingRepository{}
}

// Append stores a copy of the holding at the end of the ledger
func (r *holdingRepository) Append(ctx context.Context, holding *domain.Holding) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to append holding: %w", err)
	}
	if holding == nil {
		return fmt.Errorf("failed to append holding: %w: nil holding", domain.ErrInvalidHolding)
	}

	stored := *holding

	r.mu.Lock()
	defer r.mu.Unlock()
	r.holdings = append(r.holdings, &stored)
	return nil
}

// List retrieves copies of every holding in insertion order
func (r *holdingRepository) List(ctx context.Context) ([]*domain.Holding, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	holdings := make([]*domain.Holding, 0, len(r.holdings))
	for _, h := range r.holdings {
		c := *h
		holdings = append(holdings, &c)
	}
	return holdings, nil
}

// Count returns the number of stored holdings
func (r *holdingRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("failed to count holdings: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.holdings), nil
}
