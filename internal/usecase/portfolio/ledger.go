// Package portfolio implements the holdings ledger: insertion with derived
// metrics, aggregate summary, allocation by asset type and performance rankings.
package portfolio

import (
	"context"
	"fmt"

	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/allocator"
	"github.com/simaogato/fintech-analyzer/internal/usecase/ranking"
)

// AddHoldingInput represents the input for adding a holding
type AddHoldingInput struct {
	AssetType     domain.AssetType
	Name          string
	Symbol        string
	Quantity      float64
	PurchasePrice float64
	CurrentPrice  float64
}

// Summary aggregates the whole ledger.
// Percent fields are 0 on an empty ledger: no holdings is a zero return.
type Summary struct {
	TotalCostBasis    float64                      `json:"total_cost_basis"`
	TotalCurrentValue float64                      `json:"total_current_value"`
	TotalGainLoss     float64                      `json:"total_gain_loss"`
	TotalGainLossPct  float64                      `json:"total_gain_loss_pct"`
	Count             int                          `json:"count"`
	ValueByType       map[domain.AssetType]float64 `json:"value_by_type"`
}

// Ledger handles portfolio business logic on top of a HoldingRepository
type Ledger struct {
	repo domain.HoldingRepository
}

// NewLedger creates a new Ledger instance
func NewLedger(repo domain.HoldingRepository) *Ledger {
	return &Ledger{repo: repo}
}

// AddHolding validates the input and appends a new holding to the ledger.
// An invalid holding fails with domain.ErrInvalidHolding and the ledger is unchanged.
func (l *Ledger) AddHolding(ctx context.Context, input AddHoldingInput) (*domain.Holding, error) {
	holding, err := domain.NewHolding(
		input.AssetType,
		input.Name,
		input.Symbol,
		input.Quantity,
		input.PurchasePrice,
		input.CurrentPrice,
	)
	if err != nil {
		return nil, err
	}

	if err := l.repo.Append(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to store holding: %w", err)
	}

	return holding, nil
}

// Holdings returns every holding in insertion order
func (l *Ledger) Holdings(ctx context.Context) ([]*domain.Holding, error) {
	holdings, err := l.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return holdings, nil
}

// Summary computes totals over the whole ledger
func (l *Ledger) Summary(ctx context.Context) (Summary, error) {
	holdings, err := l.Holdings(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Count:       len(holdings),
		ValueByType: make(map[domain.AssetType]float64, len(domain.AssetTypes)),
	}
	for _, t := range domain.AssetTypes {
		summary.ValueByType[t] = 0
	}

	for _, h := range holdings {
		summary.TotalCostBasis += h.CostBasis
		summary.TotalCurrentValue += h.CurrentValue
		summary.TotalGainLoss += h.GainLoss
		summary.ValueByType[h.AssetType] += h.CurrentValue
	}

	if summary.TotalCostBasis > 0 {
		summary.TotalGainLossPct = summary.TotalGainLoss / summary.TotalCostBasis * 100
	}

	return summary, nil
}

// Allocation returns the percent of total current value held in each asset type.
// An empty ledger yields an empty map.
func (l *Ledger) Allocation(ctx context.Context) (map[domain.AssetType]float64, error) {
	holdings, err := l.Holdings(ctx)
	if err != nil {
		return nil, err
	}
	return allocator.CalculateAllocation(holdings), nil
}

// TopPerformers returns the n holdings with the highest gain/loss percent
func (l *Ledger) TopPerformers(ctx context.Context, n int) ([]*domain.Holding, error) {
	holdings, err := l.Holdings(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.Top(holdings, n, gainLossPct), nil
}

// WorstPerformers returns the n holdings with the lowest gain/loss percent
func (l *Ledger) WorstPerformers(ctx context.Context, n int) ([]*domain.Holding, error) {
	holdings, err := l.Holdings(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.Bottom(holdings, n, gainLossPct), nil
}

func gainLossPct(h *domain.Holding) float64 {
	return h.GainLossPct
}
