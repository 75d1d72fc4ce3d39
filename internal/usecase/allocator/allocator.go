package allocator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/simaogato/fintech-analyzer/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CalculateAllocation calculates the share of total current value held in each asset type
// Returns a map of asset type to percent (0-100); only types with holdings appear
// Logic:
//  1. Sum current value per asset type and overall
//  2. Every type but the last (in domain.AssetTypes order) gets value / total * 100
//  3. The last type gets 100 minus the others, so the shares always sum to 100
//
// An empty ledger (or one with no value) yields an empty map.
func CalculateAllocation(holdings []*domain.Holding) map[domain.AssetType]float64 {
	allocation := make(map[domain.AssetType]float64)

	byType := make(map[domain.AssetType]decimal.Decimal)
	total := decimal.Zero
	for _, h := range holdings {
		value := decimal.NewFromFloat(h.CurrentValue)
		byType[h.AssetType] = byType[h.AssetType].Add(value)
		total = total.Add(value)
	}

	if !total.IsPositive() {
		return allocation
	}

	types := presentTypes(byType)
	allocated := decimal.Zero
	for i, assetType := range types {
		share := hundred.Sub(allocated)
		if i < len(types)-1 {
			share = byType[assetType].Div(total).Mul(hundred)
		}
		allocation[assetType] = share.InexactFloat64()
		allocated = allocated.Add(share)
	}

	return allocation
}

// presentTypes returns the held asset types, known types first in reporting order
func presentTypes(byType map[domain.AssetType]decimal.Decimal) []domain.AssetType {
	types := make([]domain.AssetType, 0, len(byType))
	for _, t := range domain.AssetTypes {
		if _, ok := byType[t]; ok {
			types = append(types, t)
		}
	}

	var others []domain.AssetType
	for t := range byType {
		if !slices.Contains(domain.AssetTypes, t) {
			others = append(others, t)
		}
	}
	slices.Sort(others)

	return append(types, others...)
}
