package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/fintech-analyzer/internal/domain"
)

func holding(t *testing.T, assetType domain.AssetType, qty, price float64) *domain.Holding {
	t.Helper()
	h, err := domain.NewHolding(assetType, "asset", "sym", qty, price, price)
	require.NoError(t, err)
	return h
}

func sum(allocation map[domain.AssetType]float64) float64 {
	total := 0.0
	for _, pct := range allocation {
		total += pct
	}
	return total
}

func TestCalculateAllocation_MixedPortfolio(t *testing.T) {
	// Crypto: 60000, Stock: 1600 + 400 = 2000
	holdings := []*domain.Holding{
		holding(t, domain.AssetTypeCrypto, 1, 60000),
		holding(t, domain.AssetTypeStock, 10, 160),
		holding(t, domain.AssetTypeStock, 4, 100),
	}

	allocation := CalculateAllocation(holdings)

	require.Len(t, allocation, 2)
	assert.InDelta(t, 60000.0/62000*100, allocation[domain.AssetTypeCrypto], 1e-9)
	assert.InDelta(t, 2000.0/62000*100, allocation[domain.AssetTypeStock], 1e-9)
	assert.InDelta(t, 100.0, sum(allocation), 1e-9)
}

func TestCalculateAllocation_SingleType(t *testing.T) {
	holdings := []*domain.Holding{
		holding(t, domain.AssetTypeStock, 3, 33.33),
		holding(t, domain.AssetTypeStock, 1, 0.01),
	}

	allocation := CalculateAllocation(holdings)

	assert.Equal(t, map[domain.AssetType]float64{domain.AssetTypeStock: 100}, allocation)
}

func TestCalculateAllocation_SumsToHundred(t *testing.T) {
	tests := []struct {
		name     string
		holdings func(t *testing.T) []*domain.Holding
	}{
		{
			name: "thirds",
			holdings: func(t *testing.T) []*domain.Holding {
				return []*domain.Holding{
					holding(t, domain.AssetTypeCrypto, 1, 1),
					holding(t, domain.AssetTypeStock, 2, 1),
				}
			},
		},
		{
			name: "tiny against huge",
			holdings: func(t *testing.T) []*domain.Holding {
				return []*domain.Holding{
					holding(t, domain.AssetTypeCrypto, 0.0001, 0.15),
					holding(t, domain.AssetTypeStock, 1e6, 1234.56),
				}
			},
		},
		{
			name: "fractional quantities",
			holdings: func(t *testing.T) []*domain.Holding {
				return []*domain.Holding{
					holding(t, domain.AssetTypeCrypto, 0.5, 49600),
					holding(t, domain.AssetTypeCrypto, 2, 2890),
					holding(t, domain.AssetTypeStock, 10, 171),
					holding(t, domain.AssetTypeStock, 5, 997.5),
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocation := CalculateAllocation(tt.holdings(t))
			assert.InDelta(t, 100.0, sum(allocation), 1e-9)
			for _, pct := range allocation {
				assert.GreaterOrEqual(t, pct, 0.0)
			}
		})
	}
}

func TestCalculateAllocation_Empty(t *testing.T) {
	allocation := CalculateAllocation(nil)

	assert.NotNil(t, allocation)
	assert.Empty(t, allocation)
}
