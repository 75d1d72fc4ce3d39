package render

import (
	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/market"
	"github.com/simaogato/fintech-analyzer/internal/usecase/portfolio"
)

// Field is one named value of an aggregate
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered list of named aggregate values
type Fields []Field

// Map returns the fields keyed by name, with values as in Table.Cells
func (f Fields) Map() map[string]any {
	m := make(map[string]any, len(f))
	for _, field := range f {
		m[field.Name] = Plain(field.Value)
	}
	return m
}

// CryptoOverviewFields lists the crypto market overview in display order
func CryptoOverviewFields(o market.CryptoOverview) Fields {
	return Fields{
		{"total_market_cap", o.TotalMarketCap},
		{"total_24h_volume", o.TotalVolume24h},
		{"avg_24h_change", o.AvgChange24h},
		{"avg_7d_change", o.AvgChange7d},
		{"num_cryptocurrencies", o.Count},
		{"gainers_24h", o.Gainers24h},
		{"losers_24h", o.Losers24h},
		{"unchanged_24h", o.Unchanged24h},
	}
}

// EquityOverviewFields lists the stock market overview in display order
func EquityOverviewFields(o market.EquityOverview) Fields {
	return Fields{
		{"total_stocks", o.Count},
		{"avg_price", o.AvgPrice},
		{"avg_change", o.AvgChange},
		{"total_volume", o.TotalVolume},
		{"gainers", o.Gainers},
		{"losers", o.Losers},
		{"unchanged", o.Unchanged},
	}
}

// SummaryFields lists the portfolio totals followed by the value held per asset type
func SummaryFields(s portfolio.Summary) Fields {
	fields := Fields{
		{"total_cost_basis", s.TotalCostBasis},
		{"total_current_value", s.TotalCurrentValue},
		{"total_gain_loss", s.TotalGainLoss},
		{"total_gain_loss_pct", s.TotalGainLossPct},
		{"count", s.Count},
	}
	for _, t := range domain.AssetTypes {
		fields = append(fields, Field{"value_" + string(t), s.ValueByType[t]})
	}
	return fields
}

// AllocationFields lists the allocation in reporting order, skipping absent types
func AllocationFields(allocation map[domain.AssetType]float64) Fields {
	fields := Fields{}
	for _, t := range domain.AssetTypes {
		if pct, ok := allocation[t]; ok {
			fields = append(fields, Field{string(t), pct})
		}
	}
	return fields
}
