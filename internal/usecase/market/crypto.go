package market

import (
	"strings"

	"github.com/simaogato/fintech-analyzer/internal/domain"
)

// Period selects the change column used by the performer queries
type Period string

const (
	Period24h Period = "24h"
	Period7d  Period = "7d"
)

// Metric maps the period to its change column. Anything but 24h selects the 7d column.
func (p Period) Metric() domain.Metric {
	if p == Period24h {
		return domain.MetricChange24h
	}
	return domain.MetricChange7d
}

// CryptoOverview holds aggregate statistics of a crypto dataset.
// The averages are NaN when the dataset is empty.
type CryptoOverview struct {
	TotalMarketCap float64 `json:"total_market_cap"`
	TotalVolume24h float64 `json:"total_24h_volume"`
	AvgChange24h   float64 `json:"avg_24h_change"`
	AvgChange7d    float64 `json:"avg_7d_change"`
	Count          int     `json:"num_cryptocurrencies"`
	Gainers24h     int     `json:"gainers_24h"`
	Losers24h      int     `json:"losers_24h"`
	Unchanged24h   int     `json:"unchanged_24h"`
}

// CryptoEngine answers queries over a cryptocurrency dataset
type CryptoEngine struct {
	engine[domain.MarketAssetRecord]
}

// NewCryptoEngine creates a new CryptoEngine over dataset
func NewCryptoEngine(dataset domain.CryptoDataset) *CryptoEngine {
	return &CryptoEngine{engine: engine[domain.MarketAssetRecord]{dataset: dataset}}
}

// TopPerformers returns the n records with the greatest change over period
func (e *CryptoEngine) TopPerformers(n int, period Period) []domain.MarketAssetRecord {
	return mustRank(e.TopN(n, period.Metric()))
}

// WorstPerformers returns the n records with the smallest change over period
func (e *CryptoEngine) WorstPerformers(n int, period Period) []domain.MarketAssetRecord {
	return mustRank(e.BottomN(n, period.Metric()))
}

// HighestByVolume returns the n records with the greatest 24h volume
func (e *CryptoEngine) HighestByVolume(n int) []domain.MarketAssetRecord {
	return mustRank(e.TopN(n, domain.MetricVolume24h))
}

// ByPriceRange returns the records priced within [lo, hi] USD in file order
func (e *CryptoEngine) ByPriceRange(lo, hi float64) []domain.MarketAssetRecord {
	return mustRank(e.ByRange(lo, hi, domain.MetricPriceUSD))
}

// FindBySymbol returns the first record whose symbol equals the lower-cased symbol
func (e *CryptoEngine) FindBySymbol(symbol string) (domain.MarketAssetRecord, bool) {
	symbol = strings.ToLower(symbol)
	for _, r := range e.dataset.All {
		if r.Symbol == symbol {
			return r, true
		}
	}
	return domain.MarketAssetRecord{}, false
}

// Overview computes aggregate statistics over the whole dataset
func (e *CryptoEngine) Overview() CryptoOverview {
	var o CryptoOverview
	var sum24h, sum7d float64

	for _, r := range e.dataset.All {
		o.Count++
		o.TotalMarketCap += r.MarketCap
		o.TotalVolume24h += r.Volume24h
		sum24h += r.Change24h
		sum7d += r.Change7d

		switch {
		case r.Change24h > 0:
			o.Gainers24h++
		case r.Change24h < 0:
			o.Losers24h++
		default:
			o.Unchanged24h++
		}
	}

	o.AvgChange24h = mean(sum24h, o.Count)
	o.AvgChange7d = mean(sum7d, o.Count)
	return o
}
