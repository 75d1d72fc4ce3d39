package market

import (
	"slices"
	"strings"
	"sync"

	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/ranking"
)

// VolatileColumns is the ordered column list of a VolatileEquity row
var VolatileColumns = slices.Concat(domain.EquityColumns, []string{"volatility"})

// VolatileEquity is an equity record with its derived volatility column
type VolatileEquity struct {
	domain.EquityRecord
	Volatility float64 `json:"volatility"`
}

// Values returns the row ordered as VolatileColumns
func (v VolatileEquity) Values() []any {
	return append(v.EquityRecord.Values(), v.Volatility)
}

// EquityOverview holds aggregate statistics of an equity dataset.
// The averages are NaN when the dataset is empty.
type EquityOverview struct {
	Count       int     `json:"total_stocks"`
	AvgPrice    float64 `json:"avg_price"`
	AvgChange   float64 `json:"avg_change"`
	TotalVolume float64 `json:"total_volume"`
	Gainers     int     `json:"gainers"`
	Losers      int     `json:"losers"`
	Unchanged   int     `json:"unchanged"`
}

// EquityEngine answers queries over a stock dataset
type EquityEngine struct {
	engine[domain.EquityRecord]

	volatilityOnce sync.Once
	volatility     []VolatileEquity
}

// NewEquityEngine creates a new EquityEngine over dataset
func NewEquityEngine(dataset domain.EquityDataset) *EquityEngine {
	return &EquityEngine{engine: engine[domain.EquityRecord]{dataset: dataset}}
}

// TopGainers returns the n records with the greatest percent change
func (e *EquityEngine) TopGainers(n int) []domain.EquityRecord {
	return mustRank(e.TopN(n, domain.MetricChangePercent))
}

// TopLosers returns the n records with the smallest percent change
func (e *EquityEngine) TopLosers(n int) []domain.EquityRecord {
	return mustRank(e.BottomN(n, domain.MetricChangePercent))
}

// HighestByVolume returns the n records with the greatest volume
func (e *EquityEngine) HighestByVolume(n int) []domain.EquityRecord {
	return mustRank(e.TopN(n, domain.MetricVolume))
}

// ByPriceRange returns the records whose last price is within [lo, hi] in file order
func (e *EquityEngine) ByPriceRange(lo, hi float64) []domain.EquityRecord {
	return mustRank(e.ByRange(lo, hi, domain.MetricLast))
}

// FindByName returns the first record, in file order, whose name contains
// name case-insensitively. Ambiguous names are not disambiguated.
func (e *EquityEngine) FindByName(name string) (domain.EquityRecord, bool) {
	needle := strings.ToLower(name)
	for _, r := range e.dataset.All {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			return r, true
		}
	}
	return domain.EquityRecord{}, false
}

// MostVolatile returns the n records with the greatest volatility.
// The volatility column is computed on first use and cached.
func (e *EquityEngine) MostVolatile(n int) []VolatileEquity {
	e.volatilityOnce.Do(func() {
		e.volatility = make([]VolatileEquity, 0, e.dataset.Len())
		for _, r := range e.dataset.All {
			e.volatility = append(e.volatility, VolatileEquity{EquityRecord: r, Volatility: r.Volatility()})
		}
	})
	return ranking.Top(e.volatility, n, func(v VolatileEquity) float64 { return v.Volatility })
}

// Overview computes aggregate statistics over the whole dataset
func (e *EquityEngine) Overview() EquityOverview {
	var o EquityOverview
	var sumPrice, sumChange float64

	for _, r := range e.dataset.All {
		o.Count++
		sumPrice += r.Last
		sumChange += r.ChangePercent
		o.TotalVolume += r.Volume

		switch {
		case r.ChangePercent > 0:
			o.Gainers++
		case r.ChangePercent < 0:
			o.Losers++
		default:
			o.Unchanged++
		}
	}

	o.AvgPrice = mean(sumPrice, o.Count)
	o.AvgChange = mean(sumChange, o.Count)
	return o
}
