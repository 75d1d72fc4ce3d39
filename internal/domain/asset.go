package domain

import (
	"math"
	"time"
)

// Metric names a numeric column that can be used as a ranking or filter key
type Metric string

const (
	// Crypto metrics
	MetricPriceUSD  Metric = "price_usd"
	MetricVolume24h Metric = "vol_24h"
	MetricChange24h Metric = "chg_24h"
	MetricChange7d  Metric = "chg_7d"
	MetricMarketCap Metric = "market_cap"

	// Equity metrics
	MetricLast          Metric = "last"
	MetricHigh          Metric = "high"
	MetricLow           Metric = "low"
	MetricChange        Metric = "chg_"
	MetricChangePercent Metric = "chg_%"
	MetricVolume        Metric = "vol_"
)

// Ordered column lists. Values() on each record returns its fields in this order.
var (
	CryptoColumns = []string{"name", "symbol", "price_usd", "vol_24h", "chg_24h", "chg_7d", "market_cap", "timestamp"}
	EquityColumns = []string{"name", "last", "high", "low", "chg_", "chg_%", "vol_", "timestamp"}
)

// MarketAssetRecord represents one row of a cryptocurrency snapshot
type MarketAssetRecord struct {
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"` // always lower-case
	PriceUSD  float64   `json:"price_usd"`
	Volume24h float64   `json:"vol_24h"`
	Change24h float64   `json:"chg_24h"` // percent, signed
	Change7d  float64   `json:"chg_7d"`  // percent, signed
	MarketCap float64   `json:"market_cap"`
	Timestamp time.Time `json:"timestamp"`
}

// Metric returns the value of the named column, or false if the record has no such column
func (r MarketAssetRecord) Metric(m Metric) (float64, bool) {
	switch m {
	case MetricPriceUSD:
		return r.PriceUSD, true
	case MetricVolume24h:
		return r.Volume24h, true
	case MetricChange24h:
		return r.Change24h, true
	case MetricChange7d:
		return r.Change7d, true
	case MetricMarketCap:
		return r.MarketCap, true
	}
	return 0, false
}

// Values returns the record fields ordered as CryptoColumns
func (r MarketAssetRecord) Values() []any {
	return []any{r.Name, r.Symbol, r.PriceUSD, r.Volume24h, r.Change24h, r.Change7d, r.MarketCap, r.Timestamp}
}

// EquityRecord represents one row of a stock market snapshot.
// Name is not guaranteed to be unique.
type EquityRecord struct {
	Name          string    `json:"name"`
	Last          float64   `json:"last"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Change        float64   `json:"chg_"`  // absolute change
	ChangePercent float64   `json:"chg_%"` // percent, signed
	Volume        float64   `json:"vol_"`
	Timestamp     time.Time `json:"timestamp"`
}

// Metric returns the value of the named column, or false if the record has no such column
func (r EquityRecord) Metric(m Metric) (float64, bool) {
	switch m {
	case MetricLast:
		return r.Last, true
	case MetricHigh:
		return r.High, true
	case MetricLow:
		return r.Low, true
	case MetricChange:
		return r.Change, true
	case MetricChangePercent:
		return r.ChangePercent, true
	case MetricVolume:
		return r.Volume, true
	}
	return 0, false
}

// Values returns the record fields ordered as EquityColumns
func (r EquityRecord) Values() []any {
	return []any{r.Name, r.Last, r.High, r.Low, r.Change, r.ChangePercent, r.Volume, r.Timestamp}
}

// Volatility returns the intraday spread normalized by the last price, in percent.
// With a zero last price, a zero spread yields 0 and any other spread yields +Inf.
func (r EquityRecord) Volatility() float64 {
	spread := r.High - r.Low
	if r.Last == 0 {
		if spread == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return spread / r.Last * 100
}
