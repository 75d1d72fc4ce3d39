package csvsource

import (
	"fmt"
	"strings"
	"time"

	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/valueparser"
)

// Kind is the semantic type of a column
type Kind string

const (
	KindString           Kind = "string"
	KindSymbol           Kind = "symbol"
	KindTimestamp        Kind = "timestamp"
	KindCurrency         Kind = "currency"
	KindVolume           Kind = "volume"
	KindPercentage       Kind = "percentage"
	KindStrictPercentage Kind = "percent!"
	KindNumber           Kind = "number"
)

// Cell is a decoded cell. Only the field matching the column kind is set.
type Cell struct {
	Text   string
	Number float64
	Time   time.Time
}

// Decoder turns the raw text of a cell into a Cell
type Decoder func(raw string) (Cell, error)

// Decoders binds every column kind to its parser.
// The lenient numeric kinds never fail; timestamps and strict percentages do.
var Decoders = map[Kind]Decoder{
	KindString:           func(raw string) (Cell, error) { return Cell{Text: raw}, nil },
	KindSymbol:           func(raw string) (Cell, error) { return Cell{Text: strings.ToLower(raw)}, nil },
	KindTimestamp:        decodeTimestamp,
	KindCurrency:         lenient(valueparser.ParseCurrency),
	KindVolume:           lenient(valueparser.ParseVolume),
	KindPercentage:       lenient(valueparser.ParsePercentage),
	KindNumber:           lenient(valueparser.ParseNumber),
	KindStrictPercentage: decodeStrictPercentage,
}

// Column declares how one header column is decoded and stored into a record
type Column[T any] struct {
	Name string
	Kind Kind
	Set  func(rec *T, c Cell)
}

// Schema is the list of columns that make up a record. Column order in the
// file does not matter; columns are located by header name.
type Schema[T any] []Column[T]

// CryptoSchema describes the cryptocurrency snapshot file
var CryptoSchema = Schema[domain.MarketAssetRecord]{
	{Name: "timestamp", Kind: KindTimestamp, Set: func(r *domain.MarketAssetRecord, c Cell) { r.Timestamp = c.Time }},
	{Name: "name", Kind: KindString, Set: func(r *domain.MarketAssetRecord, c Cell) { r.Name = c.Text }},
	{Name: "symbol", Kind: KindSymbol, Set: func(r *domain.MarketAssetRecord, c Cell) { r.Symbol = c.Text }},
	{Name: "price_usd", Kind: KindCurrency, Set: func(r *domain.MarketAssetRecord, c Cell) { r.PriceUSD = c.Number }},
	{Name: "vol_24h", Kind: KindCurrency, Set: func(r *domain.MarketAssetRecord, c Cell) { r.Volume24h = c.Number }},
	{Name: "chg_24h", Kind: KindPercentage, Set: func(r *domain.MarketAssetRecord, c Cell) { r.Change24h = c.Number }},
	{Name: "chg_7d", Kind: KindPercentage, Set: func(r *domain.MarketAssetRecord, c Cell) { r.Change7d = c.Number }},
	{Name: "market_cap", Kind: KindCurrency, Set: func(r *domain.MarketAssetRecord, c Cell) { r.MarketCap = c.Number }},
}

// EquitySchema describes the stock snapshot file
var EquitySchema = Schema[domain.EquityRecord]{
	{Name: "timestamp", Kind: KindTimestamp, Set: func(r *domain.EquityRecord, c Cell) { r.Timestamp = c.Time }},
	{Name: "name", Kind: KindString, Set: func(r *domain.EquityRecord, c Cell) { r.Name = c.Text }},
	{Name: "last", Kind: KindNumber, Set: func(r *domain.EquityRecord, c Cell) { r.Last = c.Number }},
	{Name: "high", Kind: KindNumber, Set: func(r *domain.EquityRecord, c Cell) { r.High = c.Number }},
	{Name: "low", Kind: KindNumber, Set: func(r *domain.EquityRecord, c Cell) { r.Low = c.Number }},
	{Name: "chg_", Kind: KindNumber, Set: func(r *domain.EquityRecord, c Cell) { r.Change = c.Number }},
	{Name: "chg_%", Kind: KindStrictPercentage, Set: func(r *domain.EquityRecord, c Cell) { r.ChangePercent = c.Number }},
	{Name: "vol_", Kind: KindVolume, Set: func(r *domain.EquityRecord, c Cell) { r.Volume = c.Number }},
}

func lenient(parse func(string) float64) Decoder {
	return func(raw string) (Cell, error) {
		return Cell{Number: parse(raw)}, nil
	}
}

func decodeStrictPercentage(raw string) (Cell, error) {
	v, err := valueparser.ParseStrictPercentage(raw)
	if err != nil {
		return Cell{}, fmt.Errorf("%w: %q: %v", domain.ErrMalformedPercentage, raw, err)
	}
	return Cell{Number: v}, nil
}

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

func decodeTimestamp(raw string) (Cell, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Cell{Time: t.UTC()}, nil
		}
	}
	return Cell{}, fmt.Errorf("%w: %q", domain.ErrMalformedTimestamp, raw)
}
