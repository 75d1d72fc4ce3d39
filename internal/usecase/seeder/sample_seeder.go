package seeder

import (
	"context"
	"errors"

	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/portfolio"
)

// CryptoFinder looks up a crypto record by symbol
type CryptoFinder interface {
	FindBySymbol(symbol string) (domain.MarketAssetRecord, bool)
}

// EquityFinder looks up an equity record by name substring
type EquityFinder interface {
	FindByName(name string) (domain.EquityRecord, bool)
}

// HoldingAdder appends holdings to a ledger
type HoldingAdder interface {
	AddHolding(ctx context.Context, input portfolio.AddHoldingInput) (*domain.Holding, error)
}

// SampleCrypto defines a crypto position to seed, bought at a fraction of the current price
type SampleCrypto struct {
	Symbol       string
	Quantity     float64
	CostFraction float64
}

// SampleEquity defines an equity position to seed, matched by name
type SampleEquity struct {
	Match        string
	Symbol       string
	Quantity     float64
	CostFraction float64
}

// SampleCryptos and SampleEquities make up the demo portfolio
var (
	SampleCryptos = []SampleCrypto{
		{Symbol: "btc", Quantity: 0.5, CostFraction: 0.80},
		{Symbol: "eth", Quantity: 2.0, CostFraction: 0.85},
	}
	SampleEquities = []SampleEquity{
		{Match: "Apple", Symbol: "AAPL", Quantity: 10, CostFraction: 0.90},
		{Match: "NVIDIA", Symbol: "NVDA", Quantity: 5, CostFraction: 0.95},
	}
)

// SamplePortfolioSeeder fills a ledger with a demo portfolio priced from the loaded datasets
type SamplePortfolioSeeder struct {
	crypto   CryptoFinder
	equities EquityFinder
	ledger   HoldingAdder
}

// NewSamplePortfolioSeeder creates a new SamplePortfolioSeeder instance
func NewSamplePortfolioSeeder(crypto CryptoFinder, equities EquityFinder, ledger HoldingAdder) *SamplePortfolioSeeder {
	return &SamplePortfolioSeeder{
		crypto:   crypto,
		equities: equities,
		ledger:   ledger,
	}
}

// Seed adds every sample position whose source record exists.
// Positions whose record is missing or whose price normalised to zero are skipped.
// Returns the number of holdings added.
func (s *SamplePortfolioSeeder) Seed(ctx context.Context) (int, error) {
	var inputs []portfolio.AddHoldingInput

	for _, sample := range SampleCryptos {
		rec, ok := s.crypto.FindBySymbol(sample.Symbol)
		if !ok {
			continue
		}
		inputs = append(inputs, portfolio.AddHoldingInput{
			AssetType:     domain.AssetTypeCrypto,
			Name:          rec.Name,
			Symbol:        rec.Symbol,
			Quantity:      sample.Quantity,
			PurchasePrice: rec.PriceUSD * sample.CostFraction,
			CurrentPrice:  rec.PriceUSD,
		})
	}

	for _, sample := range SampleEquities {
		rec, ok := s.equities.FindByName(sample.Match)
		if !ok {
			continue
		}
		inputs = append(inputs, portfolio.AddHoldingInput{
			AssetType:     domain.AssetTypeStock,
			Name:          rec.Name,
			Symbol:        sample.Symbol,
			Quantity:      sample.Quantity,
			PurchasePrice: rec.Last * sample.CostFraction,
			CurrentPrice:  rec.Last,
		})
	}

	added := 0
	for _, input := range inputs {
		if _, err := s.ledger.AddHolding(ctx, input); err != nil {
			if errors.Is(err, domain.ErrInvalidHolding) {
				continue
			}
			return added, err
		}
		added++
	}

	return added, nil
}
