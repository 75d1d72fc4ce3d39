package cli

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion
func Completion() *complete.Command {
	limit := predict.Something
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"crypto-file": predict.Files("*.csv"),
			"stock-file":  predict.Files("*.csv"),
			"log-level":   predict.Set{"debug", "info", "warn", "error"},
			"raw":         predict.Nothing,
			"style":       predict.Set{"auto", "dark", "light", "notty", "ascii"},
		},
		Sub: map[string]*complete.Command{
			"crypto": {
				Args: predict.Set(CryptoActions),
				Flags: map[string]complete.Predictor{
					"n":      limit,
					"p":      predict.Set{"24h", "7d"},
					"metric": predict.Set{"price_usd", "vol_24h", "chg_24h", "chg_7d", "market_cap"},
					"s":      predict.Something,
					"min":    predict.Something,
					"max":    predict.Something,
				},
			},
			"stock": {
				Args: predict.Set(StockActions),
				Flags: map[string]complete.Predictor{
					"n":    limit,
					"name": predict.Something,
					"min":  predict.Something,
					"max":  predict.Something,
				},
			},
			"portfolio": {
				Args: predict.Set(PortfolioActions),
				Flags: map[string]complete.Predictor{
					"n":      limit,
					"seed":   predict.Nothing,
					"type":   predict.Set{"crypto", "stock"},
					"name":   predict.Something,
					"symbol": predict.Something,
					"qty":    predict.Something,
					"buy":    predict.Something,
					"price":  predict.Something,
				},
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
