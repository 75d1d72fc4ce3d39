package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/simaogato/fintech-analyzer/internal/adapter/render"
	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/market"
)

// CryptoActions lists the actions of the crypto command
var CryptoActions = []string{"overview", "top", "worst", "volume", "search", "range"}

// cryptoCmd holds the flags for the 'crypto' subcommand.
type cryptoCmd struct {
	app *App

	n      int
	period string
	metric string
	symbol string
	min    float64
	max    float64
}

func (*cryptoCmd) Name() string     { return "crypto" }
func (*cryptoCmd) Synopsis() string { return "query the cryptocurrency snapshot" }
func (*cryptoCmd) Usage() string {
	return `fintech crypto [-n <count>] [-p 24h|7d] [-metric <column>] [-s <symbol>] [-min <price> -max <price>] <action>

  Actions: overview (default), top, worst, volume, search, range.
`
}

func (c *cryptoCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", defaultLimit, "Number of results.")
	f.StringVar(&c.period, "p", string(market.Period24h), "Performance period for top/worst: 24h or 7d.")
	f.StringVar(&c.metric, "metric", "", "Rank top/worst by this column instead of the period change.")
	f.StringVar(&c.symbol, "s", "", "Symbol to search for.")
	f.Float64Var(&c.min, "min", 0, "Lowest price for range.")
	f.Float64Var(&c.max, "max", 0, "Highest price for range.")
}

func (c *cryptoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	action := f.Arg(0)
	if action == "" {
		action = "overview"
	}

	period := market.Period(c.period)
	if period != market.Period24h && period != market.Period7d {
		return c.app.usage("invalid period %q: use 24h or 7d", c.period)
	}

	engine, _, err := c.app.engines()
	if err != nil {
		return c.app.fail(err, "failed to load datasets")
	}

	var md string
	switch action {
	case "overview":
		md = render.CryptoOverviewFields(engine.Overview()).Markdown("Cryptocurrency market overview")

	case "top", "worst":
		records, title, err := c.ranking(engine, action, period)
		if err != nil {
			return c.app.usage("%v", err)
		}
		md = render.NewTable(title, domain.CryptoColumns, records).Markdown()

	case "volume":
		md = render.NewTable(fmt.Sprintf("Top %d by 24h volume", c.n), domain.CryptoColumns, engine.HighestByVolume(c.n)).Markdown()

	case "search":
		if c.symbol == "" {
			return c.app.usage("search needs -s <symbol>")
		}
		rec, ok := engine.FindBySymbol(c.symbol)
		if !ok {
			md = fmt.Sprintf("No cryptocurrency with symbol `%s`.\n", strings.ToLower(c.symbol))
			break
		}
		md = render.NewTable(rec.Name, domain.CryptoColumns, []domain.MarketAssetRecord{rec}).Markdown()

	case "range":
		title := fmt.Sprintf("Priced between %s and %s", render.USD(c.min), render.USD(c.max))
		md = render.NewTable(title, domain.CryptoColumns, engine.ByPriceRange(c.min, c.max)).Markdown()

	default:
		return c.app.usage("unknown crypto action %q", action)
	}

	if err := c.app.printMarkdown(md); err != nil {
		return c.app.fail(err, "failed to print result")
	}
	return subcommands.ExitSuccess
}

func (c *cryptoCmd) ranking(engine *market.CryptoEngine, action string, period market.Period) ([]domain.MarketAssetRecord, string, error) {
	if c.metric != "" {
		metric := domain.Metric(c.metric)
		if action == "top" {
			records, err := engine.TopN(c.n, metric)
			return records, fmt.Sprintf("Top %d by %s", c.n, metric), err
		}
		records, err := engine.BottomN(c.n, metric)
		return records, fmt.Sprintf("Bottom %d by %s", c.n, metric), err
	}

	if action == "top" {
		return engine.TopPerformers(c.n, period), fmt.Sprintf("Top %d performers (%s)", c.n, period), nil
	}
	return engine.WorstPerformers(c.n, period), fmt.Sprintf("Worst %d performers (%s)", c.n, period), nil
}
