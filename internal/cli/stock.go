package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/simaogato/fintech-analyzer/internal/adapter/render"
	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/market"
)

// StockActions lists the actions of the stock command
var StockActions = []string{"overview", "gainers", "losers", "volume", "volatile", "search", "range"}

// stockCmd holds the flags for the 'stock' subcommand.
type stockCmd struct {
	app *App

	n    int
	name string
	min  float64
	max  float64
}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "query the stock snapshot" }
func (*stockCmd) Usage() string {
	return `fintech stock [-n <count>] [-name <name>] [-min <price> -max <price>] <action>

  Actions: overview (default), gainers, losers, volume, volatile, search, range.
  search matches a case-insensitive part of the name and shows the first match.
`
}

func (c *stockCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", defaultLimit, "Number of results.")
	f.StringVar(&c.name, "name", "", "Part of the company name to search for.")
	f.Float64Var(&c.min, "min", 0, "Lowest last price for range.")
	f.Float64Var(&c.max, "max", 0, "Highest last price for range.")
}

func (c *stockCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	action := f.Arg(0)
	if action == "" {
		action = "overview"
	}

	_, engine, err := c.app.engines()
	if err != nil {
		return c.app.fail(err, "failed to load datasets")
	}

	var md string
	switch action {
	case "overview":
		md = render.EquityOverviewFields(engine.Overview()).Markdown("Stock market overview")
	case "gainers":
		md = render.NewTable(fmt.Sprintf("Top %d gainers", c.n), domain.EquityColumns, engine.TopGainers(c.n)).Markdown()
	case "losers":
		md = render.NewTable(fmt.Sprintf("Top %d losers", c.n), domain.EquityColumns, engine.TopLosers(c.n)).Markdown()
	case "volume":
		md = render.NewTable(fmt.Sprintf("Top %d by volume", c.n), domain.EquityColumns, engine.HighestByVolume(c.n)).Markdown()
	case "volatile":
		md = render.NewTable(fmt.Sprintf("Top %d most volatile", c.n), market.VolatileColumns, engine.MostVolatile(c.n)).Markdown()
	case "search":
		if c.name == "" {
			return c.app.usage("search needs -name <name>")
		}
		rec, ok := engine.FindByName(c.name)
		if !ok {
			md = fmt.Sprintf("No stock matching `%s`.\n", c.name)
			break
		}
		md = render.NewTable(rec.Name, domain.EquityColumns, []domain.EquityRecord{rec}).Markdown()
	case "range":
		title := fmt.Sprintf("Priced between %s and %s", render.USD(c.min), render.USD(c.max))
		md = render.NewTable(title, domain.EquityColumns, engine.ByPriceRange(c.min, c.max)).Markdown()
	default:
		return c.app.usage("unknown stock action %q", action)
	}

	if err := c.app.printMarkdown(md); err != nil {
		return c.app.fail(err, "failed to print result")
	}
	return subcommands.ExitSuccess
}
