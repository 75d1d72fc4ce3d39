package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/simaogato/fintech-analyzer/internal/adapter/render"
	"github.com/simaogato/fintech-analyzer/internal/adapter/repository/memory"
	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/portfolio"
	"github.com/simaogato/fintech-analyzer/internal/usecase/seeder"
)

// PortfolioActions lists the actions of the portfolio command
var PortfolioActions = []string{"summary", "allocation", "holdings", "top", "worst", "add"}

// portfolioCmd holds the flags for the 'portfolio' subcommand.
// The ledger lives in memory for the duration of a single run.
type portfolioCmd struct {
	app *App

	n    int
	seed bool

	assetType string
	name      string
	symbol    string
	quantity  float64
	buy       float64
	price     float64
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "report on a portfolio of holdings" }
func (*portfolioCmd) Usage() string {
	return `fintech portfolio [-seed] [-n <count>] <action>
fintech portfolio -type crypto|stock -name <name> -symbol <symbol> -qty <quantity> -buy <price> -price <price> add

  Actions: summary (default), allocation, holdings, top, worst, add.
  The sample portfolio is priced from the loaded snapshots when -seed is set.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", defaultLimit, "Number of results for top/worst.")
	f.BoolVar(&c.seed, "seed", c.app.Config.SeedSamplePortfolio, "Start from the sample portfolio.")
	f.StringVar(&c.assetType, "type", "", "Asset type of the holding to add: crypto or stock.")
	f.StringVar(&c.name, "name", "", "Name of the holding to add.")
	f.StringVar(&c.symbol, "symbol", "", "Symbol of the holding to add.")
	f.Float64Var(&c.quantity, "qty", 0, "Quantity of the holding to add.")
	f.Float64Var(&c.buy, "buy", 0, "Purchase price per unit.")
	f.Float64Var(&c.price, "price", 0, "Current price per unit.")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	action := f.Arg(0)
	if action == "" {
		action = "summary"
	}
	if !contains(PortfolioActions, action) {
		return c.app.usage("unknown portfolio action %q", action)
	}

	ledger := portfolio.NewLedger(memory.NewHoldingRepository())
	if c.seed {
		crypto, equities, err := c.app.engines()
		if err != nil {
			return c.app.fail(err, "failed to load datasets")
		}
		added, err := seeder.NewSamplePortfolioSeeder(crypto, equities, ledger).Seed(ctx)
		if err != nil {
			return c.app.fail(err, "failed to seed sample portfolio")
		}
		c.app.Logger.Debug().Int("holdings", added).Msg("sample portfolio seeded")
	}

	md, err := c.report(ctx, ledger, action)
	if err != nil {
		return c.app.fail(err, "portfolio "+action+" failed")
	}
	if err := c.app.printMarkdown(md); err != nil {
		return c.app.fail(err, "failed to print result")
	}
	return subcommands.ExitSuccess
}

func (c *portfolioCmd) report(ctx context.Context, ledger *portfolio.Ledger, action string) (string, error) {
	switch action {
	case "add":
		holding, err := ledger.AddHolding(ctx, portfolio.AddHoldingInput{
			AssetType:     domain.AssetType(strings.ToLower(c.assetType)),
			Name:          c.name,
			Symbol:        c.symbol,
			Quantity:      c.quantity,
			PurchasePrice: c.buy,
			CurrentPrice:  c.price,
		})
		if err != nil {
			return "", err
		}
		summary, err := ledger.Summary(ctx)
		if err != nil {
			return "", err
		}
		added := render.NewTable("Added "+holding.Name, domain.HoldingColumns, []*domain.Holding{holding}).Markdown()
		return added + "\n" + render.SummaryFields(summary).Markdown("Portfolio summary"), nil

	case "summary":
		summary, err := ledger.Summary(ctx)
		if err != nil {
			return "", err
		}
		return render.SummaryFields(summary).Markdown("Portfolio summary"), nil

	case "allocation":
		allocation, err := ledger.Allocation(ctx)
		if err != nil {
			return "", err
		}
		return render.AllocationFields(allocation).Markdown("Allocation by asset type"), nil

	case "holdings":
		holdings, err := ledger.Holdings(ctx)
		if err != nil {
			return "", err
		}
		return render.NewTable("Holdings", domain.HoldingColumns, holdings).Markdown(), nil

	case "top":
		holdings, err := ledger.TopPerformers(ctx, c.n)
		if err != nil {
			return "", err
		}
		return render.NewTable(fmt.Sprintf("Top %d holdings", c.n), domain.HoldingColumns, holdings).Markdown(), nil

	default:
		holdings, err := ledger.WorstPerformers(ctx, c.n)
		if err != nil {
			return "", err
		}
		return render.NewTable(fmt.Sprintf("Worst %d holdings", c.n), domain.HoldingColumns, holdings).Markdown(), nil
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
