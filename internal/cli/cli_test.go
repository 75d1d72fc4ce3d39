package cli

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/fintech-analyzer/internal/config"
)

const cryptoCSV = `timestamp,name,symbol,price_usd,vol_24h,chg_24h,chg_7d,market_cap
2024-03-01 12:00:00,Bitcoin,BTC,$100,$30M,+2.10%,-1.00%,$1000M
2024-03-01 12:00:00,Ethereum,ETH,$50,$45M,-1.05%,+4.20%,$400M
`

const equityCSV = `timestamp,name,last,high,low,chg_,chg_%,vol_
2024-03-01 16:00:00,Apple Inc,10,11,9,0.5,+5.00%,52.3M
2024-03-01 16:00:00,NVIDIA Corp,20,21,19.5,-1,-4.76%,410K
`

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cryptoFile := filepath.Join(dir, "cryptocurrency.csv")
	stockFile := filepath.Join(dir, "stocks.csv")
	require.NoError(t, os.WriteFile(cryptoFile, []byte(cryptoCSV), 0o644))
	require.NoError(t, os.WriteFile(stockFile, []byte(equityCSV), 0o644))

	out := &bytes.Buffer{}
	app := NewApp(config.Config{CryptoFile: cryptoFile, StockFile: stockFile}, zerolog.Nop(), out)
	app.Raw = true
	return app, out
}

func run(t *testing.T, app *App, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet("fintech", flag.ContinueOnError)
	cdr := subcommands.NewCommander(fs, "fintech")
	cdr.Output = io.Discard
	cdr.Error = io.Discard
	for _, c := range app.Commands() {
		cdr.Register(c, "")
	}
	require.NoError(t, fs.Parse(args))
	return cdr.Execute(context.Background())
}

func TestCryptoCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "overview is the default",
			args: []string{"crypto"},
			want: []string{"## Cryptocurrency market overview", "| num_cryptocurrencies | 2 |", "| total_market_cap | $1,400,000,000.00 |"},
		},
		{
			name:    "top performers over 24h",
			args:    []string{"crypto", "-n", "1", "top"},
			want:    []string{"## Top 1 performers (24h)", "Bitcoin", "+2.10%"},
			notWant: []string{"Ethereum"},
		},
		{
			name:    "worst performers over 7d",
			args:    []string{"crypto", "-n", "1", "-p", "7d", "worst"},
			want:    []string{"## Worst 1 performers (7d)", "Bitcoin"},
			notWant: []string{"Ethereum"},
		},
		{
			name:    "top by metric",
			args:    []string{"crypto", "-n", "1", "-metric", "vol_24h", "top"},
			want:    []string{"## Top 1 by vol_24h", "Ethereum"},
			notWant: []string{"Bitcoin"},
		},
		{
			name: "volume",
			args: []string{"crypto", "volume"},
			want: []string{"## Top 10 by 24h volume", "Ethereum", "Bitcoin"},
		},
		{
			name:    "search is case insensitive",
			args:    []string{"crypto", "-s", "ETH", "search"},
			want:    []string{"## Ethereum", "| eth |"},
			notWant: []string{"Bitcoin"},
		},
		{
			name: "search miss",
			args: []string{"crypto", "-s", "xrp", "search"},
			want: []string{"No cryptocurrency with symbol `xrp`."},
		},
		{
			name:    "price range",
			args:    []string{"crypto", "-min", "60", "-max", "200", "range"},
			want:    []string{"## Priced between $60.00 and $200.00", "Bitcoin"},
			notWant: []string{"Ethereum"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t)

			require.Equal(t, subcommands.ExitSuccess, run(t, app, tt.args...))
			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestStockCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "overview is the default",
			args: []string{"stock"},
			want: []string{"## Stock market overview", "| total_stocks | 2 |", "| gainers | 1 |", "| losers | 1 |"},
		},
		{
			name:    "gainers",
			args:    []string{"stock", "-n", "1", "gainers"},
			want:    []string{"## Top 1 gainers", "Apple Inc", "+5.00%"},
			notWant: []string{"NVIDIA"},
		},
		{
			name:    "losers",
			args:    []string{"stock", "-n", "1", "losers"},
			want:    []string{"## Top 1 losers", "NVIDIA Corp"},
			notWant: []string{"Apple"},
		},
		{
			name:    "volume",
			args:    []string{"stock", "-n", "1", "volume"},
			want:    []string{"Apple Inc"},
			notWant: []string{"NVIDIA"},
		},
		{
			name: "volatile adds the volatility column",
			args: []string{"stock", "volatile"},
			want: []string{"| volatility |", "+20.00%", "+7.50%"},
		},
		{
			name: "search by partial name",
			args: []string{"stock", "-name", "nvidia", "search"},
			want: []string{"## NVIDIA Corp"},
		},
		{
			name: "search miss",
			args: []string{"stock", "-name", "Tesla", "search"},
			want: []string{"No stock matching `Tesla`."},
		},
		{
			name: "empty range",
			args: []string{"stock", "-min", "100", "-max", "200", "range"},
			want: []string{"_No results._"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t)

			require.Equal(t, subcommands.ExitSuccess, run(t, app, tt.args...))
			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestPortfolioCommand(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		app, out := newTestApp(t)

		require.Equal(t, subcommands.ExitSuccess, run(t, app, "portfolio"))
		assert.Contains(t, out.String(), "| count | 0 |")
		assert.Contains(t, out.String(), "| total_gain_loss_pct | +0.00% |")
	})

	t.Run("seeded summary", func(t *testing.T) {
		app, out := newTestApp(t)

		require.Equal(t, subcommands.ExitSuccess, run(t, app, "portfolio", "-seed", "summary"))
		assert.Contains(t, out.String(), "| count | 4 |")
		assert.Contains(t, out.String(), "| total_cost_basis | $310.00 |")
		assert.Contains(t, out.String(), "| total_current_value | $350.00 |")
		assert.Contains(t, out.String(), "| value_crypto | $150.00 |")
		assert.Contains(t, out.String(), "| value_stock | $200.00 |")
	})

	t.Run("seeded allocation", func(t *testing.T) {
		app, out := newTestApp(t)

		require.Equal(t, subcommands.ExitSuccess, run(t, app, "portfolio", "-seed", "allocation"))
		assert.Contains(t, out.String(), "## Allocation by asset type")
		assert.Contains(t, out.String(), "| crypto |")
		assert.Contains(t, out.String(), "| stock |")
	})

	t.Run("seeded top", func(t *testing.T) {
		app, out := newTestApp(t)

		require.Equal(t, subcommands.ExitSuccess, run(t, app, "portfolio", "-seed", "-n", "1", "top"))
		assert.Contains(t, out.String(), "## Top 1 holdings")
		assert.Contains(t, out.String(), "| crypto | Bitcoin | btc |")
	})

	t.Run("add", func(t *testing.T) {
		app, out := newTestApp(t)

		status := run(t, app, "portfolio",
			"-type", "Stock", "-name", "Apple", "-symbol", "AAPL",
			"-qty", "100", "-buy", "150", "-price", "175", "add")
		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Contains(t, out.String(), "## Added Apple")
		assert.Contains(t, out.String(), "| total_gain_loss | $2,500.00 |")
		assert.Contains(t, out.String(), "| count | 1 |")
	})

	t.Run("add rejects invalid holding", func(t *testing.T) {
		app, out := newTestApp(t)

		status := run(t, app, "portfolio", "-type", "bond", "-name", "X", "-qty", "1", "-buy", "1", "-price", "1", "add")
		assert.Equal(t, subcommands.ExitFailure, status)
		assert.Empty(t, out.String())
	})
}

func TestCommands_Failures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"unknown crypto action", []string{"crypto", "sideways"}, subcommands.ExitUsageError},
		{"invalid period", []string{"crypto", "-p", "30d", "top"}, subcommands.ExitUsageError},
		{"unknown metric", []string{"crypto", "-metric", "last", "top"}, subcommands.ExitUsageError},
		{"crypto search without symbol", []string{"crypto", "search"}, subcommands.ExitUsageError},
		{"unknown stock action", []string{"stock", "up"}, subcommands.ExitUsageError},
		{"stock search without name", []string{"stock", "search"}, subcommands.ExitUsageError},
		{"unknown portfolio action", []string{"portfolio", "rebalance"}, subcommands.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t)

			assert.Equal(t, tt.want, run(t, app, tt.args...))
			assert.Empty(t, out.String())
		})
	}
}

func TestCommands_MissingSource(t *testing.T) {
	app, out := newTestApp(t)
	app.Config.CryptoFile = filepath.Join(t.TempDir(), "missing.csv")

	assert.Equal(t, subcommands.ExitFailure, run(t, app, "crypto"))
	assert.Equal(t, subcommands.ExitFailure, run(t, app, "stock"))
	assert.Empty(t, out.String())
}

func TestPrintMarkdown_Rendered(t *testing.T) {
	app, out := newTestApp(t)
	app.Raw = false
	app.Style = "notty"

	require.NoError(t, app.printMarkdown("## Title\n\nsome *text*\n"))
	assert.Contains(t, out.String(), "Title")
	assert.Contains(t, out.String(), "text")
	assert.NotEqual(t, "## Title\n\nsome *text*\n", out.String())
}

func TestCompletion(t *testing.T) {
	cmd := Completion()

	for _, name := range []string{"crypto", "stock", "portfolio", "help"} {
		assert.Contains(t, cmd.Sub, name)
	}
	assert.Contains(t, cmd.Sub["crypto"].Flags, "p")
	assert.Contains(t, cmd.Sub["portfolio"].Flags, "type")
	assert.Contains(t, cmd.Flags, "crypto-file")
}
