// Package cli implements the fintech console commands.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/simaogato/fintech-analyzer/internal/adapter/csvsource"
	"github.com/simaogato/fintech-analyzer/internal/config"
	"github.com/simaogato/fintech-analyzer/internal/usecase/market"
)

const defaultLimit = 10

// App holds what every command needs: configuration, logging and output
type App struct {
	Config config.Config
	Logger zerolog.Logger
	Out    io.Writer

	// Raw prints plain markdown instead of rendering it for the terminal
	Raw bool
	// Style is a glamour standard style; empty picks one from the terminal
	Style string
}

// NewApp creates a new App writing to out
func NewApp(cfg config.Config, logger zerolog.Logger, out io.Writer) *App {
	return &App{Config: cfg, Logger: logger, Out: out}
}

// Commands returns the commands to register on a subcommands.Commander
func (a *App) Commands() []subcommands.Command {
	return []subcommands.Command{
		&cryptoCmd{app: a},
		&stockCmd{app: a},
		&portfolioCmd{app: a},
	}
}

// engines loads both snapshot files and wraps them in query engines
func (a *App) engines() (*market.CryptoEngine, *market.EquityEngine, error) {
	crypto, equities, err := csvsource.NewLoader(a.Config.CryptoFile, a.Config.StockFile).LoadAll()
	if err != nil {
		return nil, nil, err
	}

	a.Logger.Debug().
		Str("crypto_file", a.Config.CryptoFile).
		Int("crypto_rows", crypto.Len()).
		Str("stock_file", a.Config.StockFile).
		Int("stock_rows", equities.Len()).
		Msg("datasets loaded")

	return market.NewCryptoEngine(crypto), market.NewEquityEngine(equities), nil
}

// printMarkdown writes md to the output, rendered for the terminal unless Raw is set
func (a *App) printMarkdown(md string) error {
	if a.Raw {
		_, err := io.WriteString(a.Out, md)
		return err
	}

	opt := glamour.WithAutoStyle()
	if a.Style != "" {
		opt = glamour.WithStandardStyle(a.Style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(0))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(a.Out, out)
	return err
}

// fail logs err and returns the failure exit status
func (a *App) fail(err error, msg string) subcommands.ExitStatus {
	a.Logger.Error().Err(err).Msg(msg)
	return subcommands.ExitFailure
}

// usage logs a usage problem and returns the usage exit status
func (a *App) usage(format string, args ...any) subcommands.ExitStatus {
	a.Logger.Error().Msgf(format, args...)
	return subcommands.ExitUsageError
}
