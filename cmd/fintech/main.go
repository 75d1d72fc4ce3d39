package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/simaogato/fintech-analyzer/internal/cli"
	"github.com/simaogato/fintech-analyzer/internal/config"
	"github.com/simaogato/fintech-analyzer/internal/pkg/logging"
)

func main() {
	name := path.Base(os.Args[0])
	cli.Completion().Complete(name)

	os.Exit(int(run(context.Background(), name, os.Args[1:], os.Stdout, os.Stderr)))
}

// run parses args and executes the selected command
func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) subcommands.ExitStatus {
	fallback := zerolog.New(stderr)

	cfg, err := config.Load(".env")
	if err != nil {
		fallback.Error().Err(err).Msg("failed to load configuration")
		return subcommands.ExitFailure
	}

	app := cli.NewApp(cfg, zerolog.Nop(), stdout)

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&app.Config.CryptoFile, "crypto-file", cfg.CryptoFile, "Cryptocurrency snapshot CSV file.")
	flags.StringVar(&app.Config.StockFile, "stock-file", cfg.StockFile, "Stock snapshot CSV file.")
	flags.StringVar(&app.Config.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error.")
	flags.BoolVar(&app.Raw, "raw", false, "Print plain markdown.")
	flags.StringVar(&app.Style, "style", "", "Terminal style: auto, dark, light, notty or ascii.")

	commander := subcommands.NewCommander(flags, name)
	commander.Output = stdout
	commander.Error = stderr
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range app.Commands() {
		commander.Register(c, "queries")
	}

	if err := flags.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}

	logger, err := logging.NewConsole(app.Config.LogLevel, stderr)
	if err != nil {
		fallback.Error().Err(err).Msg("invalid log level")
		return subcommands.ExitUsageError
	}
	app.Logger = logger
	if app.Style == "auto" {
		app.Style = ""
	}

	return commander.Execute(ctx)
}
