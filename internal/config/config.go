// Package config reads process configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultCryptoFile = "cryptocurrency.csv"
	defaultStockFile  = "stocks.csv"
	defaultGRPCAddr   = ":8080"
	defaultHTTPAddr   = ":8081"
	defaultLogLevel   = "info"
)

// Config holds the settings shared by the server and the CLI
type Config struct {
	CryptoFile          string
	StockFile           string
	GRPCAddr            string
	HTTPAddr            string
	LogLevel            string
	SeedSamplePortfolio bool
}

// Load reads the given .env files (missing files are ignored) and then the
// environment. Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read %s: %w", file, err)
		}
	}

	seed, err := strconv.ParseBool(env("SEED_SAMPLE_PORTFOLIO", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SEED_SAMPLE_PORTFOLIO: %w", err)
	}

	return Config{
		CryptoFile:          env("CRYPTO_FILE", defaultCryptoFile),
		StockFile:           env("STOCK_FILE", defaultStockFile),
		GRPCAddr:            env("GRPC_ADDR", defaultGRPCAddr),
		HTTPAddr:            env("HTTP_ADDR", defaultHTTPAddr),
		LogLevel:            env("LOG_LEVEL", defaultLogLevel),
		SeedSamplePortfolio: seed,
	}, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
