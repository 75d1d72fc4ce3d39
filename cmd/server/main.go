package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	grpclib "google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/simaogato/fintech-analyzer/internal/adapter/csvsource"
	grpcadapter "github.com/simaogato/fintech-analyzer/internal/adapter/grpc"
	httpadapter "github.com/simaogato/fintech-analyzer/internal/adapter/http"
	"github.com/simaogato/fintech-analyzer/internal/adapter/repository/memory"
	"github.com/simaogato/fintech-analyzer/internal/config"
	"github.com/simaogato/fintech-analyzer/internal/pkg/grpcserver"
	"github.com/simaogato/fintech-analyzer/internal/pkg/logging"
	"github.com/simaogato/fintech-analyzer/internal/usecase/market"
	"github.com/simaogato/fintech-analyzer/internal/usecase/portfolio"
	"github.com/simaogato/fintech-analyzer/internal/usecase/seeder"
)

const shutdownTimeout = 10 * time.Second

func main() {
	fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fallback.Fatal().Err(err).Msg("invalid log level")
	}

	// Graceful shutdown on SIGTERM or SIGINT
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	err = run(ctx, cfg, logger, nil)
	stop()
	if err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

// run wires the servers from cfg and serves until ctx is done or a server fails.
// ready, when set, receives the bound gRPC and HTTP addresses once both listen.
func run(ctx context.Context, cfg config.Config, logger zerolog.Logger, ready func(grpcAddr, httpAddr string)) error {
	// 1. Load the market snapshots
	crypto, equities, err := csvsource.NewLoader(cfg.CryptoFile, cfg.StockFile).LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	logger.Info().
		Int("cryptocurrencies", crypto.Len()).
		Int("stocks", equities.Len()).
		Msg("datasets loaded")

	// 2. Initialize engines and the portfolio ledger
	cryptoEngine := market.NewCryptoEngine(crypto)
	equityEngine := market.NewEquityEngine(equities)
	ledger := portfolio.NewLedger(memory.NewHoldingRepository())

	if cfg.SeedSamplePortfolio {
		added, err := seeder.NewSamplePortfolioSeeder(cryptoEngine, equityEngine, ledger).Seed(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed sample portfolio: %w", err)
		}
		logger.Info().Int("holdings", added).Msg("sample portfolio seeded")
	}

	// 3. Create the gRPC and HTTP servers
	grpcServer := grpcserver.New(cfg.GRPCAddr,
		grpclib.UnaryInterceptor(grpcadapter.LoggingInterceptor(logger)),
	)
	grpcadapter.RegisterMarketQueryServer(grpcServer.Server, grpcadapter.NewServer(cryptoEngine, equityEngine, ledger))
	grpcServer.Health.SetServingStatus(grpcadapter.ServiceName, healthpb.HealthCheckResponse_SERVING)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpadapter.NewHandler(cryptoEngine, equityEngine, ledger).Routes(logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 4. Listen and serve
	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GRPCAddr, err)
	}
	httpLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("failed to listen on %s: %w", cfg.HTTPAddr, err)
	}

	errs := make(chan error, 2)
	go func() {
		logger.Info().Str("addr", grpcLis.Addr().String()).Msg("gRPC server listening")
		if err := grpcServer.Serve(grpcLis); err != nil {
			errs <- fmt.Errorf("gRPC server: %w", err)
		}
	}()
	go func() {
		logger.Info().Str("addr", httpLis.Addr().String()).Msg("HTTP server listening")
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	if ready != nil {
		ready(grpcLis.Addr().String(), httpLis.Addr().String())
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down gracefully")
	case serveErr = <-errs:
	}

	shutdown(logger, grpcServer, httpServer)
	return serveErr
}

// shutdown stops the HTTP server, then the gRPC server, letting in-flight calls finish
func shutdown(logger zerolog.Logger, grpcServer *grpcserver.Server, httpServer *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	logger.Info().Msg("HTTP server stopped")

	grpcServer.Stop()
	logger.Info().Msg("gRPC server stopped")
}
