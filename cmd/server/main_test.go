package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcadapter "github.com/simaogato/fintech-analyzer/internal/adapter/grpc"
	"github.com/simaogato/fintech-analyzer/internal/config"
	"github.com/simaogato/fintech-analyzer/internal/domain"
)

const cryptoCSV = `timestamp,name,symbol,price_usd,vol_24h,chg_24h,chg_7d,market_cap
2024-03-01 12:00:00,Bitcoin,BTC,$100,$30M,+2.10%,-1.00%,$1000M
2024-03-01 12:00:00,Ethereum,ETH,$50,$45M,-1.05%,+4.20%,$400M
`

const equityCSV = `timestamp,name,last,high,low,chg_,chg_%,vol_
2024-03-01 16:00:00,Apple Inc,10,11,9,0.5,+5.00%,52.3M
2024-03-01 16:00:00,NVIDIA Corp,20,21,19.5,-1,-4.76%,410K
`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		CryptoFile:          filepath.Join(dir, "cryptocurrency.csv"),
		StockFile:           filepath.Join(dir, "stocks.csv"),
		GRPCAddr:            "127.0.0.1:0",
		HTTPAddr:            "127.0.0.1:0",
		LogLevel:            "info",
		SeedSamplePortfolio: true,
	}
	require.NoError(t, os.WriteFile(cfg.CryptoFile, []byte(cryptoCSV), 0o644))
	require.NoError(t, os.WriteFile(cfg.StockFile, []byte(equityCSV), 0o644))
	return cfg
}

func TestRun_ServesGRPCAndHTTP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	type addrs struct{ grpc, http string }
	ready := make(chan addrs, 1)
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, cfg, zerolog.Nop(), func(grpcAddr, httpAddr string) {
			ready <- addrs{grpcAddr, httpAddr}
		})
	}()

	var bound addrs
	select {
	case bound = <-ready:
	case err := <-done:
		t.Fatalf("run returned before serving: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("servers did not start")
	}

	t.Run("http health", func(t *testing.T) {
		resp, err := http.Get("http://" + bound.http + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("http sample portfolio is seeded", func(t *testing.T) {
		resp, err := http.Get("http://" + bound.http + "/api/v1/portfolio/summary")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 4.0, body["count"])
	})

	t.Run("grpc health and query", func(t *testing.T) {
		conn, err := grpc.NewClient(bound.grpc, grpc.WithTransportCredentials(insecure.NewCredentials()))
		require.NoError(t, err)
		defer conn.Close()

		health, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: grpcadapter.ServiceName})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.GetStatus())

		resp, err := grpcadapter.NewClient(conn).Call(ctx, "CryptoOverview", nil)
		require.NoError(t, err)
		assert.Equal(t, 2.0, resp.GetFields()["num_cryptocurrencies"].GetNumberValue())
	})

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_MissingSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.StockFile = filepath.Join(t.TempDir(), "missing.csv")

	err := run(context.Background(), cfg, zerolog.Nop(), func(string, string) {
		t.Error("servers must not start without data")
	})
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestRun_AddressInUse(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := testConfig(t)
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, first, zerolog.Nop(), func(grpcAddr, _ string) { ready <- grpcAddr })
	}()

	var taken string
	select {
	case taken = <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("servers did not start")
	}

	second := testConfig(t)
	second.GRPCAddr = taken
	assert.Error(t, run(context.Background(), second, zerolog.Nop(), nil))

	cancel()
	require.NoError(t, <-done)
}
