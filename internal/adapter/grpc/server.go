package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/fintech-analyzer/internal/adapter/render"
	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/market"
	"github.com/simaogato/fintech-analyzer/internal/usecase/portfolio"
)

const defaultLimit = 10

// Server implements the MarketQuery gRPC server
type Server struct {
	Crypto   *market.CryptoEngine
	Equities *market.EquityEngine
	Ledger   *portfolio.Ledger
}

var _ MarketQueryServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(crypto *market.CryptoEngine, equities *market.EquityEngine, ledger *portfolio.Ledger) *Server {
	return &Server{
		Crypto:   crypto,
		Equities: equities,
		Ledger:   ledger,
	}
}

// CryptoOverview handles the CryptoOverview RPC
func (s *Server) CryptoOverview(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return fieldsResponse(render.CryptoOverviewFields(s.Crypto.Overview()))
}

// CryptoTop handles the CryptoTop RPC.
// An explicit metric overrides the period.
func (s *Server) CryptoTop(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.cryptoRanking(req, s.Crypto.TopN, s.Crypto.TopPerformers)
}

// CryptoWorst handles the CryptoWorst RPC
func (s *Server) CryptoWorst(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.cryptoRanking(req, s.Crypto.BottomN, s.Crypto.WorstPerformers)
}

func (s *Server) cryptoRanking(
	req *structpb.Struct,
	byMetric func(int, domain.Metric) ([]domain.MarketAssetRecord, error),
	byPeriod func(int, market.Period) []domain.MarketAssetRecord,
) (*structpb.Struct, error) {
	n, err := intField(req, "n", defaultLimit)
	if err != nil {
		return nil, err
	}

	metric, err := stringField(req, "metric", "")
	if err != nil {
		return nil, err
	}
	if metric != "" {
		records, err := byMetric(n, domain.Metric(metric))
		if err != nil {
			return nil, mapError(err)
		}
		return tableResponse(render.NewTable("", domain.CryptoColumns, records))
	}

	period, err := periodField(req)
	if err != nil {
		return nil, err
	}
	return tableResponse(render.NewTable("", domain.CryptoColumns, byPeriod(n, period)))
}

// CryptoVolume handles the CryptoVolume RPC
func (s *Server) CryptoVolume(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	n, err := intField(req, "n", defaultLimit)
	if err != nil {
		return nil, err
	}
	return tableResponse(render.NewTable("", domain.CryptoColumns, s.Crypto.HighestByVolume(n)))
}

// CryptoRange handles the CryptoRange RPC
func (s *Server) CryptoRange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lo, hi, err := rangeFields(req)
	if err != nil {
		return nil, err
	}
	return tableResponse(render.NewTable("", domain.CryptoColumns, s.Crypto.ByPriceRange(lo, hi)))
}

// CryptoSearch handles the CryptoSearch RPC
func (s *Server) CryptoSearch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	symbol, err := requiredString(req, "symbol")
	if err != nil {
		return nil, err
	}

	rec, ok := s.Crypto.FindBySymbol(symbol)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "no cryptocurrency with symbol %q", symbol)
	}
	return tableResponse(render.NewTable("", domain.CryptoColumns, []domain.MarketAssetRecord{rec}))
}

// StockOverview handles the StockOverview RPC
func (s *Server) StockOverview(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return fieldsResponse(render.EquityOverviewFields(s.Equities.Overview()))
}

// StockGainers handles the StockGainers RPC
func (s *Server) StockGainers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.equityRanking(req, s.Equities.TopGainers)
}

// StockLosers handles the StockLosers RPC
func (s *Server) StockLosers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.equityRanking(req, s.Equities.TopLosers)
}

// StockVolume handles the StockVolume RPC
func (s *Server) StockVolume(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.equityRanking(req, s.Equities.HighestByVolume)
}

func (s *Server) equityRanking(req *structpb.Struct, query func(int) []domain.EquityRecord) (*structpb.Struct, error) {
	n, err := intField(req, "n", defaultLimit)
	if err != nil {
		return nil, err
	}
	return tableResponse(render.NewTable("", domain.EquityColumns, query(n)))
}

// StockVolatile handles the StockVolatile RPC.
// Infinite volatility is returned as null.
func (s *Server) StockVolatile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	n, err := intField(req, "n", defaultLimit)
	if err != nil {
		return nil, err
	}
	return tableResponse(render.NewTable("", market.VolatileColumns, s.Equities.MostVolatile(n)))
}

// StockRange handles the StockRange RPC
func (s *Server) StockRange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lo, hi, err := rangeFields(req)
	if err != nil {
		return nil, err
	}
	return tableResponse(render.NewTable("", domain.EquityColumns, s.Equities.ByPriceRange(lo, hi)))
}

// StockSearch handles the StockSearch RPC
func (s *Server) StockSearch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := requiredString(req, "name")
	if err != nil {
		return nil, err
	}

	rec, ok := s.Equities.FindByName(name)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "no stock matching %q", name)
	}
	return tableResponse(render.NewTable("", domain.EquityColumns, []domain.EquityRecord{rec}))
}

// AddHolding handles the AddHolding RPC
func (s *Server) AddHolding(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := holdingInput(req)
	if err != nil {
		return nil, err
	}

	holding, err := s.Ledger.AddHolding(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	resp, err := tableResponse(render.NewTable("", domain.HoldingColumns, []*domain.Holding{holding}))
	if err != nil {
		return nil, err
	}
	resp.Fields["id"] = structpb.NewStringValue(holding.ID.String())
	resp.Fields["added_at"] = structpb.NewStringValue(holding.AddedAt.UTC().Format(time.RFC3339Nano))
	return resp, nil
}

// PortfolioSummary handles the PortfolioSummary RPC
func (s *Server) PortfolioSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	summary, err := s.Ledger.Summary(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return fieldsResponse(render.SummaryFields(summary))
}

// PortfolioAllocation handles the PortfolioAllocation RPC
func (s *Server) PortfolioAllocation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	allocation, err := s.Ledger.Allocation(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return fieldsResponse(render.AllocationFields(allocation))
}

// PortfolioHoldings handles the PortfolioHoldings RPC
func (s *Server) PortfolioHoldings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	holdings, err := s.Ledger.Holdings(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return tableResponse(render.NewTable("", domain.HoldingColumns, holdings))
}

// PortfolioTop handles the PortfolioTop RPC
func (s *Server) PortfolioTop(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.performers(ctx, req, s.Ledger.TopPerformers)
}

// PortfolioWorst handles the PortfolioWorst RPC
func (s *Server) PortfolioWorst(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.performers(ctx, req, s.Ledger.WorstPerformers)
}

func (s *Server) performers(
	ctx context.Context,
	req *structpb.Struct,
	query func(context.Context, int) ([]*domain.Holding, error),
) (*structpb.Struct, error) {
	n, err := intField(req, "n", defaultLimit)
	if err != nil {
		return nil, err
	}
	holdings, err := query(ctx, n)
	if err != nil {
		return nil, mapError(err)
	}
	return tableResponse(render.NewTable("", domain.HoldingColumns, holdings))
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidHolding),
		errors.Is(err, domain.ErrUnknownMetric):
		return status.Errorf(codes.InvalidArgument, "%s", err)
	case errors.Is(err, domain.ErrSourceNotFound):
		return status.Errorf(codes.NotFound, "%s", err)
	case errors.Is(err, domain.ErrMalformedTimestamp),
		errors.Is(err, domain.ErrMalformedPercentage),
		errors.Is(err, domain.ErrMissingColumn):
		return status.Errorf(codes.FailedPrecondition, "%s", err)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err)
}

func tableResponse(t render.Table) (*structpb.Struct, error) {
	columns := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c
	}
	rows := make([]interface{}, 0, len(t.Rows))
	for _, row := range t.Cells() {
		rows = append(rows, row)
	}

	resp, err := structpb.NewStruct(map[string]interface{}{
		"columns": columns,
		"rows":    rows,
		"count":   len(rows),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "cannot encode response: %v", err)
	}
	return resp, nil
}

func fieldsResponse(f render.Fields) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(f.Map())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "cannot encode response: %v", err)
	}
	return resp, nil
}
