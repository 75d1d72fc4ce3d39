// Package http exposes the market queries and the portfolio ledger as a JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/simaogato/fintech-analyzer/internal/adapter/render"
	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/market"
	"github.com/simaogato/fintech-analyzer/internal/usecase/portfolio"
)

const defaultLimit = 10

// errBadRequest marks request validation failures
var errBadRequest = errors.New("bad request")

// Handler serves the JSON API
type Handler struct {
	Crypto   *market.CryptoEngine
	Equities *market.EquityEngine
	Ledger   *portfolio.Ledger
}

// NewHandler creates a new Handler instance
func NewHandler(crypto *market.CryptoEngine, equities *market.EquityEngine, ledger *portfolio.Ledger) *Handler {
	return &Handler{
		Crypto:   crypto,
		Equities: equities,
		Ledger:   ledger,
	}
}

// Routes builds the chi router for the API
func (h *Handler) Routes(logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/crypto", func(r chi.Router) {
			r.Get("/overview", h.cryptoOverview)
			r.Get("/top", h.cryptoTop)
			r.Get("/worst", h.cryptoWorst)
			r.Get("/volume", h.cryptoVolume)
			r.Get("/range", h.cryptoRange)
			r.Get("/{symbol}", h.cryptoSearch)
		})

		r.Route("/stocks", func(r chi.Router) {
			r.Get("/overview", h.stockOverview)
			r.Get("/gainers", h.equityRanking(h.Equities.TopGainers))
			r.Get("/losers", h.equityRanking(h.Equities.TopLosers))
			r.Get("/volume", h.equityRanking(h.Equities.HighestByVolume))
			r.Get("/volatile", h.stockVolatile)
			r.Get("/range", h.stockRange)
			r.Get("/search", h.stockSearch)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/summary", h.portfolioSummary)
			r.Get("/allocation", h.portfolioAllocation)
			r.Get("/holdings", h.portfolioHoldings)
			r.Post("/holdings", h.addHolding)
			r.Get("/top", h.performers(h.Ledger.TopPerformers))
			r.Get("/worst", h.performers(h.Ledger.WorstPerformers))
		})
	})

	return r
}

func (h *Handler) cryptoOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, render.CryptoOverviewFields(h.Crypto.Overview()).Map())
}

func (h *Handler) cryptoTop(w http.ResponseWriter, r *http.Request) {
	h.cryptoRanking(w, r, h.Crypto.TopN, h.Crypto.TopPerformers)
}

func (h *Handler) cryptoWorst(w http.ResponseWriter, r *http.Request) {
	h.cryptoRanking(w, r, h.Crypto.BottomN, h.Crypto.WorstPerformers)
}

// cryptoRanking ranks by the metric query parameter when given, else by period
func (h *Handler) cryptoRanking(
	w http.ResponseWriter,
	r *http.Request,
	byMetric func(int, domain.Metric) ([]domain.MarketAssetRecord, error),
	byPeriod func(int, market.Period) []domain.MarketAssetRecord,
) {
	n, err := limitParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if metric := r.URL.Query().Get("metric"); metric != "" {
		records, err := byMetric(n, domain.Metric(metric))
		if err != nil {
			writeError(w, err)
			return
		}
		writeTable(w, render.NewTable("", domain.CryptoColumns, records))
		return
	}

	period, err := periodParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeTable(w, render.NewTable("", domain.CryptoColumns, byPeriod(n, period)))
}

func (h *Handler) cryptoVolume(w http.ResponseWriter, r *http.Request) {
	n, err := limitParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeTable(w, render.NewTable("", domain.CryptoColumns, h.Crypto.HighestByVolume(n)))
}

func (h *Handler) cryptoRange(w http.ResponseWriter, r *http.Request) {
	lo, hi, err := rangeParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeTable(w, render.NewTable("", domain.CryptoColumns, h.Crypto.ByPriceRange(lo, hi)))
}

func (h *Handler) cryptoSearch(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	rec, ok := h.Crypto.FindBySymbol(symbol)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody(fmt.Sprintf("no cryptocurrency with symbol %q", symbol)))
		return
	}
	writeTable(w, render.NewTable("", domain.CryptoColumns, []domain.MarketAssetRecord{rec}))
}

func (h *Handler) stockOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, render.EquityOverviewFields(h.Equities.Overview()).Map())
}

func (h *Handler) equityRanking(query func(int) []domain.EquityRecord) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := limitParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		writeTable(w, render.NewTable("", domain.EquityColumns, query(n)))
	}
}

func (h *Handler) stockVolatile(w http.ResponseWriter, r *http.Request) {
	n, err := limitParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeTable(w, render.NewTable("", market.VolatileColumns, h.Equities.MostVolatile(n)))
}

func (h *Handler) stockRange(w http.ResponseWriter, r *http.Request) {
	lo, hi, err := rangeParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeTable(w, render.NewTable("", domain.EquityColumns, h.Equities.ByPriceRange(lo, hi)))
}

func (h *Handler) stockSearch(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		writeError(w, fmt.Errorf("%w: name is required", errBadRequest))
		return
	}

	rec, ok := h.Equities.FindByName(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody(fmt.Sprintf("no stock matching %q", name)))
		return
	}
	writeTable(w, render.NewTable("", domain.EquityColumns, []domain.EquityRecord{rec}))
}

// addHoldingRequest is the JSON body of POST /portfolio/holdings
type addHoldingRequest struct {
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	CurrentPrice  float64 `json:"current_price"`
}

func (h *Handler) addHolding(w http.ResponseWriter, r *http.Request) {
	var req addHoldingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err))
		return
	}

	holding, err := h.Ledger.AddHolding(r.Context(), portfolio.AddHoldingInput{
		AssetType:     domain.AssetType(strings.ToLower(req.Type)),
		Name:          req.Name,
		Symbol:        req.Symbol,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, holding)
}

func (h *Handler) portfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Ledger.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) portfolioAllocation(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.Ledger.Allocation(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, render.AllocationFields(allocation).Map())
}

func (h *Handler) portfolioHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.Ledger.Holdings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeTable(w, render.NewTable("", domain.HoldingColumns, holdings))
}

func (h *Handler) performers(query func(context.Context, int) ([]*domain.Holding, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := limitParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		holdings, err := query(r.Context(), n)
		if err != nil {
			writeError(w, err)
			return
		}
		writeTable(w, render.NewTable("", domain.HoldingColumns, holdings))
	}
}

func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: n must be an integer", errBadRequest)
	}
	return n, nil
}

func periodParam(r *http.Request) (market.Period, error) {
	switch p := market.Period(r.URL.Query().Get("period")); p {
	case "":
		return market.Period24h, nil
	case market.Period24h, market.Period7d:
		return p, nil
	}
	return "", fmt.Errorf("%w: period must be %q or %q", errBadRequest, market.Period24h, market.Period7d)
}

func rangeParams(r *http.Request) (float64, float64, error) {
	lo, err := floatParam(r, "min")
	if err != nil {
		return 0, 0, err
	}
	hi, err := floatParam(r, "max")
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func floatParam(r *http.Request, name string) (float64, error) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number", errBadRequest, name)
	}
	return v, nil
}
