package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/fintech-analyzer/internal/adapter/repository/memory"
	"github.com/simaogato/fintech-analyzer/internal/domain"
)

// MockHoldingRepository is a mock implementation of HoldingRepository
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) Append(ctx context.Context, holding *domain.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) List(ctx context.Context) ([]*domain.Holding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var (
	bitcoin = AddHoldingInput{
		AssetType: domain.AssetTypeCrypto, Name: "Bitcoin", Symbol: "BTC",
		Quantity: 1, PurchasePrice: 50000, CurrentPrice: 60000,
	}
	apple = AddHoldingInput{
		AssetType: domain.AssetTypeStock, Name: "Apple Inc", Symbol: "AAPL",
		Quantity: 10, PurchasePrice: 150, CurrentPrice: 160,
	}
)

func TestLedger_AddHolding_DerivedFields(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(memory.NewHoldingRepository())

	h, err := ledger.AddHolding(ctx, bitcoin)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, h.GainLoss)
	assert.Equal(t, 20.0, h.GainLossPct)
	assert.Equal(t, 50000.0, h.CostBasis)
	assert.Equal(t, 60000.0, h.CurrentValue)
}

func TestLedger_Summary(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(memory.NewHoldingRepository())

	_, err := ledger.AddHolding(ctx, bitcoin)
	require.NoError(t, err)
	_, err = ledger.AddHolding(ctx, apple)
	require.NoError(t, err)

	s, err := ledger.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 51500.0, s.TotalCostBasis)
	assert.Equal(t, 61600.0, s.TotalCurrentValue)
	assert.Equal(t, 10100.0, s.TotalGainLoss)
	assert.InDelta(t, 10100.0/51500*100, s.TotalGainLossPct, 1e-9)
	assert.Equal(t, 60000.0, s.ValueByType[domain.AssetTypeCrypto])
	assert.Equal(t, 1600.0, s.ValueByType[domain.AssetTypeStock])
}

func TestLedger_Summary_GainLossAddsUpHoldings(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(memory.NewHoldingRepository())

	var want float64
	for i := 1; i <= 25; i++ {
		h, err := ledger.AddHolding(ctx, AddHoldingInput{
			AssetType:     domain.AssetTypeCrypto,
			Name:          "Coin",
			Symbol:        "coin",
			Quantity:      0.1 * float64(i),
			PurchasePrice: 0.3 + 0.07*float64(i),
			CurrentPrice:  0.7 - 0.01*float64(i),
		})
		require.NoError(t, err)
		want += h.GainLoss
	}

	s, err := ledger.Summary(ctx)
	require.NoError(t, err)

	// exact: the total is the running sum of each holding's gain/loss
	assert.Equal(t, want, s.TotalGainLoss)
	assert.Equal(t, want/s.TotalCostBasis*100, s.TotalGainLossPct)
}

func TestLedger_Summary_Empty(t *testing.T) {
	ledger := NewLedger(memory.NewHoldingRepository())

	s, err := ledger.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, s.Count)
	assert.Zero(t, s.TotalGainLossPct)
	assert.Zero(t, s.TotalCurrentValue)
	assert.Equal(t, map[domain.AssetType]float64{
		domain.AssetTypeCrypto: 0,
		domain.AssetTypeStock:  0,
	}, s.ValueByType)
}

func TestLedger_Allocation(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(memory.NewHoldingRepository())

	empty, err := ledger.Allocation(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ledger.AddHolding(ctx, bitcoin)
	require.NoError(t, err)
	_, err = ledger.AddHolding(ctx, apple)
	require.NoError(t, err)

	allocation, err := ledger.Allocation(ctx)
	require.NoError(t, err)
	require.Len(t, allocation, 2)
	assert.InDelta(t, 100.0, allocation[domain.AssetTypeCrypto]+allocation[domain.AssetTypeStock], 1e-9)
	assert.InDelta(t, 60000.0/61600*100, allocation[domain.AssetTypeCrypto], 1e-9)
}

func TestLedger_AddHolding_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *AddHoldingInput)
	}{
		{"zero purchase price", func(in *AddHoldingInput) { in.PurchasePrice = 0 }},
		{"negative current price", func(in *AddHoldingInput) { in.CurrentPrice = -1 }},
		{"zero quantity", func(in *AddHoldingInput) { in.Quantity = 0 }},
		{"unknown asset type", func(in *AddHoldingInput) { in.AssetType = "bond" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := memory.NewHoldingRepository()
			ledger := NewLedger(repo)
			_, err := ledger.AddHolding(ctx, bitcoin)
			require.NoError(t, err)

			input := apple
			tt.modify(&input)
			h, err := ledger.AddHolding(ctx, input)

			assert.ErrorIs(t, err, domain.ErrInvalidHolding)
			assert.Nil(t, h)
			count, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestLedger_AddHolding_InvalidNeverReachesRepository(t *testing.T) {
	mockRepo := new(MockHoldingRepository)
	ledger := NewLedger(mockRepo)

	input := bitcoin
	input.PurchasePrice = 0
	_, err := ledger.AddHolding(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrInvalidHolding)
	mockRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestLedger_AddHolding_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockHoldingRepository)
	ledger := NewLedger(mockRepo)

	mockRepo.On("Append", ctx, mock.MatchedBy(func(h *domain.Holding) bool {
		return h.Symbol == "BTC" && h.GainLoss == 10000
	})).Return(errors.New("disk full"))

	_, err := ledger.AddHolding(ctx, bitcoin)

	assert.ErrorContains(t, err, "disk full")
	mockRepo.AssertExpectations(t)
}

func TestLedger_Performers(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(memory.NewHoldingRepository())

	inputs := []AddHoldingInput{
		{AssetType: domain.AssetTypeCrypto, Name: "Bitcoin", Symbol: "BTC", Quantity: 1, PurchasePrice: 100, CurrentPrice: 120},   // +20
		{AssetType: domain.AssetTypeCrypto, Name: "Ethereum", Symbol: "ETH", Quantity: 1, PurchasePrice: 100, CurrentPrice: 90},   // -10
		{AssetType: domain.AssetTypeStock, Name: "Apple Inc", Symbol: "AAPL", Quantity: 1, PurchasePrice: 50, CurrentPrice: 60},   // +20
		{AssetType: domain.AssetTypeStock, Name: "NVIDIA Corp", Symbol: "NVDA", Quantity: 1, PurchasePrice: 10, CurrentPrice: 15}, // +50
	}
	for _, in := range inputs {
		_, err := ledger.AddHolding(ctx, in)
		require.NoError(t, err)
	}

	top, err := ledger.TopPerformers(ctx, 3)
	require.NoError(t, err)
	// BTC and AAPL tie at +20: insertion order wins
	assert.Equal(t, []string{"NVDA", "BTC", "AAPL"}, holdingSymbols(top))

	worst, err := ledger.WorstPerformers(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"ETH", "BTC"}, holdingSymbols(worst))

	none, err := ledger.TopPerformers(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := ledger.WorstPerformers(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestLedger_ListError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockHoldingRepository)
	ledger := NewLedger(mockRepo)

	mockRepo.On("List", ctx).Return(nil, errors.New("unavailable"))

	_, err := ledger.Summary(ctx)
	assert.ErrorContains(t, err, "unavailable")
	_, err = ledger.Allocation(ctx)
	assert.Error(t, err)
	_, err = ledger.TopPerformers(ctx, 1)
	assert.Error(t, err)
}

func holdingSymbols(holdings []*domain.Holding) []string {
	out := make([]string, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, h.Symbol)
	}
	return out
}
