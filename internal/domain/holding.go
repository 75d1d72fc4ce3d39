package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AssetType represents the kind of asset a holding refers to
type AssetType string

const (
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeStock  AssetType = "stock"
)

// AssetTypes lists every known asset type in reporting order
var AssetTypes = []AssetType{AssetTypeCrypto, AssetTypeStock}

// HoldingColumns is the ordered column list of a holding row
var HoldingColumns = []string{
	"type", "name", "symbol", "quantity", "purchase_price", "current_price",
	"cost_basis", "current_value", "gain_loss", "gain_loss_pct",
}

// Holding represents a position in the portfolio ledger.
// The derived fields are computed once by NewHolding and never recomputed.
type Holding struct {
	ID            uuid.UUID `json:"id"`
	AssetType     AssetType `json:"type"`
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	CurrentPrice  float64   `json:"current_price"`
	AddedAt       time.Time `json:"added_at"`

	CostBasis    float64 `json:"cost_basis"`
	CurrentValue float64 `json:"current_value"`
	GainLoss     float64 `json:"gain_loss"`
	GainLossPct  float64 `json:"gain_loss_pct"`
}

// NewHolding validates the inputs and returns a holding with its derived fields filled in
func NewHolding(assetType AssetType, name, symbol string, quantity, purchasePrice, currentPrice float64) (*Holding, error) {
	h := &Holding{
		ID:            uuid.New(),
		AssetType:     assetType,
		Name:          name,
		Symbol:        symbol,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
		AddedAt:       time.Now().UTC(),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	h.CostBasis = quantity * purchasePrice
	h.CurrentValue = quantity * currentPrice
	h.GainLoss = (currentPrice - purchasePrice) * quantity
	h.GainLossPct = (currentPrice - purchasePrice) / purchasePrice * 100
	return h, nil
}

// Validate ensures the holding adheres to domain rules
// Returns an error wrapping ErrInvalidHolding if validation fails
func (h *Holding) Validate() error {
	if h.AssetType != AssetTypeCrypto && h.AssetType != AssetTypeStock {
		return fmt.Errorf("%w: asset type must be crypto or stock, got %q", ErrInvalidHolding, h.AssetType)
	}

	// Written as !(x > 0) so NaN is rejected too
	if !(h.Quantity > 0) {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidHolding)
	}
	if !(h.PurchasePrice > 0) {
		return fmt.Errorf("%w: purchase price must be positive", ErrInvalidHolding)
	}
	if !(h.CurrentPrice > 0) {
		return fmt.Errorf("%w: current price must be positive", ErrInvalidHolding)
	}

	return nil
}

// Values returns the holding fields ordered as HoldingColumns
func (h *Holding) Values() []any {
	return []any{
		string(h.AssetType), h.Name, h.Symbol, h.Quantity, h.PurchasePrice, h.CurrentPrice,
		h.CostBasis, h.CurrentValue, h.GainLoss, h.GainLossPct,
	}
}
