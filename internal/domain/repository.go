package domain

import "context"

// HoldingRepository defines the interface for holding storage operations.
// Implementations must serialize Append against concurrent callers.
type HoldingRepository interface {
	// Append stores a holding at the end of the ledger
	Append(ctx context.Context, holding *Holding) error

	// List retrieves every holding in insertion order
	List(ctx context.Context) ([]*Holding, error)

	// Count returns the number of stored holdings
	Count(ctx context.Context) (int, error)
}
