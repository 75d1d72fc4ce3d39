package domain

import "slices"

// Record is implemented by every row type a Dataset can hold
type Record interface {
	MarketAssetRecord | EquityRecord
}

// Dataset is an ordered collection of records of one kind, in source file order.
// It is read-only once built and safe for concurrent readers.
type Dataset[T Record] struct {
	records []T
}

// CryptoDataset is a Dataset of cryptocurrency rows
type CryptoDataset = Dataset[MarketAssetRecord]

// EquityDataset is a Dataset of stock rows
type EquityDataset = Dataset[EquityRecord]

// NewDataset builds a Dataset from records. The slice is copied.
func NewDataset[T Record](records []T) Dataset[T] {
	return Dataset[T]{records: slices.Clone(records)}
}

// Len returns the number of records
func (d Dataset[T]) Len() int {
	return len(d.records)
}

// At returns the i-th record in file order
func (d Dataset[T]) At(i int) T {
	return d.records[i]
}

// Records returns a copy of the records in file order
func (d Dataset[T]) Records() []T {
	return slices.Clone(d.records)
}

// All iterates the records in file order without copying
func (d Dataset[T]) All(yield func(int, T) bool) {
	for i, r := range d.records {
		if !yield(i, r) {
			return
		}
	}
}
