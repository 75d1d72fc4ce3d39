// Package market implements read-only queries over a loaded crypto or equity dataset.
//
// All rankings are stable: records with equal metric values keep their file order.
package market

import (
	"fmt"
	"math"

	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/ranking"
)

type record interface {
	domain.Record
	Metric(m domain.Metric) (float64, bool)
}

// engine holds the queries shared by the crypto and equity engines
type engine[T record] struct {
	dataset domain.Dataset[T]
}

// Len returns the number of records in the dataset
func (e *engine[T]) Len() int {
	return e.dataset.Len()
}

// TopN returns the n records with the greatest value of metric, descending
func (e *engine[T]) TopN(n int, metric domain.Metric) ([]T, error) {
	key, err := e.key(metric)
	if err != nil {
		return nil, err
	}
	return ranking.Top(e.dataset.Records(), n, key), nil
}

// BottomN returns the n records with the smallest value of metric, ascending
func (e *engine[T]) BottomN(n int, metric domain.Metric) ([]T, error) {
	key, err := e.key(metric)
	if err != nil {
		return nil, err
	}
	return ranking.Bottom(e.dataset.Records(), n, key), nil
}

// ByRange returns the records with lo <= metric <= hi in file order.
// An empty result is not an error.
func (e *engine[T]) ByRange(lo, hi float64, metric domain.Metric) ([]T, error) {
	key, err := e.key(metric)
	if err != nil {
		return nil, err
	}
	return ranking.Filter(e.dataset.Records(), lo, hi, key), nil
}

func (e *engine[T]) key(metric domain.Metric) (func(T) float64, error) {
	var zero T
	if _, ok := zero.Metric(metric); !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, metric)
	}
	return func(r T) float64 {
		v, _ := r.Metric(metric)
		return v
	}, nil
}

// mustRank is used by the helpers whose metric is fixed at compile time
func mustRank[T any](records []T, err error) []T {
	if err != nil {
		panic(err)
	}
	return records
}

// mean returns NaN for an empty set: an empty dataset has no average
func mean(sum float64, count int) float64 {
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}
