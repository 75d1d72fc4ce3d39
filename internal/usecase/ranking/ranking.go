// Package ranking selects the first n items of a slice ordered by a numeric key.
// Ties keep their original relative order.
package ranking

import (
	"cmp"
	"slices"
)

// Top returns the n items with the greatest key, in descending key order.
// If n exceeds len(items) all items are returned; n <= 0 returns an empty slice.
func Top[T any](items []T, n int, key func(T) float64) []T {
	return rank(items, n, func(a, b T) int { return cmp.Compare(key(b), key(a)) })
}

// Bottom returns the n items with the smallest key, in ascending key order.
func Bottom[T any](items []T, n int, key func(T) float64) []T {
	return rank(items, n, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
}

func rank[T any](items []T, n int, compare func(a, b T) int) []T {
	if n <= 0 {
		return []T{}
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, compare)

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return slices.Clip(sorted)
}

// Filter returns the items whose key lies in [lo, hi], in original order
func Filter[T any](items []T, lo, hi float64, key func(T) float64) []T {
	out := []T{}
	for _, item := range items {
		if v := key(item); v >= lo && v <= hi {
			out = append(out, item)
		}
	}
	return out
}
