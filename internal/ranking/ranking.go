// Package ranking orders metric records and selects the top entries.
package ranking

import "sort"

// Descending sorts items by key, highest first. Ties are broken by name in
// ascending order so output is deterministic.
func Descending[T any](items []T, key func(T) float64, name func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ki, kj := key(items[i]), key(items[j])
		if ki != kj {
			return ki > kj
		}
		return name(items[i]) < name(items[j])
	})
}

// Top returns the first n items. If n is <= 0 or >= len(items), all items
// are returned.
func Top[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
