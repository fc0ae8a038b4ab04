// Package dedupe collapses sequences to their distinct elements while keeping
// the order in which each element was first seen.
package dedupe

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Distinct returns the items whose key has not been seen earlier in the slice.
// The first occurrence of each key wins and relative order is preserved.
func Distinct[T any, K comparable](items []T, key func(T) K) []T {
	if len(items) == 0 {
		return []T{}
	}
	seen := orderedmap.New[K, T]()
	for _, item := range items {
		k := key(item)
		if _, present := seen.Get(k); present {
			continue
		}
		seen.Set(k, item)
	}
	result := make([]T, 0, seen.Len())
	for pair := seen.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}
