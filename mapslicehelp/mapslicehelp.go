package mapslicehelp

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

func AsKeys[T constraints.Ordered](elements []T) map[T]any {
	mapped := make(map[T]any, len(elements))
	for _, element := range elements {
		mapped[element] = struct{}{}
	}
	return mapped
}

// AsIndex maps every element to its (first) position in the slice
func AsIndex[T comparable](elements []T) map[T]int {
	indexed := make(map[T]int, len(elements))
	for i, element := range elements {
		if _, seen := indexed[element]; !seen {
			indexed[element] = i
		}
	}
	return indexed
}

func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

func OrderedMapKeys[K comparable, V any](m *orderedmap.OrderedMap[K, V]) []K {
	l := make([]K, m.Len())
	i := 0
	for p := m.Oldest(); p != nil; p = p.Next() {
		l[i] = p.Key
		i++
	}
	return l
}

// Without returns the elements of s that are not a key of exclude, keeping their order
func Without[T comparable, X any](s []T, exclude map[T]X) []T {
	r := make([]T, 0, len(s))
	for i := range s {
		if _, skip := exclude[s[i]]; skip {
			continue
		}
		r = append(r, s[i])
	}
	return r
}
