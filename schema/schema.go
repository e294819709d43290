// Package schema discovers the column set of a GeoJSON document by visiting
// every feature once.
package schema

import (
	"slices"

	"github.com/pdok/geojson2csv/geojson"
	"github.com/pdok/geojson2csv/mapslicehelp"
)

// Schema is the sorted set of property keys of a document, followed by the
// derived columns. It is immutable once discovered.
type Schema struct {
	keys     []string
	derived  []string
	features int
}

// New builds a Schema from a set of property keys. Keys that collide with a
// derived column are left out, the derived value takes that column.
func New(keys map[string]struct{}, derived ...string) Schema {
	sorted := mapslicehelp.SortedKeys(keys)
	return Schema{
		keys:    mapslicehelp.Without(sorted, mapslicehelp.AsKeys(derived)),
		derived: slices.Clone(derived),
	}
}

// Discover traverses src from the start and collects the union of all
// property keys. Geometries are not decoded.
func Discover(src geojson.Source, derived ...string) (Schema, error) {
	keys := make(map[string]struct{})
	n, err := geojson.ForEach(src, func(f geojson.Feature) error {
		for p := f.Properties.Oldest(); p != nil; p = p.Next() {
			keys[p.Key] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return Schema{}, err
	}
	s := New(keys, derived...)
	s.features = n
	return s, nil
}

// Keys returns the sorted property keys
func (s Schema) Keys() []string {
	return slices.Clone(s.keys)
}

// Derived returns the derived column names in header order
func (s Schema) Derived() []string {
	return slices.Clone(s.derived)
}

// Columns is the full header: property keys, then derived columns
func (s Schema) Columns() []string {
	columns := make([]string, 0, len(s.keys)+len(s.derived))
	columns = append(columns, s.keys...)
	return append(columns, s.derived...)
}

// Features is the number of features visited during discovery
func (s Schema) Features() int {
	return s.features
}

func (s Schema) Len() int {
	return len(s.keys) + len(s.derived)
}
