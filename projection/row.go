package projection

import (
	"github.com/pdok/geojson2csv/geojson"
	"github.com/pdok/geojson2csv/mapslicehelp"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is one flattened feature: column name to value, in insertion order
type Row struct {
	fields *orderedmap.OrderedMap[string, geojson.Value]
}

func NewRow(capacity int) Row {
	return Row{fields: orderedmap.New[string, geojson.Value](capacity)}
}

func (r Row) Set(column string, v geojson.Value) {
	r.fields.Set(column, v)
}

func (r Row) Get(column string) (geojson.Value, bool) {
	if r.fields == nil {
		return geojson.Value{}, false
	}
	return r.fields.Get(column)
}

func (r Row) Has(column string) bool {
	_, ok := r.Get(column)
	return ok
}

func (r Row) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Columns returns the column names of the row in insertion order
func (r Row) Columns() []string {
	if r.fields == nil {
		return nil
	}
	return mapslicehelp.OrderedMapKeys(r.fields)
}

// Strings renders every field of the row as it is written to CSV
func (r Row) Strings() map[string]string {
	m := make(map[string]string, r.Len())
	if r.fields == nil {
		return m
	}
	for p := r.fields.Oldest(); p != nil; p = p.Next() {
		m[p.Key] = p.Value.String()
	}
	return m
}
