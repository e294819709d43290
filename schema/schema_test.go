package schema

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pdok/geojson2csv/geojson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collection(features ...string) string {
	return `{"type":"FeatureCollection","features":[` + strings.Join(features, ",") + `]}`
}

func countingSource(doc string, opened *int) geojson.Source {
	return geojson.SourceFunc(func() (io.ReadCloser, error) {
		*opened++
		return io.NopCloser(strings.NewReader(doc)), nil
	})
}

func TestDiscover(t *testing.T) {
	features := []string{
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"STATUS":"ACTIVE","ADDRESS_ID":1}}`,
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[3,4]},"properties":{"ZIP_CODE":"15024","ADDRESS_ID":2}}`,
		`{"type":"Feature","geometry":null,"properties":null}`,
		`{"type":"Feature","geometry":{"type":"Polygon","coordinates":[]},"properties":{"COUNTY":null,"a":true}}`,
	}
	tests := []struct {
		name     string
		features []string
	}{
		{name: "document order", features: features},
		{name: "reversed", features: []string{features[3], features[2], features[1], features[0]}},
		{name: "shuffled", features: []string{features[2], features[0], features[3], features[1]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opened := 0
			s, err := Discover(countingSource(collection(tt.features...), &opened), "wkt", "LAT", "LNG")
			require.NoError(t, err)
			assert.Equal(t, 1, opened)
			assert.Equal(t, 4, s.Features())
			assert.Equal(t, []string{"ADDRESS_ID", "COUNTY", "STATUS", "ZIP_CODE", "a"}, s.Keys())
			assert.Equal(t, []string{"ADDRESS_ID", "COUNTY", "STATUS", "ZIP_CODE", "a", "wkt", "LAT", "LNG"}, s.Columns())
			assert.Equal(t, 8, s.Len())
		})
	}
}

func TestDiscoverZeroFeatures(t *testing.T) {
	opened := 0
	s, err := Discover(countingSource(collection(), &opened), "wkt", "LAT", "LNG")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Features())
	assert.Empty(t, s.Keys())
	assert.Equal(t, []string{"wkt", "LAT", "LNG"}, s.Columns())
}

func TestDiscoverKeyOnlyInLastFeature(t *testing.T) {
	const n = 10000
	features := make([]string, n)
	for i := 0; i < n-1; i++ {
		features[i] = fmt.Sprintf(`{"geometry":{"type":"Point","coordinates":[%d,%d]},"properties":{"id":%d}}`, i, i, i)
	}
	features[n-1] = `{"geometry":{"type":"Point","coordinates":[0,0]},"properties":{"id":-1,"late":"yes"}}`

	opened := 0
	s, err := Discover(countingSource(collection(features...), &opened), "wkt")
	require.NoError(t, err)
	assert.Equal(t, n, s.Features())
	assert.Equal(t, []string{"id", "late", "wkt"}, s.Columns())
}

func TestDiscoverDerivedCollision(t *testing.T) {
	opened := 0
	doc := collection(`{"geometry":null,"properties":{"LAT":1,"name":"x","wkt":"POINT (0 0)"}}`)
	s, err := Discover(countingSource(doc, &opened), "wkt", "LAT", "LNG")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, s.Keys())
	assert.Equal(t, []string{"name", "wkt", "LAT", "LNG"}, s.Columns())
}

func TestDiscoverParseError(t *testing.T) {
	opened := 0
	_, err := Discover(countingSource(`{"features":[{"properties":{"a":1}},`, &opened))
	assert.ErrorIs(t, err, geojson.ErrParse)
}

func TestSchemaIsImmutable(t *testing.T) {
	s := New(map[string]struct{}{"b": {}, "a": {}}, "wkt")
	keys := s.Keys()
	keys[0] = "changed"
	columns := s.Columns()
	columns[1] = "changed"
	assert.Equal(t, []string{"a", "b"}, s.Keys())
	assert.Equal(t, []string{"a", "b", "wkt"}, s.Columns())
}
