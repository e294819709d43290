// Package geojson streams the features of a (large) GeoJSON FeatureCollection
// without loading the document in memory.
package geojson

import (
	"bytes"
	"encoding/json"

	"github.com/pdok/geojson2csv/mapslicehelp"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties of a feature, in document order
type Properties = orderedmap.OrderedMap[string, Value]

func NewProperties() *Properties {
	return orderedmap.New[string, Value]()
}

// Feature is one element of the "features" array. The geometry is kept as
// the raw JSON descriptor and only decoded when a row is projected.
type Feature struct {
	Type       string
	Geometry   json.RawMessage
	Properties *Properties
}

type featureJSON struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties *Properties     `json:"properties"`
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	var fj featureJSON
	if err := json.Unmarshal(data, &fj); err != nil {
		return err
	}
	f.Type = fj.Type
	f.Geometry = fj.Geometry
	f.Properties = fj.Properties
	if f.Properties == nil {
		f.Properties = NewProperties()
	}
	return nil
}

// HasGeometry reports whether the feature carries a non-null geometry member
func (f Feature) HasGeometry() bool {
	trimmed := bytes.TrimSpace(f.Geometry)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Keys returns the property keys in document order
func (f Feature) Keys() []string {
	if f.Properties == nil {
		return nil
	}
	return mapslicehelp.OrderedMapKeys(f.Properties)
}
