package geomhelp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/muesli/reflow/truncate"
)

const (
	Point              = "Point"
	MultiPoint         = "MultiPoint"
	LineString         = "LineString"
	MultiLineString    = "MultiLineString"
	Polygon            = "Polygon"
	MultiPolygon       = "MultiPolygon"
	GeometryCollection = "GeometryCollection"
)

var supportedTypes = map[string]struct{}{
	Point:              {},
	MultiPoint:         {},
	LineString:         {},
	MultiLineString:    {},
	Polygon:            {},
	MultiPolygon:       {},
	GeometryCollection: {},
}

var errNoGeometry = errors.New("missing geometry")

// Descriptor is the envelope of a GeoJSON geometry object
type Descriptor struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometries  json.RawMessage `json:"geometries"`
}

// ParseDescriptor reads the type and the raw members of a GeoJSON geometry
// and checks the members required for that type are present.
func ParseDescriptor(raw json.RawMessage) (Descriptor, error) {
	var d Descriptor
	if isNull(raw) {
		return d, errNoGeometry
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return d, err
	}
	if _, ok := supportedTypes[d.Type]; !ok {
		return d, fmt.Errorf("unsupported geometry type %q", d.Type)
	}
	if d.Type == GeometryCollection {
		if isNull(d.Geometries) {
			return d, fmt.Errorf("%s without geometries", d.Type)
		}
	} else if isNull(d.Coordinates) {
		return d, fmt.Errorf("%s without coordinates", d.Type)
	}
	return d, nil
}

// PointCoordinates returns the first two ordinates of a Point as written
// in the document: [x, y], i.e. [longitude, latitude]
func (d Descriptor) PointCoordinates() (x, y json.Number, err error) {
	if d.Type != Point {
		return "", "", fmt.Errorf("not a %s but a %s", Point, d.Type)
	}
	var ords []json.Number
	dec := json.NewDecoder(bytes.NewReader(d.Coordinates))
	dec.UseNumber()
	if err = dec.Decode(&ords); err != nil {
		return "", "", err
	}
	if len(ords) < 2 {
		return "", "", fmt.Errorf("%s needs at least 2 ordinates, got %d", Point, len(ords))
	}
	return ords[0], ords[1], nil
}

// FromGeoJSON decodes a GeoJSON geometry object into a geom.Geometry
func FromGeoJSON(raw json.RawMessage) (g geom.Geometry, err error) {
	if _, err = ParseDescriptor(raw); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, fmt.Errorf("malformed geometry: %v", r)
		}
	}()
	var decoded geojson.Geometry
	if err = json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	if decoded.Geometry == nil {
		return nil, errNoGeometry
	}
	return decoded.Geometry, nil
}

// WktEncode returns the well-known text of g. Ordinates are written as the
// shortest decimal that reads back to the same float64, without an exponent.
func WktEncode(g geom.Geometry) (string, error) {
	var sb strings.Builder
	if err := wkt.NewEncoder(&sb, false, -1, 'f').Encode(g); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// GeoJSONToWkt converts a GeoJSON geometry object to well-known text
func GeoJSONToWkt(raw json.RawMessage) (string, error) {
	g, err := FromGeoJSON(raw)
	if err != nil {
		return "", err
	}
	return WktEncode(g)
}

// Excerpt shortens s to at most maxLen characters for use in log lines and
// error messages. A maxLen of 0 leaves s untouched.
func Excerpt(s string, maxLen uint) string {
	if maxLen == 0 {
		return s
	}
	return truncate.StringWithTail(s, maxLen, "...")
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
