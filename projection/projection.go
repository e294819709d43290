// Package projection turns a feature into a flat row: its properties plus
// columns derived from the geometry.
package projection

import (
	"errors"
	"fmt"

	"github.com/pdok/geojson2csv/geojson"
	"github.com/pdok/geojson2csv/geomhelp"
)

// ErrGeometry is returned when a feature's geometry cannot be converted to WKT
var ErrGeometry = errors.New("cannot convert geometry")

const (
	DefaultGeometryColumn = "wkt"
	DefaultLatColumn      = "LAT"
	DefaultLngColumn      = "LNG"

	excerptLen = 80
)

// Projector names the derived columns
type Projector struct {
	GeometryColumn string
	LatColumn      string
	LngColumn      string
}

func NewProjector() Projector {
	return Projector{
		GeometryColumn: DefaultGeometryColumn,
		LatColumn:      DefaultLatColumn,
		LngColumn:      DefaultLngColumn,
	}
}

// DerivedColumns returns the derived columns in header order
func (p Projector) DerivedColumns() []string {
	return []string{p.GeometryColumn, p.LatColumn, p.LngColumn}
}

// Project builds the row of f. Properties are copied verbatim, a Point gets
// its longitude and latitude, and every geometry gets its WKT.
func (p Projector) Project(f geojson.Feature) (Row, error) {
	n := 1
	if f.Properties != nil {
		n += f.Properties.Len()
	}
	row := NewRow(n + 2)
	if f.Properties != nil {
		for pair := f.Properties.Oldest(); pair != nil; pair = pair.Next() {
			row.Set(pair.Key, pair.Value)
		}
	}

	d, err := geomhelp.ParseDescriptor(f.Geometry)
	if err != nil {
		return Row{}, p.geometryError(f, err)
	}
	if d.Type == geomhelp.Point {
		lng, lat, err := d.PointCoordinates()
		if err != nil {
			return Row{}, p.geometryError(f, err)
		}
		row.Set(p.LatColumn, geojson.NumberValue(lat))
		row.Set(p.LngColumn, geojson.NumberValue(lng))
	}

	text, err := geomhelp.GeoJSONToWkt(f.Geometry)
	if err != nil {
		return Row{}, p.geometryError(f, err)
	}
	row.Set(p.GeometryColumn, geojson.StringValue(text))
	return row, nil
}

func (p Projector) geometryError(f geojson.Feature, err error) error {
	return fmt.Errorf("%w: %v (geometry: %s)", ErrGeometry, err, geomhelp.Excerpt(string(f.Geometry), excerptLen))
}
