package processing

import (
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

const (
	geoJSONExt = ".geojson"
	csvExt     = ".csv"
)

// Options configures a conversion
type Options struct {
	// Rows per write to the output file
	BatchSize int `default:"1000" validate:"min=1"`
	// Derived column names
	GeometryColumn string `default:"wkt" validate:"required,nefield=LatColumn,nefield=LngColumn"`
	LatColumn      string `default:"LAT" validate:"required,nefield=LngColumn"`
	LngColumn      string `default:"LNG" validate:"required"`
	// Output file name used when the input has no .geojson extension
	DefaultOutput string `default:"output.csv" validate:"required"`
	// Replace an existing output file instead of refusing to run
	Overwrite bool
}

// NewOptions returns Options with every default filled in
func NewOptions() (Options, error) {
	var opts Options
	if err := defaults.Set(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks o without changing it. Zero fields are not filled in,
// use NewOptions or Convert for that.
func (o Options) Validate() error {
	return validator.New().Struct(o)
}

// OutputPath derives the CSV path from the input path: "x.geojson" (any
// case) becomes "x.csv", anything else becomes defaultOutput.
func OutputPath(input, defaultOutput string) string {
	ext := filepath.Ext(input)
	if strings.EqualFold(ext, geoJSONExt) {
		return input[:len(input)-len(ext)] + csvExt
	}
	return defaultOutput
}
