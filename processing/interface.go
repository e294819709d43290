package processing

import (
	"github.com/pdok/geojson2csv/geojson"
	"github.com/pdok/geojson2csv/projection"
)

// Projector turns a feature into a row
type Projector interface {
	Project(geojson.Feature) (projection.Row, error)
	DerivedColumns() []string
}

// Target receives the projected rows. Close flushes what is buffered,
// Abort gives up on it.
type Target interface {
	Append(projection.Row) error
	Close() error
	Abort() error
}
