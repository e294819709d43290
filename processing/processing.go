// Package processing takes care of the logistics of a conversion: two
// passes over the source, the schema in between, and the batched target.
// Not the projection of a single feature itself.
package processing

import (
	"errors"
	"fmt"

	"github.com/pdok/geojson2csv/geojson"
	"github.com/pdok/geojson2csv/projection"
	"github.com/pdok/geojson2csv/schema"
	"github.com/pdok/geojson2csv/tabular"

	"github.com/creasty/defaults"
	"github.com/rs/zerolog/log"
)

// ErrUsage is returned when no input is given
var ErrUsage = errors.New("no GeoJSON file given")

// State of a conversion
type State int

const (
	Idle State = iota
	Discovering
	Writing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Discovering:
		return "discovering"
	case Writing:
		return "writing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result summarizes a finished conversion
type Result struct {
	Input    string
	Output   string
	Columns  []string
	Features int
	Rows     int
	Flushes  int
}

// Pipeline converts one source into one target
type Pipeline struct {
	source    geojson.Source
	projector Projector
	state     State
}

func NewPipeline(source geojson.Source, projector Projector) *Pipeline {
	return &Pipeline{source: source, projector: projector}
}

func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) transition(to State) {
	log.Debug().Stringer("from", p.state).Stringer("to", to).Msg("Pipeline state")
	p.state = to
}

// Discover runs the first pass and returns the schema of the source
func (p *Pipeline) Discover() (schema.Schema, error) {
	p.transition(Discovering)
	s, err := schema.Discover(p.source, p.projector.DerivedColumns()...)
	if err != nil {
		p.transition(Failed)
		return s, err
	}
	log.Info().Int("features", s.Features()).Strs("keys", s.Keys()).Msg("Extracted keys")
	return s, nil
}

// Write runs the second pass: every feature is projected and appended to
// target. On success the target is closed, so its last batch is flushed; on
// failure it is aborted.
func (p *Pipeline) Write(target Target) (int, error) {
	p.transition(Writing)
	n, err := geojson.ForEach(p.source, func(f geojson.Feature) error {
		row, err := p.projector.Project(f)
		if err != nil {
			return err
		}
		return target.Append(row)
	})
	if err != nil {
		p.transition(Failed)
		if aerr := target.Abort(); aerr != nil {
			log.Error().Err(aerr).Msg("Could not close the output")
		}
		return n, err
	}
	if err = target.Close(); err != nil {
		p.transition(Failed)
		return n, err
	}
	p.transition(Done)
	return n, nil
}

// Convert converts the GeoJSON file at input to CSV, next to it or at the
// default output path.
func Convert(input string, opts Options) (Result, error) {
	result := Result{Input: input}
	if input == "" {
		return result, ErrUsage
	}
	// unset options take their defaults
	if err := defaults.Set(&opts); err != nil {
		return result, err
	}
	if err := opts.Validate(); err != nil {
		return result, err
	}
	result.Output = OutputPath(input, opts.DefaultOutput)

	projector := projection.Projector{
		GeometryColumn: opts.GeometryColumn,
		LatColumn:      opts.LatColumn,
		LngColumn:      opts.LngColumn,
	}
	pipeline := NewPipeline(geojson.FileSource{Path: input}, projector)

	// refuse an existing output before spending a pass on the input
	if err := tabular.CheckOutput(result.Output, opts.Overwrite); err != nil {
		return result, err
	}

	log.Info().Str("input", input).Str("output", result.Output).Msg("=== start discovering ===")
	s, err := pipeline.Discover()
	if err != nil {
		return result, err
	}
	result.Columns = s.Columns()
	result.Features = s.Features()

	target, err := tabular.NewFileTarget(result.Output, result.Columns, tabular.Options{
		BatchSize: opts.BatchSize,
		Overwrite: opts.Overwrite,
		OnFlush: func(f tabular.Flush) {
			log.Info().Int("batch", f.Seq).Int("rows", f.Total).Msgf("%d rows have been written", f.Total)
		},
	})
	if err != nil {
		return result, err
	}

	log.Info().Msg("=== start writing ===")
	_, err = pipeline.Write(target)
	result.Rows = target.Rows()
	result.Flushes = target.Flushes()
	if err != nil {
		return result, err
	}
	log.Info().Int("rows", result.Rows).Str("output", result.Output).Msg("=== done ===")
	return result, nil
}
