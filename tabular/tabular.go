// Package tabular appends rows to a CSV file in fixed-size batches.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pdok/geojson2csv/mapslicehelp"
	"github.com/pdok/geojson2csv/projection"

	"github.com/rs/zerolog/log"
)

var (
	// ErrOutputExists is returned when the target file is already present and may not be overwritten
	ErrOutputExists = errors.New("output file already exists")
	// ErrWrite wraps failures to create or append to the target file
	ErrWrite = errors.New("cannot write output file")
)

const DefaultBatchSize = 1000

// Flush describes one batch written to the target
type Flush struct {
	Seq   int // 1-based
	Rows  int // rows in this batch
	Total int // rows written so far
}

type Options struct {
	BatchSize int
	Overwrite bool
	OnFlush   func(Flush)
}

// Target buffers rows and appends them to a CSV file. The header is written
// once, with the first batch.
type Target struct {
	path    string
	columns []string
	index   map[string]int

	batchSize int
	overwrite bool
	onFlush   func(Flush)

	batch   []projection.Row
	file    io.WriteCloser
	flushes int
	total   int
	dropped map[string]struct{}
	closed  bool
}

// NewFileTarget prepares a Target writing to path. It fails with
// ErrOutputExists when path exists and opts.Overwrite is not set. The file
// itself is created on the first flush.
func NewFileTarget(path string, columns []string, opts Options) (*Target, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if err := CheckOutput(path, opts.Overwrite); err != nil {
		return nil, err
	}
	return &Target{
		path:      path,
		columns:   slices.Clone(columns),
		index:     mapslicehelp.AsIndex(columns),
		batchSize: opts.BatchSize,
		overwrite: opts.Overwrite,
		onFlush:   opts.OnFlush,
		batch:     make([]projection.Row, 0, opts.BatchSize),
		dropped:   make(map[string]struct{}),
	}, nil
}

// CheckOutput fails with ErrOutputExists when path is present and may not
// be overwritten
func CheckOutput(path string, overwrite bool) error {
	_, err := os.Stat(path)
	switch {
	case err == nil && !overwrite:
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Append buffers row and flushes when the batch is full
func (t *Target) Append(row projection.Row) error {
	if t.closed {
		return fmt.Errorf("%w: %s is closed", ErrWrite, t.path)
	}
	t.batch = append(t.batch, row)
	if len(t.batch) >= t.batchSize {
		return t.flush()
	}
	return nil
}

// Close flushes the last (partial) batch and closes the file. For an empty
// stream the header is still written.
func (t *Target) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	var err error
	if len(t.batch) > 0 || t.file == nil {
		err = t.flush()
	}
	if t.file != nil {
		if cerr := t.file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrWrite, cerr)
		}
	}
	return err
}

// Abort closes the file without writing the buffered rows. Batches flushed
// before stay in the file.
func (t *Target) Abort() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.batch = t.batch[:0]
	if t.file == nil {
		return nil
	}
	if err := t.file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func (t *Target) Path() string {
	return t.path
}

func (t *Target) Columns() []string {
	return slices.Clone(t.columns)
}

// Rows is the number of rows written to the file so far
func (t *Target) Rows() int {
	return t.total
}

func (t *Target) Flushes() int {
	return t.flushes
}

// DroppedColumns returns the row columns that were not part of the header
func (t *Target) DroppedColumns() []string {
	return mapslicehelp.SortedKeys(t.dropped)
}

func (t *Target) flush() error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = false

	header := t.file == nil
	if header {
		if err := w.Write(t.columns); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	record := make([]string, len(t.columns))
	for _, row := range t.batch {
		t.fill(record, row)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if header {
		f, err := t.open()
		if err != nil {
			return err
		}
		t.file = f
	}
	if _, err := t.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	rows := len(t.batch)
	t.batch = t.batch[:0]
	if rows == 0 {
		return nil
	}
	t.flushes++
	t.total += rows
	if t.onFlush != nil {
		t.onFlush(Flush{Seq: t.flushes, Rows: rows, Total: t.total})
	}
	return nil
}

// fill renders row into record following the column order. Known columns
// missing from the row stay empty, columns unknown to the header are dropped.
func (t *Target) fill(record []string, row projection.Row) {
	for i := range record {
		record[i] = ""
	}
	for _, column := range row.Columns() {
		i, known := t.index[column]
		if !known {
			t.drop(column)
			continue
		}
		v, _ := row.Get(column)
		record[i] = v.String()
	}
}

func (t *Target) drop(column string) {
	if _, seen := t.dropped[column]; seen {
		return
	}
	t.dropped[column] = struct{}{}
	log.Debug().Str("column", column).Str("output", t.path).Msg("Dropping column not in header")
}

func (t *Target) open() (*os.File, error) {
	flag := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if t.overwrite {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_EXCL
	}
	f, err := os.OpenFile(t.path, flag, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrOutputExists, t.path)
		}
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return f, nil
}
