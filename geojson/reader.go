package geojson

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrParse is returned for input that is not a well-formed FeatureCollection
	ErrParse = errors.New("cannot parse GeoJSON document")
	// ErrOpen is returned when the source cannot be opened
	ErrOpen = errors.New("cannot open GeoJSON source")
)

const featuresMember = "features"

// Reader walks the "features" array of a FeatureCollection, decoding one
// feature per call to Next. Only the feature being decoded is held in memory.
type Reader struct {
	rc    io.ReadCloser
	dec   *json.Decoder
	count int
	done  bool
}

// NewReader positions a Reader on the first feature of the document in rc.
// The Reader takes ownership of rc.
func NewReader(rc io.ReadCloser) (*Reader, error) {
	dec := json.NewDecoder(bufio.NewReaderSize(rc, 64*1024))
	dec.UseNumber()
	r := &Reader{rc: rc, dec: dec}
	if err := r.seekFeatures(); err != nil {
		rc.Close()
		return nil, err
	}
	return r, nil
}

// Next returns the next feature, or io.EOF once the array is exhausted and
// the rest of the document has been validated.
func (r *Reader) Next() (Feature, error) {
	var f Feature
	if r.done {
		return f, io.EOF
	}
	if !r.dec.More() {
		if err := r.finish(); err != nil {
			return f, err
		}
		r.done = true
		return f, io.EOF
	}
	var raw json.RawMessage
	if err := r.dec.Decode(&raw); err != nil {
		return f, r.parseError("feature %d: %v", r.count, err)
	}
	if len(raw) == 0 || raw[0] != '{' {
		return f, r.parseError("feature %d is not an object", r.count)
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return f, r.parseError("feature %d: %v", r.count, err)
	}
	r.count++
	return f, nil
}

// Count is the number of features decoded so far
func (r *Reader) Count() int {
	return r.count
}

func (r *Reader) Close() error {
	return r.rc.Close()
}

func (r *Reader) seekFeatures() error {
	if err := r.expectDelim('{'); err != nil {
		return err
	}
	for r.dec.More() {
		key, err := r.key()
		if err != nil {
			return err
		}
		if key == featuresMember {
			return r.expectDelim('[')
		}
		if err = r.skipValue(); err != nil {
			return err
		}
	}
	return r.parseError("missing %q array", featuresMember)
}

// finish consumes the closing bracket of the features array and any members
// that follow it, so a truncated document is reported rather than silently
// accepted.
func (r *Reader) finish() error {
	if err := r.expectDelim(']'); err != nil {
		return err
	}
	for r.dec.More() {
		if _, err := r.key(); err != nil {
			return err
		}
		if err := r.skipValue(); err != nil {
			return err
		}
	}
	if err := r.expectDelim('}'); err != nil {
		return err
	}
	// only whitespace may follow the top-level object
	tok, err := r.dec.Token()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return r.parseError("%v", err)
	default:
		return r.parseError("unexpected %v after the end of the document", tok)
	}
}

func (r *Reader) key() (string, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return "", r.parseError("%v", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", r.parseError("expected object key, got %v", tok)
	}
	return key, nil
}

func (r *Reader) skipValue() error {
	var skipped json.RawMessage
	if err := r.dec.Decode(&skipped); err != nil {
		return r.parseError("%v", err)
	}
	return nil
}

func (r *Reader) expectDelim(want json.Delim) error {
	tok, err := r.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return r.parseError("unexpected end of document, expected %q", want)
		}
		return r.parseError("%v", err)
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return r.parseError("expected %q, got %v", want, tok)
	}
	return nil
}

func (r *Reader) parseError(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrParse, r.dec.InputOffset(), fmt.Sprintf(format, args...))
}
