package geojson

import (
	"fmt"
	"io"
	"os"
)

// Source opens a fresh traversal over a document. Every call to Open starts
// from the beginning, so a Source can be traversed more than once.
type Source interface {
	Open() (*Reader, error)
}

// FileSource reads the document from a file on disk
type FileSource struct {
	Path string
}

func (s FileSource) Open() (*Reader, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	return NewReader(f)
}

func (s FileSource) String() string {
	return s.Path
}

// SourceFunc adapts a function returning a fresh stream to a Source
type SourceFunc func() (io.ReadCloser, error)

func (fn SourceFunc) Open() (*Reader, error) {
	rc, err := fn()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	return NewReader(rc)
}

// ForEach opens a fresh traversal of src and calls fn for every feature, in
// document order. It stops at the first error.
func ForEach(src Source, fn func(Feature) error) (int, error) {
	r, err := src.Open()
	if err != nil {
		return 0, err
	}
	defer r.Close()
	for {
		f, err := r.Next()
		if err == io.EOF {
			return r.Count(), nil
		}
		if err != nil {
			return r.Count(), err
		}
		if err = fn(f); err != nil {
			return r.Count(), err
		}
	}
}
