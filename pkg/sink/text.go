package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
)

// TextSink writes triples as N-Triples lines. Every triple is flushed
// before AddTriple returns, so a failed run leaves all triples accepted
// so far on the destination.
type TextSink struct {
	writer *bufio.Writer
	closer io.Closer
}

// NewTextSink creates a text sink writing to w. The caller keeps ownership of w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{writer: bufio.NewWriter(w)}
}

// Stdout creates a text sink writing to standard output
func Stdout() *TextSink {
	return NewTextSink(os.Stdout)
}

// OpenFile opens path for appending, creating it if needed. Existing
// content is preserved.
func OpenFile(path string) (*TextSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G302 G304 - output path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	return &TextSink{writer: bufio.NewWriter(f), closer: f}, nil
}

// AddTriple writes `<s> <p> o .` followed by a newline and flushes
func (s *TextSink) AddTriple(subject, predicate *rdf.NamedNode, object rdf.Term) error {
	return s.WriteTriple(rdf.NewTriple(subject, predicate, object))
}

// WriteTriple writes an arbitrary triple, such as one read back from a store
func (s *TextSink) WriteTriple(triple *rdf.Triple) error {
	if _, err := s.writer.WriteString(triple.String()); err != nil {
		return fmt.Errorf("failed to write triple: %w", err)
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write triple: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush triple: %w", err)
	}
	return nil
}

// Close flushes and, for sinks opened with OpenFile, closes the file
func (s *TextSink) Close() error {
	flushErr := s.writer.Flush()
	if s.closer == nil {
		return flushErr
	}
	if err := s.closer.Close(); err != nil {
		return err
	}
	return flushErr
}
