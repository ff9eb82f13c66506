package xml2rdf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
)

// recordingSink keeps every triple in emission order
type recordingSink struct {
	triples []*rdf.Triple
}

func (s *recordingSink) AddTriple(subject, predicate *rdf.NamedNode, object rdf.Term) error {
	s.triples = append(s.triples, rdf.NewTriple(subject, predicate, object))
	return nil
}

func (s *recordingSink) withPredicate(predicate *rdf.NamedNode) []*rdf.Triple {
	var result []*rdf.Triple
	for _, triple := range s.triples {
		if triple.Predicate.Equals(predicate) {
			result = append(result, triple)
		}
	}
	return result
}

// failingSink accepts limit triples and then fails
type failingSink struct {
	recordingSink
	limit int
}

var errDiskFull = errors.New("disk full")

func (s *failingSink) AddTriple(subject, predicate *rdf.NamedNode, object rdf.Term) error {
	if len(s.triples) >= s.limit {
		return errDiskFull
	}
	return s.recordingSink.AddTriple(subject, predicate, object)
}

// sequenceReader yields UUIDs 00000000-0000-4000-8000-0000000000NN with NN counting up from 01
type sequenceReader struct {
	n byte
}

func (r *sequenceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.n++
	p[len(p)-1] = r.n
	return len(p), nil
}

func sequenceID(namespace string, n int) string {
	return fmt.Sprintf("%s/00000000-0000-4000-8000-0000000000%02x", namespace, n)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions() Options {
	return Options{
		Random: &sequenceReader{},
		Logger: discardLogger(),
	}
}
