// Package sink provides the destinations converted triples are written to.
package sink

import (
	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
)

// Sink accepts one triple at a time. The only failure a sink reports is
// an error of its underlying destination.
type Sink interface {
	AddTriple(subject, predicate *rdf.NamedNode, object rdf.Term) error
}

// Counting wraps a Sink and counts the triples it accepted
type Counting struct {
	next  Sink
	count int64
}

// NewCounting creates a counting decorator around next
func NewCounting(next Sink) *Counting {
	return &Counting{next: next}
}

// AddTriple forwards to the wrapped sink and counts successful writes
func (c *Counting) AddTriple(subject, predicate *rdf.NamedNode, object rdf.Term) error {
	if err := c.next.AddTriple(subject, predicate, object); err != nil {
		return err
	}
	c.count++
	return nil
}

// Count returns the number of triples accepted so far
func (c *Counting) Count() int64 {
	return c.count
}
