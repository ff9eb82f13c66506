package sink

import (
	"github.com/aleksaelezovic/xml2rdf/internal/encoding"
	"github.com/aleksaelezovic/xml2rdf/internal/storage"
	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
	"github.com/aleksaelezovic/xml2rdf/pkg/store"
)

// Graph is a mutable triple container owned by the caller
type Graph interface {
	InsertTriple(triple *rdf.Triple) error
}

// GraphSink inserts triples into a Graph. Whether duplicates collapse
// depends on the graph; a store.TripleStore is a set.
type GraphSink struct {
	graph Graph
}

// NewGraphSink creates a sink over graph
func NewGraphSink(graph Graph) *GraphSink {
	return &GraphSink{graph: graph}
}

// AddTriple inserts the triple into the graph
func (s *GraphSink) AddTriple(subject, predicate *rdf.NamedNode, object rdf.Term) error {
	return s.graph.InsertTriple(rdf.NewTriple(subject, predicate, object))
}

// NewMemoryGraph creates an empty triple store that lives in memory only
func NewMemoryGraph() (*store.TripleStore, error) {
	badgerStorage, err := storage.NewInMemoryStorage()
	if err != nil {
		return nil, err
	}
	return store.NewTripleStore(badgerStorage, encoding.NewTermEncoder(), encoding.NewTermDecoder()), nil
}

// OpenGraph opens (or creates) a triple store persisted under dir
func OpenGraph(dir string) (*store.TripleStore, error) {
	badgerStorage, err := storage.NewBadgerStorage(dir)
	if err != nil {
		return nil, err
	}
	return store.NewTripleStore(badgerStorage, encoding.NewTermEncoder(), encoding.NewTermDecoder()), nil
}
