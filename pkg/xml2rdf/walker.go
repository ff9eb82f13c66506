package xml2rdf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aleksaelezovic/xml2rdf/internal/xmlevents"
	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
	"github.com/aleksaelezovic/xml2rdf/pkg/sink"
)

// EventSource yields the structural events of one document. Next returns
// io.EOF when the document is exhausted.
type EventSource interface {
	Next() (xmlevents.Event, error)
}

// Options configures a Walker or Converter
type Options struct {
	// Namespace prefixes minted identifiers; defaults to rdf.DefaultDataNamespace
	Namespace string

	// Random feeds identifier generation; defaults to crypto/rand
	Random io.Reader

	// Logger receives diagnostics; defaults to slog.Default()
	Logger *slog.Logger

	// Strict turns tokenizer errors into ErrMalformedXML instead of warnings
	Strict bool
}

func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = rdf.DefaultDataNamespace
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Walker turns the events of one document at a time into triples
type Walker struct {
	assignor *Assignor
	sink     sink.Sink
	logger   *slog.Logger
	strict   bool

	stack   []Node
	subject *Node
	stats   Stats
}

// NewWalker creates a walker writing to s
func NewWalker(s sink.Sink, opts Options) *Walker {
	opts = opts.withDefaults()
	return &Walker{
		assignor: NewAssignor(opts.Namespace, opts.Random),
		sink:     s,
		logger:   opts.Logger,
		strict:   opts.Strict,
	}
}

// Reset clears the ancestor stack, the current subject and the statistics
func (w *Walker) Reset() {
	w.stack = w.stack[:0]
	w.subject = nil
	w.stats = Stats{}
}

// Depth returns the number of currently open elements
func (w *Walker) Depth() int {
	return len(w.stack)
}

// Stats returns the statistics of the current document
func (w *Walker) Stats() Stats {
	return w.stats
}

// Walk consumes src to exhaustion and returns the document statistics.
// Walker state is reset before the first event.
func (w *Walker) Walk(src EventSource) (Stats, error) {
	w.Reset()
	w.stats.Documents = 1

	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return w.stats, err
		}
		if err := w.Handle(ev); err != nil {
			return w.stats, err
		}
	}

	if depth := len(w.stack); depth > 0 {
		w.logger.Warn("document ended with open elements", "depth", depth)
	}

	return w.stats, nil
}

// Handle applies one event
func (w *Walker) Handle(ev xmlevents.Event) error {
	switch ev.Kind {
	case xmlevents.KindStartElement:
		return w.startElement(ev.Name, ev.Attrs)
	case xmlevents.KindCharacters:
		return w.characters(ev.Text)
	case xmlevents.KindEndElement:
		w.endElement()
		return nil
	case xmlevents.KindError:
		if w.strict {
			return fmt.Errorf("%w: %w", ErrMalformedXML, ev.Err)
		}
		w.stats.Ignored++
		w.logger.Warn("xml parse error, remaining content skipped", "error", ev.Err, "depth", len(w.stack))
		return nil
	default:
		w.stats.Ignored++
		w.logger.Debug("ignoring event", "kind", ev.Kind, "detail", ev.Text)
		return nil
	}
}

func (w *Walker) startElement(name string, attrs []xmlevents.Attr) error {
	var parent *Node
	if len(w.stack) > 0 {
		parent = &w.stack[len(w.stack)-1]
	}

	node, err := w.assignor.Mint(parent, name)
	if err != nil {
		return err
	}

	if parent != nil {
		if err := w.emit(parent.ID, rdf.HasChild, node.ID); err != nil {
			return err
		}
	}
	if err := w.emit(node.ID, rdf.RDFType, rdf.NewLiteral(node.Path)); err != nil {
		return err
	}
	if err := w.emit(node.ID, rdf.HasName, rdf.NewLiteral(name)); err != nil {
		return err
	}
	if err := w.emit(node.ID, rdf.RDFSSubClassOf, rdf.XMLNode); err != nil {
		return err
	}

	w.stack = append(w.stack, node)
	current := node
	w.subject = &current
	w.stats.Elements++

	for _, attr := range attrs {
		if err := w.attribute(node, attr); err != nil {
			return err
		}
	}

	return nil
}

func (w *Walker) attribute(owner Node, attr xmlevents.Attr) error {
	node, err := w.assignor.MintAttribute(owner, attr.Name)
	if err != nil {
		return err
	}

	if err := w.emit(owner.ID, rdf.HasAttribute, node.ID); err != nil {
		return err
	}
	if err := w.emit(node.ID, rdf.RDFType, rdf.NewNamedNode(node.Path)); err != nil {
		return err
	}
	if err := w.emit(node.ID, rdf.RDFSSubClassOf, rdf.XMLAttribute); err != nil {
		return err
	}
	w.stats.Attributes++

	if attr.Value == "" {
		w.stats.EmptyAttributes++
		w.logger.Warn("skipping empty attribute value", "element", owner.Path, "attribute", attr.Name)
		return nil
	}

	if err := w.emit(node.ID, rdf.HasValue, rdf.NewLiteral(attr.Value)); err != nil {
		return err
	}
	w.stats.Values++
	return nil
}

// characters attaches trimmed text to the current subject. Text seen after
// an element closed and before the next one opens has no subject and is dropped.
func (w *Walker) characters(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if w.subject == nil {
		w.stats.DroppedText++
		w.logger.Debug("dropping text without open subject", "depth", len(w.stack))
		return nil
	}

	if err := w.emit(w.subject.ID, rdf.HasValue, rdf.NewLiteral(text)); err != nil {
		return err
	}
	w.stats.Values++
	return nil
}

func (w *Walker) endElement() {
	if len(w.stack) > 0 {
		w.stack = w.stack[:len(w.stack)-1]
	}
	w.subject = nil
}

func (w *Walker) emit(subject, predicate *rdf.NamedNode, object rdf.Term) error {
	if err := w.sink.AddTriple(subject, predicate, object); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	w.stats.Triples++
	return nil
}
