// Package xmlevents turns an XML byte stream into the flat sequence of
// structural events consumed by the converter: element start (with
// attributes), character data and element end, in document order.
package xmlevents

import (
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"
)

// Kind identifies the type of an Event
type Kind byte

const (
	KindStartElement Kind = iota + 1
	KindCharacters
	KindEndElement
	// KindIgnored covers comments, processing instructions and directives
	KindIgnored
	// KindError reports a tokenizer failure; no events follow it
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindStartElement:
		return "start"
	case KindCharacters:
		return "characters"
	case KindEndElement:
		return "end"
	case KindIgnored:
		return "ignored"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Attr is one attribute occurrence, by local name
type Attr struct {
	Name  string
	Value string
}

// Event is a single structural event
type Event struct {
	Kind  Kind
	Name  string // local name, for start and end events
	Attrs []Attr // source order, start events only
	Text  string // raw character data, or the token kind for ignored events
	Err   error  // error events only
}

// Source yields the events of one XML document
type Source struct {
	decoder *xml.Decoder
	queue   []Event
	done    bool
}

// NewSource creates an event source reading one document from r. Documents
// declaring a non-UTF-8 encoding are decoded through its charset.
func NewSource(r io.Reader) *Source {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	return &Source{decoder: decoder}
}

// Next returns the next event. It returns io.EOF once the document is
// exhausted or after an error event has been delivered.
func (s *Source) Next() (Event, error) {
	if len(s.queue) > 0 {
		ev := s.queue[0]
		s.queue = s.queue[1:]
		return ev, nil
	}
	if s.done {
		return Event{}, io.EOF
	}

	var text []byte
	haveText := false
	// comments inside a text run, delivered after the run
	var deferred []Event

	for {
		token, err := s.decoder.Token()
		if err != nil {
			s.done = true
			var events []Event
			if haveText {
				events = append(events, characters(text))
			}
			events = append(events, deferred...)
			if !errors.Is(err, io.EOF) {
				events = append(events, Event{Kind: KindError, Err: err})
			}
			return s.deliver(events)
		}

		switch t := token.(type) {
		case xml.CharData:
			// Adjacent character data (plain text and CDATA sections) is coalesced
			text = append(text, t...)
			haveText = true
			continue
		case xml.Comment:
			if haveText {
				deferred = append(deferred, convert(t))
				continue
			}
		}

		ev := convert(token)
		if !haveText {
			return ev, nil
		}
		events := append([]Event{characters(text)}, deferred...)
		return s.deliver(append(events, ev))
	}
}

// deliver returns the first event and queues the rest
func (s *Source) deliver(events []Event) (Event, error) {
	if len(events) == 0 {
		return Event{}, io.EOF
	}
	s.queue = append(s.queue, events[1:]...)
	return events[0], nil
}

func characters(text []byte) Event {
	return Event{Kind: KindCharacters, Text: string(text)}
}

func convert(token xml.Token) Event {
	switch t := token.(type) {
	case xml.StartElement:
		return Event{Kind: KindStartElement, Name: t.Name.Local, Attrs: attributes(t.Attr)}
	case xml.EndElement:
		return Event{Kind: KindEndElement, Name: t.Name.Local}
	case xml.Comment:
		return Event{Kind: KindIgnored, Text: "comment"}
	case xml.ProcInst:
		return Event{Kind: KindIgnored, Text: "procinst"}
	case xml.Directive:
		return Event{Kind: KindIgnored, Text: "directive"}
	default:
		return Event{Kind: KindIgnored, Text: "unknown"}
	}
}

// attributes drops namespace declarations, which are not data attributes
func attributes(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}

	result := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		result = append(result, Attr{Name: a.Name.Local, Value: a.Value})
	}
	return result
}
