package xml2rdf

import (
	"strings"
	"testing"

	"github.com/aleksaelezovic/xml2rdf/internal/xmlevents"
	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = rdf.DefaultDataNamespace

func walkString(t *testing.T, s *recordingSink, input string) Stats {
	t.Helper()

	w := NewWalker(s, testOptions())
	stats, err := w.Walk(xmlevents.NewSource(strings.NewReader(input)))
	require.NoError(t, err)
	return stats
}

func TestWalker_BareRoot(t *testing.T) {
	s := &recordingSink{}
	stats := walkString(t, s, `<root/>`)

	root := rdf.NewNamedNode(sequenceID(ns, 1))
	expected := []*rdf.Triple{
		rdf.NewTriple(root, rdf.RDFType, rdf.NewLiteral("https://decisym.ai/xml2rdf/model#root")),
		rdf.NewTriple(root, rdf.HasName, rdf.NewLiteral("root")),
		rdf.NewTriple(root, rdf.RDFSSubClassOf, rdf.XMLNode),
	}

	require.Len(t, s.triples, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equals(s.triples[i]), "triple %d: expected %s, got %s", i, expected[i], s.triples[i])
	}
	assert.Equal(t, 1, stats.Elements)
	assert.Equal(t, 3, stats.Triples)
}

func TestWalker_ChildAndAttributeShapes(t *testing.T) {
	s := &recordingSink{}
	walkString(t, s, `<people><person id="7">Ann</person></people>`)

	people := rdf.NewNamedNode(sequenceID(ns, 1))
	person := rdf.NewNamedNode(sequenceID(ns, 2))
	id := rdf.NewNamedNode(sequenceID(ns, 3))

	expected := []*rdf.Triple{
		rdf.NewTriple(people, rdf.RDFType, rdf.NewLiteral("https://decisym.ai/xml2rdf/model#people")),
		rdf.NewTriple(people, rdf.HasName, rdf.NewLiteral("people")),
		rdf.NewTriple(people, rdf.RDFSSubClassOf, rdf.XMLNode),
		rdf.NewTriple(people, rdf.HasChild, person),
		rdf.NewTriple(person, rdf.RDFType, rdf.NewLiteral("https://decisym.ai/xml2rdf/model#people.person")),
		rdf.NewTriple(person, rdf.HasName, rdf.NewLiteral("person")),
		rdf.NewTriple(person, rdf.RDFSSubClassOf, rdf.XMLNode),
		rdf.NewTriple(person, rdf.HasAttribute, id),
		rdf.NewTriple(id, rdf.RDFType, rdf.NewNamedNode("https://decisym.ai/xml2rdf/model#people.person.-id")),
		rdf.NewTriple(id, rdf.RDFSSubClassOf, rdf.XMLAttribute),
		rdf.NewTriple(id, rdf.HasValue, rdf.NewLiteral("7")),
		rdf.NewTriple(person, rdf.HasValue, rdf.NewLiteral("Ann")),
	}

	require.Len(t, s.triples, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equals(s.triples[i]), "triple %d: expected %s, got %s", i, expected[i], s.triples[i])
	}
}

func TestWalker_AttributeTripleCounts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		empty    int
	}{
		{name: "no attributes", input: `<r/>`, expected: 3},
		{name: "one attribute", input: `<r a="1"/>`, expected: 3 + 3},
		{name: "three attributes", input: `<r a="1" b="2" c="3"/>`, expected: 3 + 9},
		{name: "one empty of three", input: `<r a="1" b="" c="3"/>`, expected: 3 + 9 - 1, empty: 1},
		{name: "all empty", input: `<r a="" b=""/>`, expected: 3 + 6 - 2, empty: 2},
		{name: "whitespace value is kept", input: `<r a=" "/>`, expected: 3 + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &recordingSink{}
			stats := walkString(t, s, tt.input)

			assert.Len(t, s.triples, tt.expected)
			assert.Equal(t, tt.empty, stats.EmptyAttributes)
		})
	}
}

func TestWalker_EmptyAttributeStillTyped(t *testing.T) {
	s := &recordingSink{}
	walkString(t, s, `<r flag=""/>`)

	assert.Len(t, s.withPredicate(rdf.HasAttribute), 1)
	assert.Len(t, s.withPredicate(rdf.HasValue), 0)

	types := s.withPredicate(rdf.RDFType)
	require.Len(t, types, 2)
	assert.True(t, types[1].Object.Equals(rdf.NewNamedNode("https://decisym.ai/xml2rdf/model#r.-flag")))
}

func TestWalker_Text(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		values []string
	}{
		{name: "whitespace only", input: "<r>  \n\t  </r>"},
		{name: "trimmed", input: "<r>\n  hello world  \n</r>", values: []string{"hello world"}},
		{name: "cdata joins surrounding text", input: "<r> a <![CDATA[b]]> c </r>", values: []string{"a b c"}},
		{name: "entities decoded", input: "<r>&lt;tag&gt; &amp; more</r>", values: []string{"<tag> & more"}},
		{name: "text before child belongs to parent", input: "<r>head<c/></r>", values: []string{"head"}},
		{name: "text after child is dropped", input: "<r><c/>tail</r>"},
		{name: "comment inside text", input: "<r>ab<!-- c -->cd</r>", values: []string{"abcd"}},
		{name: "text in child", input: "<r><c>inner</c></r>", values: []string{"inner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &recordingSink{}
			walkString(t, s, tt.input)

			var values []string
			for _, triple := range s.withPredicate(rdf.HasValue) {
				values = append(values, triple.Object.(*rdf.Literal).Value)
			}
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestWalker_DroppedTextIsCounted(t *testing.T) {
	s := &recordingSink{}
	stats := walkString(t, s, "<r><c/>tail</r>")

	assert.Equal(t, 1, stats.DroppedText)
	assert.Len(t, s.triples, 7)
}

func TestWalker_PathsIgnoreSiblingOrderAndAttributes(t *testing.T) {
	s := &recordingSink{}
	walkString(t, s, `<r><x><y/></x><z a="1"/><x k="v"><y/></x></r>`)

	paths := map[string]int{}
	for _, triple := range s.withPredicate(rdf.RDFType) {
		if lit, ok := triple.Object.(*rdf.Literal); ok {
			paths[lit.Value]++
		}
	}

	assert.Equal(t, map[string]int{
		"https://decisym.ai/xml2rdf/model#r":     1,
		"https://decisym.ai/xml2rdf/model#r.x":   2,
		"https://decisym.ai/xml2rdf/model#r.x.y": 2,
		"https://decisym.ai/xml2rdf/model#r.z":   1,
	}, paths)
}

func TestWalker_EveryNonRootHasOneParent(t *testing.T) {
	s := &recordingSink{}
	stats := walkString(t, s, `<a><b><c/><c/></b><b/></a>`)

	parents := map[string]int{}
	for _, triple := range s.withPredicate(rdf.HasChild) {
		parents[triple.Object.(*rdf.NamedNode).IRI]++
	}

	assert.Len(t, parents, stats.Elements-1)
	for child, n := range parents {
		assert.Equal(t, 1, n, "child %s", child)
	}
}

func TestWalker_StackDiscipline(t *testing.T) {
	w := NewWalker(&recordingSink{}, testOptions())

	require.NoError(t, w.Handle(xmlevents.Event{Kind: xmlevents.KindStartElement, Name: "a"}))
	require.NoError(t, w.Handle(xmlevents.Event{Kind: xmlevents.KindStartElement, Name: "b"}))
	assert.Equal(t, 2, w.Depth())

	require.NoError(t, w.Handle(xmlevents.Event{Kind: xmlevents.KindEndElement, Name: "b"}))
	assert.Equal(t, 1, w.Depth())

	require.NoError(t, w.Handle(xmlevents.Event{Kind: xmlevents.KindIgnored, Text: "comment"}))
	assert.Equal(t, 1, w.Depth())
	assert.Equal(t, 1, w.Stats().Ignored)

	w.Reset()
	assert.Equal(t, 0, w.Depth())
	assert.Equal(t, Stats{}, w.Stats())
}

func TestWalker_SinkFailureAborts(t *testing.T) {
	s := &failingSink{limit: 4}
	w := NewWalker(s, testOptions())

	_, err := w.Walk(xmlevents.NewSource(strings.NewReader(`<a><b/><c/></a>`)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSinkWrite)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Len(t, s.triples, 4)
}

func TestWalker_MalformedInput(t *testing.T) {
	input := `<a><b>text</a>`

	t.Run("lenient", func(t *testing.T) {
		s := &recordingSink{}
		w := NewWalker(s, testOptions())

		stats, err := w.Walk(xmlevents.NewSource(strings.NewReader(input)))
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Ignored)
		assert.Equal(t, 2, stats.Elements)
		// a (3) + b (4) + text (1)
		assert.Len(t, s.triples, 8)
	})

	t.Run("strict", func(t *testing.T) {
		opts := testOptions()
		opts.Strict = true
		w := NewWalker(&recordingSink{}, opts)

		_, err := w.Walk(xmlevents.NewSource(strings.NewReader(input)))
		assert.ErrorIs(t, err, ErrMalformedXML)
	})
}

func TestWalker_DefaultNamespace(t *testing.T) {
	s := &recordingSink{}
	w := NewWalker(s, Options{Random: &sequenceReader{}, Logger: discardLogger()})

	_, err := w.Walk(xmlevents.NewSource(strings.NewReader(`<r/>`)))
	require.NoError(t, err)
	assert.Equal(t, "https://decisym.ai/xml2rdf/data/00000000-0000-4000-8000-000000000001",
		s.triples[0].Subject.(*rdf.NamedNode).IRI)
}

func TestWalker_Latin1Document(t *testing.T) {
	s := &recordingSink{}
	stats := walkString(t, s, "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><r a=\"\xe9t\xe9\">caf\xe9</r>")

	// element (3) + attribute with value (4) + text (1)
	assert.Len(t, s.triples, 8)
	assert.Equal(t, 1, stats.Ignored)

	var values []string
	for _, triple := range s.withPredicate(rdf.HasValue) {
		values = append(values, triple.Object.(*rdf.Literal).Value)
	}
	assert.Equal(t, []string{"été", "café"}, values)
}
