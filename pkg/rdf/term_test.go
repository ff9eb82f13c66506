package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ===== NamedNode Tests =====

func TestNamedNode(t *testing.T) {
	node := NewNamedNode("http://example.org/resource")

	assert.Equal(t, TermTypeNamedNode, node.Type())
	assert.Equal(t, "<http://example.org/resource>", node.String())
	assert.True(t, node.Equals(NewNamedNode("http://example.org/resource")))
	assert.False(t, node.Equals(NewNamedNode("http://example.org/different")))
	assert.False(t, node.Equals(NewLiteral("http://example.org/resource")), "NamedNode should not equal Literal")
}

// Path-shaped IRIs are carried verbatim, even when they are not absolute.
func TestNamedNode_PathShapedIRI(t *testing.T) {
	node := NewNamedNode("https://decisym.ai/xml2rdf/model#root.child.-id")
	assert.Equal(t, "<https://decisym.ai/xml2rdf/model#root.child.-id>", node.String())
}

// ===== BlankNode Tests =====

func TestBlankNode(t *testing.T) {
	node := NewBlankNode("b1")

	assert.Equal(t, TermTypeBlankNode, node.Type())
	assert.Equal(t, "_:b1", node.String())
	assert.True(t, node.Equals(NewBlankNode("b1")))
	assert.False(t, node.Equals(NewBlankNode("b2")))
	assert.False(t, node.Equals(NewNamedNode("b1")), "BlankNode should not equal NamedNode")
}

// ===== Literal Tests =====

func TestLiteral_String(t *testing.T) {
	tests := []struct {
		name     string
		literal  *Literal
		expected string
	}{
		{
			name:     "plain literal",
			literal:  NewLiteral("hello"),
			expected: `"hello"`,
		},
		{
			name:     "literal with language",
			literal:  NewLiteralWithLanguage("hello", "en"),
			expected: `"hello"@en`,
		},
		{
			name:     "literal with datatype",
			literal:  NewLiteralWithDatatype("42", NewNamedNode("http://www.w3.org/2001/XMLSchema#integer")),
			expected: `"42"^^<http://www.w3.org/2001/XMLSchema#integer>`,
		},
		{
			name:     "xsd:string is implicit",
			literal:  NewLiteralWithDatatype("x", XSDString),
			expected: `"x"`,
		},
		{
			name:     "quotes and backslashes",
			literal:  NewLiteral(`say "hi" \o/`),
			expected: `"say \"hi\" \\o/"`,
		},
		{
			name:     "newlines and tabs",
			literal:  NewLiteral("a\nb\tc\r"),
			expected: `"a\nb\tc\r"`,
		},
		{
			name:     "control character",
			literal:  NewLiteral("bell\x07"),
			expected: `"bell\u0007"`,
		},
		{
			name:     "non-ascii is kept",
			literal:  NewLiteral("Zoë ✓"),
			expected: `"Zoë ✓"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.literal.String())
		})
	}
}

func TestLiteral_Equals(t *testing.T) {
	lit := NewLiteral("hello")

	assert.Equal(t, TermTypeLiteral, lit.Type())
	assert.True(t, lit.Equals(NewLiteral("hello")))
	assert.False(t, lit.Equals(NewLiteral("world")))
	assert.True(t, lit.Equals(NewLiteralWithDatatype("hello", XSDString)), "plain literal should equal its xsd:string form")

	en := NewLiteralWithLanguage("hello", "en")
	assert.False(t, en.Equals(NewLiteralWithLanguage("hello", "fr")))
	assert.False(t, en.Equals(lit), "language-tagged literal should not equal plain literal")
	assert.False(t, lit.Equals(NewNamedNode("hello")))
}

// ===== Triple Tests =====

func TestTriple_String(t *testing.T) {
	triple := NewTriple(
		NewNamedNode("http://example.org/subject"),
		NewNamedNode("http://example.org/predicate"),
		NewLiteral("value"))

	assert.Equal(t, `<http://example.org/subject> <http://example.org/predicate> "value" .`, triple.String())
}

func TestTriple_Equals(t *testing.T) {
	a := NewTriple(XMLNode, RDFSSubClassOf, XMLAttribute)
	b := NewTriple(NewNamedNode(XMLNode.IRI), RDFSSubClassOf, NewNamedNode(XMLAttribute.IRI))
	c := NewTriple(XMLNode, RDFType, XMLAttribute)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestEscapeString(t *testing.T) {
	assert.Equal(t, "plain", EscapeString("plain"))
	assert.Equal(t, `\b\f\u001F\u007F`, EscapeString("\b\f\x1f\x7f"))
}

// ===== Vocabulary Tests =====

func TestVocabulary(t *testing.T) {
	tests := []struct {
		node     *NamedNode
		expected string
	}{
		{XMLNode, "https://decisym.ai/xml2rdf/model#XmlNode"},
		{XMLAttribute, "https://decisym.ai/xml2rdf/model#XmlAttribute"},
		{HasChild, "https://decisym.ai/xml2rdf/model#hasChild"},
		{HasAttribute, "https://decisym.ai/xml2rdf/model#hasAttribute"},
		{HasName, "https://decisym.ai/xml2rdf/model#hasName"},
		{HasValue, "https://decisym.ai/xml2rdf/model#hasValue"},
		{RDFType, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"},
		{RDFSSubClassOf, "http://www.w3.org/2000/01/rdf-schema#subClassOf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.node.IRI)
	}
}
