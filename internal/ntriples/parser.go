package ntriples

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
)

// Parser is an N-Triples parser.
// N-Triples format: <subject> <predicate> <object> .
type Parser struct {
	input  string
	pos    int
	length int
	line   int
}

// NewParser creates a new N-Triples parser
func NewParser(input string) *Parser {
	return &Parser{
		input:  input,
		pos:    0,
		length: len(input),
		line:   1,
	}
}

// ParseReader reads all of r and parses it as N-Triples
func ParseReader(r io.Reader) ([]*rdf.Triple, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return NewParser(string(data)).Parse()
}

// Parse parses the N-Triples document and returns its triples in order
func (p *Parser) Parse() ([]*rdf.Triple, error) {
	var triples []*rdf.Triple

	for p.pos < p.length {
		p.skipWhitespaceAndComments()
		if p.pos >= p.length {
			break
		}

		triple, err := p.parseTriple()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", p.line, err)
		}
		triples = append(triples, triple)
	}

	return triples, nil
}

// skipWhitespaceAndComments skips whitespace and comments
func (p *Parser) skipWhitespaceAndComments() {
	for p.pos < p.length {
		ch := p.input[p.pos]
		if ch == '\n' {
			p.line++
			p.pos++
			continue
		}
		if ch == ' ' || ch == '\t' || ch == '\r' {
			p.pos++
			continue
		}
		if ch == '#' {
			// Skip comment until end of line
			for p.pos < p.length && p.input[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		break
	}
}

// skipInlineWhitespace skips spaces and tabs within a statement
func (p *Parser) skipInlineWhitespace() {
	for p.pos < p.length && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// parseTriple parses a triple: subject predicate object .
func (p *Parser) parseTriple() (*rdf.Triple, error) {
	subject, err := p.parseSubject()
	if err != nil {
		return nil, fmt.Errorf("error parsing subject: %w", err)
	}

	p.skipInlineWhitespace()

	predicate, err := p.parseNamedNode()
	if err != nil {
		return nil, fmt.Errorf("error parsing predicate: %w", err)
	}

	p.skipInlineWhitespace()

	object, err := p.parseObject()
	if err != nil {
		return nil, fmt.Errorf("error parsing object: %w", err)
	}

	p.skipInlineWhitespace()

	// Expect '.' at end
	if p.pos >= p.length || p.input[p.pos] != '.' {
		return nil, fmt.Errorf("expected '.' at end of triple")
	}
	p.pos++ // skip '.'

	p.skipInlineWhitespace()
	if p.pos < p.length && p.input[p.pos] == '#' {
		for p.pos < p.length && p.input[p.pos] != '\n' {
			p.pos++
		}
	}
	if p.pos < p.length && p.input[p.pos] != '\n' && p.input[p.pos] != '\r' {
		return nil, fmt.Errorf("unexpected character after '.': %c", p.input[p.pos])
	}

	return rdf.NewTriple(subject, predicate, object), nil
}

func (p *Parser) parseSubject() (rdf.Term, error) {
	if p.pos < p.length && p.input[p.pos] == '_' {
		return p.parseBlankNode()
	}
	return p.parseNamedNode()
}

func (p *Parser) parseObject() (rdf.Term, error) {
	if p.pos >= p.length {
		return nil, fmt.Errorf("unexpected end of input")
	}

	switch p.input[p.pos] {
	case '<':
		return p.parseNamedNode()
	case '_':
		return p.parseBlankNode()
	case '"':
		return p.parseLiteral()
	default:
		return nil, fmt.Errorf("unexpected character at position %d: %c", p.pos, p.input[p.pos])
	}
}

func (p *Parser) parseNamedNode() (*rdf.NamedNode, error) {
	iri, err := p.parseIRI()
	if err != nil {
		return nil, err
	}
	return rdf.NewNamedNode(iri), nil
}

// parseIRI parses an IRI enclosed in < >
func (p *Parser) parseIRI() (string, error) {
	if p.pos >= p.length || p.input[p.pos] != '<' {
		return "", fmt.Errorf("expected '<' at start of IRI")
	}
	p.pos++ // skip '<'

	var iri strings.Builder
	for p.pos < p.length && p.input[p.pos] != '>' {
		ch := p.input[p.pos]
		if ch == '\n' || ch == ' ' {
			return "", fmt.Errorf("invalid character in IRI: %q", ch)
		}
		if ch == '\\' {
			r, err := p.parseUnicodeEscape()
			if err != nil {
				return "", err
			}
			iri.WriteRune(r)
			continue
		}
		iri.WriteByte(ch)
		p.pos++
	}

	if p.pos >= p.length {
		return "", fmt.Errorf("unclosed IRI")
	}
	p.pos++ // skip '>'

	return iri.String(), nil
}

// parseBlankNode parses a blank node
func (p *Parser) parseBlankNode() (rdf.Term, error) {
	if p.pos+1 >= p.length || p.input[p.pos] != '_' || p.input[p.pos+1] != ':' {
		return nil, fmt.Errorf("expected '_:' at start of blank node")
	}
	p.pos += 2 // skip '_:'

	start := p.pos
	for p.pos < p.length {
		ch := p.input[p.pos]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '<' || ch == '"' {
			break
		}
		p.pos++
	}

	// A trailing '.' terminates the statement, not the label
	for p.pos > start && p.input[p.pos-1] == '.' {
		p.pos--
	}

	if p.pos == start {
		return nil, fmt.Errorf("empty blank node label")
	}
	return rdf.NewBlankNode(p.input[start:p.pos]), nil
}

// parseLiteral parses a quoted literal with optional language tag or datatype
func (p *Parser) parseLiteral() (rdf.Term, error) {
	p.pos++ // skip opening '"'

	var value strings.Builder
	for p.pos < p.length {
		ch := p.input[p.pos]
		if ch == '"' {
			break
		}
		if ch == '\n' || ch == '\r' {
			return nil, fmt.Errorf("unescaped line break in literal")
		}
		if ch == '\\' {
			if p.pos+1 >= p.length {
				return nil, fmt.Errorf("unexpected end of input in escape sequence")
			}
			switch esc := p.input[p.pos+1]; esc {
			case 't':
				value.WriteByte('\t')
			case 'b':
				value.WriteByte('\b')
			case 'n':
				value.WriteByte('\n')
			case 'r':
				value.WriteByte('\r')
			case 'f':
				value.WriteByte('\f')
			case '"':
				value.WriteByte('"')
			case '\'':
				value.WriteByte('\'')
			case '\\':
				value.WriteByte('\\')
			case 'u', 'U':
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return nil, err
				}
				value.WriteRune(r)
				continue
			default:
				return nil, fmt.Errorf("invalid escape sequence: \\%c", esc)
			}
			p.pos += 2
			continue
		}
		value.WriteByte(ch)
		p.pos++
	}

	if p.pos >= p.length {
		return nil, fmt.Errorf("unclosed string literal")
	}
	p.pos++ // skip closing '"'

	if p.pos < p.length && p.input[p.pos] == '@' {
		p.pos++ // skip '@'
		start := p.pos
		for p.pos < p.length {
			ch := p.input[p.pos]
			if !(ch == '-' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')) {
				break
			}
			p.pos++
		}
		if p.pos == start {
			return nil, fmt.Errorf("empty language tag")
		}
		return rdf.NewLiteralWithLanguage(value.String(), p.input[start:p.pos]), nil
	}

	if p.pos+1 < p.length && p.input[p.pos] == '^' && p.input[p.pos+1] == '^' {
		p.pos += 2 // skip '^^'
		datatype, err := p.parseNamedNode()
		if err != nil {
			return nil, fmt.Errorf("error parsing datatype: %w", err)
		}
		return rdf.NewLiteralWithDatatype(value.String(), datatype), nil
	}

	return rdf.NewLiteral(value.String()), nil
}

// parseUnicodeEscape parses \uXXXX or \UXXXXXXXX starting at the backslash
func (p *Parser) parseUnicodeEscape() (rune, error) {
	if p.pos+1 >= p.length {
		return 0, fmt.Errorf("unexpected end of input in escape sequence")
	}

	var digits int
	switch p.input[p.pos+1] {
	case 'u':
		digits = 4
	case 'U':
		digits = 8
	default:
		return 0, fmt.Errorf("invalid escape sequence: \\%c", p.input[p.pos+1])
	}

	start := p.pos + 2
	if start+digits > p.length {
		return 0, fmt.Errorf("truncated unicode escape")
	}

	code, err := strconv.ParseUint(p.input[start:start+digits], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid unicode escape: %w", err)
	}

	p.pos = start + digits
	return rune(code), nil
}
