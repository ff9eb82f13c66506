package rdf

import (
	"fmt"
	"strings"
)

// EscapeString escapes a string value for N-Triples output:
// - Special named escapes: \t \b \n \r \f \" \\
// - Other control characters and DEL as \uXXXX
func EscapeString(s string) string {
	if !needsEscape(s) {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s) + 8)

	for _, r := range s {
		switch r {
		case '\t':
			builder.WriteString(`\t`)
		case '\b':
			builder.WriteString(`\b`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\f':
			builder.WriteString(`\f`)
		case '"':
			builder.WriteString(`\"`)
		case '\\':
			builder.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7F {
				fmt.Fprintf(&builder, `\u%04X`, r)
			} else {
				builder.WriteRune(r)
			}
		}
	}

	return builder.String()
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == 0x7F || c == '"' || c == '\\' {
			return true
		}
	}
	return false
}
