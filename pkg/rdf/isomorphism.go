package rdf

import (
	"sort"
	"strings"
)

// AreGraphsIsomorphic checks if two sets of triples are isomorphic,
// accounting for blank node label differences.
// Two graphs are isomorphic if there exists a bijection between their
// blank nodes such that when applied, the graphs are identical.
func AreGraphsIsomorphic(expected, actual []*Triple) bool {
	if len(expected) != len(actual) {
		return false
	}

	expectedBlanks := blankNodeLabels(expected)
	actualBlanks := blankNodeLabels(actual)
	if len(expectedBlanks) != len(actualBlanks) {
		return false
	}

	actualSet := make(map[string]bool, len(actual))
	for _, triple := range actual {
		actualSet[tripleKey(triple, nil)] = true
	}

	if len(expectedBlanks) == 0 {
		return verifyMapping(expected, actualSet, nil)
	}

	// Match high-degree nodes first
	expectedBlanks = sortByDegree(expectedBlanks, expected)
	actualBlanks = sortByDegree(actualBlanks, actual)

	m := &matcher{
		expected:       expected,
		actualSet:      actualSet,
		expectedBlanks: expectedBlanks,
		actualBlanks:   actualBlanks,
		mapping:        make(map[string]string),
		used:           make(map[string]bool),
	}
	return m.backtrack(0)
}

// Anonymize replaces every IRI starting with prefix by a blank node whose
// label is the rest of the IRI. Graphs converted with different random
// identifiers become comparable with AreGraphsIsomorphic.
func Anonymize(triples []*Triple, prefix string) []*Triple {
	result := make([]*Triple, len(triples))
	for i, triple := range triples {
		result[i] = NewTriple(
			anonymize(triple.Subject, prefix),
			anonymize(triple.Predicate, prefix),
			anonymize(triple.Object, prefix))
	}
	return result
}

func anonymize(term Term, prefix string) Term {
	if n, ok := term.(*NamedNode); ok {
		if rest, found := strings.CutPrefix(n.IRI, prefix); found {
			return NewBlankNode(strings.TrimLeft(rest, "/#"))
		}
	}
	return term
}

// blankNodeLabels returns the sorted unique blank node labels of a graph
func blankNodeLabels(triples []*Triple) []string {
	blanks := make(map[string]bool)
	for _, triple := range triples {
		if b, ok := triple.Subject.(*BlankNode); ok {
			blanks[b.ID] = true
		}
		if b, ok := triple.Object.(*BlankNode); ok {
			blanks[b.ID] = true
		}
	}

	result := make([]string, 0, len(blanks))
	for label := range blanks {
		result = append(result, label)
	}
	sort.Strings(result)
	return result
}

// sortByDegree sorts blank nodes by the number of triples they appear in, descending
func sortByDegree(blanks []string, triples []*Triple) []string {
	degrees := make(map[string]int, len(blanks))
	for _, triple := range triples {
		if b, ok := triple.Subject.(*BlankNode); ok {
			degrees[b.ID]++
		}
		if b, ok := triple.Object.(*BlankNode); ok {
			degrees[b.ID]++
		}
	}

	sort.SliceStable(blanks, func(i, j int) bool {
		return degrees[blanks[i]] > degrees[blanks[j]]
	})
	return blanks
}

type matcher struct {
	expected       []*Triple
	actualSet      map[string]bool
	expectedBlanks []string
	actualBlanks   []string
	mapping        map[string]string
	used           map[string]bool
}

// backtrack recursively tries to find a valid mapping between blank nodes
func (m *matcher) backtrack(index int) bool {
	if index == len(m.expectedBlanks) {
		return verifyMapping(m.expected, m.actualSet, m.mapping)
	}

	current := m.expectedBlanks[index]
	for _, candidate := range m.actualBlanks {
		if m.used[candidate] {
			continue
		}

		m.mapping[current] = candidate
		m.used[candidate] = true

		if m.consistent() && m.backtrack(index+1) {
			return true
		}

		delete(m.mapping, current)
		delete(m.used, candidate)
	}

	return false
}

// consistent reports whether every expected triple whose blank nodes are
// all mapped already has its image in the actual graph
func (m *matcher) consistent() bool {
	for _, triple := range m.expected {
		if !isMapped(triple.Subject, m.mapping) || !isMapped(triple.Object, m.mapping) {
			continue
		}
		if !m.actualSet[tripleKey(triple, m.mapping)] {
			return false
		}
	}
	return true
}

func isMapped(term Term, mapping map[string]string) bool {
	if b, ok := term.(*BlankNode); ok {
		_, exists := mapping[b.ID]
		return exists
	}
	return true
}

// verifyMapping checks if the mapping makes the graphs identical
func verifyMapping(expected []*Triple, actualSet map[string]bool, mapping map[string]string) bool {
	expectedMapped := make(map[string]bool, len(expected))
	for _, triple := range expected {
		expectedMapped[tripleKey(triple, mapping)] = true
	}

	if len(expectedMapped) != len(actualSet) {
		return false
	}
	for key := range expectedMapped {
		if !actualSet[key] {
			return false
		}
	}
	return true
}

// tripleKey creates a string key for a triple, applying blank node mapping if provided
func tripleKey(triple *Triple, mapping map[string]string) string {
	return termString(triple.Subject, mapping) + "|" +
		termString(triple.Predicate, mapping) + "|" +
		termString(triple.Object, mapping)
}

func termString(term Term, mapping map[string]string) string {
	if b, ok := term.(*BlankNode); ok && mapping != nil {
		if mapped, exists := mapping[b.ID]; exists {
			return "_:" + mapped
		}
	}
	return term.String()
}
