package xml2rdf

// Stats counts what a conversion produced
type Stats struct {
	Documents       int
	Elements        int
	Attributes      int
	EmptyAttributes int
	Values          int
	DroppedText     int
	Ignored         int
	Triples         int
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Documents += other.Documents
	s.Elements += other.Elements
	s.Attributes += other.Attributes
	s.EmptyAttributes += other.EmptyAttributes
	s.Values += other.Values
	s.DroppedText += other.DroppedText
	s.Ignored += other.Ignored
	s.Triples += other.Triples
}
