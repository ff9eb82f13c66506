package rdf

// Standard vocabularies
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
)

// ModelNamespace is the base IRI of the xml2rdf structural vocabulary.
// Root element paths are built on it as well.
const ModelNamespace = "https://decisym.ai/xml2rdf/model#"

// DefaultDataNamespace prefixes minted node identifiers unless configured otherwise.
const DefaultDataNamespace = "https://decisym.ai/xml2rdf/data"

var (
	RDFType        = NewNamedNode(RDFNamespace + "type")
	RDFSSubClassOf = NewNamedNode(RDFSNamespace + "subClassOf")
)

// Classes
var (
	XMLNode      = NewNamedNode(ModelNamespace + "XmlNode")
	XMLAttribute = NewNamedNode(ModelNamespace + "XmlAttribute")
)

// Relations
var (
	HasChild     = NewNamedNode(ModelNamespace + "hasChild")
	HasAttribute = NewNamedNode(ModelNamespace + "hasAttribute")
	HasName      = NewNamedNode(ModelNamespace + "hasName")
	HasValue     = NewNamedNode(ModelNamespace + "hasValue")
)
