// Package xml2rdf converts XML documents into RDF triples describing their
// structure.
//
// Every element becomes a node with a freshly minted identifier. The node
// is typed with its dotted structural path (for example
// "https://decisym.ai/xml2rdf/model#people.person.name"), named with its
// local tag name and declared a subclass of xml2rdf:XmlNode. Parents link
// to children with xml2rdf:hasChild, elements link to their attributes with
// xml2rdf:hasAttribute, and trimmed text and attribute values are attached
// with xml2rdf:hasValue.
//
// Documents are walked iteratively with an explicit ancestor stack. Several
// documents may be converted into the same sink; the stack is reset between
// documents, so no triple ever links nodes of different documents.
//
// Attribute type IRIs are the owning element's path followed by ".-" and the
// attribute name. They are used verbatim and are not checked to be valid
// absolute IRIs.
package xml2rdf
