package xml2rdf

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
	"github.com/google/uuid"
)

// Node is an element or attribute node: its minted identifier and its
// structural path
type Node struct {
	ID   *rdf.NamedNode
	Path string
}

// Assignor mints node identifiers under a namespace and computes paths
type Assignor struct {
	namespace string
	random    io.Reader
}

// NewAssignor creates an assignor for namespace drawing randomness from
// random. A nil random source uses crypto/rand.
func NewAssignor(namespace string, random io.Reader) *Assignor {
	if random == nil {
		random = rand.Reader
	}
	return &Assignor{namespace: namespace, random: random}
}

// Namespace returns the identifier prefix
func (a *Assignor) Namespace() string {
	return a.namespace
}

// Mint creates an element node. The path is parent.Path + "." + localName,
// or the model namespace followed by localName for a root element.
func (a *Assignor) Mint(parent *Node, localName string) (Node, error) {
	id, err := a.newID()
	if err != nil {
		return Node{}, err
	}
	return Node{ID: id, Path: ElementPath(parent, localName)}, nil
}

// MintAttribute creates an attribute node owned by owner
func (a *Assignor) MintAttribute(owner Node, localName string) (Node, error) {
	id, err := a.newID()
	if err != nil {
		return Node{}, err
	}
	return Node{ID: id, Path: AttributePath(owner, localName)}, nil
}

// newID returns namespace + "/" + a random version 4 UUID
func (a *Assignor) newID() (*rdf.NamedNode, error) {
	token, err := uuid.NewRandomFromReader(a.random)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIdentity, err)
	}
	return rdf.NewNamedNode(a.namespace + "/" + token.String()), nil
}

// ElementPath computes the path of an element from its parent, if any
func ElementPath(parent *Node, localName string) string {
	if parent == nil {
		return rdf.ModelNamespace + localName
	}
	return parent.Path + "." + localName
}

// AttributePath computes the path-shaped type IRI of an attribute
func AttributePath(owner Node, localName string) string {
	return owner.Path + ".-" + localName
}
