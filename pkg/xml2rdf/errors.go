package xml2rdf

import "errors"

var (
	// ErrInputOpen is returned when an input document cannot be opened
	ErrInputOpen = errors.New("cannot open input")

	// ErrSinkWrite is returned when the sink rejects a triple
	ErrSinkWrite = errors.New("sink write failed")

	// ErrMalformedXML is returned in strict mode when the tokenizer reports an error
	ErrMalformedXML = errors.New("malformed xml")

	// ErrIdentity is returned when no identifier could be minted
	ErrIdentity = errors.New("cannot mint identifier")
)
