package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/aleksaelezovic/xml2rdf/pkg/rdf"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DecodeCacheSize bounds the number of decoded terms kept per store
const DecodeCacheSize = 4096

// TripleStore is a set of RDF triples kept in three index permutations
// (SPO, POS, OSP) over a key-value Storage. Inserting a triple that is
// already present is a no-op.
type TripleStore struct {
	storage Storage
	encoder TermEncoder
	decoder TermDecoder

	// decoded terms by encoding; terms are immutable once decoded
	terms *lru.Cache[EncodedTerm, rdf.Term]
}

// NewTripleStore creates a new triplestore
func NewTripleStore(storage Storage, encoder TermEncoder, decoder TermDecoder) *TripleStore {
	terms, _ := lru.New[EncodedTerm, rdf.Term](DecodeCacheSize) // #nosec G104 - only fails for a non-positive size
	return &TripleStore{
		storage: storage,
		encoder: encoder,
		decoder: decoder,
		terms:   terms,
	}
}

// Close closes the underlying storage
func (s *TripleStore) Close() error {
	return s.storage.Close()
}

// Sync flushes pending writes of the underlying storage
func (s *TripleStore) Sync() error {
	return s.storage.Sync()
}

// InsertTriple inserts a triple into the store
func (s *TripleStore) InsertTriple(triple *rdf.Triple) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	if err := s.insertTripleInTxn(txn, triple); err != nil {
		return err
	}

	return txn.Commit()
}

// InsertTriplesBatch inserts all triples in a single transaction
func (s *TripleStore) InsertTriplesBatch(triples []*rdf.Triple) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	for _, triple := range triples {
		if err := s.insertTripleInTxn(txn, triple); err != nil {
			return err
		}
	}

	return txn.Commit()
}

// insertTripleInTxn inserts a triple within an existing transaction
func (s *TripleStore) insertTripleInTxn(txn Transaction, triple *rdf.Triple) error {
	subjEnc, subjStr, err := s.encoder.EncodeTerm(triple.Subject)
	if err != nil {
		return fmt.Errorf("failed to encode subject: %w", err)
	}

	predEnc, predStr, err := s.encoder.EncodeTerm(triple.Predicate)
	if err != nil {
		return fmt.Errorf("failed to encode predicate: %w", err)
	}

	objEnc, objStr, err := s.encoder.EncodeTerm(triple.Object)
	if err != nil {
		return fmt.Errorf("failed to encode object: %w", err)
	}

	// Store strings in id2str table
	if err := s.storeString(txn, subjEnc, subjStr); err != nil {
		return err
	}
	if err := s.storeString(txn, predEnc, predStr); err != nil {
		return err
	}
	if err := s.storeString(txn, objEnc, objStr); err != nil {
		return err
	}

	// Index entries carry no value
	emptyValue := []byte{}

	if err := txn.Set(TableSPO, s.encoder.EncodeKey(subjEnc, predEnc, objEnc), emptyValue); err != nil {
		return err
	}
	if err := txn.Set(TablePOS, s.encoder.EncodeKey(predEnc, objEnc, subjEnc), emptyValue); err != nil {
		return err
	}
	return txn.Set(TableOSP, s.encoder.EncodeKey(objEnc, subjEnc, predEnc), emptyValue)
}

// storeString stores a string in the id2str table if provided
func (s *TripleStore) storeString(txn Transaction, encoded EncodedTerm, str *string) error {
	if str == nil {
		return nil
	}

	// The hash/data portion of the encoded term is the key
	key := encoded[1:]
	value := []byte(*str)

	// Check if already exists to avoid unnecessary writes
	existing, err := txn.Get(TableID2Str, key)
	if err == nil && bytes.Equal(existing, value) {
		return nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	return txn.Set(TableID2Str, key, value)
}

// ContainsTriple checks if a triple exists in the store
func (s *TripleStore) ContainsTriple(triple *rdf.Triple) (bool, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return false, err
	}
	defer txn.Rollback()

	subjEnc, _, err := s.encoder.EncodeTerm(triple.Subject)
	if err != nil {
		return false, err
	}

	predEnc, _, err := s.encoder.EncodeTerm(triple.Predicate)
	if err != nil {
		return false, err
	}

	objEnc, _, err := s.encoder.EncodeTerm(triple.Object)
	if err != nil {
		return false, err
	}

	_, err = txn.Get(TableSPO, s.encoder.EncodeKey(subjEnc, predEnc, objEnc))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Count returns the number of distinct triples in the store
func (s *TripleStore) Count() (int64, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return 0, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableSPO, nil)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	count := int64(0)
	for it.Next() {
		count++
	}

	return count, nil
}
