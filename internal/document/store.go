// Package document persists the whole archive as one JSON value in a
// key/value store. A missing or undecodable value is replaced by an empty
// archive. A sealed store never overwrites a value it cannot open: that is
// a wrong key, not bad data.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/cryptox"
	"github.com/dmitrijs2005/scewiki/internal/kv"
	"github.com/dmitrijs2005/scewiki/internal/logging"
	"github.com/dmitrijs2005/scewiki/internal/models"
)

// Store loads and saves the archive document.
type Store struct {
	kv      kv.Store
	log     logging.Logger
	key     string
	sealKey []byte
}

// Option tunes a Store.
type Option func(*Store)

// WithSealKey encrypts the stored value with AES-GCM under key.
func WithSealKey(key []byte) Option {
	return func(s *Store) { s.sealKey = key }
}

// WithKey overrides the storage key (default common.DocumentKey).
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func NewStore(store kv.Store, log logging.Logger, opts ...Option) *Store {
	s := &Store{kv: store, log: log, key: common.DocumentKey}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ErrSealKey is returned by Load when the stored value cannot be opened
// with the configured seal key, including a value stored unsealed.
var ErrSealKey = errors.New("stored archive cannot be opened with the configured key")

// Load returns the stored archive. When nothing is stored yet, or the value
// does not decode, an empty archive is written and returned. A value the
// seal key cannot open is left untouched and reported as ErrSealKey.
func (s *Store) Load(ctx context.Context) (*models.Document, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	if raw == nil {
		return s.reset(ctx)
	}

	if s.sealKey != nil {
		if raw, err = cryptox.OpenDocument(raw, s.sealKey); err != nil {
			return nil, fmt.Errorf("load document: %w: %v", ErrSealKey, err)
		}
	}

	doc, err := decode(raw)
	if err != nil {
		s.log.Warn(ctx, "stored archive is unreadable, starting over", "key", s.key, "error", err)
		return s.reset(ctx)
	}
	return doc, nil
}

// Save overwrites the stored archive with doc.
func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	raw, err := s.encode(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *Store) reset(ctx context.Context) (*models.Document, error) {
	doc := models.NewDocument()
	if err := s.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Store) encode(doc *models.Document) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if s.sealKey == nil {
		return raw, nil
	}
	return cryptox.SealDocument(raw, s.sealKey)
}

func decode(raw []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}
