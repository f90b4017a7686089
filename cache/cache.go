package cache

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"gopkg.in/yaml.v3"

	"github.com/viant/wrapmerge/inspector/graph"
)

const keyPrefix = "wrapmerge/decl/v1/"

// Store persists parsed header declarations keyed by source digest
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens a store in dir; an empty dir opens an in-memory store
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open declaration cache %q: %w", dir, err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Get returns cached declarations; a miss returns false with nil error
func (s *Store) Get(key uint64) (*graph.File, bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		s.logger.Debug("declaration cache: miss", slog.String("key", fmt.Sprintf("%016x", key)))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("declaration cache load: %w", err)
	}
	file := &graph.File{}
	if err = yaml.Unmarshal(raw, file); err != nil {
		return nil, false, fmt.Errorf("declaration cache decode: %w", err)
	}
	s.logger.Debug("declaration cache: hit", slog.String("path", file.Path), slog.Int("types", len(file.Types)))
	return file, true, nil
}

// Put stores declarations under key
func (s *Store) Put(key uint64, file *graph.File) error {
	raw, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("declaration cache encode: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(cacheKey(key), raw))
	})
	if err != nil {
		return fmt.Errorf("declaration cache save: %w", err)
	}
	return nil
}

// Close releases the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func cacheKey(key uint64) []byte {
	return []byte(fmt.Sprintf("%s%016x", keyPrefix, key))
}
