package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/bookshelf/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Bucket and key names
var (
	bucketLibrary = []byte("library")
	keyBooks      = []byte("books")
)

// openTimeout bounds how long Open waits for another process holding the file lock.
const openTimeout = 1 * time.Second

// Bolt persists the library in a BoltDB file. The whole ordered
// sequence lives under a single key so Save stays a full replacement.
type Bolt struct {
	db     *bolt.DB
	path   string
	logger *slog.Logger
}

var _ domain.Persister = (*Bolt)(nil)

// OpenBolt opens (or creates) the database at path. BoltDB holds an
// exclusive file lock, so a second process fails here instead of racing on Save.
func OpenBolt(path string, logger *slog.Logger) (*Bolt, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLibrary)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db, path: path, logger: logger}, nil
}

// Path returns the database file path.
func (s *Bolt) Path() string {
	return s.path
}

func (s *Bolt) Load() ([]domain.Book, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLibrary)
		if b == nil {
			return nil
		}
		if v := b.Get(keyBooks); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	if data == nil {
		return nil, nil
	}

	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	s.logger.Info("loaded library", "path", s.path, "count", len(books))
	return books, nil
}

func (s *Bolt) Save(books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSaveFailed, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketLibrary)
		if err != nil {
			return err
		}
		return b.Put(keyBooks, data)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSaveFailed, err)
	}
	s.logger.Debug("saved library", "path", s.path, "count", len(books))
	return nil
}

func (s *Bolt) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
