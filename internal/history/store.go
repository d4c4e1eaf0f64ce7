package history

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"omnipkg/internal/config"
)

const (
	bucketHistory = "history"

	// MaxEntries is the default number of history entries kept by Prune.
	MaxEntries = 500
)

// Store is the bbolt-backed history database.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the history database at the default path.
func Open() (*Store, error) {
	return OpenAt(config.HistoryPath())
}

// OpenAt opens or creates a history database at a specific path.
func OpenAt(path string) (*Store, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save appends an entry.
func (s *Store) Save(e *Entry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshaling history entry: %w", err)
		}
		return tx.Bucket([]byte(bucketHistory)).Put([]byte(e.ID), data)
	})
}

// List returns entries newest first, up to limit (0 means all).
func (s *Store) List(limit int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket([]byte(bucketHistory)).Cursor()
		for k, v := cursor.Last(); k != nil && (limit <= 0 || len(entries) < limit); k, v = cursor.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				continue // skip malformed entries
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

// Prune drops the oldest entries beyond keep.
func (s *Store) Prune(keep int) (int, error) {
	deleted := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketHistory))
		total := bucket.Stats().KeyN
		if total <= keep {
			return nil
		}
		cursor := bucket.Cursor()
		for k, _ := cursor.First(); k != nil && total-deleted > keep; k, _ = cursor.Next() {
			if err := bucket.Delete(k); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	return deleted, err
}
