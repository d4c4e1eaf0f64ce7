package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"omnipkg/internal/config"
)

const bucketRecords = "snapshot_records"

// Record is one entry in the snapshot index: a pointer to a document the
// backup path wrote, with enough metadata to list snapshots without parsing
// every file. The documents themselves stay user-owned on disk.
type Record struct {
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	Created  time.Time `json:"created"`
	Managers int       `json:"managers"`
	Packages int       `json:"packages"`
}

// Summary returns a one-line description of the record.
func (r Record) Summary() string {
	return fmt.Sprintf("%s  %s  (%d managers, %d packages)",
		r.ID, r.Path, r.Managers, r.Packages)
}

// Store is the bbolt-backed snapshot index.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens or creates the snapshot index database.
func OpenStore() (*Store, error) {
	return OpenStoreAt(config.SnapshotIndexPath())
}

// OpenStoreAt opens or creates a snapshot index at a specific path.
func OpenStoreAt(path string) (*Store, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening snapshot index: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRecords))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing snapshot index: %w", err)
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

// Add indexes a written snapshot document.
func (s *Store) Add(snap *Snapshot, path string) (Record, error) {
	rec := Record{
		ID:       snap.Meta.Created.Format("20060102-150405"),
		Path:     path,
		Created:  snap.Meta.Created,
		Managers: len(snap.Managers),
		Packages: snap.PackageCount(),
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketRecords)).Put([]byte(rec.ID), data)
	})
	return rec, err
}

// List returns indexed records, newest first, up to limit (0 means all).
func (s *Store) List(limit int) ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket([]byte(bucketRecords)).Cursor()
		for k, v := cursor.Last(); k != nil && (limit <= 0 || len(records) < limit); k, v = cursor.Prev() {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				continue // skip malformed entries
			}
			records = append(records, rec)
		}
		return nil
	})
	return records, err
}

// Latest returns the most recent record.
func (s *Store) Latest() (*Record, error) {
	records, err := s.List(1)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}
