// Package history persists processed receipt results so earlier runs can be
// reviewed. The core pipeline itself is stateless; storage is purely a CLI
// convenience.
package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"receiptscan/internal/receipt"
)

const bucketName = "results"

// Entry is one stored processing run.
type Entry struct {
	ID          string                  `json:"id"`
	Source      string                  `json:"source"` // file name or example name
	ProcessedAt time.Time               `json:"processed_at"`
	Result      receipt.ProcessedResult `json:"result"`
}

// Store defines the interface for history persistence.
type Store interface {
	// Save stores a processing result and returns the entry that was written.
	Save(source string, result receipt.ProcessedResult) (*Entry, error)

	// Get retrieves an entry by ID.
	Get(id string) (*Entry, error)

	// List returns all entries, oldest first.
	List() ([]*Entry, error)

	// Close closes the underlying database.
	Close() error
}

// BoltStore implements Store using bbolt.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the history database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Save stores a processing result under a fresh ID.
func (s *BoltStore) Save(source string, result receipt.ProcessedResult) (*Entry, error) {
	entry := &Entry{
		ID:          uuid.NewString(),
		Source:      source,
		ProcessedAt: time.Now().UTC(),
		Result:      result,
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling entry: %w", err)
		}
		return tx.Bucket([]byte(bucketName)).Put([]byte(entry.ID), data)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Get retrieves an entry by ID.
func (s *BoltStore) Get(id string) (*Entry, error) {
	var entry *Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("entry not found: %s", id)
		}
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all entries ordered by processing time, oldest first.
func (s *BoltStore) List() ([]*Entry, error) {
	entries := make([]*Entry, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("unmarshaling entry: %w", err)
			}
			entries = append(entries, &entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ProcessedAt.Before(entries[j].ProcessedAt)
	})
	return entries, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
