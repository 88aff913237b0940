package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/rantnar/nala/internal/config"
)

const bucketTransactions = "transactions"

// ErrNotFound is returned when no entry carries the requested ID.
var ErrNotFound = errors.New("history entry not found")

// Store is the bbolt-backed transaction journal. Entries get sequential
// numeric IDs so users can refer to them (`nala history undo 3`).
type Store struct {
	db *bbolt.DB
}

// Open opens the journal at the default path, creating it if needed.
func Open() (*Store, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return OpenAt(config.HistoryPath())
}

// OpenAt opens a journal at an explicit path.
func OpenAt(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketTransactions))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the journal.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record appends an entry and assigns it the next sequential ID.
func (s *Store) Record(entry *Entry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketTransactions))

		id, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("assigning history id: %w", err)
		}
		entry.ID = id

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encoding history entry: %w", err)
		}
		return bucket.Put(idKey(id), data)
	})
}

// List returns the newest entries first, at most limit of them
// (limit <= 0 means all).
func (s *Store) List(limit int) ([]Entry, error) {
	var entries []Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket([]byte(bucketTransactions)).Cursor()
		for k, v := cursor.Last(); k != nil && (limit <= 0 || len(entries) < limit); k, v = cursor.Prev() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue // skip records from older formats
			}
			entries = append(entries, entry)
		}
		return nil
	})

	return entries, err
}

// Get retrieves an entry by ID.
func (s *Store) Get(id uint64) (*Entry, error) {
	var entry *Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketTransactions)).Get(idKey(id))
		if data == nil {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})

	return entry, err
}

// Last returns the newest entry, or nil when the journal is empty.
func (s *Store) Last() (*Entry, error) {
	var entry *Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		_, v := tx.Bucket([]byte(bucketTransactions)).Cursor().Last()
		if v == nil {
			return nil
		}
		entry = &Entry{}
		return json.Unmarshal(v, entry)
	})

	return entry, err
}

// Count returns the number of journal entries.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(bucketTransactions)).Stats().KeyN
		return nil
	})
	return count, err
}

// Clear drops every entry and resets the ID sequence.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketTransactions)); err != nil && !errors.Is(err, berrors.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketTransactions))
		return err
	})
}

// idKey encodes an ID so bbolt's byte order matches numeric order.
func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
