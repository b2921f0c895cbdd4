package ledger

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/Ngipiek/rair-dapp/event"
)

var bucketEvents = []byte("events")

// BoltJournal persists events in a bbolt database, keyed by an 8-byte
// big-endian sequence number so cursor iteration yields append order.
type BoltJournal struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Journal = (*BoltJournal)(nil)

// OpenBoltJournal opens or creates the journal database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltJournal(dbPath string) (*BoltJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create bucket: %w", err)
	}

	return &BoltJournal{db: db}, nil
}

// Close closes the underlying database.
func (j *BoltJournal) Close() error { return j.db.Close() }

// seqKey encodes a sequence number as an 8-byte big-endian key.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// Publish implements event.Sink. The entry is durable when Publish returns.
func (j *BoltJournal) Publish(kind event.Kind, payload any) error {
	e, err := newEntry(kind, payload)
	if err != nil {
		return err
	}

	return j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("ledger: next sequence: %w", err)
		}
		e.Seq = seq
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("ledger: encode entry: %w", err)
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("ledger: put entry: %w", err)
		}
		return nil
	})
}

// Replay implements Journal.
func (j *BoltJournal) Replay(fn func(Entry) error) error {
	return j.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEvents).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("%w: seq %d: %w", ErrCorruptEntry, binary.BigEndian.Uint64(k), err)
			}
			return fn(e)
		})
	})
}

// Len implements Journal.
func (j *BoltJournal) Len() (uint64, error) {
	var count uint64
	err := j.db.View(func(tx *bbolt.Tx) error {
		count = uint64(tx.Bucket(bucketEvents).Stats().KeyN)
		return nil
	})
	return count, err
}
