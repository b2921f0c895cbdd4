// Package ledger persists the marketplace's domain events as an append-only
// journal and rebuilds derived state from it on startup.
package ledger

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Ngipiek/rair-dapp/event"
)

// Entry is one journaled event.
type Entry struct {
	Seq     uint64          `json:"seq"`
	Time    time.Time       `json:"time"`
	Kind    event.Kind      `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Journal is an append-only, sequence-ordered event log. Appends happen
// through the event.Sink interface so a Journal can be handed to the
// settlement engine directly.
type Journal interface {
	event.Sink

	// Replay calls fn for every entry in sequence order. A non-nil error
	// from fn stops the replay and is returned.
	Replay(fn func(Entry) error) error

	// Len returns the number of journaled entries.
	Len() (uint64, error)

	Close() error
}

// newEntry marshals an event into an Entry without a sequence number;
// the journal assigns one on append.
func newEntry(kind event.Kind, payload any) (Entry, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Entry{}, fmt.Errorf("ledger: encode %s payload: %w", kind, err)
	}
	return Entry{Time: time.Now().UTC(), Kind: kind, Payload: data}, nil
}

// MemJournal is an in-memory Journal for tests and ephemeral deployments.
type MemJournal struct {
	mu      sync.Mutex
	entries []Entry
	closed  bool
}

// NewMemJournal creates an empty MemJournal.
func NewMemJournal() *MemJournal {
	return &MemJournal{}
}

// Compile-time interface check.
var _ Journal = (*MemJournal)(nil)

// Publish implements event.Sink.
func (j *MemJournal) Publish(kind event.Kind, payload any) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrJournalClosed
	}
	e, err := newEntry(kind, payload)
	if err != nil {
		return err
	}
	e.Seq = uint64(len(j.entries)) + 1
	j.entries = append(j.entries, e)
	return nil
}

// Replay implements Journal.
func (j *MemJournal) Replay(fn func(Entry) error) error {
	j.mu.Lock()
	entries := make([]Entry, len(j.entries))
	copy(entries, j.entries)
	j.mu.Unlock()

	for _, e := range entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// Len implements Journal.
func (j *MemJournal) Len() (uint64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return uint64(len(j.entries)), nil
}

// Close implements Journal.
func (j *MemJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.closed = true
	return nil
}
