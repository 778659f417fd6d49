package journal

import "errors"

// Store persists round records in append order.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores a record, assigning it the next sequence number.
	Append(rec *Record) error

	// List returns all records ordered by sequence.
	// Returns an empty slice (not an error) when the journal is empty.
	List() ([]*Record, error)

	// Last returns the most recent record.
	// Returns ErrNotFound when the journal is empty.
	Last() (*Record, error)

	// Prune removes all records, keeping the sequence counter.
	Prune() error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrNotFound indicates the journal holds no records.
	ErrNotFound = errors.New("journal record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
