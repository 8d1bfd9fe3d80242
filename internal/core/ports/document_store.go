// Package ports defines the contracts between the dispatch core and its
// infrastructure: the document store, the repositories built on it, and the
// outbound collaborators the use cases call.
package ports

import (
	"context"
	"errors"
)

var (
	// ErrDocumentNotFound is returned by Get and Update when no document has the given id.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrWatchUnsupported is returned by Watch when the backend cannot push changes.
	// Callers fall back to polling.
	ErrWatchUnsupported = errors.New("watch is not supported by this store")
)

// Record is the raw, schemaless content of a stored document. Values are
// whatever the backend decoded: strings, float64/int64/json.Number, bool,
// nested maps or nil.
type Record map[string]any

// Document pairs a record with its store-assigned id.
type Document struct {
	ID   string
	Data Record
}

// Filter is an equality predicate on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Query selects documents of one collection. All filters must match. When
// OrderBy is set, documents missing the field sort last.
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
}

// DocumentStore is a schemaless document database with per-document atomic
// writes and no multi-document transactions.
//
// Implementations must wrap infrastructure failures (network, permission,
// timeout) so callers can tell them apart from ErrDocumentNotFound.
type DocumentStore interface {
	// Get returns the record stored under id, or ErrDocumentNotFound.
	Get(ctx context.Context, collection, id string) (Record, error)

	// Find returns every document of the collection matching q.
	Find(ctx context.Context, collection string, q Query) ([]Document, error)

	// Add stores a new document and returns its generated id.
	Add(ctx context.Context, collection string, data Record) (string, error)

	// Update merges fields into an existing document in one atomic write.
	// Fields not named are left untouched. Returns ErrDocumentNotFound if
	// the document does not exist.
	Update(ctx context.Context, collection, id string, fields Record) error

	// Watch signals every committed write to the collection. Returns
	// ErrWatchUnsupported when the backend has no push channel.
	Watch(ctx context.Context, collection string) (Watcher, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// Pinger is implemented by stores behind a network connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher delivers change notifications. A notification carries no payload:
// receivers re-read the collection.
type Watcher interface {
	// Changes is closed when the watcher stops, either through Close or
	// because the upstream failed.
	Changes() <-chan struct{}

	// Err returns the failure that stopped the watcher, or nil.
	Err() error

	// Close stops the watcher. It is safe to call more than once.
	Close() error
}
