// Package store defines the document-store capability the rest of the core
// is written against: per-document CRUD, compound queries with cursor
// pagination, atomic multi-document batches and change subscriptions.
// Implementations live in store/mongostore (MongoDB) and store/memstore
// (in-memory, used by tests and local development).
package store

import "context"

// Document is one schemaless document. The "_id" field carries the key on
// documents returned from queries.
type Document map[string]any

type Op string

const (
	OpEq  Op = "=="
	OpIn  Op = "in"
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

type Order struct {
	Field string
	Desc  bool
}

func Asc(field string) Order  { return Order{Field: field} }
func Desc(field string) Order { return Order{Field: field, Desc: true} }

// Query is one deterministic query plan. StartAfter values run parallel to
// OrderBy fields; documents at or before that position in the ordering are
// skipped.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    []Order
	StartAfter []any
	Limit      int64
}

// Batch stages writes across collections and applies them atomically on
// Commit. A failed Commit leaves no partial state behind.
type Batch interface {
	// Set writes the full document, creating it if absent.
	Set(collection, id string, fields Document)
	// Create fails the whole batch with a conflict if the id exists.
	Create(collection, id string, fields Document)
	// Update merges fields into an existing document; fails the batch with
	// not-found if the document is absent.
	Update(collection, id string, fields Document)
	Delete(collection, id string)
	Commit(ctx context.Context) error
}

// Subscription is the resource handle returned at subscribe time. Releasing
// it is the caller's responsibility; a dropped handle leaks a live listener.
type Subscription struct {
	cancel func()
}

func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

func (s *Subscription) Unsubscribe() {
	if s != nil && s.cancel != nil {
		s.cancel()
	}
}

type Store interface {
	// Get returns a not-found error when the document is absent.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Put writes a document. With merge, fields are laid over the existing
	// document (created if absent); without, the document is replaced.
	Put(ctx context.Context, collection, id string, fields Document, merge bool) error
	// Create fails with a conflict when the id already exists.
	Create(ctx context.Context, collection, id string, fields Document) error
	// Update merges fields into an existing document.
	Update(ctx context.Context, collection, id string, fields Document) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, q Query) ([]Document, error)
	Batch() Batch
	// Subscribe re-runs q on every change to its collection and hands the
	// entire current result set to onNext. The first snapshot is delivered
	// before Subscribe returns.
	Subscribe(q Query, onNext func([]Document), onError func(error)) (*Subscription, error)
}
