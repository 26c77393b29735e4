// Package memstore is an in-memory store.Store. It backs the package tests
// and local development, and mirrors the transactional semantics the core
// relies on: batches apply all-or-nothing and listeners re-fire with the
// full current result set after every commit.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/store"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]store.Document
	subs        map[int64]*subscriber
	nextSubID   int64

	// Now supplies write timestamps in unix milliseconds. Tests override it
	// to get a deterministic ordering.
	Now func() int64
}

type subscriber struct {
	id      int64
	query   store.Query
	onNext  func([]store.Document)
	onError func(error)
}

func New() *Store {
	return &Store{
		collections: make(map[string]map[string]store.Document),
		subs:        make(map[int64]*subscriber),
		Now:         func() int64 { return time.Now().UnixMilli() },
	}
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, apperr.Newf(apperr.KindNotFound, "document %s/%s not found", collection, id)
	}
	out := deepCopy(doc).(store.Document)
	out["_id"] = id
	return out, nil
}

func (s *Store) Put(ctx context.Context, collection, id string, fields store.Document, merge bool) error {
	s.mu.Lock()
	coll := s.ensureCollection(collection)
	if merge {
		existing, ok := coll[id]
		if !ok {
			existing = store.Document{}
		}
		s.applyFields(existing, fields)
		coll[id] = existing
	} else {
		doc := store.Document{}
		s.applyFields(doc, fields)
		coll[id] = doc
	}
	s.mu.Unlock()

	s.notify(collection)
	return nil
}

func (s *Store) Create(ctx context.Context, collection, id string, fields store.Document) error {
	s.mu.Lock()
	coll := s.ensureCollection(collection)
	if _, ok := coll[id]; ok {
		s.mu.Unlock()
		return apperr.Newf(apperr.KindConflict, "document %s/%s already exists", collection, id)
	}
	doc := store.Document{}
	s.applyFields(doc, fields)
	coll[id] = doc
	s.mu.Unlock()

	s.notify(collection)
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields store.Document) error {
	s.mu.Lock()
	doc, ok := s.collections[collection][id]
	if !ok {
		s.mu.Unlock()
		return apperr.Newf(apperr.KindNotFound, "document %s/%s not found", collection, id)
	}
	s.applyFields(doc, fields)
	s.mu.Unlock()

	s.notify(collection)
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	delete(s.collections[collection], id)
	s.mu.Unlock()

	s.notify(collection)
	return nil
}

func (s *Store) Query(ctx context.Context, q store.Query) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runQuery(q), nil
}

func (s *Store) Batch() store.Batch {
	return &batch{store: s}
}

func (s *Store) Subscribe(q store.Query, onNext func([]store.Document), onError func(error)) (*store.Subscription, error) {
	s.mu.Lock()
	s.nextSubID++
	sub := &subscriber{id: s.nextSubID, query: q, onNext: onNext, onError: onError}
	s.subs[sub.id] = sub
	initial := s.runQuery(q)
	s.mu.Unlock()

	onNext(initial)

	id := sub.id
	return store.NewSubscription(func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}), nil
}

// Reset drops all documents, keeping subscribers. Test helper.
func (s *Store) Reset() {
	s.mu.Lock()
	s.collections = make(map[string]map[string]store.Document)
	s.mu.Unlock()
}

func (s *Store) ensureCollection(name string) map[string]store.Document {
	coll, ok := s.collections[name]
	if !ok {
		coll = make(map[string]store.Document)
		s.collections[name] = coll
	}
	return coll
}

// notify re-runs every subscription whose collection was touched and emits
// the full snapshot. Called without the lock held so callbacks may re-enter
// the store.
func (s *Store) notify(collection string) {
	s.mu.RLock()
	var targets []*subscriber
	var snapshots [][]store.Document
	for _, sub := range s.subs {
		if sub.query.Collection == collection {
			targets = append(targets, sub)
			snapshots = append(snapshots, s.runQuery(sub.query))
		}
	}
	s.mu.RUnlock()

	for i, sub := range targets {
		sub.onNext(snapshots[i])
	}
}

func (s *Store) runQuery(q store.Query) []store.Document {
	var out []store.Document
	for id, doc := range s.collections[q.Collection] {
		if !matchesAll(doc, q.Filters) {
			continue
		}
		copied := deepCopy(doc).(store.Document)
		copied["_id"] = id
		out = append(out, copied)
	}

	sortDocs(out, q.OrderBy)

	if len(q.StartAfter) > 0 && len(q.OrderBy) > 0 {
		cut := len(out)
		for i, doc := range out {
			if afterCursor(doc, q.OrderBy, q.StartAfter) {
				cut = i
				break
			}
		}
		out = out[cut:]
	}

	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

type stagedOp struct {
	kind       string
	collection string
	id         string
	fields     store.Document
}

type batch struct {
	store *Store
	ops   []stagedOp
}

func (b *batch) Set(collection, id string, fields store.Document) {
	b.ops = append(b.ops, stagedOp{kind: "set", collection: collection, id: id, fields: fields})
}

func (b *batch) Create(collection, id string, fields store.Document) {
	b.ops = append(b.ops, stagedOp{kind: "create", collection: collection, id: id, fields: fields})
}

func (b *batch) Update(collection, id string, fields store.Document) {
	b.ops = append(b.ops, stagedOp{kind: "update", collection: collection, id: id, fields: fields})
}

func (b *batch) Delete(collection, id string) {
	b.ops = append(b.ops, stagedOp{kind: "delete", collection: collection, id: id})
}

func (b *batch) Commit(ctx context.Context) error {
	s := b.store
	s.mu.Lock()

	// Validate every op before touching anything so a failure leaves no
	// partial state.
	staged := make(map[string]store.Document, len(b.ops))
	for _, op := range b.ops {
		key := op.collection + "\x00" + op.id
		existing, exists := s.collections[op.collection][op.id]
		if prior, ok := staged[key]; ok {
			existing, exists = prior, prior != nil
		}
		switch op.kind {
		case "create":
			if exists {
				s.mu.Unlock()
				return apperr.Newf(apperr.KindConflict, "document %s/%s already exists", op.collection, op.id)
			}
			staged[key] = store.Document{}
		case "update":
			if !exists {
				s.mu.Unlock()
				return apperr.Newf(apperr.KindNotFound, "document %s/%s not found", op.collection, op.id)
			}
			staged[key] = existing
		case "delete":
			staged[key] = nil
		case "set":
			// A set creates the document when absent, so later ops in the
			// same batch must see it as existing.
			staged[key] = store.Document{}
		}
	}

	touched := make(map[string]bool)
	for _, op := range b.ops {
		coll := s.ensureCollection(op.collection)
		touched[op.collection] = true
		switch op.kind {
		case "create", "set":
			doc := store.Document{}
			s.applyFields(doc, op.fields)
			coll[op.id] = doc
		case "update":
			s.applyFields(coll[op.id], op.fields)
		case "delete":
			delete(coll, op.id)
		}
	}
	s.mu.Unlock()

	for collection := range touched {
		s.notify(collection)
	}
	return nil
}
