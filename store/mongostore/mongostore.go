// Package mongostore implements store.Store on MongoDB: multi-document
// transactions back the atomic batch, change streams back subscriptions and
// update operators back the field-update markers.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "failed connecting to mongo", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "failed pinging mongo", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Newf(apperr.KindNotFound, "document %s/%s not found", collection, id)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "failed reading document", err)
	}
	return store.Document(doc), nil
}

func (s *Store) Put(ctx context.Context, collection, id string, fields store.Document, merge bool) error {
	coll := s.db.Collection(collection)
	if merge {
		_, err := coll.UpdateOne(ctx, bson.M{"_id": id}, buildUpdate(fields), options.Update().SetUpsert(true))
		if err != nil {
			return apperr.Wrap(apperr.KindPersistence, "failed writing document", err)
		}
		return nil
	}
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, resolveValues(fields), options.Replace().SetUpsert(true))
	if err != nil {
		return apperr.Wrap(apperr.KindPersistence, "failed writing document", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, collection, id string, fields store.Document) error {
	doc := resolveValues(fields)
	doc["_id"] = id
	_, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Newf(apperr.KindConflict, "document %s/%s already exists", collection, id)
	}
	if err != nil {
		return apperr.Wrap(apperr.KindPersistence, "failed creating document", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields store.Document) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, buildUpdate(fields))
	if err != nil {
		return apperr.Wrap(apperr.KindPersistence, "failed updating document", err)
	}
	if res.MatchedCount == 0 {
		return apperr.Newf(apperr.KindNotFound, "document %s/%s not found", collection, id)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.KindPersistence, "failed deleting document", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, q store.Query) ([]store.Document, error) {
	opts := options.Find()
	if len(q.OrderBy) > 0 {
		sort := bson.D{}
		for _, o := range q.OrderBy {
			dir := 1
			if o.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: o.Field, Value: dir})
		}
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := s.db.Collection(q.Collection).Find(ctx, buildFilter(q), opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "failed querying collection", err)
	}
	defer cursor.Close(ctx)

	var out []store.Document
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperr.Wrap(apperr.KindPersistence, "failed decoding document", err)
		}
		out = append(out, store.Document(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "failed iterating cursor", err)
	}
	return out, nil
}

func (s *Store) Batch() store.Batch {
	return &batch{store: s}
}

// Subscribe opens a change stream on the query's collection and re-runs the
// query on every event, emitting the full current result set. Unsubscribe
// cancels the stream.
func (s *Store) Subscribe(q store.Query, onNext func([]store.Document), onError func(error)) (*store.Subscription, error) {
	ctx, cancel := context.WithCancel(context.Background())

	cs, err := s.db.Collection(q.Collection).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, apperr.Wrap(apperr.KindPersistence, "failed opening change stream", err)
	}

	initial, err := s.Query(ctx, q)
	if err != nil {
		cancel()
		cs.Close(context.Background())
		return nil, err
	}
	onNext(initial)

	go func() {
		defer cs.Close(context.Background())
		for cs.Next(ctx) {
			docs, err := s.Query(ctx, q)
			if err != nil {
				onError(err)
				continue
			}
			onNext(docs)
		}
		if err := cs.Err(); err != nil && ctx.Err() == nil {
			logger.Error("Change stream failed", zap.String("collection", q.Collection), zap.Error(err))
			onError(apperr.Wrap(apperr.KindPersistence, "change stream failed", err))
		}
	}()

	return store.NewSubscription(cancel), nil
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

// Commit runs all staged ops inside one session transaction. Any op error
// aborts the transaction, so no partial state survives.
func (b *batch) Commit(ctx context.Context) error {
	session, err := b.store.client.StartSession()
	if err != nil {
		return apperr.Wrap(apperr.KindPersistence, "failed starting session", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		for _, op := range b.ops {
			coll := b.store.db.Collection(op.collection)
			switch op.kind {
			case "set":
				doc := resolveValues(op.fields)
				if _, err := coll.ReplaceOne(sc, bson.M{"_id": op.id}, doc, options.Replace().SetUpsert(true)); err != nil {
					return nil, apperr.Wrap(apperr.KindPersistence, "failed writing document", err)
				}
			case "create":
				doc := resolveValues(op.fields)
				doc["_id"] = op.id
				if _, err := coll.InsertOne(sc, doc); err != nil {
					if mongo.IsDuplicateKeyError(err) {
						return nil, apperr.Newf(apperr.KindConflict, "document %s/%s already exists", op.collection, op.id)
					}
					return nil, apperr.Wrap(apperr.KindPersistence, "failed creating document", err)
				}
			case "update":
				res, err := coll.UpdateOne(sc, bson.M{"_id": op.id}, buildUpdate(op.fields))
				if err != nil {
					return nil, apperr.Wrap(apperr.KindPersistence, "failed updating document", err)
				}
				if res.MatchedCount == 0 {
					return nil, apperr.Newf(apperr.KindNotFound, "document %s/%s not found", op.collection, op.id)
				}
			case "delete":
				if _, err := coll.DeleteOne(sc, bson.M{"_id": op.id}); err != nil {
					return nil, apperr.Wrap(apperr.KindPersistence, "failed deleting document", err)
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperr.Wrap(apperr.KindPersistence, "transaction failed", err)
	}
	return nil
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
