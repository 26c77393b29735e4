package db

import (
	"context"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/store"
)

// repository is the generic per-collection base every typed repository
// embeds.
type repository[T any] struct {
	store      store.Store
	collection string
}

func (r *repository[T]) Collection() string {
	return r.collection
}

func (r *repository[T]) FindOneById(ctx context.Context, id string) (*T, error) {
	doc, err := r.store.Get(ctx, r.collection, id)
	if err != nil {
		return nil, err
	}
	model := new(T)
	if err := store.Decode(doc, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (r *repository[T]) IsExistsById(ctx context.Context, id string) bool {
	_, err := r.store.Get(ctx, r.collection, id)
	return err == nil
}

// Save replaces the whole document.
func (r *repository[T]) Save(ctx context.Context, id string, model *T) error {
	doc, err := store.Encode(model)
	if err != nil {
		return err
	}
	delete(doc, "_id")
	return r.store.Put(ctx, r.collection, id, doc, false)
}

func (r *repository[T]) DeleteById(ctx context.Context, id string) error {
	return r.store.Delete(ctx, r.collection, id)
}

func (r *repository[T]) find(ctx context.Context, q store.Query) ([]T, error) {
	q.Collection = r.collection
	docs, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return DecodeAll[T](docs)
}

// DecodeAll converts raw documents into models, failing on the first bad
// document rather than dropping it silently.
func DecodeAll[T any](docs []store.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var model T
		if err := store.Decode(doc, &model); err != nil {
			return nil, apperr.Wrap(apperr.KindPersistence, "failed decoding query result", err)
		}
		out = append(out, model)
	}
	return out, nil
}
