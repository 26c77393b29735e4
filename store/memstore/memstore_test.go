package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/store"
)

func TestGetPut(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Get(ctx, "users", "u1")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, s.Put(ctx, "users", "u1", store.Document{"name": "Alice", "age": int64(30)}, false))

	doc, err := s.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", doc["name"])
	assert.Equal(t, "u1", doc["_id"])

	// Replace drops fields not in the new document.
	require.NoError(t, s.Put(ctx, "users", "u1", store.Document{"name": "Alice B"}, false))
	doc, err = s.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.NotContains(t, doc, "age")

	// Merge keeps them.
	require.NoError(t, s.Put(ctx, "users", "u1", store.Document{"bio": "hi"}, true))
	doc, err = s.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", doc["name"])
	assert.Equal(t, "hi", doc["bio"])
}

func TestCreateConflict(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "edges", "a_b", store.Document{"x": int64(1)}))
	err := s.Create(ctx, "edges", "a_b", store.Document{"x": int64(2)})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUpdateMissing(t *testing.T) {
	s := New()
	err := s.Update(context.Background(), "users", "nope", store.Document{"a": int64(1)})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestMarkers(t *testing.T) {
	s := New()
	s.Now = func() int64 { return 42 }
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "posts", "p1", store.Document{
		"likeCount": int64(0),
		"likes":     []string{},
	}, false))

	require.NoError(t, s.Update(ctx, "posts", "p1", store.Document{
		"likeCount": store.Inc(1),
		"likes":     store.ArrayUnion("bob"),
		"touchedAt": store.ServerTimestamp(),
	}))
	// Re-adding an existing element is a no-op; a new one appends.
	require.NoError(t, s.Update(ctx, "posts", "p1", store.Document{
		"likeCount": store.Inc(1),
		"likes":     store.ArrayUnion("bob"),
	}))
	require.NoError(t, s.Update(ctx, "posts", "p1", store.Document{
		"likes": store.ArrayUnion("carol"),
	}))

	doc, err := s.Get(ctx, "posts", "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, doc["likeCount"])
	assert.ElementsMatch(t, []any{"bob", "carol"}, doc["likes"])
	assert.EqualValues(t, 42, doc["touchedAt"])

	require.NoError(t, s.Update(ctx, "posts", "p1", store.Document{
		"likeCount": store.Inc(-1),
		"likes":     store.ArrayRemove("bob"),
	}))
	doc, err = s.Get(ctx, "posts", "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc["likeCount"])
	assert.ElementsMatch(t, []any{"carol"}, doc["likes"])
}

func TestDottedPathUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "posts", "p1", store.Document{
		"sharePlatformCounts": map[string]any{"copy": int64(0)},
	}, false))
	require.NoError(t, s.Update(ctx, "posts", "p1", store.Document{
		"sharePlatformCounts.copy":    store.Inc(1),
		"sharePlatformCounts.twitter": store.Inc(1),
	}))

	doc, err := s.Get(ctx, "posts", "p1")
	require.NoError(t, err)
	counts := doc["sharePlatformCounts"].(map[string]any)
	assert.EqualValues(t, 1, counts["copy"])
	assert.EqualValues(t, 1, counts["twitter"])
}

func TestQueryFilterOrderLimit(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i, score := range []int64{5, 1, 9, 3} {
		require.NoError(t, s.Put(ctx, "posts", string(rune('a'+i)), store.Document{
			"score":  score,
			"public": i != 1,
		}, false))
	}

	docs, err := s.Query(ctx, store.Query{
		Collection: "posts",
		Filters:    []store.Filter{store.Where("public", store.OpEq, true)},
		OrderBy:    []store.Order{store.Desc("score")},
		Limit:      2,
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.EqualValues(t, 9, docs[0]["score"])
	assert.EqualValues(t, 5, docs[1]["score"])
}

func TestQueryCursor(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Put(ctx, "posts", string(rune('a'+i)), store.Document{
			"createdOn": int64(i),
		}, false))
	}

	q := store.Query{
		Collection: "posts",
		OrderBy:    []store.Order{store.Desc("createdOn"), store.Desc("_id")},
		Limit:      2,
	}
	first, err := s.Query(ctx, q)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.EqualValues(t, 4, first[0]["createdOn"])

	q.StartAfter = []any{first[1]["createdOn"], first[1]["_id"]}
	second, err := s.Query(ctx, q)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.EqualValues(t, 2, second[0]["createdOn"])

	q.StartAfter = []any{int64(0), "a"}
	rest, err := s.Query(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestQueryInOperator(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "users", "u1", store.Document{"username": "alice"}, false))
	require.NoError(t, s.Put(ctx, "users", "u2", store.Document{"username": "bob"}, false))
	require.NoError(t, s.Put(ctx, "users", "u3", store.Document{"username": "carol"}, false))

	docs, err := s.Query(ctx, store.Query{
		Collection: "users",
		Filters:    []store.Filter{store.Where("username", store.OpIn, []string{"alice", "carol"})},
	})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestBatchAtomicity(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "users", "alice", store.Document{"followingCount": int64(0)}, false))
	require.NoError(t, s.Create(ctx, "edges", "alice_bob", store.Document{}))

	// The duplicate create fails validation, so the counter update must not
	// apply either.
	b := s.Batch()
	b.Update("users", "alice", store.Document{"followingCount": store.Inc(1)})
	b.Create("edges", "alice_bob", store.Document{})
	err := b.Commit(ctx)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	doc, err := s.Get(ctx, "users", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 0, doc["followingCount"])
}

func TestBatchAppliesAll(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "users", "alice", store.Document{"n": int64(0)}, false))

	b := s.Batch()
	b.Create("edges", "e1", store.Document{"k": "v"})
	b.Update("users", "alice", store.Document{"n": store.Inc(1)})
	b.Set("mirrors", "m1", store.Document{"k": "v"})
	require.NoError(t, b.Commit(ctx))

	_, err := s.Get(ctx, "edges", "e1")
	assert.NoError(t, err)
	_, err = s.Get(ctx, "mirrors", "m1")
	assert.NoError(t, err)
	doc, err := s.Get(ctx, "users", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc["n"])
}

func TestBatchSetThenUpdateSameKey(t *testing.T) {
	s := New()
	ctx := context.Background()

	// The set creates the document, so the update in the same batch must
	// see it as existing.
	b := s.Batch()
	b.Set("users", "alice", store.Document{"n": int64(0)})
	b.Update("users", "alice", store.Document{"n": store.Inc(1)})
	require.NoError(t, b.Commit(ctx))

	doc, err := s.Get(ctx, "users", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc["n"])
}

func TestSubscribe(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "posts", "p1", store.Document{"n": int64(1)}, false))

	var snapshots [][]store.Document
	sub, err := s.Subscribe(store.Query{Collection: "posts"}, func(docs []store.Document) {
		snapshots = append(snapshots, docs)
	}, func(err error) { t.Errorf("unexpected error: %v", err) })
	require.NoError(t, err)

	// Initial snapshot delivered before Subscribe returns.
	require.Len(t, snapshots, 1)
	assert.Len(t, snapshots[0], 1)

	require.NoError(t, s.Put(ctx, "posts", "p2", store.Document{"n": int64(2)}, false))
	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[1], 2)

	// Changes to other collections do not fire this listener.
	require.NoError(t, s.Put(ctx, "users", "u1", store.Document{}, false))
	assert.Len(t, snapshots, 2)

	sub.Unsubscribe()
	require.NoError(t, s.Put(ctx, "posts", "p3", store.Document{"n": int64(3)}, false))
	assert.Len(t, snapshots, 2)
}

func TestSubscribeSeesBatchOnce(t *testing.T) {
	s := New()
	ctx := context.Background()

	count := 0
	_, err := s.Subscribe(store.Query{Collection: "posts"}, func(docs []store.Document) {
		count++
	}, func(err error) { t.Errorf("unexpected error: %v", err) })
	require.NoError(t, err)
	require.Equal(t, 1, count)

	b := s.Batch()
	b.Create("posts", "p1", store.Document{})
	b.Create("posts", "p2", store.Document{})
	require.NoError(t, b.Commit(ctx))

	// One commit, one re-fire, regardless of how many ops touched the
	// collection.
	assert.Equal(t, 2, count)
}
