package memory_test

import (
	"context"
	"testing"

	"portfolio/internal/store"
	"portfolio/internal/store/memory"
	"portfolio/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return memory.New()
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	doc := store.Document{"name": "Alice"}
	_, err := s.InsertOne(ctx, store.Users, doc)
	require.NoError(t, err)
	doc["name"] = "mutated"
	assert.NotContains(t, doc, store.IDField)

	got, err := s.FindOne(ctx, store.Users, store.Query{"name": "Alice"})
	require.NoError(t, err)
	got["name"] = "changed"

	again, err := s.FindOne(ctx, store.Users, store.Query{store.IDField: got.ID()})
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.String("name"))
}

func TestMemoryStore_Sizes(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.InsertOne(ctx, store.ChatMessages, store.Document{"message": "hi"})
	require.NoError(t, err)

	sizes := s.Sizes()
	assert.Equal(t, 1, sizes[store.ChatMessages])
	assert.Equal(t, 0, sizes[store.Users])
	assert.Len(t, sizes, len(store.Collections))
	assert.False(t, store.HasNativeTTL(s))
}

func TestMemoryStore_DeleteKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	var ids []string
	for _, m := range []string{"a", "b", "c", "d"} {
		id, err := s.InsertOne(ctx, store.ChatMessages, store.Document{"message": m})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := s.DeleteOne(ctx, store.ChatMessages, store.Query{store.IDField: ids[1]})
	require.NoError(t, err)

	got, err := s.FindMany(ctx, store.ChatMessages, store.Query{}, store.FindOptions{})
	require.NoError(t, err)
	var order []string
	for _, d := range got {
		order = append(order, d.String("message"))
	}
	assert.Equal(t, []string{"a", "c", "d"}, order)
}
