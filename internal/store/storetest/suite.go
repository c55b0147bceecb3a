package storetest

import (
	"context"
	"testing"
	"time"

	"portfolio/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises the record store contract against one backend. makeStore must
// return an empty, isolated store every time it is called.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("InsertAndFindOne", func(t *testing.T) {
		s := makeStore(t)

		id, err := s.InsertOne(ctx, store.Users, store.Document{"name": "Alice", "udid": "u-1", "created_at": base})
		require.NoError(t, err)
		assert.Len(t, id, 24)

		got, err := s.FindOne(ctx, store.Users, store.Query{"udid": "u-1"})
		require.NoError(t, err)
		assert.Equal(t, id, got.ID())
		assert.Equal(t, "Alice", got.String("name"))
		assert.True(t, base.Equal(got.Time("created_at")))

		byID, err := s.FindOne(ctx, store.Users, store.Query{store.IDField: id})
		require.NoError(t, err)
		assert.Equal(t, "u-1", byID.String("udid"))
	})

	t.Run("FindOneNotFound", func(t *testing.T) {
		s := makeStore(t)

		_, err := s.FindOne(ctx, store.Users, store.Query{"udid": "missing"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("QueryMatchesAllFields", func(t *testing.T) {
		s := makeStore(t)

		_, err := s.InsertOne(ctx, store.UserAchievements, store.Document{"user_udid": "u-1", "achievement_id": "a"})
		require.NoError(t, err)
		_, err = s.InsertOne(ctx, store.UserAchievements, store.Document{"user_udid": "u-1", "achievement_id": "b"})
		require.NoError(t, err)
		_, err = s.InsertOne(ctx, store.UserAchievements, store.Document{"user_udid": "u-2", "achievement_id": "a"})
		require.NoError(t, err)

		n, err := s.Count(ctx, store.UserAchievements, store.Query{"user_udid": "u-1", "achievement_id": "a"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = s.Count(ctx, store.UserAchievements, store.Query{"user_udid": "u-1"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		n, err = s.Count(ctx, store.UserAchievements, store.Query{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)

		n, err = s.Count(ctx, store.UserAchievements, store.Query{"missing_field": "a"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})

	t.Run("FindManySortAndLimit", func(t *testing.T) {
		s := makeStore(t)

		for i, offset := range []int{3, 1, 4, 2, 0} {
			_, err := s.InsertOne(ctx, store.ChatMessages, store.Document{
				"user":      "bob",
				"message":   string(rune('a' + i)),
				"timestamp": base.Add(time.Duration(offset) * time.Second),
			})
			require.NoError(t, err)
		}

		asc, err := s.FindMany(ctx, store.ChatMessages, store.Query{}, store.FindOptions{SortField: "timestamp", Limit: 3})
		require.NoError(t, err)
		require.Len(t, asc, 3)
		assert.Equal(t, []string{"e", "b", "d"}, messages(asc))

		desc, err := s.FindMany(ctx, store.ChatMessages, store.Query{}, store.FindOptions{SortField: "timestamp", SortDescending: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "d", "b", "e"}, messages(desc))

		natural, err := s.FindMany(ctx, store.ChatMessages, store.Query{"user": "bob"}, store.FindOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, messages(natural))

		none, err := s.FindMany(ctx, store.ChatMessages, store.Query{"user": "nobody"}, store.FindOptions{})
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("SortTiesFollowInsertionOrder", func(t *testing.T) {
		s := makeStore(t)

		for _, m := range []string{"first", "second", "third"} {
			_, err := s.InsertOne(ctx, store.ChatMessages, store.Document{"message": m, "timestamp": base})
			require.NoError(t, err)
		}
		got, err := s.FindMany(ctx, store.ChatMessages, store.Query{}, store.FindOptions{SortField: "timestamp", Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, messages(got))

		desc, err := s.FindMany(ctx, store.ChatMessages, store.Query{}, store.FindOptions{SortField: "timestamp", SortDescending: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"third", "second", "first"}, messages(desc))
	})

	t.Run("UpdateOneExisting", func(t *testing.T) {
		s := makeStore(t)

		id, err := s.InsertOne(ctx, store.ActiveUsers, store.Document{"udid": "u-1", "name": "old", "last_active": base})
		require.NoError(t, err)

		later := base.Add(time.Minute)
		res, err := s.UpdateOne(ctx, store.ActiveUsers, store.Query{"udid": "u-1"}, store.Document{"name": "new", "last_active": later}, true)
		require.NoError(t, err)
		assert.True(t, res.Matched)
		assert.Empty(t, res.UpsertedID)

		got, err := s.FindOne(ctx, store.ActiveUsers, store.Query{"udid": "u-1"})
		require.NoError(t, err)
		assert.Equal(t, id, got.ID())
		assert.Equal(t, "new", got.String("name"))
		assert.True(t, later.Equal(got.Time("last_active")))

		n, err := s.Count(ctx, store.ActiveUsers, store.Query{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("UpdateOneUpsert", func(t *testing.T) {
		s := makeStore(t)

		res, err := s.UpdateOne(ctx, store.ActiveUsers, store.Query{"udid": "u-9"}, store.Document{"name": "Zed", "last_active": base}, true)
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.Len(t, res.UpsertedID, 24)

		got, err := s.FindOne(ctx, store.ActiveUsers, store.Query{"udid": "u-9"})
		require.NoError(t, err)
		assert.Equal(t, res.UpsertedID, got.ID())
		assert.Equal(t, "Zed", got.String("name"))
	})

	t.Run("UpdateOneNoUpsert", func(t *testing.T) {
		s := makeStore(t)

		res, err := s.UpdateOne(ctx, store.ActiveUsers, store.Query{"udid": "ghost"}, store.Document{"name": "x"}, false)
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.Empty(t, res.UpsertedID)

		n, err := s.Count(ctx, store.ActiveUsers, store.Query{})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("DeleteOneAndMany", func(t *testing.T) {
		s := makeStore(t)

		for i := 0; i < 3; i++ {
			_, err := s.InsertOne(ctx, store.UserAchievements, store.Document{"user_udid": "u-1", "achievement_id": "dup"})
			require.NoError(t, err)
		}
		_, err := s.InsertOne(ctx, store.UserAchievements, store.Document{"user_udid": "u-2", "achievement_id": "dup"})
		require.NoError(t, err)

		n, err := s.DeleteOne(ctx, store.UserAchievements, store.Query{"user_udid": "u-1"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = s.DeleteMany(ctx, store.UserAchievements, store.Query{"user_udid": "u-1"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		n, err = s.DeleteOne(ctx, store.UserAchievements, store.Query{"user_udid": "u-1"})
		require.NoError(t, err)
		assert.Zero(t, n)

		left, err := s.Count(ctx, store.UserAchievements, store.Query{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, left)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		s := makeStore(t)

		id, err := s.InsertOne(ctx, store.Feedback, store.Document{"name": "n", "email": "e", "message": "m", "rating": 4})
		require.NoError(t, err)

		n, err := s.DeleteOne(ctx, store.Feedback, store.Query{store.IDField: id})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		_, err = s.FindOne(ctx, store.Feedback, store.Query{store.IDField: id})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("NumbersRoundTrip", func(t *testing.T) {
		s := makeStore(t)

		_, err := s.InsertOne(ctx, store.Feedback, store.Document{"name": "n", "rating": 5})
		require.NoError(t, err)
		got, err := s.FindOne(ctx, store.Feedback, store.Query{"name": "n"})
		require.NoError(t, err)
		assert.Equal(t, 5, got.Int("rating"))
	})

	t.Run("DuplicateID", func(t *testing.T) {
		s := makeStore(t)

		id := store.NewID()
		_, err := s.InsertOne(ctx, store.Users, store.Document{store.IDField: id, "name": "a"})
		require.NoError(t, err)
		_, err = s.InsertOne(ctx, store.Users, store.Document{store.IDField: id, "name": "b"})
		assert.ErrorIs(t, err, store.ErrDuplicateID)
	})

	t.Run("UnknownCollection", func(t *testing.T) {
		s := makeStore(t)

		_, err := s.InsertOne(ctx, "sessions", store.Document{"a": 1})
		assert.ErrorIs(t, err, store.ErrUnknownCollection)
		_, err = s.FindOne(ctx, "sessions", store.Query{})
		assert.ErrorIs(t, err, store.ErrUnknownCollection)
		_, err = s.FindMany(ctx, "sessions", store.Query{}, store.FindOptions{})
		assert.ErrorIs(t, err, store.ErrUnknownCollection)
		_, err = s.UpdateOne(ctx, "sessions", store.Query{}, store.Document{"a": 1}, true)
		assert.ErrorIs(t, err, store.ErrUnknownCollection)
		_, err = s.DeleteOne(ctx, "sessions", store.Query{})
		assert.ErrorIs(t, err, store.ErrUnknownCollection)
		_, err = s.DeleteMany(ctx, "sessions", store.Query{})
		assert.ErrorIs(t, err, store.ErrUnknownCollection)
		_, err = s.Count(ctx, "sessions", store.Query{})
		assert.ErrorIs(t, err, store.ErrUnknownCollection)
	})

	t.Run("Ping", func(t *testing.T) {
		s := makeStore(t)
		assert.NoError(t, s.Ping(ctx))
	})
}

func messages(docs []store.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.String("message"))
	}
	return out
}
