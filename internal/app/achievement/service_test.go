package achievement

import (
	"context"
	"testing"
	"time"

	"portfolio/internal/app/user"
	"portfolio/internal/store"
	"portfolio/internal/store/memory"
	"portfolio/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var unlockTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*service, user.Service, store.Store) {
	t.Helper()
	s := memory.New()
	userSvc := user.NewService(user.NewRepository(s), utils.NewEventBus(), zap.NewNop())
	svc := NewService(NewRepository(s), userSvc, zap.NewNop()).(*service)
	svc.now = func() time.Time { return unlockTime }
	return svc, userSvc, s
}

func TestUnlock_Idempotent(t *testing.T) {
	svc, userSvc, s := newTestService(t)
	ctx := context.Background()
	u, err := userSvc.Register(ctx, "Alice")
	require.NoError(t, err)

	first, created, err := svc.Unlock(ctx, u.UDID, "explorer")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, u.UDID, first.UserUDID)
	assert.Equal(t, unlockTime, first.UnlockedAt)

	second, created, err := svc.Unlock(ctx, u.UDID, "explorer")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)

	n, err := s.Count(ctx, store.UserAchievements, store.Query{"user_udid": u.UDID, "achievement_id": "explorer"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUnlock_CleansUpDuplicates(t *testing.T) {
	svc, userSvc, s := newTestService(t)
	ctx := context.Background()
	u, err := userSvc.Register(ctx, "Bob")
	require.NoError(t, err)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.InsertOne(ctx, store.UserAchievements, store.Document{
			"user_udid":      u.UDID,
			"achievement_id": "chatter",
			"unlocked_at":    unlockTime.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	got, created, err := svc.Unlock(ctx, u.UDID, "chatter")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, ids[0], got.ID)

	left, err := s.FindMany(ctx, store.UserAchievements, store.Query{"user_udid": u.UDID}, store.FindOptions{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, ids[0], left[0].ID())
}

func TestUnlock_Validation(t *testing.T) {
	svc, userSvc, _ := newTestService(t)
	ctx := context.Background()
	u, err := userSvc.Register(ctx, "Carol")
	require.NoError(t, err)

	_, _, err = svc.Unlock(ctx, u.UDID, " ")
	assert.ErrorIs(t, err, ErrAchievementRequired)

	_, _, err = svc.Unlock(ctx, "ghost", "explorer")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestList(t *testing.T) {
	svc, userSvc, _ := newTestService(t)
	ctx := context.Background()
	u, err := userSvc.Register(ctx, "Dave")
	require.NoError(t, err)

	empty, err := svc.List(ctx, u.UDID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, code := range []string{"explorer", "chatter"} {
		_, _, err := svc.Unlock(ctx, u.UDID, code)
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, u.UDID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "explorer", got[0].AchievementID)
	assert.Equal(t, "chatter", got[1].AchievementID)

	_, err = svc.List(ctx, "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
