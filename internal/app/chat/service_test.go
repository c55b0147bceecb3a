package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"portfolio/internal/metrics"
	"portfolio/internal/providers/redis"
	"portfolio/internal/store"
	"portfolio/internal/store/memory"
	"portfolio/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

func newTestService(t *testing.T, repo Repository, redisP *redis.RedisProvider) *service {
	t.Helper()
	svc := NewService(repo, Config{Retention: 20, ReadLimit: 100, CacheTTL: time.Minute}, redisP, utils.NewEventBus(), zap.NewNop()).(*service)
	clock := &stepClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc.now = clock.Now
	return svc
}

func TestCreateMessage_RetentionKeepsNewest(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := newTestService(t, NewRepository(s), nil)
	before := testutil.ToFloat64(metrics.ChatMessagesEvicted)

	for i := 0; i < 25; i++ {
		_, err := svc.CreateMessage(ctx, CreateMessageRequest{User: "Bob", Message: fmt.Sprintf("m%02d", i)})
		require.NoError(t, err)

		n, err := s.Count(ctx, store.ChatMessages, store.Query{})
		require.NoError(t, err)
		assert.LessOrEqual(t, n, int64(20))
	}

	messages, err := svc.GetMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 20)
	for i, m := range messages {
		assert.Equal(t, fmt.Sprintf("m%02d", i+5), m.Message)
	}
	assert.Equal(t, before+5, testutil.ToFloat64(metrics.ChatMessagesEvicted))
}

func TestCreateMessage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(memory.New()), Config{}, nil, utils.NewEventBus(), zap.NewNop())
	start := time.Now().UTC().Truncate(time.Millisecond)

	created, err := svc.CreateMessage(ctx, CreateMessageRequest{User: "Bob", Message: "hi"})
	require.NoError(t, err)

	messages, err := svc.GetMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, created.ID, messages[0].ID)
	assert.Equal(t, "Bob", messages[0].User)
	assert.Equal(t, "hi", messages[0].Message)
	assert.False(t, messages[0].Timestamp.Before(start))
}

func TestCreateMessage_Validation(t *testing.T) {
	svc := newTestService(t, NewRepository(memory.New()), nil)

	for _, req := range []CreateMessageRequest{
		{User: "", Message: "hi"},
		{User: "Bob", Message: "   "},
		{UDID: "u-1"},
	} {
		_, err := svc.CreateMessage(context.Background(), req)
		assert.ErrorIs(t, err, ErrFieldsRequired)
	}
}

func TestGetMessages_ReadLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(memory.New()), Config{Retention: 10, ReadLimit: 3}, nil, utils.NewEventBus(), zap.NewNop()).(*service)
	svc.now = (&stepClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}).Now

	for i := 0; i < 5; i++ {
		_, err := svc.CreateMessage(ctx, CreateMessageRequest{User: "Bob", Message: fmt.Sprint(i)})
		require.NoError(t, err)
	}

	messages, err := svc.GetMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"2", "3", "4"}, []string{messages[0].Message, messages[1].Message, messages[2].Message})
}

type failingCount struct{ Repository }

func (failingCount) CountMessages(context.Context) (int64, error) {
	return 0, errors.New("count unavailable")
}

func TestCreateMessage_RetentionFailureStillStores(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc := newTestService(t, failingCount{NewRepository(s)}, nil)

	m, err := svc.CreateMessage(ctx, CreateMessageRequest{User: "Bob", Message: "hi"})
	require.NoError(t, err)

	_, err = s.FindOne(ctx, store.ChatMessages, store.Query{store.IDField: m.ID})
	assert.NoError(t, err)
}

func newCachedService(t *testing.T, repo Repository) (*service, *miniredis.Miniredis) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	mr := miniredis.RunT(t)
	redisP := redis.NewRedisProvider(ctx, mr.Addr(), zap.NewNop(), time.Minute)
	t.Cleanup(func() { redisP.Close() })
	return newTestService(t, repo, redisP), mr
}

func TestGetMessages_CachedUntilNextInsert(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	svc, mr := newCachedService(t, NewRepository(s))

	first, err := svc.CreateMessage(ctx, CreateMessageRequest{User: "Bob", Message: "one"})
	require.NoError(t, err)

	messages, err := svc.GetMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, mr.Exists(svc.listKey(1)))

	// Served from cache: a change behind the service's back is not visible.
	_, err = s.DeleteOne(ctx, store.ChatMessages, store.Query{store.IDField: first.ID})
	require.NoError(t, err)
	messages, err = svc.GetMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "one", messages[0].Message)
	assert.True(t, first.Timestamp.Equal(messages[0].Timestamp))

	_, err = svc.CreateMessage(ctx, CreateMessageRequest{User: "Bob", Message: "two"})
	require.NoError(t, err)
	gen, err := mr.Get(svc.genKey)
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
	assert.False(t, mr.Exists(svc.listKey(2)))

	messages, err = svc.GetMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "two", messages[0].Message)
}

// pausedRead holds the first latest-messages read after it has hit the store.
type pausedRead struct {
	Repository
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func (p *pausedRead) GetLatestMessages(ctx context.Context, limit int64) ([]*Message, error) {
	messages, err := p.Repository.GetLatestMessages(ctx, limit)
	p.once.Do(func() {
		close(p.read)
		<-p.release
	})
	return messages, err
}

func TestGetMessages_SlowReadDoesNotHideNewerInsert(t *testing.T) {
	ctx := context.Background()
	repo := &pausedRead{
		Repository: NewRepository(memory.New()),
		read:       make(chan struct{}),
		release:    make(chan struct{}),
	}
	svc, _ := newCachedService(t, repo)

	done := make(chan []*Message)
	go func() {
		messages, err := svc.GetMessages(ctx)
		assert.NoError(t, err)
		done <- messages
	}()

	<-repo.read
	created, err := svc.CreateMessage(ctx, CreateMessageRequest{User: "Bob", Message: "hi"})
	require.NoError(t, err)
	close(repo.release)
	assert.Empty(t, <-done)

	messages, err := svc.GetMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, created.ID, messages[0].ID)
	assert.Equal(t, "hi", messages[0].Message)
}

func TestGetMessages_RedisDownReadsStore(t *testing.T) {
	ctx := context.Background()
	svc, mr := newCachedService(t, NewRepository(memory.New()))
	mr.Close()

	_, err := svc.CreateMessage(ctx, CreateMessageRequest{User: "Bob", Message: "hi"})
	require.NoError(t, err)

	messages, err := svc.GetMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Message)
}

func TestCreateMessage_PublishesEvent(t *testing.T) {
	bus := utils.NewEventBus()
	svc := NewService(NewRepository(memory.New()), Config{}, nil, bus, zap.NewNop())

	m, err := svc.CreateMessage(context.Background(), CreateMessageRequest{User: "Bob", Message: "hi", UDID: "u-1"})
	require.NoError(t, err)

	e := <-bus.SubscribeCh()
	assert.Equal(t, utils.EventChatMessageCreated, e.Event)
	assert.Equal(t, m, e.Data)
}
