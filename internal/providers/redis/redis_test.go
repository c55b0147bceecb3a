package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRedisProvider_JSONRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewRedisProvider(ctx, "redis://"+mr.Addr(), zap.NewNop(), time.Minute)
	require.NotNil(t, p)
	defer p.Close()

	p.SetJSON(ctx, "chat:list", payload{Name: "a", Count: 2}, 0)
	assert.True(t, mr.Exists("chat:list"))
	assert.Equal(t, time.Minute, mr.TTL("chat:list"))

	var got payload
	require.True(t, p.GetJSON(ctx, "chat:list", &got))
	assert.Equal(t, payload{Name: "a", Count: 2}, got)

	p.Del(ctx, "chat:list")
	assert.False(t, p.GetJSON(ctx, "chat:list", &got))
}

func TestRedisProvider_InvalidJSONIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewRedisProvider(ctx, mr.Addr(), zap.NewNop(), time.Minute)
	defer p.Close()
	require.NoError(t, mr.Set("broken", "{not json"))

	var got payload
	assert.False(t, p.GetJSON(ctx, "broken", &got))
}

func TestRedisProvider_NilIsDisabled(t *testing.T) {
	p := NewRedisProvider(context.Background(), "", zap.NewNop(), time.Minute)
	assert.Nil(t, p)

	var got payload
	assert.False(t, p.GetJSON(context.Background(), "k", &got))
	p.SetJSON(context.Background(), "k", payload{}, 0)
	p.Del(context.Background(), "k")
	p.Incr(context.Background(), "gen")
	_, ok := p.Generation(context.Background(), "gen")
	assert.False(t, ok)
	assert.NoError(t, p.Close())
}

func TestRedisProvider_Generation(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewRedisProvider(ctx, mr.Addr(), zap.NewNop(), time.Minute)
	require.NotNil(t, p)
	defer p.Close()

	gen, ok := p.Generation(ctx, "chat:gen")
	require.True(t, ok)
	assert.Zero(t, gen)

	p.Incr(ctx, "chat:gen")
	p.Incr(ctx, "chat:gen")
	gen, ok = p.Generation(ctx, "chat:gen")
	require.True(t, ok)
	assert.EqualValues(t, 2, gen)

	require.NoError(t, mr.Set("chat:gen", "not-a-number"))
	_, ok = p.Generation(ctx, "chat:gen")
	assert.False(t, ok)
}
