package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"portfolio/internal/store"
	"portfolio/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "portfolio",
				"POSTGRES_PASSWORD": "portfolio",
				"POSTGRES_DB":       "portfolio",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	return fmt.Sprintf("host=%s port=%s user=portfolio password=portfolio dbname=portfolio sslmode=disable", host, port.Port())
}

func TestPostgresStoreCompliance(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	s, err := Connect(ctx, dsn, 10*time.Second, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	storetest.Run(t, func(t *testing.T) store.Store {
		err := s.db.Exec("TRUNCATE " + strings.Join(store.Collections, ", ")).Error
		require.NoError(t, err)
		return s
	})
}

func TestPostgresStore_RejectsBadSortField(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	s, err := Connect(ctx, dsn, 10*time.Second, zap.NewNop())
	require.NoError(t, err)
	defer s.Close(ctx)

	_, err = s.FindMany(ctx, store.ChatMessages, store.Query{}, store.FindOptions{SortField: "x'; DROP TABLE users; --"})
	assert.Error(t, err)
}

func TestEncodeDecodeTimestamps(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 6000000, time.UTC)
	enc := encode(store.Document{"timestamp": ts, "user": "bob"})
	assert.Equal(t, "2025-01-02T03:04:05.006000Z", enc["timestamp"])

	doc := decode(row{ID: "abc", Doc: enc})
	assert.True(t, ts.Equal(doc.Time("timestamp")))
	assert.Equal(t, "bob", doc.String("user"))
	assert.Equal(t, "abc", doc.ID())
}

func TestConnect_EmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "", time.Second, zap.NewNop())
	assert.Error(t, err)
}
