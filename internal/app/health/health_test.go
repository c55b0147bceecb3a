package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio/internal/db"
	"portfolio/internal/store"
	"portfolio/internal/store/memory"
	"portfolio/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenStore struct{ *memory.Store }

func (brokenStore) Ping(context.Context) error { return errors.New("connection reset") }

func newEngine(conn *db.Connection) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(conn, &utils.HealthChecker{Store: conn.Store}, "test")
	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), NewHandler(svc, zap.NewNop()))
	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth_ReportsFallback(t *testing.T) {
	engine := newEngine(&db.Connection{Store: memory.New(), Driver: "mongo", Fallback: true})

	w := get(engine, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "test", resp["environment"])
	assert.Equal(t, true, resp["inMemoryDb"])
	assert.Equal(t, false, resp["mongodb"])
	assert.Equal(t, "memory", resp["backend"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestHealth_StaysOKWhenStoreDown(t *testing.T) {
	engine := newEngine(&db.Connection{Store: brokenStore{memory.New()}})

	w := get(engine, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "down", resp.Services[0].Status)
}

func TestTestDB_CountsCollections(t *testing.T) {
	s := memory.New()
	_, err := s.InsertOne(context.Background(), store.ChatMessages, store.Document{"user": "System", "message": "hi"})
	require.NoError(t, err)
	engine := newEngine(&db.Connection{Store: s, Fallback: true})

	w := get(engine, "/api/test-db")
	require.Equal(t, http.StatusOK, w.Code)

	var resp DiagnosticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Using in-memory database fallback", resp.Message)
	assert.EqualValues(t, 1, resp.Collections[store.ChatMessages])
	assert.EqualValues(t, 0, resp.Collections[store.Users])
	assert.Len(t, resp.Collections, len(store.Collections))
	assert.Equal(t, 1, resp.PingResult["ok"])
}

func TestTestDB_Failure(t *testing.T) {
	engine := newEngine(&db.Connection{Store: brokenStore{memory.New()}})

	w := get(engine, "/api/test-db")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "connection reset")
}
