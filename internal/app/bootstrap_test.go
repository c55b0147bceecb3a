package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		Env:            "test",
		StoreDriver:    "mongo",
		AllowedOrigins: []string{"*"},
		ChatRetention:  20,
		ChatReadLimit:  100,
		PresenceWindow: 5 * time.Minute,
	}
	conn := &db.Connection{Store: memory.New(), Driver: "mongo", Fallback: true}
	return NewApplication(ctx, cfg, zap.NewNop(), conn, nil)
}

func call(a *Application, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Router.Engine.ServeHTTP(w, req)
	return w
}

func TestApplication_Health(t *testing.T) {
	a := newTestApp(t)

	w := call(a, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["inMemoryDb"])
	assert.Equal(t, false, resp["mongodb"])
}

func TestApplication_Preflight(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat/messages", nil)
	req.Header.Set("Origin", "https://ultrawavelet.me")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	a.Router.Engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://ultrawavelet.me", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestApplication_AccountFlow(t *testing.T) {
	a := newTestApp(t)

	w := call(a, http.MethodPost, "/api/user", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var u struct {
		UDID string `json:"udid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))

	w = call(a, http.MethodPost, "/api/user/"+u.UDID+"/achievements", `{"achievement_id":"explorer"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = call(a, http.MethodPost, "/api/users/active", fmt.Sprintf(`{"udid":%q,"name":"Alice"}`, u.UDID))
	assert.Equal(t, http.StatusOK, w.Code)
	w = call(a, http.MethodPost, "/api/chat/messages", fmt.Sprintf(`{"user":"Alice","message":"hi","udid":%q}`, u.UDID))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = call(a, http.MethodGet, "/api/users/active", "")
	assert.JSONEq(t, fmt.Sprintf(`[{"udid":%q,"name":"Alice"}]`, u.UDID), w.Body.String())

	w = call(a, http.MethodDelete, "/api/user/"+u.UDID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(a, http.MethodGet, "/api/users/active", "")
	assert.JSONEq(t, `[]`, w.Body.String())
	w = call(a, http.MethodGet, "/api/user/"+u.UDID+"/achievements", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(a, http.MethodGet, "/api/chat/messages", "")
	var messages []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, u.UDID, messages[0]["udid"])
}

func TestApplication_ChatRetention(t *testing.T) {
	a := newTestApp(t)

	for i := 0; i < 23; i++ {
		w := call(a, http.MethodPost, "/api/chat/messages", fmt.Sprintf(`{"user":"Bob","message":"m%02d"}`, i))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := call(a, http.MethodGet, "/api/chat/messages", "")
	require.Equal(t, http.StatusOK, w.Code)
	var messages []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	require.Len(t, messages, 20)
	assert.Equal(t, "m03", messages[0]["message"])
	assert.Equal(t, "m22", messages[19]["message"])
}

func TestApplication_OpsEndpoints(t *testing.T) {
	a := newTestApp(t)
	call(a, http.MethodGet, "/api/health", "")

	w := call(a, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portfolio_http_requests_total")

	w = call(a, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/chat/messages")

	w = call(a, http.MethodGet, "/api/test-db", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
