package health

import (
	"context"
	"fmt"

	"portfolio/internal/db"
	"portfolio/internal/store"
	"portfolio/internal/utils"
)

type Service interface {
	Status(ctx context.Context) StatusResponse
	Diagnostics(ctx context.Context) (*DiagnosticsResponse, error)
}

type service struct {
	conn    *db.Connection
	checker *utils.HealthChecker
	env     string
}

func NewService(conn *db.Connection, checker *utils.HealthChecker, env string) Service {
	return &service{conn: conn, checker: checker, env: env}
}

// Status never fails: a degraded dependency shows up in Services only.
func (s *service) Status(ctx context.Context) StatusResponse {
	checked := s.checker.Check(ctx)
	backend := s.conn.Store.Backend()
	return StatusResponse{
		Status:      "ok",
		Environment: s.env,
		Timestamp:   checked.Timestamp,
		InMemoryDB:  s.conn.InMemory(),
		MongoDB:     backend == "mongo",
		Backend:     backend,
		Services:    checked.Services,
	}
}

func (s *service) Diagnostics(ctx context.Context) (*DiagnosticsResponse, error) {
	st := s.conn.Store
	if err := st.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", st.Backend(), err)
	}

	collections := make(map[string]int64, len(store.Collections))
	for _, name := range store.Collections {
		n, err := st.Count(ctx, name, store.Query{})
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		collections[name] = n
	}

	message := fmt.Sprintf("%s connection is working", st.Backend())
	if s.conn.InMemory() {
		message = "Using in-memory database fallback"
	}

	return &DiagnosticsResponse{
		Status:      "success",
		Message:     message,
		Backend:     st.Backend(),
		Collections: collections,
		PingResult:  map[string]int{"ok": 1},
	}, nil
}
