package health

import (
	"time"

	"portfolio/internal/utils"
)

type StatusResponse struct {
	Status      string          `json:"status" example:"ok"`
	Environment string          `json:"environment" example:"development"`
	Timestamp   time.Time       `json:"timestamp"`
	InMemoryDB  bool            `json:"inMemoryDb"`
	MongoDB     bool            `json:"mongodb"`
	Backend     string          `json:"backend" example:"mongo"`
	Services    []utils.Service `json:"services"`
}

type DiagnosticsResponse struct {
	Status      string           `json:"status" example:"success"`
	Message     string           `json:"message"`
	Backend     string           `json:"backend"`
	Collections map[string]int64 `json:"collections"`
	PingResult  map[string]int   `json:"ping_result"`
}

type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  string `json:"error"`
}
