package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	Check(c *gin.Context)
	TestDB(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Health check
// @Description Reports which record store backend is serving and probes its dependencies
// @Tags Health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/health [get]
func (h *handler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Status(c.Request.Context()))
}

// @Summary Store diagnostics
// @Description Pings the record store and counts every collection
// @Tags Health
// @Produce json
// @Success 200 {object} DiagnosticsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/test-db [get]
func (h *handler) TestDB(c *gin.Context) {
	resp, err := h.service.Diagnostics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("TestDB: failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Status: "error", Error: "Database error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
