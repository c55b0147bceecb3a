package presence

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	Heartbeat(c *gin.Context)
	GetActiveUsers(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{
		service: service,
		logger:  logger.Sugar(),
	}
}

// @Summary Presence heartbeat
// @Tags Presence
// @Accept json
// @Produce json
// @Param body body HeartbeatRequest true "Who is online"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} user.ErrorResponse
// @Failure 500 {object} user.ErrorResponse
// @Router /api/users/active [post]
func (h *handler) Heartbeat(c *gin.Context) {
	var req HeartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UDID and name are required"})
		return
	}

	err := h.service.Heartbeat(c.Request.Context(), req.UDID, req.Name)
	if errors.Is(err, ErrFieldsRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UDID and name are required"})
		return
	}
	if err != nil {
		h.logger.Errorw("Heartbeat: failed", "udid", req.UDID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success"})
}

// @Summary Online users
// @Description Users whose last heartbeat falls inside the presence window
// @Tags Presence
// @Produce json
// @Success 200 {array} ActiveUser
// @Failure 500 {object} user.ErrorResponse
// @Router /api/users/active [get]
func (h *handler) GetActiveUsers(c *gin.Context) {
	users, err := h.service.Online(c.Request.Context())
	if err != nil {
		h.logger.Errorw("GetActiveUsers: failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}
