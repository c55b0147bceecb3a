package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	CreateMessage(c *gin.Context)
	GetMessages(c *gin.Context)
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

// @Summary Post chat message
// @Description Store a message; the oldest messages beyond the retention ceiling are evicted
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body CreateMessageRequest true "Message"
// @Success 201 {object} Message
// @Failure 400 {object} user.ErrorResponse
// @Failure 500 {object} user.ErrorResponse
// @Router /api/chat/messages [post]
func (h *handler) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("CreateMessage: invalid request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "User and message are required"})
		return
	}

	m, err := h.service.CreateMessage(c.Request.Context(), req)
	if errors.Is(err, ErrFieldsRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User and message are required"})
		return
	}
	if err != nil {
		h.logger.Errorw("CreateMessage: failed", "user", req.User, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// @Summary List chat messages
// @Description Most recent messages in chronological order
// @Tags Chat
// @Produce json
// @Success 200 {array} Message
// @Failure 500 {object} user.ErrorResponse
// @Router /api/chat/messages [get]
func (h *handler) GetMessages(c *gin.Context) {
	messages, err := h.service.GetMessages(c.Request.Context())
	if err != nil {
		h.logger.Errorw("GetMessages: failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
