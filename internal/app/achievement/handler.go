package achievement

import (
	"errors"
	"net/http"

	"portfolio/internal/app/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	GetAchievements(c *gin.Context)
	UnlockAchievement(c *gin.Context)
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

// @Summary List achievements
// @Tags Achievement
// @Produce json
// @Param udid path string true "User udid"
// @Success 200 {array} Achievement
// @Failure 404 {object} user.ErrorResponse
// @Failure 500 {object} user.ErrorResponse
// @Router /api/user/{udid}/achievements [get]
func (h *handler) GetAchievements(c *gin.Context) {
	udid := c.Param("udid")

	achievements, err := h.service.List(c.Request.Context(), udid)
	if errors.Is(err, user.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.logger.Errorw("GetAchievements: failed", "udid", udid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, achievements)
}

// @Summary Unlock achievement
// @Description Idempotent: an already unlocked achievement is returned with 200
// @Tags Achievement
// @Accept json
// @Produce json
// @Param udid path string true "User udid"
// @Param body body UnlockRequest true "Achievement code"
// @Success 200 {object} Achievement
// @Success 201 {object} Achievement
// @Failure 400 {object} user.ErrorResponse
// @Failure 404 {object} user.ErrorResponse
// @Failure 500 {object} user.ErrorResponse
// @Router /api/user/{udid}/achievements [post]
func (h *handler) UnlockAchievement(c *gin.Context) {
	udid := c.Param("udid")

	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("UnlockAchievement: invalid request", "udid", udid, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Achievement ID is required"})
		return
	}

	a, created, err := h.service.Unlock(c.Request.Context(), udid, req.AchievementID)
	switch {
	case errors.Is(err, ErrAchievementRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Achievement ID is required"})
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case err != nil:
		h.logger.Errorw("UnlockAchievement: failed", "udid", udid, "achievement_id", req.AchievementID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	case created:
		c.JSON(http.StatusCreated, a)
	default:
		c.JSON(http.StatusOK, a)
	}
}
