package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	Register(c *gin.Context)
	GetUser(c *gin.Context)
	DeleteUser(c *gin.Context)
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

// @Summary Register user
// @Description Create a user with a unique display name and a server-issued udid
// @Tags User
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Display name"
// @Success 201 {object} User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/user [post]
func (h *handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("Register: invalid request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	u, err := h.service.Register(c.Request.Context(), req.Name)
	switch {
	case errors.Is(err, ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
	case errors.Is(err, ErrNameTaken):
		h.logger.Infow("Register: name taken", "name", req.Name)
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken. Please choose a different name."})
	case err != nil:
		h.logger.Errorw("Register: failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	default:
		c.JSON(http.StatusCreated, u)
	}
}

// @Summary Get user
// @Tags User
// @Produce json
// @Param udid path string true "User udid"
// @Success 200 {object} User
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/user/{udid} [get]
func (h *handler) GetUser(c *gin.Context) {
	udid := c.Param("udid")

	u, err := h.service.GetByUDID(c.Request.Context(), udid)
	if errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.logger.Errorw("GetUser: failed", "udid", udid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// @Summary Delete user
// @Description Delete the account together with its achievements and presence row
// @Tags User
// @Produce json
// @Param udid path string true "User udid"
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/user/{udid} [delete]
func (h *handler) DeleteUser(c *gin.Context) {
	udid := c.Param("udid")

	err := h.service.Delete(c.Request.Context(), udid)
	if errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.logger.Errorw("DeleteUser: failed", "udid", udid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Status: "success", Message: "User account deleted successfully"})
}
