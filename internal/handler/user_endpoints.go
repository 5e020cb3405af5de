package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"social-server/internal/models"
)

// @Summary Register a new account
// @Description Creates an account and returns its one-time unhashed id
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration data"
// @Success 201 {object} registerResponse
// @Failure 400 {object} models.ErrorResponse "Invalid username"
// @Failure 409 {object} models.ErrorResponse "Username already taken"
// @Router /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request data: " + err.Error()}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	unhashedID, hashedID, err := h.directory.Create(c.Request.Context(), req.Username)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()

	c.JSON(http.StatusCreated, registerResponse{
		Username: req.Username,
		ID:       unhashedID,
		HashedID: hashedID,
	})
}

// @Summary Get a public account record
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} userResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /api/auth/users/{username} [get]
func (h *Handler) getUser(c *gin.Context) {
	user, err := h.directory.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse{
		Username:  user.Username,
		HashedID:  user.HashedID,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		Metadata: userMetadataPayload{
			About:     user.Metadata.About,
			AvatarURL: user.Metadata.AvatarURL,
			Nickname:  user.Metadata.Nickname,
		},
	})
}

// @Summary Replace account metadata
// @Description Replaces the metadata blob; a supplied secondary token is hashed before storage
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body editMetadataRequest true "New metadata"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse "Invalid request data"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /api/auth/users/{username}/metadata [post]
func (h *Handler) editMetadata(c *gin.Context) {
	var req editMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request data: " + err.Error()}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	metadata := models.UserMetadata{
		About:     req.About,
		AvatarURL: req.AvatarURL,
		Nickname:  req.Nickname,
	}
	// Only the hash of a secondary token ever reaches storage.
	if req.SecondaryToken != nil {
		hashed := h.hasher.Hash(*req.SecondaryToken)
		metadata.SecondaryToken = &hashed
	}

	if err := h.directory.EditMetadata(c.Request.Context(), c.Param("username"), metadata); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// @Summary Ban an account
// @Description Sets the role to banned; privileged accounts cannot be banned
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse "Account is privileged"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /api/auth/users/{username}/ban [post]
func (h *Handler) banUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.directory.Ban(c.Request.Context(), username); err != nil {
		handleServiceError(c, err)
		return
	}

	bansTotal.Inc()

	c.JSON(http.StatusOK, gin.H{
		"status": "banned",
		"role":   string(models.RoleBanned),
	})
}
