package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-server/internal/models"
)

// @Summary Toggle a follow edge
// @Description Creates the edge when absent, removes it when present
// @Tags follows
// @Accept json
// @Produce json
// @Param request body followRequest true "Edge endpoints"
// @Success 200 {object} followResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request data or self-follow"
// @Failure 404 {object} models.ErrorResponse "Either user not found"
// @Router /api/auth/follow [post]
func (h *Handler) toggleFollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request data: " + err.Error()}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	following, err := h.follows.Toggle(c.Request.Context(), req.User, req.IsFollowing)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := "not_following"
	if following {
		status = "following"
	}
	followTogglesTotal.WithLabelValues(status).Inc()

	c.JSON(http.StatusOK, followResponse{Status: status})
}

// @Summary List accounts following a user
// @Tags follows
// @Produce json
// @Param username path string true "Username"
// @Param offset query int false "Page offset"
// @Success 200 {object} followPageResponse
// @Router /api/auth/users/{username}/followers [get]
func (h *Handler) listFollowers(c *gin.Context) {
	username := c.Param("username")
	offset := parseOffset(c)

	edges, err := h.follows.ListFollowers(c.Request.Context(), username, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	count, err := h.follows.CountFollowers(c.Request.Context(), username)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, followPageResponse{Edges: edges, Offset: offset, Count: count})
}

// @Summary List accounts a user follows
// @Tags follows
// @Produce json
// @Param username path string true "Username"
// @Param offset query int false "Page offset"
// @Success 200 {object} followPageResponse
// @Router /api/auth/users/{username}/following [get]
func (h *Handler) listFollowing(c *gin.Context) {
	username := c.Param("username")
	offset := parseOffset(c)

	edges, err := h.follows.ListFollowing(c.Request.Context(), username, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	count, err := h.follows.CountFollowing(c.Request.Context(), username)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, followPageResponse{Edges: edges, Offset: offset, Count: count})
}

func parseOffset(c *gin.Context) int {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}
