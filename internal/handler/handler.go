package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-server/internal/config"
	"social-server/internal/interfaces"
	"social-server/internal/service"
)

// Handler exposes the user directory and follow graph over HTTP.
type Handler struct {
	directory service.UserDirectory
	follows   service.FollowGraph
	hasher    interfaces.IdentityHasher
	cfg       *config.Config
	logger    *zap.Logger
}

func NewHandler(directory service.UserDirectory, follows service.FollowGraph, hasher interfaces.IdentityHasher, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		directory: directory,
		follows:   follows,
		hasher:    hasher,
		cfg:       cfg,
		logger:    logger.Named("Handler"),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/auth")
	{
		api.POST("/register", h.register)
		api.POST("/follow", h.toggleFollow)

		users := api.Group("/users/:username")
		{
			users.GET("", h.getUser)
			users.POST("/metadata", h.editMetadata)
			users.POST("/ban", h.banUser)
			users.GET("/followers", h.listFollowers)
			users.GET("/following", h.listFollowing)
		}
	}
}
