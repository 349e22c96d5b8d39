package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/nonbon/internal/services"
)

type Handler interface {
	HandleRequestMiddleware(c *gin.Context)

	HandleListItems(c *gin.Context)
	HandleListActiveItems(c *gin.Context)
	HandleGetRandomBacklogItem(c *gin.Context)
	HandleGetItem(c *gin.Context)
	HandleCreateItem(c *gin.Context)
	HandleSetItemStatus(c *gin.Context)

	HandleHealth(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	focus  services.FocusService
}

func New(
	logger zerolog.Logger,
	focusService services.FocusService,
) Handler {
	return &handlerImpl{
		logger: logger,
		focus:  focusService,
	}
}

// ItemRoutePrefixes lists the groups the item routes are served under.
// /api/focus is kept for clients of the first deployment.
var ItemRoutePrefixes = []string{"/items", "/api/focus"}

// Register mounts the middleware and all routes of h on router.
func Register(router gin.IRouter, h Handler) {
	router.Use(h.HandleRequestMiddleware)

	router.GET("/health", h.HandleHealth)

	for _, prefix := range ItemRoutePrefixes {
		items := router.Group(prefix)
		items.GET("", h.HandleListItems)
		items.POST("", h.HandleCreateItem)
		items.GET("/active", h.HandleListActiveItems)
		items.GET("/backlog/random", h.HandleGetRandomBacklogItem)
		items.GET("/:id", h.HandleGetItem)
		items.PUT("/:id/status", h.HandleSetItemStatus)
	}
}
