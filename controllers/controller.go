package controllers

import (
	"strconv"

	"github.com/business-nexus/backend/websocket"
	"github.com/gin-gonic/gin"
)

// Handler bundles the route handlers with the realtime hub they notify.
type Handler struct {
	Hub *websocket.Hub
}

// NewHandler creates the controller set around an injected hub.
func NewHandler(hub *websocket.Hub) *Handler {
	return &Handler{Hub: hub}
}

// pageParams reads page/limit query parameters with sane bounds.
func pageParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
