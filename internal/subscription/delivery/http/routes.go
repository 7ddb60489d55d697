package http

import (
	"github.com/gin-gonic/gin"

	"repo-relay/internal/middleware"
)

// RegisterRoutes maps the operator API. Every route requires the operator token.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	subs := rg.Group("/subscriptions", mw.Auth())
	{
		subs.GET("", h.List)
		subs.GET("/detail", h.Detail)
		subs.POST("", h.Link)
		subs.PUT("/colors", h.SetColors)
	}

	channels := rg.Group("/channel-repos", mw.Auth())
	{
		channels.GET("", h.GetChannelRepo)
		channels.PUT("", h.SetChannelRepo)
	}
}
