package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, wh *WebhookHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/payments")

	group.POST("/create-intent", authMiddleware, h.CreateIntent)
	group.POST("/confirm", authMiddleware, h.Confirm)

	// Signature-verified, so outside the auth middleware.
	group.POST("/webhook", wh.Handle)
}
