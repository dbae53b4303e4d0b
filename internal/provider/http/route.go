package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/providers")

	// Public: customers browse provider profiles and availability.
	group.GET("/:id", h.Get)
	group.GET("/:id/availability", h.GetAvailability)

	group.GET("/me", authMiddleware, h.Me)
	group.PUT("/availability", authMiddleware, h.SetAvailability)
	group.PUT("/payout-account", authMiddleware, h.UpdatePayoutAccount)
}
