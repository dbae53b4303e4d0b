package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	services := g.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/categories", h.ListCategories)
		services.GET("/:id", h.GetService)
		services.POST("", authMiddleware, h.CreateService)
	}
}
