package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homease/home-services-backend/internal/auth"
	"github.com/homease/home-services-backend/internal/catalog"
	"github.com/homease/home-services-backend/internal/provider"
	"github.com/homease/home-services-backend/internal/pkg/request"
	"github.com/homease/home-services-backend/internal/pkg/response"
	"github.com/homease/home-services-backend/internal/user"
)

type Handler struct {
	service     catalog.CatalogService
	providerSvc provider.Service
}

func NewHandler(service catalog.CatalogService, providerSvc provider.Service) *Handler {
	return &Handler{service: service, providerSvc: providerSvc}
}

func (h *Handler) ListCategories(c *gin.Context) {
	nodes, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CategoryResponse, len(nodes))
	for i, n := range nodes {
		items[i] = NewCategoryResponse(n)
	}
	c.JSON(http.StatusOK, gin.H{"categories": items})
}

func (h *Handler) ListServices(c *gin.Context) {
	var query ListServicesRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	services, err := h.service.ListServices(c.Request.Context(), query.CategoryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ServiceResponse, len(services))
	for i, s := range services {
		items[i] = NewServiceResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"services": items})
}

func (h *Handler) GetService(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	svc, err := h.service.GetServiceByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(svc))
}

func (h *Handler) CreateService(c *gin.Context) {
	if user.Role(auth.GetUserRole(c)) != user.RoleProvider {
		c.JSON(http.StatusForbidden, gin.H{"error": "provider account required"})
		return
	}

	p, err := h.providerSvc.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	var body CreateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), p.ID, catalog.CreateServiceInput{
		CategoryID:      body.CategoryID,
		Name:            body.Name,
		Description:     body.Description,
		BasePrice:       body.BasePrice,
		DurationMinutes: body.DurationMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewServiceResponse(svc))
}
