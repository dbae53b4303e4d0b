package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homease/home-services-backend/internal/auth"
	"github.com/homease/home-services-backend/internal/provider"
	"github.com/homease/home-services-backend/internal/pkg/request"
	"github.com/homease/home-services-backend/internal/pkg/response"
	"github.com/homease/home-services-backend/internal/user"
)

type Handler struct {
	service provider.Service
}

func NewHandler(service provider.Service) *Handler {
	return &Handler{service: service}
}

// currentProvider resolves the authenticated user's provider profile. Only
// accounts registered with the provider role have one.
func (h *Handler) currentProvider(c *gin.Context) (*provider.Provider, bool) {
	if user.Role(auth.GetUserRole(c)) != user.RoleProvider {
		c.JSON(http.StatusForbidden, gin.H{"error": "provider account required"})
		return nil, false
	}
	p, err := h.service.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return p, true
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProviderResponse(p))
}

func (h *Handler) GetAvailability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// With day and time the endpoint answers a point-in-time check instead
	// of listing the weekly schedule.
	if q.Day != nil || q.Time != "" {
		if q.Day == nil || q.Time == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "day and time must be supplied together"})
			return
		}
		minute, err := provider.ParseClock(q.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time, expected HH:MM"})
			return
		}

		available, err := h.service.IsAvailableAt(c.Request.Context(), uri.ID, *q.Day, minute)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"available": available})
		return
	}

	windows, err := h.service.ListAvailability(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"windows": NewAvailabilityResponse(windows)})
}

func (h *Handler) Me(c *gin.Context) {
	p, ok := h.currentProvider(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewProviderResponse(p))
}

func (h *Handler) SetAvailability(c *gin.Context) {
	p, ok := h.currentProvider(c)
	if !ok {
		return
	}

	var body SetAvailabilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inputs := make([]provider.WindowInput, len(body.Windows))
	for i, w := range body.Windows {
		inputs[i] = provider.WindowInput{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		}
	}

	windows, err := h.service.SetAvailability(c.Request.Context(), p.ID, inputs)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"windows": NewAvailabilityResponse(windows)})
}

func (h *Handler) UpdatePayoutAccount(c *gin.Context) {
	p, ok := h.currentProvider(c)
	if !ok {
		return
	}

	var body UpdatePayoutAccountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdatePayoutAccount(c.Request.Context(), p.ID, body.StripeAccountID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
