package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homease/home-services-backend/internal/auth"
	"github.com/homease/home-services-backend/internal/payment"
	"github.com/homease/home-services-backend/internal/pkg/response"
	"github.com/homease/home-services-backend/internal/user"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

func actorFrom(c *gin.Context) payment.Actor {
	return payment.Actor{
		UserID: auth.GetUserID(c),
		Role:   user.Role(auth.GetUserRole(c)),
	}
}

func (h *Handler) CreateIntent(c *gin.Context) {
	var body CreateIntentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CreateIntent(c.Request.Context(), actorFrom(c), body.BookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewIntentResponse(result))
}

func (h *Handler) Confirm(c *gin.Context) {
	var body ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.Confirm(c.Request.Context(), actorFrom(c), body.PaymentIntentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTransactionResponse(t))
}
