package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/homease/home-services-backend/internal/payment"
)

const maxWebhookBody = 1 << 20 // 1 MiB hard cap

// WebhookHandler receives Stripe events. The endpoint carries no JWT auth;
// the signature check is the authentication.
type WebhookHandler struct {
	service   payment.Service
	secret    string
	tolerance time.Duration
	logger    *zap.Logger
}

func NewWebhookHandler(service payment.Service, secret string, tolerance time.Duration, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service:   service,
		secret:    secret,
		tolerance: tolerance,
		logger:    logger,
	}
}

func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	evt, err := webhook.ConstructEventWithTolerance(body, sigHeader, h.secret, h.tolerance)
	if err != nil {
		h.logger.Warn("rejected webhook with invalid signature", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch evt.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(evt.Data.Raw, &pi); err != nil {
			h.logger.Error("invalid payment intent payload", zap.String("eventID", evt.ID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		if evt.Type == "payment_intent.succeeded" {
			// The destination-charge transfer rides on the raw payload as a
			// bare ID; the typed PaymentIntent does not expose it.
			var aux struct {
				Transfer string `json:"transfer"`
			}
			_ = json.Unmarshal(evt.Data.Raw, &aux)
			err = h.service.HandlePaymentSucceeded(c.Request.Context(), pi.ID, aux.Transfer)
		} else {
			err = h.service.HandlePaymentFailed(c.Request.Context(), pi.ID)
		}
		if err != nil {
			h.logger.Error("webhook processing failed",
				zap.String("eventID", evt.ID),
				zap.String("eventType", string(evt.Type)),
				zap.Error(err),
			)
			// Non-2xx makes Stripe retry, which is what we want here.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
			return
		}
	default:
		h.logger.Debug("ignoring webhook event", zap.String("eventType", string(evt.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
