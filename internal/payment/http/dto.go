package http

import (
	"time"

	"github.com/homease/home-services-backend/internal/payment"
)

type CreateIntentRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

type IntentResponse struct {
	TransactionID  string  `json:"transaction_id"`
	PaymentID      string  `json:"payment_intent_id"`
	ClientSecret   string  `json:"client_secret"`
	Amount         float64 `json:"amount"`
	Commission     float64 `json:"commission"`
	ProviderAmount float64 `json:"provider_amount"`
	Currency       string  `json:"currency"`
}

func NewIntentResponse(r *payment.IntentResult) IntentResponse {
	return IntentResponse{
		TransactionID:  r.TransactionID,
		PaymentID:      r.PaymentID,
		ClientSecret:   r.ClientSecret,
		Amount:         r.Amount,
		Commission:     r.Commission,
		ProviderAmount: r.ProviderAmount,
		Currency:       r.Currency,
	}
}

type TransactionResponse struct {
	ID             string    `json:"id"`
	BookingID      string    `json:"booking_id"`
	PaymentID      string    `json:"payment_id"`
	TransferID     string    `json:"transfer_id,omitempty"`
	Amount         float64   `json:"amount"`
	Commission     float64   `json:"commission"`
	ProviderAmount float64   `json:"provider_amount"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewTransactionResponse(t *payment.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		BookingID:      t.BookingID,
		PaymentID:      t.PaymentID,
		TransferID:     t.TransferID,
		Amount:         t.Amount,
		Commission:     t.Commission,
		ProviderAmount: t.ProviderAmount,
		Currency:       t.Currency,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
