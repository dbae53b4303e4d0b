package http

import (
	"time"

	"github.com/homease/home-services-backend/internal/booking"
	"github.com/homease/home-services-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
}

type CreateBookingRequest struct {
	ServiceID string    `json:"service_id" binding:"required,uuid"`
	StartTime time.Time `json:"date_time" binding:"required"`
	Notes     string    `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	BookingNumber   string    `json:"booking_number"`
	ServiceID       string    `json:"service_id"`
	ServiceName     string    `json:"service_name"`
	ProviderID      string    `json:"provider_id"`
	BusinessName    string    `json:"business_name"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	PaymentStatus   *string   `json:"payment_status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		BookingNumber:   b.BookingNumber,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		ProviderID:      b.ProviderID,
		BusinessName:    b.BusinessName,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime(),
		DurationMinutes: b.DurationMinutes,
		Price:           b.Price,
		Status:          string(b.Status),
		PaymentStatus:   b.PaymentStatus,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
