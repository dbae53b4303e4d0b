package booking

import (
	"net/http"
	"time"

	"github.com/homease/home-services-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking_not_found", "booking not found")
	ErrAccessDenied         = apperror.New(http.StatusForbidden, "booking_access_denied", "you do not have access to this booking")
	ErrTransitionNotAllowed = apperror.New(http.StatusForbidden, "status_update_not_allowed", "status update not allowed for this role")
	ErrInvalidStatus        = apperror.New(http.StatusBadRequest, "invalid_status", "invalid booking status")
	ErrTimeConflict         = apperror.New(http.StatusConflict, "time_slot_taken", "time slot already booked")
	ErrStatusChanged        = apperror.New(http.StatusConflict, "booking_status_changed", "booking status was changed by another request")
	ErrStartTimePast        = apperror.New(http.StatusBadRequest, "booking_time_past", "cannot create booking in the past")
	ErrProviderUnavailable  = apperror.New(http.StatusBadRequest, "provider_not_available", "provider is not available at that time")
	ErrOnlyCustomers        = apperror.New(http.StatusForbidden, "only_customers_can_book", "only customers can create bookings")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the four recognized statuses.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is a time-bounded appointment between a customer and a provider.
// Price and DurationMinutes are snapshots of the service taken at creation
// time; later catalog edits never change an existing booking.
type Booking struct {
	ID              string
	BookingNumber   string // unique, human-readable, immutable
	CustomerID      string
	ProviderID      string
	ServiceID       string
	StartTime       time.Time
	DurationMinutes int
	Price           float64
	Status          Status
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields for display.
	ServiceName   string
	BusinessName  string
	PaymentStatus *string // settlement status, nil until an intent exists
}

// EndTime returns the exclusive end instant of the booked slot.
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap, so a booking
// ending at 14:00 coexists with one starting at 14:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
