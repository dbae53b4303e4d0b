package provider

import (
	"net/http"
	"time"

	"github.com/homease/home-services-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "provider_not_found", "provider not found")
	ErrInvalidDayOfWeek = apperror.New(http.StatusBadRequest, "invalid_day_of_week", "day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidWindow    = apperror.New(http.StatusBadRequest, "invalid_availability_window", "start_time must be before end_time")
	ErrInvalidClock     = apperror.New(http.StatusBadRequest, "invalid_time_format", "time must be formatted as HH:MM or HH:MM:SS")
)

// Provider is the seller side of the marketplace: a user offering services.
type Provider struct {
	ID              string // UUID
	UserID          string
	BusinessName    string
	StripeAccountID string // empty until payout onboarding completes
	AvgRating       float64
	CreatedAt       time.Time
}

// AvailabilityWindow is one recurring weekly open interval. Windows for a
// provider may overlap; a slot is bookable when any single window contains it.
type AvailabilityWindow struct {
	ID         string
	ProviderID string
	DayOfWeek  int    // 0 (Sunday) .. 6 (Saturday)
	StartTime  string // HH:MM:SS
	EndTime    string // HH:MM:SS
}
