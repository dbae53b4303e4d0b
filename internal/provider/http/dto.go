package http

import (
	"time"

	"github.com/homease/home-services-backend/internal/provider"
)

type AvailabilityWindowInput struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type SetAvailabilityRequest struct {
	Windows []AvailabilityWindowInput `json:"windows" binding:"required,dive"`
}

// AvailabilityQuery narrows GET /providers/:id/availability to a single
// instant. Day and Time must be supplied together.
type AvailabilityQuery struct {
	Day  *int   `form:"day" binding:"omitempty,min=0,max=6"`
	Time string `form:"time"`
}

type UpdatePayoutAccountRequest struct {
	StripeAccountID string `json:"stripe_account_id" binding:"required,max=255"`
}

type AvailabilityWindowResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func NewAvailabilityResponse(windows []provider.AvailabilityWindow) []AvailabilityWindowResponse {
	out := make([]AvailabilityWindowResponse, len(windows))
	for i, w := range windows {
		out[i] = AvailabilityWindowResponse{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		}
	}
	return out
}

type ProviderResponse struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	AvgRating    float64   `json:"avg_rating"`
	HasPayout    bool      `json:"has_payout_account"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewProviderResponse(p *provider.Provider) ProviderResponse {
	return ProviderResponse{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		AvgRating:    p.AvgRating,
		HasPayout:    p.StripeAccountID != "",
		CreatedAt:    p.CreatedAt,
	}
}
