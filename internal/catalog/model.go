package catalog

import (
	"net/http"
	"time"

	"github.com/homease/home-services-backend/internal/pkg/apperror"
)

var (
	ErrServiceNotFound  = apperror.New(http.StatusNotFound, "service_not_found", "service not found")
	ErrCategoryNotFound = apperror.New(http.StatusNotFound, "category_not_found", "category not found")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "invalid_price", "base_price must be greater than zero")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "invalid_duration", "duration_minutes must be greater than zero")
)

// Category groups services; a two-level hierarchy via ParentID.
type Category struct {
	ID       string
	ParentID *string
	Name     string
	Icon     string
}

// CategoryNode is a category with its children, for catalog browsing.
type CategoryNode struct {
	Category
	Children []*CategoryNode
}

// Service is a bookable offering. BasePrice and DurationMinutes are
// authoritative at booking-creation time; bookings snapshot them so later
// edits never change historical bookings.
type Service struct {
	ID              string
	ProviderID      string
	CategoryID      string
	Name            string
	Description     string
	BasePrice       float64
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time

	// Joined provider fields for display.
	BusinessName string
	AvgRating    float64
}
