package provider

import (
	"context"
	"strings"
)

// WindowInput is one weekly availability window as submitted by a provider.
type WindowInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

// Service defines business logic for provider profiles and availability.
type Service interface {
	Create(ctx context.Context, userID, businessName string) (*Provider, error)
	GetByID(ctx context.Context, id string) (*Provider, error)
	GetByUserID(ctx context.Context, userID string) (*Provider, error)
	UpdatePayoutAccount(ctx context.Context, providerID, stripeAccountID string) error

	ListAvailability(ctx context.Context, providerID string) ([]AvailabilityWindow, error)
	SetAvailability(ctx context.Context, providerID string, windows []WindowInput) ([]AvailabilityWindow, error)

	// IsAvailableAt reports whether any window for the given weekday contains
	// the instant. Absence of windows is not an error, just "not bookable".
	IsAvailableAt(ctx context.Context, providerID string, dayOfWeek, minuteOfDay int) (bool, error)

	// CoversSlot reports whether a single window contains the whole
	// [startMin, endMin] slot on the given weekday.
	CoversSlot(ctx context.Context, providerID string, dayOfWeek, startMin, endMin int) (bool, error)
}

type service struct {
	repo Repository
}

// NewService creates a new provider Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID, businessName string) (*Provider, error) {
	p := &Provider{
		UserID:       userID,
		BusinessName: strings.TrimSpace(businessName),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Provider, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Provider, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) UpdatePayoutAccount(ctx context.Context, providerID, stripeAccountID string) error {
	return s.repo.UpdatePayoutAccount(ctx, providerID, strings.TrimSpace(stripeAccountID))
}

func (s *service) ListAvailability(ctx context.Context, providerID string) ([]AvailabilityWindow, error) {
	if _, err := s.repo.GetByID(ctx, providerID); err != nil {
		return nil, err
	}
	return s.repo.ListWindows(ctx, providerID)
}

func (s *service) SetAvailability(ctx context.Context, providerID string, inputs []WindowInput) ([]AvailabilityWindow, error) {
	if _, err := s.repo.GetByID(ctx, providerID); err != nil {
		return nil, err
	}

	windows := make([]AvailabilityWindow, 0, len(inputs))
	for _, in := range inputs {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			return nil, ErrInvalidDayOfWeek
		}
		start, err := ParseClock(in.StartTime)
		if err != nil {
			return nil, ErrInvalidClock
		}
		end, err := ParseClock(in.EndTime)
		if err != nil {
			return nil, ErrInvalidClock
		}
		if start >= end {
			return nil, ErrInvalidWindow
		}
		windows = append(windows, AvailabilityWindow{
			DayOfWeek: in.DayOfWeek,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}

	if err := s.repo.ReplaceWindows(ctx, providerID, windows); err != nil {
		return nil, err
	}
	return windows, nil
}

func (s *service) IsAvailableAt(ctx context.Context, providerID string, dayOfWeek, minuteOfDay int) (bool, error) {
	windows, err := s.repo.ListWindowsForDay(ctx, providerID, dayOfWeek)
	if err != nil {
		return false, err
	}
	return WindowsContain(windows, minuteOfDay), nil
}

func (s *service) CoversSlot(ctx context.Context, providerID string, dayOfWeek, startMin, endMin int) (bool, error) {
	windows, err := s.repo.ListWindowsForDay(ctx, providerID, dayOfWeek)
	if err != nil {
		return false, err
	}
	return WindowsCover(windows, startMin, endMin), nil
}
