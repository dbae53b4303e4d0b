package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/homease/home-services-backend/internal/catalog"
	"github.com/homease/home-services-backend/internal/provider"
	"github.com/homease/home-services-backend/internal/user"
)

// Actor identifies the authenticated user performing a booking operation.
type Actor struct {
	UserID string
	Role   user.Role
}

// CreateRequest carries customer input for a new booking. Price and duration
// are never accepted from the client; they are snapshotted from the catalog.
type CreateRequest struct {
	ServiceID string
	StartTime time.Time
	Notes     string
}

// Service defines booking business logic.
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, actor Actor, id string) (*Booking, error)

	// List returns the actor's side of the marketplace: customers see their
	// own bookings, providers see bookings against their profile, admins see
	// everything.
	List(ctx context.Context, actor Actor, status string, page, pageSize int) ([]*Booking, int, error)

	UpdateStatus(ctx context.Context, actor Actor, id, newStatus string) (*Booking, error)
}

type service struct {
	repo        Repository
	catalog     catalog.Browser
	providerSvc provider.Service
	logger      *zap.Logger
}

// NewService creates a new booking Service.
func NewService(repo Repository, cat catalog.Browser, providerSvc provider.Service, logger *zap.Logger) Service {
	return &service{
		repo:        repo,
		catalog:     cat,
		providerSvc: providerSvc,
		logger:      logger,
	}
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateRequest) (*Booking, error) {
	if actor.Role != user.RoleCustomer {
		return nil, ErrOnlyCustomers
	}

	svc, err := s.catalog.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, catalog.ErrServiceNotFound
	}

	start := req.StartTime.UTC()
	if !start.After(time.Now().UTC()) {
		return nil, ErrStartTimePast
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := startMin + svc.DurationMinutes
	if endMin > 24*60 {
		// Availability windows never span midnight, so neither can a slot.
		return nil, ErrProviderUnavailable
	}

	covered, err := s.providerSvc.CoversSlot(ctx, svc.ProviderID, int(start.Weekday()), startMin, endMin)
	if err != nil {
		return nil, err
	}
	if !covered {
		return nil, ErrProviderUnavailable
	}

	b := &Booking{
		BookingNumber:   GenerateNumber(),
		CustomerID:      actor.UserID,
		ProviderID:      svc.ProviderID,
		ServiceID:       svc.ID,
		StartTime:       start,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.BasePrice,
		Status:          StatusPending,
		Notes:           req.Notes,
		ServiceName:     svc.Name,
		BusinessName:    svc.BusinessName,
	}
	if err := s.repo.CreateWithConflictCheck(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("bookingNumber", b.BookingNumber),
		zap.String("providerID", b.ProviderID),
		zap.Time("startTime", b.StartTime),
	)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, actor Actor, status string, page, pageSize int) ([]*Booking, int, error) {
	if status != "" && !ValidStatus(status) {
		return nil, 0, ErrInvalidStatus
	}

	filter := Filter{Status: status, Page: page, PageSize: pageSize}
	switch actor.Role {
	case user.RoleCustomer:
		filter.CustomerID = actor.UserID
	case user.RoleProvider:
		p, err := s.providerSvc.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				return []*Booking{}, 0, nil
			}
			return nil, 0, err
		}
		filter.ProviderID = p.ID
	case user.RoleAdmin:
		// Unscoped.
	default:
		return nil, 0, ErrAccessDenied
	}

	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, actor Actor, id, newStatus string) (*Booking, error) {
	// Validate the requested status before touching storage so a malformed
	// value is a 400 even when the booking does not exist.
	if !ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, b); err != nil {
		return nil, err
	}
	if err := CanTransition(actor.Role, b.Status, Status(newStatus)); err != nil {
		return nil, err
	}

	// The repository re-checks the status we read, so a transition that raced
	// another request fails instead of overwriting its result.
	if err := s.repo.UpdateStatus(ctx, id, b.Status, Status(newStatus)); err != nil {
		return nil, err
	}

	s.logger.Info("booking status updated",
		zap.String("bookingID", b.ID),
		zap.String("from", string(b.Status)),
		zap.String("to", newStatus),
		zap.String("actorRole", string(actor.Role)),
	)
	b.Status = Status(newStatus)
	b.UpdatedAt = time.Now().UTC()
	return b, nil
}

// authorize enforces ownership: customers may touch their own bookings,
// providers the ones booked against their profile, admins anything.
func (s *service) authorize(ctx context.Context, actor Actor, b *Booking) error {
	switch actor.Role {
	case user.RoleAdmin:
		return nil
	case user.RoleCustomer:
		if b.CustomerID == actor.UserID {
			return nil
		}
	case user.RoleProvider:
		p, err := s.providerSvc.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				return ErrAccessDenied
			}
			return err
		}
		if b.ProviderID == p.ID {
			return nil
		}
	}
	return ErrAccessDenied
}
