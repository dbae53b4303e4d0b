package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/homease/home-services-backend/internal/catalog"
	"github.com/homease/home-services-backend/internal/provider"
	"github.com/homease/home-services-backend/internal/user"
)

type fakeRepo struct {
	byID      map[string]*Booking
	created   *Booking
	createErr error

	// driftTo, when set, flips the stored status right after a read, like a
	// concurrent request landing between fetch and update.
	driftTo Status

	updatedID     string
	updatedStatus Status
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Booking)}
}

func (r *fakeRepo) CreateWithConflictCheck(_ context.Context, b *Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	b.ID = "booking-1"
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	r.created = b
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	if r.driftTo != "" {
		b.Status = r.driftTo
	}
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.byID {
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ProviderID != "" && b.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, from, to Status) error {
	b, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if b.Status != from {
		return ErrStatusChanged
	}
	b.Status = to
	r.updatedID = id
	r.updatedStatus = to
	return nil
}

type fakeCatalog struct {
	services map[string]*catalog.Service
}

func (c *fakeCatalog) GetServiceByID(_ context.Context, id string) (*catalog.Service, error) {
	svc, ok := c.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return svc, nil
}

type fakeProviderService struct {
	provider.Service

	profiles map[string]*provider.Provider // keyed by user ID

	covers    bool
	coversDay int
	coversMin [2]int
}

func (p *fakeProviderService) GetByUserID(_ context.Context, userID string) (*provider.Provider, error) {
	prof, ok := p.profiles[userID]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return prof, nil
}

func (p *fakeProviderService) CoversSlot(_ context.Context, _ string, dayOfWeek, startMin, endMin int) (bool, error) {
	p.coversDay = dayOfWeek
	p.coversMin = [2]int{startMin, endMin}
	return p.covers, nil
}

func fixtureService() *catalog.Service {
	return &catalog.Service{
		ID:              "svc-1",
		ProviderID:      "prov-1",
		CategoryID:      "cat-1",
		Name:            "Deep Cleaning",
		BasePrice:       80,
		DurationMinutes: 120,
		IsActive:        true,
		BusinessName:    "Sparkle Ltd",
	}
}

func newTestService(repo *fakeRepo, cat *fakeCatalog, prov *fakeProviderService) Service {
	return NewService(repo, cat, prov, zap.NewNop())
}

// futureStart returns a start time a few days out at the given clock time.
func futureStart(hour, minute int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 3)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	customer := Actor{UserID: "cust-1", Role: user.RoleCustomer}

	t.Run("only customers can book", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &fakeCatalog{}, &fakeProviderService{})
		for _, role := range []user.Role{user.RoleProvider, user.RoleAdmin} {
			_, err := svc.Create(ctx, Actor{UserID: "u", Role: role}, CreateRequest{ServiceID: "svc-1"})
			assert.ErrorIs(t, err, ErrOnlyCustomers)
		}
	})

	t.Run("unknown service", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &fakeCatalog{services: map[string]*catalog.Service{}}, &fakeProviderService{})
		_, err := svc.Create(ctx, customer, CreateRequest{ServiceID: "nope", StartTime: futureStart(10, 0)})
		assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
	})

	t.Run("inactive service is invisible", func(t *testing.T) {
		inactive := fixtureService()
		inactive.IsActive = false
		cat := &fakeCatalog{services: map[string]*catalog.Service{"svc-1": inactive}}
		svc := newTestService(newFakeRepo(), cat, &fakeProviderService{})

		_, err := svc.Create(ctx, customer, CreateRequest{ServiceID: "svc-1", StartTime: futureStart(10, 0)})
		assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
	})

	t.Run("start time in the past", func(t *testing.T) {
		cat := &fakeCatalog{services: map[string]*catalog.Service{"svc-1": fixtureService()}}
		svc := newTestService(newFakeRepo(), cat, &fakeProviderService{covers: true})

		_, err := svc.Create(ctx, customer, CreateRequest{
			ServiceID: "svc-1",
			StartTime: time.Now().UTC().Add(-time.Hour),
		})
		assert.ErrorIs(t, err, ErrStartTimePast)
	})

	t.Run("provider not available", func(t *testing.T) {
		cat := &fakeCatalog{services: map[string]*catalog.Service{"svc-1": fixtureService()}}
		svc := newTestService(newFakeRepo(), cat, &fakeProviderService{covers: false})

		_, err := svc.Create(ctx, customer, CreateRequest{ServiceID: "svc-1", StartTime: futureStart(10, 0)})
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})

	t.Run("slot crossing midnight is rejected", func(t *testing.T) {
		cat := &fakeCatalog{services: map[string]*catalog.Service{"svc-1": fixtureService()}}
		prov := &fakeProviderService{covers: true}
		svc := newTestService(newFakeRepo(), cat, prov)

		_, err := svc.Create(ctx, customer, CreateRequest{ServiceID: "svc-1", StartTime: futureStart(23, 0)})
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})

	t.Run("conflict from repository", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErr = ErrTimeConflict
		cat := &fakeCatalog{services: map[string]*catalog.Service{"svc-1": fixtureService()}}
		svc := newTestService(repo, cat, &fakeProviderService{covers: true})

		_, err := svc.Create(ctx, customer, CreateRequest{ServiceID: "svc-1", StartTime: futureStart(10, 0)})
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("success snapshots price and duration", func(t *testing.T) {
		repo := newFakeRepo()
		cat := &fakeCatalog{services: map[string]*catalog.Service{"svc-1": fixtureService()}}
		prov := &fakeProviderService{covers: true}
		svc := newTestService(repo, cat, prov)

		start := futureStart(10, 30)
		b, err := svc.Create(ctx, customer, CreateRequest{
			ServiceID: "svc-1",
			StartTime: start,
			Notes:     "ring the bell",
		})
		require.NoError(t, err)

		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, "cust-1", b.CustomerID)
		assert.Equal(t, "prov-1", b.ProviderID)
		assert.Equal(t, 80.0, b.Price)
		assert.Equal(t, 120, b.DurationMinutes)
		assert.Equal(t, "Deep Cleaning", b.ServiceName)
		assert.True(t, strings.HasPrefix(b.BookingNumber, "BK"))

		// Availability was checked for the whole slot on the right weekday.
		assert.Equal(t, int(start.Weekday()), prov.coversDay)
		assert.Equal(t, [2]int{10*60 + 30, 10*60 + 30 + 120}, prov.coversMin)

		require.NotNil(t, repo.created)
		assert.Equal(t, b.ID, repo.created.ID)
	})
}

func TestGetBookingAuthorization(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	repo.byID["b1"] = &Booking{ID: "b1", CustomerID: "cust-1", ProviderID: "prov-1", Status: StatusPending}

	prov := &fakeProviderService{profiles: map[string]*provider.Provider{
		"provuser-1": {ID: "prov-1", UserID: "provuser-1"},
		"provuser-2": {ID: "prov-2", UserID: "provuser-2"},
	}}
	svc := newTestService(repo, &fakeCatalog{}, prov)

	t.Run("owner customer", func(t *testing.T) {
		b, err := svc.GetByID(ctx, Actor{UserID: "cust-1", Role: user.RoleCustomer}, "b1")
		require.NoError(t, err)
		assert.Equal(t, "b1", b.ID)
	})

	t.Run("other customer", func(t *testing.T) {
		_, err := svc.GetByID(ctx, Actor{UserID: "cust-2", Role: user.RoleCustomer}, "b1")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("owning provider", func(t *testing.T) {
		_, err := svc.GetByID(ctx, Actor{UserID: "provuser-1", Role: user.RoleProvider}, "b1")
		assert.NoError(t, err)
	})

	t.Run("other provider", func(t *testing.T) {
		_, err := svc.GetByID(ctx, Actor{UserID: "provuser-2", Role: user.RoleProvider}, "b1")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin", func(t *testing.T) {
		_, err := svc.GetByID(ctx, Actor{UserID: "admin-1", Role: user.RoleAdmin}, "b1")
		assert.NoError(t, err)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetByID(ctx, Actor{UserID: "cust-1", Role: user.RoleCustomer}, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(status Status) (*fakeRepo, Service) {
		repo := newFakeRepo()
		repo.byID["b1"] = &Booking{ID: "b1", CustomerID: "cust-1", ProviderID: "prov-1", Status: status}
		prov := &fakeProviderService{profiles: map[string]*provider.Provider{
			"provuser-1": {ID: "prov-1", UserID: "provuser-1"},
		}}
		return repo, newTestService(repo, &fakeCatalog{}, prov)
	}

	t.Run("invalid status checked before lookup", func(t *testing.T) {
		_, svc := setup(StatusPending)
		_, err := svc.UpdateStatus(ctx, Actor{UserID: "cust-1", Role: user.RoleCustomer}, "missing", "archived")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, svc := setup(StatusPending)
		_, err := svc.UpdateStatus(ctx, Actor{UserID: "cust-1", Role: user.RoleCustomer}, "missing", "cancelled")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("customer cannot confirm own booking", func(t *testing.T) {
		_, svc := setup(StatusPending)
		_, err := svc.UpdateStatus(ctx, Actor{UserID: "cust-1", Role: user.RoleCustomer}, "b1", "confirmed")
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	})

	t.Run("stranger gets access denied before transition check", func(t *testing.T) {
		_, svc := setup(StatusPending)
		_, err := svc.UpdateStatus(ctx, Actor{UserID: "cust-2", Role: user.RoleCustomer}, "b1", "confirmed")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("provider confirms pending booking", func(t *testing.T) {
		repo, svc := setup(StatusPending)
		b, err := svc.UpdateStatus(ctx, Actor{UserID: "provuser-1", Role: user.RoleProvider}, "b1", "confirmed")
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, b.Status)
		assert.Equal(t, "b1", repo.updatedID)
		assert.Equal(t, StatusConfirmed, repo.updatedStatus)
	})

	t.Run("customer cancels confirmed booking", func(t *testing.T) {
		_, svc := setup(StatusConfirmed)
		b, err := svc.UpdateStatus(ctx, Actor{UserID: "cust-1", Role: user.RoleCustomer}, "b1", "cancelled")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, b.Status)
	})

	t.Run("racing transition loses instead of overwriting", func(t *testing.T) {
		repo, svc := setup(StatusPending)
		// A customer cancellation lands between the provider's read and write.
		repo.driftTo = StatusCancelled

		_, err := svc.UpdateStatus(ctx, Actor{UserID: "provuser-1", Role: user.RoleProvider}, "b1", "confirmed")
		assert.ErrorIs(t, err, ErrStatusChanged)
		assert.Equal(t, StatusCancelled, repo.byID["b1"].Status)
	})

	t.Run("terminal booking stays terminal", func(t *testing.T) {
		_, svc := setup(StatusCompleted)
		_, err := svc.UpdateStatus(ctx, Actor{UserID: "admin-1", Role: user.RoleAdmin}, "b1", "cancelled")
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	})
}

func TestListScoping(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	repo.byID["b1"] = &Booking{ID: "b1", CustomerID: "cust-1", ProviderID: "prov-1", Status: StatusPending}
	repo.byID["b2"] = &Booking{ID: "b2", CustomerID: "cust-2", ProviderID: "prov-1", Status: StatusConfirmed}

	prov := &fakeProviderService{profiles: map[string]*provider.Provider{
		"provuser-1": {ID: "prov-1", UserID: "provuser-1"},
	}}
	svc := newTestService(repo, &fakeCatalog{}, prov)

	t.Run("customer sees own bookings only", func(t *testing.T) {
		bookings, total, err := svc.List(ctx, Actor{UserID: "cust-1", Role: user.RoleCustomer}, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, bookings, 1)
		assert.Equal(t, "b1", bookings[0].ID)
	})

	t.Run("provider sees bookings against their profile", func(t *testing.T) {
		_, total, err := svc.List(ctx, Actor{UserID: "provuser-1", Role: user.RoleProvider}, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("provider without profile sees nothing", func(t *testing.T) {
		bookings, total, err := svc.List(ctx, Actor{UserID: "ghost", Role: user.RoleProvider}, "", 1, 20)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, bookings)
	})

	t.Run("status filter", func(t *testing.T) {
		_, total, err := svc.List(ctx, Actor{UserID: "admin", Role: user.RoleAdmin}, "confirmed", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, _, err := svc.List(ctx, Actor{UserID: "admin", Role: user.RoleAdmin}, "archived", 1, 20)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}
