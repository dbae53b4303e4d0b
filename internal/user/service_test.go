package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homease/home-services-backend/internal/provider"
)

type fakeRepo struct {
	byEmail map[string]*User
	created *User
	touched string
	deleted string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*User)}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	u.ID = "user-1"
	r.created = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) TouchLastLogin(_ context.Context, id string) error {
	r.touched = id
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
		}
	}
	r.deleted = id
	return nil
}

// plainHasher keeps test passwords readable.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return ErrInvalidCredentials
	}
	return nil
}

type fakeProviderService struct {
	provider.Service

	createErr       error
	createdUserID   string
	createdBusiness string
}

func (p *fakeProviderService) Create(_ context.Context, userID, businessName string) (*provider.Provider, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.createdUserID = userID
	p.createdBusiness = businessName
	return &provider.Provider{ID: "prov-1", UserID: userID, BusinessName: businessName}, nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	valid := RegisterRequest{
		Email:     "Jane@Example.com",
		Password:  "supersecret",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      RoleCustomer,
	}

	t.Run("admin role cannot self-register", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{}, &fakeProviderService{})
		req := valid
		req.Role = RoleAdmin
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{}, &fakeProviderService{})
		req := valid
		req.Password = "short"
		_, err := svc.Register(ctx, req)
		assert.Error(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeRepo()
		repo.byEmail["jane@example.com"] = &User{ID: "existing"}
		svc := NewService(repo, plainHasher{}, &fakeProviderService{})

		_, err := svc.Register(ctx, valid)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("customer registration normalizes email", func(t *testing.T) {
		repo := newFakeRepo()
		prov := &fakeProviderService{}
		svc := NewService(repo, plainHasher{}, prov)

		u, err := svc.Register(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", u.Email)
		assert.Equal(t, "hashed:supersecret", u.PasswordHash)
		assert.True(t, u.IsActive)
		// Customers get no provider profile.
		assert.Empty(t, prov.createdUserID)
	})

	t.Run("provider registration creates profile", func(t *testing.T) {
		repo := newFakeRepo()
		prov := &fakeProviderService{}
		svc := NewService(repo, plainHasher{}, prov)

		req := valid
		req.Role = RoleProvider
		req.BusinessName = "Jane's Plumbing"
		u, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, u.ID, prov.createdUserID)
		assert.Equal(t, "Jane's Plumbing", prov.createdBusiness)
	})

	t.Run("failed provider profile rolls the account back", func(t *testing.T) {
		repo := newFakeRepo()
		prov := &fakeProviderService{createErr: errors.New("providers table down")}
		svc := NewService(repo, plainHasher{}, prov)

		req := valid
		req.Role = RoleProvider
		_, err := svc.Register(ctx, req)
		require.Error(t, err)

		// No half-registered account: the email is free again.
		assert.Equal(t, "user-1", repo.deleted)
		_, err = repo.GetByEmail(ctx, "jane@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("provider business name defaults to full name", func(t *testing.T) {
		prov := &fakeProviderService{}
		svc := NewService(newFakeRepo(), plainHasher{}, prov)

		req := valid
		req.Role = RoleProvider
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", prov.createdBusiness)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(active bool) (*fakeRepo, Service) {
		repo := newFakeRepo()
		repo.byEmail["jane@example.com"] = &User{
			ID:           "user-1",
			Email:        "jane@example.com",
			PasswordHash: "hashed:supersecret",
			IsActive:     active,
		}
		return repo, NewService(repo, plainHasher{}, &fakeProviderService{})
	}

	t.Run("success touches last login", func(t *testing.T) {
		repo, svc := setup(true)
		u, err := svc.Login(ctx, "Jane@Example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		assert.Equal(t, "user-1", repo.touched)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, svc := setup(true)
		_, err := svc.Login(ctx, "jane@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, svc := setup(true)
		_, err := svc.Login(ctx, "ghost@example.com", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		_, svc := setup(false)
		_, err := svc.Login(ctx, "jane@example.com", "supersecret")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}
