package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/homease/home-services-backend/internal/auth"
	"github.com/homease/home-services-backend/internal/pkg/apperror"
	"github.com/homease/home-services-backend/internal/provider"
)

// RegisterRequest carries sign-up input. BusinessName is only used when the
// role is provider.
type RegisterRequest struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Role         Role
	BusinessName string
}

// Service defines business logic related to user accounts.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo        Repository
	hasher      auth.PasswordHasher
	providerSvc provider.Service

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, providerSvc provider.Service) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		providerSvc:       providerSvc,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, apperror.New(http.StatusBadRequest, "email_required", "email is required")
	}

	if len(req.Password) < s.minPasswordLength {
		return nil, apperror.New(http.StatusBadRequest, "password_too_short",
			fmt.Sprintf("password must be at least %d characters", s.minPasswordLength))
	}

	if !ValidRegistrationRole(req.Role) {
		return nil, ErrInvalidRole
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        cleanEmail,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         req.Role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	// Providers get a marketplace profile holding availability and payout data.
	if u.Role == RoleProvider {
		businessName := strings.TrimSpace(req.BusinessName)
		if businessName == "" {
			businessName = u.FirstName + " " + u.LastName
		}
		if _, err := s.providerSvc.Create(ctx, u.ID, businessName); err != nil {
			// Undo the account insert so the email stays usable and no
			// provider can log in without a profile.
			_ = s.repo.Delete(ctx, u.ID)
			return nil, fmt.Errorf("failed to create provider profile: %w", err)
		}
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, u.ID); err != nil {
		// Not fatal for the login itself.
		return u, nil
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
