package user

import (
	"net/http"
	"time"

	"github.com/homease/home-services-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user_not_found", "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email_already_used", "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "user_inactive", "user account is deactivated")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid_role", "invalid user role")
)

// Role identifies which side of the marketplace a user acts on.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// ValidRegistrationRole reports whether the role may be chosen at sign-up.
// Admin accounts are provisioned out of band.
func ValidRegistrationRole(r Role) bool {
	return r == RoleCustomer || r == RoleProvider
}

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
