package payment

import (
	"net/http"
	"time"

	"github.com/homease/home-services-backend/internal/pkg/apperror"
)

var (
	ErrBookingNotFound     = apperror.New(http.StatusNotFound, "booking_not_found", "booking not found")
	ErrTransactionNotFound = apperror.New(http.StatusNotFound, "transaction_not_found", "transaction not found")
	ErrAccessDenied        = apperror.New(http.StatusForbidden, "payment_access_denied", "you do not have access to this payment")
	ErrOnlyCustomers       = apperror.New(http.StatusForbidden, "only_customers_can_pay", "only customers can pay for bookings")
	ErrAlreadyPaid         = apperror.New(http.StatusConflict, "booking_already_paid", "booking is already paid")
	ErrBookingNotPayable   = apperror.New(http.StatusConflict, "booking_not_payable", "booking can no longer be paid")
	ErrNoPayoutAccount     = apperror.New(http.StatusBadRequest, "provider_no_payout_account", "provider has no payout account configured")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Transaction records the settlement of one booking: the full amount charged
// to the customer, the platform commission retained, and the remainder owed
// to the provider. Amount = Commission + ProviderAmount always holds.
type Transaction struct {
	ID             string
	BookingID      string
	PaymentID      string // gateway payment intent reference
	TransferID     string // gateway transfer reference, set on settlement
	Amount         float64
	Commission     float64
	ProviderAmount float64
	Currency       string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined for authorization checks.
	CustomerID string
}
