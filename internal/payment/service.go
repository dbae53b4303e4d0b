package payment

import (
	"context"
	"errors"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/homease/home-services-backend/internal/pkg/apperror"
	"github.com/homease/home-services-backend/internal/user"
)

// Actor identifies the authenticated user performing a payment operation.
type Actor struct {
	UserID string
	Role   user.Role
}

// IntentResult is what the client needs to finish a payment on its side.
type IntentResult struct {
	TransactionID  string
	PaymentID      string
	ClientSecret   string
	Amount         float64
	Commission     float64
	ProviderAmount float64
	Currency       string
}

// Service defines settlement business logic.
type Service interface {
	// CreateIntent opens the payment for a booking and returns the gateway
	// client secret. The charge uses the price snapshotted on the booking,
	// never the current catalog price. A booking gets exactly one
	// transaction; any existing one, whatever its status, is ErrAlreadyPaid.
	CreateIntent(ctx context.Context, actor Actor, bookingID string) (*IntentResult, error)

	// Confirm pulls the intent state from the gateway and applies it, for
	// clients that cannot wait for the webhook.
	Confirm(ctx context.Context, actor Actor, paymentID string) (*Transaction, error)

	// HandlePaymentSucceeded and HandlePaymentFailed apply webhook events.
	// Both are idempotent and treat unknown payment references as no-ops.
	// transferID is the gateway transfer carried on the succeeded event.
	HandlePaymentSucceeded(ctx context.Context, paymentID, transferID string) error
	HandlePaymentFailed(ctx context.Context, paymentID string) error
}

type service struct {
	repo     Repository
	gateway  Gateway
	feePct   float64
	currency string
	logger   *zap.Logger
}

// NewService creates a new payment Service. feePct is the platform commission
// as a percentage of the booking price, e.g. 15 for 15%.
func NewService(repo Repository, gateway Gateway, feePct float64, currency string, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		gateway:  gateway,
		feePct:   feePct,
		currency: currency,
		logger:   logger,
	}
}

// SplitAmount converts a price into integer cents and splits it into the
// platform commission and the provider's share. Working in cents makes
// amount == commission + providerAmount exact, with rounding differences
// absorbed by the provider's side.
func SplitAmount(price, feePct float64) (amountCents, commissionCents, providerCents int64) {
	amountCents = int64(math.Round(price * 100))
	commissionCents = int64(math.Round(price * feePct))
	providerCents = amountCents - commissionCents
	return amountCents, commissionCents, providerCents
}

func (s *service) CreateIntent(ctx context.Context, actor Actor, bookingID string) (*IntentResult, error) {
	if actor.Role != user.RoleCustomer {
		return nil, ErrOnlyCustomers
	}

	bp, err := s.repo.GetBookingForPayment(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bp.CustomerID != actor.UserID {
		return nil, ErrAccessDenied
	}
	if bp.Status == "cancelled" {
		return nil, ErrBookingNotPayable
	}
	if bp.ProviderStripeAccount == "" {
		return nil, ErrNoPayoutAccount
	}

	// One transaction per booking, whatever its state: a pending row points
	// at a live gateway intent and a failed one keeps the payment trail.
	if _, err := s.repo.GetByBookingID(ctx, bookingID); err == nil {
		return nil, ErrAlreadyPaid
	} else if !errors.Is(err, ErrTransactionNotFound) {
		return nil, err
	}

	amountCents, commissionCents, providerCents := SplitAmount(bp.Price, s.feePct)

	intent, err := s.gateway.CreateIntent(ctx, CreateIntentParams{
		AmountCents:         amountCents,
		Currency:            s.currency,
		ApplicationFeeCents: commissionCents,
		TransferDestination: bp.ProviderStripeAccount,
		Metadata: map[string]string{
			"booking_id":     bp.BookingID,
			"booking_number": bp.BookingNumber,
			"customer_id":    bp.CustomerID,
			"provider_id":    bp.ProviderID,
		},
	})
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "payment_gateway_error", err.Error())
	}

	t := &Transaction{
		BookingID:      bp.BookingID,
		PaymentID:      intent.ID,
		Amount:         float64(amountCents) / 100,
		Commission:     float64(commissionCents) / 100,
		ProviderAmount: float64(providerCents) / 100,
		Currency:       s.currency,
		Status:         StatusPending,
	}
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		// The intent exists at the gateway but has no row on our side. It can
		// never be confirmed, only investigated.
		s.logger.Error("payment intent orphaned",
			zap.String("paymentID", intent.ID),
			zap.String("bookingID", bp.BookingID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("payment intent created",
		zap.String("bookingID", bp.BookingID),
		zap.String("paymentID", intent.ID),
		zap.Int64("amountCents", amountCents),
		zap.Int64("commissionCents", commissionCents),
	)

	return &IntentResult{
		TransactionID:  t.ID,
		PaymentID:      intent.ID,
		ClientSecret:   intent.ClientSecret,
		Amount:         t.Amount,
		Commission:     t.Commission,
		ProviderAmount: t.ProviderAmount,
		Currency:       t.Currency,
	}, nil
}

func (s *service) Confirm(ctx context.Context, actor Actor, paymentID string) (*Transaction, error) {
	t, err := s.repo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if actor.Role != user.RoleAdmin && t.CustomerID != actor.UserID {
		return nil, ErrAccessDenied
	}
	if t.Status == StatusCompleted {
		return t, nil
	}

	intent, err := s.gateway.GetIntent(ctx, paymentID)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "payment_gateway_error", err.Error())
	}

	switch intent.Status {
	case "succeeded":
		if err := s.repo.CompleteAndConfirmBooking(ctx, t.ID, t.BookingID, ""); err != nil {
			return nil, err
		}
		t.Status = StatusCompleted
	case "canceled":
		if err := s.repo.SetStatus(ctx, t.ID, StatusFailed); err != nil {
			return nil, err
		}
		t.Status = StatusFailed
	default:
		// requires_payment_method, processing and friends stay pending.
	}
	return t, nil
}

func (s *service) HandlePaymentSucceeded(ctx context.Context, paymentID, transferID string) error {
	t, err := s.repo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			// Intent we never issued, or one whose row was lost. Ack so the
			// gateway stops retrying, but leave a trace.
			s.logger.Warn("webhook for unknown payment intent", zap.String("paymentID", paymentID))
			return nil
		}
		return err
	}
	if t.Status == StatusCompleted {
		return nil
	}

	if err := s.repo.CompleteAndConfirmBooking(ctx, t.ID, t.BookingID, transferID); err != nil {
		return err
	}
	s.logger.Info("payment completed",
		zap.String("paymentID", paymentID),
		zap.String("bookingID", t.BookingID),
	)
	return nil
}

func (s *service) HandlePaymentFailed(ctx context.Context, paymentID string) error {
	t, err := s.repo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			s.logger.Warn("webhook for unknown payment intent", zap.String("paymentID", paymentID))
			return nil
		}
		return err
	}
	if t.Status == StatusCompleted {
		// A failure event after settlement is out of order; keep the money.
		s.logger.Warn("ignoring failure event for completed transaction", zap.String("paymentID", paymentID))
		return nil
	}
	if t.Status == StatusFailed {
		return nil
	}

	if err := s.repo.SetStatus(ctx, t.ID, StatusFailed); err != nil {
		return err
	}
	s.logger.Info("payment failed",
		zap.String("paymentID", paymentID),
		zap.String("bookingID", t.BookingID),
	)
	return nil
}
