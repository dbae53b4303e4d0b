package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingForPayment is the slice of a booking that settlement needs, fetched
// together with the provider's payout account in one query.
type BookingForPayment struct {
	BookingID             string
	BookingNumber         string
	CustomerID            string
	ProviderID            string
	Price                 float64
	Status                string
	ProviderStripeAccount string
}

type Repository interface {
	GetBookingForPayment(ctx context.Context, bookingID string) (*BookingForPayment, error)

	CreateTransaction(ctx context.Context, t *Transaction) error
	GetByBookingID(ctx context.Context, bookingID string) (*Transaction, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*Transaction, error)

	// CompleteAndConfirmBooking marks the transaction completed, records the
	// gateway transfer reference, and confirms the booking in one database
	// transaction, so a crash between the writes cannot leave a
	// paid-but-pending booking. transferID may be empty.
	CompleteAndConfirmBooking(ctx context.Context, transactionID, bookingID, transferID string) error

	// SetStatus moves a transaction to a non-terminal outcome. Completed is
	// terminal: a write against a completed row is silently dropped.
	SetStatus(ctx context.Context, transactionID string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetBookingForPayment(ctx context.Context, bookingID string) (*BookingForPayment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.booking_number", "b.customer_id", "b.provider_id", "b.price", "b.status",
		"COALESCE(p.stripe_account_id, '')",
	).
		From("public.bookings b").
		Join("public.providers p ON b.provider_id = p.id").
		Where(squirrel.Eq{"b.id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking for payment query failed: %w", err)
	}

	var bp BookingForPayment
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&bp.BookingID, &bp.BookingNumber, &bp.CustomerID, &bp.ProviderID,
		&bp.Price, &bp.Status, &bp.ProviderStripeAccount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking for payment failed: %w", err)
	}
	return &bp, nil
}

func (r *pgxRepository) CreateTransaction(ctx context.Context, t *Transaction) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.transactions").
		Columns("booking_id", "payment_id", "amount", "commission", "provider_amount", "currency", "status").
		Values(t.BookingID, t.PaymentID, t.Amount, t.Commission, t.ProviderAmount, t.Currency, t.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create transaction query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		// Unique booking_id: a concurrent request already opened the payment.
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyPaid
		}
		return fmt.Errorf("create transaction failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getBy(ctx context.Context, cond squirrel.Eq) (*Transaction, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"t.id", "t.booking_id", "t.payment_id", "COALESCE(t.transfer_id, '')",
		"t.amount", "t.commission", "t.provider_amount",
		"t.currency", "t.status", "t.created_at", "t.updated_at", "b.customer_id",
	).
		From("public.transactions t").
		Join("public.bookings b ON t.booking_id = b.id").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get transaction query failed: %w", err)
	}

	var t Transaction
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.BookingID, &t.PaymentID, &t.TransferID,
		&t.Amount, &t.Commission, &t.ProviderAmount,
		&t.Currency, &t.Status, &t.CreatedAt, &t.UpdatedAt, &t.CustomerID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) GetByBookingID(ctx context.Context, bookingID string) (*Transaction, error) {
	return r.getBy(ctx, squirrel.Eq{"t.booking_id": bookingID})
}

func (r *pgxRepository) GetByPaymentID(ctx context.Context, paymentID string) (*Transaction, error) {
	return r.getBy(ctx, squirrel.Eq{"t.payment_id": paymentID})
}

func (r *pgxRepository) CompleteAndConfirmBooking(ctx context.Context, transactionID, bookingID, transferID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin settlement tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	update := psql.Update("public.transactions").
		Set("status", StatusCompleted).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": transactionID})
	if transferID != "" {
		update = update.Set("transfer_id", transferID)
	}
	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build complete transaction query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("complete transaction failed: %w", err)
	}

	// Payment auto-confirms a pending booking; confirmed, completed or
	// cancelled bookings are left as they are.
	query, args, err = psql.Update("public.bookings").
		Set("status", "confirmed").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": bookingID, "status": "pending"}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build confirm booking query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("confirm booking failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) SetStatus(ctx context.Context, transactionID string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.transactions").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": transactionID}).
		Where(squirrel.NotEq{"status": StatusCompleted}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set transaction status query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set transaction status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.getBy(ctx, squirrel.Eq{"t.id": transactionID}); err != nil {
			return err
		}
		// The row is completed; settled money never changes state again.
		return nil
	}
	return nil
}
