package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Filter narrows List to one side of the marketplace and optionally one status.
type Filter struct {
	CustomerID string
	ProviderID string
	Status     string
	Page       int
	PageSize   int
}

type Repository interface {
	// CreateWithConflictCheck inserts the booking unless an existing pending
	// or confirmed booking of the same provider overlaps its slot, in which
	// case it returns ErrTimeConflict. Check and insert run atomically.
	CreateWithConflictCheck(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus transitions the booking from one status to another. The
	// write only lands while the row still holds from, so of two concurrent
	// transitions only one wins; the loser gets ErrStatusChanged.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateWithConflictCheck(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent creations for the same provider and day. The lock
	// is released automatically when the transaction ends, so two requests
	// for the same slot run their conflict checks one after the other.
	lockKey := fmt.Sprintf("%s:%s", b.ProviderID, b.StartTime.UTC().Format("2006-01-02"))
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", lockKey); err != nil {
		return fmt.Errorf("acquire booking lock failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"provider_id": b.ProviderID}).
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusConfirmed}}).
		Where(squirrel.Expr("start_time < ?", b.EndTime())).
		Where(squirrel.Expr("start_time + make_interval(mins => duration_minutes) > ?", b.StartTime)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build conflict check query failed: %w", err)
	}

	var conflict bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&conflict); err != nil {
		return fmt.Errorf("conflict check failed: %w", err)
	}
	if conflict {
		return ErrTimeConflict
	}

	query, args, err := psql.Insert("public.bookings").
		Columns(
			"booking_number", "customer_id", "provider_id", "service_id",
			"start_time", "duration_minutes", "price", "status", "notes",
		).
		Values(
			b.BookingNumber, b.CustomerID, b.ProviderID, b.ServiceID,
			b.StartTime, b.DurationMinutes, b.Price, b.Status, b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	return tx.Commit(ctx)
}

func bookingColumns() []string {
	return []string{
		"b.id", "b.booking_number", "b.customer_id", "b.provider_id", "b.service_id",
		"b.start_time", "b.duration_minutes", "b.price", "b.status", "COALESCE(b.notes, '')",
		"b.created_at", "b.updated_at",
		"s.name", "p.business_name", "t.status",
	}
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.BookingNumber, &b.CustomerID, &b.ProviderID, &b.ServiceID,
		&b.StartTime, &b.DurationMinutes, &b.Price, &b.Status, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
		&b.ServiceName, &b.BusinessName, &b.PaymentStatus,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.services s ON b.service_id = s.id").
		Join("public.providers p ON b.provider_id = p.id").
		LeftJoin("public.transactions t ON t.booking_id = b.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(bookingColumns(), "COUNT(*) OVER ()")...).
		From("public.bookings b").
		Join("public.services s ON b.service_id = s.id").
		Join("public.providers p ON b.provider_id = p.id").
		LeftJoin("public.transactions t ON t.booking_id = b.id")

	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"b.customer_id": filter.CustomerID})
	}
	if filter.ProviderID != "" {
		query = query.Where(squirrel.Eq{"b.provider_id": filter.ProviderID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	query = query.OrderBy("b.start_time DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.BookingNumber, &b.CustomerID, &b.ProviderID, &b.ServiceID,
			&b.StartTime, &b.DurationMinutes, &b.Price, &b.Status, &b.Notes,
			&b.CreatedAt, &b.UpdatedAt,
			&b.ServiceName, &b.BusinessName, &b.PaymentStatus,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, total, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the booking is gone or its status moved under us.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusChanged
	}
	return nil
}
