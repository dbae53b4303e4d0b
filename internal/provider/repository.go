package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Provider) error
	GetByID(ctx context.Context, id string) (*Provider, error)
	GetByUserID(ctx context.Context, userID string) (*Provider, error)
	UpdatePayoutAccount(ctx context.Context, providerID, stripeAccountID string) error

	ListWindows(ctx context.Context, providerID string) ([]AvailabilityWindow, error)
	ListWindowsForDay(ctx context.Context, providerID string, dayOfWeek int) ([]AvailabilityWindow, error)

	// ReplaceWindows swaps the provider's whole weekly schedule in one transaction.
	ReplaceWindows(ctx context.Context, providerID string, windows []AvailabilityWindow) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Provider) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.providers").
		Columns("user_id", "business_name").
		Values(p.UserID, p.BusinessName).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create provider query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Provider, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Provider, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID})
}

func (r *pgxRepository) getBy(ctx context.Context, pred squirrel.Eq) (*Provider, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "user_id", "business_name",
		"COALESCE(stripe_account_id, '')", "avg_rating", "created_at",
	).
		From("public.providers").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get provider query failed: %w", err)
	}

	var p Provider
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.UserID, &p.BusinessName, &p.StripeAccountID, &p.AvgRating, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get provider failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) UpdatePayoutAccount(ctx context.Context, providerID, stripeAccountID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.providers").
		Set("stripe_account_id", stripeAccountID).
		Where(squirrel.Eq{"id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update payout account query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payout account failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListWindows(ctx context.Context, providerID string) ([]AvailabilityWindow, error) {
	return r.listWindows(ctx, squirrel.Eq{"provider_id": providerID})
}

func (r *pgxRepository) ListWindowsForDay(ctx context.Context, providerID string, dayOfWeek int) ([]AvailabilityWindow, error) {
	return r.listWindows(ctx, squirrel.Eq{"provider_id": providerID, "day_of_week": dayOfWeek})
}

func (r *pgxRepository) listWindows(ctx context.Context, pred squirrel.Eq) ([]AvailabilityWindow, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "provider_id", "day_of_week", "start_time", "end_time").
		From("public.availability").
		Where(pred).
		OrderBy("day_of_week", "start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list windows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list windows failed: %w", err)
	}
	defer rows.Close()

	var windows []AvailabilityWindow
	for rows.Next() {
		var w AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.ProviderID, &w.DayOfWeek, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("scan window failed: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *pgxRepository) ReplaceWindows(ctx context.Context, providerID string, windows []AvailabilityWindow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace windows failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	delQuery, delArgs, err := psql.Delete("public.availability").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete windows query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("delete windows failed: %w", err)
	}

	for i := range windows {
		w := &windows[i]
		insQuery, insArgs, err := psql.Insert("public.availability").
			Columns("provider_id", "day_of_week", "start_time", "end_time").
			Values(providerID, w.DayOfWeek, w.StartTime, w.EndTime).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert window query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, insQuery, insArgs...).Scan(&w.ID); err != nil {
			return fmt.Errorf("insert window failed: %w", err)
		}
		w.ProviderID = providerID
	}

	return tx.Commit(ctx)
}
