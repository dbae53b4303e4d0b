package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CategoryExists(ctx context.Context, id string) (bool, error)

	CreateService(ctx context.Context, svc *Service) error
	GetServiceByID(ctx context.Context, id string) (*Service, error)

	// ListServices returns active services, optionally restricted to a
	// category or any of its direct children, best-rated providers first.
	ListServices(ctx context.Context, categoryID string) ([]*Service, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListCategories(ctx context.Context) ([]Category, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "parent_id", "name", "COALESCE(icon, '')").
		From("public.categories").
		OrderBy("parent_id IS NULL DESC", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category failed: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *pgxRepository) CategoryExists(ctx context.Context, id string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build category exists query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("category exists failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) CreateService(ctx context.Context, svc *Service) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.services").
		Columns("provider_id", "category_id", "name", "description", "base_price", "duration_minutes", "is_active").
		Values(svc.ProviderID, svc.CategoryID, svc.Name, svc.Description, svc.BasePrice, svc.DurationMinutes, svc.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create service query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&svc.ID, &svc.CreatedAt)
}

func (r *pgxRepository) GetServiceByID(ctx context.Context, id string) (*Service, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"s.id", "s.provider_id", "s.category_id", "s.name", "COALESCE(s.description, '')",
		"s.base_price", "s.duration_minutes", "s.is_active", "s.created_at",
		"p.business_name", "p.avg_rating",
	).
		From("public.services s").
		Join("public.providers p ON s.provider_id = p.id").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get service query failed: %w", err)
	}

	var svc Service
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&svc.ID, &svc.ProviderID, &svc.CategoryID, &svc.Name, &svc.Description,
		&svc.BasePrice, &svc.DurationMinutes, &svc.IsActive, &svc.CreatedAt,
		&svc.BusinessName, &svc.AvgRating,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return &svc, nil
}

func (r *pgxRepository) ListServices(ctx context.Context, categoryID string) ([]*Service, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"s.id", "s.provider_id", "s.category_id", "s.name", "COALESCE(s.description, '')",
		"s.base_price", "s.duration_minutes", "s.is_active", "s.created_at",
		"p.business_name", "p.avg_rating",
	).
		From("public.services s").
		Join("public.providers p ON s.provider_id = p.id").
		Join("public.categories c ON s.category_id = c.id").
		Where(squirrel.Eq{"s.is_active": true})

	if categoryID != "" {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"s.category_id": categoryID},
			squirrel.Eq{"c.parent_id": categoryID},
		})
	}

	query = query.OrderBy("p.avg_rating DESC", "s.name")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list services query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	var services []*Service
	for rows.Next() {
		var svc Service
		if err := rows.Scan(
			&svc.ID, &svc.ProviderID, &svc.CategoryID, &svc.Name, &svc.Description,
			&svc.BasePrice, &svc.DurationMinutes, &svc.IsActive, &svc.CreatedAt,
			&svc.BusinessName, &svc.AvgRating,
		); err != nil {
			return nil, fmt.Errorf("scan service failed: %w", err)
		}
		services = append(services, &svc)
	}
	return services, rows.Err()
}
