package catalog

import (
	"context"
	"strings"
)

// CreateServiceInput carries provider input for a new offering.
type CreateServiceInput struct {
	CategoryID      string
	Name            string
	Description     string
	BasePrice       float64
	DurationMinutes int
}

// Browser is the read side of the catalog consumed by the booking core.
type Browser interface {
	GetServiceByID(ctx context.Context, id string) (*Service, error)
}

// Service defines catalog business logic.
type CatalogService interface {
	Browser
	ListCategories(ctx context.Context) ([]*CategoryNode, error)
	ListServices(ctx context.Context, categoryID string) ([]*Service, error)
	CreateService(ctx context.Context, providerID string, input CreateServiceInput) (*Service, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) CatalogService {
	return &service{repo: repo}
}

func (s *service) ListCategories(ctx context.Context) ([]*CategoryNode, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*CategoryNode, len(categories))
	var roots []*CategoryNode
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{Category: c}
	}
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			// Orphaned child rows still show up at the top level.
			roots = append(roots, node)
		}
	}
	return roots, nil
}

func (s *service) ListServices(ctx context.Context, categoryID string) ([]*Service, error) {
	if categoryID != "" {
		exists, err := s.repo.CategoryExists(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCategoryNotFound
		}
	}
	return s.repo.ListServices(ctx, categoryID)
}

func (s *service) GetServiceByID(ctx context.Context, id string) (*Service, error) {
	return s.repo.GetServiceByID(ctx, id)
}

func (s *service) CreateService(ctx context.Context, providerID string, input CreateServiceInput) (*Service, error) {
	if input.BasePrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	exists, err := s.repo.CategoryExists(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCategoryNotFound
	}

	svc := &Service{
		ProviderID:      providerID,
		CategoryID:      input.CategoryID,
		Name:            strings.TrimSpace(input.Name),
		Description:     strings.TrimSpace(input.Description),
		BasePrice:       input.BasePrice,
		DurationMinutes: input.DurationMinutes,
		IsActive:        true,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}
