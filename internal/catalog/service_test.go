package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	categories []Category
	services   map[string]*Service
	created    *Service
}

func (r *fakeRepo) ListCategories(_ context.Context) ([]Category, error) {
	return r.categories, nil
}

func (r *fakeRepo) CategoryExists(_ context.Context, id string) (bool, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateService(_ context.Context, svc *Service) error {
	svc.ID = "svc-1"
	r.created = svc
	return nil
}

func (r *fakeRepo) GetServiceByID(_ context.Context, id string) (*Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (r *fakeRepo) ListServices(_ context.Context, categoryID string) ([]*Service, error) {
	var out []*Service
	for _, s := range r.services {
		if categoryID == "" || s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestListCategoriesTree(t *testing.T) {
	repo := &fakeRepo{categories: []Category{
		{ID: "root-1", Name: "Cleaning"},
		{ID: "root-2", Name: "Repairs"},
		{ID: "child-1", ParentID: strPtr("root-1"), Name: "Deep Cleaning"},
		{ID: "child-2", ParentID: strPtr("root-1"), Name: "Window Cleaning"},
		{ID: "orphan", ParentID: strPtr("gone"), Name: "Lost"},
	}}
	svc := NewService(repo)

	roots, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 3)

	byID := make(map[string]*CategoryNode)
	for _, n := range roots {
		byID[n.ID] = n
	}
	require.Contains(t, byID, "root-1")
	assert.Len(t, byID["root-1"].Children, 2)
	assert.Empty(t, byID["root-2"].Children)
	// Rows pointing at a missing parent surface at the top level.
	assert.Contains(t, byID, "orphan")
}

func TestListServicesUnknownCategory(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.ListServices(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateService(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{categories: []Category{{ID: "cat-1", Name: "Cleaning"}}}
	svc := NewService(repo)

	valid := CreateServiceInput{
		CategoryID:      "cat-1",
		Name:            "  Deep Cleaning  ",
		Description:     "Full apartment cleaning",
		BasePrice:       80,
		DurationMinutes: 120,
	}

	t.Run("invalid price", func(t *testing.T) {
		input := valid
		input.BasePrice = 0
		_, err := svc.CreateService(ctx, "prov-1", input)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("invalid duration", func(t *testing.T) {
		input := valid
		input.DurationMinutes = -30
		_, err := svc.CreateService(ctx, "prov-1", input)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("unknown category", func(t *testing.T) {
		input := valid
		input.CategoryID = "missing"
		_, err := svc.CreateService(ctx, "prov-1", input)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("success trims and activates", func(t *testing.T) {
		created, err := svc.CreateService(ctx, "prov-1", valid)
		require.NoError(t, err)
		assert.Equal(t, "Deep Cleaning", created.Name)
		assert.Equal(t, "prov-1", created.ProviderID)
		assert.True(t, created.IsActive)
		require.NotNil(t, repo.created)
	})
}
