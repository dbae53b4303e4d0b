package http

import (
	"time"

	"github.com/homease/home-services-backend/internal/catalog"
)

type CreateServiceRequest struct {
	CategoryID      string  `json:"category_id" binding:"required,uuid"`
	Name            string  `json:"name" binding:"required,max=200"`
	Description     string  `json:"description" binding:"omitempty,max=2000"`
	BasePrice       float64 `json:"base_price" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
}

type ListServicesRequest struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

type CategoryResponse struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Icon     string             `json:"icon,omitempty"`
	Children []CategoryResponse `json:"children,omitempty"`
}

func NewCategoryResponse(node *catalog.CategoryNode) CategoryResponse {
	resp := CategoryResponse{
		ID:   node.ID,
		Name: node.Name,
		Icon: node.Icon,
	}
	for _, child := range node.Children {
		resp.Children = append(resp.Children, NewCategoryResponse(child))
	}
	return resp
}

type ServiceResponse struct {
	ID              string    `json:"id"`
	ProviderID      string    `json:"provider_id"`
	CategoryID      string    `json:"category_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	BasePrice       float64   `json:"base_price"`
	DurationMinutes int       `json:"duration_minutes"`
	BusinessName    string    `json:"business_name"`
	AvgRating       float64   `json:"avg_rating"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		ProviderID:      s.ProviderID,
		CategoryID:      s.CategoryID,
		Name:            s.Name,
		Description:     s.Description,
		BasePrice:       s.BasePrice,
		DurationMinutes: s.DurationMinutes,
		BusinessName:    s.BusinessName,
		AvgRating:       s.AvgRating,
		CreatedAt:       s.CreatedAt,
	}
}
