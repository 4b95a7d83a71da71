package dto

import "fooddelivery/internal/domain"

type CreateFoodRequest struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	CategoryID string  `json:"categoryId"`
}

type UpdateFoodRequest struct {
	Name       *string  `json:"name,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	ImageURL   *string  `json:"imageUrl,omitempty"`
	CategoryID *string  `json:"categoryId,omitempty"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateOrderRequest struct {
	Items []domain.OrderItem `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
