package service

import (
	"context"

	"fooddelivery/internal/domain"
	"fooddelivery/internal/dto"
)

type CatalogService interface {
	CreateCategory(ctx context.Context, r dto.CreateCategoryRequest) (*domain.FoodCategory, error)
	ListCategories(ctx context.Context) ([]domain.FoodCategory, error)
	UpdateCategory(ctx context.Context, id, name string) (*domain.FoodCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateFood(ctx context.Context, r dto.CreateFoodRequest) (*domain.Food, error)
	GetFood(ctx context.Context, id string) (*domain.Food, error)
	ListFoods(ctx context.Context) ([]domain.Food, error)
	ListFoodsByCategory(ctx context.Context, categoryID string) ([]domain.Food, error)
	UpdateFood(ctx context.Context, id string, r dto.UpdateFoodRequest) (*domain.Food, error)
	DeleteFood(ctx context.Context, id string) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID domain.UserID, r dto.CreateOrderRequest) (*domain.FoodOrder, error)
	ListOrdersByUser(ctx context.Context, userID domain.UserID) ([]domain.FoodOrder, error)
	ListAllOrders(ctx context.Context) ([]domain.FoodOrder, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*domain.FoodOrder, error)
}
