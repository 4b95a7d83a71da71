package service

import (
	"context"
	"time"

	"fooddelivery/internal/domain"
)

// UserDirectory is the persistent account store. Create enforces email
// uniqueness at write time; a duplicate surfaces as domain.ErrDuplicateEmail.
type UserDirectory interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	SetVerified(ctx context.Context, id domain.UserID, expiresAt time.Time) error
	SetRole(ctx context.Context, id domain.UserID, role domain.Role) (*domain.User, error)
	SetPassword(ctx context.Context, id domain.UserID, passwordHash string) error
	List(ctx context.Context) ([]domain.User, error)
	Stats(ctx context.Context, now time.Time) (*domain.UserStats, error)
}

type CategoryStore interface {
	Create(ctx context.Context, c *domain.FoodCategory) error
	List(ctx context.Context) ([]domain.FoodCategory, error)
	Update(ctx context.Context, id domain.CategoryID, name string) (*domain.FoodCategory, error)
	Delete(ctx context.Context, id domain.CategoryID) error
}

type FoodStore interface {
	Create(ctx context.Context, f *domain.Food) error
	GetByID(ctx context.Context, id domain.FoodID) (*domain.Food, error)
	List(ctx context.Context) ([]domain.Food, error)
	ListByCategory(ctx context.Context, categoryID domain.CategoryID) ([]domain.Food, error)
	Update(ctx context.Context, f *domain.Food) error
	Delete(ctx context.Context, id domain.FoodID) error
}

type OrderStore interface {
	Create(ctx context.Context, o *domain.FoodOrder) error
	ListByUser(ctx context.Context, userID domain.UserID) ([]domain.FoodOrder, error)
	List(ctx context.Context) ([]domain.FoodOrder, error)
	UpdateStatus(ctx context.Context, id domain.OrderID, status domain.OrderStatus) (*domain.FoodOrder, error)
}
