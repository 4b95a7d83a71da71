package impl

import (
	"context"
	"time"

	"fooddelivery/internal/domain"
	"fooddelivery/internal/dto"
	"fooddelivery/internal/service"

	"github.com/google/uuid"
)

type OrderServiceImpl struct {
	Orders service.OrderStore
	Foods  service.FoodStore
}

func NewOrderServiceImpl(orders service.OrderStore, foods service.FoodStore) *OrderServiceImpl {
	return &OrderServiceImpl{Orders: orders, Foods: foods}
}

// CreateOrder prices the order from the catalog; client-supplied prices are
// never trusted.
func (o *OrderServiceImpl) CreateOrder(ctx context.Context, userID domain.UserID, r dto.CreateOrderRequest) (*domain.FoodOrder, error) {
	if len(r.Items) == 0 {
		return nil, ErrMissingFields
	}

	var total float64
	for _, item := range r.Items {
		if item.Quantity <= 0 {
			return nil, ErrMissingFields
		}
		f, err := o.Foods.GetByID(ctx, item.FoodID)
		if err != nil {
			return nil, err
		}
		total += f.Price * float64(item.Quantity)
	}

	now := time.Now().UTC()
	order := &domain.FoodOrder{
		ID:         uuid.New(),
		UserID:     userID,
		Items:      r.Items,
		TotalPrice: total,
		Status:     domain.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := o.Orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (o *OrderServiceImpl) ListOrdersByUser(ctx context.Context, userID domain.UserID) ([]domain.FoodOrder, error) {
	return o.Orders.ListByUser(ctx, userID)
}

func (o *OrderServiceImpl) ListAllOrders(ctx context.Context) ([]domain.FoodOrder, error) {
	return o.Orders.List(ctx)
}

func (o *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.FoodOrder, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	s := domain.OrderStatus(status)
	if !domain.ValidOrderStatus(s) {
		return nil, domain.ErrInvalidStatus
	}
	return o.Orders.UpdateStatus(ctx, orderID, s)
}
