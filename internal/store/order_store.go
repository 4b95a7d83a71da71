package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fooddelivery/internal/domain"
)

type OrderStore struct {
	db *sql.DB
}

const orderColumns = `id, user_id, items, total_price, status, created_at, updated_at`

func (s *OrderStore) Create(ctx context.Context, o *domain.FoodOrder) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	query := `INSERT INTO food_orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = s.db.ExecContext(ctx, query, o.ID, o.UserID, items, o.TotalPrice, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID domain.UserID) ([]domain.FoodOrder, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM food_orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (s *OrderStore) List(ctx context.Context) ([]domain.FoodOrder, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM food_orders ORDER BY created_at DESC`)
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id domain.OrderID, status domain.OrderStatus) (*domain.FoodOrder, error) {
	query := `UPDATE food_orders SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + orderColumns
	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (s *OrderStore) list(ctx context.Context, query string, args ...any) ([]domain.FoodOrder, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var orders []domain.FoodOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func scanOrder(row rowScanner) (*domain.FoodOrder, error) {
	o := &domain.FoodOrder{}
	var items []byte
	err := row.Scan(&o.ID, &o.UserID, &items, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	return o, nil
}
