package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fooddelivery/internal/domain"
)

type CategoryStore struct {
	db *sql.DB
}

func (s *CategoryStore) Create(ctx context.Context, c *domain.FoodCategory) error {
	query := `INSERT INTO food_categories (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, c.ID, c.Name, c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCategory
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *CategoryStore) List(ctx context.Context) ([]domain.FoodCategory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM food_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var cats []domain.FoodCategory
	for rows.Next() {
		var c domain.FoodCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *CategoryStore) Update(ctx context.Context, id domain.CategoryID, name string) (*domain.FoodCategory, error) {
	query := `UPDATE food_categories SET name = $2 WHERE id = $1 RETURNING id, name, created_at`
	var c domain.FoodCategory
	err := s.db.QueryRowContext(ctx, query, id, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateCategory
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id domain.CategoryID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM food_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

type FoodStore struct {
	db *sql.DB
}

const foodColumns = `id, name, price, image_url, category_id, created_at, updated_at`

func (s *FoodStore) Create(ctx context.Context, f *domain.Food) error {
	query := `INSERT INTO foods (` + foodColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(ctx, query, f.ID, f.Name, f.Price, f.ImageURL, f.CategoryID, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *FoodStore) GetByID(ctx context.Context, id domain.FoodID) (*domain.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods WHERE id = $1`
	var f domain.Food
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&f.ID, &f.Name, &f.Price, &f.ImageURL, &f.CategoryID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &f, nil
}

func (s *FoodStore) List(ctx context.Context) ([]domain.Food, error) {
	return s.list(ctx, `SELECT `+foodColumns+` FROM foods ORDER BY created_at DESC`)
}

func (s *FoodStore) ListByCategory(ctx context.Context, categoryID domain.CategoryID) ([]domain.Food, error) {
	return s.list(ctx, `SELECT `+foodColumns+` FROM foods WHERE category_id = $1 ORDER BY created_at DESC`, categoryID)
}

func (s *FoodStore) list(ctx context.Context, query string, args ...any) ([]domain.Food, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var foods []domain.Food
	for rows.Next() {
		var f domain.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.ImageURL, &f.CategoryID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func (s *FoodStore) Update(ctx context.Context, f *domain.Food) error {
	query := `UPDATE foods SET name = $2, price = $3, image_url = $4, category_id = $5, updated_at = $6 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, f.ID, f.Name, f.Price, f.ImageURL, f.CategoryID, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrFoodNotFound
	}
	return nil
}

func (s *FoodStore) Delete(ctx context.Context, id domain.FoodID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM foods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrFoodNotFound
	}
	return nil
}
