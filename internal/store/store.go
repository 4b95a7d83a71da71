// Package store implements the persistent stores on postgres, plus an
// in-memory variant of the user directory for development and tests.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"fooddelivery/internal/store/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

func (s *Store) Users() *UserStore          { return &UserStore{db: s.db} }
func (s *Store) Categories() *CategoryStore { return &CategoryStore{db: s.db} }
func (s *Store) Foods() *FoodStore          { return &FoodStore{db: s.db} }
func (s *Store) Orders() *OrderStore        { return &OrderStore{db: s.db} }
