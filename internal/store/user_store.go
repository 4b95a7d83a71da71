package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/domain"
)

type UserStore struct {
	db *sql.DB
}

func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, role, is_verified, ttl, phone, address, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Role, u.IsVerified, u.ExpiresAt,
		u.Phone, u.Address, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		// ux_users_email is the arbiter for concurrent duplicate signups.
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const userColumns = `id, email, password_hash, role, is_verified, ttl, phone, address, created_at, updated_at`

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

func (s *UserStore) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *UserStore) SetVerified(ctx context.Context, id domain.UserID, expiresAt time.Time) error {
	query := `UPDATE users SET is_verified = true, ttl = $2, updated_at = now() WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, expiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (s *UserStore) SetRole(ctx context.Context, id domain.UserID, role domain.Role) (*domain.User, error) {
	query := `UPDATE users SET role = $2, updated_at = now() WHERE id = $1
	          RETURNING ` + userColumns
	return s.scanOne(s.db.QueryRowContext(ctx, query, id, role))
}

func (s *UserStore) SetPassword(ctx context.Context, id domain.UserID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *UserStore) Stats(ctx context.Context, now time.Time) (*domain.UserStats, error) {
	weekAgo := now.AddDate(0, 0, -7)
	query := `SELECT
	            count(*),
	            count(*) FILTER (WHERE is_verified),
	            count(*) FILTER (WHERE role = 'Admin'),
	            count(*) FILTER (WHERE ttl > $1),
	            count(*) FILTER (WHERE created_at >= $2)
	          FROM users`
	var st domain.UserStats
	err := s.db.QueryRowContext(ctx, query, now, weekAgo).Scan(
		&st.TotalUsers, &st.VerifiedUsers, &st.AdminUsers, &st.ActiveUsers, &st.NewUsersThisWeek)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var ttl sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsVerified, &ttl,
		&u.Phone, &u.Address, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if ttl.Valid {
		t := ttl.Time
		u.ExpiresAt = &t
	}
	return u, nil
}

func (s *UserStore) scanOne(row *sql.Row) (*domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
