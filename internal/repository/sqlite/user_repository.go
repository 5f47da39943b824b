package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/persistence"
	"github.com/spec-kit/contact-service/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository is the SQLite implementation of repository.UserRepository.
type UserRepository struct {
	db *persistence.SQLite
}

// NewUserRepository creates a UserRepository backed by db.
func NewUserRepository(db *persistence.SQLite) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, email, password_hash, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	id := uuid.NewString()
	_, err := r.db.Writer.ExecContext(ctx, query, id, user.Email, user.PasswordHash, formatTime(now), formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Email, repository.ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM users WHERE id = ?`
	return r.fetchSingle(ctx, query, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM users WHERE email = ?`
	return r.fetchSingle(ctx, query, email)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		user               domain.User
		createdAt, updated string
	)
	err := r.db.Reader.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
		&updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if user.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &user, nil
}
