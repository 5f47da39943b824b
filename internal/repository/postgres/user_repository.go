package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository stores users in PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, password_hash)
        VALUES ($1, $2)
        RETURNING id::text, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapError("create user", err)
}

// GetByID looks a user up by id. A malformed id is reported as ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	const query = `
        SELECT id::text, email, password_hash, created_at, updated_at
        FROM users WHERE id = $1`
	return r.fetchSingle(ctx, query, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id::text, email, password_hash, created_at, updated_at
        FROM users WHERE LOWER(email) = LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, mapError("count users", err)
}

func (r *UserRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, mapError("get user", err)
	}
	return &user, nil
}
