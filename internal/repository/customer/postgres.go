package customer

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"starbrew/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (email, name, password_hash, reward_points)
VALUES ($1, $2, $3, $4)
RETURNING id::text, email, COALESCE(name, ''), password_hash, reward_points, created_at
`
	row := r.pool.QueryRow(ctx, q, strings.ToLower(c.Email), c.Name, c.PasswordHash, c.RewardPoints)
	out, err := scanCustomer(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: create email=%s error=%v", c.Email, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, COALESCE(name, ''), password_hash, reward_points, created_at
FROM customers
WHERE lower(email) = lower($1)
LIMIT 1
`
	return r.get(ctx, q, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, email, COALESCE(name, ''), password_hash, reward_points, created_at
FROM customers
WHERE id = $1
`
	return r.get(ctx, q, id)
}

func (r *postgresRepo) AddRewardPoints(ctx context.Context, id string, points int64) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET reward_points = reward_points + $2
WHERE id = $1
RETURNING id::text, email, COALESCE(name, ''), password_hash, reward_points, created_at
`
	out, err := scanCustomer(r.pool.QueryRow(ctx, q, id, points))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: add points id=%s error=%v", id, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) get(ctx context.Context, query, arg string) (*domain.Customer, error) {
	out, err := scanCustomer(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get error=%v", err)
		return nil, err
	}
	return out, nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.RewardPoints, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
