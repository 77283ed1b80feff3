package token

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"starbrew/internal/domain"
	"starbrew/internal/migrate"
)

func setup(ctx context.Context, t *testing.T) (*pgxpool.Pool, Repository) {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE tokens, customers RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return pool, NewPostgres(pool)
}

func insertCustomer(ctx context.Context, t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx,
		`INSERT INTO customers (email, password_hash) VALUES ('maya@example.com', 'hash') RETURNING id::text`).Scan(&id)
	if err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	return id
}

func TestPostgres_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	pool, repo := setup(ctx, t)
	customerID := insertCustomer(ctx, t, pool)

	tok := Token{
		Token:      "tok-1",
		CustomerID: customerID,
		Kind:       "access",
		ExpiresAt:  time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond),
	}
	if err := repo.Create(ctx, tok); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerID != customerID || got.Kind != "access" {
		t.Fatalf("unexpected token: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at not populated")
	}

	if err := repo.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPostgres_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	pool, repo := setup(ctx, t)
	customerID := insertCustomer(ctx, t, pool)

	tok := Token{Token: "tok-1", CustomerID: customerID, Kind: "access", ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Create(ctx, tok); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.Create(ctx, tok); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}
