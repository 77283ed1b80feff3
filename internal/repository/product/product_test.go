package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"starbrew/internal/domain"
	"starbrew/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_lines, orders, tokens, customers, products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func TestPostgres_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	created, err := repo.Upsert(ctx, domain.Product{
		ID:         "coffee-1",
		Name:       "Caffe Americano",
		PriceCents: 325,
		Category:   "hot-coffees",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("created_at not populated")
	}

	got, err := repo.GetByID(ctx, "coffee-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Caffe Americano" || got.PriceCents != 325 {
		t.Fatalf("unexpected product: %+v", got)
	}

	// Upserting the same id updates in place.
	if _, err := repo.Upsert(ctx, domain.Product{
		ID:         "coffee-1",
		Name:       "Caffe Americano",
		PriceCents: 350,
		Category:   "hot-coffees",
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = repo.GetByID(ctx, "coffee-1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.PriceCents != 350 {
		t.Fatalf("price not updated: %d", got.PriceCents)
	}
}

func TestPostgres_GetMissing(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if _, err := repo.GetByID(ctx, "no-such"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPostgres_ListByCategory(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	seedRows := []domain.Product{
		{ID: "coffee-1", Name: "Caffe Americano", PriceCents: 325, Category: "hot-coffees"},
		{ID: "cold-1", Name: "Iced Latte", PriceCents: 475, Category: "cold-coffees"},
		{ID: "bakery-1", Name: "Butter Croissant", PriceCents: 325, Category: "bakery"},
	}
	for _, p := range seedRows {
		if _, err := repo.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert %s: %v", p.ID, err)
		}
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}

	bakery, err := repo.List(ctx, "bakery")
	if err != nil {
		t.Fatalf("list bakery: %v", err)
	}
	if len(bakery) != 1 || bakery[0].ID != "bakery-1" {
		t.Fatalf("unexpected bakery list: %+v", bakery)
	}
}
