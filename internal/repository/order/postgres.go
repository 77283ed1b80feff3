package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"starbrew/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Create inserts the order and its lines in one transaction so a partially
// written order can never be observed.
func (r *postgresRepo) Create(ctx context.Context, o domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const orderQ = `
INSERT INTO orders (id, customer_id, subtotal_cents, tax_cents, total_cents, status, placed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	if _, err := tx.Exec(ctx, orderQ, o.ID, o.CustomerID, o.SubtotalCents, o.TaxCents, o.TotalCents, string(o.Status), o.PlacedAt); err != nil {
		r.logger.Printf("order repo: insert order id=%s error=%v", o.ID, err)
		return err
	}

	const lineQ = `
INSERT INTO order_lines (order_id, product_id, name, unit_price_cents, quantity, total_cents)
VALUES ($1, $2, $3, $4, $5, $6)
`
	for _, l := range o.Lines {
		if _, err := tx.Exec(ctx, lineQ, o.ID, l.ProductID, l.Name, l.UnitPriceCents, l.Quantity, l.TotalCents); err != nil {
			r.logger.Printf("order repo: insert line order=%s product=%s error=%v", o.ID, l.ProductID, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, customer_id::text, subtotal_cents, tax_cents, total_cents, status, placed_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	var status string
	err := r.pool.QueryRow(ctx, q, id).Scan(&o.ID, &o.CustomerID, &o.SubtotalCents, &o.TaxCents, &o.TotalCents, &status, &o.PlacedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	o.Status = domain.OrderStatus(status)

	lines, err := r.lines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, customer_id::text, subtotal_cents, tax_cents, total_cents, status, placed_at
FROM orders
WHERE customer_id = $1
ORDER BY placed_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("order repo: list customer=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.SubtotalCents, &o.TaxCents, &o.TotalCents, &status, &o.PlacedAt); err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.lines(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

func (r *postgresRepo) lines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT product_id, name, unit_price_cents, quantity, total_cents
FROM order_lines
WHERE order_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.UnitPriceCents, &l.Quantity, &l.TotalCents); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
