package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"starbrew/internal/domain"
)

// Apply inserts the storefront menu for local development and manual
// testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range Menu() {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return nil
}

// Menu is the StarBrew catalog.
func Menu() []domain.Product {
	return []domain.Product{
		// Hot coffees
		{ID: "coffee-1", Name: "Caffe Americano", Description: "Espresso shots topped with hot water create a light layer of crema.", PriceCents: 325, Category: "hot-coffees"},
		{ID: "coffee-2", Name: "Blonde Roast", Description: "Lightly roasted coffee that's soft, mellow and flavorful.", PriceCents: 295, Category: "hot-coffees"},
		{ID: "coffee-3", Name: "Pike Place Roast", Description: "Our signature medium-roasted coffee with notes of cocoa and toasted nuts.", PriceCents: 295, Category: "hot-coffees"},
		{ID: "coffee-4", Name: "Dark Roast Coffee", Description: "Full-bodied dark roast coffee with bold, robust flavors.", PriceCents: 295, Category: "hot-coffees"},
		{ID: "coffee-5", Name: "Caffe Latte", Description: "Rich, full-bodied espresso with bittersweet milk and steamed milk.", PriceCents: 395, Category: "hot-coffees"},
		// Cold coffees
		{ID: "cold-1", Name: "Iced Coffee", Description: "Freshly brewed and served chilled over ice.", PriceCents: 345, Category: "cold-coffees"},
		{ID: "cold-2", Name: "Cold Brew", Description: "Slow-steeped, small-batch and super smooth.", PriceCents: 395, Category: "cold-coffees"},
		{ID: "cold-3", Name: "Nitro Cold Brew", Description: "Cold brew coffee infused with nitrogen for a naturally sweet flavor and velvety smooth texture.", PriceCents: 445, Category: "cold-coffees"},
		{ID: "cold-4", Name: "Vanilla Sweet Cream Cold Brew", Description: "Cold brew topped with vanilla-flavored sweet cream.", PriceCents: 475, Category: "cold-coffees"},
		{ID: "cold-5", Name: "Iced Caramel Macchiato", Description: "Espresso combined with vanilla-flavored syrup, milk and caramel sauce over ice.", PriceCents: 495, Category: "cold-coffees"},
		// Bakery
		{ID: "bakery-1", Name: "Butter Croissant", Description: "Classic butter croissant with a soft, flaky texture.", PriceCents: 325, Category: "bakery"},
		{ID: "bakery-2", Name: "Chocolate Croissant", Description: "Butter croissant filled with chocolate-hazelnut paste.", PriceCents: 375, Category: "bakery"},
		{ID: "bakery-3", Name: "Blueberry Muffin", Description: "Buttery muffin with blueberries, topped with granulated sugar.", PriceCents: 345, Category: "bakery"},
		{ID: "bakery-4", Name: "Classic Coffee Cake", Description: "Buttery, moist coffee cake topped with cinnamon-sugar streusel.", PriceCents: 395, Category: "bakery"},
		{ID: "bakery-5", Name: "Banana Nut Bread", Description: "Banana bread topped with walnuts.", PriceCents: 365, Category: "bakery"},
	}
}

// Categories describes the menu sections for storefront navigation.
func Categories() []domain.Category {
	return []domain.Category{
		{ID: "hot-coffees", Name: "Hot Coffees", Description: "Smooth, bold coffee classics."},
		{ID: "cold-coffees", Name: "Cold Coffees", Description: "Refreshing cold coffees for any time of day."},
		{ID: "bakery", Name: "Bakery", Description: "Delightful pastries to pair with your coffee."},
	}
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p domain.Product) error {
	const q = `
INSERT INTO products (id, name, description, price_cents, category, image_url)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''))
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category = EXCLUDED.category,
    image_url = EXCLUDED.image_url
`
	_, err := pool.Exec(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, p.Category, p.ImageURL)
	return err
}
