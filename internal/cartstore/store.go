package cartstore

import (
	"context"

	"starbrew/internal/domain"
)

// Store keeps a durable copy of a session's cart so it survives restarts.
// The cart is a convenience cache of user intent, not a system of record:
// Save is best-effort and Load degrades to an empty cart on any bad data.
type Store interface {
	// Save overwrites the stored cart with a complete snapshot of lines.
	Save(ctx context.Context, sessionID string, lines []domain.LineItem) error
	// Load returns the stored lines, or nil when nothing usable is stored.
	// Missing records, corrupt payloads and schema drift are not errors.
	Load(ctx context.Context, sessionID string) ([]domain.LineItem, error)
	// Delete removes the stored cart, typically after a successful checkout.
	Delete(ctx context.Context, sessionID string) error
}

// storedLine is the durable cart layout. Unknown fields in stored payloads
// are ignored and missing fields default, so older records keep loading.
type storedLine struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Category       string `json:"category,omitempty"`
	ImageRef       string `json:"imageRef,omitempty"`
	Quantity       int    `json:"quantity"`
}

func toStored(lines []domain.LineItem) []storedLine {
	out := make([]storedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, storedLine{
			ProductID:      l.Product.ID,
			Name:           l.Product.Name,
			UnitPriceCents: l.Product.PriceCents,
			Category:       l.Product.Category,
			ImageRef:       l.Product.ImageURL,
			Quantity:       l.Quantity,
		})
	}
	return out
}

// fromStored rebuilds line items, dropping entries that fail basic
// validation instead of rejecting the whole payload.
func fromStored(stored []storedLine) []domain.LineItem {
	var out []domain.LineItem
	for _, s := range stored {
		if s.ProductID == "" || s.Quantity < 1 {
			continue
		}
		out = append(out, domain.LineItem{
			Product: domain.Product{
				ID:         s.ProductID,
				Name:       s.Name,
				PriceCents: s.UnitPriceCents,
				Category:   s.Category,
				ImageURL:   s.ImageRef,
			},
			Quantity: s.Quantity,
		})
	}
	return out
}
