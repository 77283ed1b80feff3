package domain

// LineItem is one product-quantity pair within a cart. The product is a
// snapshot taken at add time, not a live catalog reference.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// TotalCents is the extended price of the line.
func (l LineItem) TotalCents() int64 {
	return l.Product.PriceCents * int64(l.Quantity)
}

// CartSnapshot is an immutable view of a cart. ItemCount and SubtotalCents
// are derived from Lines at snapshot time and are never stored separately.
type CartSnapshot struct {
	Lines         []LineItem `json:"lineItems"`
	ItemCount     int        `json:"itemCount"`
	SubtotalCents int64      `json:"subtotalCents"`
}
