package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderLine freezes a cart line at checkout time.
type OrderLine struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	TotalCents     int64  `json:"totalCents"`
}

// Order is the immutable result of a successful checkout. Status transitions
// after placement belong to order fulfilment, not to the checkout flow.
type Order struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customerId"`
	Lines         []OrderLine `json:"lineItems"`
	SubtotalCents int64       `json:"subtotalCents"`
	TaxCents      int64       `json:"taxCents"`
	TotalCents    int64       `json:"totalCents"`
	Status        OrderStatus `json:"status"`
	PlacedAt      time.Time   `json:"placedAt"`
}
