package httpserver

import (
	"time"

	"starbrew/internal/checkout"
	"starbrew/internal/domain"
)

type lineItemResponse struct {
	Product    domain.Product `json:"product"`
	Quantity   int            `json:"quantity"`
	TotalCents int64          `json:"totalCents"`
}

type cartResponse struct {
	LineItems     []lineItemResponse `json:"lineItems"`
	ItemCount     int                `json:"itemCount"`
	SubtotalCents int64              `json:"subtotalCents"`
	TaxCents      int64              `json:"taxCents"`
	TotalCents    int64              `json:"totalCents"`
	Message       string             `json:"message,omitempty"`
}

func toCartResponse(snap domain.CartSnapshot, taxRateBps int64, message string) cartResponse {
	lines := make([]lineItemResponse, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, lineItemResponse{
			Product:    l.Product,
			Quantity:   l.Quantity,
			TotalCents: l.TotalCents(),
		})
	}
	tax := checkout.TaxCents(snap.SubtotalCents, taxRateBps)
	return cartResponse{
		LineItems:     lines,
		ItemCount:     snap.ItemCount,
		SubtotalCents: snap.SubtotalCents,
		TaxCents:      tax,
		TotalCents:    snap.SubtotalCents + tax,
		Message:       message,
	}
}

type customerResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	RewardPoints int64     `json:"rewardPoints"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:           c.ID,
		Email:        c.Email,
		Name:         c.Name,
		RewardPoints: c.RewardPoints,
		CreatedAt:    c.CreatedAt,
	}
}

type signinResponse struct {
	Customer     customerResponse `json:"customer"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	ExpiresIn    int              `json:"expiresIn"`
}
