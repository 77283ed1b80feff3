package domain

import "time"

type Customer struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	RewardPoints int64     `json:"rewardPoints"`
	CreatedAt    time.Time `json:"createdAt"`
}
