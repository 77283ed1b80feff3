package rewards

import (
	"context"
	"errors"
	"io"
	"log"

	"starbrew/internal/domain"
)

type customerRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	AddRewardPoints(ctx context.Context, id string, points int64) (*domain.Customer, error)
}

// Service maintains the loyalty star balance: one star per dollar spent,
// accrued after each successful checkout.
type Service struct {
	repo   customerRepo
	logger *log.Logger
}

func New(repo customerRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

// Accrue adds points to the customer's balance.
func (s *Service) Accrue(ctx context.Context, customerID string, points int64) error {
	if points <= 0 {
		return errors.New("points must be positive")
	}
	c, err := s.repo.AddRewardPoints(ctx, customerID, points)
	if err != nil {
		return err
	}
	s.logger.Printf("rewards: customer=%s accrued=%d balance=%d", customerID, points, c.RewardPoints)
	return nil
}

// Balance returns the customer's current star balance.
func (s *Service) Balance(ctx context.Context, customerID string) (int64, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return c.RewardPoints, nil
}
