package rewards

import (
	"context"
	"errors"
	"testing"

	"starbrew/internal/domain"
)

type stubRepo struct {
	customer *domain.Customer
	err      error
	lastID   string
	lastPts  int64
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	s.lastID = id
	return s.customer, s.err
}

func (s *stubRepo) AddRewardPoints(_ context.Context, id string, points int64) (*domain.Customer, error) {
	s.lastID = id
	s.lastPts = points
	return s.customer, s.err
}

func TestAccrue(t *testing.T) {
	repo := &stubRepo{customer: &domain.Customer{ID: "c1", RewardPoints: 60}}
	svc := New(repo, nil)

	if err := svc.Accrue(context.Background(), "c1", 10); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	if repo.lastID != "c1" || repo.lastPts != 10 {
		t.Fatalf("unexpected repo call: id=%s points=%d", repo.lastID, repo.lastPts)
	}
}

func TestAccrueRejectsNonPositivePoints(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)

	if err := svc.Accrue(context.Background(), "c1", 0); err == nil {
		t.Fatal("expected error for zero points")
	}
	if err := svc.Accrue(context.Background(), "c1", -5); err == nil {
		t.Fatal("expected error for negative points")
	}
	if repo.lastID != "" {
		t.Fatal("repo called for invalid points")
	}
}

func TestAccrueRepoError(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}
	svc := New(repo, nil)

	if err := svc.Accrue(context.Background(), "c1", 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestBalance(t *testing.T) {
	repo := &stubRepo{customer: &domain.Customer{ID: "c1", RewardPoints: 50}}
	svc := New(repo, nil)

	got, err := svc.Balance(context.Background(), "c1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != 50 {
		t.Fatalf("balance = %d, want 50", got)
	}
}

func TestBalanceUnknownCustomer(t *testing.T) {
	repo := &stubRepo{err: domain.ErrNotFound}
	svc := New(repo, nil)

	if _, err := svc.Balance(context.Background(), "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
