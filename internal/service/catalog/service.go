package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"starbrew/internal/domain"
)

// ErrInvalidProduct is returned when a catalog row fails validation. The
// catalog is the boundary that keeps malformed products out of carts.
var ErrInvalidProduct = errors.New("invalid product")

type productRepo interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type cacheEntry struct {
	product   domain.Product
	expiresAt time.Time
}

// Service resolves products for display and for add-to-cart. Lookups of
// the same id are collapsed with singleflight over a small TTL cache, since
// every add-to-cart click resolves its product here.
type Service struct {
	repo     productRepo
	sfg      singleflight.Group
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func New(repo productRepo) *Service {
	return &Service{
		repo:     repo,
		cacheTTL: 5 * time.Minute,
		cache:    make(map[string]cacheEntry),
	}
}

// Resolve returns the validated product for the id. Carts only ever see
// products that passed through here.
func (s *Service) Resolve(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}

	s.mu.RLock()
	entry, ok := s.cache[id]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		p := entry.product
		return &p, nil
	}

	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := Validate(*p); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[id] = cacheEntry{product: *p, expiresAt: time.Now().Add(s.cacheTTL)}
		s.mu.Unlock()
		return *p, nil
	})
	if err != nil {
		return nil, err
	}
	p := v.(domain.Product)
	return &p, nil
}

// List returns products, optionally filtered by category.
func (s *Service) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

// Validate rejects products that would corrupt cart state downstream.
func Validate(p domain.Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: missing name for %s", ErrInvalidProduct, p.ID)
	}
	if p.PriceCents <= 0 {
		return fmt.Errorf("%w: non-positive price for %s", ErrInvalidProduct, p.ID)
	}
	return nil
}
