package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"starbrew/internal/cart"
	"starbrew/internal/domain"
)

var (
	// ErrSignInRequired is returned when checkout is attempted without an
	// authenticated customer. The cart is left untouched so the attempt can
	// resume after sign-in.
	ErrSignInRequired = errors.New("sign in required")
	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	// An empty order is never created.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutInFlight is returned when a checkout for the same session
	// is already submitting. The extra trigger is rejected, not queued.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

type orderSink interface {
	Create(ctx context.Context, order domain.Order) error
}

type rewardAccruer interface {
	Accrue(ctx context.Context, customerID string, points int64) error
}

// Orchestrator converts a session's cart into a submitted order at most
// once per cart state. On success the cart is cleared and its persisted
// copy removed; on failure the cart is left exactly as it was.
type Orchestrator struct {
	carts      *cart.Manager
	sink       orderSink
	rewards    rewardAccruer
	taxRateBps int64
	logger     *log.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New builds an Orchestrator. rewards may be nil; accrual is an optional
// side effect of success and never part of checkout correctness.
func New(carts *cart.Manager, sink orderSink, rewards rewardAccruer, taxRateBps int64, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Orchestrator{
		carts:      carts,
		sink:       sink,
		rewards:    rewards,
		taxRateBps: taxRateBps,
		logger:     logger,
		inflight:   make(map[string]struct{}),
	}
}

// Checkout submits the session's current cart as one order attributed to
// the customer. It returns the created order id on success.
func (o *Orchestrator) Checkout(ctx context.Context, sessionID string, customer *domain.Customer) (string, error) {
	if customer == nil {
		return "", ErrSignInRequired
	}

	// A caller that disconnects mid-checkout does not abort the submission:
	// the sink call, the cart clear and the accrual run detached from the
	// caller's cancellation, so the result is applied once it resolves.
	ctx = context.WithoutCancel(ctx)

	o.mu.Lock()
	if _, busy := o.inflight[sessionID]; busy {
		o.mu.Unlock()
		return "", ErrCheckoutInFlight
	}
	o.inflight[sessionID] = struct{}{}
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		delete(o.inflight, sessionID)
		o.mu.Unlock()
	}()

	ledger := o.carts.Get(ctx, sessionID)
	snap := ledger.Snapshot()
	if len(snap.Lines) == 0 {
		return "", ErrEmptyCart
	}

	order := o.buildOrder(snap, customer.ID)
	if err := o.sink.Create(ctx, order); err != nil {
		return "", fmt.Errorf("submit order: %w", err)
	}

	ledger.Clear(ctx)
	o.accrue(ctx, customer.ID, order)
	o.logger.Printf("checkout: order=%s customer=%s total_cents=%d", order.ID, customer.ID, order.TotalCents)
	return order.ID, nil
}

func (o *Orchestrator) buildOrder(snap domain.CartSnapshot, customerID string) domain.Order {
	lines := make([]domain.OrderLine, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID:      l.Product.ID,
			Name:           l.Product.Name,
			UnitPriceCents: l.Product.PriceCents,
			Quantity:       l.Quantity,
			TotalCents:     l.TotalCents(),
		})
	}

	tax := TaxCents(snap.SubtotalCents, o.taxRateBps)
	return domain.Order{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		Lines:         lines,
		SubtotalCents: snap.SubtotalCents,
		TaxCents:      tax,
		TotalCents:    snap.SubtotalCents + tax,
		Status:        domain.OrderStatusPending,
		PlacedAt:      time.Now().UTC(),
	}
}

// accrue awards one reward point per whole dollar of the order total.
// Accrual failure never fails the checkout.
func (o *Orchestrator) accrue(ctx context.Context, customerID string, order domain.Order) {
	if o.rewards == nil {
		return
	}
	points := order.TotalCents / 100
	if points <= 0 {
		return
	}
	if err := o.rewards.Accrue(ctx, customerID, points); err != nil {
		o.logger.Printf("checkout: accrue order=%s customer=%s error=%v", order.ID, customerID, err)
	}
}

// TaxCents applies a basis-point tax rate with half-up rounding.
func TaxCents(subtotal, rateBps int64) int64 {
	return (subtotal*rateBps + 5000) / 10000
}
