package cart

import (
	"context"
	"io"
	"log"
	"sync"

	"starbrew/internal/domain"
)

// Saver receives the full line set after every mutation. A Saver failure is
// logged and swallowed: persistence is best-effort and never rolls back the
// in-memory mutation that triggered it.
type Saver interface {
	Save(ctx context.Context, sessionID string, lines []domain.LineItem) error
	Delete(ctx context.Context, sessionID string) error
}

// Ledger is the sole writer of one session's cart. Lines keep first-add
// order and hold at most one entry per product id. All derived values are
// recomputed on read, never cached across mutations.
type Ledger struct {
	mu        sync.Mutex
	sessionID string
	lines     []domain.LineItem
	saver     Saver
	logger    *log.Logger
}

// NewLedger builds a ledger over the given starting lines, normally the
// result of a Saver load at session start. Lines with duplicate product ids
// are merged so the one-line-per-product invariant holds from the start.
func NewLedger(sessionID string, lines []domain.LineItem, saver Saver, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	l := &Ledger{sessionID: sessionID, saver: saver, logger: logger}
	for _, line := range lines {
		if line.Product.ID == "" || line.Quantity < 1 {
			continue
		}
		if i := l.find(line.Product.ID); i >= 0 {
			l.lines[i].Quantity += line.Quantity
			continue
		}
		l.lines = append(l.lines, line)
	}
	return l
}

// Add merges the product into the cart: a new line with quantity 1 when the
// product is not present, otherwise a quantity increment on the existing
// line. The returned event distinguishes the two cases.
func (l *Ledger) Add(ctx context.Context, p domain.Product) (domain.CartSnapshot, Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var ev Event
	if i := l.find(p.ID); i >= 0 {
		l.lines[i].Quantity++
		ev = Event{Kind: EventItemAddedAgain, ProductName: p.Name}
	} else {
		l.lines = append(l.lines, domain.LineItem{Product: p, Quantity: 1})
		ev = Event{Kind: EventItemAdded, ProductName: p.Name}
	}
	l.persist(ctx)
	return l.snapshot(), ev
}

// Remove deletes the line for the product id. Removing an absent product is
// a no-op, not an error.
func (l *Ledger) Remove(ctx context.Context, productID string) (domain.CartSnapshot, Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.find(productID)
	if i < 0 {
		return l.snapshot(), Event{}
	}
	name := l.lines[i].Product.Name
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
	l.persist(ctx)
	return l.snapshot(), Event{Kind: EventItemRemoved, ProductName: name}
}

// SetQuantity sets the line's quantity absolutely. A quantity below 1 means
// removal, identical to Remove. Unknown product ids are a no-op.
func (l *Ledger) SetQuantity(ctx context.Context, productID string, quantity int) (domain.CartSnapshot, Event) {
	if quantity < 1 {
		return l.Remove(ctx, productID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.find(productID)
	if i < 0 {
		return l.snapshot(), Event{}
	}
	l.lines[i].Quantity = quantity
	l.persist(ctx)
	return l.snapshot(), Event{Kind: EventQuantityChanged, ProductName: l.lines[i].Product.Name}
}

// Clear empties the cart. Used both for the explicit user action and for
// the post-checkout reset.
func (l *Ledger) Clear(ctx context.Context) (domain.CartSnapshot, Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = nil
	if err := l.saver.Delete(ctx, l.sessionID); err != nil {
		l.logger.Printf("cart ledger: delete session=%s error=%v", l.sessionID, err)
	}
	return l.snapshot(), Event{Kind: EventCleared}
}

// Snapshot returns a freshly derived view of the cart. Lines are copied so
// callers can never alias ledger state.
func (l *Ledger) Snapshot() domain.CartSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Ledger) snapshot() domain.CartSnapshot {
	snap := domain.CartSnapshot{Lines: make([]domain.LineItem, len(l.lines))}
	copy(snap.Lines, l.lines)
	for _, line := range snap.Lines {
		snap.ItemCount += line.Quantity
		snap.SubtotalCents += line.TotalCents()
	}
	return snap
}

func (l *Ledger) find(productID string) int {
	for i, line := range l.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// persist is called with the mutex held so saves always see a complete,
// self-consistent snapshot in mutation order.
func (l *Ledger) persist(ctx context.Context) {
	lines := make([]domain.LineItem, len(l.lines))
	copy(lines, l.lines)
	if err := l.saver.Save(ctx, l.sessionID, lines); err != nil {
		l.logger.Printf("cart ledger: save session=%s error=%v", l.sessionID, err)
	}
}
