package cart

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"starbrew/internal/cartstore"
)

// defaultMaxIdle bounds how long an untouched ledger stays resident. The
// store holds the durable copy, so an evicted session rehydrates on its
// next request.
const defaultMaxIdle = 30 * time.Minute

type ledgerEntry struct {
	ledger   *Ledger
	lastUsed time.Time
}

// Manager owns one ledger per session. Ledgers are rehydrated lazily from
// the store on first touch; a session whose stored cart is missing or
// corrupt simply starts empty. Idle ledgers are evicted so abandoned
// sessions do not accumulate for the process lifetime.
type Manager struct {
	mu      sync.Mutex
	ledgers map[string]*ledgerEntry
	store   cartstore.Store
	logger  *log.Logger
	maxIdle time.Duration
}

func NewManager(store cartstore.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{
		ledgers: make(map[string]*ledgerEntry),
		store:   store,
		logger:  logger,
		maxIdle: defaultMaxIdle,
	}
}

// Get returns the session's ledger, loading persisted lines the first time
// the session is seen in this process.
func (m *Manager) Get(ctx context.Context, sessionID string) *Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.evictIdle(now)

	if entry, ok := m.ledgers[sessionID]; ok {
		entry.lastUsed = now
		return entry.ledger
	}

	lines, err := m.store.Load(ctx, sessionID)
	if err != nil {
		// Stores return nil lines on bad data; an error means the backend failed.
		m.logger.Printf("cart manager: load session=%s error=%v", sessionID, err)
		lines = nil
	}
	led := NewLedger(sessionID, lines, m.store, m.logger)
	m.ledgers[sessionID] = &ledgerEntry{ledger: led, lastUsed: now}
	return led
}

// evictIdle is called with the mutex held. Every mutation persists a full
// snapshot, so dropping an idle ledger loses nothing.
func (m *Manager) evictIdle(now time.Time) {
	for id, entry := range m.ledgers {
		if now.Sub(entry.lastUsed) > m.maxIdle {
			delete(m.ledgers, id)
		}
	}
}
