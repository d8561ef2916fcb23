// Package service orchestrates the economy core: it owns the account table,
// applies every mutation, and writes the full state through to the store
// after each one. All mutations are serialized behind one mutex; the
// matchmaking queue has its own lock inside the coordinator.
package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/goalrush/goalrush/internal/game"
	"github.com/goalrush/goalrush/internal/log"
	"github.com/goalrush/goalrush/internal/match"
	"github.com/goalrush/goalrush/internal/store"
)

// Service exposes every operation of the economy core to the platform
// adapters. Callers are identified by an opaque numeric id plus an optional
// display name; accounts are created lazily on first contact.
type Service struct {
	mu       sync.Mutex
	catalog  *game.Catalog
	eco      game.Economy
	accounts map[int64]*game.Account
	store    store.Store
	queue    *match.Coordinator
	rng      *rand.Rand
	events   log.EventLogger
	now      func() time.Time
}

// Option tweaks a Service at construction time.
type Option func(*Service)

// WithRand injects a deterministic random source. The default is seeded
// from the wall clock.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithEvents injects the economy event logger.
func WithEvents(events log.EventLogger) Option {
	return func(s *Service) { s.events = events }
}

// New restores the account table from the store and wires the coordinator.
func New(ctx context.Context, catalog *game.Catalog, eco game.Economy, st store.Store, opts ...Option) (*Service, error) {
	s := &Service{
		catalog:  catalog,
		eco:      eco,
		accounts: make(map[int64]*game.Account),
		store:    st,
		queue:    match.NewCoordinator(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		events:   log.Discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range loaded {
		s.accounts[a.ID] = a
	}
	return s, nil
}

// account returns the caller's account, creating it lazily with defaults
// and running the on-demand free-pack refill check. Callers hold s.mu.
func (s *Service) account(id int64, name string) *game.Account {
	a, ok := s.accounts[id]
	if !ok {
		a = game.NewAccount(id, name, s.eco, s.now())
		s.accounts[id] = a
		s.events.Log(log.NewAccountCreatedEvent(id, name))
		return a
	}
	if name != "" && a.Name != name {
		a.Name = name
	}
	if a.CheckRefill(s.now()) {
		s.events.Log(log.NewRefillEvent(id, a.FreePacks))
	}
	return a
}

// persist writes the whole account table through to the store. Called with
// s.mu held, after the in-memory mutation has committed. A store failure is
// logged rather than unwinding the mutation; the next successful save
// catches the state up.
func (s *Service) persist(ctx context.Context) {
	accounts := make([]*game.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	if err := s.store.Save(ctx, accounts); err != nil {
		slog.Error("failed to persist account table", "error", err)
	}
}

// Economy returns the active tuning.
func (s *Service) Economy() game.Economy {
	return s.eco
}

// Catalog returns the loaded card catalog.
func (s *Service) Catalog() *game.Catalog {
	return s.catalog
}
