package store

import (
	"context"
	"sync"

	"github.com/goalrush/goalrush/internal/game"
)

// MemStore holds the last saved snapshot in memory. Used in tests and for
// running without durability.
type MemStore struct {
	mu    sync.Mutex
	last  []AccountRecord
	Saves int // number of Save calls, for write-through assertions
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(ctx context.Context, accounts []*game.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = make([]AccountRecord, 0, len(accounts))
	for _, a := range accounts {
		s.last = append(s.last, RecordFromAccount(a))
	}
	s.Saves++
	return nil
}

func (s *MemStore) Load(ctx context.Context) ([]*game.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts := make([]*game.Account, 0, len(s.last))
	for _, rec := range s.last {
		accounts = append(accounts, rec.ToAccount())
	}
	return accounts, nil
}
