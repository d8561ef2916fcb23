// Package match owns the matchmaking queue. Every queue mutation happens
// behind one mutex, so stale-ticket removal, scanning, pairing, enqueue and
// cancel are fully serialized: two simultaneous requesters cannot both
// consume the same opposing ticket, and a ticket cannot be paired and
// cancelled concurrently.
package match

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goalrush/goalrush/internal/game"
)

// Ticket is one account's pending battle request. Tickets live only in
// process memory; they are never persisted. At most one live ticket exists
// per account.
type Ticket struct {
	ID         uuid.UUID
	AccountID  int64
	Lineup     game.Lineup
	Power      int
	EnqueuedAt time.Time
}

// Pairing is the result of matching two tickets. The requester's side was
// never enqueued; its ticket is materialized for symmetry.
type Pairing struct {
	Requester Ticket
	Opponent  Ticket
}

// Coordinator is the single owner of the queue. Callers never see the
// underlying slice.
type Coordinator struct {
	mu    sync.Mutex
	queue []Ticket
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Request performs the full matchmaking sequence under the lock:
// remove any stale ticket already owned by this account, scan for the first
// ticket owned by a different account, and either consume it (returning the
// pairing) or enqueue a fresh ticket and report searching.
//
// A crash between consuming the opponent's ticket and the caller delivering
// the battle result loses both requests; tickets are process-ephemeral by
// contract and no recovery is attempted.
func (c *Coordinator) Request(accountID int64, lineup game.Lineup, now time.Time) (*Pairing, Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(accountID)

	ticket := Ticket{
		ID:         uuid.New(),
		AccountID:  accountID,
		Lineup:     lineup,
		Power:      lineup.Power,
		EnqueuedAt: now,
	}

	for i, t := range c.queue {
		if t.AccountID != accountID {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return &Pairing{Requester: ticket, Opponent: t}, ticket
		}
	}

	c.queue = append(c.queue, ticket)
	return nil, ticket
}

// Cancel removes this account's ticket if one exists and reports whether
// anything was removed.
func (c *Coordinator) Cancel(accountID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(accountID)
}

// Queued reports whether the account currently has a live ticket.
func (c *Coordinator) Queued(accountID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.queue {
		if t.AccountID == accountID {
			return true
		}
	}
	return false
}

// Depth returns the number of waiting tickets.
func (c *Coordinator) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *Coordinator) removeLocked(accountID int64) bool {
	for i, t := range c.queue {
		if t.AccountID == accountID {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return true
		}
	}
	return false
}
