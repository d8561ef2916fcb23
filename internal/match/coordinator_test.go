package match

import (
	"sync"
	"testing"
	"time"

	"github.com/goalrush/goalrush/internal/game"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func lineup(power int) game.Lineup {
	return game.Lineup{Power: power}
}

func TestRequestPairsWithWaiting(t *testing.T) {
	c := NewCoordinator()

	pairing, first := c.Request(1, lineup(300), testNow)
	if pairing != nil {
		t.Fatal("first requester paired against an empty queue")
	}
	if c.Depth() != 1 || !c.Queued(1) {
		t.Fatal("first requester not enqueued")
	}

	pairing, second := c.Request(2, lineup(350), testNow)
	if pairing == nil {
		t.Fatal("second requester did not pair with the waiting ticket")
	}
	if pairing.Opponent.ID != first.ID {
		t.Errorf("paired with ticket %s, want %s", pairing.Opponent.ID, first.ID)
	}
	if pairing.Requester.ID != second.ID {
		t.Errorf("requester ticket mismatch")
	}
	if c.Depth() != 0 {
		t.Errorf("queue depth %d after pairing, want 0", c.Depth())
	}
}

// TestRequestNeverSelfPairs: an account cannot match its own ticket; a
// repeat request replaces the stale one.
func TestRequestNeverSelfPairs(t *testing.T) {
	c := NewCoordinator()

	_, stale := c.Request(1, lineup(300), testNow)
	pairing, fresh := c.Request(1, lineup(320), testNow.Add(time.Minute))
	if pairing != nil {
		t.Fatal("account paired with itself")
	}
	if c.Depth() != 1 {
		t.Fatalf("queue depth %d, want 1 (stale ticket replaced)", c.Depth())
	}
	if fresh.ID == stale.ID {
		t.Error("repeat request kept the stale ticket")
	}

	pairing, _ = c.Request(2, lineup(310), testNow.Add(2*time.Minute))
	if pairing == nil {
		t.Fatal("no pairing after replacement")
	}
	if pairing.Opponent.ID != fresh.ID || pairing.Opponent.Power != 320 {
		t.Errorf("paired with %+v, want the fresh ticket", pairing.Opponent)
	}
}

func TestCancel(t *testing.T) {
	c := NewCoordinator()
	c.Request(1, lineup(300), testNow)

	if !c.Cancel(1) {
		t.Fatal("cancel of a live ticket reported false")
	}
	if c.Depth() != 0 || c.Queued(1) {
		t.Error("ticket survived the cancel")
	}
	if c.Cancel(1) {
		t.Error("second cancel reported true")
	}
}

// TestConcurrentRequestsPairOnce: two simultaneous requesters against one
// waiting ticket produce exactly one pairing.
func TestConcurrentRequestsPairOnce(t *testing.T) {
	c := NewCoordinator()
	c.Request(1, lineup(300), testNow)

	var wg sync.WaitGroup
	results := make([]*Pairing, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Request(int64(10+i), lineup(300), testNow)
		}(i)
	}
	wg.Wait()

	paired := 0
	for _, p := range results {
		if p != nil {
			paired++
			if p.Opponent.AccountID != 1 {
				t.Errorf("paired against account %d, want 1", p.Opponent.AccountID)
			}
		}
	}
	if paired != 1 {
		t.Fatalf("%d requesters consumed a single waiting ticket", paired)
	}
	if c.Depth() != 1 {
		t.Errorf("queue depth %d, want 1 (the unpaired requester)", c.Depth())
	}
}

// TestConcurrentChurn: many goroutines requesting and cancelling never
// leave more than one ticket per account.
func TestConcurrentChurn(t *testing.T) {
	c := NewCoordinator()

	var wg sync.WaitGroup
	for id := int64(1); id <= 8; id++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Request(id, lineup(300), testNow)
				if i%3 == 0 {
					c.Cancel(id)
				}
			}
		}(id)
	}
	wg.Wait()

	if d := c.Depth(); d > 8 {
		t.Errorf("queue depth %d exceeds one ticket per account", d)
	}
	seen := make(map[int64]bool)
	for id := int64(1); id <= 8; id++ {
		if c.Queued(id) {
			if seen[id] {
				t.Errorf("account %d queued twice", id)
			}
			seen[id] = true
		}
	}
}
