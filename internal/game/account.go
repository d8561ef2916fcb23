package game

import (
	"sort"
	"strings"
	"time"
)

const (
	// FreePackMax is the ceiling of the free-pack counter.
	FreePackMax = 5
	// FreePackInterval is the wall-clock window between free-pack refills.
	FreePackInterval = 4 * time.Hour
)

// Account aggregates one player's economy state: ledger, collection,
// free-pack timer, rating and dice statistics.
type Account struct {
	ID   int64
	Name string

	Balances map[Currency]int64

	// Collection is ordered by acquisition; instance ids are monotonic.
	Collection []CardInstance
	NextCardID int64

	FreePacks  int
	LastRefill time.Time

	Rating int

	DiceWins   int
	DiceLosses int
	DiceRolls  int

	CreatedAt time.Time
}

// NewAccount creates an account with default balances. The free-pack clock
// starts at creation time.
func NewAccount(id int64, name string, eco Economy, now time.Time) *Account {
	return &Account{
		ID:   id,
		Name: name,
		Balances: map[Currency]int64{
			CurrencyCoins: eco.StartingCoins,
		},
		NextCardID: 1,
		FreePacks:  eco.FreePackCount,
		LastRefill: now,
		CreatedAt:  now,
	}
}

// Reset restores the account to its creation defaults, destroying the
// collection and all balances.
func (a *Account) Reset(eco Economy, now time.Time) {
	a.Balances = map[Currency]int64{CurrencyCoins: eco.StartingCoins}
	a.Collection = nil
	a.NextCardID = 1
	a.FreePacks = eco.FreePackCount
	a.LastRefill = now
	a.Rating = 0
	a.DiceWins = 0
	a.DiceLosses = 0
	a.DiceRolls = 0
}

// --- Ledger ---

// Balance returns the current amount of one currency.
func (a *Account) Balance(c Currency) int64 {
	return a.Balances[c]
}

// Credit adds amount to a balance. Amount must not be negative.
func (a *Account) Credit(c Currency, amount int64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if a.Balances == nil {
		a.Balances = make(map[Currency]int64)
	}
	a.Balances[c] += amount
	return nil
}

// Debit subtracts amount from a balance, failing with ErrInsufficientFunds
// and no mutation when the balance is short.
func (a *Account) Debit(c Currency, amount int64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if a.Balances[c] < amount {
		return ErrInsufficientFunds
	}
	a.Balances[c] -= amount
	return nil
}

// Convert spends cost in one currency to gain another. The payer-side
// balance is checked before anything mutates; on success both the debit and
// the credit apply.
func (a *Account) Convert(from Currency, cost int64, to Currency, gain int64) error {
	if cost < 0 || gain < 0 {
		return ErrNegativeAmount
	}
	if a.Balances[from] < cost {
		return ErrInsufficientFunds
	}
	a.Balances[from] -= cost
	a.Balances[to] += gain
	return nil
}

// --- Free-pack regeneration ---

// CheckRefill refills the free-pack counter to the maximum when at least
// one full interval has passed since the last refill. Refill is a pure
// function of wall-clock time evaluated on demand; there is no scheduler.
func (a *Account) CheckRefill(now time.Time) bool {
	if now.Sub(a.LastRefill) >= FreePackInterval {
		a.FreePacks = FreePackMax
		a.LastRefill = now
		return true
	}
	return false
}

// TimeUntilRefill reports how long until the next refill, floored at zero.
func (a *Account) TimeUntilRefill(now time.Time) time.Duration {
	left := FreePackInterval - now.Sub(a.LastRefill)
	if left < 0 {
		return 0
	}
	return left
}

// --- Collection ---

// AddCard appends an owned copy of the definition, assigning the next
// per-account instance id.
func (a *Account) AddCard(def CardDefinition, now time.Time) CardInstance {
	ci := CardInstance{
		InstanceID: a.NextCardID,
		Def:        def,
		AcquiredAt: now,
	}
	a.NextCardID++
	a.Collection = append(a.Collection, ci)
	return ci
}

// Insert places an already-drawn instance into the collection, assigning
// its per-account id.
func (a *Account) Insert(ci CardInstance) CardInstance {
	ci.InstanceID = a.NextCardID
	a.NextCardID++
	a.Collection = append(a.Collection, ci)
	return ci
}

// FindCard returns a pointer to the instance with the given id.
func (a *Account) FindCard(instanceID int64) (*CardInstance, bool) {
	for i := range a.Collection {
		if a.Collection[i].InstanceID == instanceID {
			return &a.Collection[i], true
		}
	}
	return nil, false
}

// CountDuplicates counts instances sharing an identity key.
func (a *Account) CountDuplicates(key CardKey) int {
	n := 0
	for _, ci := range a.Collection {
		if ci.Key() == key {
			n++
		}
	}
	return n
}

// removeDuplicates removes up to n instances matching the key and reports
// how many were removed. Removal order among duplicates is unconstrained.
func (a *Account) removeDuplicates(key CardKey, n int) int {
	removed := 0
	kept := a.Collection[:0]
	for _, ci := range a.Collection {
		if removed < n && ci.Key() == key {
			removed++
			continue
		}
		kept = append(kept, ci)
	}
	a.Collection = kept
	return removed
}

// SortedCollection returns the collection ordered newest instance first.
func (a *Account) SortedCollection() []CardInstance {
	out := make([]CardInstance, len(a.Collection))
	copy(out, a.Collection)
	sort.Slice(out, func(i, j int) bool {
		return out[i].InstanceID > out[j].InstanceID
	})
	return out
}

// SearchCollection returns instances whose display names contain the query,
// case-insensitively.
func (a *Account) SearchCollection(query string) []CardInstance {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []CardInstance
	for _, ci := range a.Collection {
		if strings.Contains(strings.ToLower(ci.Def.Name), q) ||
			strings.Contains(strings.ToLower(ci.Def.NameLocal), q) {
			out = append(out, ci)
		}
	}
	return out
}

// RarityCounts tallies the collection by rarity.
func (a *Account) RarityCounts() map[Rarity]int {
	counts := make(map[Rarity]int)
	for _, ci := range a.Collection {
		counts[ci.Def.Rarity]++
	}
	return counts
}
