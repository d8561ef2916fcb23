package game

import (
	"errors"
	"testing"
	"time"
)

// TestLedgerNeverNegative: random credit/debit/convert sequences keep every
// balance non-negative, and rejected operations leave the ledger untouched.
func TestLedgerNeverNegative(t *testing.T) {
	rng := newRng(11)
	acct := newTestAccount(t)
	currencies := Currencies()

	snapshot := func() map[Currency]int64 {
		out := make(map[Currency]int64, len(acct.Balances))
		for c, v := range acct.Balances {
			out[c] = v
		}
		return out
	}

	for step := 0; step < 20000; step++ {
		before := snapshot()
		c := currencies[rng.Intn(len(currencies))]
		amount := rng.Int63n(500) - 50 // occasionally negative

		var err error
		switch rng.Intn(3) {
		case 0:
			err = acct.Credit(c, amount)
		case 1:
			err = acct.Debit(c, amount)
		default:
			to := currencies[rng.Intn(len(currencies))]
			err = acct.Convert(c, amount, to, rng.Int63n(200))
		}

		if err != nil {
			for cur, v := range before {
				if acct.Balances[cur] != v {
					t.Fatalf("step %d: failed op mutated %s: %d -> %d", step, cur, v, acct.Balances[cur])
				}
			}
		}
		for cur, v := range acct.Balances {
			if v < 0 {
				t.Fatalf("step %d: %s went negative: %d", step, cur, v)
			}
		}
	}
}

func TestDebitInsufficient(t *testing.T) {
	acct := newTestAccount(t)
	if err := acct.Debit(CurrencyCoins, acct.Balance(CurrencyCoins)+1); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := acct.Balance(CurrencyCoins); got != DefaultEconomy().StartingCoins {
		t.Errorf("balance changed on failed debit: %d", got)
	}
}

func TestConvertChecksPayerFirst(t *testing.T) {
	acct := newTestAccount(t)
	err := acct.Convert(CurrencyGems, 10, CurrencyCoins, 1000)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if acct.Balance(CurrencyCoins) != DefaultEconomy().StartingCoins {
		t.Errorf("credit side applied on failed convert: %d coins", acct.Balance(CurrencyCoins))
	}

	acct.Credit(CurrencyGems, 10)
	if err := acct.Convert(CurrencyGems, 10, CurrencyCoins, 500); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if acct.Balance(CurrencyGems) != 0 || acct.Balance(CurrencyCoins) != 1500 {
		t.Errorf("convert applied partially: gems=%d coins=%d",
			acct.Balance(CurrencyGems), acct.Balance(CurrencyCoins))
	}
}

func TestNegativeAmountRejected(t *testing.T) {
	acct := newTestAccount(t)
	if err := acct.Credit(CurrencyCoins, -1); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("credit: expected ErrNegativeAmount, got %v", err)
	}
	if err := acct.Debit(CurrencyCoins, -1); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("debit: expected ErrNegativeAmount, got %v", err)
	}
}

// TestRefillBoundary: exactly one interval elapsed refills; just under does not.
func TestRefillBoundary(t *testing.T) {
	acct := newTestAccount(t)
	acct.FreePacks = 0

	if acct.CheckRefill(testNow.Add(FreePackInterval - time.Second)) {
		t.Error("refilled before the interval elapsed")
	}
	if acct.FreePacks != 0 {
		t.Errorf("free packs changed without a refill: %d", acct.FreePacks)
	}

	at := testNow.Add(FreePackInterval)
	if !acct.CheckRefill(at) {
		t.Fatal("expected a refill at exactly one interval")
	}
	if acct.FreePacks != FreePackMax {
		t.Errorf("refill set %d packs, want %d", acct.FreePacks, FreePackMax)
	}
	if !acct.LastRefill.Equal(at) {
		t.Errorf("LastRefill not advanced: %v", acct.LastRefill)
	}

	// A second check inside the new window is a no-op.
	if acct.CheckRefill(at.Add(time.Hour)) {
		t.Error("refilled twice inside one interval")
	}
}

func TestTimeUntilRefill(t *testing.T) {
	acct := newTestAccount(t)
	if got := acct.TimeUntilRefill(testNow.Add(time.Hour)); got != 3*time.Hour {
		t.Errorf("TimeUntilRefill = %v, want 3h", got)
	}
	if got := acct.TimeUntilRefill(testNow.Add(5 * time.Hour)); got != 0 {
		t.Errorf("TimeUntilRefill past due = %v, want 0", got)
	}
}

func TestReset(t *testing.T) {
	eco := DefaultEconomy()
	acct := newTestAccount(t)
	give(acct, def(1, "Filler", RarityCommon, RoleForward, 50), 3)
	acct.Credit(CurrencyGems, 40)
	acct.Rating = 300
	acct.DiceWins = 2

	later := testNow.Add(48 * time.Hour)
	acct.Reset(eco, later)

	if acct.Balance(CurrencyCoins) != eco.StartingCoins || acct.Balance(CurrencyGems) != 0 {
		t.Errorf("balances not reset: %v", acct.Balances)
	}
	if len(acct.Collection) != 0 || acct.NextCardID != 1 {
		t.Errorf("collection not reset: %d cards, next id %d", len(acct.Collection), acct.NextCardID)
	}
	if acct.Rating != 0 || acct.DiceWins != 0 {
		t.Errorf("stats not reset: rating=%d diceWins=%d", acct.Rating, acct.DiceWins)
	}
	if acct.FreePacks != eco.FreePackCount || !acct.LastRefill.Equal(later) {
		t.Errorf("free packs not reset: %d at %v", acct.FreePacks, acct.LastRefill)
	}
}

func TestCollectionOrderingAndSearch(t *testing.T) {
	acct := newTestAccount(t)
	first := acct.AddCard(def(1, "Alpha Striker", RarityCommon, RoleForward, 50), testNow)
	second := acct.AddCard(def(2, "Beta Keeper", RarityRare, RoleGoalkeeper, 70), testNow)

	if first.InstanceID != 1 || second.InstanceID != 2 {
		t.Fatalf("instance ids not monotonic: %d, %d", first.InstanceID, second.InstanceID)
	}

	sorted := acct.SortedCollection()
	if sorted[0].InstanceID != 2 {
		t.Errorf("SortedCollection not newest-first: %+v", sorted)
	}

	hits := acct.SearchCollection("  BETA ")
	if len(hits) != 1 || hits[0].Def.Name != "Beta Keeper" {
		t.Errorf("search for 'BETA' returned %+v", hits)
	}
	if got := acct.SearchCollection(""); got != nil {
		t.Errorf("empty query returned %+v", got)
	}
}

func TestCountDuplicatesKeyNormalization(t *testing.T) {
	acct := newTestAccount(t)
	acct.AddCard(def(1, "Edson Tavares", RarityRare, RoleForward, 70), testNow)
	acct.AddCard(def(2, "  edson tavares ", RarityRare, RoleForward, 70), testNow)
	acct.AddCard(def(3, "Edson Tavares", RarityEpic, RoleForward, 84), testNow)

	key := CardKey{Name: "edson tavares", Rarity: RarityRare}
	if got := acct.CountDuplicates(key); got != 2 {
		t.Errorf("CountDuplicates = %d, want 2 (rarity splits identity)", got)
	}
}
