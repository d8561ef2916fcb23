package game

import (
	"math/rand"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func def(id int, name string, rarity Rarity, role Role, rating int) CardDefinition {
	return CardDefinition{ID: id, Name: name, Rarity: rarity, Role: role, Rating: rating}
}

// testCatalog covers every rarity and every role.
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]CardDefinition{
		def(1, "Common Keeper", RarityCommon, RoleGoalkeeper, 50),
		def(2, "Common Back", RarityCommon, RoleDefender, 52),
		def(3, "Common Mid", RarityCommon, RoleMidfielder, 54),
		def(4, "Common Striker", RarityCommon, RoleForward, 56),
		def(5, "Rare Keeper", RarityRare, RoleGoalkeeper, 70),
		def(6, "Rare Striker", RarityRare, RoleForward, 72),
		def(7, "Epic Mid", RarityEpic, RoleMidfielder, 84),
		def(8, "Legendary Back", RarityLegendary, RoleDefender, 92),
		def(9, "Mythic Striker", RarityMythic, RoleForward, 98),
	})
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return c
}

// newTestAccount creates an account with the default economy at testNow.
func newTestAccount(t *testing.T) *Account {
	t.Helper()
	return NewAccount(1, "tester", DefaultEconomy(), testNow)
}

// give adds n copies of the definition to the account.
func give(acct *Account, d CardDefinition, n int) {
	for i := 0; i < n; i++ {
		acct.AddCard(d, testNow)
	}
}
