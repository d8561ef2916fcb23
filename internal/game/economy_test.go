package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultEconomyPacks(t *testing.T) {
	eco := DefaultEconomy()

	basic, ok := eco.Pack("basic")
	if !ok || basic.Price != 100 || basic.Currency != CurrencyCoins {
		t.Errorf("basic pack %+v", basic)
	}
	if basic.Weights[0].Rarity != RarityCommon || basic.Weights[0].Weight != 60 {
		t.Errorf("basic pack draw order %+v", basic.Weights)
	}

	premium, ok := eco.Pack("premium")
	if !ok || premium.Price != 50 || premium.Currency != CurrencyGems {
		t.Errorf("premium pack %+v", premium)
	}
	for _, w := range premium.Weights {
		if w.Rarity == RarityCommon {
			t.Error("premium pack offers commons")
		}
	}

	free, ok := eco.Pack("free")
	if !ok || !free.Free {
		t.Errorf("free pack %+v", free)
	}

	if _, ok := eco.Pack("ultra"); ok {
		t.Error("unknown pack resolved")
	}
}

func TestLoadEconomyOverridesPacksOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "economy.yaml")
	data := `
packs:
  - name: starter
    currency: candies
    price: 3
    weights:
      - {rarity: epic, weight: 70}
      - {rarity: mythic, weight: 30}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	eco, err := LoadEconomy(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(eco.Packs) != 1 {
		t.Fatalf("packs %+v", eco.Packs)
	}
	starter := eco.Packs[0]
	if starter.Currency != CurrencyCandies || starter.Price != 3 {
		t.Errorf("starter pack %+v", starter)
	}
	if starter.Weights[0].Rarity != RarityEpic || starter.Weights[1].Rarity != RarityMythic {
		t.Errorf("file order not preserved: %+v", starter.Weights)
	}

	def := DefaultEconomy()
	if eco.DiceCost != def.DiceCost || eco.StartingCoins != def.StartingCoins {
		t.Error("stakes changed by a pack-only file")
	}
}

func TestLoadEconomyRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("packs: []\n"), 0o644)
	if _, err := LoadEconomy(empty); err == nil {
		t.Error("expected an error for a file with no packs")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("packs:\n  - name: x\n    currency: shells\n    weights: [{rarity: common, weight: 100}]\n"), 0o644)
	if _, err := LoadEconomy(bad); err == nil {
		t.Error("expected an error for an unknown currency")
	}
}
