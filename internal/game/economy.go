package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RarityWeight is one entry of a pack's ordered probability table.
// Weights are percentage points and need not sum to 100; declared order
// determines tie-breaking and is part of the draw contract.
type RarityWeight struct {
	Rarity Rarity
	Weight float64
}

// PackType describes one purchasable pack.
type PackType struct {
	Name     string
	Weights  []RarityWeight
	Currency Currency // payer-side currency; ignored when Free
	Price    int64
	Free     bool // paid with a free-pack charge instead of currency
}

// RewardRange is an inclusive integer interval.
type RewardRange struct {
	Min int64
	Max int64
}

// Economy bundles every tunable constant of the core.
type Economy struct {
	Packs []PackType

	// Fusion rewards by source rarity, paid in coins and clamped to MaxFusionReward.
	FusionRewards    map[Rarity]RewardRange
	MaxFusionReward  int64
	FusionCandyBonus int64  // paid on epic-or-better sources
	RequiredDupes    int    // identical instances consumed per fusion

	// Battle stakes.
	PvPWinCoins  int64
	PvPLoseCoins int64
	RatingGain   int
	RatingLoss   int

	// Dice casino.
	DiceCost     int64
	DiceWinCoins int64
	DiceWinGems  int64
	DiceStarRoll int   // roll that pays the star jackpot
	DiceStars    int64 // jackpot size

	// Account defaults.
	StartingCoins int64
	FreePackCount int
}

// DefaultEconomy returns the reference tuning.
func DefaultEconomy() Economy {
	return Economy{
		Packs: []PackType{
			{
				Name: "basic",
				Weights: []RarityWeight{
					{RarityCommon, 60},
					{RarityRare, 35},
					{RarityEpic, 4},
					{RarityLegendary, 0.9},
					{RarityMythic, 0.1},
				},
				Currency: CurrencyCoins,
				Price:    100,
			},
			{
				Name: "premium",
				Weights: []RarityWeight{
					{RarityRare, 55},
					{RarityEpic, 30},
					{RarityLegendary, 13},
					{RarityMythic, 2},
				},
				Currency: CurrencyGems,
				Price:    50,
			},
			{
				Name: "free",
				Weights: []RarityWeight{
					{RarityCommon, 60},
					{RarityRare, 35},
					{RarityEpic, 4},
					{RarityLegendary, 0.9},
					{RarityMythic, 0.1},
				},
				Free: true,
			},
		},
		FusionRewards: map[Rarity]RewardRange{
			RarityCommon:    {20, 50},
			RarityRare:      {50, 120},
			RarityEpic:      {120, 250},
			RarityLegendary: {250, 500},
		},
		MaxFusionReward:  400,
		FusionCandyBonus: 5,
		RequiredDupes:    5,

		PvPWinCoins:  100,
		PvPLoseCoins: 50,
		RatingGain:   30,
		RatingLoss:   25,

		DiceCost:     100,
		DiceWinCoins: 500,
		DiceWinGems:  10,
		DiceStarRoll: 6,
		DiceStars:    1,

		StartingCoins: 1000,
		FreePackCount: FreePackMax,
	}
}

// Pack looks up a pack type by name.
func (e Economy) Pack(name string) (PackType, bool) {
	for _, p := range e.Packs {
		if p.Name == name {
			return p, true
		}
	}
	return PackType{}, false
}

// --- YAML overrides ---

type economyFile struct {
	Packs []packEntry `yaml:"packs"`
}

type packEntry struct {
	Name     string        `yaml:"name"`
	Currency string        `yaml:"currency,omitempty"`
	Price    int64         `yaml:"price,omitempty"`
	Free     bool          `yaml:"free,omitempty"`
	Weights  []weightEntry `yaml:"weights"`
}

type weightEntry struct {
	Rarity string  `yaml:"rarity"`
	Weight float64 `yaml:"weight"`
}

// LoadEconomy reads a YAML pack-table file over the default tuning.
// Only pack definitions are overridable from the file; the numeric stakes
// stay compiled in. The YAML list order becomes the draw order.
func LoadEconomy(path string) (Economy, error) {
	eco := DefaultEconomy()
	data, err := os.ReadFile(path)
	if err != nil {
		return eco, err
	}

	var ef economyFile
	if err := yaml.Unmarshal(data, &ef); err != nil {
		return eco, fmt.Errorf("parse economy YAML: %w", err)
	}
	if len(ef.Packs) == 0 {
		return eco, fmt.Errorf("economy file defines no packs")
	}

	packs := make([]PackType, 0, len(ef.Packs))
	for _, pe := range ef.Packs {
		p := PackType{Name: pe.Name, Price: pe.Price, Free: pe.Free}
		if !pe.Free {
			cur, err := ParseCurrency(pe.Currency)
			if err != nil {
				return eco, fmt.Errorf("pack %q: %w", pe.Name, err)
			}
			p.Currency = cur
		}
		for _, we := range pe.Weights {
			r, err := ParseRarity(we.Rarity)
			if err != nil {
				return eco, fmt.Errorf("pack %q: %w", pe.Name, err)
			}
			p.Weights = append(p.Weights, RarityWeight{Rarity: r, Weight: we.Weight})
		}
		if len(p.Weights) == 0 {
			return eco, fmt.Errorf("pack %q: no weights", pe.Name)
		}
		packs = append(packs, p)
	}
	eco.Packs = packs
	return eco, nil
}
