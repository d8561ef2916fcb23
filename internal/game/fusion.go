package game

import (
	"math/rand"
	"time"
)

// FusionResult reports a completed fusion: the consumed instances, the
// upgraded replacement and the paid rewards.
type FusionResult struct {
	Consumed    []CardInstance
	NewCard     CardInstance
	RewardCoins int64
	RewardCandy int64
}

// Fuse consumes exactly eco.RequiredDupes instances sharing the target's
// identity key and produces one instance of the next rarity, plus a coin
// reward rolled uniformly from the source rarity's range and clamped to the
// global cap. Epic-or-better sources also pay a candy bonus.
//
// Every precondition is checked before the first mutation, and the in-memory
// mutations cannot fail, so the whole operation commits as one unit: no
// partially-fused state is ever observable.
func Fuse(rng *rand.Rand, catalog *Catalog, eco Economy, acct *Account, targetID int64, now time.Time) (FusionResult, error) {
	target, ok := acct.FindCard(targetID)
	if !ok {
		return FusionResult{}, ErrNotFound
	}

	next, ok := target.Def.Rarity.Next()
	if !ok {
		return FusionResult{}, ErrMaxRarity
	}

	key := target.Key()
	if acct.CountDuplicates(key) < eco.RequiredDupes {
		return FusionResult{}, ErrInsufficientDuplicates
	}

	reward := rollReward(rng, eco, target.Def.Rarity)
	candy := int64(0)
	if target.Def.Rarity >= RarityEpic {
		candy = eco.FusionCandyBonus
	}

	var consumed []CardInstance
	for _, ci := range acct.Collection {
		if len(consumed) < eco.RequiredDupes && ci.Key() == key {
			consumed = append(consumed, ci)
		}
	}

	// Commit point: everything below must land together.
	acct.removeDuplicates(key, eco.RequiredDupes)

	// Draw the replacement at the upgraded rarity, walking the fallback
	// ladder when the catalog lacks that exact tier.
	def := catalog.PickAt(rng, next)
	newCard := acct.AddCard(def, now)

	acct.Credit(CurrencyCoins, reward)
	if candy > 0 {
		acct.Credit(CurrencyCandies, candy)
	}

	return FusionResult{
		Consumed:    consumed,
		NewCard:     newCard,
		RewardCoins: reward,
		RewardCandy: candy,
	}, nil
}

// rollReward picks a uniform integer from the rarity's reward range,
// clamped to the global maximum.
func rollReward(rng *rand.Rand, eco Economy, source Rarity) int64 {
	rr, ok := eco.FusionRewards[source]
	if !ok || rr.Max < rr.Min {
		return 0
	}
	reward := rr.Min + rng.Int63n(rr.Max-rr.Min+1)
	if reward > eco.MaxFusionReward {
		reward = eco.MaxFusionReward
	}
	return reward
}
