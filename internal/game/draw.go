package game

import (
	"math/rand"
	"time"
)

// SelectRarity rolls a uniform value in [0,100) and walks the pack's weight
// table in declared order, accumulating weights; the first entry whose
// running sum exceeds the roll wins. If no entry triggers (the weights sum
// below the roll) the lowest tier is selected.
func SelectRarity(rng *rand.Rand, weights []RarityWeight) Rarity {
	roll := rng.Float64() * 100
	cumulative := 0.0
	for _, w := range weights {
		cumulative += w.Weight
		if roll < cumulative {
			return w.Rarity
		}
	}
	return RarityCommon
}

// Draw produces one card instance for the given pack type. The instance
// carries a fresh timestamp and an unset per-account id; the owning account
// assigns the id at insertion time. Draw never fails: the catalog's fallback
// walk always yields a definition.
func Draw(rng *rand.Rand, catalog *Catalog, pack PackType, now time.Time) CardInstance {
	selected := SelectRarity(rng, pack.Weights)
	def := catalog.PickAt(rng, selected)
	return CardInstance{Def: def, AcquiredAt: now}
}
