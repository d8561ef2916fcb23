// Package store persists the account table. The reference behavior is a
// full-state write-through: after any mutation the service hands the whole
// table to the store. Implementations must keep the latest committed state
// recoverable after a crash.
package store

import (
	"context"
	"time"

	"github.com/goalrush/goalrush/internal/game"
)

// Store saves and restores the complete account table.
type Store interface {
	Save(ctx context.Context, accounts []*game.Account) error
	Load(ctx context.Context) ([]*game.Account, error)
}

// --- Persisted record shapes ---

// AccountRecord is the flat persisted form of one account.
type AccountRecord struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Coins      int64        `json:"coins"`
	Gems       int64        `json:"gems"`
	Candies    int64        `json:"candies"`
	Stars      int64        `json:"stars"`
	Collection []CardRecord `json:"collection"`
	NextCardID int64        `json:"next_card_id"`
	FreePacks  int          `json:"free_packs"`
	LastRefill time.Time    `json:"last_refill"`
	Rating     int          `json:"rating"`
	DiceWins   int          `json:"dice_wins"`
	DiceLosses int          `json:"dice_losses"`
	DiceRolls  int          `json:"dice_rolls"`
	CreatedAt  time.Time    `json:"created_at"`
}

// CardRecord is the persisted form of one owned card. Definition fields are
// copied in so a record survives catalog edits.
type CardRecord struct {
	InstanceID int64     `json:"instance_id"`
	DefID      int       `json:"def_id"`
	Name       string    `json:"name"`
	NameLocal  string    `json:"name_local,omitempty"`
	Rarity     string    `json:"rarity"`
	Role       string    `json:"role"`
	Rating     int       `json:"rating"`
	AcquiredAt time.Time `json:"acquired_at"`
	MediaRef   string    `json:"media_ref,omitempty"`
}

// RecordFromAccount flattens an account into its persisted form.
func RecordFromAccount(a *game.Account) AccountRecord {
	rec := AccountRecord{
		ID:         a.ID,
		Name:       a.Name,
		Coins:      a.Balance(game.CurrencyCoins),
		Gems:       a.Balance(game.CurrencyGems),
		Candies:    a.Balance(game.CurrencyCandies),
		Stars:      a.Balance(game.CurrencyStars),
		NextCardID: a.NextCardID,
		FreePacks:  a.FreePacks,
		LastRefill: a.LastRefill,
		Rating:     a.Rating,
		DiceWins:   a.DiceWins,
		DiceLosses: a.DiceLosses,
		DiceRolls:  a.DiceRolls,
		CreatedAt:  a.CreatedAt,
	}
	rec.Collection = make([]CardRecord, 0, len(a.Collection))
	for _, ci := range a.Collection {
		rec.Collection = append(rec.Collection, CardRecord{
			InstanceID: ci.InstanceID,
			DefID:      ci.Def.ID,
			Name:       ci.Def.Name,
			NameLocal:  ci.Def.NameLocal,
			Rarity:     ci.Def.Rarity.String(),
			Role:       ci.Def.Role.String(),
			Rating:     ci.Def.Rating,
			AcquiredAt: ci.AcquiredAt,
			MediaRef:   ci.MediaRef,
		})
	}
	return rec
}

// ToAccount rebuilds an account from its persisted form. Unknown rarity or
// role values degrade to the lowest tier rather than failing the whole load.
func (rec AccountRecord) ToAccount() *game.Account {
	a := &game.Account{
		ID:   rec.ID,
		Name: rec.Name,
		Balances: map[game.Currency]int64{
			game.CurrencyCoins:   rec.Coins,
			game.CurrencyGems:    rec.Gems,
			game.CurrencyCandies: rec.Candies,
			game.CurrencyStars:   rec.Stars,
		},
		NextCardID: rec.NextCardID,
		FreePacks:  rec.FreePacks,
		LastRefill: rec.LastRefill,
		Rating:     rec.Rating,
		DiceWins:   rec.DiceWins,
		DiceLosses: rec.DiceLosses,
		DiceRolls:  rec.DiceRolls,
		CreatedAt:  rec.CreatedAt,
	}
	if a.NextCardID < 1 {
		a.NextCardID = 1
	}
	for _, cr := range rec.Collection {
		rarity, _ := game.ParseRarity(cr.Rarity)
		role, _ := game.ParseRole(cr.Role)
		a.Collection = append(a.Collection, game.CardInstance{
			InstanceID: cr.InstanceID,
			Def: game.CardDefinition{
				ID:        cr.DefID,
				Name:      cr.Name,
				NameLocal: cr.NameLocal,
				Rarity:    rarity,
				Role:      role,
				Rating:    cr.Rating,
			},
			AcquiredAt: cr.AcquiredAt,
			MediaRef:   cr.MediaRef,
		})
	}
	return a
}
