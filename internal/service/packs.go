package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/goalrush/goalrush/internal/game"
	"github.com/goalrush/goalrush/internal/log"
)

// OpenPack purchases and opens one pack for the caller. Free packs consume
// a free-pack charge (after the lazy refill check); paid packs debit the
// pack's price before anything else mutates. The drawn instance receives
// the account's next card id.
func (s *Service) OpenPack(ctx context.Context, callerID int64, name, packName string) (game.CardInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pack, ok := s.eco.Pack(packName)
	if !ok {
		return game.CardInstance{}, game.ErrUnknownPack
	}

	a := s.account(callerID, name)

	if pack.Free {
		if a.FreePacks <= 0 {
			return game.CardInstance{}, game.ErrNoFreePacks
		}
		a.FreePacks--
	} else if pack.Price > 0 {
		if err := a.Debit(pack.Currency, pack.Price); err != nil {
			return game.CardInstance{}, err
		}
		s.events.Log(log.NewDebitEvent(callerID, pack.Currency.String(), pack.Price))
	}

	drawn := game.Draw(s.rng, s.catalog, pack, s.now())
	ci := a.Insert(drawn)
	s.events.Log(log.NewCardDrawnEvent(callerID, pack.Name, ci.Def.Name, ci.Def.Rarity.String()))
	slog.Info("pack opened", "account", callerID, "pack", pack.Name, "card", ci.Def.Name)

	s.persist(ctx)
	return ci, nil
}

// FreePackStatus reports the remaining free packs and the time until the
// next refill, after running the lazy refill check.
func (s *Service) FreePackStatus(callerID int64, name string) (remaining int, wait time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.account(callerID, name)
	return a.FreePacks, a.TimeUntilRefill(s.now())
}

// AttachMedia caches a media reference on an owned card. This is the only
// mutation a card instance sees after creation.
func (s *Service) AttachMedia(ctx context.Context, callerID, instanceID int64, mediaRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.account(callerID, "")
	ci, ok := a.FindCard(instanceID)
	if !ok {
		return game.ErrNotFound
	}
	ci.MediaRef = mediaRef
	s.persist(ctx)
	return nil
}

// Collection returns the caller's cards, newest first.
func (s *Service) Collection(callerID int64, name string) []game.CardInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account(callerID, name).SortedCollection()
}

// SearchCollection returns the caller's cards whose names contain the query.
func (s *Service) SearchCollection(callerID int64, name, query string) []game.CardInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account(callerID, name).SearchCollection(query)
}

// Fuse upgrades five identity-matching duplicates into one card of the next
// rarity and pays the rolled reward. All preconditions are verified before
// the first mutation; the fusion commits as one unit.
func (s *Service) Fuse(ctx context.Context, callerID, targetID int64) (game.FusionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.account(callerID, "")
	res, err := game.Fuse(s.rng, s.catalog, s.eco, a, targetID, s.now())
	if err != nil {
		return game.FusionResult{}, err
	}

	s.events.Log(log.NewFusionEvent(callerID, res.Consumed[0].Def.Name, res.NewCard.Def.Name, res.RewardCoins))
	slog.Info("fusion completed", "account", callerID, "card", res.NewCard.Def.Name, "reward", res.RewardCoins)

	s.persist(ctx)
	return res, nil
}
