package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/goalrush/goalrush/internal/game"
	"github.com/goalrush/goalrush/internal/log"
)

// Profile is the account summary exposed to the presentation layer.
type Profile struct {
	ID           int64
	Name         string
	Coins        int64
	Gems         int64
	Candies      int64
	Stars        int64
	Cards        int
	RarityCounts map[string]int
	Rating       int
	FreePacks    int
	NextRefill   time.Duration
	DiceWins     int
	DiceLosses   int
	DiceRolls    int
}

// Profile returns the caller's account summary, creating the account on
// first contact.
func (s *Service) Profile(callerID int64, name string) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.account(callerID, name)
	counts := make(map[string]int)
	for r, n := range a.RarityCounts() {
		counts[r.String()] = n
	}
	return Profile{
		ID:           a.ID,
		Name:         a.Name,
		Coins:        a.Balance(game.CurrencyCoins),
		Gems:         a.Balance(game.CurrencyGems),
		Candies:      a.Balance(game.CurrencyCandies),
		Stars:        a.Balance(game.CurrencyStars),
		Cards:        len(a.Collection),
		RarityCounts: counts,
		Rating:       a.Rating,
		FreePacks:    a.FreePacks,
		NextRefill:   a.TimeUntilRefill(s.now()),
		DiceWins:     a.DiceWins,
		DiceLosses:   a.DiceLosses,
		DiceRolls:    a.DiceRolls,
	}
}

// PlayDice runs one casino roll for the caller.
func (s *Service) PlayDice(ctx context.Context, callerID int64, name string) (game.DiceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.account(callerID, name)
	res, err := game.PlayDice(s.rng, s.eco, a)
	if err != nil {
		return game.DiceResult{}, err
	}
	s.events.Log(log.NewDiceRolledEvent(callerID, res.Roll, res.Won))

	s.persist(ctx)
	return res, nil
}

// LeaderboardEntry is one row of the rating leaderboard.
type LeaderboardEntry struct {
	ID     int64
	Name   string
	Rating int
	Coins  int64
}

// Leaderboard returns up to limit accounts ordered by rating, ties broken
// by coins then id. Read-only.
func (s *Service) Leaderboard(limit int) []LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]LeaderboardEntry, 0, len(s.accounts))
	for _, a := range s.accounts {
		entries = append(entries, LeaderboardEntry{
			ID:     a.ID,
			Name:   a.Name,
			Rating: a.Rating,
			Coins:  a.Balance(game.CurrencyCoins),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		if entries[i].Coins != entries[j].Coins {
			return entries[i].Coins > entries[j].Coins
		}
		return entries[i].ID < entries[j].ID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Reset restores the caller's account to creation defaults, destroying the
// collection. Any pending matchmaking ticket is removed as well.
func (s *Service) Reset(ctx context.Context, callerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.account(callerID, "")
	s.queue.Cancel(callerID)
	a.Reset(s.eco, s.now())
	s.events.Log(log.NewResetEvent(callerID))
	slog.Info("account reset", "account", callerID)

	s.persist(ctx)
}
