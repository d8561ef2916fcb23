package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/goalrush/goalrush/internal/game"
	"github.com/goalrush/goalrush/internal/log"
)

// MatchState is the requester-visible outcome of a battle request.
type MatchState string

const (
	MatchSearching MatchState = "searching"
	MatchPaired    MatchState = "paired"
)

// BattleReport is the requester's view of a resolved battle.
type BattleReport struct {
	BattleID       string
	Mode           string // "pvp" or "scripted"
	Won            bool
	RequesterPower int
	OpponentPower  int
	OpponentID     int64
	OpponentName   string
	CoinsWon       int64
	CoinsLost      int64
	RatingDelta    int
}

// MatchStatus reports a battle request: either still searching (with the
// ticket id) or paired with a resolved report.
type MatchStatus struct {
	State    MatchState
	TicketID string
	Report   *BattleReport
}

// RequestBattle runs the full matchmaking sequence. If an opposing ticket
// is waiting, the battle resolves immediately against that ticket's lineup
// snapshot and both accounts settle; otherwise the caller is enqueued.
func (s *Service) RequestBattle(ctx context.Context, callerID int64, name string) (MatchStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.account(callerID, name)
	lineup, err := game.BestLineup(a.Collection)
	if err != nil {
		return MatchStatus{}, err
	}

	pairing, ticket := s.queue.Request(callerID, lineup, s.now())
	if pairing == nil {
		s.events.Log(log.NewQueuedEvent(callerID, lineup.Power))
		return MatchStatus{State: MatchSearching, TicketID: ticket.ID.String()}, nil
	}

	opp := s.accounts[pairing.Opponent.AccountID]
	s.events.Log(log.NewPairedEvent(callerID, opp.ID))

	won := game.RollOutcome(s.rng, lineup.Power, pairing.Opponent.Power)
	winner, loser := a, opp
	winnerPower, loserPower := lineup.Power, pairing.Opponent.Power
	if !won {
		winner, loser = opp, a
		winnerPower, loserPower = loserPower, winnerPower
	}
	game.ApplyPvPResult(s.eco, winner, loser)
	s.events.Log(log.NewBattleResolvedEvent(winner.ID, loser.ID, winnerPower, loserPower))

	report := &BattleReport{
		BattleID:       uuid.New().String(),
		Mode:           "pvp",
		Won:            won,
		RequesterPower: lineup.Power,
		OpponentPower:  pairing.Opponent.Power,
		OpponentID:     opp.ID,
		OpponentName:   opp.Name,
		RatingDelta:    s.eco.RatingGain,
	}
	if won {
		report.CoinsWon = s.eco.PvPWinCoins
	} else {
		report.CoinsLost = s.eco.PvPLoseCoins
		report.RatingDelta = -s.eco.RatingLoss
	}
	slog.Info("pvp battle resolved", "winner", winner.ID, "loser", loser.ID)

	s.persist(ctx)
	return MatchStatus{State: MatchPaired, Report: report}, nil
}

// CancelBattle removes the caller's pending ticket. Reports ErrNotQueued if
// no ticket exists.
func (s *Service) CancelBattle(callerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.queue.Cancel(callerID) {
		return game.ErrNotQueued
	}
	s.events.Log(log.NewCancelledEvent(callerID))
	return nil
}

// QueueDepth reports how many tickets are waiting. Intended for health
// output and tests.
func (s *Service) QueueDepth() int {
	return s.queue.Depth()
}

// FightScripted resolves a battle against a scripted opponent of the given
// level. Ratings do not move; only coin stakes settle.
func (s *Service) FightScripted(ctx context.Context, callerID int64, name, level string) (BattleReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lvl, err := game.OpponentLevelByName(level)
	if err != nil {
		return BattleReport{}, err
	}

	a := s.account(callerID, name)
	won, lineup, err := game.FightScripted(s.rng, a, lvl)
	if err != nil {
		return BattleReport{}, err
	}

	report := BattleReport{
		BattleID:       uuid.New().String(),
		Mode:           "scripted",
		Won:            won,
		RequesterPower: lineup.Power,
		OpponentPower:  lvl.Power,
		OpponentName:   lvl.Name,
	}
	if won {
		report.CoinsWon = lvl.WinCoins
	} else {
		report.CoinsLost = lvl.LoseCoins
	}
	s.events.Log(log.NewBattleResolvedEvent(callerID, 0, lineup.Power, lvl.Power))
	slog.Info("scripted battle resolved", "account", callerID, "level", lvl.Name, "won", won)

	s.persist(ctx)
	return report, nil
}
