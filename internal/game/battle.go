package game

import (
	"fmt"
	"math/rand"
)

const (
	// FavoredWinChance is the win probability of the side whose lineup
	// power strictly exceeds the opponent's. The outcome is always
	// probabilistic; an upset stays possible.
	FavoredWinChance = 0.84
	// UnderdogWinChance is the win probability otherwise.
	UnderdogWinChance = 0.16
)

// RollOutcome decides whether the requester wins given both lineup powers.
// Shared by the PvP and scripted-opponent paths.
func RollOutcome(rng *rand.Rand, requesterPower, opponentPower int) bool {
	chance := UnderdogWinChance
	if requesterPower > opponentPower {
		chance = FavoredWinChance
	}
	return rng.Float64() < chance
}

// ApplyPvPResult settles a player-versus-player battle: the winner gains
// the fixed coin reward and rating; the loser pays the smaller coin amount
// and rating loss, both floored at zero.
func ApplyPvPResult(eco Economy, winner, loser *Account) {
	winner.Credit(CurrencyCoins, eco.PvPWinCoins)
	winner.Rating += eco.RatingGain

	penalty := eco.PvPLoseCoins
	if loser.Balances[CurrencyCoins] < penalty {
		penalty = loser.Balances[CurrencyCoins]
	}
	loser.Debit(CurrencyCoins, penalty)
	loser.Rating -= eco.RatingLoss
	if loser.Rating < 0 {
		loser.Rating = 0
	}
}

// OpponentLevel is a scripted opponent with a fixed lineup power and coin
// stakes. No rating moves in scripted battles.
type OpponentLevel struct {
	Name      string
	Power     int
	WinCoins  int64
	LoseCoins int64
}

// OpponentLevels lists the scripted opponents in ascending difficulty.
var OpponentLevels = []OpponentLevel{
	{Name: "novice", Power: 200, WinCoins: 25, LoseCoins: 10},
	{Name: "amateur", Power: 250, WinCoins: 50, LoseCoins: 15},
	{Name: "pro", Power: 300, WinCoins: 75, LoseCoins: 25},
	{Name: "star", Power: 350, WinCoins: 100, LoseCoins: 50},
}

// OpponentLevelByName looks up a scripted opponent level.
func OpponentLevelByName(name string) (OpponentLevel, error) {
	for _, lvl := range OpponentLevels {
		if lvl.Name == name {
			return lvl, nil
		}
	}
	return OpponentLevel{}, fmt.Errorf("unknown opponent level %q", name)
}

// FightScripted assembles the account's best lineup, resolves the battle
// against the level's fixed power, and settles the coin stakes on the
// account. The loss is floored at a zero balance.
func FightScripted(rng *rand.Rand, acct *Account, level OpponentLevel) (won bool, lineup Lineup, err error) {
	lineup, err = BestLineup(acct.Collection)
	if err != nil {
		return false, Lineup{}, err
	}

	won = RollOutcome(rng, lineup.Power, level.Power)
	if won {
		acct.Credit(CurrencyCoins, level.WinCoins)
	} else {
		penalty := level.LoseCoins
		if acct.Balances[CurrencyCoins] < penalty {
			penalty = acct.Balances[CurrencyCoins]
		}
		acct.Debit(CurrencyCoins, penalty)
	}
	return won, lineup, nil
}
