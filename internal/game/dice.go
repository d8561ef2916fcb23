package game

import "math/rand"

// DiceResult reports one casino roll.
type DiceResult struct {
	Roll      int
	Won       bool
	CoinsWon  int64
	GemsWon   int64
	StarsWon  int64
	CoinsPaid int64
}

// PlayDice charges the stake, rolls a d6 and pays out on 4 or higher.
// Rolling the jackpot face additionally pays a star. The stake check
// happens before any mutation; a short balance fails with
// ErrInsufficientFunds and no state change.
func PlayDice(rng *rand.Rand, eco Economy, acct *Account) (DiceResult, error) {
	if acct.Balances[CurrencyCoins] < eco.DiceCost {
		return DiceResult{}, ErrInsufficientFunds
	}

	roll := rng.Intn(6) + 1
	acct.Debit(CurrencyCoins, eco.DiceCost)

	res := DiceResult{Roll: roll, CoinsPaid: eco.DiceCost}
	if roll >= 4 {
		res.Won = true
		res.CoinsWon = eco.DiceWinCoins
		res.GemsWon = eco.DiceWinGems
		acct.Credit(CurrencyCoins, eco.DiceWinCoins)
		acct.Credit(CurrencyGems, eco.DiceWinGems)
		if roll == eco.DiceStarRoll {
			res.StarsWon = eco.DiceStars
			acct.Credit(CurrencyStars, eco.DiceStars)
		}
		acct.DiceWins++
	} else {
		acct.DiceLosses++
	}
	acct.DiceRolls++
	return res, nil
}
