package game

import (
	"errors"
	"fmt"
	"strings"
)

// Domain failures surfaced to callers. All of them leave state untouched.
var (
	ErrNotFound               = errors.New("card not found")
	ErrMaxRarity              = errors.New("rarity has no upgrade target")
	ErrInsufficientDuplicates = errors.New("not enough duplicates to fuse")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrUnknownPack            = errors.New("unknown pack type")
	ErrNoFreePacks            = errors.New("no free packs available")
	ErrNotQueued              = errors.New("not queued")
)

// IncompleteRosterError reports which lineup roles have no eligible card.
type IncompleteRosterError struct {
	Missing []Role
}

func (e *IncompleteRosterError) Error() string {
	names := make([]string, len(e.Missing))
	for i, p := range e.Missing {
		names[i] = p.String()
	}
	return fmt.Sprintf("incomplete roster: missing %s", strings.Join(names, ", "))
}
