package game

import (
	"fmt"
	"strings"
	"time"
)

// --- Enums ---

// Rarity is a tier on the upgrade ladder: common < rare < epic < legendary < mythic.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	case RarityMythic:
		return "mythic"
	default:
		return "unknown"
	}
}

// ParseRarity converts a lowercase rarity name into a Rarity.
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return RarityCommon, nil
	case "rare":
		return RarityRare, nil
	case "epic":
		return RarityEpic, nil
	case "legendary":
		return RarityLegendary, nil
	case "mythic":
		return RarityMythic, nil
	default:
		return RarityCommon, fmt.Errorf("unknown rarity %q", s)
	}
}

// Next returns the upgrade target for this rarity.
// Mythic has no upgrade target; ok is false.
func (r Rarity) Next() (Rarity, bool) {
	if r >= RarityMythic {
		return r, false
	}
	return r + 1, true
}

// FallbackLadder is the fixed search order used when a rarity pool is empty:
// start at the selected tier and walk down toward common.
var FallbackLadder = []Rarity{RarityMythic, RarityLegendary, RarityEpic, RarityRare, RarityCommon}

// Role is a lineup slot a card can fill.
type Role int

const (
	RoleGoalkeeper Role = iota
	RoleDefender
	RoleMidfielder
	RoleForward
)

func (p Role) String() string {
	switch p {
	case RoleGoalkeeper:
		return "goalkeeper"
	case RoleDefender:
		return "defender"
	case RoleMidfielder:
		return "midfielder"
	case RoleForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Roles lists every lineup role in display order.
func Roles() []Role {
	return []Role{RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleForward}
}

// ParseRole converts a lowercase role name into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "goalkeeper":
		return RoleGoalkeeper, nil
	case "defender":
		return RoleDefender, nil
	case "midfielder":
		return RoleMidfielder, nil
	case "forward":
		return RoleForward, nil
	default:
		return RoleGoalkeeper, fmt.Errorf("unknown role %q", s)
	}
}

// Currency is one of the four independently tracked balances.
type Currency int

const (
	CurrencyCoins Currency = iota
	CurrencyGems
	CurrencyCandies
	CurrencyStars
)

func (c Currency) String() string {
	switch c {
	case CurrencyCoins:
		return "coins"
	case CurrencyGems:
		return "gems"
	case CurrencyCandies:
		return "candies"
	case CurrencyStars:
		return "stars"
	default:
		return "unknown"
	}
}

// Currencies lists every tracked currency.
func Currencies() []Currency {
	return []Currency{CurrencyCoins, CurrencyGems, CurrencyCandies, CurrencyStars}
}

// ParseCurrency converts a lowercase currency name into a Currency.
func ParseCurrency(s string) (Currency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coins":
		return CurrencyCoins, nil
	case "gems":
		return CurrencyGems, nil
	case "candies":
		return CurrencyCandies, nil
	case "stars":
		return CurrencyStars, nil
	default:
		return CurrencyCoins, fmt.Errorf("unknown currency %q", s)
	}
}

// --- Cards ---

// CardDefinition is an immutable catalog entry.
type CardDefinition struct {
	ID          int
	Name        string
	NameLocal   string
	Rarity      Rarity
	Role        Role
	Rating      int
	Country     string
	Description string
	Image       string
}

// CardKey identifies duplicate cards for fusion: lowercased display name plus rarity.
type CardKey struct {
	Name   string
	Rarity Rarity
}

// Key returns the fusion identity key of the definition.
func (d CardDefinition) Key() CardKey {
	return CardKey{Name: strings.ToLower(strings.TrimSpace(d.Name)), Rarity: d.Rarity}
}

// CardInstance is an owned copy of a definition inside a collection.
// InstanceID is unique and monotonic per account and never reused.
type CardInstance struct {
	InstanceID int64
	Def        CardDefinition
	AcquiredAt time.Time
	MediaRef   string
}

// Key returns the fusion identity key of the instance.
func (ci CardInstance) Key() CardKey {
	return ci.Def.Key()
}
