package game

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds the read-only card reference data, grouped by rarity.
// Pools preserve the order cards appear in the source file.
type Catalog struct {
	cards    []CardDefinition
	byRarity map[Rarity][]CardDefinition
	byID     map[int]CardDefinition
}

// NewCatalog validates the definitions once and builds the rarity pools.
// An empty catalog is a configuration fault, not a per-request error.
func NewCatalog(cards []CardDefinition) (*Catalog, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	c := &Catalog{
		cards:    cards,
		byRarity: make(map[Rarity][]CardDefinition),
		byID:     make(map[int]CardDefinition, len(cards)),
	}
	for _, d := range cards {
		if d.Name == "" {
			return nil, fmt.Errorf("card %d: empty name", d.ID)
		}
		if d.Rating <= 0 {
			return nil, fmt.Errorf("card %q: rating must be positive, got %d", d.Name, d.Rating)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("card %q: duplicate id %d", d.Name, d.ID)
		}
		c.byID[d.ID] = d
		c.byRarity[d.Rarity] = append(c.byRarity[d.Rarity], d)
	}
	return c, nil
}

// CatalogFile is the top-level YAML structure.
type CatalogFile struct {
	Cards []CatalogEntry `yaml:"cards"`
}

// CatalogEntry is a single card in the YAML file.
type CatalogEntry struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	NameLocal   string `yaml:"name_local,omitempty"`
	Rarity      string `yaml:"rarity"`
	Role        string `yaml:"role"`
	Rating      int    `yaml:"rating"`
	Country     string `yaml:"country,omitempty"`
	Description string `yaml:"description,omitempty"`
	Image       string `yaml:"image,omitempty"`
}

// LoadCatalog parses a YAML catalog file and validates it.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog parses raw YAML catalog bytes and validates them.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	cards := make([]CardDefinition, 0, len(cf.Cards))
	for _, e := range cf.Cards {
		rarity, err := ParseRarity(e.Rarity)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", e.Name, err)
		}
		role, err := ParseRole(e.Role)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", e.Name, err)
		}
		cards = append(cards, CardDefinition{
			ID:          e.ID,
			Name:        e.Name,
			NameLocal:   e.NameLocal,
			Rarity:      rarity,
			Role:        role,
			Rating:      e.Rating,
			Country:     e.Country,
			Description: e.Description,
			Image:       e.Image,
		})
	}
	return NewCatalog(cards)
}

// Size returns the number of definitions in the catalog.
func (c *Catalog) Size() int {
	return len(c.cards)
}

// All returns every definition in file order.
func (c *Catalog) All() []CardDefinition {
	return c.cards
}

// Pool returns the definitions of one rarity in file order.
func (c *Catalog) Pool(r Rarity) []CardDefinition {
	return c.byRarity[r]
}

// ByID looks up a definition by catalog id.
func (c *Catalog) ByID(id int) (CardDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// PickAt returns a uniformly random definition from the first non-empty pool
// on the fallback ladder, starting at the given rarity. If every pool from
// that tier down is empty it falls back to a uniform pick over the whole
// catalog, so it never fails once the catalog is loaded.
func (c *Catalog) PickAt(rng *rand.Rand, start Rarity) CardDefinition {
	begun := false
	for _, r := range FallbackLadder {
		if r == start {
			begun = true
		}
		if !begun {
			continue
		}
		if pool := c.byRarity[r]; len(pool) > 0 {
			return pool[rng.Intn(len(pool))]
		}
	}
	return c.cards[rng.Intn(len(c.cards))]
}
