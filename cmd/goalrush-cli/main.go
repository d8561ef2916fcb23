package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/goalrush/goalrush/internal/game"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "draw":
		runDraw(os.Args[2:])
	case "odds":
		runOdds(os.Args[2:])
	case "battle":
		runBattle(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  goalrush-cli draw   [--catalog FILE] [--pack NAME] [--count N]")
	fmt.Println("  goalrush-cli odds   [--catalog FILE] [--pack NAME] [--trials N]")
	fmt.Println("  goalrush-cli battle [--power N] [--opponent N] [--trials N]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  draw    Open packs offline and print the drawn cards")
	fmt.Println("  odds    Compare observed rarity frequencies against the pack table")
	fmt.Println("  battle  Simulate battle outcomes between two lineup powers")
}

func loadPack(catalogPath, packName string) (*game.Catalog, game.PackType) {
	catalog, err := game.LoadCatalog(catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pack, ok := game.DefaultEconomy().Pack(packName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown pack %q\n", packName)
		os.Exit(1)
	}
	return catalog, pack
}

func runDraw(args []string) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	catalogPath := fs.String("catalog", "catalog.yaml", "path to the card catalog YAML")
	packName := fs.String("pack", "basic", "pack to open")
	count := fs.Int("count", 1, "number of packs to open")
	fs.Parse(args)

	catalog, pack := loadPack(*catalogPath, *packName)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < *count; i++ {
		card := game.Draw(rng, catalog, pack, time.Now())
		printRarity(card.Def.Rarity, "%-10s %-24s %-12s %d", card.Def.Rarity, card.Def.Name, card.Def.Role, card.Def.Rating)
	}
}

func runOdds(args []string) {
	fs := flag.NewFlagSet("odds", flag.ExitOnError)
	catalogPath := fs.String("catalog", "catalog.yaml", "path to the card catalog YAML")
	packName := fs.String("pack", "basic", "pack to open")
	trials := fs.Int("trials", 100000, "number of simulated draws")
	fs.Parse(args)

	catalog, pack := loadPack(*catalogPath, *packName)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	counts := make(map[game.Rarity]int)
	for i := 0; i < *trials; i++ {
		card := game.Draw(rng, catalog, pack, time.Now())
		counts[card.Def.Rarity]++
	}

	configured := make(map[game.Rarity]float64)
	for _, w := range pack.Weights {
		configured[w.Rarity] = w.Weight
	}

	rarities := make([]game.Rarity, 0, len(counts))
	for r := range counts {
		rarities = append(rarities, r)
	}
	sort.Slice(rarities, func(i, j int) bool { return rarities[i] < rarities[j] })

	fmt.Printf("%d draws from pack %q:\n", *trials, pack.Name)
	for _, r := range rarities {
		observed := 100 * float64(counts[r]) / float64(*trials)
		printRarity(r, "%-10s observed %6.2f%%  configured %6.2f%%", r, observed, configured[r])
	}
}

func runBattle(args []string) {
	fs := flag.NewFlagSet("battle", flag.ExitOnError)
	power := fs.Int("power", 400, "requester lineup power")
	opponent := fs.Int("opponent", 350, "opponent lineup power")
	trials := fs.Int("trials", 100000, "number of simulated battles")
	fs.Parse(args)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	wins := 0
	for i := 0; i < *trials; i++ {
		if game.RollOutcome(rng, *power, *opponent) {
			wins++
		}
	}

	rate := 100 * float64(wins) / float64(*trials)
	fmt.Printf("power %d vs %d over %d battles:\n", *power, *opponent, *trials)
	if rate >= 50 {
		color.Green("won %d (%.2f%%)", wins, rate)
	} else {
		color.Red("won %d (%.2f%%)", wins, rate)
	}
}

func printRarity(r game.Rarity, format string, args ...any) {
	switch r {
	case game.RarityMythic:
		color.Red(format, args...)
	case game.RarityLegendary:
		color.Yellow(format, args...)
	case game.RarityEpic:
		color.Magenta(format, args...)
	case game.RarityRare:
		color.Cyan(format, args...)
	default:
		fmt.Printf(format+"\n", args...)
	}
}
