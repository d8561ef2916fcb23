package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/goalrush/goalrush/internal/game"
	grmcp "github.com/goalrush/goalrush/internal/mcp"
	"github.com/goalrush/goalrush/internal/service"
	"github.com/goalrush/goalrush/internal/store"
)

func main() {
	catalogPath := flag.String("catalog", "catalog.yaml", "path to the card catalog YAML")
	dataPath := flag.String("data", "accounts.json", "path to the account snapshot JSON")
	flag.Parse()

	catalog, err := game.LoadCatalog(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc, err := service.New(context.Background(), catalog, game.DefaultEconomy(), store.NewFileStore(*dataPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	grmcp.SetService(svc)

	s := server.NewMCPServer("goalrush", "1.0.0")
	grmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
