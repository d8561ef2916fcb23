package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/goalrush/goalrush/internal/service"
)

// svc is the shared economy service, set by main before serving.
var svc *service.Service

// SetService wires the economy service used by all tool handlers.
func SetService(s *service.Service) {
	svc = s
}

// RegisterTools adds all economy tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(getProfileTool(), handleGetProfile)
	s.AddTool(openPackTool(), handleOpenPack)
	s.AddTool(freePackStatusTool(), handleFreePackStatus)
	s.AddTool(listCollectionTool(), handleListCollection)
	s.AddTool(fuseCardTool(), handleFuseCard)
	s.AddTool(requestBattleTool(), handleRequestBattle)
	s.AddTool(cancelBattleTool(), handleCancelBattle)
	s.AddTool(fightScriptedTool(), handleFightScripted)
	s.AddTool(playDiceTool(), handlePlayDice)
	s.AddTool(leaderboardTool(), handleLeaderboard)
}

func respondJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}

// --- Tool definitions ---

func getProfileTool() mcp.Tool {
	return mcp.NewTool("get_profile",
		mcp.WithDescription("Get an account's balances, rating, free pack status, and collection summary. Creates the account on first use."),
		mcp.WithNumber("account", mcp.Required(), mcp.Description("Account ID")),
		mcp.WithString("name", mcp.Description("Display name to record for the account")),
	)
}

func openPackTool() mcp.Tool {
	return mcp.NewTool("open_pack",
		mcp.WithDescription("Open a card pack and draw one card. Pack 'free' consumes a regenerating free pack; paid packs debit the account."),
		mcp.WithNumber("account", mcp.Required(), mcp.Description("Account ID")),
		mcp.WithString("pack", mcp.Required(), mcp.Description("Pack name: 'free', 'basic', or 'premium'")),
		mcp.WithString("name", mcp.Description("Display name to record for the account")),
	)
}

func freePackStatusTool() mcp.Tool {
	return mcp.NewTool("free_pack_status",
		mcp.WithDescription("Report how many free packs remain and how long until the next refill. Read-only apart from the lazy refill."),
		mcp.WithNumber("account", mcp.Required(), mcp.Description("Account ID")),
	)
}

func listCollectionTool() mcp.Tool {
	return mcp.NewTool("list_collection",
		mcp.WithDescription("List the account's cards, newest first. An optional query filters by card name substring."),
		mcp.WithNumber("account", mcp.Required(), mcp.Description("Account ID")),
		mcp.WithString("query", mcp.Description("Case-insensitive name filter, empty for all cards")),
	)
}

func fuseCardTool() mcp.Tool {
	return mcp.NewTool("fuse_card",
		mcp.WithDescription("Fuse five duplicates of the given card into one card of the next rarity tier, plus a coin reward."),
		mcp.WithNumber("account", mcp.Required(), mcp.Description("Account ID")),
		mcp.WithNumber("card", mcp.Required(), mcp.Description("Instance ID of one of the duplicates to fuse")),
	)
}

func requestBattleTool() mcp.Tool {
	return mcp.NewTool("request_battle",
		mcp.WithDescription("Join the PvP matchmaking queue. If an opponent is waiting the battle resolves immediately and the result is returned; otherwise the account waits in the queue."),
		mcp.WithNumber("account", mcp.Required(), mcp.Description("Account ID")),
		mcp.WithString("name", mcp.Description("Display name to record for the account")),
	)
}

func cancelBattleTool() mcp.Tool {
	return mcp.NewTool("cancel_battle",
		mcp.WithDescription("Leave the PvP matchmaking queue."),
		mcp.WithNumber("account", mcp.Required(), mcp.Description("Account ID")),
	)
}

func fightScriptedTool() mcp.Tool {
	return mcp.NewTool("fight_scripted",
		mcp.WithDescription("Fight a scripted opponent at the given difficulty. Win rewards scale with the level."),
		mcp.WithNumber("account", mcp.Required(), mcp.Description("Account ID")),
		mcp.WithString("level", mcp.Required(), mcp.Description("Opponent level: 'novice', 'amateur', 'pro', or 'star'")),
	)
}

func playDiceTool() mcp.Tool {
	return mcp.NewTool("play_dice",
		mcp.WithDescription("Pay the dice stake and roll a six-sided die. A roll of 4 or higher wins coins and gems; a 6 also grants a star."),
		mcp.WithNumber("account", mcp.Required(), mcp.Description("Account ID")),
	)
}

func leaderboardTool() mcp.Tool {
	return mcp.NewTool("leaderboard",
		mcp.WithDescription("List the top accounts by rating. Read-only."),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return, default 10")),
	)
}

// --- Tool handlers ---

func handleGetProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account := request.GetInt("account", 0)
	if account <= 0 {
		return mcp.NewToolResultError("account must be a positive integer"), nil
	}
	name := request.GetString("name", "")

	p := svc.Profile(int64(account), name)
	return mcp.NewToolResultText(respondJSON(p)), nil
}

func handleOpenPack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account := request.GetInt("account", 0)
	if account <= 0 {
		return mcp.NewToolResultError("account must be a positive integer"), nil
	}
	pack := request.GetString("pack", "")
	name := request.GetString("name", "")

	card, err := svc.OpenPack(ctx, int64(account), name, pack)
	if err != nil {
		return mcp.NewToolResultErrorf("Could not open pack: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(card)), nil
}

func handleFreePackStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account := request.GetInt("account", 0)
	if account <= 0 {
		return mcp.NewToolResultError("account must be a positive integer"), nil
	}

	remaining, wait := svc.FreePackStatus(int64(account), "")
	return mcp.NewToolResultText(respondJSON(map[string]any{
		"remaining":   remaining,
		"next_refill": wait.String(),
	})), nil
}

func handleListCollection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account := request.GetInt("account", 0)
	if account <= 0 {
		return mcp.NewToolResultError("account must be a positive integer"), nil
	}
	query := request.GetString("query", "")

	var cards any
	if query != "" {
		cards = svc.SearchCollection(int64(account), "", query)
	} else {
		cards = svc.Collection(int64(account), "")
	}
	return mcp.NewToolResultText(respondJSON(cards)), nil
}

func handleFuseCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account := request.GetInt("account", 0)
	if account <= 0 {
		return mcp.NewToolResultError("account must be a positive integer"), nil
	}
	card := request.GetInt("card", 0)
	if card <= 0 {
		return mcp.NewToolResultError("card must be a positive instance ID"), nil
	}

	res, err := svc.Fuse(ctx, int64(account), int64(card))
	if err != nil {
		return mcp.NewToolResultErrorf("Fusion failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(res)), nil
}

func handleRequestBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account := request.GetInt("account", 0)
	if account <= 0 {
		return mcp.NewToolResultError("account must be a positive integer"), nil
	}
	name := request.GetString("name", "")

	status, err := svc.RequestBattle(ctx, int64(account), name)
	if err != nil {
		return mcp.NewToolResultErrorf("Could not join the queue: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(status)), nil
}

func handleCancelBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account := request.GetInt("account", 0)
	if account <= 0 {
		return mcp.NewToolResultError("account must be a positive integer"), nil
	}

	if err := svc.CancelBattle(int64(account)); err != nil {
		return mcp.NewToolResultErrorf("Could not cancel: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(map[string]any{"cancelled": true})), nil
}

func handleFightScripted(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account := request.GetInt("account", 0)
	if account <= 0 {
		return mcp.NewToolResultError("account must be a positive integer"), nil
	}
	level := request.GetString("level", "")

	report, err := svc.FightScripted(ctx, int64(account), "", level)
	if err != nil {
		return mcp.NewToolResultErrorf("Battle failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(report)), nil
}

func handlePlayDice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account := request.GetInt("account", 0)
	if account <= 0 {
		return mcp.NewToolResultError("account must be a positive integer"), nil
	}

	res, err := svc.PlayDice(ctx, int64(account), "")
	if err != nil {
		return mcp.NewToolResultErrorf("Dice game failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(res)), nil
}

func handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 10)
	return mcp.NewToolResultText(respondJSON(svc.Leaderboard(limit))), nil
}
