package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goalrush/goalrush/internal/game"
	"github.com/goalrush/goalrush/internal/service"
)

// callerID parses the account id path parameter. The platform supplies the
// caller identity; no authentication happens here.
func callerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return 0, false
	}
	return id, true
}

// cardView is the JSON shape of an owned card.
type cardView struct {
	InstanceID int64  `json:"instance_id"`
	DefID      int    `json:"def_id"`
	Name       string `json:"name"`
	Rarity     string `json:"rarity"`
	Role       string `json:"role"`
	Rating     int    `json:"rating"`
}

func toCardView(ci game.CardInstance) cardView {
	return cardView{
		InstanceID: ci.InstanceID,
		DefID:      ci.Def.ID,
		Name:       ci.Def.Name,
		Rarity:     ci.Def.Rarity.String(),
		Role:       ci.Def.Role.String(),
		Rating:     ci.Def.Rating,
	}
}

func (s *Server) profile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	p := s.svc.Profile(id, c.Query("name"))
	c.JSON(http.StatusOK, gin.H{
		"id":            p.ID,
		"name":          p.Name,
		"coins":         p.Coins,
		"gems":          p.Gems,
		"candies":       p.Candies,
		"stars":         p.Stars,
		"cards":         p.Cards,
		"rarity_counts": p.RarityCounts,
		"rating":        p.Rating,
		"free_packs":    p.FreePacks,
		"next_refill_s": int(p.NextRefill.Seconds()),
		"dice_wins":     p.DiceWins,
		"dice_losses":   p.DiceLosses,
		"dice_rolls":    p.DiceRolls,
	})
}

func (s *Server) openPack(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	ci, err := s.svc.OpenPack(c.Request.Context(), id, c.Query("name"), c.Param("pack"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": toCardView(ci)})
}

func (s *Server) freePackStatus(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	remaining, wait := s.svc.FreePackStatus(id, c.Query("name"))
	c.JSON(http.StatusOK, gin.H{
		"remaining":     remaining,
		"next_refill_s": int(wait.Seconds()),
	})
}

func (s *Server) collection(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	var cards []game.CardInstance
	if q := c.Query("q"); q != "" {
		cards = s.svc.SearchCollection(id, c.Query("name"), q)
	} else {
		cards = s.svc.Collection(id, c.Query("name"))
	}
	views := make([]cardView, 0, len(cards))
	for _, ci := range cards {
		views = append(views, toCardView(ci))
	}
	c.JSON(http.StatusOK, gin.H{"cards": views})
}

type mediaRequest struct {
	MediaRef string `json:"media_ref" binding:"required"`
}

func (s *Server) attachMedia(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	cardID, err := strconv.ParseInt(c.Param("card"), 10, 64)
	if err != nil || cardID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}
	var req mediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media_ref is required"})
		return
	}
	if err := s.svc.AttachMedia(c.Request.Context(), id, cardID, req.MediaRef); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": "attached"})
}

type fuseRequest struct {
	CardID int64 `json:"card_id" binding:"required"`
}

func (s *Server) fuse(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	var req fuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card_id is required"})
		return
	}
	res, err := s.svc.Fuse(c.Request.Context(), id, req.CardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"consumed":     len(res.Consumed),
		"new_card":     toCardView(res.NewCard),
		"reward_coins": res.RewardCoins,
		"reward_candy": res.RewardCandy,
	})
}

func battleView(r *service.BattleReport) gin.H {
	return gin.H{
		"battle_id":       r.BattleID,
		"mode":            r.Mode,
		"won":             r.Won,
		"requester_power": r.RequesterPower,
		"opponent_power":  r.OpponentPower,
		"opponent_id":     r.OpponentID,
		"opponent_name":   r.OpponentName,
		"coins_won":       r.CoinsWon,
		"coins_lost":      r.CoinsLost,
		"rating_delta":    r.RatingDelta,
	}
}

func (s *Server) requestBattle(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	status, err := s.svc.RequestBattle(c.Request.Context(), id, c.Query("name"))
	if err != nil {
		fail(c, err)
		return
	}
	resp := gin.H{"state": string(status.State)}
	if status.TicketID != "" {
		resp["ticket_id"] = status.TicketID
	}
	if status.Report != nil {
		resp["report"] = battleView(status.Report)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) cancelBattle(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	if err := s.svc.CancelBattle(id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": "cancelled"})
}

type scriptedRequest struct {
	Level string `json:"level" binding:"required"`
}

func (s *Server) fightScripted(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	var req scriptedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level is required"})
		return
	}
	report, err := s.svc.FightScripted(c.Request.Context(), id, c.Query("name"), req.Level)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": battleView(&report)})
}

func (s *Server) playDice(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	res, err := s.svc.PlayDice(c.Request.Context(), id, c.Query("name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"roll":       res.Roll,
		"won":        res.Won,
		"coins_won":  res.CoinsWon,
		"gems_won":   res.GemsWon,
		"stars_won":  res.StarsWon,
		"coins_paid": res.CoinsPaid,
	})
}

func (s *Server) reset(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	s.svc.Reset(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"state": "reset"})
}

func (s *Server) leaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	entries := s.svc.Leaderboard(limit)
	rows := make([]gin.H, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, gin.H{
			"rank":   i + 1,
			"id":     e.ID,
			"name":   e.Name,
			"rating": e.Rating,
			"coins":  e.Coins,
		})
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}
