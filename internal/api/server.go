// Package api is the HTTP platform adapter. It translates JSON requests
// into synchronous calls on the service and maps the typed domain failures
// onto HTTP statuses. It renders no presentation text; callers format the
// results themselves.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goalrush/goalrush/internal/game"
	"github.com/goalrush/goalrush/internal/service"
)

// Server wires the gin router over a service.
type Server struct {
	svc    *service.Service
	engine *gin.Engine
}

func NewServer(svc *service.Service) *Server {
	s := &Server{svc: svc}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.health)
	r.GET("/leaderboard", s.leaderboard)

	acct := r.Group("/accounts/:id")
	{
		acct.GET("/profile", s.profile)
		acct.POST("/packs/:pack", s.openPack)
		acct.GET("/packs/free", s.freePackStatus)
		acct.GET("/collection", s.collection)
		acct.PUT("/collection/:card/media", s.attachMedia)
		acct.POST("/fuse", s.fuse)
		acct.POST("/battle", s.requestBattle)
		acct.DELETE("/battle", s.cancelBattle)
		acct.POST("/battle/scripted", s.fightScripted)
		acct.POST("/dice", s.playDice)
		acct.POST("/reset", s.reset)
	}

	s.engine = r
	return s
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"catalog":     s.svc.Catalog().Size(),
		"queue_depth": s.svc.QueueDepth(),
	})
}

// fail maps domain errors onto HTTP statuses.
func fail(c *gin.Context, err error) {
	var roster *game.IncompleteRosterError
	switch {
	case errors.Is(err, game.ErrNotFound), errors.Is(err, game.ErrNotQueued):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientDuplicates),
		errors.Is(err, game.ErrMaxRarity),
		errors.Is(err, game.ErrNoFreePacks):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &roster):
		missing := make([]string, len(roster.Missing))
		for i, p := range roster.Missing {
			missing[i] = p.String()
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "missing_roles": missing})
	case errors.Is(err, game.ErrUnknownPack):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
