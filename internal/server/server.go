// Package server is the HTTP delivery layer consumed by the web frontend.
package server

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pumpscope/pumpscope/internal/chain"
	"github.com/pumpscope/pumpscope/internal/probe"
	"github.com/pumpscope/pumpscope/internal/scrape"
)

// OriginProber reports whether the scraped origin is up and still shaped as
// expected.
type OriginProber interface {
	Check(ctx context.Context) (*probe.Result, error)
}

// Server wires the scrape pipeline and the curve trader to the HTTP surface.
// The trader may be nil when no signer is configured; trade routes then
// respond 503.
type Server struct {
	scraper     scrape.Scraper
	trader      chain.CurveTrader
	prober      OriginProber
	slippageBps int64
	log         *slog.Logger
}

// New creates a Server. slippageBps is the default discount applied when a
// trade request does not carry its own.
func New(scraper scrape.Scraper, trader chain.CurveTrader, prober OriginProber, slippageBps int64, log *slog.Logger) *Server {
	return &Server{
		scraper:     scraper,
		trader:      trader,
		prober:      prober,
		slippageBps: slippageBps,
		log:         log,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router(mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.GET("/live-projects", s.handleLiveProjects)
	api.GET("/project/:address", s.handleProject)
	api.GET("/health", s.handleHealth)

	curve := api.Group("/curve")
	curve.GET("/:address", s.handleCurveState)
	curve.GET("/:address/simulate-buy", s.handleSimulateBuy)
	curve.GET("/:address/simulate-sell", s.handleSimulateSell)
	curve.POST("/:address/buy", s.handleBuy)
	curve.POST("/:address/sell", s.handleSell)

	return router
}
