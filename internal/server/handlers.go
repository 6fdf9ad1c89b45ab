package server

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/pumpscope/pumpscope/internal/analysis"
	"github.com/pumpscope/pumpscope/internal/chain"
)

// handleLiveProjects scrapes the listing page. Any extraction failure
// collapses into one 500 with the error's message; there are no partial
// results.
func (s *Server) handleLiveProjects(c *gin.Context) {
	projects, err := s.scraper.ScrapeListing(c.Request.Context())
	if err != nil {
		s.log.Error("listing scrape failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(projects),
		"projects": projects,
	})
}

// handleProject scrapes one detail page and scores it.
func (s *Server) handleProject(c *gin.Context) {
	address := c.Param("address")

	detail, err := s.scraper.ScrapeProject(c.Request.Context(), address)
	if err != nil {
		s.log.Error("project scrape failed", "address", address, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"address":  address,
		"data":     detail,
		"analysis": analysis.Analyze(analysis.MetricsFromDetail(*detail)),
	})
}

// handleHealth probes the scraped origin and reports trading availability.
func (s *Server) handleHealth(c *gin.Context) {
	result, err := s.prober.Check(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"origin":         result,
		"tradingEnabled": s.trader != nil,
	})
}

func (s *Server) handleCurveState(c *gin.Context) {
	curve, ok := s.curveAddress(c)
	if !ok {
		return
	}

	state, err := s.trader.State(c.Request.Context(), curve)
	if err != nil {
		s.log.Error("curve state read failed", "curve", curve, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
}

func (s *Server) handleSimulateBuy(c *gin.Context) {
	curve, ok := s.curveAddress(c)
	if !ok {
		return
	}
	ethIn, ok := s.amountParam(c, "eth")
	if !ok {
		return
	}

	sim, err := s.trader.SimulateBuy(c.Request.Context(), curve, ethIn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "simulation": sim})
}

func (s *Server) handleSimulateSell(c *gin.Context) {
	curve, ok := s.curveAddress(c)
	if !ok {
		return
	}
	tokenIn, ok := s.amountParam(c, "tokens")
	if !ok {
		return
	}

	ethOut, err := s.trader.SimulateSell(c.Request.Context(), curve, tokenIn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ethOut": ethOut})
}

// tradeRequest is the body for buy and sell. Amount is a decimal string in
// ether/token units; SlippageBps falls back to the server default when
// omitted.
type tradeRequest struct {
	Amount      string `json:"amount" binding:"required"`
	SlippageBps *int64 `json:"slippageBps"`
}

func (s *Server) handleBuy(c *gin.Context) {
	s.handleTrade(c, s.tradeBuy)
}

func (s *Server) handleSell(c *gin.Context) {
	s.handleTrade(c, s.tradeSell)
}

func (s *Server) tradeBuy(c *gin.Context, curve common.Address, amount *big.Int, bps int64) (common.Hash, error) {
	return s.trader.Buy(c.Request.Context(), curve, amount, bps)
}

func (s *Server) tradeSell(c *gin.Context, curve common.Address, amount *big.Int, bps int64) (common.Hash, error) {
	return s.trader.Sell(c.Request.Context(), curve, amount, bps)
}

func (s *Server) handleTrade(c *gin.Context, submit func(*gin.Context, common.Address, *big.Int, int64) (common.Hash, error)) {
	curve, ok := s.curveAddress(c)
	if !ok {
		return
	}

	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	amount, err := chain.ParseEther(req.Amount)
	if err != nil || amount.Sign() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "enter a valid amount"})
		return
	}

	bps := s.slippageBps
	if req.SlippageBps != nil {
		bps = *req.SlippageBps
	}

	hash, err := submit(c, curve, amount, bps)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chain.ErrTradeInFlight) {
			status = http.StatusConflict
		}
		s.log.Error("trade failed", "curve", curve, "err", err)
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "txHash": hash})
}

// curveAddress validates the path address and checks that trading routes
// have a trader at all.
func (s *Server) curveAddress(c *gin.Context) (common.Address, bool) {
	if s.trader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "chain trading is not configured"})
		return common.Address{}, false
	}

	raw := c.Param("address")
	if !common.IsHexAddress(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid curve address"})
		return common.Address{}, false
	}

	return common.HexToAddress(raw), true
}

// amountParam parses a decimal amount query parameter into wei.
func (s *Server) amountParam(c *gin.Context, name string) (*big.Int, bool) {
	v, err := chain.ParseEther(c.Query(name))
	if err != nil || v.Sign() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid " + name + " amount"})
		return nil, false
	}
	return v, true
}
