package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/pumpscope/pumpscope/internal/chain"
	"github.com/pumpscope/pumpscope/internal/chain/bondingcurve"
	"github.com/pumpscope/pumpscope/internal/configs"
	"github.com/pumpscope/pumpscope/internal/probe"
	"github.com/pumpscope/pumpscope/internal/scrape/robinpump"
	"github.com/pumpscope/pumpscope/internal/server"
)

var (
	flagconf string

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
)

func init() {
	flag.StringVar(&flagconf, "conf", "", "config path, eg: -conf config.json")
}

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file loaded", "err", err)
	}

	config := &configs.Config{}
	if flagconf != "" {
		configFile, err := os.ReadFile(flagconf)
		if err != nil {
			log.Error("Error reading config file", "err", err)
			return
		}
		if err := json.Unmarshal(configFile, config); err != nil {
			log.Error("Error parsing config file", "err", err)
			return
		}
	}

	if key := os.Getenv("PRIVATE_KEY"); key != "" && config.Chain.PrivateKey == "" {
		config.Chain.PrivateKey = key
	}

	config.ApplyDefaults()

	log.Debug("Loaded config", "addr", config.Server.Addr, "base_url", config.Scraper.BaseURL, "chain_id", config.Chain.ChainID)

	scraper := robinpump.New(robinpump.Config{
		BaseURL:         config.Scraper.BaseURL,
		UserAgent:       config.Scraper.UserAgent,
		NavigateTimeout: configs.Duration(config.Scraper.NavigateTimeout, 0),
		SelectorTimeout: configs.Duration(config.Scraper.SelectorTimeout, 0),
		SettleDelay:     configs.Duration(config.Scraper.SettleDelay, 0),
		ScrollStep:      config.Scraper.ScrollStep,
		ScrollInterval:  configs.Duration(config.Scraper.ScrollInterval, 0),
		Headless:        !config.Scraper.Headful,
	}, log)

	log.Debug("init scraper")

	// The trader stays usable without a signer: state and simulation routes
	// still work, buy and sell report the missing key.
	var trader chain.CurveTrader
	t, err := bondingcurve.NewTrader(
		config.Chain.RPCURL,
		config.Chain.PrivateKey,
		config.Chain.ChainID,
		configs.Duration(config.Chain.DeadlineWindow, 0),
		log,
	)
	if err != nil {
		log.Warn("chain trading disabled", "err", err)
	} else {
		trader = t
	}

	log.Debug("init trader", "enabled", trader != nil)

	prober := probe.New(
		config.Scraper.BaseURL,
		config.Probe.Marker,
		configs.Duration(config.Probe.Timeout, 0),
		log,
	)

	log.Debug("init prober")

	srv := server.New(scraper, trader, prober, config.Chain.SlippageBps, log)

	router := srv.Router(config.Server.Mode)
	if err := router.Run(config.Server.Addr); err != nil {
		log.Error("System error", "err", err)
	}
}
