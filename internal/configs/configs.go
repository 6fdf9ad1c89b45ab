package configs

import "time"

type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Scraper ScraperConfig `json:"scraper" yaml:"scraper"`
	Chain   ChainConfig   `json:"chain" yaml:"chain"`
	Probe   ProbeConfig   `json:"probe" yaml:"probe"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"` // listen address
	Mode string `json:"mode" yaml:"mode"` // gin mode: debug or release
}

// ScraperConfig tunes the extraction protocol. Durations are strings in
// time.ParseDuration format.
type ScraperConfig struct {
	BaseURL         string `json:"base_url" yaml:"base_url"`
	UserAgent       string `json:"user_agent" yaml:"user_agent"`
	NavigateTimeout string `json:"navigate_timeout" yaml:"navigate_timeout"`
	SelectorTimeout string `json:"selector_timeout" yaml:"selector_timeout"`
	SettleDelay     string `json:"settle_delay" yaml:"settle_delay"`
	ScrollStep      int    `json:"scroll_step" yaml:"scroll_step"`
	ScrollInterval  string `json:"scroll_interval" yaml:"scroll_interval"`
	Headful         bool   `json:"headful" yaml:"headful"` // run the browser with a visible window
}

type ChainConfig struct {
	RPCURL         string `json:"rpc_url" yaml:"rpc_url"`
	ChainID        int64  `json:"chain_id" yaml:"chain_id"`
	PrivateKey     string `json:"private_key" yaml:"private_key"` // empty disables trading
	SlippageBps    int64  `json:"slippage_bps" yaml:"slippage_bps"`
	DeadlineWindow string `json:"deadline_window" yaml:"deadline_window"`
}

type ProbeConfig struct {
	Timeout string `json:"timeout" yaml:"timeout"`
	Marker  string `json:"marker" yaml:"marker"`
}

// ApplyDefaults fills zero values with the defaults matching the live site
// and Base mainnet.
func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}

	if c.Scraper.BaseURL == "" {
		c.Scraper.BaseURL = "https://robinpump.fun"
	}
	if c.Scraper.NavigateTimeout == "" {
		c.Scraper.NavigateTimeout = "60s"
	}
	if c.Scraper.SelectorTimeout == "" {
		c.Scraper.SelectorTimeout = "30s"
	}
	if c.Scraper.SettleDelay == "" {
		c.Scraper.SettleDelay = "3s"
	}
	if c.Scraper.ScrollStep <= 0 {
		c.Scraper.ScrollStep = 500
	}
	if c.Scraper.ScrollInterval == "" {
		c.Scraper.ScrollInterval = "200ms"
	}

	if c.Chain.RPCURL == "" {
		c.Chain.RPCURL = "https://mainnet.base.org"
	}
	if c.Chain.ChainID == 0 {
		c.Chain.ChainID = 8453
	}
	if c.Chain.SlippageBps <= 0 {
		c.Chain.SlippageBps = 100
	}
	if c.Chain.DeadlineWindow == "" {
		c.Chain.DeadlineWindow = "5m"
	}

	if c.Probe.Timeout == "" {
		c.Probe.Timeout = "10s"
	}
}

// Duration parses s, falling back to fallback when s is empty or malformed.
func Duration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
