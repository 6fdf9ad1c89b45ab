package models

// ProjectSummary is one card scraped from the launch-site listing page. Every
// field is optional: a locator that finds nothing leaves the field nil, the
// card itself is never discarded. Link doubles as the de-facto identity when
// navigating to the detail page.
type ProjectSummary struct {
	Title       *string `json:"title"`
	Symbol      *string `json:"symbol"`
	Description *string `json:"description"`
	Creator     *string `json:"creator"`
	Age         *string `json:"age"`
	MarketCap   *string `json:"marketCap"`
	Change      *string `json:"change"`
	Progress    *string `json:"progress"`
	Image       *string `json:"image"`
	Link        *string `json:"link"`
}

// ProjectDetail is the field set scraped from a single project's detail page,
// keyed externally by the curve address in the request path. Same nullability
// rules as ProjectSummary.
type ProjectDetail struct {
	Title       *string `json:"title"`
	Symbol      *string `json:"symbol"`
	Description *string `json:"description"`
	MarketCap   *string `json:"marketCap"`
	Price       *string `json:"price"`
	FromLaunch  *string `json:"fromLaunch"`
	Progress    *string `json:"progress"`
}

// TokenMetrics is the normalized numeric view fed to the scoring engine.
// Absent source fields normalize to 0; BondingProgress is clamped to [0,100]
// by the builder. The Has* flags record whether volume/24h-change were part of
// the scraped input, since only the listing pipeline produces them.
type TokenMetrics struct {
	MarketCap       float64 `json:"marketCap"`
	Volume24h       float64 `json:"volume24h"`
	Change24h       float64 `json:"change24h"`
	FromLaunch      float64 `json:"fromLaunch"`
	BondingProgress float64 `json:"bondingProgress"`

	HasVolume24h bool `json:"-"`
	HasChange24h bool `json:"-"`
}

// Signal is a three-way trade signal.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalHold Signal = "HOLD"
	SignalSell Signal = "SELL"
)

// AnalysisResult is the scoring engine's output. Both scores are clamped to
// [0,100]; the result carries no identity and is recomputed on every view.
type AnalysisResult struct {
	RiskScore    int    `json:"riskScore"`
	QualityScore int    `json:"qualityScore"`
	Signal       Signal `json:"signal"`
	Reason       string `json:"reason"`
}
