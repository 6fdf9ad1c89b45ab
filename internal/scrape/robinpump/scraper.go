// Package robinpump scrapes robinpump.fun through a headless browser. The
// site renders everything client-side and lazy-loads listing cards on
// scroll, so extraction drives a real page: navigate, settle, scroll, wait
// for the expected marker, then read all fields in one in-page evaluation.
package robinpump

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/pumpscope/pumpscope/internal/models"
	"github.com/pumpscope/pumpscope/internal/scrape"
)

const (
	defaultBaseURL   = "https://robinpump.fun"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

	defaultNavigateTimeout = 60 * time.Second
	defaultSelectorTimeout = 30 * time.Second
	defaultSettleDelay     = 3 * time.Second
	defaultScrollStep      = 500
	defaultScrollInterval  = 200 * time.Millisecond
)

// Config tunes the extraction protocol. Zero values fall back to the
// defaults matching the live site.
type Config struct {
	BaseURL         string
	UserAgent       string
	NavigateTimeout time.Duration
	SelectorTimeout time.Duration
	SettleDelay     time.Duration
	ScrollStep      int
	ScrollInterval  time.Duration
	Headless        bool
}

// Scraper implements scrape.Scraper against robinpump.fun. It is stateless:
// every call launches and tears down its own browser process.
type Scraper struct {
	cfg Config
	log *slog.Logger
}

var _ scrape.Scraper = (*Scraper)(nil)

// New creates a Scraper with defaults applied over cfg.
func New(cfg Config, log *slog.Logger) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.NavigateTimeout <= 0 {
		cfg.NavigateTimeout = defaultNavigateTimeout
	}
	if cfg.SelectorTimeout <= 0 {
		cfg.SelectorTimeout = defaultSelectorTimeout
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = defaultSettleDelay
	}
	if cfg.ScrollStep <= 0 {
		cfg.ScrollStep = defaultScrollStep
	}
	if cfg.ScrollInterval <= 0 {
		cfg.ScrollInterval = defaultScrollInterval
	}

	return &Scraper{cfg: cfg, log: log}
}

// cardResult is the shape the listing script returns per card. Missing
// carries the locators that found nothing so misses can be reported apart
// from hard failures.
type cardResult struct {
	Fields  models.ProjectSummary `json:"fields"`
	Missing []string              `json:"missing"`
}

type detailResult struct {
	Fields  models.ProjectDetail `json:"fields"`
	Missing []string             `json:"missing"`
}

// ScrapeListing implements scrape.Scraper.
func (s *Scraper) ScrapeListing(ctx context.Context) ([]models.ProjectSummary, error) {
	browserCtx, cleanup := s.newBrowser(ctx)
	defer cleanup()

	navCtx, cancelNav := context.WithTimeout(browserCtx, s.cfg.NavigateTimeout)
	defer cancelNav()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(s.cfg.BaseURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(autoScrollScript(s.cfg.ScrollStep, s.cfg.ScrollInterval), nil, awaitPromise),
		chromedp.Sleep(s.cfg.SettleDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("scrape listing: load %s: %w", s.cfg.BaseURL, err)
	}

	waitCtx, cancelWait := context.WithTimeout(browserCtx, s.cfg.SelectorTimeout)
	defer cancelWait()

	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(cardMarker, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("scrape listing: wait for %q: %w", cardMarker, scrape.ErrStructureChanged)
	}

	var cards []cardResult
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(listingScript(s.cfg.BaseURL), &cards)); err != nil {
		return nil, fmt.Errorf("scrape listing: extract cards: %w", err)
	}

	projects := make([]models.ProjectSummary, 0, len(cards))
	for i, card := range cards {
		if len(card.Missing) > 0 {
			s.log.Warn("locator miss", "page", "listing", "card", i, "fields", card.Missing)
		}
		projects = append(projects, card.Fields)
	}

	s.log.Info("listing scraped", "projects", len(projects))
	return projects, nil
}

// ScrapeProject implements scrape.Scraper.
func (s *Scraper) ScrapeProject(ctx context.Context, address string) (*models.ProjectDetail, error) {
	browserCtx, cleanup := s.newBrowser(ctx)
	defer cleanup()

	url := fmt.Sprintf("%s/project/%s", s.cfg.BaseURL, address)

	navCtx, cancelNav := context.WithTimeout(browserCtx, s.cfg.NavigateTimeout)
	defer cancelNav()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("scrape project %s: load %s: %w", address, url, err)
	}

	waitCtx, cancelWait := context.WithTimeout(browserCtx, s.cfg.SelectorTimeout)
	defer cancelWait()

	if err := chromedp.Run(waitCtx, chromedp.WaitVisible("h1", chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("scrape project %s: wait for heading: %w", address, scrape.ErrStructureChanged)
	}

	var result detailResult
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(detailScript(), &result)); err != nil {
		return nil, fmt.Errorf("scrape project %s: extract fields: %w", address, err)
	}

	if len(result.Missing) > 0 {
		s.log.Warn("locator miss", "page", "detail", "address", address, "fields", result.Missing)
	}

	return &result.Fields, nil
}

// newBrowser allocates a fresh isolated browser process for one extraction.
// The returned cleanup tears the process down and must run on every exit
// path.
func (s *Scraper) newBrowser(ctx context.Context) (context.Context, func()) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(s.cfg.UserAgent),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
	}
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}
