package robinpump

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumpscope/pumpscope/internal/scrape"
)

// The fixtures replicate the live site's card and detail markup so the
// schema locators are exercised end to end against a real rendered DOM.
const listingFixture = `<!DOCTYPE html>
<html><body>
<a data-testid="project-card" href="/project/0xabc">
	<img src="/images/dogc.png"/>
	<h3>Doge Classic</h3>
	<span class="text-muted-foreground truncate">DOGC</span>
	<p>The original dog, again.</p>
	<span class="font-mono">0x1234...beef</span>
	<span class="shrink-0 whitespace-nowrap">2h</span>
	<span class="font-semibold text-foreground">$12.3K</span>
	<span class="text-green-500">+45.2%</span>
	<div class="bg-gradient-to-r" style="width: 72%">&nbsp;</div>
</a>
<a data-testid="project-card" href="/project/0xdef">
	<h3>Barebones</h3>
</a>
</body></html>`

const detailFixture = `<!DOCTYPE html>
<html><body>
<div>
	<h1>Doge Classic</h1>
	<span class="font-medium">DOGC</span>
</div>
<div class="bg-card border border-border rounded-2xl px-4 py-3"><p>The original dog, again.</p></div>
<div class="text-3xl font-bold">$45.6K</div>
<span class="text-sm font-semibold">$0.0000123</span>
<span class="text-sm font-semibold">+120%</span>
<div class="bg-gradient-to-r" style="width: 64%">&nbsp;</div>
</body></html>`

func newFixtureServer(t *testing.T, listing, detail string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, listing)
	})
	mux.HandleFunc("/project/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, detail)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestScraper(baseURL string) *Scraper {
	return New(Config{
		BaseURL:         baseURL,
		NavigateTimeout: 30 * time.Second,
		SelectorTimeout: 10 * time.Second,
		SettleDelay:     100 * time.Millisecond,
		ScrollInterval:  20 * time.Millisecond,
		Headless:        true,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScraper_ScrapeListing(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a local Chrome/Chromium binary")
	}

	srv := newFixtureServer(t, listingFixture, detailFixture)
	s := newTestScraper(srv.URL)

	projects, err := s.ScrapeListing(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	full := projects[0]
	require.NotNil(t, full.Title)
	assert.Equal(t, "Doge Classic", *full.Title)
	require.NotNil(t, full.Symbol)
	assert.Equal(t, "DOGC", *full.Symbol)
	require.NotNil(t, full.Description)
	assert.Equal(t, "The original dog, again.", *full.Description)
	require.NotNil(t, full.Creator)
	assert.Equal(t, "0x1234...beef", *full.Creator)
	require.NotNil(t, full.Age)
	assert.Equal(t, "2h", *full.Age)
	require.NotNil(t, full.MarketCap)
	assert.Equal(t, "$12.3K", *full.MarketCap)
	require.NotNil(t, full.Change)
	assert.Equal(t, "+45.2%", *full.Change)
	require.NotNil(t, full.Progress)
	assert.Equal(t, "72%", *full.Progress)
	require.NotNil(t, full.Image)
	assert.Contains(t, *full.Image, "/images/dogc.png")
	require.NotNil(t, full.Link)
	assert.Equal(t, srv.URL+"/project/0xabc", *full.Link)

	// Partial cards are kept, missing sub-fields come back nil.
	partial := projects[1]
	require.NotNil(t, partial.Title)
	assert.Equal(t, "Barebones", *partial.Title)
	assert.Nil(t, partial.Symbol)
	assert.Nil(t, partial.MarketCap)
	assert.Nil(t, partial.Progress)
	require.NotNil(t, partial.Link)
	assert.Equal(t, srv.URL+"/project/0xdef", *partial.Link)
}

func TestScraper_ScrapeListing_NoCards(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a local Chrome/Chromium binary")
	}

	srv := newFixtureServer(t, "<html><body><p>maintenance</p></body></html>", detailFixture)
	s := New(Config{
		BaseURL:         srv.URL,
		SelectorTimeout: 2 * time.Second,
		SettleDelay:     100 * time.Millisecond,
		ScrollInterval:  20 * time.Millisecond,
		Headless:        true,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	projects, err := s.ScrapeListing(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, scrape.ErrStructureChanged)
	assert.Nil(t, projects)
	assert.NotEmpty(t, err.Error())
}

func TestScraper_ScrapeProject(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a local Chrome/Chromium binary")
	}

	srv := newFixtureServer(t, listingFixture, detailFixture)
	s := newTestScraper(srv.URL)

	detail, err := s.ScrapeProject(context.Background(), "0xabc")
	require.NoError(t, err)
	require.NotNil(t, detail)

	require.NotNil(t, detail.Title)
	assert.Equal(t, "Doge Classic", *detail.Title)
	require.NotNil(t, detail.Symbol)
	assert.Equal(t, "DOGC", *detail.Symbol)
	require.NotNil(t, detail.Description)
	assert.Equal(t, "The original dog, again.", *detail.Description)
	require.NotNil(t, detail.MarketCap)
	assert.Equal(t, "$45.6K", *detail.MarketCap)
	require.NotNil(t, detail.Price)
	assert.Equal(t, "$0.0000123", *detail.Price)
	require.NotNil(t, detail.FromLaunch)
	assert.Equal(t, "+120%", *detail.FromLaunch)
	require.NotNil(t, detail.Progress)
	assert.Equal(t, "64%", *detail.Progress)

	// Same page, same result: extraction holds no state between runs.
	again, err := s.ScrapeProject(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, detail, again)
}

func TestScraper_ScrapeProject_NoHeading(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a local Chrome/Chromium binary")
	}

	srv := newFixtureServer(t, listingFixture, "<html><body><p>gone</p></body></html>")
	s := New(Config{
		BaseURL:         srv.URL,
		SelectorTimeout: 2 * time.Second,
		Headless:        true,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	detail, err := s.ScrapeProject(context.Background(), "0xabc")
	require.Error(t, err)
	assert.ErrorIs(t, err, scrape.ErrStructureChanged)
	assert.Nil(t, detail)
}
