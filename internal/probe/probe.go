// Package probe checks the scraped origin without paying for a browser
// launch. A transport failure means the site is down; a page that loads but
// no longer carries the expected marker means the site changed shape and the
// extraction schema needs attention. The two degrade differently and are
// reported apart.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pumpscope/pumpscope/internal/utils/request"
)

const defaultMarker = "project-card"

// Result is one origin check.
type Result struct {
	Reachable   bool  `json:"reachable"`
	StatusCode  int   `json:"statusCode"`
	LatencyMS   int64 `json:"latencyMs"`
	MarkerFound bool  `json:"markerFound"`
}

// Prober fetches the origin's raw HTML and looks for the listing's
// project-card marker.
type Prober struct {
	client *resty.Client
	url    string
	marker string
	log    *slog.Logger
}

// New creates a Prober for url. An empty marker falls back to the listing
// card marker.
func New(url, marker string, timeout time.Duration, log *slog.Logger) *Prober {
	if marker == "" {
		marker = defaultMarker
	}

	client := request.Request
	if timeout > 0 {
		client = client.Clone().SetTimeout(timeout)
	}

	return &Prober{
		client: client,
		url:    url,
		marker: marker,
		log:    log,
	}
}

// Check performs one probe. A transport-level failure returns an error
// ("site down"); a served page missing the marker returns MarkerFound=false
// ("site changed") without an error.
func (p *Prober) Check(ctx context.Context) (*Result, error) {
	start := time.Now()

	resp, err := p.client.R().SetContext(ctx).Get(p.url)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", p.url, err)
	}

	result := &Result{
		Reachable:   resp.StatusCode() == http.StatusOK,
		StatusCode:  resp.StatusCode(),
		LatencyMS:   time.Since(start).Milliseconds(),
		MarkerFound: strings.Contains(string(resp.Body()), p.marker),
	}

	if result.Reachable && !result.MarkerFound {
		p.log.Warn("origin reachable but marker missing", "url", p.url, "marker", p.marker)
	}

	return result, nil
}
