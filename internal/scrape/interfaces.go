package scrape

import (
	"context"
	"errors"

	"github.com/pumpscope/pumpscope/internal/models"
)

// Scraper extracts project data from the launch site's rendered DOM. Each
// call drives its own isolated browser instance and either fully succeeds or
// fully fails; there are no partial results and no retries.
type Scraper interface {
	// ScrapeListing loads the listing page and returns every project card it
	// can find. Cards with missing sub-fields are kept with nil fields.
	ScrapeListing(ctx context.Context) ([]models.ProjectSummary, error)

	// ScrapeProject loads a single project's detail page, keyed by its curve
	// address.
	ScrapeProject(ctx context.Context, address string) (*models.ProjectDetail, error)
}

// ErrStructureChanged marks a scrape that reached the site but never found
// the expected DOM marker, so operators can tell "site changed" apart from
// "site down".
var ErrStructureChanged = errors.New("page structure changed: expected marker not found")
