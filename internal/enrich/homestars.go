package enrich

import (
	"context"

	"finderhub/internal/directory"
	"finderhub/internal/services/homestars"
)

// HomeStarsEnricher scrapes HomeStars company pages directly, recording the
// discovered page URL even when the page shows no rating yet.
type HomeStarsEnricher struct {
	Scraper *homestars.Scraper
}

// NewHomeStarsEnricher constructs the homestars job.
func NewHomeStarsEnricher(scraper *homestars.Scraper) *HomeStarsEnricher {
	return &HomeStarsEnricher{Scraper: scraper}
}

func (e *HomeStarsEnricher) Name() string { return "homestars" }

func (e *HomeStarsEnricher) Query() directory.BatchQuery {
	return directory.BatchQuery{
		Select:       []string{"id", "business_name", "city"},
		MissingField: "homestars_rating",
	}
}

func (e *HomeStarsEnricher) Enrich(ctx context.Context, provider directory.Provider) (Outcome, error) {
	listing, ok, err := e.Scraper.Lookup(ctx, provider.BusinessName, provider.City)
	if err != nil {
		return Outcome{}, err
	}

	fields := map[string]any{}
	if listing.URL != "" {
		fields["homestars_url"] = listing.URL
	}
	if ok {
		fields["homestars_rating"] = listing.Rating
		if listing.ReviewCount != nil {
			fields["homestars_review_count"] = *listing.ReviewCount
		}
	}
	return Outcome{Fields: fields, Found: ok}, nil
}
