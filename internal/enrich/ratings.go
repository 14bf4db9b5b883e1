package enrich

import (
	"context"

	"finderhub/internal/directory"
	"finderhub/internal/services/websearch"
)

// RatingsEnricher pulls review ratings across the supported platforms in one
// LLM web search per provider.
type RatingsEnricher struct {
	Search *websearch.Client
}

// NewRatingsEnricher constructs the ratings job.
func NewRatingsEnricher(search *websearch.Client) *RatingsEnricher {
	return &RatingsEnricher{Search: search}
}

func (e *RatingsEnricher) Name() string { return "ratings" }

func (e *RatingsEnricher) Query() directory.BatchQuery {
	return directory.BatchQuery{
		Select:       []string{"id", "business_name", "city"},
		MissingField: "yelp_rating",
	}
}

func (e *RatingsEnricher) Enrich(ctx context.Context, provider directory.Provider) (Outcome, error) {
	report, err := e.Search.FindRatings(ctx, provider.BusinessName, provider.City)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Fields: report.Fields(), Found: !report.Empty()}, nil
}
