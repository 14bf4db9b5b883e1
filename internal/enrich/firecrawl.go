package enrich

import (
	"context"
	"time"

	"finderhub/internal/directory"
	"finderhub/internal/services/firecrawl"
)

// FirecrawlEnricher scrapes Yelp, HomeStars, and BBB listings through the
// paid extraction API. This is the only job that spends credits, so its
// outcomes report spend even when a later platform fails.
type FirecrawlEnricher struct {
	Client   *firecrawl.Client
	Province string
	// sleep separates the per-platform requests; injectable for tests.
	sleep func(time.Duration)
}

// NewFirecrawlEnricher constructs the firecrawl job.
func NewFirecrawlEnricher(client *firecrawl.Client) *FirecrawlEnricher {
	return &FirecrawlEnricher{Client: client, Province: "ON", sleep: time.Sleep}
}

func (e *FirecrawlEnricher) Name() string { return "firecrawl" }

func (e *FirecrawlEnricher) Query() directory.BatchQuery {
	return directory.BatchQuery{
		Select:       []string{"id", "business_name", "city"},
		MissingField: "yelp_rating",
	}
}

func (e *FirecrawlEnricher) Enrich(ctx context.Context, provider directory.Provider) (Outcome, error) {
	outcome := Outcome{Fields: map[string]any{}}

	yelp, result, err := e.Client.ScrapeYelp(ctx, provider.BusinessName, provider.City)
	outcome.Spend += result.Credits
	if err != nil {
		return outcome, err
	}
	if result.Found {
		outcome.Fields["yelp_rating"] = yelp.Rating
		outcome.Fields["yelp_review_count"] = yelp.ReviewCount
	}
	e.pause()

	homestars, result, err := e.Client.ScrapeHomeStars(ctx, provider.BusinessName)
	outcome.Spend += result.Credits
	if err != nil {
		return outcome, err
	}
	if result.Found {
		outcome.Fields["homestars_rating"] = homestars.Rating
		outcome.Fields["homestars_review_count"] = homestars.ReviewCount
	}
	e.pause()

	bbb, result, err := e.Client.ScrapeBBB(ctx, provider.BusinessName, provider.City, e.Province)
	outcome.Spend += result.Credits
	if err != nil {
		return outcome, err
	}
	if result.Found {
		outcome.Fields["bbb_rating"] = bbb.Rating
	}

	outcome.Found = len(outcome.Fields) > 0
	return outcome, nil
}

func (e *FirecrawlEnricher) pause() {
	sleep := e.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(time.Second)
}
