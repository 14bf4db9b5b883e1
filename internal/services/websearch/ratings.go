package websearch

import (
	"context"
	"fmt"
	"strings"

	"finderhub/internal/services"
)

// RatingsReport carries per-platform ratings found for a business. Nil fields
// mean the platform had no data the search could establish.
type RatingsReport struct {
	YelpRating         *float64 `json:"yelp_rating"`
	YelpReviews        *int     `json:"yelp_reviews"`
	HomestarsRating    *float64 `json:"homestars_rating"`
	HomestarsReviews   *int     `json:"homestars_reviews"`
	GoogleRating       *float64 `json:"google_rating"`
	GoogleReviews      *int     `json:"google_reviews"`
	BBBRating          *string  `json:"bbb_rating"`
	FacebookRating     *float64 `json:"facebook_rating"`
	FacebookReviews    *int     `json:"facebook_reviews"`
	TrustedProsRating  *float64 `json:"trustedpros_rating"`
	TrustedProsReviews *int     `json:"trustedpros_reviews"`
}

// Empty reports whether no platform yielded any data.
func (r RatingsReport) Empty() bool {
	return r.YelpRating == nil && r.YelpReviews == nil &&
		r.HomestarsRating == nil && r.HomestarsReviews == nil &&
		r.GoogleRating == nil && r.GoogleReviews == nil &&
		r.BBBRating == nil &&
		r.FacebookRating == nil && r.FacebookReviews == nil &&
		r.TrustedProsRating == nil && r.TrustedProsReviews == nil
}

// Fields returns the non-nil values keyed by directory column name, ready to
// PATCH onto the provider row.
func (r RatingsReport) Fields() map[string]any {
	fields := map[string]any{}
	put := func(key string, value any) {
		fields[key] = value
	}
	if r.YelpRating != nil {
		put("yelp_rating", *r.YelpRating)
	}
	if r.YelpReviews != nil {
		put("yelp_review_count", *r.YelpReviews)
	}
	if r.HomestarsRating != nil {
		put("homestars_rating", *r.HomestarsRating)
	}
	if r.HomestarsReviews != nil {
		put("homestars_review_count", *r.HomestarsReviews)
	}
	if r.GoogleRating != nil {
		put("google_rating", *r.GoogleRating)
	}
	if r.GoogleReviews != nil {
		put("google_review_count", *r.GoogleReviews)
	}
	if r.BBBRating != nil {
		put("bbb_rating", *r.BBBRating)
	}
	if r.FacebookRating != nil {
		put("facebook_rating", *r.FacebookRating)
	}
	if r.FacebookReviews != nil {
		put("facebook_review_count", *r.FacebookReviews)
	}
	if r.TrustedProsRating != nil {
		put("trustedpros_rating", *r.TrustedProsRating)
	}
	if r.TrustedProsReviews != nil {
		put("trustedpros_review_count", *r.TrustedProsReviews)
	}
	return fields
}

const ratingsPromptFormat = "Find ratings and review counts for %s in %s from these platforms: " +
	"Yelp, HomeStars, Google Reviews, BBB, Facebook, TrustedPros. " +
	"Return ONLY a JSON object with this exact structure: " +
	"{\"yelp_rating\": float or null, \"yelp_reviews\": int or null, " +
	"\"homestars_rating\": float or null, \"homestars_reviews\": int or null, " +
	"\"google_rating\": float or null, \"google_reviews\": int or null, " +
	"\"bbb_rating\": string or null, " +
	"\"facebook_rating\": float or null, \"facebook_reviews\": int or null, " +
	"\"trustedpros_rating\": float or null, \"trustedpros_reviews\": int or null}. " +
	"Use null for any platform where you cannot find data."

// FindRatings looks up review ratings for a business across the supported
// platforms. A reply that cannot be parsed yields an empty report, not an
// error.
func (c *Client) FindRatings(ctx context.Context, businessName, city string) (RatingsReport, error) {
	businessName = strings.TrimSpace(businessName)
	city = strings.TrimSpace(city)
	if businessName == "" {
		return RatingsReport{}, services.Wrap(services.ErrValidation, "ratings", "find ratings", "business name is required", nil)
	}

	text, err := c.search(ctx, fmt.Sprintf(ratingsPromptFormat, businessName, city))
	if err != nil {
		return RatingsReport{}, services.Wrap(services.ErrExternalService, "ratings", "find ratings", businessName, err)
	}

	var report RatingsReport
	if decodeErr := DecodeReportJSON(text, &report); decodeErr != nil {
		return RatingsReport{}, nil
	}
	return report, nil
}
