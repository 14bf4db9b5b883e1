package firecrawl

import (
	"context"
	"fmt"
	"strings"

	"finderhub/internal/textutil"
)

// SiteRating is the JSON shape the extraction prompts ask for on platforms
// with numeric ratings.
type SiteRating struct {
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

// GradeRating is the JSON shape for platforms that grade with letters (BBB).
type GradeRating struct {
	Rating string `json:"rating"`
}

// ScrapeResult reports whether a site helper found the listing and how many
// credits the hit cost. Misses cost nothing.
type ScrapeResult struct {
	Found   bool
	Credits int64
}

// ScrapeYelp scrapes the Yelp listing for a business, trying the Canadian
// domain first. Rating is out of 5.
func (c *Client) ScrapeYelp(ctx context.Context, businessName, city string) (SiteRating, ScrapeResult, error) {
	businessName = textutil.NormalizeName(businessName)
	slug := textutil.Slug(businessName, city)
	prompt := fmt.Sprintf(
		"Extract the overall rating (out of 5 stars) and total number of reviews for %s. Return JSON: {rating: number, review_count: number}",
		businessName,
	)

	var rating SiteRating
	for _, pageURL := range []string{
		"https://www.yelp.ca/biz/" + slug,
		"https://www.yelp.com/biz/" + slug,
	} {
		found, err := c.scrapeJSON(ctx, pageURL, prompt, &rating)
		if err != nil {
			return SiteRating{}, ScrapeResult{}, err
		}
		if found && rating.Rating > 0 {
			return rating, ScrapeResult{Found: true, Credits: CreditsPerScrape}, nil
		}
	}
	return SiteRating{}, ScrapeResult{}, nil
}

// ScrapeHomeStars scrapes the HomeStars company page. Rating is out of 10.
func (c *Client) ScrapeHomeStars(ctx context.Context, businessName string) (SiteRating, ScrapeResult, error) {
	businessName = textutil.NormalizeName(businessName)
	slug := textutil.Slug(businessName)
	pageURL := "https://homestars.com/companies/" + slug
	prompt := fmt.Sprintf(
		"Extract the overall rating (out of 10) and total number of reviews for %s. Return JSON: {rating: number, review_count: number}",
		businessName,
	)

	var rating SiteRating
	found, err := c.scrapeJSON(ctx, pageURL, prompt, &rating)
	if err != nil {
		return SiteRating{}, ScrapeResult{}, err
	}
	if found && rating.Rating > 0 {
		return rating, ScrapeResult{Found: true, Credits: CreditsPerScrape}, nil
	}
	return SiteRating{}, ScrapeResult{}, nil
}

// ScrapeBBB scrapes Better Business Bureau listings, trying the regional URL
// layouts the directory's Ontario businesses appear under.
func (c *Client) ScrapeBBB(ctx context.Context, businessName, city, province string) (GradeRating, ScrapeResult, error) {
	province = strings.TrimSpace(province)
	if province == "" {
		province = "ON"
	}
	businessName = textutil.NormalizeName(businessName)
	slug := textutil.Slug(businessName)
	prompt := fmt.Sprintf(
		"Extract the BBB rating (A+, A, B, etc.) for %s. Return JSON: {rating: string}",
		businessName,
	)

	regions := []string{
		"central-western-ontario/" + textutil.Slug(city),
		"eastern-ontario",
		"ottawa",
	}

	var grade GradeRating
	for _, region := range regions {
		pageURL := fmt.Sprintf("https://www.bbb.org/ca/%s/%s/%s", strings.ToLower(province), region, slug)
		found, err := c.scrapeJSON(ctx, pageURL, prompt, &grade)
		if err != nil {
			return GradeRating{}, ScrapeResult{}, err
		}
		if found && strings.TrimSpace(grade.Rating) != "" {
			return grade, ScrapeResult{Found: true, Credits: CreditsPerScrape}, nil
		}
	}
	return GradeRating{}, ScrapeResult{}, nil
}
