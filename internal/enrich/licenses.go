package enrich

import (
	"context"
	"strings"
	"time"

	"finderhub/internal/directory"
	"finderhub/internal/services/websearch"
)

// LicenseEnricher finds ESA/ECRA license numbers for electrical contractors
// via LLM web search. Rows are always marked checked so a fruitless lookup
// is not repeated every run.
type LicenseEnricher struct {
	Search *websearch.Client
	// now is injectable for tests.
	now func() time.Time
}

// NewLicenseEnricher constructs the licenses job.
func NewLicenseEnricher(search *websearch.Client) *LicenseEnricher {
	return &LicenseEnricher{Search: search, now: time.Now}
}

func (e *LicenseEnricher) Name() string { return "licenses" }

func (e *LicenseEnricher) Query() directory.BatchQuery {
	return directory.BatchQuery{
		MissingField: "esa_license_number",
		Category:     "electrician",
	}
}

func (e *LicenseEnricher) Enrich(ctx context.Context, provider directory.Provider) (Outcome, error) {
	// The directory query already filters by category, but a stale batch
	// window can still hand us other trades.
	switch strings.ToLower(strings.TrimSpace(provider.Category)) {
	case "electrician", "electrical":
	default:
		return Outcome{}, nil
	}

	report, err := e.Search.FindLicense(ctx, provider.BusinessName, provider.City)
	if err != nil {
		return Outcome{}, err
	}

	fields := map[string]any{
		"license_checked_at": e.timestamp(),
	}
	if report.Found() {
		fields["esa_license_number"] = report.Number
	}
	if report.Status != "" {
		fields["license_status"] = report.Status
	}
	if report.MasterElectrician != nil {
		fields["master_electrician"] = *report.MasterElectrician
	}

	return Outcome{Fields: fields, Found: report.Found()}, nil
}

func (e *LicenseEnricher) timestamp() string {
	now := e.now
	if now == nil {
		now = time.Now
	}
	return now().UTC().Format(time.RFC3339)
}
