package websearch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"finderhub/internal/services"
)

// licensePattern matches ECRA/ESA license numbers: the prefix followed by
// seven digits, with optional whitespace between.
var licensePattern = regexp.MustCompile(`ECRA/ESA\s*(\d{7})`)

// LicenseStatus values reported by the lookup.
const (
	LicenseStatusActive   = "active"
	LicenseStatusInactive = "inactive"
	LicenseStatusUnknown  = "unknown"
)

// LicenseReport is the outcome of an ESA/ECRA license search. Zero values
// mean the corresponding fact could not be established.
type LicenseReport struct {
	Number            string `json:"esa_license_number"`
	Status            string `json:"license_status"`
	MasterElectrician *bool  `json:"master_electrician"`
}

// Found reports whether a license number was located.
func (r LicenseReport) Found() bool {
	return strings.TrimSpace(r.Number) != ""
}

const licensePromptFormat = "Find the ESA/ECRA license number for %s in %s, Ontario. " +
	"The license number format is 'ECRA/ESA' followed by 7 digits (e.g. ECRA/ESA 7010353). " +
	"Also determine if they are currently licensed (active/valid) or not. " +
	"Return ONLY a JSON object: {\"esa_license_number\": \"ECRA/ESA XXXXXXX\" or null, " +
	"\"license_status\": \"active\" or \"inactive\" or \"unknown\" or null, " +
	"\"master_electrician\": true or false or null}. " +
	"Use null if you cannot find the information."

// FindLicense looks up the ESA/ECRA license for an Ontario electrical
// contractor. A reply that carries a license number in prose but not in
// parseable JSON still yields a report via the regex fallback; a reply with
// neither returns an empty report, not an error.
func (c *Client) FindLicense(ctx context.Context, businessName, city string) (LicenseReport, error) {
	businessName = strings.TrimSpace(businessName)
	city = strings.TrimSpace(city)
	if businessName == "" {
		return LicenseReport{}, services.Wrap(services.ErrValidation, "licenses", "find license", "business name is required", nil)
	}

	text, err := c.search(ctx, fmt.Sprintf(licensePromptFormat, businessName, city))
	if err != nil {
		return LicenseReport{}, services.Wrap(services.ErrExternalService, "licenses", "find license", businessName, err)
	}

	var report LicenseReport
	if decodeErr := DecodeReportJSON(text, &report); decodeErr != nil {
		if match := licensePattern.FindStringSubmatch(text); match != nil {
			return LicenseReport{
				Number: "ECRA/ESA " + match[1],
				Status: LicenseStatusUnknown,
			}, nil
		}
		return LicenseReport{}, nil
	}

	report.Number = strings.TrimSpace(report.Number)
	report.Status = strings.ToLower(strings.TrimSpace(report.Status))
	return report, nil
}
