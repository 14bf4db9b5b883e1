package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newLicenseServer(t *testing.T, reply string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		textReply(t, w, reply)
	}))
	t.Cleanup(server.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
}

func TestFindLicenseParsesJSON(t *testing.T) {
	client := newLicenseServer(t, `{"esa_license_number": "ECRA/ESA 7010353", "license_status": "Active", "master_electrician": true}`)

	report, err := client.FindLicense(context.Background(), "Bright Spark Electric", "Ottawa")
	if err != nil {
		t.Fatalf("FindLicense: %v", err)
	}
	if report.Number != "ECRA/ESA 7010353" {
		t.Fatalf("number = %q", report.Number)
	}
	if report.Status != LicenseStatusActive {
		t.Fatalf("status = %q", report.Status)
	}
	if report.MasterElectrician == nil || !*report.MasterElectrician {
		t.Fatalf("master electrician = %v", report.MasterElectrician)
	}
	if !report.Found() {
		t.Fatal("report should count as found")
	}
}

func TestFindLicenseCodeFencedJSON(t *testing.T) {
	client := newLicenseServer(t, "```json\n{\"esa_license_number\": \"ECRA/ESA 7001234\", \"license_status\": \"inactive\", \"master_electrician\": null}\n```")

	report, err := client.FindLicense(context.Background(), "Acme Electric", "Toronto")
	if err != nil {
		t.Fatalf("FindLicense: %v", err)
	}
	if report.Number != "ECRA/ESA 7001234" || report.Status != LicenseStatusInactive {
		t.Fatalf("report = %+v", report)
	}
}

func TestFindLicenseRegexFallback(t *testing.T) {
	client := newLicenseServer(t, "I found that this contractor holds license ECRA/ESA 7012345 according to the registry.")

	report, err := client.FindLicense(context.Background(), "Acme Electric", "Toronto")
	if err != nil {
		t.Fatalf("FindLicense: %v", err)
	}
	if report.Number != "ECRA/ESA 7012345" {
		t.Fatalf("number = %q", report.Number)
	}
	if report.Status != LicenseStatusUnknown {
		t.Fatalf("status = %q, want unknown for regex fallback", report.Status)
	}
}

func TestFindLicenseNoDataYieldsEmptyReport(t *testing.T) {
	client := newLicenseServer(t, "I could not find any licensing information for this business.")

	report, err := client.FindLicense(context.Background(), "Mystery Electric", "Nowhere")
	if err != nil {
		t.Fatalf("FindLicense: %v", err)
	}
	if report.Found() {
		t.Fatalf("report = %+v, want empty", report)
	}
}

func TestFindLicenseRequiresBusinessName(t *testing.T) {
	client := newLicenseServer(t, "{}")
	if _, err := client.FindLicense(context.Background(), "  ", "Ottawa"); err == nil {
		t.Fatal("expected validation error")
	}
}
