package directory

import "strings"

// Provider is a business listing row. Only the identity fields are read by
// the enrichment jobs; enriched values are written back as opaque scalars and
// never read again by this codebase.
type Provider struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	City         string `json:"city"`
	Category     string `json:"category"`
}

// DisplayName returns a human-readable label for logs and reports.
func (p Provider) DisplayName() string {
	name := strings.TrimSpace(p.BusinessName)
	if name == "" {
		name = "Unknown"
	}
	city := strings.TrimSpace(p.City)
	if city == "" {
		return name
	}
	return name + " (" + city + ")"
}

// BatchQuery selects the page of providers an enrichment job should process.
type BatchQuery struct {
	// Select lists the columns to fetch. Defaults to the Provider fields.
	Select []string
	// MissingField restricts rows to those where the named column is null,
	// so re-runs skip rows that already carry data.
	MissingField string
	// Category optionally restricts rows to one provider category.
	Category string
	// BatchNumber is 1-based; offset is (BatchNumber-1)*BatchSize.
	BatchNumber int
	BatchSize   int
}

func (q BatchQuery) offset() int {
	batch := q.BatchNumber
	if batch < 1 {
		batch = 1
	}
	return (batch - 1) * q.BatchSize
}

func (q BatchQuery) selectList() string {
	if len(q.Select) == 0 {
		return "id,business_name,city,category"
	}
	return strings.Join(q.Select, ",")
}
