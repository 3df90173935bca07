package profile

import "sort"

const (
	ReasonMissing      = "missing"
	ReasonUnparseable  = "unparseable"
	ReasonUnrecognized = "unrecognized"
)

// Diagnostic records a raw value that could not be normalized and was treated as absent.
type Diagnostic struct {
	RecordID string `json:"record_id"`
	Field    string `json:"field"`
	Raw      string `json:"raw,omitempty"`
	Reason   string `json:"reason"`
}

type Diagnostics []Diagnostic

// ByField counts diagnostics per canonical field.
func (d Diagnostics) ByField() map[string]int {
	counts := make(map[string]int)
	for _, diag := range d {
		counts[diag.Field]++
	}
	return counts
}

// Fields returns the fields that have at least one diagnostic, sorted.
func (d Diagnostics) Fields() []string {
	counts := d.ByField()
	fields := make([]string, 0, len(counts))
	for field := range counts {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ForRecord returns the diagnostics of a single record.
func (d Diagnostics) ForRecord(id string) Diagnostics {
	var result Diagnostics
	for _, diag := range d {
		if diag.RecordID == id {
			result = append(result, diag)
		}
	}
	return result
}
