package source

import (
	"fmt"
	"strings"

	"github.com/spigell/matchmaker/internal/profile"
)

// Schema maps canonical profile fields to the headers used by a record source.
type Schema map[string]string

// requiredFields must be present in every source. Either age or birth date is also required.
var requiredFields = []string{
	profile.FieldID,
	profile.FieldName,
	profile.FieldGender,
	profile.FieldMaritalStatus,
	profile.FieldHeight,
	profile.FieldEducation,
	profile.FieldSalary,
	profile.FieldDenomination,
	profile.FieldCity,
}

// DefaultSchema returns the headers of the registration spreadsheet.
func DefaultSchema() Schema {
	return Schema{
		profile.FieldID:            "JIOID",
		profile.FieldName:          "Name",
		profile.FieldGender:        "gender",
		profile.FieldBirthDate:     "Date Of Birth",
		profile.FieldAge:           "Age",
		profile.FieldHeight:        "Hight/FT",
		profile.FieldMaritalStatus: "Marital Status",
		profile.FieldDenomination:  "Denomination",
		profile.FieldEducation:     "Education_Standardized",
		profile.FieldSalary:        "Salary-PA",
		profile.FieldCity:          "City",
		profile.FieldOccupation:    "Occupation",
		profile.FieldCaste:         "Cast",
		profile.FieldJoined:        "joined",
		profile.FieldExpireDate:    "expire_date",
		profile.FieldMobile:        "Mobile",
	}
}

// With returns a copy of the schema with the given overrides applied. Unknown fields are rejected.
func (s Schema) With(overrides map[string]string) (Schema, error) {
	known := make(map[string]struct{})
	for _, field := range profile.Fields() {
		known[field] = struct{}{}
	}

	result := make(Schema, len(s)+len(overrides))
	for field, header := range s {
		result[field] = header
	}

	for field, header := range overrides {
		field = strings.ToLower(strings.TrimSpace(field))
		if _, ok := known[field]; !ok {
			return nil, fmt.Errorf("unknown profile field %q in column mapping", field)
		}
		header = strings.TrimSpace(header)
		if header == "" {
			return nil, fmt.Errorf("empty column name for profile field %q", field)
		}
		result[field] = header
	}

	return result, nil
}

// Header returns the source header for a canonical field, defaulting to the field name itself.
func (s Schema) Header(field string) string {
	if header, ok := s[field]; ok {
		return header
	}
	return field
}

// Missing returns every required column absent from headers, in canonical field order.
// Age and birth date are both reported when neither is present.
func (s Schema) Missing(headers []string) []string {
	var missing []string
	for _, field := range requiredFields {
		if indexOf(headers, s.Header(field)) < 0 {
			missing = append(missing, s.Header(field))
		}
	}

	age := indexOf(headers, s.Header(profile.FieldAge)) >= 0
	birth := indexOf(headers, s.Header(profile.FieldBirthDate)) >= 0
	if !age && !birth {
		missing = append(missing, s.Header(profile.FieldAge), s.Header(profile.FieldBirthDate))
	}

	return missing
}

// indexOf finds a header ignoring case and surrounding whitespace.
func indexOf(headers []string, name string) int {
	name = strings.TrimSpace(name)
	for idx, header := range headers {
		if strings.EqualFold(strings.TrimSpace(header), name) {
			return idx
		}
	}
	return -1
}

// MissingColumnsError is returned when a source lacks required columns. Nothing is normalized
// once it is returned.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns in the source: %s", strings.Join(e.Columns, ", "))
}
