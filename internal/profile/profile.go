package profile

import (
	"strings"
	"time"

	"github.com/spigell/matchmaker/internal/normalize"
	"github.com/spigell/matchmaker/internal/opt"
)

type Gender string

const (
	GenderUnknown Gender = ""
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
)

// ParseGender recognizes "female" and "male" in any case and surrounding whitespace.
func ParseGender(raw any) Gender {
	value, _ := normalize.Categorical(raw).Get()
	switch Gender(value) {
	case GenderFemale:
		return GenderFemale
	case GenderMale:
		return GenderMale
	default:
		return GenderUnknown
	}
}

// Opposite returns the cohort a profile of gender g is matched against.
func (g Gender) Opposite() Gender {
	switch g {
	case GenderFemale:
		return GenderMale
	case GenderMale:
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// Profile is a normalized record. Derived values are computed by Normalize from Raw and never
// updated in place.
type Profile struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Gender        Gender               `json:"gender"`
	BirthDate     opt.Value[time.Time] `json:"birth_date"`
	Age           opt.Value[int]       `json:"age"`
	HeightCM      opt.Value[float64]   `json:"height_cm"`
	MaritalStatus opt.Value[string]    `json:"marital_status"`
	Denomination  opt.Value[string]    `json:"denomination"`
	EducationRank int                  `json:"education_rank"`
	Salary        opt.Value[float64]   `json:"salary"`
	City          opt.Value[string]    `json:"city"`
	Display       Display              `json:"display"`
	Raw           Raw                  `json:"-"`
}

// Display carries trimmed source text for presentation. It is never compared.
type Display struct {
	MaritalStatus string `json:"marital_status,omitempty"`
	Denomination  string `json:"denomination,omitempty"`
	Height        string `json:"height,omitempty"`
	Education     string `json:"education,omitempty"`
	Salary        string `json:"salary,omitempty"`
	City          string `json:"city,omitempty"`
	Occupation    string `json:"occupation,omitempty"`
	Caste         string `json:"caste,omitempty"`
	Joined        string `json:"joined,omitempty"`
	ExpireDate    string `json:"expire_date,omitempty"`
	Mobile        string `json:"mobile,omitempty"`
}

// Normalize builds the canonical profile for raw. It is a pure function of raw and today;
// values that degrade to absent are reported as diagnostics.
func Normalize(raw Raw, today time.Time) (*Profile, []Diagnostic) {
	p := &Profile{
		ID:            normalize.Text(raw.ID),
		Name:          normalize.Text(raw.Name),
		Gender:        ParseGender(raw.Gender),
		BirthDate:     normalize.BirthDate(raw.BirthDate),
		HeightCM:      normalize.HeightCM(raw.Height),
		MaritalStatus: normalize.Categorical(raw.MaritalStatus),
		Denomination:  normalize.Categorical(raw.Denomination),
		EducationRank: normalize.EducationRank(raw.Education),
		Salary:        normalize.Salary(raw.Salary),
		City:          normalize.Categorical(raw.City),
		Display: Display{
			MaritalStatus: normalize.Text(raw.MaritalStatus),
			Denomination:  normalize.Text(raw.Denomination),
			Height:        normalize.Text(raw.Height),
			Education:     normalize.Text(raw.Education),
			Salary:        normalize.Text(raw.Salary),
			City:          normalize.Text(raw.City),
			Occupation:    normalize.Text(raw.Occupation),
			Caste:         normalize.Text(raw.Caste),
			Joined:        normalize.Text(raw.Joined),
			ExpireDate:    normalize.Text(raw.ExpireDate),
			Mobile:        normalize.Text(raw.Mobile),
		},
		Raw: raw,
	}
	p.Age = normalize.Age(p.BirthDate, raw.Age, today)

	return p, diagnose(p)
}

// NormalizeAll normalizes every raw record in order.
func NormalizeAll(raws []Raw, today time.Time) (*Profiles, Diagnostics) {
	profiles := &Profiles{Items: make([]*Profile, 0, len(raws))}
	var diagnostics Diagnostics

	for _, raw := range raws {
		p, diag := Normalize(raw, today)
		profiles.Items = append(profiles.Items, p)
		diagnostics = append(diagnostics, diag...)
	}

	return profiles, diagnostics
}

func diagnose(p *Profile) []Diagnostic {
	var diagnostics []Diagnostic

	report := func(field string, raw any, reason string) {
		diagnostics = append(diagnostics, Diagnostic{
			RecordID: p.ID,
			Field:    field,
			Raw:      normalize.Text(raw),
			Reason:   reason,
		})
	}

	if p.Gender == GenderUnknown {
		report(FieldGender, p.Raw.Gender, ReasonUnrecognized)
	}
	if !isBlank(p.Raw.BirthDate) && !p.BirthDate.IsPresent() {
		report(FieldBirthDate, p.Raw.BirthDate, ReasonUnparseable)
	}
	if !p.Age.IsPresent() {
		if isBlank(p.Raw.Age) && isBlank(p.Raw.BirthDate) {
			report(FieldAge, p.Raw.Age, ReasonMissing)
		} else {
			report(FieldAge, p.Raw.Age, ReasonUnparseable)
		}
	}
	if !isBlank(p.Raw.Height) && !p.HeightCM.IsPresent() {
		report(FieldHeight, p.Raw.Height, ReasonUnparseable)
	}
	if !isBlank(p.Raw.Salary) && !p.Salary.IsPresent() && !strings.EqualFold(normalize.Text(p.Raw.Salary), "na") {
		report(FieldSalary, p.Raw.Salary, ReasonUnparseable)
	}
	if !isBlank(p.Raw.Education) && p.EducationRank == normalize.UnknownEducation {
		report(FieldEducation, p.Raw.Education, ReasonUnrecognized)
	}

	return diagnostics
}

func isBlank(v any) bool {
	return normalize.Text(v) == ""
}
