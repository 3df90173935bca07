package matching

import (
	"fmt"
	"strconv"

	"github.com/spigell/matchmaker/internal/profile"
)

// UnknownCity is the report key for matches without a city.
const UnknownCity = "unknown"

// Result is the ordered list of compatible candidates for one query profile.
type Result struct {
	Query   *profile.Profile `json:"query"`
	Matches []Match          `json:"matches"`
	Stats   Stats            `json:"stats"`
}

// Match is one accepted candidate.
type Match struct {
	Profile  *profile.Profile `json:"profile"`
	Met      int              `json:"met"`
	Total    int              `json:"total"`
	SameCity bool             `json:"same_city"`
}

// Stats describes a single query run, like a filter step.
type Stats struct {
	Candidates int            `json:"candidates"`
	Accepted   int            `json:"accepted"`
	Rejected   int            `json:"rejected"`
	FailedBy   map[string]int `json:"failed_by,omitempty"`
}

func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Matches)
}

// Profiles returns the matched profiles in result order.
func (r *Result) Profiles() *profile.Profiles {
	profiles := &profile.Profiles{Items: make([]*profile.Profile, 0, r.Len())}
	if r == nil {
		return profiles
	}
	for _, m := range r.Matches {
		profiles.Items = append(profiles.Items, m.Profile)
	}
	return profiles
}

// ReportByCity groups matches by their displayed city, keeping result order inside each group.
func (r *Result) ReportByCity() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	if r == nil {
		return report
	}
	for _, m := range r.Matches {
		p := m.Profile
		key := p.Display.City
		if key == "" {
			key = UnknownCity
		}
		report[key] = append(report[key], map[string]string{
			"id":             p.ID,
			"name":           p.Name,
			"age":            p.Age.String(),
			"height":         p.Display.Height,
			"education":      p.Display.Education,
			"salary":         p.Display.Salary,
			"marital status": p.Display.MaritalStatus,
			"denomination":   p.Display.Denomination,
			"conditions met": fmt.Sprintf("%d/%d", m.Met, m.Total),
			"same city":      strconv.FormatBool(m.SameCity),
		})
	}
	return report
}
