package filtering

import (
	"github.com/spigell/matchmaker/internal/opt"
	"github.com/spigell/matchmaker/internal/profile"
)

// Condition names, also used in configuration to disable a condition.
const (
	HeightName        = "height"
	MaritalStatusName = "marital_status"
	AgeName           = "age"
	EducationName     = "education"
	DenominationName  = "denomination"
	SalaryName        = "salary"
)

const (
	// A male query accepts candidates up to this many years younger, never older.
	maxYoungerYears = 5
	// A female query accepts candidates between these many years older.
	minOlderYears = 1
	maxOlderYears = 5
)

type condition struct {
	name     string
	rule     string
	check    func(q, c *profile.Profile) bool
	disabled bool
	reason   string
}

func (f *condition) Name() string { return f.name }

func (f *condition) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *condition) IsEnabled() bool { return !f.disabled }

func (f *condition) Check(q, c *profile.Profile) bool { return f.check(q, c) }

func (f *condition) Status() Status {
	return Status{
		Name:    f.name,
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"rule": f.rule},
	}
}

// Defaults returns the canonical rule set, freshly allocated so callers may disable conditions.
func Defaults() []Condition {
	return []Condition{
		NewHeight(),
		NewMaritalStatus(),
		NewAge(),
		NewEducation(),
		NewDenomination(),
		NewSalary(),
	}
}

// NewHeight creates the height ordering condition: the man is taller. Absent height on either
// side satisfies it.
func NewHeight() Condition {
	return &condition{
		name: HeightName,
		rule: "male query: candidate shorter; female query: candidate taller; absent on either side passes",
		check: func(q, c *profile.Profile) bool {
			qh, qok := q.HeightCM.Get()
			ch, cok := c.HeightCM.Get()
			if !qok || !cok {
				return true
			}
			return ordered(q.Gender, ch, qh)
		},
	}
}

// NewMaritalStatus creates the marital status equality condition.
func NewMaritalStatus() Condition {
	return &condition{
		name:  MaritalStatusName,
		rule:  "equal; absent on the query side passes",
		check: func(q, c *profile.Profile) bool { return sameWhenGiven(q.MaritalStatus, c.MaritalStatus) },
	}
}

// NewAge creates the directional age window condition. Absent age on either side fails it.
func NewAge() Condition {
	return &condition{
		name: AgeName,
		rule: "male query: candidate 0-5 years younger; female query: candidate 1-5 years older; absent fails",
		check: func(q, c *profile.Profile) bool {
			qa, qok := q.Age.Get()
			ca, cok := c.Age.Get()
			if !qok || !cok {
				return false
			}
			switch q.Gender {
			case profile.GenderMale:
				return ca >= qa-maxYoungerYears && ca <= qa
			case profile.GenderFemale:
				return ca >= qa+minOlderYears && ca <= qa+maxOlderYears
			default:
				return false
			}
		},
	}
}

// NewEducation creates the education ordering condition.
func NewEducation() Condition {
	return &condition{
		name: EducationName,
		rule: "male query: candidate rank <= query rank; female query: candidate rank >= query rank",
		check: func(q, c *profile.Profile) bool {
			return orderedOrEqual(q.Gender, float64(c.EducationRank), float64(q.EducationRank))
		},
	}
}

// NewDenomination creates the denomination equality condition.
func NewDenomination() Condition {
	return &condition{
		name:  DenominationName,
		rule:  "equal; absent on the query side passes",
		check: func(q, c *profile.Profile) bool { return sameWhenGiven(q.Denomination, c.Denomination) },
	}
}

// NewSalary creates the salary ordering condition. Absent salary on either side satisfies it.
func NewSalary() Condition {
	return &condition{
		name: SalaryName,
		rule: "male query: candidate salary <= query salary; female query: candidate salary >= query salary; absent on either side passes",
		check: func(q, c *profile.Profile) bool {
			qs, qok := q.Salary.Get()
			cs, cok := c.Salary.Get()
			if !qok || !cok {
				return true
			}
			return orderedOrEqual(q.Gender, cs, qs)
		},
	}
}

// ordered compares a candidate value against the query value strictly: lower for a male query,
// higher for a female one.
func ordered(g profile.Gender, candidate, query float64) bool {
	switch g {
	case profile.GenderMale:
		return candidate < query
	case profile.GenderFemale:
		return candidate > query
	default:
		return false
	}
}

func orderedOrEqual(g profile.Gender, candidate, query float64) bool {
	return (candidate == query && g != profile.GenderUnknown) || ordered(g, candidate, query)
}

// sameWhenGiven is satisfied when the query has no value, and otherwise requires the candidate to
// carry the same value.
func sameWhenGiven(query, candidate opt.Value[string]) bool {
	qv, ok := query.Get()
	if !ok {
		return true
	}
	cv, ok := candidate.Get()
	return ok && cv == qv
}
