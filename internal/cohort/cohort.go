// Package cohort splits normalized profiles by gender and resolves query profiles by id.
package cohort

import "github.com/spigell/matchmaker/internal/profile"

// Cohorts holds the two gender partitions in source order.
type Cohorts struct {
	Female *profile.Profiles
	Male   *profile.Profiles
	// Dropped counts records whose gender was not recognized.
	Dropped int
}

// Lookup is the outcome of resolving a query id.
type Lookup struct {
	Found   bool
	Profile *profile.Profile
	Cohort  profile.Gender
}

// NotFound is the lookup result for an id present in neither cohort.
var NotFound = Lookup{}

// Split partitions profiles into female and male cohorts, preserving order. Records with an
// unrecognized gender belong to neither cohort.
func Split(profiles *profile.Profiles) *Cohorts {
	cohorts := &Cohorts{
		Female: &profile.Profiles{},
		Male:   &profile.Profiles{},
	}
	if profiles == nil {
		return cohorts
	}

	for _, p := range profiles.Items {
		switch p.Gender {
		case profile.GenderFemale:
			cohorts.Female.Items = append(cohorts.Female.Items, p)
		case profile.GenderMale:
			cohorts.Male.Items = append(cohorts.Male.Items, p)
		default:
			cohorts.Dropped++
		}
	}

	return cohorts
}

// Lookup finds the first profile with the given id, searching the female cohort before the male one.
func (c *Cohorts) Lookup(id string) Lookup {
	if p := c.Female.FindByID(id); p != nil {
		return Lookup{Found: true, Profile: p, Cohort: profile.GenderFemale}
	}
	if p := c.Male.FindByID(id); p != nil {
		return Lookup{Found: true, Profile: p, Cohort: profile.GenderMale}
	}
	return NotFound
}

// Opposite returns the cohort profiles of gender g are matched against.
func (c *Cohorts) Opposite(g profile.Gender) *profile.Profiles {
	switch g.Opposite() {
	case profile.GenderFemale:
		return c.Female
	case profile.GenderMale:
		return c.Male
	default:
		return &profile.Profiles{}
	}
}

// All returns the female cohort followed by the male cohort.
func (c *Cohorts) All() []*profile.Profile {
	all := make([]*profile.Profile, 0, c.Len())
	all = append(all, c.Female.Items...)
	return append(all, c.Male.Items...)
}

// Len counts profiles in both cohorts.
func (c *Cohorts) Len() int {
	return c.Female.Len() + c.Male.Len()
}
