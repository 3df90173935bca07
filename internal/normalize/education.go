package normalize

import "strings"

// UnknownEducation is the rank of labels missing from the hierarchy. It is strictly lower than
// every known label.
const UnknownEducation = 0

// hierarchy is ordered from lowest to highest; rank is index+1.
var hierarchy = []string{
	"secondary education",
	"diploma",
	"bachelors",
	"masters",
	"law",
	"doctorate",
	"phd",
	"doctor",
}

var educationRanks = func() map[string]int {
	ranks := make(map[string]int, len(hierarchy))
	for idx, label := range hierarchy {
		ranks[label] = idx + 1
	}
	return ranks
}()

// EducationRank maps an education label to its ordinal rank. Lookup ignores case and
// surrounding or repeated whitespace. Unknown labels and non-text input rank UnknownEducation.
func EducationRank(raw any) int {
	s, ok := raw.(string)
	if !ok {
		return UnknownEducation
	}

	key := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if rank, ok := educationRanks[key]; ok {
		return rank
	}
	return UnknownEducation
}

// Hierarchy returns the education labels from lowest to highest rank.
func Hierarchy() []string {
	return append([]string(nil), hierarchy...)
}
