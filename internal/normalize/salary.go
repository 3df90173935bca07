package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/spigell/matchmaker/internal/opt"
)

const (
	salarySuffix   = "lpa"
	salaryNotGiven = "na"
)

// Salary converts a raw salary ("5 LPA", "5lpa", "12.5") into lakhs per annum.
// "NA" in any case is absent, as is anything that does not parse to a finite, non-negative number.
func Salary(raw any) opt.Value[float64] {
	s, isText := raw.(string)
	if !isText {
		if f, ok := number(raw); ok && f >= 0 {
			return opt.Some(f)
		}
		return opt.None[float64]()
	}

	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	if s == "" || s == salaryNotGiven {
		return opt.None[float64]()
	}

	s = strings.TrimSuffix(s, salarySuffix)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return opt.None[float64]()
	}
	return opt.Some(f)
}
