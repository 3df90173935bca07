package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/spigell/matchmaker/internal/opt"
)

// Day-first layouts so that 03/04/1995 reads as the 3rd of April. Two-digit years are not
// accepted: the century is ambiguous for birth dates.
var birthDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"January 2, 2006",
}

// BirthDate parses a raw birth date. time.Time values pass through; text is tried against
// day-first layouts and then cast's generic date parsing. Anything else is absent.
func BirthDate(raw any) opt.Value[time.Time] {
	switch typed := raw.(type) {
	case time.Time:
		if typed.IsZero() {
			return opt.None[time.Time]()
		}
		return opt.Some(dateOnly(typed))
	case *time.Time:
		if typed == nil {
			return opt.None[time.Time]()
		}
		return BirthDate(*typed)
	case string:
		s := strings.TrimSpace(typed)
		if s == "" {
			return opt.None[time.Time]()
		}
		for _, layout := range birthDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return opt.Some(dateOnly(t))
			}
		}
		t, err := cast.ToTimeE(s)
		if err != nil || t.IsZero() {
			return opt.None[time.Time]()
		}
		return opt.Some(dateOnly(t))
	default:
		return opt.None[time.Time]()
	}
}

// AgeYears returns the number of full years between birth and today.
func AgeYears(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}

// Age derives the age in years. A usable birth date wins; otherwise the raw age is taken
// verbatim (truncated to whole years). A birth date after today is not usable.
func Age(birth opt.Value[time.Time], rawAge any, today time.Time) opt.Value[int] {
	if b, ok := birth.Get(); ok && !b.After(dateOnly(today)) {
		return opt.Some(AgeYears(b, today))
	}

	f, ok := number(rawAge)
	if !ok || f < 0 {
		return opt.None[int]()
	}
	return opt.Some(int(math.Floor(f)))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
