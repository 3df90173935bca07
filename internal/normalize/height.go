package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/spigell/matchmaker/internal/opt"
)

const (
	cmPerFoot = 30.48
	cmPerInch = 2.54
)

// HeightCM converts a raw height into centimeters. Rules are tried in order, first match wins:
//
//  1. "<F>ft <I>in - <N>": the feet/inches segment before the separator
//  2. anything containing "cm": the numeral before "cm"
//  3. "<F>ft <I>in": inches default to 0
//  4. numeric values (and numeric text) pass through as centimeters
//
// Everything else, including non-positive results, is absent.
func HeightCM(raw any) opt.Value[float64] {
	s, isText := raw.(string)
	if !isText {
		if f, ok := number(raw); ok {
			return positive(f)
		}
		return opt.None[float64]()
	}

	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return opt.None[float64]()
	}

	switch {
	case strings.Contains(s, "ft") && strings.Contains(s, "-"):
		segment, _, _ := strings.Cut(s, "-")
		return feetInches(segment)
	case strings.Contains(s, "cm"):
		value, _, _ := strings.Cut(s, "cm")
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return opt.None[float64]()
		}
		return positive(f)
	case strings.Contains(s, "ft"):
		return feetInches(s)
	}

	if f, ok := number(s); ok {
		return positive(f)
	}
	return opt.None[float64]()
}

func feetInches(s string) opt.Value[float64] {
	feetRaw, rest, _ := strings.Cut(s, "ft")

	feet, err := strconv.ParseFloat(strings.TrimSpace(feetRaw), 64)
	if err != nil {
		return opt.None[float64]()
	}

	inches := 0.0
	inchesRaw, _, _ := strings.Cut(rest, "in")
	if inchesRaw = strings.TrimSpace(inchesRaw); inchesRaw != "" {
		inches, err = strconv.ParseFloat(inchesRaw, 64)
		if err != nil {
			return opt.None[float64]()
		}
	}

	return positive(round2(feet*cmPerFoot + inches*cmPerInch))
}

func positive(f float64) opt.Value[float64] {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return opt.None[float64]()
	}
	return opt.Some(f)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
