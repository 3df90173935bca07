// Package normalize converts raw, heterogeneous profile attribute encodings into canonical values.
//
// Every function here is total: malformed input yields an absent value (or rank 0 for education),
// never an error and never a panic.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/unicode/norm"

	"github.com/spigell/matchmaker/internal/opt"
)

// Categorical canonicalizes a categorical value for equality comparison: Unicode NFC,
// surrounding whitespace trimmed, lower-cased. Blank input is absent.
func Categorical(raw any) opt.Value[string] {
	s := strings.ToLower(strings.TrimSpace(norm.NFC.String(valueAsString(raw))))
	if s == "" {
		return opt.None[string]()
	}
	return opt.Some(s)
}

// Text returns the trimmed display form of a passthrough attribute.
func Text(raw any) string {
	return strings.TrimSpace(valueAsString(raw))
}

func valueAsString(v any) string {
	if v == nil {
		return ""
	}

	switch typed := v.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// number converts Go numeric types and numeric text into a float64.
// Booleans are not numbers here even though cast would happily turn them into 0 or 1.
func number(v any) (float64, bool) {
	switch typed := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		s := strings.TrimSpace(typed)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
}
