package normalize

import (
	"math"
	"testing"
	"time"
)

func TestHeightCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		want    float64
		present bool
	}{
		{name: "feet and inches", input: "5ft 5in", want: 165.1, present: true},
		{name: "centimeters", input: "165cm", want: 165, present: true},
		{name: "centimeters with space and decimals", input: " 170.5 CM ", want: 170.5, present: true},
		{name: "mixed notation takes first segment", input: "5ft 5in - 165", want: 165.1, present: true},
		{name: "missing inches defaults to zero", input: "5ft", want: 152.4, present: true},
		{name: "upper case units", input: "6FT 0IN", want: 182.88, present: true},
		{name: "float passthrough", input: 172.0, want: 172, present: true},
		{name: "int passthrough", input: 158, want: 158, present: true},
		{name: "numeric text passthrough", input: "163", want: 163, present: true},
		{name: "non numeric feet", input: "fivft 5in", present: false},
		{name: "non numeric inches", input: "5ft fivein", present: false},
		{name: "non numeric centimeters", input: "tall cm", present: false},
		{name: "free text", input: "average", present: false},
		{name: "empty", input: "   ", present: false},
		{name: "nil", input: nil, present: false},
		{name: "bool", input: true, present: false},
		{name: "negative", input: -160.0, present: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := HeightCM(tt.input).Get()
			if ok != tt.present {
				t.Fatalf("expected present=%v, got %v (value %v)", tt.present, ok, got)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		want    float64
		present bool
	}{
		{name: "suffix with space", input: "5 LPA", want: 5, present: true},
		{name: "suffix without space", input: "5LPA", want: 5, present: true},
		{name: "lower case suffix", input: " 7.5 lpa ", want: 7.5, present: true},
		{name: "bare decimal", input: "12.25", want: 12.25, present: true},
		{name: "numeric passthrough", input: 9.0, want: 9, present: true},
		{name: "not available", input: "NA", present: false},
		{name: "not available lower case", input: " na ", present: false},
		{name: "garbage", input: "abc", present: false},
		{name: "suffix only", input: "LPA", present: false},
		{name: "nil", input: nil, present: false},
		{name: "not a number", input: "nan", present: false},
		{name: "infinity with suffix", input: "inf lpa", present: false},
		{name: "infinity spelled out", input: "Infinity", present: false},
		{name: "negative infinity", input: "-Inf", present: false},
		{name: "numeric NaN", input: math.NaN(), present: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Salary(tt.input).Get()
			if ok != tt.present {
				t.Fatalf("expected present=%v, got %v (value %v)", tt.present, ok, got)
			}
			if ok && got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAgeYearsAnniversaryBoundary(t *testing.T) {
	t.Parallel()

	birth := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	if got := AgeYears(birth, time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)); got != 23 {
		t.Fatalf("expected 23 the day before the anniversary, got %d", got)
	}
	if got := AgeYears(birth, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)); got != 24 {
		t.Fatalf("expected 24 on the anniversary, got %d", got)
	}
}

func TestAge(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		birth   any
		rawAge  any
		want    int
		present bool
	}{
		{name: "birth date wins over raw age", birth: "2000-06-15", rawAge: "40", want: 24, present: true},
		{name: "day first birth date", birth: "16/06/2000", want: 23, present: true},
		{name: "unparseable birth date falls back to raw age", birth: "someday", rawAge: "31", want: 31, present: true},
		{name: "raw age with decimals", rawAge: 27.9, want: 27, present: true},
		{name: "future birth date falls back", birth: "2030-01-01", rawAge: 22, want: 22, present: true},
		{name: "age zero is present", rawAge: "0", want: 0, present: true},
		{name: "nothing", present: false},
		{name: "garbage raw age", rawAge: "twenty", present: false},
		{name: "negative raw age", rawAge: -3, present: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Age(BirthDate(tt.birth), tt.rawAge, today).Get()
			if ok != tt.present {
				t.Fatalf("expected present=%v, got %v (value %d)", tt.present, ok, got)
			}
			if ok && got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestBirthDate(t *testing.T) {
	t.Parallel()

	want := time.Date(1995, time.April, 3, 0, 0, 0, 0, time.UTC)

	for _, input := range []any{"1995-04-03", "03/04/1995", "3/4/1995", "03-04-1995", "03.04.1995", "3-Apr-1995", want.Add(5 * time.Hour)} {
		got, ok := BirthDate(input).Get()
		if !ok {
			t.Fatalf("expected %v to parse", input)
		}
		if !got.Equal(want) {
			t.Fatalf("expected %v for %v, got %v", want, input, got)
		}
	}

	for _, input := range []any{"", "not a date", "04-03-95", 36620.0, nil, time.Time{}} {
		if BirthDate(input).IsPresent() {
			t.Fatalf("expected %v to be absent", input)
		}
	}
}

func TestEducationRank(t *testing.T) {
	t.Parallel()

	previous := UnknownEducation
	for _, label := range Hierarchy() {
		rank := EducationRank(label)
		if rank <= previous {
			t.Fatalf("expected %q to rank above %d, got %d", label, previous, rank)
		}
		previous = rank
	}

	if got := EducationRank("  Masters "); got != EducationRank("masters") {
		t.Fatalf("expected case and whitespace insensitive lookup, got %d", got)
	}
	if got := EducationRank("Secondary   Education"); got != EducationRank("secondary education") {
		t.Fatalf("expected repeated whitespace to be ignored, got %d", got)
	}

	for _, input := range []any{"astronaut school", "", 3, nil} {
		if got := EducationRank(input); got != UnknownEducation {
			t.Fatalf("expected %v to rank %d, got %d", input, UnknownEducation, got)
		}
	}

	if EducationRank("secondary education") <= UnknownEducation {
		t.Fatalf("expected unknown labels to rank strictly lowest")
	}
}

func TestCategorical(t *testing.T) {
	t.Parallel()

	got, ok := Categorical("  Never Married ").Get()
	if !ok || got != "never married" {
		t.Fatalf("expected \"never married\", got %q (present=%v)", got, ok)
	}

	// Decomposed and composed forms compare equal.
	decomposed, _ := Categorical("Cafe\u0301").Get()
	composed, _ := Categorical("Caf\u00e9").Get()
	if decomposed != composed {
		t.Fatalf("expected %q and %q to be equal", decomposed, composed)
	}

	if Categorical("   ").IsPresent() || Categorical(nil).IsPresent() {
		t.Fatalf("expected blank input to be absent")
	}

	if Text("  +91 98765 ") != "+91 98765" {
		t.Fatalf("unexpected text: %q", Text("  +91 98765 "))
	}
}
