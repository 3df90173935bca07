package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/matchmaker/internal/filtering"
	"github.com/spigell/matchmaker/internal/opt"
	"github.com/spigell/matchmaker/internal/profile"
)

func candidate(id, city string, age int) *profile.Profile {
	p := &profile.Profile{
		ID:            id,
		Name:          id,
		Gender:        profile.GenderMale,
		Age:           opt.Some(age),
		HeightCM:      opt.Some(175.26),
		MaritalStatus: opt.Some("never married"),
		Denomination:  opt.Some("catholic"),
		EducationRank: 4,
		Display:       profile.Display{City: city},
	}
	if city != "" {
		p.City = opt.Some(city)
	}
	return p
}

func query() *profile.Profile {
	return &profile.Profile{
		ID:            "F1",
		Gender:        profile.GenderFemale,
		Age:           opt.Some(27),
		HeightCM:      opt.Some(157.48),
		MaritalStatus: opt.Some("never married"),
		Denomination:  opt.Some("catholic"),
		EducationRank: 4,
		City:          opt.Some("pune"),
	}
}

func TestMatchOrdersSameCityFirst(t *testing.T) {
	t.Parallel()

	candidates := &profile.Profiles{Items: []*profile.Profile{
		candidate("M1", "mumbai", 30),
		candidate("M2", "pune", 29),
		candidate("M3", "pune", 31),
		candidate("M4", "", 30),
		candidate("M5", "pune", 45),
	}}

	engine := New(filtering.Defaults(), filtering.Strict(), nil)
	result := engine.Match(query(), candidates)

	assert.Equal(t, []string{"M2", "M3", "M1", "M4"}, result.Profiles().IDs())
	assert.True(t, result.Matches[0].SameCity)
	assert.False(t, result.Matches[3].SameCity, "an absent city is never the same city")
	assert.Equal(t, Stats{
		Candidates: 5,
		Accepted:   4,
		Rejected:   1,
		FailedBy:   map[string]int{filtering.AgeName: 1},
	}, result.Stats)
}

func TestMatchEmptyResult(t *testing.T) {
	t.Parallel()

	engine := New(filtering.Defaults(), filtering.Strict(), nil)

	result := engine.Match(query(), &profile.Profiles{})
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Len())
	assert.NotNil(t, result.Matches)

	result = engine.Match(query(), nil)
	assert.Equal(t, 0, result.Len())
}

func TestMatchTolerance(t *testing.T) {
	t.Parallel()

	candidates := &profile.Profiles{Items: []*profile.Profile{candidate("M5", "pune", 45)}}

	result := New(filtering.Defaults(), filtering.Tolerance(1), nil).Match(query(), candidates)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, 5, result.Matches[0].Met)
	assert.Equal(t, 6, result.Matches[0].Total)
}

func TestMatchLogsStep(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	engine := New(filtering.Defaults(), filtering.Strict(), zap.New(core))

	engine.Match(query(), &profile.Profiles{Items: []*profile.Profile{
		candidate("M1", "pune", 30),
		candidate("M2", "pune", 50),
	}})

	steps := observed.FilterMessage("match step").All()
	require.Len(t, steps, 1)
	ctx := steps[0].ContextMap()
	assert.Equal(t, "F1", ctx["query"])
	assert.Equal(t, "strict", ctx["mode"])
	assert.EqualValues(t, 2, ctx["candidates"])
	assert.EqualValues(t, 1, ctx["accepted"])
	assert.EqualValues(t, 1, ctx["rejected"])

	failed := observed.FilterMessage("failed conditions").All()
	require.Len(t, failed, 1)
	assert.EqualValues(t, 1, failed[0].ContextMap()[filtering.AgeName])
}

func TestReportByCity(t *testing.T) {
	t.Parallel()

	m1 := candidate("M1", "Pune", 30)
	m2 := candidate("M2", "", 30)
	result := &Result{Matches: []Match{
		{Profile: m1, Met: 6, Total: 6, SameCity: true},
		{Profile: m2, Met: 6, Total: 6},
	}}

	report := result.ReportByCity()
	require.Len(t, report, 2)
	assert.Equal(t, "M1", report["Pune"][0]["id"])
	assert.Equal(t, "30", report["Pune"][0]["age"])
	assert.Equal(t, "6/6", report["Pune"][0]["conditions met"])
	assert.Equal(t, "true", report["Pune"][0]["same city"])
	assert.Equal(t, "M2", report[UnknownCity][0]["id"])

	var empty *Result
	assert.Empty(t, empty.ReportByCity())
	assert.Equal(t, 0, empty.Profiles().Len())
}
