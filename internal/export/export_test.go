package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/matchmaker/internal/matching"
	"github.com/spigell/matchmaker/internal/opt"
	"github.com/spigell/matchmaker/internal/profile"
)

func TestSafeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{input: "Anu K. (Pune)", expect: "Anu_K_Pune"},
		{input: "  Ravi   Kumar ", expect: "Ravi_Kumar"},
		{input: "snake_case", expect: "snake_case"},
		{input: "Zoë", expect: "Zoë"},
		{input: "../../etc", expect: "etc"},
		{input: "?!", expect: "profile"},
		{input: "", expect: "profile"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := SafeName(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, expect := range map[string]Format{"": FormatCSV, "CSV": FormatCSV, " xlsx ": FormatXLSX, "json": FormatJSON} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, expect, got)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func result() *matching.Result {
	asha := &profile.Profile{ID: "F1", Name: "Anu K. (Pune)"}
	ravi := &profile.Profile{
		ID:       "M1",
		Name:     "Ravi",
		Age:      opt.Some(30),
		HeightCM: opt.Some(175.26),
		Display: profile.Display{
			Denomination:  "Catholic",
			MaritalStatus: "Never Married",
			City:          "Pune",
			Education:     "Masters",
			Salary:        "8 LPA",
			Mobile:        "98765",
		},
	}
	kiran := &profile.Profile{ID: "M2", Name: "Kiran"}

	return &matching.Result{
		Query: asha,
		Matches: []matching.Match{
			{Profile: ravi, Met: 6, Total: 6, SameCity: true},
			{Profile: kiran, Met: 6, Total: 6},
		},
	}
}

func TestProject(t *testing.T) {
	t.Parallel()

	rows := Project(result())
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{
		"M1", "Ravi", "Catholic", "Never Married", "175.26", "30", "Pune", "Masters", "8 LPA", "", "", "", "98765",
	}, rows[1])
	assert.Equal(t, []string{"M2", "Kiran", "", "", "", "", "", "", "", "", "", "", ""}, rows[2])

	assert.Equal(t, [][]string{Columns}, Project(nil))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")

	t.Run("csv", func(t *testing.T) {
		path, err := Write(result(), dir, FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, "matches_Anu_K_Pune.csv", filepath.Base(path))

		file, err := os.Open(path)
		require.NoError(t, err)
		defer file.Close()

		rows, err := csv.NewReader(file).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, Project(result()), rows)
	})

	t.Run("xlsx", func(t *testing.T) {
		path, err := Write(result(), dir, FormatXLSX)
		require.NoError(t, err)

		file, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer file.Close()

		rows, err := file.GetRows(sheetName)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, Columns, rows[0])
		assert.Equal(t, "175.26", rows[1][4])
	})

	t.Run("json", func(t *testing.T) {
		path, err := Write(result(), dir, FormatJSON)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded struct {
			Matches []struct {
				Profile struct {
					ID  string `json:"id"`
					Age *int   `json:"age"`
				} `json:"profile"`
				SameCity bool `json:"same_city"`
			} `json:"matches"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded.Matches, 2)
		assert.True(t, decoded.Matches[0].SameCity)
		assert.Nil(t, decoded.Matches[1].Profile.Age, "absent values are null")
	})
}

func TestWriteUnwritableDestination(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Write(result(), blocker, FormatCSV)
	assert.ErrorContains(t, err, "create directory")

	_, err = Write(result(), t.TempDir(), Format("pdf"))
	assert.Error(t, err)
}

func TestDumpToTmpFile(t *testing.T) {
	t.Parallel()

	name, err := DumpToTmpFile([]*matching.Result{result()})
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"M1"`)
}
