package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmacleod/salarytrends/internal/config"
	"github.com/kmacleod/salarytrends/internal/dataset"
	"github.com/kmacleod/salarytrends/internal/models"
)

func fixtureData() (*dataset.Master, *dataset.ForecastSet) {
	m := dataset.NewMaster()
	rec := models.NewYearRecord()
	rec.ENG["P1"] = 80436
	rec.ENG["M1"] = 127593
	m.SetYear(2023, rec)

	f := &dataset.ForecastSet{
		ENG: map[string]map[string]int{
			"P1": {"2024": 82000, "2025": 84000, "2026": 86000, "2027": 88000,
				"2028": 90000, "2029": 92000, "2030": 94000},
		},
	}
	return m, f
}

func TestReferenceMarkdown(t *testing.T) {
	master, forecasts := fixtureData()
	horizon := config.Horizon{Start: 2024, End: 2030}

	md := ReferenceMarkdown(master, forecasts, horizon)

	require.Contains(t, md, "# APEGA Salary Forecast Reference (2024-2030)")
	require.Contains(t, md, "## Engineering (ENG) - Professional Levels")
	require.Contains(t, md, "## Engineering (ENG) - Management Levels")

	// P1 row carries the 2023 base and every horizon year, comma-formatted.
	require.Contains(t, md, "| P1 | $80,436 | $82,000 |")
	require.Contains(t, md, "$94,000 |")

	// M1 has history but no forecast: base shown, horizon dashed.
	require.Contains(t, md, "| M1 | $127,593 | - |")

	// Growth summary only covers levels with both base and forecast.
	require.Contains(t, md, "| P1 | $80,436 | $94,000 | $13,564 | +16.9% |")
	require.NotContains(t, md, "| M1 | $127,593 | $")
}

func TestWriteReferenceTables(t *testing.T) {
	master, forecasts := fixtureData()
	cfg := config.Default()
	cfg.Paths.OutputDir = t.TempDir()

	path, err := WriteReferenceTables(master, forecasts, cfg)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, ReferenceFile))
	require.FileExists(t, path)
}
