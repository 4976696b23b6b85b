package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmacleod/salarytrends/internal/models"
)

func sampleMaster() *Master {
	m := NewMaster()

	rec2020 := models.NewYearRecord()
	rec2020.ENG["P1"] = 72000
	rec2020.ENG["M1"] = 115000
	rec2020.GEO["P1"] = 70000
	orgs := 169
	rec2020.OrgCount = &orgs
	rec2020.Gender = &models.GenderSplit{EngineersPct: 92, GeoscientistsPct: 8}
	m.SetYear(2020, rec2020)

	rec2023 := models.NewYearRecord()
	rec2023.ENG["P1"] = 80436
	rec2023.ENG["M1"] = 127593
	rec2023.WorkArrangements = &models.WorkArrangements{RemoteOrHybridPct: 28}
	m.SetYear(2023, rec2023)

	return m
}

func TestMasterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := sampleMaster()

	require.NoError(t, m.Save(dir))

	loaded, err := LoadMaster(dir)
	require.NoError(t, err)
	require.Equal(t, m, loaded)
}

func TestSetYearKeepsMetadataSorted(t *testing.T) {
	m := NewMaster()
	m.SetYear(2023, models.NewYearRecord())
	m.SetYear(2020, models.NewYearRecord())
	m.SetYear(2023, models.NewYearRecord()) // replace, no duplicate

	require.Equal(t, []int{2020, 2023}, m.Metadata.Years)
	require.Equal(t, []int{2020, 2023}, m.Years())
}

func TestHistoricalSeries(t *testing.T) {
	m := sampleMaster()

	require.Equal(t, models.Series{2020: 72000, 2023: 80436}, m.Historical("ENG", "P1"))
	require.Equal(t, models.Series{2020: 70000}, m.Historical("GEO", "P1"))
	require.Empty(t, m.Historical("ENG", "P5"))
}

func TestForecastSetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	set := &ForecastSet{
		Metadata: ForecastMetadata{
			Method:        "Linear + Polynomial (degree 2) regression average",
			ForecastYears: []int{2024, 2025},
			BaseYears:     []int{2020, 2023},
		},
		ENG: map[string]map[string]int{
			"P1": {"2024": 82000, "2025": 84000},
		},
	}

	require.NoError(t, set.Save(dir))

	loaded, err := LoadForecasts(dir)
	require.NoError(t, err)
	require.Equal(t, set, loaded)
}

func TestLoadMasterMissingFile(t *testing.T) {
	_, err := LoadMaster(t.TempDir())
	require.Error(t, err)
}
