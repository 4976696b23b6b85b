package forecast

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmacleod/salarytrends/internal/config"
	"github.com/kmacleod/salarytrends/internal/dataset"
	"github.com/kmacleod/salarytrends/internal/models"
)

func TestBuildFromMaster(t *testing.T) {
	m := dataset.NewMaster()
	for year, salary := range map[int]int{2020: 100, 2021: 105, 2022: 110, 2023: 117} {
		rec := models.NewYearRecord()
		rec.ENG["P1"] = salary
		rec.ENG["P2"] = salary + 20
		if year == 2023 {
			// A single observation is not forecastable.
			rec.ENG["M5"] = 240000
		}
		m.SetYear(year, rec)
	}

	cfg := config.Default()
	set := Build(m, cfg, false)

	require.Equal(t, Method, set.Metadata.Method)
	require.Equal(t, cfg.Horizon.Years(), set.Metadata.ForecastYears)
	require.Equal(t, []int{2020, 2021, 2022, 2023}, set.Metadata.BaseYears)

	require.Contains(t, set.ENG, "P1")
	require.Contains(t, set.ENG, "P2")
	require.NotContains(t, set.ENG, "M5")
	require.Nil(t, set.GEO)

	p1 := set.ENG["P1"]
	require.Len(t, p1, 7)
	prev := 117
	for y := cfg.Horizon.Start; y <= cfg.Horizon.End; y++ {
		v := p1[strconv.Itoa(y)]
		require.GreaterOrEqual(t, v, 117)
		require.GreaterOrEqual(t, v, prev)
		prev = v
	}
}
