package forecast

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/kmacleod/salarytrends/internal/config"
	"github.com/kmacleod/salarytrends/internal/dataset"
	"github.com/kmacleod/salarytrends/internal/models"
)

// Build projects every level with enough history for each profession, then
// harmonizes the configured track groups. Levels with fewer than two
// observations are left out of the result.
func Build(master *dataset.Master, cfg config.Config, debug bool) *dataset.ForecastSet {
	set := &dataset.ForecastSet{
		Metadata: dataset.ForecastMetadata{
			Method:        Method,
			ForecastYears: cfg.Horizon.Years(),
			BaseYears:     master.Years(),
		},
	}

	for _, profession := range []string{"ENG", "GEO"} {
		forecasts := make(map[string]map[string]int)
		histories := make(map[string]models.Series)

		for _, level := range models.AllLevels() {
			hist := master.Historical(profession, level)
			histories[level] = hist

			projected, err := Project(hist, cfg.Horizon)
			if err != nil {
				if !errors.Is(err, ErrInsufficientHistory) && debug {
					fmt.Printf("  %s %s: %v\n", profession, level, err)
				}
				continue
			}
			forecasts[level] = projected

			if debug {
				_, last, _ := hist.LastKnown()
				final := projected[strconv.Itoa(cfg.Horizon.End)]
				growth := float64(final-last) / float64(last) * 100
				fmt.Printf("  %s %s: $%s -> $%s (%d) [%+.1f%%]\n",
					profession, level,
					humanize.Comma(int64(last)), humanize.Comma(int64(final)),
					cfg.Horizon.End, growth)
			}
		}

		for _, prefix := range cfg.HarmonizeTracks {
			HarmonizeGroup(forecasts, histories, prefix, cfg.Horizon)
		}

		if len(forecasts) == 0 {
			continue
		}
		if profession == "GEO" {
			set.GEO = forecasts
		} else {
			set.ENG = forecasts
		}
	}

	return set
}

// SummaryRow pairs a forecast level with its last known and final projected
// salary for console output.
type SummaryRow struct {
	Profession string
	Level      string
	Last       int
	Final      int
}

// Summary returns one row per forecast level, sorted by profession and level.
func Summary(set *dataset.ForecastSet, master *dataset.Master, horizon config.Horizon) []SummaryRow {
	var rows []SummaryRow
	finalKey := strconv.Itoa(horizon.End)
	for _, profession := range []string{"ENG", "GEO"} {
		forecasts := set.Levels(profession)
		levels := make([]string, 0, len(forecasts))
		for level := range forecasts {
			levels = append(levels, level)
		}
		sort.Strings(levels)
		for _, level := range levels {
			_, last, ok := master.Historical(profession, level).LastKnown()
			if !ok {
				continue
			}
			rows = append(rows, SummaryRow{
				Profession: profession,
				Level:      level,
				Last:       last,
				Final:      forecasts[level][finalKey],
			})
		}
	}
	return rows
}
