package dataset

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Verify loads both datasets and reports their coverage. Missing or broken
// files are reported per file; the first problem is returned so the caller
// can exit non-zero.
func Verify(dataDir string) error {
	var firstErr error

	master, err := LoadMaster(dataDir)
	if err != nil {
		pterm.Error.Printf("%s: %v\n", MasterFile, err)
		firstErr = err
	} else {
		pterm.Success.Printf("%s: valid\n", MasterFile)
		fmt.Printf("  Years: %v\n", master.Years())
		for _, ys := range masterYearKeys(master) {
			rec := master.ByYear[ys]
			fmt.Printf("  %s: %d ENG levels, %d GEO levels\n", ys, len(rec.ENG), len(rec.GEO))
		}
	}

	forecasts, err := LoadForecasts(dataDir)
	if err != nil {
		pterm.Error.Printf("%s: %v\n", ForecastFile, err)
		if firstErr == nil {
			firstErr = err
		}
	} else {
		pterm.Success.Printf("%s: valid\n", ForecastFile)
		fmt.Printf("  Forecast years: %v\n", forecasts.Metadata.ForecastYears)
		fmt.Printf("  ENG levels forecast: %d\n", len(forecasts.ENG))
	}

	return firstErr
}

func masterYearKeys(m *Master) []string {
	var keys []string
	for _, y := range m.Years() {
		keys = append(keys, fmt.Sprintf("%d", y))
	}
	return keys
}
