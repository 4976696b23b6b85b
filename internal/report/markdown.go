package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/kmacleod/salarytrends/internal/config"
	"github.com/kmacleod/salarytrends/internal/dataset"
	"github.com/kmacleod/salarytrends/internal/models"
)

// ReferenceFile is the rendered markdown table set.
const ReferenceFile = "FORECAST_REFERENCE.md"

// WriteReferenceTables renders the markdown reference tables into the output
// directory and returns the file path.
func WriteReferenceTables(master *dataset.Master, forecasts *dataset.ForecastSet, cfg config.Config) (string, error) {
	md := ReferenceMarkdown(master, forecasts, cfg.Horizon)
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", cfg.Paths.OutputDir, err)
	}
	path := filepath.Join(cfg.Paths.OutputDir, ReferenceFile)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ReferenceMarkdown builds the forecast reference document: one table per
// career track plus a growth summary, derived purely from the two datasets.
func ReferenceMarkdown(master *dataset.Master, forecasts *dataset.ForecastSet, horizon config.Horizon) string {
	var b strings.Builder

	years := master.Years()
	baseYear := 0
	if len(years) > 0 {
		baseYear = years[len(years)-1]
	}

	fmt.Fprintf(&b, "# APEGA Salary Forecast Reference (%d-%d)\n\n", horizon.Start, horizon.End)
	b.WriteString("**All figures in CAD (median base salary)**\n")

	writeTrackTable(&b, "Engineering (ENG) - Professional Levels",
		models.TrackLevels(models.TrackProfessional), master, forecasts, baseYear, horizon)
	writeTrackTable(&b, "Engineering (ENG) - Management Levels",
		models.TrackLevels(models.TrackManagement), master, forecasts, baseYear, horizon)
	writeGrowthSummary(&b, master, forecasts, baseYear, horizon)

	return b.String()
}

func writeTrackTable(b *strings.Builder, title string, levels []string,
	master *dataset.Master, forecasts *dataset.ForecastSet, baseYear int, horizon config.Horizon) {

	fmt.Fprintf(b, "\n## %s\n\n", title)

	b.WriteString("| Level |")
	fmt.Fprintf(b, " %d Base |", baseYear)
	for _, y := range horizon.Years() {
		fmt.Fprintf(b, " %d |", y)
	}
	b.WriteString("\n|-------|-----------|")
	for range horizon.Years() {
		b.WriteString("------|")
	}
	b.WriteString("\n")

	for _, level := range levels {
		fmt.Fprintf(b, "| %s", level)

		if base, ok := master.Historical("ENG", level)[baseYear]; ok {
			fmt.Fprintf(b, " | $%s", humanize.Comma(int64(base)))
		} else {
			b.WriteString(" | -")
		}

		fc := forecasts.ENG[level]
		for _, y := range horizon.Years() {
			if salary, ok := fc[strconv.Itoa(y)]; ok {
				fmt.Fprintf(b, " | $%s", humanize.Comma(int64(salary)))
			} else {
				b.WriteString(" | -")
			}
		}
		b.WriteString(" |\n")
	}
}

func writeGrowthSummary(b *strings.Builder, master *dataset.Master, forecasts *dataset.ForecastSet,
	baseYear int, horizon config.Horizon) {

	fmt.Fprintf(b, "\n## Growth Summary (%d to %d)\n\n", baseYear, horizon.End)
	fmt.Fprintf(b, "| Level | %d Base | %d Forecast | Dollar Growth | %% Growth |\n", baseYear, horizon.End)
	b.WriteString("|-------|-----------|---------------|---------------|----------|\n")

	finalKey := strconv.Itoa(horizon.End)
	for _, level := range models.AllLevels() {
		base, haveBase := master.Historical("ENG", level)[baseYear]
		fc, haveFc := forecasts.ENG[level]
		if !haveBase || !haveFc {
			continue
		}
		final, ok := fc[finalKey]
		if !ok {
			continue
		}
		growth := final - base
		pct := float64(growth) / float64(base) * 100
		fmt.Fprintf(b, "| %s | $%s | $%s | $%s | %+.1f%% |\n",
			level,
			humanize.Comma(int64(base)),
			humanize.Comma(int64(final)),
			humanize.Comma(int64(growth)),
			pct)
	}

	b.WriteString("\n---\n\n**Notes:**\n")
	b.WriteString("- Forecasts use a combined linear + degree-2 polynomial regression model\n")
	b.WriteString("- Levels with sparse history are excluded rather than extrapolated\n")
	b.WriteString("- Management levels are harmonized to the track's median growth trend\n")
}
