package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Paths holds the on-disk layout of the pipeline.
type Paths struct {
	DocsDir   string `yaml:"docs_dir"`
	DataDir   string `yaml:"data_dir"`
	OutputDir string `yaml:"output_dir"`
}

// Horizon is the inclusive range of years being forecasted.
type Horizon struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Years returns every horizon year in ascending order.
func (h Horizon) Years() []int {
	var out []int
	for y := h.Start; y <= h.End; y++ {
		out = append(out, y)
	}
	return out
}

// Source describes one survey year PDF and where to get it. URLs are tried
// in order; the wayback availability API is the last resort.
type Source struct {
	Year int      `yaml:"year"`
	URLs []string `yaml:"urls"`
}

// ReportStyle is passed explicitly into the reporting component so no chart
// state lives at package level.
type ReportStyle struct {
	WidthInches   float64  `yaml:"width_inches"`
	HeightInches  float64  `yaml:"height_inches"`
	DPI           int      `yaml:"dpi"`
	HistoricalRGB [3]uint8 `yaml:"historical_rgb"`
	ForecastAlpha float64  `yaml:"forecast_alpha"`
}

// Config is the full pipeline configuration. Zero config is usable: Default
// carries the published APEGA sources and the 2024-2030 horizon.
type Config struct {
	Paths   Paths       `yaml:"paths"`
	Horizon Horizon     `yaml:"horizon"`
	Sources []Source    `yaml:"sources"`
	Report  ReportStyle `yaml:"report"`

	// IndexURL, when set, is scraped for additional survey PDF links.
	IndexURL string `yaml:"index_url"`

	// HarmonizeTracks lists the track prefixes whose forecasts get pulled
	// toward the group median growth.
	HarmonizeTracks []string `yaml:"harmonize_tracks"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			DocsDir:   "docs",
			DataDir:   "data",
			OutputDir: "outputs",
		},
		Horizon: Horizon{Start: 2024, End: 2030},
		Sources: []Source{
			{Year: 2020, URLs: []string{
				"https://www.apega.ca/docs/default-source/pdfs/apega-2020-salary-survey-member-report.pdf",
				"https://web.archive.org/web/20211222174222/https://www.apega.ca/docs/default-source/pdfs/apega-2020-salary-survey-member-report.pdf",
			}},
			{Year: 2021, URLs: []string{
				"https://www.apega.ca/docs/default-source/pdfs/2021-member-report.pdf",
				"https://web.archive.org/web/20211222174222/https://www.apega.ca/docs/default-source/pdfs/2021-member-report.pdf",
			}},
			{Year: 2022, URLs: []string{
				"https://www.apega.ca/docs/default-source/pdfs/apega-member-report-2022.pdf",
				"https://web.archive.org/web/20231201101111/https://www.apega.ca/docs/default-source/pdfs/apega-member-report-2022.pdf",
			}},
			{Year: 2023, URLs: []string{
				"https://www.apega.ca/docs/default-source/pdfs/apega-salary-survey-member-report-2023.pdf",
				"https://web.archive.org/web/20240311204416/https://www.apega.ca/docs/default-source/pdfs/apega-salary-survey-member-report-2023.pdf",
			}},
		},
		Report: ReportStyle{
			WidthInches:   14,
			HeightInches:  8,
			DPI:           300,
			HistoricalRGB: [3]uint8{0x2e, 0x86, 0xab},
			ForecastAlpha: 0.6,
		},
		HarmonizeTracks: []string{"M"},
	}
}

// Load reads a YAML config file over the defaults. A missing path is not an
// error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Horizon.Start > cfg.Horizon.End {
		return cfg, fmt.Errorf("config %s: horizon start %d after end %d", path, cfg.Horizon.Start, cfg.Horizon.End)
	}
	return cfg, nil
}
