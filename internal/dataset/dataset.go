// Package dataset persists the master and forecast JSON files and keeps
// their shapes stable between pipeline stages.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/kmacleod/salarytrends/internal/models"
)

const (
	// MasterFile is the consolidated historical dataset.
	MasterFile = "salary_master.json"
	// ForecastFile holds the projected horizon values.
	ForecastFile = "salary_forecasts.json"
)

// Metadata describes the master dataset.
type Metadata struct {
	Years       []int               `json:"years"`
	Professions []string            `json:"professions"`
	Levels      map[string][]string `json:"levels"`
}

// Master maps survey years to their extracted records.
type Master struct {
	Metadata Metadata                      `json:"metadata"`
	ByYear   map[string]*models.YearRecord `json:"by_year"`
}

// NewMaster returns an empty master with the level catalogue filled in.
func NewMaster() *Master {
	return &Master{
		Metadata: Metadata{
			Professions: []string{"ENG", "GEO"},
			Levels: map[string][]string{
				"P": models.TrackLevels(models.TrackProfessional),
				"M": models.TrackLevels(models.TrackManagement),
			},
		},
		ByYear: make(map[string]*models.YearRecord),
	}
}

// SetYear inserts or replaces one year's record and keeps metadata years
// sorted and deduplicated.
func (m *Master) SetYear(year int, rec *models.YearRecord) {
	m.ByYear[strconv.Itoa(year)] = rec

	seen := make(map[int]bool, len(m.Metadata.Years)+1)
	for _, y := range m.Metadata.Years {
		seen[y] = true
	}
	if !seen[year] {
		m.Metadata.Years = append(m.Metadata.Years, year)
	}
	sort.Ints(m.Metadata.Years)
}

// Years returns the recorded survey years ascending, derived from by_year
// rather than trusting metadata.
func (m *Master) Years() []int {
	var years []int
	for ys := range m.ByYear {
		y, err := strconv.Atoi(ys)
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Historical collects one level's series across all years for a profession.
func (m *Master) Historical(profession, level string) models.Series {
	series := make(models.Series)
	for ys, rec := range m.ByYear {
		year, err := strconv.Atoi(ys)
		if err != nil || rec == nil {
			continue
		}
		if salary, ok := rec.Levels(profession)[level]; ok {
			series[year] = salary
		}
	}
	return series
}

// LoadMaster reads the master dataset from dataDir.
func LoadMaster(dataDir string) (*Master, error) {
	path := filepath.Join(dataDir, MasterFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading master dataset: %w", err)
	}
	var m Master
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.ByYear == nil {
		m.ByYear = make(map[string]*models.YearRecord)
	}
	return &m, nil
}

// Save writes the master dataset as indented JSON, whole-file overwrite.
func (m *Master) Save(dataDir string) error {
	return writeJSON(filepath.Join(dataDir, MasterFile), m)
}

// ForecastMetadata records how and from what the forecast was produced.
type ForecastMetadata struct {
	Method        string `json:"method"`
	ForecastYears []int  `json:"forecast_years"`
	BaseYears     []int  `json:"base_years"`
	Note          string `json:"note,omitempty"`
}

// ForecastSet is the projected salaries per profession, level and year.
// Year keys are strings in the file, semantically integers.
type ForecastSet struct {
	Metadata ForecastMetadata          `json:"metadata"`
	ENG      map[string]map[string]int `json:"ENG"`
	GEO      map[string]map[string]int `json:"GEO,omitempty"`
}

// Levels returns the level forecasts for a profession code.
func (f *ForecastSet) Levels(profession string) map[string]map[string]int {
	if profession == "GEO" {
		return f.GEO
	}
	return f.ENG
}

// LoadForecasts reads the forecast dataset from dataDir.
func LoadForecasts(dataDir string) (*ForecastSet, error) {
	path := filepath.Join(dataDir, ForecastFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading forecasts: %w", err)
	}
	var f ForecastSet
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the forecast dataset as indented JSON.
func (f *ForecastSet) Save(dataDir string) error {
	return writeJSON(filepath.Join(dataDir, ForecastFile), f)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
