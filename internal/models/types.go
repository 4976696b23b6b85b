package models

import (
	"fmt"
	"sort"
)

// Track identifies which career ladder a level belongs to.
type Track string

const (
	TrackProfessional Track = "P"
	TrackManagement   Track = "M"
)

// maxRank holds the highest rank published per track.
var maxRank = map[Track]int{
	TrackProfessional: 6,
	TrackManagement:   5,
}

// CareerLevel is a rung on the professional (P1-P6) or management (M1-M5)
// ladder. Ranks are ordered within a track; cross-track comparison is not
// meaningful.
type CareerLevel struct {
	Track Track
	Rank  int
}

// ParseLevel parses a level code such as "P3" or "M1".
func ParseLevel(code string) (CareerLevel, error) {
	if len(code) != 2 {
		return CareerLevel{}, fmt.Errorf("invalid career level %q", code)
	}
	track := Track(code[:1])
	if track != TrackProfessional && track != TrackManagement {
		return CareerLevel{}, fmt.Errorf("invalid career level %q: unknown track", code)
	}
	rank := int(code[1] - '0')
	if rank < 1 || rank > maxRank[track] {
		return CareerLevel{}, fmt.Errorf("invalid career level %q: rank out of range", code)
	}
	return CareerLevel{Track: track, Rank: rank}, nil
}

func (l CareerLevel) String() string {
	return fmt.Sprintf("%s%d", l.Track, l.Rank)
}

// AllLevels returns every publishable level code, P track first.
func AllLevels() []string {
	var out []string
	for _, t := range []Track{TrackProfessional, TrackManagement} {
		out = append(out, TrackLevels(t)...)
	}
	return out
}

// TrackLevels returns the level codes for a single track.
func TrackLevels(t Track) []string {
	var out []string
	for r := 1; r <= maxRank[t]; r++ {
		out = append(out, CareerLevel{Track: t, Rank: r}.String())
	}
	return out
}

// GenderSplit is the published engineer/geoscientist membership percentages.
type GenderSplit struct {
	EngineersPct     int `json:"engineers_pct"`
	GeoscientistsPct int `json:"geoscientists_pct"`
}

// WorkArrangements tracks remote/hybrid reporting, published from 2023 on.
type WorkArrangements struct {
	RemoteOrHybridPct int `json:"remote_or_hybrid_pct"`
	InOfficePct       int `json:"in_office_pct,omitempty"`
}

// YearRecord is everything extracted from one survey year.
type YearRecord struct {
	ENG              map[string]int    `json:"ENG"`
	GEO              map[string]int    `json:"GEO"`
	OrgCount         *int              `json:"org_count"`
	IncumbentCount   *int              `json:"incumbent_count,omitempty"`
	Gender           *GenderSplit      `json:"gender"`
	WorkArrangements *WorkArrangements `json:"work_arrangements"`
}

// NewYearRecord returns a record with both profession maps allocated.
func NewYearRecord() *YearRecord {
	return &YearRecord{
		ENG: make(map[string]int),
		GEO: make(map[string]int),
	}
}

// Levels returns the level->salary map for a profession code ("ENG"/"GEO").
func (r *YearRecord) Levels(profession string) map[string]int {
	if profession == "GEO" {
		return r.GEO
	}
	return r.ENG
}

// Series is the historical observations for a single level: year to median
// salary. Immutable once handed to the forecaster.
type Series map[int]int

// Years returns the observation years in ascending order.
func (s Series) Years() []int {
	years := make([]int, 0, len(s))
	for y := range s {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// LastKnown returns the most recent observation, or false when empty.
func (s Series) LastKnown() (year, salary int, ok bool) {
	years := s.Years()
	if len(years) == 0 {
		return 0, 0, false
	}
	last := years[len(years)-1]
	return last, s[last], true
}
