package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	valid := map[string]CareerLevel{
		"P1": {Track: TrackProfessional, Rank: 1},
		"P6": {Track: TrackProfessional, Rank: 6},
		"M1": {Track: TrackManagement, Rank: 1},
		"M5": {Track: TrackManagement, Rank: 5},
	}
	for code, want := range valid {
		got, err := ParseLevel(code)
		require.NoError(t, err, code)
		require.Equal(t, want, got)
		require.Equal(t, code, got.String())
	}

	for _, code := range []string{"", "P", "P0", "P7", "M0", "M6", "X1", "p1", "P12"} {
		_, err := ParseLevel(code)
		require.Error(t, err, code)
	}
}

func TestTrackLevels(t *testing.T) {
	require.Equal(t, []string{"P1", "P2", "P3", "P4", "P5", "P6"}, TrackLevels(TrackProfessional))
	require.Equal(t, []string{"M1", "M2", "M3", "M4", "M5"}, TrackLevels(TrackManagement))
	require.Len(t, AllLevels(), 11)
}

func TestSeriesOrdering(t *testing.T) {
	s := Series{2023: 117, 2020: 100, 2022: 110}

	require.Equal(t, []int{2020, 2022, 2023}, s.Years())

	year, salary, ok := s.LastKnown()
	require.True(t, ok)
	require.Equal(t, 2023, year)
	require.Equal(t, 117, salary)

	_, _, ok = Series{}.LastKnown()
	require.False(t, ok)
}
