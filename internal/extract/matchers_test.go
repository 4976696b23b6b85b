package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmacleod/salarytrends/internal/models"
)

func TestOrgCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
		ok   bool
	}{
		{"plain", "In 2023, 169 organizations participated in the survey.", 169, true},
		{"participating", "184 participating organizations responded", 184, true},
		{"labelled", "Number of organizations: 142", 142, true},
		{"first invalid falls through", "surveyed 5 organizations in the pilot, then 169 organizations overall", 169, true},
		{"absent", "no counts in this text", 0, false},
		{"implausible only", "2 organizations", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := OrgCount(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGenderSplit(t *testing.T) {
	got, ok := GenderSplit("92% Engineers 8% Geoscientists")
	require.True(t, ok)
	require.Equal(t, &models.GenderSplit{EngineersPct: 92, GeoscientistsPct: 8}, got)

	got, ok = GenderSplit("90% 10% Engineers Geoscientists")
	require.True(t, ok)
	require.Equal(t, &models.GenderSplit{EngineersPct: 90, GeoscientistsPct: 10}, got)

	_, ok = GenderSplit("membership grew by 4% this year")
	require.False(t, ok)
}

func TestIncumbentCount(t *testing.T) {
	got, ok := IncumbentCount("Number of incumbents: 11,945")
	require.True(t, ok)
	require.Equal(t, 11945, got)

	// Small figures are table row counts, not survey totals.
	_, ok = IncumbentCount("12 incumbents")
	require.False(t, ok)
}

func TestWorkArrangements(t *testing.T) {
	got, ok := WorkArrangements("28% of respondents work remote or hybrid")
	require.True(t, ok)
	require.Equal(t, 28, got.RemoteOrHybridPct)

	got, ok = WorkArrangements("remote and hybrid work reached 31% in 2023")
	require.True(t, ok)
	require.Equal(t, 31, got.RemoteOrHybridPct)
}

func TestLevelSalaries(t *testing.T) {
	text := `
P1 Entry Professional $80,436
P2 $10,000
P2 Developing Professional $97,159
M1 Team Leader $127,593
P7 $95,000
`
	got := LevelSalaries(text)
	require.Equal(t, map[string]int{
		"P1": 80436,
		"P2": 97159, // the implausible first figure is skipped
		"M1": 127593,
	}, got)
}

func TestLevelSalariesFirstValidWins(t *testing.T) {
	got := LevelSalaries("P3 $117,112 and later P3 $999 and P3 $150,000")
	require.Equal(t, map[string]int{"P3": 117112}, got)
}

func TestFromPagesAssignsProfessionByPageContext(t *testing.T) {
	pages := []string{
		"APEGA Salary Survey 2023\n169 organizations participated\n92% Engineers 8% Geoscientists",
		"Professional Engineers by Career Level\nP1 $80,436\nM1 $127,593",
		"Geoscientists by Career Level\nP1 $77,500",
	}
	rec := FromPages(pages)

	require.NotNil(t, rec.OrgCount)
	require.Equal(t, 169, *rec.OrgCount)
	require.NotNil(t, rec.Gender)
	require.Equal(t, 92, rec.Gender.EngineersPct)
	require.Equal(t, 8, rec.Gender.GeoscientistsPct)

	require.Equal(t, map[string]int{"P1": 80436, "M1": 127593}, rec.ENG)
	require.Equal(t, map[string]int{"P1": 77500}, rec.GEO)
}

func TestFromPagesMissingFieldsStayAbsent(t *testing.T) {
	rec := FromPages([]string{"nothing useful on this page"})
	require.Nil(t, rec.OrgCount)
	require.Nil(t, rec.Gender)
	require.Nil(t, rec.WorkArrangements)
	require.Empty(t, rec.ENG)
	require.Empty(t, rec.GEO)
}
