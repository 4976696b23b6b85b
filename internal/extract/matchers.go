package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kmacleod/salarytrends/internal/models"
)

// IntMatcher pairs a candidate pattern with a validation predicate. Matchers
// for a field are tried in order; within one pattern, matches are scanned
// left to right and the first value passing validation wins.
type IntMatcher struct {
	Pattern  *regexp.Regexp
	Validate func(int) bool
}

// PairMatcher is an IntMatcher over two capture groups.
type PairMatcher struct {
	Pattern  *regexp.Regexp
	Validate func(a, b int) bool
}

func firstInt(text string, matchers []IntMatcher) (int, bool) {
	for _, m := range matchers {
		for _, groups := range m.Pattern.FindAllStringSubmatch(text, -1) {
			v, err := parseGroupedInt(groups[1])
			if err != nil {
				continue
			}
			if m.Validate == nil || m.Validate(v) {
				return v, true
			}
		}
	}
	return 0, false
}

func firstPair(text string, matchers []PairMatcher) (int, int, bool) {
	for _, m := range matchers {
		for _, groups := range m.Pattern.FindAllStringSubmatch(text, -1) {
			a, errA := parseGroupedInt(groups[1])
			b, errB := parseGroupedInt(groups[2])
			if errA != nil || errB != nil {
				continue
			}
			if m.Validate == nil || m.Validate(a, b) {
				return a, b, true
			}
		}
	}
	return 0, 0, false
}

// parseGroupedInt handles thousands separators OCR leaves inside figures.
func parseGroupedInt(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimPrefix(s, "$")
	return strconv.Atoi(s)
}

func inRange(lo, hi int) func(int) bool {
	return func(v int) bool { return v >= lo && v <= hi }
}

// Survey-wide plausibility bounds. Values outside these are OCR artifacts or
// figures from unrelated tables.
const (
	minPlausibleSalary = 30000
	maxPlausibleSalary = 400000
)

var orgCountMatchers = []IntMatcher{
	{regexp.MustCompile(`(?i)(\d+)\s+(?:participating\s+)?organizations?`), inRange(10, 10000)},
	{regexp.MustCompile(`(?i)(?:number|count)\s+of\s+organizations?\s*:?\s*(\d+)`), inRange(10, 10000)},
	{regexp.MustCompile(`(?i)(\d+)\s+(?:companies|permit holders)`), inRange(10, 10000)},
}

var incumbentMatchers = []IntMatcher{
	{regexp.MustCompile(`(?i)(?:number of\s+)?incumbents\s*:?\s*(\d+(?:,\d+)?)`), inRange(101, 1000000)},
	{regexp.MustCompile(`(?i)(\d+(?:,\d+)?)\s+incumbents`), inRange(101, 1000000)},
}

var genderMatchers = []PairMatcher{
	{regexp.MustCompile(`(?is)(\d+)%\s+(?:Engineers|ENG)\b.*?(\d+)%\s+(?:Geoscientists|GEO)\b`), validPctPair},
	{regexp.MustCompile(`(?i)(\d+)%\s+(\d+)%\s+Engineers\s+Geoscientists`), validPctPair},
}

func validPctPair(a, b int) bool {
	return a >= 0 && a <= 100 && b >= 0 && b <= 100
}

var workArrangementMatchers = []IntMatcher{
	{regexp.MustCompile(`(?i)(?:remote|hybrid)\W{0,3}(?:\w+\W{0,3}){0,5}?(\d+)%`), inRange(1, 100)},
	{regexp.MustCompile(`(?i)(\d+)%\W{0,3}(?:\w+\W{0,3}){0,5}?(?:remote|hybrid)`), inRange(1, 100)},
}

// levelSalaryPattern captures a level code and the nearest dollar figure.
// OCR runs level labels and salaries together with descriptive text between,
// so up to thirty characters of slack are allowed before the dollar sign.
var levelSalaryPattern = regexp.MustCompile(
	`(?im)(?:^|\s)(P[1-6]|M[1-5])\s+(?:\$|[\w\s]{0,30}?\$)([\d,]+)`)

// OrgCount extracts the number of participating organizations.
func OrgCount(text string) (int, bool) {
	return firstInt(text, orgCountMatchers)
}

// IncumbentCount extracts the number of surveyed incumbents.
func IncumbentCount(text string) (int, bool) {
	return firstInt(text, incumbentMatchers)
}

// GenderSplit extracts the engineers/geoscientists percentage pair.
func GenderSplit(text string) (*models.GenderSplit, bool) {
	eng, geo, ok := firstPair(text, genderMatchers)
	if !ok {
		return nil, false
	}
	return &models.GenderSplit{EngineersPct: eng, GeoscientistsPct: geo}, true
}

// WorkArrangements extracts the remote-or-hybrid percentage.
func WorkArrangements(text string) (*models.WorkArrangements, bool) {
	pct, ok := firstInt(text, workArrangementMatchers)
	if !ok {
		return nil, false
	}
	return &models.WorkArrangements{RemoteOrHybridPct: pct}, true
}

// LevelSalaries pulls every level/salary pair from one page's text. Only the
// first valid figure per level is kept.
func LevelSalaries(text string) map[string]int {
	out := make(map[string]int)
	for _, groups := range levelSalaryPattern.FindAllStringSubmatch(text, -1) {
		level := strings.ToUpper(groups[1])
		if _, seen := out[level]; seen {
			continue
		}
		salary, err := parseGroupedInt(groups[2])
		if err != nil {
			continue
		}
		if salary < minPlausibleSalary || salary > maxPlausibleSalary {
			continue
		}
		if _, err := models.ParseLevel(level); err != nil {
			continue
		}
		out[level] = salary
	}
	return out
}

// professionOf decides whether a page covers engineers or geoscientists.
// Engineering wins ties: survey pages mentioning both lead with ENG tables.
func professionOf(pageText string) (string, bool) {
	hasEng := strings.Contains(pageText, "Engineer") || containsWord(pageText, "ENG")
	hasGeo := strings.Contains(pageText, "Geoscien") || containsWord(pageText, "GEO")
	switch {
	case hasEng:
		return "ENG", true
	case hasGeo:
		return "GEO", true
	}
	return "", false
}

var wordBoundary = regexp.MustCompile(`\b(ENG|GEO)\b`)

func containsWord(text, word string) bool {
	for _, m := range wordBoundary.FindAllString(text, -1) {
		if m == word {
			return true
		}
	}
	return false
}
