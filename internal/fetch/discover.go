package fetch

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kmacleod/salarytrends/internal/config"
)

var surveyLinkYear = regexp.MustCompile(`(?i)(?:salary[-_ ]?survey|member[-_ ]?report)\D*((?:19|20)\d{2})`)

// DiscoverSources scrapes a publications index page for survey PDF links and
// returns them as candidate sources, newest first. Years already covered by
// known sources are skipped.
func DiscoverSources(indexURL string, known []config.Source) ([]config.Source, error) {
	if indexURL == "" {
		return nil, nil
	}
	client := newHTTPClient()
	req, err := newRequest(indexURL)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching index %s: %w", indexURL, err)
	}
	defer resp.Body.Close()

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", indexURL, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing index %s: %w", indexURL, err)
	}

	covered := make(map[int]bool, len(known))
	for _, src := range known {
		covered[src.Year] = true
	}

	byYear := make(map[int][]string)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			return
		}
		m := surveyLinkYear.FindStringSubmatch(href + " " + sel.Text())
		if m == nil {
			return
		}
		year, err := strconv.Atoi(m[1])
		if err != nil || covered[year] {
			return
		}
		abs := resolveURL(indexURL, href)
		byYear[year] = append(byYear[year], abs)
	})

	var found []config.Source
	for year, urls := range byYear {
		found = append(found, config.Source{Year: year, URLs: urls})
	}
	return found, nil
}

func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
