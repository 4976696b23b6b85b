package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextPages extracts the text layer of every page. Pages that fail to decode
// are skipped; the caller decides whether the remainder is usable.
func TextPages(pdfPath string) ([]string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// usableText reports whether a text layer carries enough real content to
// parse. Corrupt-font years decode to a handful of garbage glyphs.
func usableText(pages []string) bool {
	var total int
	for _, p := range pages {
		total += len(strings.TrimSpace(p))
	}
	return total >= 500
}
