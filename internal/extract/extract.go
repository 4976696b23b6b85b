// Package extract pulls structured survey figures out of noisy PDF text.
// Every field is best-effort: parsing finds a value or leaves the field
// absent, it never fails the year.
package extract

import (
	"fmt"
	"strings"

	"github.com/kmacleod/salarytrends/internal/models"
)

// Result is one year's extraction outcome plus how the text was obtained.
type Result struct {
	Record *models.YearRecord
	// ViaOCR is true when the text layer was unusable and pages were
	// rendered and OCRed instead.
	ViaOCR bool
}

// Year extracts everything we track from one survey PDF. The text layer is
// preferred; scanned or font-corrupted PDFs fall back to OCR.
func Year(pdfPath string, debug bool) (*Result, error) {
	pages, err := TextPages(pdfPath)
	viaOCR := false
	if err != nil || !usableText(pages) {
		if debug && err != nil {
			fmt.Printf("  text layer failed (%v), trying OCR\n", err)
		}
		pages, err = OCRPages(pdfPath, debug)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", pdfPath, err)
		}
		viaOCR = true
	}

	return &Result{Record: FromPages(pages), ViaOCR: viaOCR}, nil
}

// FromPages runs the field matchers over already-extracted page texts.
// Document-wide fields scan the joined text; level salaries are matched per
// page so the page's profession context (engineering vs geoscience headings)
// assigns them correctly.
func FromPages(pages []string) *models.YearRecord {
	rec := models.NewYearRecord()
	full := strings.Join(pages, "\n")

	if n, ok := OrgCount(full); ok {
		rec.OrgCount = &n
	}
	if n, ok := IncumbentCount(full); ok {
		rec.IncumbentCount = &n
	}
	if g, ok := GenderSplit(full); ok {
		rec.Gender = g
	}
	if w, ok := WorkArrangements(full); ok {
		rec.WorkArrangements = w
	}

	for _, page := range pages {
		profession, ok := professionOf(page)
		if !ok {
			continue
		}
		target := rec.Levels(profession)
		for level, salary := range LevelSalaries(page) {
			if _, seen := target[level]; !seen {
				target[level] = salary
			}
		}
	}
	return rec
}
