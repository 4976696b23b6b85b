// Package fetch acquires the survey PDFs: direct download with archive
// snapshot fallback, checksum reporting, and year-folder organization.
package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"

	"github.com/kmacleod/salarytrends/internal/config"
)

// PDFName returns the standard on-disk name for a survey year.
func PDFName(year int) string {
	return fmt.Sprintf("apega_salary_survey_%d.pdf", year)
}

// PDFPath returns docs/<year>/apega_salary_survey_<year>.pdf.
func PDFPath(docsDir string, year int) string {
	return filepath.Join(docsDir, fmt.Sprintf("%d", year), PDFName(year))
}

// DownloadAll fetches every configured source into its year folder. Failures
// are logged and skipped; an existing file short-circuits its year. Returns
// the number of PDFs present on disk afterwards.
func DownloadAll(cfg config.Config, debug bool) int {
	present := 0
	client := newHTTPClient()

	for _, src := range cfg.Sources {
		dest := PDFPath(cfg.Paths.DocsDir, src.Year)
		if _, err := os.Stat(dest); err == nil {
			pterm.Info.Printf("%d: already present\n", src.Year)
			present++
			continue
		}

		urls := src.URLs
		ok := false
		for attempt := 0; attempt < len(urls); attempt++ {
			url := urls[attempt]
			if debug {
				fmt.Printf("  attempting %s\n", url)
			}
			sum, err := downloadFile(client, url, dest)
			if err != nil {
				pterm.Warning.Printf("%d: %v\n", src.Year, err)
				// Last resort once every configured URL has failed: ask the
				// wayback availability API for the closest snapshot.
				if attempt == len(urls)-1 && len(urls) == len(src.URLs) {
					if snapshot, found := waybackSnapshot(src.URLs, debug); found {
						urls = append(urls, snapshot)
					}
				}
				continue
			}
			pterm.Success.Printf("%d: downloaded (sha256=%s...)\n", src.Year, sum[:16])
			ok = true
			break
		}
		if ok {
			present++
		} else {
			pterm.Error.Printf("%d: all sources failed\n", src.Year)
		}
	}
	return present
}

// downloadFile streams url to dest and returns the sha256 of the payload.
// The payload lands in a temp file first so a failed transfer never
// clobbers a prior good copy.
func downloadFile(client *http.Client, url, dest string) (string, error) {
	req, err := newRequest(url)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	var body io.Reader = resp.Body
	var bar *pb.ProgressBar
	if resp.ContentLength > 0 {
		bar = pb.Full.Start64(resp.ContentLength)
		body = bar.NewProxyReader(resp.Body)
	}

	hasher := sha256.New()
	_, err = io.Copy(io.MultiWriter(tmp, hasher), body)
	if bar != nil {
		bar.Finish()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
