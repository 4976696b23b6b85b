package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmacleod/salarytrends/internal/config"
)

func TestDownloadFileWritesAndChecksums(t *testing.T) {
	payload := []byte("%PDF-1.4 fake survey payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "2023", "apega_salary_survey_2023.pdf")
	sum, err := downloadFile(newHTTPClient(), srv.URL, dest)
	require.NoError(t, err)

	wantSum := sha256.Sum256(payload)
	require.Equal(t, hex.EncodeToString(wantSum[:]), sum)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestDownloadFileFailureLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "2023", "apega_salary_survey_2023.pdf")
	_, err := downloadFile(newHTTPClient(), srv.URL, dest)
	require.Error(t, err)
	require.NoFileExists(t, dest)
}

func TestDownloadAllSkipsExisting(t *testing.T) {
	docs := t.TempDir()
	dest := PDFPath(docs, 2023)
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0o755))
	require.NoError(t, os.WriteFile(dest, []byte("existing"), 0o644))

	cfg := config.Default()
	cfg.Paths.DocsDir = docs
	cfg.Sources = []config.Source{{Year: 2023, URLs: []string{"http://127.0.0.1:1/unreachable"}}}

	// The unreachable URL must never be contacted; the present file wins.
	n := DownloadAll(cfg, false)
	require.Equal(t, 1, n)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, []byte("existing"), got)
}

func TestDiscoverSources(t *testing.T) {
	html := `<html><body>
		<a href="/docs/apega-salary-survey-member-report-2025.pdf">2025 Salary Survey</a>
		<a href="/docs/apega-salary-survey-member-report-2023.pdf">2023 Salary Survey</a>
		<a href="/docs/unrelated-guide.pdf">Practice Guide</a>
		<a href="/news/salary-survey-2025">not a pdf</a>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html)
	}))
	defer srv.Close()

	known := []config.Source{{Year: 2023, URLs: []string{"https://example.com/2023.pdf"}}}
	found, err := DiscoverSources(srv.URL, known)
	require.NoError(t, err)

	// 2023 is already known, the non-survey pdf has no year match.
	require.Len(t, found, 1)
	require.Equal(t, 2025, found[0].Year)
	require.Equal(t, []string{srv.URL + "/docs/apega-salary-survey-member-report-2025.pdf"}, found[0].URLs)
}
