package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/kmacleod/salarytrends/internal/config"
	"github.com/kmacleod/salarytrends/internal/dataset"
	"github.com/kmacleod/salarytrends/internal/extract"
	"github.com/kmacleod/salarytrends/internal/fetch"
	"github.com/kmacleod/salarytrends/internal/forecast"
	"github.com/kmacleod/salarytrends/internal/report"
	"github.com/kmacleod/salarytrends/internal/ui"
)

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\nSalaryTrends Usage Examples")
	fmt.Println("\n1. Download the survey PDFs into docs/<year>/:")
	fmt.Println("   salarytrends -download")

	fmt.Println("\n2. Extract salary tables from downloaded PDFs into the master dataset:")
	fmt.Println("   salarytrends -extract")

	fmt.Println("\n3. Forecast each career level through the horizon and harmonize tracks:")
	fmt.Println("   salarytrends -forecast")

	fmt.Println("\n4. Render charts and the markdown reference tables:")
	fmt.Println("   salarytrends -report")

	fmt.Println("\n5. Run the full pipeline with a custom config, no banner:")
	fmt.Println("   salarytrends -all -config salarytrends.yaml -silence")

	fmt.Println("\n6. Verify the generated data files:")
	fmt.Println("   salarytrends -verify")
	os.Exit(0)
}

func main() {
	// Command line flags
	download := flag.Bool("download", false, "Download survey PDFs")
	extractStage := flag.Bool("extract", false, "Extract salary data from PDFs into the master dataset")
	forecastStage := flag.Bool("forecast", false, "Forecast salaries through the horizon")
	reportStage := flag.Bool("report", false, "Render charts and markdown tables")
	verify := flag.Bool("verify", false, "Verify generated data files")
	all := flag.Bool("all", false, "Run every stage in order")
	configPath := flag.String("config", "salarytrends.yaml", "Optional YAML config file")
	debug := flag.Bool("debug", false, "Enable debug output")
	examples := flag.Bool("examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	ui.PrintBanner(*silence || *noBanner)

	if *examples {
		printExamples()
		return
	}

	if !*download && !*extractStage && !*forecastStage && !*reportStage && !*verify && !*all {
		log.Fatal("No stage selected. Use -download, -extract, -forecast, -report, -verify or -all (see -examples)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if *all || *download {
		runDownload(cfg, *debug)
	}
	if *all || *extractStage {
		runExtract(cfg, *debug)
	}
	if *all || *forecastStage {
		runForecast(cfg, *debug)
	}
	if *all || *reportStage {
		runReport(cfg)
	}
	if *verify {
		if err := dataset.Verify(cfg.Paths.DataDir); err != nil {
			os.Exit(1)
		}
	}
}

func runDownload(cfg config.Config, debug bool) {
	pterm.DefaultSection.Println("Acquisition")

	sources := cfg.Sources
	if cfg.IndexURL != "" {
		discovered, err := fetch.DiscoverSources(cfg.IndexURL, sources)
		if err != nil {
			pterm.Warning.Printf("Index discovery failed: %v\n", err)
		} else if len(discovered) > 0 {
			fmt.Printf("Discovered %d additional survey link(s)\n", len(discovered))
			sources = append(sources, discovered...)
		}
		cfg.Sources = sources
	}

	n := fetch.DownloadAll(cfg, debug)
	fmt.Printf("\n%d of %d survey PDFs present in %s\n", n, len(cfg.Sources), cfg.Paths.DocsDir)
}

var pdfYearPattern = regexp.MustCompile(`apega_salary_survey_((?:19|20)\d{2})\.pdf$`)

func runExtract(cfg config.Config, debug bool) {
	pterm.DefaultSection.Println("Extraction")

	pdfs, err := filepath.Glob(filepath.Join(cfg.Paths.DocsDir, "*", "apega_salary_survey_*.pdf"))
	if err != nil || len(pdfs) == 0 {
		log.Fatalf("No survey PDFs found under %s; run -download first", cfg.Paths.DocsDir)
	}

	// Keep prior years when re-running against a partial download.
	master, err := dataset.LoadMaster(cfg.Paths.DataDir)
	if err != nil {
		master = dataset.NewMaster()
	}

	for _, pdfPath := range pdfs {
		m := pdfYearPattern.FindStringSubmatch(pdfPath)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		fmt.Printf("[%d] %s\n", year, filepath.Base(pdfPath))

		res, err := extract.Year(pdfPath, debug)
		if err != nil {
			pterm.Warning.Printf("%d: %v\n", year, err)
			continue
		}
		rec := res.Record
		if res.ViaOCR {
			fmt.Println("   (text layer unusable, used OCR)")
		}
		if len(rec.ENG) == 0 && len(rec.GEO) == 0 {
			pterm.Info.Printf("%d: no salary tables extracted\n", year)
		} else {
			pterm.Success.Printf("%d: %d ENG, %d GEO levels\n", year, len(rec.ENG), len(rec.GEO))
		}
		if rec.OrgCount != nil {
			fmt.Printf("   Organizations: %d\n", *rec.OrgCount)
		}
		if rec.Gender != nil {
			fmt.Printf("   Split: %d%% ENG, %d%% GEO\n", rec.Gender.EngineersPct, rec.Gender.GeoscientistsPct)
		}
		master.SetYear(year, rec)
	}

	if err := master.Save(cfg.Paths.DataDir); err != nil {
		log.Fatalf("Error saving master dataset: %v", err)
	}
	pterm.Success.Printf("Saved %s\n", filepath.Join(cfg.Paths.DataDir, dataset.MasterFile))
}

func runForecast(cfg config.Config, debug bool) {
	pterm.DefaultSection.Printf("Forecasting %d-%d\n", cfg.Horizon.Start, cfg.Horizon.End)

	master, err := dataset.LoadMaster(cfg.Paths.DataDir)
	if err != nil {
		log.Fatalf("Cannot load master dataset (run -extract first): %v", err)
	}

	set := forecast.Build(master, cfg, debug)
	for _, row := range forecast.Summary(set, master, cfg.Horizon) {
		fmt.Printf("  %s %s: %s -> %s\n", row.Profession, row.Level,
			ui.ColorizeSalary(row.Last), ui.ColorizeSalary(row.Final))
	}

	if err := set.Save(cfg.Paths.DataDir); err != nil {
		log.Fatalf("Error saving forecasts: %v", err)
	}
	pterm.Success.Printf("Saved %s\n", filepath.Join(cfg.Paths.DataDir, dataset.ForecastFile))
}

func runReport(cfg config.Config) {
	pterm.DefaultSection.Println("Reporting")

	master, err := dataset.LoadMaster(cfg.Paths.DataDir)
	if err != nil {
		log.Fatalf("Cannot load master dataset (run -extract first): %v", err)
	}
	forecasts, err := dataset.LoadForecasts(cfg.Paths.DataDir)
	if err != nil {
		log.Fatalf("Cannot load forecasts (run -forecast first): %v", err)
	}

	paths, err := report.RenderCharts(master, forecasts, cfg)
	for _, p := range paths {
		pterm.Success.Printf("Saved %s\n", p)
	}
	if err != nil {
		log.Fatalf("Error rendering charts: %v", err)
	}

	mdPath, err := report.WriteReferenceTables(master, forecasts, cfg)
	if err != nil {
		log.Fatalf("Error writing reference tables: %v", err)
	}
	pterm.Success.Printf("Saved %s\n", mdPath)
}
