// Package report renders the datasets into charts and markdown tables.
// All styling flows through the config.ReportStyle passed in; nothing is
// configured at package level.
package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/kmacleod/salarytrends/internal/config"
	"github.com/kmacleod/salarytrends/internal/dataset"
	"github.com/kmacleod/salarytrends/internal/models"
)

// RenderCharts produces every chart PNG and returns their paths.
func RenderCharts(master *dataset.Master, forecasts *dataset.ForecastSet, cfg config.Config) ([]string, error) {
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", cfg.Paths.OutputDir, err)
	}

	var paths []string
	renders := []struct {
		name string
		fn   func(*plot.Plot) error
	}{
		{"eng_professional_levels.png", func(p *plot.Plot) error {
			return trendChart(p, master, forecasts, "ENG", models.TrackProfessional, cfg)
		}},
		{"eng_management_levels.png", func(p *plot.Plot) error {
			return trendChart(p, master, forecasts, "ENG", models.TrackManagement, cfg)
		}},
		{"participation_orgs.png", func(p *plot.Plot) error {
			return orgCountChart(p, master, cfg)
		}},
		{"participation_gender.png", func(p *plot.Plot) error {
			return genderChart(p, master, cfg)
		}},
		{"historical_cagr.png", func(p *plot.Plot) error {
			return cagrChart(p, master, cfg)
		}},
	}

	for _, r := range renders {
		p := plot.New()
		if err := r.fn(p); err != nil {
			return paths, fmt.Errorf("rendering %s: %w", r.name, err)
		}
		path := filepath.Join(cfg.Paths.OutputDir, r.name)
		if err := savePNG(p, path, cfg.Report); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// trendChart draws one line per level: historical solid, forecast dashed.
func trendChart(p *plot.Plot, master *dataset.Master, forecasts *dataset.ForecastSet,
	profession string, track models.Track, cfg config.Config) error {

	trackName := "Professional"
	if track == models.TrackManagement {
		trackName = "Management"
	}
	p.Title.Text = fmt.Sprintf("%s %s Levels: Historical & Forecast", profession, trackName)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Median Base Salary (CAD)"

	for i, level := range models.TrackLevels(track) {
		c := plotutil.Color(i)

		hist := master.Historical(profession, level)
		if len(hist) > 0 {
			line, err := plotter.NewLine(seriesXYs(hist))
			if err != nil {
				return err
			}
			line.Color = c
			line.Width = vg.Points(2)
			p.Add(line)
			p.Legend.Add(level, line)
		}

		fc := forecasts.Levels(profession)[level]
		if len(fc) > 0 {
			line, err := plotter.NewLine(forecastXYs(fc, cfg.Horizon))
			if err != nil {
				return err
			}
			line.Color = withAlpha(c, cfg.Report.ForecastAlpha)
			line.Width = vg.Points(1.5)
			line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
			p.Add(line)
		}
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return nil
}

func orgCountChart(p *plot.Plot, master *dataset.Master, cfg config.Config) error {
	p.Title.Text = "Survey Participation: Organizations"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Organizations"

	var pts plotter.XYs
	for _, year := range master.Years() {
		rec := master.ByYear[strconv.Itoa(year)]
		if rec == nil || rec.OrgCount == nil {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(year), Y: float64(*rec.OrgCount)})
	}
	return addStyledLine(p, pts, "Organizations", cfg.Report)
}

func genderChart(p *plot.Plot, master *dataset.Master, cfg config.Config) error {
	p.Title.Text = "Professional Breakdown: Engineers %"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Percentage"

	var pts plotter.XYs
	for _, year := range master.Years() {
		rec := master.ByYear[strconv.Itoa(year)]
		if rec == nil || rec.Gender == nil {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(year), Y: float64(rec.Gender.EngineersPct)})
	}
	return addStyledLine(p, pts, "Engineers %", cfg.Report)
}

// withAlpha fades a palette color to the configured forecast opacity.
func withAlpha(c color.Color, alpha float64) color.Color {
	if alpha <= 0 || alpha >= 1 {
		return c
	}
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(alpha * 255),
	}
}

func addStyledLine(p *plot.Plot, pts plotter.XYs, label string, style config.ReportStyle) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	rgb := style.HistoricalRGB
	line.Color = color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
	line.Width = vg.Points(2.5)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

// cagrChart draws the compound annual growth rate per level across the
// recorded span.
func cagrChart(p *plot.Plot, master *dataset.Master, cfg config.Config) error {
	p.Title.Text = "Historical Salary CAGR by Level"
	p.X.Label.Text = "Career Level"
	p.Y.Label.Text = "CAGR (%)"

	var labels []string
	var rates plotter.Values
	for _, level := range models.AllLevels() {
		rate, ok := levelCAGR(master, "ENG", level)
		if !ok {
			continue
		}
		labels = append(labels, level)
		rates = append(rates, rate)
	}

	bars, err := plotter.NewBarChart(rates, vg.Points(20))
	if err != nil {
		return err
	}
	rgb := cfg.Report.HistoricalRGB
	bars.Color = color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
	p.Add(bars)
	p.NominalX(labels...)
	return nil
}

// levelCAGR computes the compound annual growth rate between a level's first
// and last observations.
func levelCAGR(master *dataset.Master, profession, level string) (float64, bool) {
	hist := master.Historical(profession, level)
	years := hist.Years()
	if len(years) < 2 {
		return 0, false
	}
	first, last := years[0], years[len(years)-1]
	span := last - first
	start, end := float64(hist[first]), float64(hist[last])
	if span <= 0 || start <= 0 {
		return 0, false
	}
	return (math.Pow(end/start, 1/float64(span)) - 1) * 100, true
}

func seriesXYs(hist models.Series) plotter.XYs {
	var pts plotter.XYs
	for _, year := range hist.Years() {
		pts = append(pts, plotter.XY{X: float64(year), Y: float64(hist[year])})
	}
	return pts
}

func forecastXYs(fc map[string]int, horizon config.Horizon) plotter.XYs {
	var pts plotter.XYs
	for _, year := range horizon.Years() {
		if v, ok := fc[strconv.Itoa(year)]; ok {
			pts = append(pts, plotter.XY{X: float64(year), Y: float64(v)})
		}
	}
	return pts
}

// savePNG writes the plot at the configured size and DPI.
func savePNG(p *plot.Plot, path string, style config.ReportStyle) error {
	w := vg.Length(style.WidthInches) * vg.Inch
	h := vg.Length(style.HeightInches) * vg.Inch
	canvas := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(style.DPI))
	p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
