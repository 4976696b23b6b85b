// Package forecast projects per-level salary series forward and harmonizes
// the projections within a career track.
package forecast

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/kmacleod/salarytrends/internal/config"
	"github.com/kmacleod/salarytrends/internal/models"
)

// ErrInsufficientHistory is returned for levels with fewer than two
// historical observations. Callers exclude such levels from the forecast set.
var ErrInsufficientHistory = errors.New("forecast: need at least 2 historical observations")

// Method describes the model blend, recorded in forecast metadata.
const Method = "Linear + Polynomial (degree 2) regression average"

// Project fits an ordinary least-squares line and a degree-2 polynomial over
// one level's history and averages their predictions across the horizon.
// Predictions are clamped so no year falls below the previous accepted value,
// seeded with the last historical observation. Keys of the returned map are
// year strings, values rounded salaries.
//
// With exactly two observations the quadratic system is rank-deficient, so
// the fit degenerates to the line alone rather than trusting a minimum-norm
// solution.
func Project(hist models.Series, horizon config.Horizon) (map[string]int, error) {
	years := hist.Years()
	if len(years) < 2 {
		return nil, ErrInsufficientHistory
	}

	// Normalize years against the first observation for numerical stability.
	base := years[0]
	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y - base)
		ys[i] = float64(hist[y])
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	poly, havePoly := fitQuadratic(xs, ys)

	out := make(map[string]int, horizon.End-horizon.Start+1)
	prev := ys[len(ys)-1]
	for year := horizon.Start; year <= horizon.End; year++ {
		offset := float64(year - base)
		linPred := intercept + slope*offset
		polyPred := linPred
		if havePoly {
			polyPred = poly[0] + poly[1]*offset + poly[2]*offset*offset
		}
		predicted := (polyPred + linPred) / 2

		// Salaries for a level do not decline in nominal terms over the
		// horizon; clamp dips up to the previous accepted value.
		if predicted < prev {
			predicted = prev
		}
		rounded := math.Round(predicted)
		out[strconv.Itoa(year)] = int(rounded)
		prev = rounded
	}
	return out, nil
}

// fitQuadratic solves the least-squares degree-2 fit. It reports false when
// the system is rank-deficient (fewer than three points) or the
// factorization fails.
func fitQuadratic(xs, ys []float64) ([3]float64, bool) {
	if len(xs) < 3 {
		return [3]float64{}, false
	}
	a := mat.NewDense(len(xs), 3, nil)
	for i, x := range xs {
		a.Set(i, 0, 1)
		a.Set(i, 1, x)
		a.Set(i, 2, x*x)
	}
	b := mat.NewVecDense(len(ys), ys)

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, b); err != nil {
		return [3]float64{}, false
	}
	return [3]float64{coef.AtVec(0), coef.AtVec(1), coef.AtVec(2)}, true
}

// HarmonizeGroup pulls lagging levels of one track up to the track's median
// growth. For every level with history, growth factor = final-year forecast /
// last known value; factors outside (0.2, 10) are discarded as artifacts.
// A level whose factor falls below the median of the survivors has its whole
// trajectory replaced by a straight line from the last known value to
// last*median at the horizon end, in equal fractional steps. Levels at or
// above the median are never pulled down.
func HarmonizeGroup(forecasts map[string]map[string]int, histories map[string]models.Series, prefix string, horizon config.Horizon) {
	finalKey := strconv.Itoa(horizon.End)

	type levelInfo struct {
		lastKnown float64
		predFinal float64
	}
	var factors []float64
	info := make(map[string]levelInfo)

	for level, fc := range forecasts {
		if len(level) == 0 || level[:1] != prefix {
			continue
		}
		hist := histories[level]
		_, last, ok := hist.LastKnown()
		if !ok {
			continue
		}
		lastKnown := float64(last)
		predFinal := lastKnown
		if v, ok := fc[finalKey]; ok {
			predFinal = float64(v)
		}
		if lastKnown > 0 {
			factor := predFinal / lastKnown
			if factor > 0.2 && factor < 10 {
				factors = append(factors, factor)
			}
		}
		info[level] = levelInfo{lastKnown: lastKnown, predFinal: predFinal}
	}
	if len(factors) == 0 {
		return
	}

	median := medianOf(factors)

	years := horizon.Years()
	n := len(years)
	for level, li := range info {
		target := li.lastKnown * median
		if li.predFinal >= target {
			continue
		}
		replacement := make(map[string]int, n)
		for idx, y := range years {
			frac := float64(idx+1) / float64(n)
			val := li.lastKnown + (target-li.lastKnown)*frac
			replacement[strconv.Itoa(y)] = int(math.Round(val))
		}
		forecasts[level] = replacement
	}
}

// medianOf sorts a copy and interpolates the midpoint, averaging the middle
// pair for even counts.
func medianOf(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil)
}
