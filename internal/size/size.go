// Package size aggregates lines of code per domain and derives each domain's
// share of the codebase and its z-score against the other domains.
package size

import (
	"math"
	"sort"

	"github.com/phobologic/archfit/internal/classify"
	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
	"github.com/phobologic/archfit/internal/ranking"
)

// Policy selects which verdict becomes the headline verdict of a record.
type Policy string

const (
	ByPercent Policy = "percent"
	ByZScore  Policy = "zscore"
)

// Stats are the population statistics of per-domain LOC.
type Stats struct {
	Mean   float64
	StdDev float64 // floored at 1
}

// Compute aggregates the source-metrics report per domain. Test files,
// files outside any domain and zero-code files are excluded. Both the
// percent and the z-score verdicts are filled; policy picks Verdict.
// Records are sorted by LOC, largest first.
func Compute(metrics *model.SourceMetrics, s domain.Scheme, p classify.Profile, policy Policy) ([]model.SizeMetric, Stats) {
	type acc struct{ loc, files int }
	byDomain := make(map[string]*acc)
	for path, fm := range metrics.Files {
		if fm.Code <= 0 || s.IsTestFile(path) {
			continue
		}
		name := s.Domain(path)
		if name == "" {
			continue
		}
		a := byDomain[name]
		if a == nil {
			a = &acc{}
			byDomain[name] = a
		}
		a.loc += fm.Code
		a.files++
	}

	locs := make([]float64, 0, len(byDomain))
	for _, a := range byDomain {
		locs = append(locs, float64(a.loc))
	}
	// Sorted so the sums do not depend on map order.
	sort.Float64s(locs)
	st := stats(locs)

	total := float64(metrics.Total.Code)
	out := make([]model.SizeMetric, 0, len(byDomain))
	for name, a := range byDomain {
		pct := 0.0
		if total > 0 {
			pct = float64(a.loc) / total
		}
		z := (float64(a.loc) - st.Mean) / st.StdDev
		rec := model.SizeMetric{
			Domain:         name,
			LOC:            a.loc,
			Files:          a.files,
			Percent:        pct,
			ZScore:         z,
			PercentVerdict: p.SizePercent.Classify(pct),
			ZVerdict:       p.SizeZ.Classify(math.Abs(z)),
		}
		rec.Verdict = rec.PercentVerdict
		if policy == ByZScore {
			rec.Verdict = rec.ZVerdict
		}
		out = append(out, rec)
	}
	ranking.Descending(out,
		func(m model.SizeMetric) float64 { return float64(m.LOC) },
		func(m model.SizeMetric) string { return m.Domain })
	return out, st
}

func stats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{StdDev: 1}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(len(values)))
	if sd < 1 {
		sd = 1
	}
	return Stats{Mean: mean, StdDev: sd}
}
