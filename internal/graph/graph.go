// Package graph computes coupling over the dependency graph: module fan-out,
// target fan-in, hotspots and per-domain isolation.
package graph

import (
	"path"
	"strings"

	"github.com/phobologic/archfit/internal/classify"
	"github.com/phobologic/archfit/internal/model"
	"github.com/phobologic/archfit/internal/ranking"
)

// PathMatcher reports whether a path belongs to a configured set.
type PathMatcher interface {
	Match(path string) bool
}

// MatchFunc adapts a function to PathMatcher.
type MatchFunc func(string) bool

func (f MatchFunc) Match(p string) bool { return f(p) }

type noMatch struct{}

func (noMatch) Match(string) bool { return false }

// Options controls which edges count toward coupling.
type Options struct {
	// Ignore excludes dependency targets (vendor, barrels, persistence).
	Ignore PathMatcher
	// Exceptions lists targets expected to have high fan-in. They are
	// left out of fan-in and are never hotspots.
	Exceptions PathMatcher
	// SkipSource excludes whole source modules, e.g. tests.
	SkipSource PathMatcher
}

func (o Options) withDefaults() Options {
	if o.Ignore == nil {
		o.Ignore = noMatch{}
	}
	if o.Exceptions == nil {
		o.Exceptions = noMatch{}
	}
	if o.SkipSource == nil {
		o.SkipSource = noMatch{}
	}
	return o
}

// FanOut counts, per module, the dependency edges that are neither ignored
// nor point at the module's own entry point. Results are sorted by count
// descending, then path.
func FanOut(g *model.Graph, opts Options, th classify.Thresholds) []model.FanMetric {
	opts = opts.withDefaults()
	var out []model.FanMetric
	for _, m := range g.Modules {
		if opts.SkipSource.Match(m.Source) {
			continue
		}
		n := 0
		for _, d := range m.Dependencies {
			if countsAsEdge(m.Source, d.Resolved, opts) {
				n++
			}
		}
		out = append(out, model.FanMetric{
			Module:       m.Source,
			Dependencies: n,
			Verdict:      th.Classify(float64(n)),
		})
	}
	sortFan(out)
	return out
}

// FanIn counts, per dependency target, the distinct modules depending on it.
// Ignored targets and fan-in exceptions are left out.
func FanIn(g *model.Graph, opts Options, th classify.Thresholds) []model.FanMetric {
	opts = opts.withDefaults()
	dependents := make(map[string]map[string]struct{})
	for _, m := range g.Modules {
		if opts.SkipSource.Match(m.Source) {
			continue
		}
		for _, d := range m.Dependencies {
			if !countsAsEdge(m.Source, d.Resolved, opts) || opts.Exceptions.Match(d.Resolved) {
				continue
			}
			if dependents[d.Resolved] == nil {
				dependents[d.Resolved] = make(map[string]struct{})
			}
			dependents[d.Resolved][m.Source] = struct{}{}
		}
	}

	out := make([]model.FanMetric, 0, len(dependents))
	for target, srcs := range dependents {
		out = append(out, model.FanMetric{
			Module:       target,
			Dependencies: len(srcs),
			Verdict:      th.Classify(float64(len(srcs))),
		})
	}
	sortFan(out)
	return out
}

// Hotspots returns fan-out records that exceed both maxDeps and maxLOC and
// are not fan-in exceptions. Either condition alone is not reported.
func Hotspots(fanOut []model.FanMetric, metrics *model.SourceMetrics, opts Options, maxDeps, maxLOC int) []model.Hotspot {
	opts = opts.withDefaults()
	var out []model.Hotspot
	for _, f := range fanOut {
		loc := metrics.Code(f.Module)
		if f.Dependencies <= maxDeps || loc <= maxLOC || opts.Exceptions.Match(f.Module) {
			continue
		}
		out = append(out, model.Hotspot{Module: f.Module, Dependencies: f.Dependencies, LOC: loc})
	}
	ranking.Descending(out,
		func(h model.Hotspot) float64 { return float64(h.Dependencies) },
		func(h model.Hotspot) string { return h.Module })
	return out
}

// WithLOC fills the LOC field of fan records from the metrics report.
func WithLOC(recs []model.FanMetric, metrics *model.SourceMetrics) []model.FanMetric {
	out := make([]model.FanMetric, len(recs))
	for i, r := range recs {
		r.LOC = metrics.Code(r.Module)
		out[i] = r
	}
	return out
}

func countsAsEdge(source, target string, opts Options) bool {
	if target == "" || opts.Ignore.Match(target) {
		return false
	}
	return !isOwnEntryPoint(source, target)
}

// isOwnEntryPoint reports whether target is source itself or the index file
// of source's own folder.
func isOwnEntryPoint(source, target string) bool {
	if source == target {
		return true
	}
	if path.Dir(source) != path.Dir(target) {
		return false
	}
	base := path.Base(target)
	return strings.TrimSuffix(base, path.Ext(base)) == "index"
}

func sortFan(recs []model.FanMetric) {
	ranking.Descending(recs,
		func(f model.FanMetric) float64 { return float64(f.Dependencies) },
		func(f model.FanMetric) string { return f.Module })
}
