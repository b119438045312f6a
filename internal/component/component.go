// Package component computes Martin's component metrics per domain:
// abstractness, instability and distance from the main sequence.
package component

import (
	"math"
	"sort"

	"github.com/phobologic/archfit/internal/classify"
	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
	"github.com/phobologic/archfit/internal/ranking"
)

// Compute derives per-domain metrics. Files come from the source-metrics
// report (tests excluded); coupling comes from cross-domain graph edges.
// Only CORE domains get a verdict on distance.
func Compute(g *model.Graph, metrics *model.SourceMetrics, s domain.Scheme, roles RoleSource, th classify.Thresholds) []model.ComponentMetric {
	type acc struct {
		kind            model.Kind
		abstract, total int
		ca, ce          int
	}
	byDomain := make(map[string]*acc)
	get := func(p string) *acc {
		name := s.Domain(p)
		if name == "" {
			return nil
		}
		a := byDomain[name]
		if a == nil {
			a = &acc{kind: s.Kind(p)}
			byDomain[name] = a
		}
		return a
	}

	if metrics != nil {
		for _, p := range sortedFiles(metrics) {
			if s.IsTestFile(p) {
				continue
			}
			a := get(p)
			if a == nil {
				continue
			}
			a.total++
			if roles.Role(p) == Abstract {
				a.abstract++
			}
		}
	}

	for _, m := range g.Modules {
		from := s.Domain(m.Source)
		if from == "" {
			continue
		}
		for _, d := range m.Dependencies {
			to := s.Domain(d.Resolved)
			if to == "" || to == from {
				continue
			}
			get(m.Source).ce++
			get(d.Resolved).ca++
		}
	}

	out := make([]model.ComponentMetric, 0, len(byDomain))
	for name, a := range byDomain {
		abstractness := 0.0
		if a.total > 0 {
			abstractness = float64(a.abstract) / float64(a.total)
		}
		instability := 0.0
		if a.ca+a.ce > 0 {
			instability = float64(a.ce) / float64(a.ca+a.ce)
		}
		distance := math.Abs(abstractness + instability - 1)

		verdict := model.Exempt
		if a.kind == model.Core {
			verdict = th.Classify(distance)
		}
		out = append(out, model.ComponentMetric{
			Domain:        name,
			Kind:          a.kind,
			AbstractFiles: a.abstract,
			TotalFiles:    a.total,
			Abstractness:  abstractness,
			Instability:   instability,
			Distance:      distance,
			Ca:            a.ca,
			Ce:            a.ce,
			Verdict:       verdict,
		})
	}
	ranking.Descending(out,
		func(m model.ComponentMetric) float64 { return m.Distance },
		func(m model.ComponentMetric) string { return m.Domain })
	return out
}

func sortedFiles(metrics *model.SourceMetrics) []string {
	paths := make([]string, 0, len(metrics.Files))
	for p := range metrics.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
