package graph

import (
	"github.com/phobologic/archfit/internal/classify"
	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
	"github.com/phobologic/archfit/internal/ranking"
)

// Isolation partitions each domain's outgoing edges into internal (same
// domain) and external (another resolvable domain). Edges to paths outside
// every domain are not counted. Results are sorted by external percentage,
// highest leakage first.
func Isolation(g *model.Graph, s domain.Scheme, th classify.Thresholds) []model.IsolationMetric {
	type counts struct{ internal, external int }
	byDomain := make(map[string]*counts)

	for _, m := range g.Modules {
		from := s.Domain(m.Source)
		if from == "" {
			continue
		}
		c := byDomain[from]
		if c == nil {
			c = &counts{}
			byDomain[from] = c
		}
		for _, d := range m.Dependencies {
			to := s.Domain(d.Resolved)
			switch {
			case to == "":
			case to == from:
				c.internal++
			default:
				c.external++
			}
		}
	}

	out := make([]model.IsolationMetric, 0, len(byDomain))
	for name, c := range byDomain {
		denom := c.internal + c.external
		if denom < 1 {
			denom = 1
		}
		pct := float64(c.external) / float64(denom)
		out = append(out, model.IsolationMetric{
			Domain:          name,
			InternalDeps:    c.internal,
			ExternalDeps:    c.external,
			ExternalPercent: pct,
			Verdict:         th.Classify(pct),
		})
	}
	ranking.Descending(out,
		func(m model.IsolationMetric) float64 { return m.ExternalPercent },
		func(m model.IsolationMetric) string { return m.Domain })
	return out
}

// OutgoingEdges counts, per domain, the edges whose target lies in some
// domain.
func OutgoingEdges(g *model.Graph, s domain.Scheme) map[string]int {
	out := make(map[string]int)
	for _, m := range g.Modules {
		from := s.Domain(m.Source)
		if from == "" {
			continue
		}
		for _, d := range m.Dependencies {
			if s.Domain(d.Resolved) != "" {
				out[from]++
			}
		}
	}
	return out
}
