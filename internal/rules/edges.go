package rules

import (
	"strings"

	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
)

// CrossDomain flags edges from one core domain into another. Targets below
// the other domain's public folder are its published contract and allowed.
// Edges into generic subdomains never match because those live outside the
// domains container.
func CrossDomain(g *model.Graph, s domain.Scheme) model.RuleResult {
	var vs []model.Violation
	for _, m := range modules(g) {
		from, ok := s.Locate(m.Source)
		if !ok || from.Container != domain.Domains {
			continue
		}
		for _, d := range m.Dependencies {
			to, ok := s.Locate(d.Resolved)
			if !ok || to.Container != domain.Domains || to.Name == from.Name {
				continue
			}
			if isPublic(to.Rest) {
				continue
			}
			vs = append(vs, model.Violation{
				Rule:       model.RuleCrossDomain,
				From:       m.Source,
				To:         d.Resolved,
				FromDomain: from.Name,
				ToDomain:   to.Name,
			})
		}
	}
	return result(model.RuleCrossDomain, vs)
}

func isPublic(rest string) bool {
	return strings.HasPrefix(rest, "public/") || strings.Contains(rest, "/public/")
}

// Layering flags edges whose source layer rank exceeds the target layer
// rank, e.g. domain code importing an adapter. Paths without a layer are
// skipped.
func Layering(g *model.Graph, s domain.Scheme) model.RuleResult {
	var vs []model.Violation
	for _, m := range modules(g) {
		from, ok := s.Layer(m.Source)
		if !ok {
			continue
		}
		for _, d := range m.Dependencies {
			to, ok := s.Layer(d.Resolved)
			if !ok || from <= to {
				continue
			}
			vs = append(vs, model.Violation{
				Rule:       model.RuleLayering,
				From:       m.Source,
				To:         d.Resolved,
				FromDomain: s.Domain(m.Source),
				ToDomain:   s.Domain(d.Resolved),
				FromLayer:  from.String(),
				ToLayer:    to.String(),
			})
		}
	}
	return result(model.RuleLayering, vs)
}

func modules(g *model.Graph) []model.Module {
	if g == nil {
		return nil
	}
	return g.Modules
}
