// Package rules implements the structural conformance checks. Each rule is
// independent, reads only its inputs and returns a RuleResult that lists
// every violation found; an empty list means the rule passed.
package rules

import (
	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
)

// Matcher reports whether a path belongs to a configured set.
type Matcher interface {
	Match(path string) bool
}

// Input is everything the rules look at.
type Input struct {
	Graph  *model.Graph
	Files  []string // repository files below the source root
	Scheme domain.Scheme

	AllowedNamespaces []string
	AllowedRootFiles  Matcher
	RequiredFolders   []string
}

// All runs every rule in a fixed order.
func All(in Input) []model.RuleResult {
	return []model.RuleResult{
		CrossDomain(in.Graph, in.Scheme),
		Layering(in.Graph, in.Scheme),
		Namespace(in.Files, in.Scheme, in.AllowedNamespaces),
		RootFiles(in.Files, in.Scheme, in.AllowedRootFiles),
		PortsAdapters(in.Files, in.Scheme, in.RequiredFolders),
		UseCaseTests(in.Files, in.Scheme),
	}
}

func result(rule string, vs []model.Violation) model.RuleResult {
	if vs == nil {
		vs = []model.Violation{}
	}
	return model.RuleResult{Rule: rule, Violations: vs}
}
