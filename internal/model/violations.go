package model

// Rule names.
const (
	RuleCrossDomain   = "cross-domain-calls"
	RuleLayering      = "layer-direction"
	RuleNamespace     = "root-namespace"
	RuleRootFiles     = "root-level-files"
	RulePortsAdapters = "ports-and-adapters"
	RuleUseCaseTests  = "use-case-tests"
)

// Violation is the evidence for one rule breach. Only the fields relevant to
// the rule are set.
type Violation struct {
	Rule           string   `json:"rule"`
	From           string   `json:"from,omitempty"`
	To             string   `json:"to,omitempty"`
	FromDomain     string   `json:"fromDomain,omitempty"`
	ToDomain       string   `json:"toDomain,omitempty"`
	FromLayer      string   `json:"fromLayer,omitempty"`
	ToLayer        string   `json:"toLayer,omitempty"`
	Path           string   `json:"path,omitempty"`
	Namespace      string   `json:"namespace,omitempty"`
	Suggestion     string   `json:"suggestion,omitempty"`
	Domain         string   `json:"domain,omitempty"`
	MissingFolders []string `json:"missingFolders,omitempty"`
}

// RuleResult is the outcome of one conformance rule.
type RuleResult struct {
	Rule       string      `json:"rule"`
	Violations []Violation `json:"violations"`
}

// Passed reports whether the rule found no violations.
func (r RuleResult) Passed() bool { return len(r.Violations) == 0 }
