// Package model defines core data structures for archfit.
package model

// Kind is the coarse classification of a domain.
type Kind string

const (
	Core        Kind = "CORE"
	Utility     Kind = "UTILITY"
	InfraShared Kind = "INFRA_SHARED"
)

// Reserved keys of the source-metrics report.
const (
	ReservedSum    = "SUM"
	ReservedHeader = "header"
)

// Dependency is a single edge of the dependency graph.
type Dependency struct {
	Resolved string `json:"resolved"`
}

// Module is a source file and its outgoing dependency edges.
type Module struct {
	Source       string       `json:"source"`
	Dependencies []Dependency `json:"dependencies"`
}

// Graph is the dependency-graph report.
type Graph struct {
	Modules []Module `json:"modules"`
}

// FileMetric holds line counts for one file of the source-metrics report.
type FileMetric struct {
	Code    int `json:"code"`
	Comment int `json:"comment"`
	Blank   int `json:"blank"`
}

// SourceMetrics is the source-metrics report: per-file line counts plus the
// aggregate SUM record.
type SourceMetrics struct {
	Files map[string]FileMetric
	Total FileMetric
}

// Code returns the code line count for path, or 0 when the report has no entry.
func (s *SourceMetrics) Code(path string) int {
	if s == nil {
		return 0
	}
	return s.Files[path].Code
}

// CommitChangeSet is one mined commit restricted to in-scope source files.
type CommitChangeSet struct {
	Files       []string
	Domains     []string       // distinct domains touched, sorted
	DomainFiles map[string]int // domain -> files changed in this commit
}
