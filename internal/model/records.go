package model

// Verdict is the tri-state classification of a metric value. Exempt marks
// records reported without a verdict.
type Verdict string

const (
	Good   Verdict = "GOOD"
	OK     Verdict = "OK"
	Fail   Verdict = "FAIL"
	Exempt Verdict = "EXEMPT"
)

// FanMetric is a fan-out (per module) or fan-in (per target) count.
type FanMetric struct {
	Module       string  `json:"module"`
	Dependencies int     `json:"dependencies"`
	LOC          int     `json:"loc,omitempty"`
	Verdict      Verdict `json:"verdict"`
}

// Hotspot is a module that exceeds both the dependency and LOC thresholds.
type Hotspot struct {
	Module       string `json:"module"`
	Dependencies int    `json:"dependencies"`
	LOC          int    `json:"loc"`
}

// IsolationMetric describes how much of a domain's outgoing edges leave it.
type IsolationMetric struct {
	Domain          string  `json:"domain"`
	InternalDeps    int     `json:"internalDeps"`
	ExternalDeps    int     `json:"externalDeps"`
	ExternalPercent float64 `json:"externalPercent"`
	Verdict         Verdict `json:"verdict"`
}

// ComponentMetric holds Martin's package metrics for a domain.
type ComponentMetric struct {
	Domain        string  `json:"domain"`
	Kind          Kind    `json:"kind"`
	AbstractFiles int     `json:"abstractFiles"`
	TotalFiles    int     `json:"totalFiles"`
	Abstractness  float64 `json:"abstractness"`
	Instability   float64 `json:"instability"`
	Distance      float64 `json:"distance"`
	Ca            int     `json:"ca"`
	Ce            int     `json:"ce"`
	Verdict       Verdict `json:"verdict"`
}

// SizeMetric holds the size share of a domain.
type SizeMetric struct {
	Domain         string  `json:"domain"`
	LOC            int     `json:"loc"`
	Files          int     `json:"files"`
	Percent        float64 `json:"percent"`
	ZScore         float64 `json:"zScore"`
	PercentVerdict Verdict `json:"percentVerdict"`
	ZVerdict       Verdict `json:"zVerdict"`
	Verdict        Verdict `json:"verdict"`
}

// ChangeAmpMetric holds per-domain change amplification.
type ChangeAmpMetric struct {
	Domain          string  `json:"domain"`
	Commits         int     `json:"commits"`
	TotalFiles      int     `json:"totalFiles"`
	AvgFilesChanged float64 `json:"avgFilesChanged"`
	MaxFilesChanged int     `json:"maxFilesChanged"`
	Verdict         Verdict `json:"verdict"`
}
