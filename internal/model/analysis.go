package model

// StageStatus is the result of one pipeline stage.
type StageStatus string

const (
	StageOK     StageStatus = "ok"
	StageFailed StageStatus = "failed"
)

// StageOutcome records how a pipeline stage finished.
type StageOutcome struct {
	Stage   string      `json:"stage"`
	Status  StageStatus `json:"status"`
	Records int         `json:"records"`
	Error   string      `json:"error,omitempty"`
}

// Analysis is everything one run produced.
type Analysis struct {
	Repo       string `json:"repo"`
	Profile    string `json:"profile"`
	SizePolicy string `json:"sizePolicy"`

	FanOut     []FanMetric       `json:"fanOut"`
	FanIn      []FanMetric       `json:"fanIn"`
	Hotspots   []Hotspot         `json:"hotspots"`
	Isolation  []IsolationMetric `json:"isolation"`
	Components []ComponentMetric `json:"components"`
	Size       []SizeMetric      `json:"size"`
	SizeMean   float64           `json:"sizeMean"`
	SizeStdDev float64           `json:"sizeStdDev"`
	ChangeAmp  []ChangeAmpMetric `json:"changeAmplification"`
	Rules      []RuleResult      `json:"rules"`

	Stages []StageOutcome `json:"stages"`
}

// Failed returns the outcomes of stages that did not complete.
func (a *Analysis) Failed() []StageOutcome {
	var out []StageOutcome
	for _, s := range a.Stages {
		if s.Status == StageFailed {
			out = append(out, s)
		}
	}
	return out
}
