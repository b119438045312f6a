// Package classify maps metric values to GOOD/OK/FAIL verdicts using named
// threshold profiles.
package classify

import (
	"fmt"
	"sort"

	"github.com/phobologic/archfit/internal/model"
)

// Thresholds is an ascending pair: values <= Good are GOOD, values <= OK are
// OK, anything above OK is FAIL.
type Thresholds struct {
	Good float64 `yaml:"good" json:"good"`
	OK   float64 `yaml:"ok" json:"ok"`
}

// Classify returns the verdict for v.
func (t Thresholds) Classify(v float64) model.Verdict {
	switch {
	case v <= t.Good:
		return model.Good
	case v <= t.OK:
		return model.OK
	default:
		return model.Fail
	}
}

// Profile is a complete table of thresholds for every classified metric.
type Profile struct {
	Name        string
	FanOut      Thresholds
	FanIn       Thresholds
	Isolation   Thresholds
	Distance    Thresholds
	SizePercent Thresholds
	SizeZ       Thresholds
	ChangeAvg   Thresholds
	ChangeMax   Thresholds
}

var profiles = map[string]Profile{
	"standard": {
		Name:        "standard",
		FanOut:      Thresholds{Good: 10, OK: 20},
		FanIn:       Thresholds{Good: 10, OK: 20},
		Isolation:   Thresholds{Good: 0.10, OK: 0.25},
		Distance:    Thresholds{Good: 0.30, OK: 0.50},
		SizePercent: Thresholds{Good: 0.15, OK: 0.25},
		SizeZ:       Thresholds{Good: 1, OK: 2},
		ChangeAvg:   Thresholds{Good: 3, OK: 6},
		ChangeMax:   Thresholds{Good: 8, OK: 15},
	},
	"lenient": {
		Name:        "lenient",
		FanOut:      Thresholds{Good: 15, OK: 30},
		FanIn:       Thresholds{Good: 15, OK: 30},
		Isolation:   Thresholds{Good: 0.20, OK: 0.40},
		Distance:    Thresholds{Good: 0.40, OK: 0.70},
		SizePercent: Thresholds{Good: 0.25, OK: 0.40},
		SizeZ:       Thresholds{Good: 1.5, OK: 3},
		ChangeAvg:   Thresholds{Good: 5, OK: 10},
		ChangeMax:   Thresholds{Good: 12, OK: 25},
	},
}

// DefaultProfile is the profile used when none is configured.
const DefaultProfile = "standard"

// Lookup returns the named profile.
func Lookup(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown threshold profile %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names returns the registered profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ChangeAmp classifies average and maximum files changed per commit. The
// worse of the two verdicts wins, so one breach is enough to fail.
func (p Profile) ChangeAmp(avg float64, max int) model.Verdict {
	return Worst(p.ChangeAvg.Classify(avg), p.ChangeMax.Classify(float64(max)))
}

// Worst returns the most severe of the given verdicts. Exempt ranks below GOOD.
func Worst(verdicts ...model.Verdict) model.Verdict {
	worst := model.Exempt
	for _, v := range verdicts {
		if severity(v) > severity(worst) {
			worst = v
		}
	}
	return worst
}

func severity(v model.Verdict) int {
	switch v {
	case model.Good:
		return 1
	case model.OK:
		return 2
	case model.Fail:
		return 3
	}
	return 0
}
