package history

import (
	"github.com/phobologic/archfit/internal/classify"
	"github.com/phobologic/archfit/internal/model"
	"github.com/phobologic/archfit/internal/ranking"
)

// Amplify computes, per domain, how many files a qualifying commit touches
// on average and at most. Commits with one file or fewer carry no coupling
// signal and are skipped.
func Amplify(commits []model.CommitChangeSet, p classify.Profile) []model.ChangeAmpMetric {
	type acc struct{ commits, total, max int }
	byDomain := make(map[string]*acc)
	for _, c := range commits {
		if len(c.Files) <= 1 {
			continue
		}
		for _, name := range c.Domains {
			n := c.DomainFiles[name]
			a := byDomain[name]
			if a == nil {
				a = &acc{}
				byDomain[name] = a
			}
			a.commits++
			a.total += n
			if n > a.max {
				a.max = n
			}
		}
	}

	out := make([]model.ChangeAmpMetric, 0, len(byDomain))
	for name, a := range byDomain {
		avg := float64(a.total) / float64(a.commits)
		out = append(out, model.ChangeAmpMetric{
			Domain:          name,
			Commits:         a.commits,
			TotalFiles:      a.total,
			AvgFilesChanged: avg,
			MaxFilesChanged: a.max,
			Verdict:         p.ChangeAmp(avg, a.max),
		})
	}
	ranking.Descending(out,
		func(m model.ChangeAmpMetric) float64 { return m.AvgFilesChanged },
		func(m model.ChangeAmpMetric) string { return m.Domain })
	return out
}
