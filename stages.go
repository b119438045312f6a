package main

import (
	"context"
	"runtime"
	"sort"

	"github.com/phobologic/archfit/internal/classify"
	"github.com/phobologic/archfit/internal/component"
	"github.com/phobologic/archfit/internal/config"
	"github.com/phobologic/archfit/internal/discover"
	"github.com/phobologic/archfit/internal/graph"
	"github.com/phobologic/archfit/internal/history"
	"github.com/phobologic/archfit/internal/model"
	"github.com/phobologic/archfit/internal/pipeline"
	"github.com/phobologic/archfit/internal/ranking"
	"github.com/phobologic/archfit/internal/report"
	"github.com/phobologic/archfit/internal/rules"
	"github.com/phobologic/archfit/internal/size"
)

// Stage names.
const (
	stageCoupling   = "coupling"
	stageIsolation  = "isolation"
	stageComponents = "components"
	stageSize       = "size"
	stageChangeAmp  = "change-amplification"
	stageRules      = "rules"
)

type stageEnv struct {
	root      string
	cfg       *config.Config
	profile   classify.Profile
	reports   *report.Reports
	noHistory bool
}

// stages returns the analysis stages, each writing its records into a.
func (e stageEnv) stages(a *model.Analysis) []pipeline.Stage {
	scheme := e.cfg.Scheme()
	g, metrics := e.reports.Graph, e.reports.Metrics

	out := []pipeline.Stage{
		{Name: stageCoupling, Run: func(context.Context) (int, error) {
			opts := graph.Options{
				Ignore:     config.NewMatcher(e.cfg.Ignore),
				Exceptions: config.NewMatcher(e.cfg.FanInExceptions),
			}
			if e.cfg.ExcludeTestModules {
				opts.SkipSource = graph.MatchFunc(scheme.IsTestFile)
			}
			fanOut := graph.FanOut(g, opts, e.profile.FanOut)
			fanIn := graph.FanIn(g, opts, e.profile.FanIn)
			a.Hotspots = graph.Hotspots(fanOut, metrics, opts, e.cfg.Hotspot.Dependencies, e.cfg.Hotspot.LOC)
			a.FanOut = ranking.Top(graph.WithLOC(fanOut, metrics), e.cfg.Top)
			a.FanIn = ranking.Top(fanIn, e.cfg.Top)
			return len(a.FanOut) + len(a.FanIn) + len(a.Hotspots), nil
		}},
		{Name: stageIsolation, Run: func(context.Context) (int, error) {
			a.Isolation = graph.Isolation(g, scheme, e.profile.Isolation)
			return len(a.Isolation), nil
		}},
		{Name: stageComponents, Run: func(ctx context.Context) (int, error) {
			scanned, err := component.Scan(ctx, e.root, domainFiles(metrics, e.cfg), runtime.GOMAXPROCS(0))
			if err != nil {
				return 0, err
			}
			roles := component.Chain{
				component.Declared{
					Abstract: config.NewMatcher(e.cfg.Roles.Abstract),
					Concrete: config.NewMatcher(e.cfg.Roles.Concrete),
				},
				scanned.Tags(),
				component.PortsFolder{},
				scanned.Markers(),
			}
			a.Components = component.Compute(g, metrics, scheme, roles, e.profile.Distance)
			return len(a.Components), nil
		}},
		{Name: stageSize, Run: func(context.Context) (int, error) {
			recs, st := size.Compute(metrics, scheme, e.profile, size.Policy(e.cfg.SizePolicy))
			a.Size, a.SizeMean, a.SizeStdDev = recs, st.Mean, st.StdDev
			return len(a.Size), nil
		}},
	}

	if !e.noHistory {
		out = append(out, pipeline.Stage{Name: stageChangeAmp, Run: func(ctx context.Context) (int, error) {
			src := history.GitLog{Dir: e.root, Timeout: e.cfg.GitTimeout, Scheme: scheme}
			commits, err := src.Commits(ctx, e.cfg.Commits)
			if err != nil {
				return 0, err
			}
			a.ChangeAmp = history.Amplify(commits, e.profile)
			return len(a.ChangeAmp), nil
		}})
	}

	out = append(out, pipeline.Stage{Name: stageRules, Run: func(context.Context) (int, error) {
		files, err := discover.Files(e.root, e.cfg.SourceRoot)
		if err != nil {
			return 0, err
		}
		a.Rules = rules.All(rules.Input{
			Graph:             g,
			Files:             files,
			Scheme:            scheme,
			AllowedNamespaces: e.cfg.AllowedNamespaces,
			AllowedRootFiles:  config.NewMatcher(e.cfg.AllowedRootFiles),
			RequiredFolders:   e.cfg.RequiredFolders,
		})
		n := 0
		for _, r := range a.Rules {
			n += len(r.Violations)
		}
		return n, nil
	}})
	return out
}

// domainFiles lists the non-test files of the metrics report that belong
// to a domain, sorted. Only these are read for role markers.
func domainFiles(metrics *model.SourceMetrics, cfg *config.Config) []string {
	scheme := cfg.Scheme()
	var out []string
	for p := range metrics.Files {
		if scheme.Domain(p) == "" || scheme.IsTestFile(p) {
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
