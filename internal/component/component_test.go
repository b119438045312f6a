package component

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/phobologic/archfit/internal/classify"
	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
)

var distThresholds = classify.Thresholds{Good: 0.3, OK: 0.5}

func edges(source string, targets ...string) model.Module {
	m := model.Module{Source: source}
	for _, t := range targets {
		m.Dependencies = append(m.Dependencies, model.Dependency{Resolved: t})
	}
	return m
}

func files(paths ...string) *model.SourceMetrics {
	m := &model.SourceMetrics{Files: make(map[string]model.FileMetric)}
	for _, p := range paths {
		m.Files[p] = model.FileMetric{Code: 10}
		m.Total.Code += 10
	}
	return m
}

func find(t *testing.T, recs []model.ComponentMetric, name string) model.ComponentMetric {
	t.Helper()
	for _, r := range recs {
		if r.Domain == name {
			return r
		}
	}
	t.Fatalf("domain %q missing from %+v", name, recs)
	return model.ComponentMetric{}
}

func TestComputeScenario(t *testing.T) {
	t.Parallel()

	metrics := files(
		"src/domains/x/ports/repo.ts",
		"src/domains/x/ports/clock.ts",
		"src/domains/x/use-cases/pay/execute.ts",
		"src/domains/x/adapters/sql.ts",
		"src/domains/x/use-cases/pay/execute.spec.ts",
	)
	g := &model.Graph{Modules: []model.Module{
		edges("src/domains/x/adapters/sql.ts", "src/domains/y/a.ts", "src/domains/x/ports/repo.ts"),
		edges("src/domains/y/a.ts", "src/domains/x/ports/repo.ts"),
		edges("src/domains/y/b.ts", "src/domains/x/ports/clock.ts"),
		edges("src/domains/z/c.ts", "src/domains/x/ports/repo.ts", "src/shared/log.ts"),
	}}

	got := Compute(g, metrics, domain.DefaultScheme(), Chain{PortsFolder{}}, distThresholds)
	x := find(t, got, "x")
	if x.TotalFiles != 4 || x.AbstractFiles != 2 {
		t.Errorf("files = %d/%d, want 2/4 (test excluded)", x.AbstractFiles, x.TotalFiles)
	}
	if x.Abstractness != 0.5 {
		t.Errorf("A = %v, want 0.5", x.Abstractness)
	}
	if x.Ca != 3 || x.Ce != 1 {
		t.Errorf("Ca/Ce = %d/%d, want 3/1", x.Ca, x.Ce)
	}
	if x.Instability != 0.25 {
		t.Errorf("I = %v, want 0.25", x.Instability)
	}
	if x.Distance != 0.25 {
		t.Errorf("D = %v, want 0.25", x.Distance)
	}
	if x.Verdict != model.Good {
		t.Errorf("Verdict = %s, want GOOD", x.Verdict)
	}
}

func TestComputeBoundsAndExactDistance(t *testing.T) {
	t.Parallel()

	metrics := files(
		"src/domains/a/ports/p.ts", "src/domains/a/x.ts", "src/domains/a/y.ts",
		"src/domains/b/x.ts",
		"src/generic-subdomains/util/strings.ts",
	)
	g := &model.Graph{Modules: []model.Module{
		edges("src/domains/a/x.ts", "src/domains/b/x.ts", "src/generic-subdomains/util/strings.ts"),
		edges("src/domains/b/x.ts", "src/generic-subdomains/util/strings.ts", "src/domains/a/ports/p.ts"),
		edges("src/domains/c/only-graph.ts", "src/domains/a/x.ts"),
	}}

	for _, r := range Compute(g, metrics, domain.DefaultScheme(), Chain{PortsFolder{}}, distThresholds) {
		if r.Abstractness < 0 || r.Abstractness > 1 {
			t.Errorf("%s: A out of range: %v", r.Domain, r.Abstractness)
		}
		if r.Instability < 0 || r.Instability > 1 {
			t.Errorf("%s: I out of range: %v", r.Domain, r.Instability)
		}
		if r.Distance < 0 || r.Distance > 2 {
			t.Errorf("%s: D out of range: %v", r.Domain, r.Distance)
		}
		if r.Distance != math.Abs(r.Abstractness+r.Instability-1) {
			t.Errorf("%s: D = %v, want |A+I-1|", r.Domain, r.Distance)
		}
	}
}

func TestComputeExemptsNonCore(t *testing.T) {
	t.Parallel()

	metrics := files("src/generic-subdomains/util/a.ts", "src/domains/shared/b.ts", "src/domains/core/c.ts")
	got := Compute(&model.Graph{}, metrics, domain.DefaultScheme(), Chain{}, distThresholds)

	if v := find(t, got, "util"); v.Kind != model.Utility || v.Verdict != model.Exempt {
		t.Errorf("util = %s/%s", v.Kind, v.Verdict)
	}
	if v := find(t, got, "shared"); v.Kind != model.InfraShared || v.Verdict != model.Exempt {
		t.Errorf("shared = %s/%s", v.Kind, v.Verdict)
	}
	// A=0, I=0 gives D=1: the zone of pain.
	if v := find(t, got, "core"); v.Kind != model.Core || v.Verdict != model.Fail || v.Distance != 1 {
		t.Errorf("core = %+v", v)
	}
}

func TestComputeSortedAndIdempotent(t *testing.T) {
	t.Parallel()

	metrics := files("src/domains/a/ports/p.ts", "src/domains/b/x.ts", "src/domains/c/ports/q.ts", "src/domains/c/y.ts")
	g := &model.Graph{Modules: []model.Module{edges("src/domains/b/x.ts", "src/domains/a/ports/p.ts")}}
	s := domain.DefaultScheme()

	first := Compute(g, metrics, s, Chain{PortsFolder{}}, distThresholds)
	second := Compute(g, metrics, s, Chain{PortsFolder{}}, distThresholds)
	if !reflect.DeepEqual(first, second) {
		t.Error("Compute is not idempotent")
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Distance < first[i].Distance {
			t.Errorf("not sorted by distance: %+v", first)
		}
	}
}

func TestChainFirstAnswerWins(t *testing.T) {
	t.Parallel()

	declared := Declared{Concrete: matchPrefix("src/domains/a/ports/generated")}
	c := Chain{declared, PortsFolder{}}
	if got := c.Role("src/domains/a/ports/generated/client.ts"); got != Concrete {
		t.Errorf("declared concrete should override ports folder, got %v", got)
	}
	if got := c.Role("src/domains/a/ports/repo.ts"); got != Abstract {
		t.Errorf("ports folder = %v, want Abstract", got)
	}
	if got := c.Role("src/domains/a/x.ts"); got != Concrete {
		t.Errorf("unclaimed = %v, want Concrete", got)
	}
}

type matchPrefix string

func (m matchPrefix) Match(p string) bool { return strings.HasPrefix(p, string(m)) }
