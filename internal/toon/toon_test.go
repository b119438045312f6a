package toon

import (
	"strings"
	"testing"

	"github.com/phobologic/archfit/internal/model"
)

func TestEncodeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", `""`},
		{"simple", "hello", "hello"},
		{"leading space", " hello", `" hello"`},
		{"trailing space", "hello ", `"hello "`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"carriage return", "a\rb", `"a\rb"`},
		{"true keyword", "true", `"true"`},
		{"True keyword", "True", `"True"`},
		{"false keyword", "false", `"false"`},
		{"null keyword", "null", `"null"`},
		{"integer", "42", "42"},
		{"negative integer", "-1", "-1"},
		{"float", "3.14", "3.14"},
		{"zero", "0", "0"},
		{"leading zero invalid", "01", "01"},
		{"comma", "a,b", `"a,b"`},
		{"colon", "a:b", `"a:b"`},
		{"quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"bracket", "a[b", `"a[b"`},
		{"brace", "a{b", `"a{b"`},
		{"dash prefix", "-foo", `"-foo"`},
		{"path", "src/domains/billing/execute.ts", "src/domains/billing/execute.ts"},
		{"generic subdomain", "src/generic-subdomains/mail", "src/generic-subdomains/mail"},
		{"folder list", "ports adapters", "ports adapters"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := encodeValue(tt.in)
			if got != tt.want {
				t.Errorf("encodeValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	a := &model.Analysis{
		Repo:       "shop",
		Profile:    "standard",
		SizePolicy: "percent",
		FanOut: []model.FanMetric{
			{Module: "src/domains/billing/use-cases/pay/execute.ts", Dependencies: 12, LOC: 340, Verdict: model.OK},
		},
		Isolation: []model.IsolationMetric{
			{Domain: "billing", InternalDeps: 3, ExternalDeps: 1, ExternalPercent: 0.25, Verdict: model.OK},
		},
		Components: []model.ComponentMetric{
			{Domain: "billing", Kind: model.Core, Abstractness: 0.5, Instability: 0.25, Distance: 0.25, Ca: 3, Ce: 1, Verdict: model.Good},
		},
		Rules: []model.RuleResult{
			{Rule: model.RuleCrossDomain, Violations: []model.Violation{}},
			{Rule: model.RulePortsAdapters, Violations: []model.Violation{
				{Rule: model.RulePortsAdapters, Domain: "billing", MissingFolders: []string{"ports", "adapters"}},
			}},
			{Rule: model.RuleNamespace, Violations: []model.Violation{
				{Rule: model.RuleNamespace, Namespace: "domain", Path: "src/domain/x.ts", Suggestion: "domains"},
			}},
		},
	}

	got := Encode(a)
	lines := strings.Split(got, "\n")

	if lines[0] != "repo: shop" {
		t.Errorf("line 0: got %q", lines[0])
	}
	if lines[1] != "profile: standard" {
		t.Errorf("line 1: got %q", lines[1])
	}
	if lines[3] != "fan_out[1]{module,dependencies,loc,verdict}:" {
		t.Errorf("line 3: got %q", lines[3])
	}
	if lines[4] != "  src/domains/billing/use-cases/pay/execute.ts,12,340,OK" {
		t.Errorf("line 4: got %q", lines[4])
	}

	for _, want := range []string{
		"fan_in[0]{module,dependencies,verdict}:",
		"hotspots[0]{module,dependencies,loc}:",
		"isolation[1]{domain,internal,external,external_percent,verdict}:\n  billing,3,1,0.2500,OK",
		"components[1]{domain,kind,abstractness,instability,distance,ca,ce,verdict}:\n  billing,CORE,0.5000,0.2500,0.2500,3,1,GOOD",
		"size_stats: mean=0.0000 stddev=0.0000",
		"change_amplification[0]{domain,commits,avg_files,max_files,verdict}:",
		"cross-domain-calls: passed",
		"ports-and-adapters[1]{domain,missing}:\n  billing,ports adapters",
		"root-namespace[1]{namespace,path,suggestion}:\n  domain,src/domain/x.ts,domains",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "failed_stages") {
		t.Errorf("unexpected failed_stages section:\n%s", got)
	}
}

func TestEncodeFailedStages(t *testing.T) {
	t.Parallel()

	a := &model.Analysis{
		Repo: "shop",
		Stages: []model.StageOutcome{
			{Stage: "coupling", Status: model.StageOK, Records: 4},
			{Stage: "change-amplification", Status: model.StageFailed, Error: "git log: exit status 128"},
		},
	}

	got := Encode(a)
	want := "failed_stages[1]{stage,error}:\n  change-amplification,\"git log: exit status 128\""
	if !strings.Contains(got, want) {
		t.Errorf("expected %q in:\n%s", want, got)
	}
}
