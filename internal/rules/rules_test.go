package rules

import (
	"reflect"
	"testing"

	"github.com/phobologic/archfit/internal/config"
	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
)

func edge(from string, to ...string) model.Module {
	m := model.Module{Source: from}
	for _, t := range to {
		m.Dependencies = append(m.Dependencies, model.Dependency{Resolved: t})
	}
	return m
}

func TestCrossDomain(t *testing.T) {
	t.Parallel()

	g := &model.Graph{Modules: []model.Module{
		edge("src/domains/billing/use-cases/pay/execute.ts",
			"src/domains/billing/domain/invoice.ts",  // same domain
			"src/domains/orders/domain/order.ts",     // violation
			"src/domains/orders/public/order-api.ts", // public contract
			"src/generic-subdomains/mail/send.ts",    // generic subdomain
			"src/shared/logger.ts",                   // outside domains
			"node_modules/zod/index.js"),
		edge("src/generic-subdomains/mail/send.ts", "src/domains/orders/domain/order.ts"),
	}}

	got := CrossDomain(g, domain.DefaultScheme())
	if got.Rule != model.RuleCrossDomain {
		t.Errorf("Rule = %q", got.Rule)
	}
	if len(got.Violations) != 1 {
		t.Fatalf("violations = %+v, want 1", got.Violations)
	}
	v := got.Violations[0]
	if v.FromDomain != "billing" || v.ToDomain != "orders" || v.To != "src/domains/orders/domain/order.ts" {
		t.Errorf("violation = %+v", v)
	}
}

func TestLayering(t *testing.T) {
	t.Parallel()

	g := &model.Graph{Modules: []model.Module{
		edge("src/domains/billing/adapters/http/controller.ts",
			"src/domains/billing/use-cases/pay/execute.ts",
			"src/domains/billing/domain/invoice.ts"),
		edge("src/domains/billing/use-cases/pay/execute.ts",
			"src/domains/billing/domain/invoice.ts",
			"src/domains/billing/adapters/db/repo.ts"),
		edge("src/domains/billing/domain/invoice.ts",
			"src/domains/billing/adapters/db/repo.ts",
			"src/shared/money.ts"),
	}}

	got := Layering(g, domain.DefaultScheme())
	if len(got.Violations) != 2 {
		t.Fatalf("violations = %+v, want 2", got.Violations)
	}
	first := got.Violations[0]
	if first.FromLayer != "use-cases" || first.ToLayer != "adapters" {
		t.Errorf("first = %+v", first)
	}
	second := got.Violations[1]
	if second.FromLayer != "domain" || second.ToLayer != "adapters" || second.FromDomain != "billing" {
		t.Errorf("second = %+v", second)
	}
}

func TestNamespace(t *testing.T) {
	t.Parallel()

	files := []string{
		"src/main.ts",
		"src/domains/billing/domain/invoice.ts",
		"src/domain/stray.ts",
		"src/domain/other.ts",
		"src/helpers/strings.ts",
	}
	allowed := []string{"domains", "generic-subdomains", "shared", "infra", "config"}

	got := Namespace(files, domain.DefaultScheme(), allowed)
	if len(got.Violations) != 2 {
		t.Fatalf("violations = %+v, want 2", got.Violations)
	}
	d := got.Violations[0]
	if d.Namespace != "domain" || d.Path != "src/domain/stray.ts" {
		t.Errorf("first = %+v", d)
	}
	if d.Suggestion != "domains" {
		t.Errorf("Suggestion = %q, want domains", d.Suggestion)
	}
	h := got.Violations[1]
	if h.Namespace != "helpers" {
		t.Errorf("second = %+v", h)
	}
}

func TestRootFiles(t *testing.T) {
	t.Parallel()

	files := []string{
		"src/main.ts",
		"src/app.module.ts",
		"src/utils.ts",
		"src/README.md",
		"src/domains/billing/index.ts",
	}
	allowed := config.NewMatcher([]string{"/src/main.ts", "/src/app.module.ts"})

	got := RootFiles(files, domain.DefaultScheme(), allowed)
	if len(got.Violations) != 1 || got.Violations[0].Path != "src/utils.ts" {
		t.Errorf("violations = %+v, want src/utils.ts", got.Violations)
	}
}

func TestPortsAdaptersMissingPorts(t *testing.T) {
	t.Parallel()

	files := []string{
		"src/domains/billing/use-cases/pay/execute.ts",
		"src/domains/billing/adapters/http/controller.ts",
	}
	got := PortsAdapters(files, domain.DefaultScheme(), []string{"use-cases", "ports", "adapters"})
	if len(got.Violations) != 1 {
		t.Fatalf("violations = %+v, want 1", got.Violations)
	}
	v := got.Violations[0]
	if v.Domain != "billing" || !reflect.DeepEqual(v.MissingFolders, []string{"ports"}) {
		t.Errorf("violation = %+v, want billing missing [ports]", v)
	}
	if v.Path != "src/domains/billing" {
		t.Errorf("Path = %q", v.Path)
	}
}

func TestPortsAdaptersComplete(t *testing.T) {
	t.Parallel()

	files := []string{
		"src/domains/billing/use-cases/pay/execute.ts",
		"src/domains/billing/ports/invoice-repo.ts",
		"src/domains/billing/adapters/db/repo.ts",
		"src/domains/orders/index.ts",
		"src/generic-subdomains/mail/send.ts",
	}
	got := PortsAdapters(files, domain.DefaultScheme(), []string{"use-cases", "ports", "adapters"})
	if len(got.Violations) != 1 {
		t.Fatalf("violations = %+v, want only orders", got.Violations)
	}
	if v := got.Violations[0]; v.Domain != "orders" || len(v.MissingFolders) != 3 {
		t.Errorf("violation = %+v", v)
	}
}

func TestPortsAdaptersIgnoresLooseContainerFiles(t *testing.T) {
	t.Parallel()

	files := []string{
		"src/domains/index.ts",
		"src/domains/billing/use-cases/pay/execute.ts",
		"src/domains/billing/ports/repo.ts",
		"src/domains/billing/adapters/db.ts",
	}
	got := PortsAdapters(files, domain.DefaultScheme(), []string{"use-cases", "ports", "adapters"})
	if !got.Passed() {
		t.Errorf("violations = %+v, want none for a barrel file in the container", got.Violations)
	}
}

func TestUseCaseTests(t *testing.T) {
	t.Parallel()

	files := []string{
		"src/domains/billing/use-cases/pay/execute.ts",
		"src/domains/billing/use-cases/pay/execute.spec.ts",
		"src/domains/billing/use-cases/refund/execute.ts",
		"src/domains/billing/use-cases/cancel/execute.ts",
		"src/domains/billing/use-cases/cancel/execute.test.ts",
		"src/domains/billing/adapters/execute.ts",
	}
	got := UseCaseTests(files, domain.DefaultScheme())
	if len(got.Violations) != 1 {
		t.Fatalf("violations = %+v, want 1", got.Violations)
	}
	if v := got.Violations[0]; v.Path != "src/domains/billing/use-cases/refund" || v.Domain != "billing" {
		t.Errorf("violation = %+v", v)
	}
}

func TestAllReportsPassedRules(t *testing.T) {
	t.Parallel()

	in := Input{
		Graph:  &model.Graph{},
		Scheme: domain.DefaultScheme(),
		Files: []string{
			"src/main.ts",
			"src/domains/billing/use-cases/pay/execute.ts",
			"src/domains/billing/use-cases/pay/execute.spec.ts",
			"src/domains/billing/ports/repo.ts",
			"src/domains/billing/adapters/db.ts",
		},
		AllowedNamespaces: []string{"domains"},
		AllowedRootFiles:  config.NewMatcher([]string{"/src/main.ts"}),
		RequiredFolders:   []string{"use-cases", "ports", "adapters"},
	}

	results := All(in)
	if len(results) != 6 {
		t.Fatalf("results = %d, want 6", len(results))
	}
	for _, r := range results {
		if !r.Passed() {
			t.Errorf("%s: violations = %+v", r.Rule, r.Violations)
		}
		if r.Violations == nil {
			t.Errorf("%s: Violations is nil, want empty slice", r.Rule)
		}
	}
}
