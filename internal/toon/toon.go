// Package toon implements TOON (Token-Oriented Object Notation) encoding
// of an analysis.
package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/archfit/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts an Analysis into TOON format. Every record family is
// rendered as a table, empty ones included. Each rule gets its own table,
// or a "passed" line when it found nothing.
func Encode(a *model.Analysis) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("repo: %s", encodeValue(a.Repo)))
	parts = append(parts, fmt.Sprintf("profile: %s", encodeValue(a.Profile)))
	parts = append(parts, fmt.Sprintf("size_policy: %s", encodeValue(a.SizePolicy)))

	parts = append(parts, fanTable("fan_out", a.FanOut, true))
	parts = append(parts, fanTable("fan_in", a.FanIn, false))

	var hotRows [][]string
	for _, h := range a.Hotspots {
		hotRows = append(hotRows, []string{h.Module, itoa(h.Dependencies), itoa(h.LOC)})
	}
	parts = append(parts, formatTabular("hotspots", []string{"module", "dependencies", "loc"}, hotRows))

	var isoRows [][]string
	for _, m := range a.Isolation {
		isoRows = append(isoRows, []string{
			m.Domain,
			itoa(m.InternalDeps),
			itoa(m.ExternalDeps),
			ftoa(m.ExternalPercent),
			string(m.Verdict),
		})
	}
	parts = append(parts, formatTabular("isolation",
		[]string{"domain", "internal", "external", "external_percent", "verdict"}, isoRows))

	var compRows [][]string
	for _, m := range a.Components {
		compRows = append(compRows, []string{
			m.Domain,
			string(m.Kind),
			ftoa(m.Abstractness),
			ftoa(m.Instability),
			ftoa(m.Distance),
			itoa(m.Ca),
			itoa(m.Ce),
			string(m.Verdict),
		})
	}
	parts = append(parts, formatTabular("components",
		[]string{"domain", "kind", "abstractness", "instability", "distance", "ca", "ce", "verdict"}, compRows))

	var sizeRows [][]string
	for _, m := range a.Size {
		sizeRows = append(sizeRows, []string{
			m.Domain,
			itoa(m.LOC),
			itoa(m.Files),
			ftoa(m.Percent),
			ftoa(m.ZScore),
			string(m.PercentVerdict),
			string(m.ZVerdict),
			string(m.Verdict),
		})
	}
	parts = append(parts, fmt.Sprintf("size_stats: mean=%s stddev=%s", ftoa(a.SizeMean), ftoa(a.SizeStdDev)))
	parts = append(parts, formatTabular("size",
		[]string{"domain", "loc", "files", "percent", "z_score", "percent_verdict", "z_verdict", "verdict"}, sizeRows))

	var ampRows [][]string
	for _, m := range a.ChangeAmp {
		ampRows = append(ampRows, []string{
			m.Domain,
			itoa(m.Commits),
			ftoa(m.AvgFilesChanged),
			itoa(m.MaxFilesChanged),
			string(m.Verdict),
		})
	}
	parts = append(parts, formatTabular("change_amplification",
		[]string{"domain", "commits", "avg_files", "max_files", "verdict"}, ampRows))

	for _, r := range a.Rules {
		parts = append(parts, encodeRule(r))
	}

	if failed := a.Failed(); len(failed) > 0 {
		var rows [][]string
		for _, s := range failed {
			rows = append(rows, []string{s.Stage, s.Error})
		}
		parts = append(parts, formatTabular("failed_stages", []string{"stage", "error"}, rows))
	}

	return strings.Join(parts, "\n")
}

// fanTable renders fan records; withLOC adds the module's line count.
func fanTable(name string, ms []model.FanMetric, withLOC bool) string {
	cols := []string{"module", "dependencies", "verdict"}
	if withLOC {
		cols = []string{"module", "dependencies", "loc", "verdict"}
	}
	var rows [][]string
	for _, m := range ms {
		row := []string{m.Module, itoa(m.Dependencies), string(m.Verdict)}
		if withLOC {
			row = []string{m.Module, itoa(m.Dependencies), itoa(m.LOC), string(m.Verdict)}
		}
		rows = append(rows, row)
	}
	return formatTabular(name, cols, rows)
}

// ruleColumns are the violation fields shown per rule.
var ruleColumns = map[string][]string{
	model.RuleCrossDomain:   {"from", "to", "from_domain", "to_domain"},
	model.RuleLayering:      {"from", "to", "from_layer", "to_layer"},
	model.RuleNamespace:     {"namespace", "path", "suggestion"},
	model.RuleRootFiles:     {"path"},
	model.RulePortsAdapters: {"domain", "missing"},
	model.RuleUseCaseTests:  {"domain", "path"},
}

func encodeRule(r model.RuleResult) string {
	if r.Passed() {
		return fmt.Sprintf("%s: passed", r.Rule)
	}
	cols, ok := ruleColumns[r.Rule]
	if !ok {
		cols = []string{"from", "to", "path"}
	}
	rows := make([][]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = violationField(v, c)
		}
		rows = append(rows, row)
	}
	return formatTabular(r.Rule, cols, rows)
}

func violationField(v model.Violation, col string) string {
	switch col {
	case "from":
		return v.From
	case "to":
		return v.To
	case "from_domain":
		return v.FromDomain
	case "to_domain":
		return v.ToDomain
	case "from_layer":
		return v.FromLayer
	case "to_layer":
		return v.ToLayer
	case "namespace":
		return v.Namespace
	case "path":
		return v.Path
	case "suggestion":
		return v.Suggestion
	case "domain":
		return v.Domain
	case "missing":
		return strings.Join(v.MissingFolders, " ")
	}
	return ""
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 4, 64) }

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
