package rules

import (
	"path"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
)

// Namespace reports every first-level folder below the source root that is
// not in allowed, once per namespace with the first offending file as
// evidence and the closest allowed name as a suggestion.
func Namespace(files []string, s domain.Scheme, allowed []string) model.RuleResult {
	ok := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		ok[a] = struct{}{}
	}

	first := make(map[string]string)
	for _, f := range files {
		ns := s.RootNamespace(f)
		if ns == "" {
			continue
		}
		if _, fine := ok[ns]; fine {
			continue
		}
		if _, seen := first[ns]; !seen {
			first[ns] = f
		}
	}

	var vs []model.Violation
	for _, ns := range sortedKeys(first) {
		vs = append(vs, model.Violation{
			Rule:       model.RuleNamespace,
			Namespace:  ns,
			Path:       first[ns],
			Suggestion: suggest(ns, allowed),
		})
	}
	return result(model.RuleNamespace, vs)
}

func suggest(ns string, allowed []string) string {
	matches := fuzzy.Find(ns, allowed)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// RootFiles reports source files placed directly in the source root unless
// allowed matches them.
func RootFiles(files []string, s domain.Scheme, allowed Matcher) model.RuleResult {
	var vs []model.Violation
	for _, f := range files {
		if !s.IsRootLevel(f) || !s.HasSourceExt(f) {
			continue
		}
		if allowed != nil && allowed.Match(f) {
			continue
		}
		vs = append(vs, model.Violation{Rule: model.RuleRootFiles, Path: f})
	}
	return result(model.RuleRootFiles, vs)
}

// PortsAdapters reports, once per core domain folder, the required
// top-level subfolders it lacks. Missing folders keep the order of
// required.
func PortsAdapters(files []string, s domain.Scheme, required []string) model.RuleResult {
	present := make(map[string]map[string]struct{})
	for _, f := range files {
		loc, ok := s.Locate(f)
		if !ok || loc.Container != domain.Domains {
			continue
		}
		sub := present[loc.Name]
		if sub == nil {
			sub = make(map[string]struct{})
			present[loc.Name] = sub
		}
		if dir, _, nested := strings.Cut(loc.Rest, "/"); nested {
			sub[dir] = struct{}{}
		}
	}

	var vs []model.Violation
	for _, name := range sortedKeys(present) {
		var missing []string
		for _, r := range required {
			if _, ok := present[name][r]; !ok {
				missing = append(missing, r)
			}
		}
		if len(missing) == 0 {
			continue
		}
		vs = append(vs, model.Violation{
			Rule:           model.RulePortsAdapters,
			Domain:         name,
			Path:           path.Join(s.Root, domain.Domains, name),
			MissingFolders: missing,
		})
	}
	return result(model.RulePortsAdapters, vs)
}

// executeStem is the base name, without extension, of a use-case entry point.
const executeStem = "execute"

// UseCaseTests reports use-case folders whose execute file has no sibling
// test named after it.
func UseCaseTests(files []string, s domain.Scheme) model.RuleResult {
	exists := make(map[string]struct{}, len(files))
	for _, f := range files {
		exists[f] = struct{}{}
	}

	var vs []model.Violation
	for _, f := range files {
		if s.IsTestFile(f) || !s.HasSourceExt(f) {
			continue
		}
		base := path.Base(f)
		if strings.TrimSuffix(base, path.Ext(base)) != executeStem {
			continue
		}
		loc, ok := s.Locate(f)
		if !ok || !underUseCases(loc.Rest) {
			continue
		}
		dir := path.Dir(f)
		if hasTest(exists, dir, s.TestSuffixes) {
			continue
		}
		vs = append(vs, model.Violation{
			Rule:   model.RuleUseCaseTests,
			Domain: loc.Name,
			Path:   dir,
		})
	}
	return result(model.RuleUseCaseTests, vs)
}

func underUseCases(rest string) bool {
	return strings.HasPrefix(rest, "use-cases/") || strings.Contains(rest, "/use-cases/")
}

func hasTest(exists map[string]struct{}, dir string, suffixes []string) bool {
	for _, suf := range suffixes {
		if _, ok := exists[path.Join(dir, executeStem+suf)]; ok {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
