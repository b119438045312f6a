// Package domain maps repository paths to logical domains, domain kinds,
// root namespaces and architectural layers. Everything here is a pure
// function of the path string.
package domain

import (
	"path"
	"strings"

	"github.com/phobologic/archfit/internal/model"
)

// Domain containers directly under the source root.
const (
	Domains           = "domains"
	GenericSubdomains = "generic-subdomains"
)

// Location is where a path sits within the domain convention
// <root>/<container>/<name>/<rest>.
type Location struct {
	Container string
	Name      string
	Rest      string // path below the domain folder
}

// Scheme holds the path conventions of the analyzed repository.
type Scheme struct {
	Root         string
	Extensions   []string
	TestSuffixes []string
	InfraShared  []string
}

// DefaultScheme returns the conventional TypeScript layout under src/.
func DefaultScheme() Scheme {
	return Scheme{
		Root:         "src",
		Extensions:   []string{".ts"},
		TestSuffixes: []string{".spec.ts", ".test.ts"},
		InfraShared:  []string{"shared", "infra"},
	}
}

// Locate splits p into its domain location. ok is false when p does not
// follow the convention.
func (s Scheme) Locate(p string) (Location, bool) {
	segs := strings.Split(normalize(p), "/")
	// The domain name must be a folder, so at least one segment follows it.
	for i := 0; i+3 < len(segs); i++ {
		if segs[i] != s.Root {
			continue
		}
		c := segs[i+1]
		if c != Domains && c != GenericSubdomains {
			continue
		}
		if segs[i+2] == "" {
			return Location{}, false
		}
		return Location{
			Container: c,
			Name:      segs[i+2],
			Rest:      strings.Join(segs[i+3:], "/"),
		}, true
	}
	return Location{}, false
}

// Domain returns the domain name of p, or "" when p is outside every domain.
func (s Scheme) Domain(p string) string {
	loc, ok := s.Locate(p)
	if !ok {
		return ""
	}
	return loc.Name
}

// Kind returns the coarse kind of the domain that p belongs to.
func (s Scheme) Kind(p string) model.Kind {
	loc, ok := s.Locate(p)
	if !ok {
		return ""
	}
	if loc.Container == GenericSubdomains {
		return model.Utility
	}
	for _, name := range s.InfraShared {
		if loc.Name == name {
			return model.InfraShared
		}
	}
	return model.Core
}

// RootNamespace returns the first path segment below the source root, or ""
// when p is not below the root or sits directly in it.
func (s Scheme) RootNamespace(p string) string {
	rest, ok := s.underRoot(p)
	if !ok {
		return ""
	}
	ns, _, found := strings.Cut(rest, "/")
	if !found {
		return ""
	}
	return ns
}

// IsRootLevel reports whether p is a file directly inside the source root.
func (s Scheme) IsRootLevel(p string) bool {
	rest, ok := s.underRoot(p)
	return ok && rest != "" && !strings.Contains(rest, "/")
}

// IsTestFile reports whether p matches a test-file suffix.
func (s Scheme) IsTestFile(p string) bool {
	for _, suf := range s.TestSuffixes {
		if strings.HasSuffix(p, suf) {
			return true
		}
	}
	return false
}

// IsSource reports whether p is below the source root and has a tracked
// extension.
func (s Scheme) IsSource(p string) bool {
	if _, ok := s.underRoot(p); !ok {
		return false
	}
	return s.HasSourceExt(p)
}

// HasSourceExt reports whether p has one of the tracked extensions.
func (s Scheme) HasSourceExt(p string) bool {
	ext := path.Ext(p)
	for _, e := range s.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (s Scheme) underRoot(p string) (string, bool) {
	p = normalize(p)
	prefix := s.Root + "/"
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	return strings.TrimPrefix(p, prefix), true
}

func normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.TrimPrefix(p, "./")
}
