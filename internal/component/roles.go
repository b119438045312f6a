package component

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Role is the declared or inferred role of a source file.
type Role int

const (
	Unknown Role = iota
	Abstract
	Concrete
)

// RoleSource answers the role of a file, or Unknown when it has no opinion.
type RoleSource interface {
	Role(path string) Role
}

// Chain asks each source in order; the first answer wins. Files nobody
// claims are concrete.
type Chain []RoleSource

func (c Chain) Role(path string) Role {
	for _, src := range c {
		if r := src.Role(path); r != Unknown {
			return r
		}
	}
	return Concrete
}

// Matcher reports whether a path belongs to a configured set.
type Matcher interface {
	Match(path string) bool
}

// Declared assigns roles from configured path patterns.
type Declared struct {
	Abstract Matcher
	Concrete Matcher
}

func (d Declared) Role(path string) Role {
	switch {
	case d.Abstract != nil && d.Abstract.Match(path):
		return Abstract
	case d.Concrete != nil && d.Concrete.Match(path):
		return Concrete
	}
	return Unknown
}

// PortsFolder treats every file below a ports folder as abstract.
type PortsFolder struct{}

func (PortsFolder) Role(path string) Role {
	if strings.Contains("/"+filepath.ToSlash(path), "/ports/") {
		return Abstract
	}
	return Unknown
}

// roleTagLines bounds how far into a file the @role tag is looked for.
const roleTagLines = 20

var (
	roleTag    = regexp.MustCompile(`@role[:\s]+(abstract|concrete)\b`)
	abstractRe = regexp.MustCompile(`(?m)(^|\s)(interface\s+[A-Za-z_$]|abstract\s+class\s)`)
)

// Scanned holds what a content scan found: explicit @role tags near the top
// of each file and legacy interface/abstract-class markers anywhere in it.
type Scanned struct {
	tags    map[string]Role
	markers map[string]bool
}

// Tags returns the @role tag lookup.
func (s Scanned) Tags() RoleSource { return tagSource(s.tags) }

// Markers returns the text-marker lookup.
func (s Scanned) Markers() RoleSource { return markerSource(s.markers) }

type tagSource map[string]Role

func (t tagSource) Role(path string) Role { return t[path] }

type markerSource map[string]bool

func (m markerSource) Role(path string) Role {
	if m[path] {
		return Abstract
	}
	return Unknown
}

// Scan reads the given repository-relative files below root, at most
// workers at a time. Unreadable files are skipped. An empty root scans
// nothing.
func Scan(ctx context.Context, root string, paths []string, workers int) (Scanned, error) {
	type result struct {
		tag    Role
		marker bool
	}
	results := make([]result, len(paths))
	if root != "" {
		if workers < 1 {
			workers = 1
		}
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, p := range paths {
			i, p := i, p
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(p)))
				if err != nil {
					return nil
				}
				results[i] = result{tag: scanTag(data), marker: abstractRe.Match(data)}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Scanned{}, err
		}
	}

	s := Scanned{tags: make(map[string]Role), markers: make(map[string]bool)}
	for i, p := range paths {
		if results[i].tag != Unknown {
			s.tags[p] = results[i].tag
		}
		if results[i].marker {
			s.markers[p] = true
		}
	}
	return s, nil
}

func scanTag(data []byte) Role {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 0; n < roleTagLines && sc.Scan(); n++ {
		m := roleTag.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		if m[1] == "abstract" {
			return Abstract
		}
		return Concrete
	}
	return Unknown
}
