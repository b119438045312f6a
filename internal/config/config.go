// Package config loads archfit settings from .archfit.yaml.
//
// Every pattern list uses gitignore syntax and is matched against
// repository-relative, forward-slash paths.
package config

import (
	"fmt"
	"os"
	"time"

	ignore "github.com/sabhiram/go-gitignore"
	"gopkg.in/yaml.v3"

	"github.com/phobologic/archfit/internal/classify"
	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
)

// FileName is the conventional config file name at the repository root.
const FileName = ".archfit.yaml"

// Size policies.
const (
	SizePercent = "percent"
	SizeZScore  = "zscore"
)

// Config holds all analyzer settings.
type Config struct {
	Depcruise  string        `yaml:"depcruise"`
	Cloc       string        `yaml:"cloc"`
	Commits    int           `yaml:"commits"`
	GitTimeout time.Duration `yaml:"git_timeout"`
	Profile    string        `yaml:"profile"`
	SizePolicy string        `yaml:"size_policy"`
	Top        int           `yaml:"top"`

	SourceRoot         string   `yaml:"source_root"`
	SourceExtensions   []string `yaml:"source_extensions"`
	TestSuffixes       []string `yaml:"test_suffixes"`
	InfraSharedDomains []string `yaml:"infra_shared_domains"`

	// ExcludeTestModules drops test files as sources of coupling edges.
	ExcludeTestModules bool `yaml:"exclude_test_modules"`

	Ignore            []string `yaml:"ignore"`
	FanInExceptions   []string `yaml:"fan_in_exceptions"`
	AllowedNamespaces []string `yaml:"allowed_namespaces"`
	AllowedRootFiles  []string `yaml:"allowed_root_files"`
	RequiredFolders   []string `yaml:"required_folders"`

	Roles   Roles   `yaml:"roles"`
	Hotspot Hotspot `yaml:"hotspot"`
}

// Roles declares file roles explicitly instead of relying on text markers.
type Roles struct {
	Abstract []string `yaml:"abstract"`
	Concrete []string `yaml:"concrete"`
}

// Hotspot thresholds: a module must exceed both to be reported.
type Hotspot struct {
	Dependencies int `yaml:"dependencies"`
	LOC          int `yaml:"loc"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Depcruise:          "depcruise.json",
		Cloc:               "cloc.json",
		Commits:            100,
		Profile:            classify.DefaultProfile,
		SizePolicy:         SizePercent,
		Top:                10,
		SourceRoot:         "src",
		SourceExtensions:   []string{".ts"},
		TestSuffixes:       []string{".spec.ts", ".test.ts"},
		InfraSharedDomains: []string{"shared", "infra"},
		Ignore: []string{
			"node_modules/",
			"index.ts",
			"persistence/",
			"prisma/",
		},
		FanInExceptions: []string{
			"src/shared/",
			"src/generic-subdomains/",
			"src/infra/database/",
		},
		AllowedNamespaces: []string{"domains", "generic-subdomains", "shared", "infra", "config"},
		AllowedRootFiles:  []string{"/src/main.ts", "/src/app.module.ts"},
		RequiredFolders:   []string{"use-cases", "ports", "adapters"},
		Hotspot:           Hotspot{Dependencies: 15, LOC: 300},
	}
}

// Load reads the config file at path on top of Default. A missing file is
// not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, &model.OpError{Op: "config.load", Kind: model.KindNotFound, Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &model.OpError{Op: "config.load", Kind: model.KindInvalidConfig, Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &model.OpError{Op: "config.load", Kind: model.KindInvalidConfig, Path: path, Err: err}
	}
	return cfg, nil
}

// Validate checks field values that have a closed set of options.
func (c *Config) Validate() error {
	if _, err := classify.Lookup(c.Profile); err != nil {
		return err
	}
	switch c.SizePolicy {
	case SizePercent, SizeZScore:
	default:
		return fmt.Errorf("size_policy must be %q or %q, got %q", SizePercent, SizeZScore, c.SizePolicy)
	}
	if c.Commits < 0 {
		return fmt.Errorf("commits must not be negative, got %d", c.Commits)
	}
	if c.SourceRoot == "" {
		return fmt.Errorf("source_root must not be empty")
	}
	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Matcher reports whether a path matches one of a set of patterns. The zero
// value matches nothing.
type Matcher struct {
	gi *ignore.GitIgnore
}

// NewMatcher compiles gitignore-style patterns.
func NewMatcher(patterns []string) Matcher {
	if len(patterns) == 0 {
		return Matcher{}
	}
	return Matcher{gi: ignore.CompileIgnoreLines(patterns...)}
}

// Match reports whether path matches any pattern.
func (m Matcher) Match(path string) bool {
	if m.gi == nil {
		return false
	}
	return m.gi.MatchesPath(path)
}

// Scheme returns the path conventions described by the config.
func (c *Config) Scheme() domain.Scheme {
	return domain.Scheme{
		Root:         c.SourceRoot,
		Extensions:   c.SourceExtensions,
		TestSuffixes: c.TestSuffixes,
		InfraShared:  c.InfraSharedDomains,
	}
}
