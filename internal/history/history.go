// Package history mines version-control history for change-coupling signal.
//
// Source hides the log format; Amplify only sees CommitChangeSets.
package history

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/phobologic/archfit/internal/domain"
	"github.com/phobologic/archfit/internal/model"
)

// DefaultLimit is the number of commits mined when none is configured.
const DefaultLimit = 100

// Source yields the change sets of the most recent commits.
type Source interface {
	Commits(ctx context.Context, limit int) ([]model.CommitChangeSet, error)
}

// GitLog mines `git log --name-only` in Dir.
type GitLog struct {
	Dir     string
	Timeout time.Duration // zero means no timeout
	Scheme  domain.Scheme
}

// Commits runs git log once and parses the whole output. Paths are relative
// to Dir, which may be a subdirectory of the work tree.
func (g GitLog) Commits(ctx context.Context, limit int) ([]model.CommitChangeSet, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	out, err := gitCmd(ctx, g.Dir, "log", "-n", strconv.Itoa(limit), "--name-only", "--relative", "--pretty=format:")
	if err != nil {
		return nil, &model.OpError{Op: "history.git_log", Kind: model.KindHistory, Path: g.Dir, Err: err}
	}
	return ParseNameOnly(out, g.Scheme), nil
}

func gitCmd(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return string(out), nil
}

// ParseNameOnly splits blank-line-delimited commit blocks and keeps the paths
// that are non-test source files under the scheme's root. Commits with no such path
// are dropped.
func ParseNameOnly(out string, s domain.Scheme) []model.CommitChangeSet {
	var (
		commits []model.CommitChangeSet
		block   []string
	)
	flush := func() {
		if len(block) > 0 {
			commits = append(commits, NewChangeSet(block, s))
		}
		block = nil
	}
	seen := make(map[string]struct{})
	for _, line := range strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			clear(seen)
			continue
		}
		if !s.IsSource(line) || s.IsTestFile(line) {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		block = append(block, line)
	}
	flush()
	return commits
}

// NewChangeSet groups files by domain. Files outside any domain stay in Files
// but touch no domain.
func NewChangeSet(files []string, s domain.Scheme) model.CommitChangeSet {
	cs := model.CommitChangeSet{
		Files:       append([]string(nil), files...),
		DomainFiles: make(map[string]int),
	}
	for _, f := range files {
		if name := s.Domain(f); name != "" {
			cs.DomainFiles[name]++
		}
	}
	for name := range cs.DomainFiles {
		cs.Domains = append(cs.Domains, name)
	}
	sort.Strings(cs.Domains)
	return cs
}
