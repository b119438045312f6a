// Package report loads the dependency-graph and source-metrics JSON reports.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/phobologic/archfit/internal/model"
)

// Reports bundles both analyzer inputs.
type Reports struct {
	Graph   *model.Graph
	Metrics *model.SourceMetrics
}

// Load reads both reports concurrently. Either failure is returned.
func Load(graphPath, metricsPath string) (*Reports, error) {
	var (
		g errgroup.Group
		r Reports
	)
	g.Go(func() error {
		graph, err := LoadGraph(graphPath)
		r.Graph = graph
		return err
	})
	g.Go(func() error {
		metrics, err := LoadMetrics(metricsPath)
		r.Metrics = metrics
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadGraph reads a dependency-graph report.
func LoadGraph(path string) (*model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.OpError{Op: "report.load_graph", Kind: model.KindNotFound, Path: path, Err: err}
	}
	g, err := ParseGraph(data)
	if err != nil {
		return nil, &model.OpError{Op: "report.load_graph", Kind: model.KindInvalidReport, Path: path, Err: err}
	}
	return g, nil
}

// ParseGraph decodes a dependency-graph document.
func ParseGraph(data []byte) (*model.Graph, error) {
	var doc struct {
		Modules *[]model.Module `json:"modules"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Modules == nil {
		return nil, fmt.Errorf("missing \"modules\" array")
	}
	for i, m := range *doc.Modules {
		if m.Source == "" {
			return nil, fmt.Errorf("module %d: empty source", i)
		}
	}
	return &model.Graph{Modules: *doc.Modules}, nil
}

// LoadMetrics reads a source-metrics report.
func LoadMetrics(path string) (*model.SourceMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.OpError{Op: "report.load_metrics", Kind: model.KindNotFound, Path: path, Err: err}
	}
	m, err := ParseMetrics(data)
	if err != nil {
		return nil, &model.OpError{Op: "report.load_metrics", Kind: model.KindInvalidReport, Path: path, Err: err}
	}
	return m, nil
}

// ParseMetrics decodes a source-metrics document. The reserved SUM and
// header keys are not treated as files; SUM becomes the aggregate total.
func ParseMetrics(data []byte) (*model.SourceMetrics, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	sum, ok := raw[model.ReservedSum]
	if !ok {
		return nil, fmt.Errorf("missing %q record", model.ReservedSum)
	}

	m := &model.SourceMetrics{Files: make(map[string]model.FileMetric, len(raw))}
	if err := json.Unmarshal(sum, &m.Total); err != nil {
		return nil, fmt.Errorf("%s: %w", model.ReservedSum, err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == model.ReservedSum || k == model.ReservedHeader {
			continue
		}
		var fm model.FileMetric
		if err := json.Unmarshal(raw[k], &fm); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		m.Files[k] = fm
	}
	return m, nil
}
