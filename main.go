// archfit reports architecture fitness metrics and conformance-rule
// violations for a domain-structured repository.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phobologic/archfit/internal/classify"
	"github.com/phobologic/archfit/internal/config"
	"github.com/phobologic/archfit/internal/logger"
	"github.com/phobologic/archfit/internal/model"
	"github.com/phobologic/archfit/internal/pipeline"
	"github.com/phobologic/archfit/internal/report"
	"github.com/phobologic/archfit/internal/toon"
)

var version = "dev"

// Output formats.
const (
	formatTOON = "toon"
	formatJSON = "json"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(context.Background())
}

type options struct {
	root       string
	configPath string
	depcruise  string
	cloc       string
	commits    int
	profile    string
	sizePolicy string
	format     string
	top        int
	noHistory  bool
	debug      bool
	logFile    string
}

func newRootCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:           "archfit",
		Short:         "Architecture fitness metrics for domain-structured repositories",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return analyze(cmd, o)
		},
	}
	cmd.SetVersionTemplate("archfit {{.Version}}\n")

	f := cmd.Flags()
	f.StringVar(&o.root, "root", ".", "repository root to analyze")
	f.StringVar(&o.configPath, "config", "", "config file (default <root>/"+config.FileName+")")
	f.StringVar(&o.depcruise, "depcruise", "", "dependency-graph report, relative to root")
	f.StringVar(&o.cloc, "cloc", "", "source-metrics report, relative to root")
	f.IntVar(&o.commits, "commits", 0, "number of commits to mine for change amplification")
	f.StringVar(&o.profile, "profile", "", "threshold profile (standard, lenient)")
	f.StringVar(&o.sizePolicy, "size-policy", "", "size verdict policy (percent, zscore)")
	f.StringVar(&o.format, "format", formatTOON, "output format (toon, json)")
	f.IntVar(&o.top, "top", 0, "number of fan-out and fan-in entries to report")
	f.BoolVar(&o.noHistory, "no-history", false, "skip version-control history mining")
	f.StringVar(&o.logFile, "log-file", "", "write JSON logs to this file instead of stderr")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newInitCmd())
	return cmd
}

func analyze(cmd *cobra.Command, o options) error {
	if o.format != formatTOON && o.format != formatJSON {
		return fmt.Errorf("unsupported format %q", o.format)
	}

	root, err := filepath.Abs(o.root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", root)
	}

	cfgPath := o.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.FileName)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, o, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	profile, err := classify.Lookup(cfg.Profile)
	if err != nil {
		return err
	}

	cleanup, err := logger.Setup(logger.Config{Out: cmd.ErrOrStderr(), File: o.logFile, Debug: o.debug})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() { _ = cleanup() }()
	log := logger.L()

	reports, err := report.Load(inRoot(root, cfg.Depcruise), inRoot(root, cfg.Cloc))
	if err != nil {
		return err
	}
	log.Debug("reports.loaded",
		"modules", len(reports.Graph.Modules),
		"files", len(reports.Metrics.Files))

	a := &model.Analysis{
		Repo:       filepath.Base(root),
		Profile:    profile.Name,
		SizePolicy: cfg.SizePolicy,
	}
	env := stageEnv{
		root:      root,
		cfg:       cfg,
		profile:   profile,
		reports:   reports,
		noHistory: o.noHistory,
	}
	a.Stages = pipeline.Runner{Log: log}.Run(cmd.Context(), env.stages(a))
	for _, s := range a.Failed() {
		log.Warn("analysis.incomplete", "stage", s.Stage, "err", s.Error)
	}

	return write(cmd.OutOrStdout(), a, o.format)
}

func applyFlags(cmd *cobra.Command, o options, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("depcruise") {
		cfg.Depcruise = o.depcruise
	}
	if f.Changed("cloc") {
		cfg.Cloc = o.cloc
	}
	if f.Changed("commits") {
		cfg.Commits = o.commits
	}
	if f.Changed("profile") {
		cfg.Profile = o.profile
	}
	if f.Changed("size-policy") {
		cfg.SizePolicy = o.sizePolicy
	}
	if f.Changed("top") {
		cfg.Top = o.top
	}
}

func inRoot(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func write(w io.Writer, a *model.Analysis, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	_, err := fmt.Fprintln(w, toon.Encode(a))
	return err
}
