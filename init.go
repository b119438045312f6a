package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phobologic/archfit/internal/config"
)

const configHeader = `# archfit configuration. Pattern lists use .gitignore syntax and match
# repository-relative paths. Run "archfit --help" for flag overrides.
`

func newInitCmd() *cobra.Command {
	var dryRun, force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default " + config.FileName,
		Long: `Write the built-in configuration to a file so it can be tuned.

path defaults to ./` + config.FileName + `. When path is a directory the file is
created inside it. An existing file is left alone unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(path, dryRun, force, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the config without writing it")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func runInit(path string, dryRun, force bool, stdout, stderr io.Writer) error {
	content, err := defaultConfig()
	if err != nil {
		return err
	}

	if dryRun {
		_, _ = fmt.Fprint(stdout, content)
		return nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, config.FileName)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote default config to %s\n", path)
	return nil
}

// defaultConfig renders the built-in configuration as a commented YAML file.
func defaultConfig() (string, error) {
	data, err := config.Default().Marshal()
	if err != nil {
		return "", fmt.Errorf("rendering default config: %w", err)
	}
	return configHeader + string(data), nil
}
