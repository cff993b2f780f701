package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/QPC-github/bibxml-service/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new bibxml repository",
	Long: `Initialize a new bibxml repository in the current directory.

Creates:
  .bibxml/
  ├── config.yaml     # Default config
  └── cache/          # Derived index database (gitignored)
  datasets/           # Dataset JSONL files`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getRepoRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a bibxml repository")
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	cfg := &config.Config{}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	if err := os.MkdirAll(cfg.DatasetsPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating datasets directory: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized bibxml repository in %s\n", config.BibxmlPath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.BibxmlPath(root)})
	}

	return nil
}
