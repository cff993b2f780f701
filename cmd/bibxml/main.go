// Package main provides the bibxml CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/QPC-github/bibxml-service/internal/config"
	"github.com/QPC-github/bibxml-service/internal/index"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibxml",
	Short: "Indexed Relaton citation datasets with bibxml output",
	Long: `bibxml indexes Relaton citation datasets and serves lookups over them.

Datasets are JSONL files (one citation record per line) kept under the
repository's datasets directory; an ephemeral SQLite database provides
full-text search, structural containment search, doctype sampling, and
reference resolution in relaton or bibxml form. All commands output JSON
by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getRepoRoot returns the starting directory for repository discovery.
func getRepoRoot() (string, int) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}

	// Check BIBXML_ROOT environment variable first
	if root := os.Getenv("BIBXML_ROOT"); root != "" {
		cwd = root
	}

	return cwd, 0
}

// mustFindRepository locates the repository root or exits.
func mustFindRepository() string {
	root, exitCode := getRepoRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return repoRoot
}

// mustOpenDatabase opens the index database or exits.
func mustOpenDatabase(repoRoot string) *index.DB {
	db, err := index.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads the repository configuration or exits.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// exitForQueryError maps resolver errors to exit codes.
func exitForQueryError(err error) {
	switch {
	case index.IsNotFound(err):
		exitWithError(ExitNotFound, "%v", err)
	case index.IsAmbiguous(err):
		exitWithError(ExitAmbiguous, "%v", err)
	default:
		exitWithError(ExitError, "%v", err)
	}
}
