package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/QPC-github/bibxml-service/internal/dataset"
)

var importForce bool

func init() {
	importCmd.Flags().BoolVar(&importForce, "force", false, "Reimport even when dataset files are unchanged")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [dataset...]",
	Short: "Import dataset JSONL files into the index",
	Long: `Import dataset JSONL files into the index database.

With no arguments, imports every *.jsonl file in the datasets directory.
Unchanged datasets (by content hash) are skipped unless --force is given.

Examples:
  bibxml import
  bibxml import ietf-rfcs
  bibxml import --force`,
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	log := newCLILogger()

	names := args
	if len(names) == 0 {
		var err error
		names, err = listDatasetFiles(cfg.DatasetsPath(repoRoot))
		if err != nil {
			exitWithError(ExitError, "listing datasets: %v", err)
		}
		if len(names) == 0 {
			exitWithError(ExitDataError, "no dataset files found in %s", cfg.DatasetsPath(repoRoot))
		}
	}

	var results []dataset.ImportResult
	for _, name := range names {
		path := cfg.DatasetPath(repoRoot, name)
		if _, err := os.Stat(path); err != nil {
			exitWithError(ExitDataError, "dataset %s: %v", name, err)
		}

		res, err := dataset.Import(db, name, path, importForce, log)
		if err != nil {
			exitWithError(ExitDataError, "importing %s: %v", name, err)
		}
		results = append(results, *res)
	}

	if humanOutput {
		for _, r := range results {
			if r.Skipped {
				fmt.Printf("%s: unchanged, skipped\n", r.Dataset)
			} else {
				fmt.Printf("%s: %d records imported\n", r.Dataset, r.Records)
			}
		}
	} else {
		outputJSON(results)
	}

	return nil
}

// listDatasetFiles returns dataset names (file names without .jsonl) in a
// directory.
func listDatasetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".jsonl"))
	}
	return names, nil
}

// newCLILogger builds the ingestion logger; BIBXML_DEBUG enables debug
// output.
func newCLILogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv("BIBXML_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	if humanOutput {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
