package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QPC-github/bibxml-service/internal/index"
	"github.com/QPC-github/bibxml-service/internal/relaton"
)

var searchStructs []string

func init() {
	searchCmd.Flags().StringArrayVar(&searchStructs, "struct", nil,
		"JSON pattern for structural containment search (repeatable, OR semantics)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search citation records",
	Long: `Search citation records across all datasets.

A plain query searches the full text of citation bodies with websearch
syntax: quoted phrases, +term/-term, implicit AND, explicit OR. With
--struct, records are matched by JSON containment instead: a record
matches when its body recursively contains the pattern. Multiple --struct
patterns are OR'ed.

Examples:
  bibxml search "address allocation"
  bibxml search 'network -private'
  bibxml search --struct '{"docid":[{"type":"RFC"}]}'
  bibxml search --struct '{"docid":[{"type":"RFC"}]}' --struct '{"docid":[{"type":"ISO"}]}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	var refs []index.RefData
	var err error

	switch {
	case len(searchStructs) > 0:
		patterns := make([]relaton.Doc, 0, len(searchStructs))
		for _, s := range searchStructs {
			pattern, perr := relaton.ParseDoc([]byte(s))
			if perr != nil {
				exitWithError(ExitDataError, "invalid --struct pattern: %v", perr)
			}
			patterns = append(patterns, pattern)
		}
		refs, err = db.SearchStruct(patterns...)
	case len(args) == 1:
		refs, err = db.SearchText(args[0])
	default:
		exitWithError(ExitError, "a query or at least one --struct pattern is required")
	}

	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	// Empty result is not an error
	if refs == nil {
		refs = []index.RefData{}
	}

	if humanOutput {
		if len(refs) == 0 {
			fmt.Println("No references found")
			return nil
		}
		fmt.Printf("Found %d references:\n\n", len(refs))
		for i, ref := range refs {
			fmt.Printf("[%d] %s/%s\n", i+1, ref.Dataset, ref.Ref)
			if title := firstTitle(ref.Body); title != "" {
				fmt.Printf("    %s\n", truncateString(title, ListTitleMaxLen))
			}
		}
	} else {
		outputJSON(refs)
	}

	return nil
}
