package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QPC-github/bibxml-service/internal/relaton"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [dataset]",
	Short: "List indexed references",
	Long: `List references in a dataset, or list dataset names when no
dataset is given. Dataset names match case-insensitively.

Examples:
  bibxml list
  bibxml list ietf-rfcs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if len(args) == 0 {
		datasets, err := db.ListDatasets()
		if err != nil {
			exitWithError(ExitError, "listing datasets: %v", err)
		}
		if datasets == nil {
			datasets = []string{}
		}
		if humanOutput {
			for _, d := range datasets {
				fmt.Println(d)
			}
		} else {
			outputJSON(datasets)
		}
		return nil
	}

	refs, err := db.ListRefs(args[0])
	if err != nil {
		exitWithError(ExitError, "listing refs: %v", err)
	}

	if humanOutput {
		if len(refs) == 0 {
			fmt.Println("No references found")
			return nil
		}
		for _, ref := range refs {
			title := firstTitle(ref.Body)
			if title == "" {
				fmt.Println(ref.Ref)
			} else {
				fmt.Printf("%s  %s\n", ref.Ref, truncateString(title, ListTitleMaxLen))
			}
		}
	} else {
		outputJSON(refs)
	}

	return nil
}

// ListTitleMaxLen bounds titles in human-readable list output.
const ListTitleMaxLen = 70

// firstTitle extracts the first title content from a citation body.
func firstTitle(body relaton.Doc) string {
	titles := relaton.GetList(body, "title")
	if len(titles) == 0 {
		return ""
	}
	return relaton.GetString(titles[0], "content")
}
