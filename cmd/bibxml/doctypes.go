package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctypesCmd)
}

var doctypesCmd = &cobra.Command{
	Use:   "doctypes",
	Short: "List distinct document types",
	Long: `List every distinct docid type present across all indexed records,
with one sample document identifier per type. The sample is arbitrary.

Example:
  bibxml doctypes`,
	Args: cobra.NoArgs,
	RunE: runDoctypes,
}

func runDoctypes(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	samples, err := db.ListDoctypes()
	if err != nil {
		exitWithError(ExitError, "listing doctypes: %v", err)
	}

	if humanOutput {
		if len(samples) == 0 {
			fmt.Println("No doctypes found")
			return nil
		}
		for _, s := range samples {
			fmt.Printf("%-12s %s\n", s.Doctype, s.SampleID)
		}
	} else {
		outputJSON(samples)
	}

	return nil
}
