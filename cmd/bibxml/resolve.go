package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QPC-github/bibxml-service/internal/index"
)

var resolveFormat string

func init() {
	resolveCmd.Flags().StringVar(&resolveFormat, "format", string(index.FormatRelaton),
		"Projection of the resolved reference: relaton or bibxml")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <dataset> <ref>",
	Short: "Resolve a single reference",
	Long: `Resolve a single reference by dataset and reference identifier,
both matched case-insensitively.

With --format relaton (the default) the stored citation body is printed
as-is. With --format bibxml the pre-rendered bibxml XML string is
printed; a reference without a stored bibxml representation is reported
as not found.

Examples:
  bibxml resolve ietf-rfcs RFC1918
  bibxml resolve ietf-rfcs RFC1918 --format bibxml`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	res, err := db.GetRef(args[0], args[1], index.Format(resolveFormat))
	if err != nil {
		exitForQueryError(err)
	}

	if res.Format == index.FormatBibxml {
		// bibxml is already a serialized document; print it raw in both
		// output modes.
		fmt.Println(res.Bibxml)
		return nil
	}

	if humanOutput {
		if title := firstTitle(res.Body); title != "" {
			fmt.Printf("%s\n", title)
		}
	}
	return outputJSON(res.Body)
}
