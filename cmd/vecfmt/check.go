package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/vecfmt/internal/compare"
	"github.com/TheMichaelB/vecfmt/internal/models"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare formatted vectors with the reference file",
	Long: `Check compares the formatted output with the hand-edited reference line
by line, for every output line, and prints one result per line. Mismatches
are reported but do not change the exit code unless --strict is set.`,
	Example: `  vecfmt check
  vecfmt check --output formatted.txt --reference test_vectors.txt --summary`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var checkSummary bool

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("output", "o", "formatted_text_vectors.txt",
		"Formatted file to check")
	checkCmd.Flags().StringP("reference", "r", "similarity_check.txt",
		"Hand-edited reference")
	checkCmd.Flags().BoolVar(&checkSummary, "summary", false,
		"Print a totals line after the per-line results")
}

func runCheck(cmd *cobra.Command, args []string) error {
	report, err := service.Check(cmd.Context(), cfg.Paths.Output, cfg.Paths.Reference)
	if err != nil {
		if jsonOutput {
			printJSON(map[string]interface{}{"success": false, "error": err.Error()})
		} else {
			printError("wrong file or file path: %v", err)
		}
		if strictMode {
			return alreadyReported(err)
		}
		return nil
	}

	if jsonOutput {
		printJSON(checkPayload(report))
	} else {
		printReport(report, checkSummary)
	}

	if strictMode && !report.OK() {
		if report.Err != nil {
			return alreadyReported(report.Err)
		}
		return fmt.Errorf("%d of %d lines differ from %s",
			len(report.Mismatches()), len(report.Results), report.Reference)
	}
	return nil
}

// printReport prints one diagnostic per compared line.
func printReport(report *compare.Report, summary bool) {
	for _, res := range report.Results {
		if res.Equal {
			printSuccess("[SUCCESS]")
			continue
		}
		printError("line number %d is not equal", res.Index)
		logger.WithFields(map[string]interface{}{
			"line": res.Index,
			"got":  res.Got,
			"want": res.Want,
		}).Debug("Line mismatch")
	}

	if report.Err != nil {
		printError("%s: %v", models.ErrShortReference, report.Err)
	}

	if summary {
		printInfo("%d lines checked, %d equal, %d differ",
			len(report.Results), report.Successes(), len(report.Mismatches()))
	}
}
