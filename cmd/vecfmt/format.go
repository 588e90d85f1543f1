package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/vecfmt/internal/compare"
	"github.com/TheMichaelB/vecfmt/internal/models"
	"github.com/TheMichaelB/vecfmt/internal/services/fixtures"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Normalize raw test vectors into one record per line",
	Long: `Format reads the raw vector dump, groups every --entries lines into one
record, keeps the text after " = " on labeled lines, drops line breaks,
dots and spaces, and writes one record per line to the output file.

With --check the output is compared to the reference file afterwards.`,
	Example: `  vecfmt format
  vecfmt format --input raw.txt --output formatted.txt --check=false
  vecfmt format --entries 6 --reference test_vectors.txt`,
	Args: cobra.NoArgs,
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().StringP("input", "i", "all_test_vectors.txt",
		"Raw copy-pasted vectors")
	formatCmd.Flags().StringP("output", "o", "formatted_text_vectors.txt",
		"Normalized output, truncated on every run")
	formatCmd.Flags().StringP("reference", "r", "similarity_check.txt",
		"Hand-edited reference used by --check")
	formatCmd.Flags().IntP("entries", "n", 4,
		"Raw lines per record")
	formatCmd.Flags().Bool("check", true,
		"Compare the output to the reference after formatting")
	formatCmd.Flags().Bool("echo", true,
		"Print every record as it is written")
}

func runFormat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if cfg.Format.Echo && !jsonOutput {
		service.SetEcho(func(r models.Record) {
			fmt.Fprintln(stdout, r.Value)
		})
	}

	res, err := service.Format(ctx, fixtures.Options{
		Input:     cfg.Paths.Input,
		Output:    cfg.Paths.Output,
		Reference: cfg.Paths.Reference,
		SelfCheck: cfg.Format.SelfCheck,
	})

	if jsonOutput {
		payload := map[string]interface{}{"success": err == nil}
		if res != nil {
			payload["format"] = res.Format
			if res.Check != nil {
				payload["check"] = checkPayload(res.Check)
			}
		}
		if err != nil {
			payload["error"] = err.Error()
		}
		printJSON(payload)
	} else {
		if res == nil {
			reportFormatError(err)
		} else {
			reportSelfCheckError(err)
		}
		if res != nil && res.Check != nil {
			printReport(res.Check, false)
		}
	}

	if !strictMode {
		return nil
	}
	if err != nil {
		return alreadyReported(err)
	}
	if res.Check != nil && !res.Check.OK() {
		return fmt.Errorf("%d of %d lines differ from %s",
			len(res.Check.Mismatches()), len(res.Check.Results), res.Check.Reference)
	}
	return nil
}

func reportFormatError(err error) {
	if err == nil {
		return
	}

	var rc *models.RecordCountError
	switch {
	case errors.As(err, &rc):
		printError("error due to lines in %s: %d lines is %g records of %d entries",
			cfg.Paths.Input, rc.Lines, rc.Records(), rc.Entries)
	case errors.Is(err, models.ErrFileAccess):
		printError("wrong file or file path: %v", err)
	default:
		printError("%v", err)
	}
}

func reportSelfCheckError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, fixtures.ErrNoReference) {
		printWarning("self check skipped: reference %s not found", cfg.Paths.Reference)
		return
	}
	printWarning("self check skipped: cannot read reference: %v", err)
}

func checkPayload(report *compare.Report) map[string]interface{} {
	payload := map[string]interface{}{
		"output":     report.Output,
		"reference":  report.Reference,
		"results":    report.Results,
		"successes":  report.Successes(),
		"mismatches": len(report.Mismatches()),
		"ok":         report.OK(),
	}
	if report.Err != nil {
		payload["error"] = report.Err.Error()
	}
	return payload
}
