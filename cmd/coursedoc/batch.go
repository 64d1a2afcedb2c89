// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coursedoc/internal/convert"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input-dir>",
	Short: "Convert every DOCX document in a directory",
	Long: `Batch discovers .docx files in the input directory and converts them
one at a time. A document that fails conversion is recorded and does not
stop the run; the command always completes and prints a tally. The exit
status is non-zero when any document failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, force, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}

		paths, err := convert.Discover(args[0])
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no .docx files found in %s", args[0])
		}

		summary, outcomes := convert.ConvertBatch(req, paths, force, os.Stdout)
		for _, outcome := range outcomes {
			recordOutcome(outcome)
		}

		if summary.HasFailures() {
			return fmt.Errorf("batch completed with %d failed document(s)", summary.Failed)
		}
		return nil
	},
}

func init() {
	addConversionFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}
