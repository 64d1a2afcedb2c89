// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/coursedoc/pkg/types"
)

// Outcome records one document's fate within a batch run.
type Outcome struct {
	InputPath string
	Status    types.ConversionStatus
	Err       string
	Result    types.ConversionResult
}

// Discover returns the .docx files directly under dir, sorted by name.
// Word lock files ("~$...") are ignored.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".docx") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ConvertDocument converts one document, printing a status line to w. When
// force is false and the output already exists, the document is skipped.
func ConvertDocument(req Request, force bool, w io.Writer) Outcome {
	base := filepath.Base(req.InputPath)

	if !force {
		if _, err := os.Stat(req.OutputPath()); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return Outcome{InputPath: req.InputPath, Status: types.ConversionNone}
		}
	}

	result, err := Convert(req)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return Outcome{InputPath: req.InputPath, Status: types.ConversionFailed, Err: err.Error()}
	}

	fmt.Fprintf(w, "converted: %s (%d images, %d warnings)\n",
		base, len(result.Images), len(result.Warnings))
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	return Outcome{InputPath: req.InputPath, Status: types.ConversionDone, Result: result}
}

// ConvertBatch processes documents sequentially, isolating per-document
// failures: a failed document is tallied and does not affect its siblings
// (R4.2, R4.3). The summary tally is printed to w and returned alongside
// the per-document outcomes.
func ConvertBatch(base Request, paths []string, force bool, w io.Writer) (types.BatchSummary, []Outcome) {
	var summary types.BatchSummary
	outcomes := make([]Outcome, 0, len(paths))

	for _, p := range paths {
		req := base
		req.InputPath = p
		outcome := ConvertDocument(req, force, w)
		outcomes = append(outcomes, outcome)

		summary.Total++
		switch outcome.Status {
		case types.ConversionDone:
			summary.Successful++
		case types.ConversionNone:
			summary.Skipped++
		case types.ConversionFailed:
			summary.Failed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d, success rate: %s%%)\n",
		summary.Successful, summary.Skipped, summary.Failed, summary.Total, summary.SuccessRate())
	return summary, outcomes
}
