// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/coursedoc/internal/convert"
	"github.com/pdiddy/coursedoc/internal/history"
	"github.com/pdiddy/coursedoc/internal/markdown"
	"github.com/pdiddy/coursedoc/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <document.docx>",
	Short: "Convert a single DOCX document to Markdown",
	Long: `Convert transforms one DOCX document into Markdown with a YAML
frontmatter header. Embedded images are written to images/ under the
output directory and referenced inline in document order.

Frontmatter fields come from flags (--title, --chapter, --section,
--objective) or the frontmatter section of the config file; unset fields
are omitted from the header. Extra fields are added with repeated
--meta key=value flags, preserving the given order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, force, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}
		req.InputPath = args[0]

		outcome := convert.ConvertDocument(req, force, os.Stdout)
		recordOutcome(outcome)

		if outcome.Status == types.ConversionFailed {
			return fmt.Errorf("conversion failed: %s", outcome.Err)
		}
		return nil
	},
}

func init() {
	addConversionFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

// addConversionFlags registers the flags shared by convert and batch.
func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output directory (default from config, else \"output\")")
	cmd.Flags().Bool("extract-images", true, "extract embedded images to images/")
	cmd.Flags().Bool("preserve-styles", false, "carry bold and italic runs into the output")
	cmd.Flags().Bool("force", false, "overwrite existing Markdown output")
	cmd.Flags().String("title", "", "frontmatter title (default: detected from the document)")
	cmd.Flags().String("section", "", "frontmatter section label")
	cmd.Flags().Int("chapter", 0, "frontmatter chapter number")
	cmd.Flags().StringArray("objective", nil, "learning objective (repeatable, ordered)")
	cmd.Flags().StringArray("meta", nil, "extra frontmatter field as key=value (repeatable, ordered)")
}

// requestFromFlags assembles a conversion request, with flags taking
// precedence over config file values.
func requestFromFlags(cmd *cobra.Command) (convert.Request, bool, error) {
	flags := cmd.Flags()

	outputDir, _ := flags.GetString("output")
	if outputDir == "" {
		outputDir = viper.GetString("conversion.output_dir")
	}
	extractImages := viper.GetBool("conversion.extract_images")
	if flags.Changed("extract-images") {
		extractImages, _ = flags.GetBool("extract-images")
	}
	preserveStyles := viper.GetBool("conversion.preserve_styles")
	if flags.Changed("preserve-styles") {
		preserveStyles, _ = flags.GetBool("preserve-styles")
	}
	force := viper.GetBool("conversion.force")
	if flags.Changed("force") {
		force, _ = flags.GetBool("force")
	}

	fm := types.FrontmatterConfig{
		Title:      viper.GetString("frontmatter.title"),
		Section:    viper.GetString("frontmatter.section"),
		Chapter:    viper.GetInt("frontmatter.chapter"),
		Objectives: viper.GetStringSlice("frontmatter.objectives"),
	}
	if v, _ := flags.GetString("title"); v != "" {
		fm.Title = v
	}
	if v, _ := flags.GetString("section"); v != "" {
		fm.Section = v
	}
	if v, _ := flags.GetInt("chapter"); v != 0 {
		fm.Chapter = v
	}
	if v, _ := flags.GetStringArray("objective"); len(v) > 0 {
		fm.Objectives = v
	}

	metas, _ := flags.GetStringArray("meta")
	extensions, err := parseMetaFlags(metas)
	if err != nil {
		return convert.Request{}, false, err
	}

	req := convert.Request{
		OutputDir:      outputDir,
		ExtractImages:  extractImages,
		PreserveStyles: preserveStyles,
		StyleMap:       viper.GetStringMapString("conversion.style_map"),
		Frontmatter:    fm,
		Extensions:     extensions,
	}
	return req, force, nil
}

// parseMetaFlags turns repeated key=value flags into ordered extension
// fields.
func parseMetaFlags(metas []string) ([]markdown.ExtensionField, error) {
	var fields []markdown.ExtensionField
	for _, m := range metas {
		key, value, ok := strings.Cut(m, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta %q: expected key=value", m)
		}
		fields = append(fields, markdown.ExtensionField{Key: key, Value: value})
	}
	return fields, nil
}

// recordOutcome appends the outcome to the history log. History is an
// audit aid; a logging failure warns but never fails the conversion.
func recordOutcome(outcome convert.Outcome) {
	store, err := history.NewStore(types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	entry := history.Entry{
		InputPath:   outcome.InputPath,
		OutputPath:  outcome.Result.OutputPath,
		Status:      outcome.Status,
		Images:      len(outcome.Result.Images),
		Warnings:    len(outcome.Result.Warnings),
		Err:         outcome.Err,
		ConvertedAt: outcome.Result.Meta.ConvertedAt,
	}
	if err := store.Record(entry); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording history: %v\n", err)
	}
}
