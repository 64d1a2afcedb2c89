// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements DOCX-to-Markdown conversion: the
// single-document pipeline (structural conversion, preprocessing,
// flattening, postprocessing, frontmatter) and batch orchestration over
// directories. Implements: prd001-conversion (R1-R5);
//
//	docs/ARCHITECTURE § Conversion.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/pdiddy/coursedoc/internal/docx"
	"github.com/pdiddy/coursedoc/internal/markdown"
	"github.com/pdiddy/coursedoc/pkg/types"
)

// imagesDirName is the subdirectory under the output directory for
// extracted image files.
const imagesDirName = "images"

// Request is the immutable input for one document conversion.
type Request struct {
	// InputPath is the source .docx file.
	InputPath string

	// OutputDir receives the Markdown file and the images/ subdirectory.
	OutputDir string

	// ExtractImages controls whether embedded images are captured and
	// persisted.
	ExtractImages bool

	// PreserveStyles carries bold and italic runs into the output.
	PreserveStyles bool

	// StyleMap extends the built-in style-name-to-tag mapping.
	StyleMap map[string]string

	// Frontmatter supplies recognized header fields; an empty Title is
	// resolved from the document itself.
	Frontmatter types.FrontmatterConfig

	// Extensions are extra frontmatter fields, emitted after the
	// recognized keys in the given order.
	Extensions []markdown.ExtensionField
}

// baseName returns the document base name, slugified for use in output
// file names.
func (r Request) baseName() string {
	base := strings.TrimSuffix(filepath.Base(r.InputPath), filepath.Ext(r.InputPath))
	return slug.Make(base)
}

// OutputPath returns where the converted Markdown will be written.
func (r Request) OutputPath() string {
	return filepath.Join(r.OutputDir, r.baseName()+".md")
}

// Convert runs the full pipeline for one document. Stages run strictly in
// sequence; each stage's output is the next stage's input. Conversion
// failures are fatal for the document; per-image persistence failures are
// recorded as warnings on the result instead (R3.3, R4.1).
func Convert(req Request) (types.ConversionResult, error) {
	var result types.ConversionResult

	if !strings.EqualFold(filepath.Ext(req.InputPath), ".docx") {
		return result, fmt.Errorf("unsupported input %s: expected a .docx file", req.InputPath)
	}
	payload, err := os.ReadFile(req.InputPath)
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", req.InputPath, err)
	}

	base := req.baseName()
	sink := NewImageSink(base, filepath.Join(req.OutputDir, imagesDirName))

	opts := docx.Options{
		Styles:         docx.NewStyleMap(req.StyleMap),
		PreserveStyles: req.PreserveStyles,
	}
	if req.ExtractImages {
		opts.Images = sink.Capture
	}

	markup, warnings, err := docx.Convert(payload, opts)
	if err != nil {
		return result, fmt.Errorf("converting %s: %w", filepath.Base(req.InputPath), err)
	}

	cleaned := markdown.Preprocess(markup)
	flattened, err := markdown.Flatten(cleaned)
	if err != nil {
		return result, fmt.Errorf("converting %s: %w", filepath.Base(req.InputPath), err)
	}
	body := markdown.Postprocess(flattened)

	title := markdown.ResolveTitle(req.Frontmatter.Title, body,
		strings.TrimSuffix(filepath.Base(req.InputPath), filepath.Ext(req.InputPath)))
	header, err := markdown.ComposeFrontmatter(markdown.FrontmatterFields{
		Title:      title,
		Section:    req.Frontmatter.Section,
		Chapter:    req.Frontmatter.Chapter,
		Objectives: req.Frontmatter.Objectives,
		Extensions: req.Extensions,
	})
	if err != nil {
		return result, fmt.Errorf("converting %s: %w", filepath.Base(req.InputPath), err)
	}

	outPath := req.OutputPath()
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory: %w", err)
	}
	final := header + body + "\n"
	if err := os.WriteFile(outPath, []byte(final), 0o644); err != nil {
		return result, fmt.Errorf("writing %s: %w", outPath, err)
	}

	warnings = append(warnings, persistImages(sink.Records())...)

	result = types.ConversionResult{
		Markdown:   final,
		InputPath:  req.InputPath,
		OutputPath: outPath,
		Images:     sink.Records(),
		Warnings:   warnings,
		Meta: types.ResultMeta{
			OriginalFilename: filepath.Base(req.InputPath),
			ConvertedAt:      time.Now().UTC(),
		},
	}
	return result, nil
}

// persistImages writes captured payloads to disk, best-effort per image. A
// failed write yields a warning; remaining images are still attempted so
// one bad image never invalidates the text conversion (R3.3).
func persistImages(records []types.ImageRecord) []string {
	if len(records) == 0 {
		return nil
	}
	var warnings []string
	if err := os.MkdirAll(filepath.Dir(records[0].Path), 0o755); err != nil {
		warnings = append(warnings, fmt.Sprintf("creating images directory: %v", err))
		return warnings
	}
	for _, rec := range records {
		if err := os.WriteFile(rec.Path, rec.Payload, 0o644); err != nil {
			warnings = append(warnings, fmt.Sprintf("writing image %s: %v", rec.Filename, err))
		}
	}
	return warnings
}
