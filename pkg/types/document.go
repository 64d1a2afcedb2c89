// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// ConversionStatus indicates the outcome of a document conversion.
// Per prd001-conversion R4.4.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// ImageRecord describes one image extracted from a document. Ordinals are
// 1-based, dense, and assigned in document-encounter order; an ordinal is
// never reused within a conversion even if persisting its payload fails.
type ImageRecord struct {
	// Ordinal is the image's position in document-encounter order.
	Ordinal int `json:"ordinal" yaml:"ordinal"`

	// Filename is the target file name, derived as
	// {documentBaseName}-image-{ordinal}.{subtype}.
	Filename string `json:"filename" yaml:"filename"`

	// Path is the target path under the output directory's images/
	// subdirectory.
	Path string `json:"path" yaml:"path"`

	// Placeholder is the inline Markdown reference embedded at the
	// image's original position.
	Placeholder string `json:"placeholder" yaml:"placeholder"`

	// Payload holds the image bytes until the orchestrator persists them.
	Payload []byte `json:"-" yaml:"-"`
}

// ResultMeta carries provenance for a conversion result.
type ResultMeta struct {
	// OriginalFilename is the base name of the source document.
	OriginalFilename string `json:"original_filename" yaml:"original_filename"`

	// ConvertedAt is the conversion timestamp (RFC 3339, UTC).
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}

// ConversionResult is the immutable outcome of one document conversion.
type ConversionResult struct {
	// Markdown is the final text, frontmatter included.
	Markdown string `json:"-" yaml:"-"`

	// InputPath is the source document path.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is where the Markdown was written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Images lists extracted images in document order; empty when
	// extraction is disabled.
	Images []ImageRecord `json:"images,omitempty" yaml:"images,omitempty"`

	// Warnings lists non-fatal messages in the order they occurred,
	// surfaced verbatim from the structural converter and the image
	// persistence pass.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	Meta ResultMeta `json:"meta" yaml:"meta"`
}

// BatchSummary tallies the outcome of a batch conversion run.
type BatchSummary struct {
	Total      int `json:"total" yaml:"total"`
	Successful int `json:"successful" yaml:"successful"`
	Skipped    int `json:"skipped" yaml:"skipped"`
	Failed     int `json:"failed" yaml:"failed"`
}

// HasFailures reports whether any documents failed conversion.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// SuccessRate returns the percentage of successful conversions, formatted
// with one decimal place (e.g. "66.7"). Skipped documents do not count as
// successes. Returns "0.0" for an empty batch.
func (s BatchSummary) SuccessRate() string {
	if s.Total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(s.Successful)*100/float64(s.Total))
}
