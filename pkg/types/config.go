// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionConfig holds settings for the document conversion stage.
// Per prd001-conversion R5.1-R5.4.
type ConversionConfig struct {
	// OutputDir is the directory for converted Markdown and extracted
	// images (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ExtractImages controls whether embedded images are written to
	// OutputDir/images (default true).
	ExtractImages bool `json:"extract_images" yaml:"extract_images"`

	// PreserveStyles controls whether bold and italic runs are carried
	// into the Markdown output.
	PreserveStyles bool `json:"preserve_styles" yaml:"preserve_styles"`

	// Force overwrites an existing Markdown output instead of skipping
	// the document.
	Force bool `json:"force" yaml:"force"`

	// StyleMap maps additional source paragraph style names to structural
	// tags (h1-h6, note, equation), extending the built-in mapping.
	StyleMap map[string]string `json:"style_map,omitempty" yaml:"style_map,omitempty"`
}

// FrontmatterConfig holds caller-supplied metadata for the frontmatter
// header. Per prd003-frontmatter R1.1-R1.4.
type FrontmatterConfig struct {
	// Title overrides title detection. When empty the title is resolved
	// from the first heading, then from the document filename.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Section is the section label (e.g. "1.2"), omitted when empty.
	Section string `json:"section,omitempty" yaml:"section,omitempty"`

	// Chapter is the chapter number, omitted when zero.
	Chapter int `json:"chapter,omitempty" yaml:"chapter,omitempty"`

	// Objectives lists learning objectives in order, omitted when empty.
	Objectives []string `json:"objectives,omitempty" yaml:"objectives,omitempty"`
}

// HistoryConfig holds settings for the conversion history log.
// Per prd004-history R1.2.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default
	// ".coursedoc").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed entries
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all stage configurations for the CLI.
type Config struct {
	Conversion  ConversionConfig  `json:"conversion" yaml:"conversion"`
	Frontmatter FrontmatterConfig `json:"frontmatter" yaml:"frontmatter"`
	History     HistoryConfig     `json:"history" yaml:"history"`
}
