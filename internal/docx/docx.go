// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx turns a DOCX payload into structural HTML markup. A DOCX
// file is a ZIP archive of OOXML parts; the package walks
// word/document.xml in document order, maps paragraph styles to structural
// tags through a StyleMap, and hands embedded images to a caller-supplied
// callback whose return value is spliced at the image's position.
// Implements: prd001-conversion (R1, R2);
//
//	docs/ARCHITECTURE § Structural Conversion.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
)

const (
	documentPart      = "word/document.xml"
	stylesPart        = "word/styles.xml"
	relationshipsPart = "word/_rels/document.xml.rels"
)

// ImageFunc receives each embedded image in document-encounter order and
// returns the inline reference to embed at the image's original position.
// The content subtype is the media target's extension ("png", "jpeg"), or
// "" when the target carries none.
type ImageFunc func(payload []byte, contentSubtype string) string

// Options configures a conversion.
type Options struct {
	// Styles maps source style names to structural tags.
	Styles StyleMap

	// Images is invoked once per embedded image. When nil, images are
	// dropped from the output.
	Images ImageFunc

	// PreserveStyles carries bold and italic runs into the markup as
	// <strong> and <em>.
	PreserveStyles bool
}

// Convert parses the DOCX payload and returns structural HTML markup plus
// non-fatal warnings (unsupported styles, unresolvable images). A payload
// that is not a readable DOCX archive is a fatal error.
func Convert(payload []byte, opts Options) (string, []string, error) {
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", nil, fmt.Errorf("opening document archive: %w", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}
	if _, ok := parts[documentPart]; !ok {
		return "", nil, fmt.Errorf("not a valid DOCX file: missing %s", documentPart)
	}

	styles, err := parseStyles(readPart(parts, stylesPart))
	if err != nil {
		return "", nil, err
	}
	rels, err := parseRelationships(readPart(parts, relationshipsPart))
	if err != nil {
		return "", nil, err
	}

	doc := readPart(parts, documentPart)
	if doc == nil {
		return "", nil, fmt.Errorf("reading %s: empty part", documentPart)
	}

	w := &markupWriter{
		opts:       opts,
		styleNames: styles,
		relTargets: rels,
		media:      func(target string) []byte { return readPart(parts, path.Clean("word/"+target)) },
		warned:     make(map[string]bool),
	}
	if err := w.writeDocument(doc); err != nil {
		return "", nil, err
	}
	return w.out.String(), w.warnings, nil
}

// readPart returns a part's bytes, or nil when the part is absent or
// unreadable. Optional parts (styles, relationships) tolerate absence.
func readPart(parts map[string]*zip.File, name string) []byte {
	f, ok := parts[name]
	if !ok {
		return nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil
	}
	return data
}
