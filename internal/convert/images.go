// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"path/filepath"

	"github.com/h2non/filetype"

	"github.com/pdiddy/coursedoc/pkg/types"
)

// fallbackImageExt is used when the declared subtype is absent and the
// payload cannot be sniffed.
const fallbackImageExt = "png"

// knownImageExts are content subtypes accepted as-is from the document's
// media target names.
var knownImageExts = map[string]bool{
	"png": true, "jpeg": true, "jpg": true, "gif": true, "bmp": true,
	"tiff": true, "webp": true, "svg": true, "emf": true, "wmf": true,
}

// ImageSink collects embedded images during one conversion. It assigns
// dense 1-based ordinals in call order (= document order), buffers the
// payloads, and returns inline Markdown references. A sink is instantiated
// fresh per conversion and never shared or reused (R2.2).
type ImageSink struct {
	baseName  string
	imagesDir string
	records   []types.ImageRecord
}

// NewImageSink creates a sink for a document. baseName is the document's
// base file name; imagesDir is where the orchestrator later persists the
// payloads.
func NewImageSink(baseName, imagesDir string) *ImageSink {
	return &ImageSink{baseName: baseName, imagesDir: imagesDir}
}

// Capture buffers one image and returns its inline reference. It has no
// filesystem side effect; persistence happens after the text pipeline
// completes. An ordinal is consumed even if persisting the payload later
// fails (R2.1).
func (s *ImageSink) Capture(payload []byte, contentSubtype string) string {
	ordinal := len(s.records) + 1
	ext := imageExt(payload, contentSubtype)
	filename := fmt.Sprintf("%s-image-%d.%s", s.baseName, ordinal, ext)
	placeholder := fmt.Sprintf("![Image %d](./images/%s)", ordinal, filename)

	s.records = append(s.records, types.ImageRecord{
		Ordinal:     ordinal,
		Filename:    filename,
		Path:        filepath.Join(s.imagesDir, filename),
		Placeholder: placeholder,
		Payload:     payload,
	})
	return placeholder
}

// Records returns the captured images in document order. The slice is
// handed read-only to the orchestrator after conversion.
func (s *ImageSink) Records() []types.ImageRecord {
	return s.records
}

// imageExt picks the target extension: the declared subtype when
// recognized, else a sniff of the payload, else the fixed fallback.
func imageExt(payload []byte, contentSubtype string) string {
	if knownImageExts[contentSubtype] {
		return contentSubtype
	}
	if kind, err := filetype.Match(payload); err == nil && kind != filetype.Unknown && kind.Extension != "" {
		return kind.Extension
	}
	return fallbackImageExt
}
