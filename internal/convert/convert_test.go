// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/coursedoc/pkg/types"
)

const fixtureStylesXML = `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
</w:styles>`

const fixtureRelsXML = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`

// writeDocxFixture assembles a DOCX file on disk from the given
// document.xml body content and returns its path.
func writeDocxFixture(t *testing.T, dir, name, body string) string {
	t.Helper()
	document := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"
            xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<w:body>` + body + `</w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := map[string][]byte{
		"word/document.xml":            []byte(document),
		"word/styles.xml":              []byte(fixtureStylesXML),
		"word/_rels/document.xml.rels": []byte(fixtureRelsXML),
		"word/media/image1.png":        pngSignature,
	}
	for partName, data := range parts {
		f, err := zw.Create(partName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const endToEndBody = `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Intro</w:t></w:r></w:p>
<w:p><w:r><w:t>Hello H2O world</w:t></w:r></w:p>
<w:p><w:r><w:drawing><a:blip r:embed="rId4"/></w:drawing></w:r></w:p>`

func TestConvert_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeDocxFixture(t, dir, "doc.docx", endToEndBody)
	outDir := filepath.Join(dir, "out")

	result, err := Convert(Request{
		InputPath:     input,
		OutputDir:     outDir,
		ExtractImages: true,
		Frontmatter:   types.FrontmatterConfig{Chapter: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := `---
title: "Intro"
chapter: 2
---

# Intro

Hello $H2O$ world

![Image 1](./images/doc-image-1.png)
`
	if result.Markdown != want {
		t.Errorf("markdown mismatch\ngot:\n%s\nwant:\n%s", result.Markdown, want)
	}

	onDisk, err := os.ReadFile(filepath.Join(outDir, "doc.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(onDisk) != result.Markdown {
		t.Error("written file differs from result markdown")
	}

	if len(result.Images) != 1 {
		t.Fatalf("want 1 image, got %d", len(result.Images))
	}
	payload, err := os.ReadFile(filepath.Join(outDir, "images", "doc-image-1.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(payload, pngSignature) {
		t.Error("persisted image payload differs from source media")
	}

	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	if result.Meta.OriginalFilename != "doc.docx" {
		t.Errorf("original filename = %q", result.Meta.OriginalFilename)
	}
	if result.Meta.ConvertedAt.IsZero() {
		t.Error("conversion timestamp not set")
	}
}

func TestConvert_ExplicitTitleWins(t *testing.T) {
	dir := t.TempDir()
	input := writeDocxFixture(t, dir, "doc.docx", endToEndBody)

	result, err := Convert(Request{
		InputPath:     input,
		OutputDir:     filepath.Join(dir, "out"),
		ExtractImages: true,
		Frontmatter:   types.FrontmatterConfig{Title: "Custom Title"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(result.Markdown, "---\ntitle: \"Custom Title\"\n") {
		t.Errorf("markdown = %q", result.Markdown)
	}
}

func TestConvert_ImagesDisabled(t *testing.T) {
	dir := t.TempDir()
	input := writeDocxFixture(t, dir, "doc.docx", endToEndBody)
	outDir := filepath.Join(dir, "out")

	result, err := Convert(Request{InputPath: input, OutputDir: outDir})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Images) != 0 {
		t.Errorf("images captured despite extraction off: %v", result.Images)
	}
	if strings.Contains(result.Markdown, "![Image") {
		t.Errorf("image reference in output: %q", result.Markdown)
	}
	if _, err := os.Stat(filepath.Join(outDir, "images")); !os.IsNotExist(err) {
		t.Error("images directory created for image-free output")
	}
}

func TestConvert_RejectsNonDocx(t *testing.T) {
	_, err := Convert(Request{InputPath: "notes.txt", OutputDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), ".docx") {
		t.Fatalf("want extension error, got %v", err)
	}
}

func TestConvert_MissingInput(t *testing.T) {
	_, err := Convert(Request{
		InputPath: filepath.Join(t.TempDir(), "absent.docx"),
		OutputDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("want error for missing input")
	}
}

func TestConvert_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(input, []byte("this is not an archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Convert(Request{InputPath: input, OutputDir: filepath.Join(dir, "out")})
	if err == nil {
		t.Fatal("want error for malformed document")
	}
	if !strings.Contains(err.Error(), "broken.docx") {
		t.Errorf("error should name the document: %v", err)
	}
}

func TestRequest_OutputPath(t *testing.T) {
	req := Request{InputPath: "/in/Chapter 1 — Matter.docx", OutputDir: "out"}
	if got := req.OutputPath(); got != filepath.Join("out", "chapter-1-matter.md") {
		t.Errorf("OutputPath() = %q", got)
	}
}
