// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	firstHeading = regexp.MustCompile(`(?m)^#{1,6} +(.+)$`)
	titleCaser   = cases.Title(language.English)
)

// ResolveTitle picks the document title: an explicit caller title wins,
// then the first heading in the normalized body, then a title-cased
// derivation of the document base name (R4.4).
func ResolveTitle(explicit, body, baseName string) string {
	if explicit != "" {
		return explicit
	}
	if m := firstHeading.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return TitleFromFilename(baseName)
}

// TitleFromFilename turns a file base name into a display title:
// "chem-101_intro" becomes "Chem 101 Intro".
func TitleFromFilename(baseName string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(baseName)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return titleCaser.String(cleaned)
}
