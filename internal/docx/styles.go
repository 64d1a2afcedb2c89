// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// stylesXML mirrors the styles definition file (word/styles.xml).
type stylesXML struct {
	XMLName xml.Name   `xml:"styles"`
	Styles  []styleDef `xml:"style"`
}

type styleDef struct {
	Type    string     `xml:"type,attr"`
	StyleID string     `xml:"styleId,attr"`
	Default string     `xml:"default,attr"`
	Name    *styleName `xml:"name"`
}

type styleName struct {
	Val string `xml:"val,attr"`
}

// parseStyles maps style IDs to display names. The styles part is optional
// in the package; a missing part yields an empty map.
func parseStyles(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return map[string]string{}, nil
	}
	var parsed stylesXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing styles part: %w", err)
	}
	names := make(map[string]string, len(parsed.Styles))
	for _, s := range parsed.Styles {
		if s.StyleID != "" && s.Name != nil {
			names[s.StyleID] = s.Name.Val
		}
	}
	return names, nil
}

// StyleMap maps source style names (case-insensitive) to structural tags:
// h1-h6, note, or equation. The zero value is not useful; construct with
// NewStyleMap.
type StyleMap struct {
	tags map[string]string
}

// NewStyleMap builds the style mapping from the built-in defaults plus the
// caller's extensions. Caller entries override defaults for the same name.
func NewStyleMap(extra map[string]string) StyleMap {
	tags := map[string]string{
		"title":      "h1",
		"subtitle":   "h2",
		"note":       "note",
		"callout":    "note",
		"admonition": "note",
		"equation":   "equation",
	}
	for i := 1; i <= 6; i++ {
		tags[fmt.Sprintf("heading %d", i)] = fmt.Sprintf("h%d", i)
	}
	for name, tag := range extra {
		tags[strings.ToLower(name)] = tag
	}
	return StyleMap{tags: tags}
}

// Tag returns the structural tag mapped to a style name, or "" when the
// name is not mapped.
func (m StyleMap) Tag(styleName string) string {
	return m.tags[strings.ToLower(styleName)]
}

// defaultStyleNames are body styles that carry no structural meaning and
// never warrant an unsupported-style warning.
var defaultStyleNames = map[string]bool{
	"normal":         true,
	"body text":      true,
	"default":        true,
	"list paragraph": true,
	"no spacing":     true,
}

func isDefaultStyle(name string) bool {
	return defaultStyleNames[strings.ToLower(name)]
}
