// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"fmt"
)

// relTypeImage is the relationship type for embedded image parts.
const relTypeImage = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

// relationshipsXML mirrors word/_rels/document.xml.rels.
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipDef `xml:"Relationship"`
}

type relationshipDef struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// parseRelationships maps image relationship IDs to their media targets
// (e.g. "rId4" -> "media/image1.png"). External targets are skipped; the
// pipeline only extracts embedded payloads.
func parseRelationships(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return map[string]string{}, nil
	}
	var parsed relationshipsXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing relationships part: %w", err)
	}
	targets := make(map[string]string)
	for _, r := range parsed.Relationships {
		if r.Type == relTypeImage && r.TargetMode != "External" {
			targets[r.ID] = r.Target
		}
	}
	return targets, nil
}
