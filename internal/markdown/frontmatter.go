// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"fmt"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// ExtensionField is a caller-supplied frontmatter key/value pair emitted
// after the recognized fields, in caller insertion order.
type ExtensionField struct {
	Key   string
	Value string
}

// FrontmatterFields is the ordered metadata set for the header block.
// Recognized fields serialize in canonical order (title, section, chapter,
// objectives); absent or empty fields are omitted entirely, never emitted
// as null (R4.2).
type FrontmatterFields struct {
	// Title is required; the orchestrator defaults it before composing.
	Title string

	// Section is omitted when empty.
	Section string

	// Chapter is omitted when zero.
	Chapter int

	// Objectives serialize as a block sequence, omitted when empty.
	Objectives []string

	// Extensions are passed through verbatim after the recognized keys.
	Extensions []ExtensionField
}

// ComposeFrontmatter serializes the fields to a YAML header between ---
// delimiters, followed by exactly one blank line. The body text is appended directly
// after the returned block with no extra separator (R4.1-R4.3).
func ComposeFrontmatter(fields FrontmatterFields) (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	if fields.Title != "" {
		appendEntry(root, "title", quotedScalar(fields.Title))
	}
	if fields.Section != "" {
		appendEntry(root, "section", quotedScalar(fields.Section))
	}
	if fields.Chapter != 0 {
		appendEntry(root, "chapter", &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(fields.Chapter),
		})
	}
	if len(fields.Objectives) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, obj := range fields.Objectives {
			seq.Content = append(seq.Content, quotedScalar(obj))
		}
		appendEntry(root, "objectives", seq)
	}
	for _, ext := range fields.Extensions {
		appendEntry(root, ext.Key, quotedScalar(ext.Value))
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("serializing frontmatter: %w", err)
	}
	return "---\n" + string(out) + "---\n\n", nil
}

func appendEntry(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

func quotedScalar(s string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.DoubleQuotedStyle,
		Value: s,
	}
}
