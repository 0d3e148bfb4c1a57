package structure

import (
	"fmt"

	"github.com/tsawler/dxfkit/core"
	"github.com/tsawler/dxfkit/model"
)

// Outline renders the document's structure as markdown lines: sections,
// header variables, tables and layers, block definitions, and the entity
// list with layer assignments.
func Outline(doc *model.Document) []string {
	var lines []string
	lines = append(lines, "# Drawing structure")

	if doc.Version != "" {
		lines = append(lines, fmt.Sprintf("- Version: %s", doc.Version))
	}
	if doc.Codepage != "" {
		lines = append(lines, fmt.Sprintf("- Codepage: %s", doc.Codepage))
	}

	if len(doc.Header) > 0 {
		lines = append(lines, "", "## HEADER")
		for i, t := range doc.Header {
			if t.Code != core.CodeVariable {
				continue
			}
			value := ""
			if i+1 < len(doc.Header) && !doc.Header[i+1].IsEntityType() {
				value = doc.Header[i+1].Value
			}
			lines = append(lines, fmt.Sprintf("- %s: %s", t.Value, value))
		}
	}

	if len(doc.Tables) > 0 {
		lines = append(lines, "", "## TABLES")
		for _, table := range doc.Tables {
			lines = append(lines, fmt.Sprintf("- TABLE %s", table.Name))
			if table.Name == "LAYER" {
				for _, l := range doc.Layers.All() {
					lines = append(lines, fmt.Sprintf("  - LAYER %s (color %d, linetype %s)", l.Name, l.Color, l.Linetype))
				}
			}
		}
	}

	if len(doc.Blocks) > 0 {
		lines = append(lines, "", "## BLOCKS")
		for _, b := range doc.Blocks {
			lines = append(lines, fmt.Sprintf("- BLOCK %s (%d tags)", b.Name, len(b.Tags)))
		}
	}

	lines = append(lines, "", "## ENTITIES")
	if doc.EntityCount() == 0 {
		lines = append(lines, "- none")
	}
	for _, e := range doc.Entities {
		desc := fmt.Sprintf("- %s (layer %s", e.DXFType, e.Layer)
		if e.Kind == model.KindText {
			desc += fmt.Sprintf(", text %q", e.Text())
		}
		if e.Kind == model.KindInsert {
			desc += fmt.Sprintf(", block %s", e.Name())
		}
		lines = append(lines, desc+")")
	}

	for _, sec := range doc.Extra {
		lines = append(lines, "", fmt.Sprintf("## %s", sec.Name), fmt.Sprintf("- %d tags", len(sec.Tags)))
	}
	return lines
}
