package model

import "github.com/tsawler/dxfkit/core"

// RawSection holds an uninterpreted document section: its group 2 name and
// every tag between the SECTION and ENDSEC markers, exclusive. The writer
// re-emits raw sections verbatim.
type RawSection struct {
	Name string
	Tags []core.Tag
}

// RawTable holds one table from the TABLES section. The LAYER table is
// additionally parsed into Document.Layers; other tables (LTYPE, STYLE,
// VPORT, ...) pass through untouched.
type RawTable struct {
	Name string
	Tags []core.Tag // everything between TABLE and ENDTAB, exclusive
}

// Block holds one block definition from the BLOCKS section, kept raw from its
// BLOCK tag through its ENDBLK tag inclusive.
type Block struct {
	Name string
	Tags []core.Tag
}

// Document represents a complete parsed drawing. It is owned exclusively by
// the pipeline stage holding it and is never mutated in place; the diff delta
// builder produces a new Document rather than editing its inputs.
type Document struct {
	// Version is the declared format version ($ACADVER), e.g. "AC1009".
	// Empty when the header does not declare one.
	Version string

	// Codepage is the declared text codepage ($DWGCODEPAGE), e.g. "ANSI_932".
	Codepage string

	// Header holds the raw HEADER section tags for lossless re-emission.
	Header []core.Tag

	// Tables holds every table of the TABLES section in file order.
	Tables []RawTable

	// Layers is the parsed LAYER table.
	Layers *LayerTable

	// Blocks holds the BLOCKS section definitions in file order.
	Blocks []Block

	// Entities is the ordered entity list of the ENTITIES section.
	Entities []*Entity

	// Extra holds sections the library does not interpret (OBJECTS,
	// CLASSES, ...), re-emitted verbatim after the entities.
	Extra []RawSection
}

// NewDocument creates a new empty document.
func NewDocument() *Document {
	return &Document{Layers: NewLayerTable()}
}

// AddEntity appends an entity to the document.
func (d *Document) AddEntity(e *Entity) {
	d.Entities = append(d.Entities, e)
}

// EntityCount returns the number of entities in the document.
func (d *Document) EntityCount() int {
	return len(d.Entities)
}

// CountByKind returns the number of entities per kind.
func (d *Document) CountByKind() map[EntityKind]int {
	counts := make(map[EntityKind]int)
	for _, e := range d.Entities {
		counts[e.Kind]++
	}
	return counts
}

// HasBlock reports whether a block with the given name is defined.
func (d *Document) HasBlock(name string) bool {
	for _, b := range d.Blocks {
		if b.Name == name {
			return true
		}
	}
	return false
}
