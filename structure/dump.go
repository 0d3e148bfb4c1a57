package structure

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/tsawler/dxfkit/core"
	"github.com/tsawler/dxfkit/model"
)

// Row is one line of the structural dump: the section and owning entity (or
// header variable) of a tag, plus the tag itself and the group code meaning.
type Row struct {
	Section    string
	Entity     string
	Code       int
	Definition string
	Value      string
}

// Dump flattens the document into one row per tag, in document order.
func Dump(doc *model.Document) []Row {
	var rows []Row

	owner := ""
	for _, t := range doc.Header {
		if t.Code == core.CodeVariable {
			owner = t.Value
		}
		rows = append(rows, row("HEADER", owner, t))
	}

	for _, table := range doc.Tables {
		owner = table.Name
		for _, t := range table.Tags {
			if t.IsEntityType() {
				owner = t.Value
			}
			rows = append(rows, row("TABLES", owner, t))
		}
	}

	for _, block := range doc.Blocks {
		owner = ""
		for _, t := range block.Tags {
			if t.IsEntityType() {
				owner = t.Value
			}
			rows = append(rows, row("BLOCKS", owner, t))
		}
	}

	for _, e := range doc.Entities {
		owner = e.DXFType
		for _, t := range e.Tags {
			if t.IsEntityType() {
				// Folded follower records (VERTEX, SEQEND) own their tags.
				owner = t.Value
			}
			rows = append(rows, row("ENTITIES", owner, t))
		}
	}

	for _, sec := range doc.Extra {
		owner = ""
		for _, t := range sec.Tags {
			if t.IsEntityType() {
				owner = t.Value
			}
			rows = append(rows, row(sec.Name, owner, t))
		}
	}
	return rows
}

// WriteCSV writes the rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Section", "Entity", "GroupCode", "Definition", "Value"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.Section, r.Entity, strconv.Itoa(r.Code), r.Definition, r.Value}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(section, owner string, t core.Tag) Row {
	return Row{
		Section:    section,
		Entity:     owner,
		Code:       t.Code,
		Definition: DefineCode(t.Code),
		Value:      t.Value,
	}
}
