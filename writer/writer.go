// Package writer serializes documents back to the DXF interchange format.
//
// The writer re-emits raw header tags, tables, and block definitions exactly
// as the reader loaded them; only the LAYER table is regenerated from the
// document's structured layer set, which is how diff marker layers enter the
// output. Text is re-encoded into the codepage the header declares, so a
// loaded document round-trips correctly for any consumer honoring
// $DWGCODEPAGE.
//
// Files are written atomically: content goes to a temporary file in the
// destination directory which is renamed into place only on full success, so
// a failed write never leaves a partial document behind.
package writer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/tsawler/dxfkit/core"
	"github.com/tsawler/dxfkit/model"
	"github.com/tsawler/dxfkit/reader"
)

// ErrWrite indicates the output document could not be serialized or
// persisted.
var ErrWrite = errors.New("dxf: write failed")

// Write serializes the document to the given path atomically. Paths ending
// in .gz produce gzip-compressed output.
func Write(doc *model.Document, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dxfkit-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()
	// The temp file is removed on every failure path; after a successful
	// rename the removal is a no-op.
	defer os.Remove(tmpName)

	if err := writeStream(doc, tmp, strings.HasSuffix(path, ".gz")); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// WriteTo serializes the document to w without compression.
func WriteTo(doc *model.Document, w io.Writer) error {
	return writeStream(doc, w, false)
}

func writeStream(doc *model.Document, w io.Writer, compress bool) error {
	if compress {
		zw := gzip.NewWriter(w)
		if err := encodeStream(doc, zw); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		return nil
	}
	return encodeStream(doc, w)
}

// encodeStream serializes the document and re-encodes the bytes into the
// codepage the header declares, so text survives for any consumer honoring
// $DWGCODEPAGE. Documents without a recognized declaration are written as
// UTF-8, mirroring how the reader leaves them undecoded.
func encodeStream(doc *model.Document, w io.Writer) error {
	enc, ok := reader.CodepageEncoding(doc.Codepage)
	if !ok {
		return emit(doc, w)
	}
	ew := transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
	if err := emit(doc, ew); err != nil {
		ew.Close()
		return err
	}
	if err := ew.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func emit(doc *model.Document, w io.Writer) error {
	tw := core.NewTagWriter(w)
	if err := emitHeader(doc, tw); err != nil {
		return wrapWrite(err)
	}
	if err := emitTables(doc, tw); err != nil {
		return wrapWrite(err)
	}
	if err := emitBlocks(doc, tw); err != nil {
		return wrapWrite(err)
	}
	if err := emitEntities(doc, tw); err != nil {
		return wrapWrite(err)
	}
	for _, sec := range doc.Extra {
		if err := emitSection(tw, sec.Name, sec.Tags); err != nil {
			return wrapWrite(err)
		}
	}
	if err := tw.WriteStr(core.CodeEntityType, "EOF"); err != nil {
		return wrapWrite(err)
	}
	return wrapWrite(tw.Flush())
}

func wrapWrite(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrWrite) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrWrite, err)
}

func emitHeader(doc *model.Document, tw *core.TagWriter) error {
	tags := doc.Header
	if len(tags) == 0 {
		if doc.Version == "" {
			return nil
		}
		// Synthesize a minimal header so the declared version survives.
		tags = []core.Tag{
			{Code: core.CodeVariable, Value: "$ACADVER"},
			{Code: core.CodeText, Value: doc.Version},
		}
	}
	return emitSection(tw, "HEADER", tags)
}

func emitTables(doc *model.Document, tw *core.TagWriter) error {
	hasLayerTable := false
	for _, t := range doc.Tables {
		if t.Name == "LAYER" {
			hasLayerTable = true
		}
	}
	if len(doc.Tables) == 0 && doc.Layers.Len() == 0 {
		return nil
	}

	if err := beginSection(tw, "TABLES"); err != nil {
		return err
	}
	for _, t := range doc.Tables {
		if t.Name == "LAYER" {
			if err := emitLayerTable(doc.Layers, tw); err != nil {
				return err
			}
			continue
		}
		if err := tw.WriteStr(core.CodeEntityType, "TABLE"); err != nil {
			return err
		}
		if err := tw.WriteAll(t.Tags); err != nil {
			return err
		}
		if err := tw.WriteStr(core.CodeEntityType, "ENDTAB"); err != nil {
			return err
		}
	}
	if !hasLayerTable && doc.Layers.Len() > 0 {
		if err := emitLayerTable(doc.Layers, tw); err != nil {
			return err
		}
	}
	return tw.WriteStr(core.CodeEntityType, "ENDSEC")
}

func emitLayerTable(layers *model.LayerTable, tw *core.TagWriter) error {
	if err := tw.WriteStr(core.CodeEntityType, "TABLE"); err != nil {
		return err
	}
	if err := tw.WriteStr(core.CodeName, "LAYER"); err != nil {
		return err
	}
	if err := tw.WriteInt(core.CodeFlags, layers.Len()); err != nil {
		return err
	}
	for _, l := range layers.All() {
		if err := tw.WriteStr(core.CodeEntityType, "LAYER"); err != nil {
			return err
		}
		if err := tw.WriteStr(core.CodeName, l.Name); err != nil {
			return err
		}
		if err := tw.WriteInt(core.CodeFlags, l.Flags); err != nil {
			return err
		}
		if err := tw.WriteInt(core.CodeColor, l.Color); err != nil {
			return err
		}
		linetype := l.Linetype
		if linetype == "" {
			linetype = "CONTINUOUS"
		}
		if err := tw.WriteStr(core.CodeLinetype, linetype); err != nil {
			return err
		}
	}
	return tw.WriteStr(core.CodeEntityType, "ENDTAB")
}

func emitBlocks(doc *model.Document, tw *core.TagWriter) error {
	if len(doc.Blocks) == 0 {
		return nil
	}
	if err := beginSection(tw, "BLOCKS"); err != nil {
		return err
	}
	for _, b := range doc.Blocks {
		if err := tw.WriteAll(b.Tags); err != nil {
			return err
		}
	}
	return tw.WriteStr(core.CodeEntityType, "ENDSEC")
}

func emitEntities(doc *model.Document, tw *core.TagWriter) error {
	if err := beginSection(tw, "ENTITIES"); err != nil {
		return err
	}
	for _, e := range doc.Entities {
		if err := tw.WriteAll(e.Tags); err != nil {
			return err
		}
	}
	return tw.WriteStr(core.CodeEntityType, "ENDSEC")
}

func beginSection(tw *core.TagWriter, name string) error {
	if err := tw.WriteStr(core.CodeEntityType, "SECTION"); err != nil {
		return err
	}
	return tw.WriteStr(core.CodeName, name)
}

func emitSection(tw *core.TagWriter, name string, tags []core.Tag) error {
	if err := beginSection(tw, name); err != nil {
		return err
	}
	if err := tw.WriteAll(tags); err != nil {
		return err
	}
	return tw.WriteStr(core.CodeEntityType, "ENDSEC")
}
