// Package reader provides DXF document loading.
//
// The reader parses an ASCII DXF file into a [github.com/tsawler/dxfkit/model.Document],
// preserving entity order and the layer table exactly so the writer package
// can re-emit unaffected structure losslessly.
//
// # Loading
//
//	doc, err := reader.Load("drawing.dxf")
//	if err != nil {
//	    // errors.Is(err, reader.ErrMalformed) / reader.ErrUnsupportedVersion
//	}
//
// Gzip-compressed files (.dxf.gz, or any input starting with the gzip magic)
// are decompressed transparently. Binary DXF files are rejected with
// [ErrMalformed].
//
// # Text encoding
//
// Drawings exported by non-Unicode CAD versions declare their codepage in the
// $DWGCODEPAGE header variable (for example ANSI_932 for Shift JIS). The
// reader sniffs the declaration and decodes the whole file to UTF-8 before
// parsing, so annotation text reaches the caller in a uniform encoding.
//
// # Structure handling
//
// The HEADER section, tables other than LAYER, and block definitions are kept
// as raw tag runs. Only the LAYER table and the ENTITIES section are parsed
// into structured form. Legacy POLYLINE/VERTEX/SEQEND chains and INSERT/ATTRIB
// chains are folded into a single entity so they move through the diff as one
// unit.
package reader
