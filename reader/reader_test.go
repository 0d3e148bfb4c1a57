package reader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/tsawler/dxfkit/model"
)

const sampleDXF = `  0
SECTION
  2
HEADER
  9
$ACADVER
  1
AC1009
  0
ENDSEC
  0
SECTION
  2
TABLES
  0
TABLE
  2
LAYER
 70
2
  0
LAYER
  2
WIRE
 70
0
 62
7
  6
CONTINUOUS
  0
LAYER
  2
NOTES
 70
0
 62
3
  6
DASHED
  0
ENDTAB
  0
ENDSEC
  0
SECTION
  2
ENTITIES
  0
LINE
  8
WIRE
 10
0.0
 20
0.0
 11
10.0
 21
0.0
  0
MTEXT
  8
NOTES
 10
1.0
 20
2.0
  1
R1
  0
ENDSEC
  0
EOF
`

func TestReadBytesSample(t *testing.T) {
	doc, err := ReadBytes([]byte(sampleDXF))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Version != "AC1009" {
		t.Errorf("version = %q, want AC1009", doc.Version)
	}
	if doc.Layers.Len() != 2 {
		t.Fatalf("layer count = %d, want 2", doc.Layers.Len())
	}
	wire, ok := doc.Layers.Get("WIRE")
	if !ok || wire.Color != 7 || wire.Linetype != "CONTINUOUS" {
		t.Errorf("WIRE layer = %+v, ok=%v", wire, ok)
	}
	notes, _ := doc.Layers.Get("NOTES")
	if notes.Color != 3 || notes.Linetype != "DASHED" {
		t.Errorf("NOTES layer = %+v", notes)
	}

	if doc.EntityCount() != 2 {
		t.Fatalf("entity count = %d, want 2", doc.EntityCount())
	}
	if doc.Entities[0].Kind != model.KindLine || doc.Entities[0].Layer != "WIRE" {
		t.Errorf("first entity = %s on %s", doc.Entities[0].DXFType, doc.Entities[0].Layer)
	}
	if doc.Entities[1].Kind != model.KindText || doc.Entities[1].Text() != "R1" {
		t.Errorf("second entity = %s text %q", doc.Entities[1].DXFType, doc.Entities[1].Text())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.dxf")
	if err := os.WriteFile(path, []byte(sampleDXF), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.EntityCount() != 2 {
		t.Errorf("entity count = %d, want 2", doc.EntityCount())
	}

	if _, err := Load(filepath.Join(dir, "missing.dxf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte(sampleDXF), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for .txt input, got %v", err)
	}

	// Extension matching is case-insensitive.
	upper := filepath.Join(dir, "SAMPLE.DXF")
	if err := os.WriteFile(upper, []byte(sampleDXF), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(upper); err != nil {
		t.Errorf("unexpected error for uppercase extension: %v", err)
	}
}

func TestReadGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(sampleDXF)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.EntityCount() != 2 {
		t.Errorf("entity count = %d, want 2", doc.EntityCount())
	}
}

func TestReadBinaryRejected(t *testing.T) {
	data := append([]byte("AutoCAD Binary DXF\r\n\x1a\x00"), 0, 1, 2, 3)
	_, err := ReadBytes(data)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestUnsupportedVersion(t *testing.T) {
	input := "  0\nSECTION\n  2\nHEADER\n  9\n$ACADVER\n  1\nAC1006\n  0\nENDSEC\n  0\nEOF\n"
	_, err := ReadBytes([]byte(input))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestMissingVersionAccepted(t *testing.T) {
	input := "  0\nSECTION\n  2\nENTITIES\n  0\nENDSEC\n  0\nEOF\n"
	doc, err := ReadBytes([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Version != "" {
		t.Errorf("version = %q, want empty", doc.Version)
	}
}

func TestMalformedInputs(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not tagged", "hello world\n"},
		{"truncated section", "  0\nSECTION\n  2\nENTITIES\n  0\nLINE\n"},
		{"section without name", "  0\nSECTION\n  0\nENDSEC\n"},
		{"value before entity", "  0\nSECTION\n  2\nENTITIES\n  8\nWIRE\n  0\nENDSEC\n  0\nEOF\n"},
		{"nested section", "  0\nSECTION\n  2\nHEADER\n  0\nSECTION\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadBytes([]byte(tt.input)); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestPolylineFolding(t *testing.T) {
	input := `  0
SECTION
  2
ENTITIES
  0
POLYLINE
  8
WIRE
 66
1
  0
VERTEX
  8
WIRE
 10
0.0
 20
0.0
  0
VERTEX
  8
WIRE
 10
5.0
 20
5.0
  0
SEQEND
  8
WIRE
  0
CIRCLE
  8
WIRE
 10
1.0
 20
1.0
 40
2.0
  0
ENDSEC
  0
EOF
`
	doc, err := ReadBytes([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.EntityCount() != 2 {
		t.Fatalf("entity count = %d, want 2 (polyline chain folded)", doc.EntityCount())
	}
	pl := doc.Entities[0]
	if pl.Kind != model.KindPolyline {
		t.Fatalf("first entity kind = %v, want Polyline", pl.Kind)
	}
	geom := pl.Geometry()
	// Two vertices plus the trailing closed flag.
	if len(geom) != 5 {
		t.Errorf("polyline geometry = %v, want 4 coords + flag", geom)
	}
	if doc.Entities[1].Kind != model.KindCircle {
		t.Errorf("second entity kind = %v, want Circle", doc.Entities[1].Kind)
	}
}

func TestBlocksAndExtraSections(t *testing.T) {
	input := `  0
SECTION
  2
BLOCKS
  0
BLOCK
  8
0
  2
CONN
 10
0.0
 20
0.0
  0
LINE
  8
0
 10
0.0
 20
0.0
 11
1.0
 21
0.0
  0
ENDBLK
  0
ENDSEC
  0
SECTION
  2
OBJECTS
  0
DICTIONARY
  5
C
  0
ENDSEC
  0
EOF
`
	doc, err := ReadBytes([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 1 || doc.Blocks[0].Name != "CONN" {
		t.Fatalf("blocks = %+v, want one block CONN", doc.Blocks)
	}
	if !doc.HasBlock("CONN") {
		t.Error("HasBlock(CONN) = false")
	}
	if len(doc.Extra) != 1 || doc.Extra[0].Name != "OBJECTS" {
		t.Errorf("extra sections = %+v, want one OBJECTS section", doc.Extra)
	}
}

func TestCodepageDecoding(t *testing.T) {
	header := "  0\nSECTION\n  2\nHEADER\n  9\n$ACADVER\n  1\nAC1009\n  9\n$DWGCODEPAGE\n  3\nANSI_1252\n  0\nENDSEC\n"
	entities := "  0\nSECTION\n  2\nENTITIES\n  0\nMTEXT\n  8\nNOTES\n  1\nCaf\xe9\n  0\nENDSEC\n  0\nEOF\n"
	doc, err := ReadBytes([]byte(header + entities))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Codepage != "ANSI_1252" {
		t.Errorf("codepage = %q, want ANSI_1252", doc.Codepage)
	}
	if got := doc.Entities[0].Text(); got != "Café" {
		t.Errorf("text = %q, want Café", got)
	}
}

func TestSniffCodepage(t *testing.T) {
	if cp := sniffCodepage([]byte(sampleDXF)); cp != "" {
		t.Errorf("sniffCodepage = %q, want empty", cp)
	}
	data := []byte("  9\n$DWGCODEPAGE\n  3\nANSI_932\n")
	if cp := sniffCodepage(data); cp != "ANSI_932" {
		t.Errorf("sniffCodepage = %q, want ANSI_932", cp)
	}
}
