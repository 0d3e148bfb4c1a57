// Package format provides input format detection for the dxfkit library.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a recognized drawing file variant.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// ASCII indicates a plain text DXF file.
	ASCII
	// Binary indicates a binary DXF file.
	Binary
	// Gzip indicates a gzip-compressed DXF file (.dxf.gz).
	Gzip
)

// binarySentinel is the fixed 22-byte header of binary DXF files.
var binarySentinel = []byte("AutoCAD Binary DXF\r\n\x1a\x00")

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case ASCII:
		return "ASCII"
	case Binary:
		return "Binary"
	case Gzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// Detect determines the file format from the filename extension.
func Detect(filename string) Format {
	name := strings.ToLower(filename)
	if strings.HasSuffix(name, ".dxf.gz") {
		return Gzip
	}
	if filepath.Ext(name) == ".dxf" {
		return ASCII
	}
	return Unknown
}

// DetectFromMagic checks leading bytes to determine the format. This is more
// reliable than extension-based detection: it distinguishes binary DXF (which
// the reader rejects) and gzip data regardless of how the file is named.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, binarySentinel) {
		return Binary
	}
	// gzip magic: 0x1f 0x8b
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return Gzip
	}
	if looksTagged(data) {
		return ASCII
	}
	return Unknown
}

// looksTagged reports whether the data starts with something shaped like a
// DXF tag: an optionally padded numeric group code line.
func looksTagged(data []byte) bool {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	line = bytes.TrimSpace(bytes.TrimSuffix(line, []byte("\r")))
	if len(line) == 0 || len(line) > 5 {
		return false
	}
	for _, b := range line {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}
