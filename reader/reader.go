package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/tsawler/dxfkit/core"
	"github.com/tsawler/dxfkit/format"
	"github.com/tsawler/dxfkit/model"
)

var (
	// ErrMalformed indicates the input is not a well-formed DXF document.
	ErrMalformed = errors.New("dxf: malformed document")
	// ErrUnsupportedVersion indicates the document declares a format version
	// outside the supported range (AC1009 through AC1032).
	ErrUnsupportedVersion = errors.New("dxf: unsupported format version")
)

// supportedVersions is the set of accepted $ACADVER values, R12 through 2018.
var supportedVersions = map[string]bool{
	"AC1009": true, // R12
	"AC1012": true, // R13
	"AC1014": true, // R14
	"AC1015": true, // 2000
	"AC1018": true, // 2004
	"AC1021": true, // 2007
	"AC1024": true, // 2010
	"AC1027": true, // 2013
	"AC1032": true, // 2018
}

// Load reads and parses the DXF file at path. The path must carry a
// recognized drawing extension (.dxf or .dxf.gz); use Read or ReadBytes for
// arbitrarily named input.
func Load(path string) (*model.Document, error) {
	if format.Detect(path) == format.Unknown {
		return nil, fmt.Errorf("%s: %w: not a .dxf or .dxf.gz file", path, ErrMalformed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ReadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Read parses a DXF document from r.
func Read(r io.Reader) (*model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadBytes(data)
}

// ReadBytes parses a DXF document from raw file bytes. Gzip-compressed input
// is decompressed transparently; binary DXF input is rejected.
func ReadBytes(data []byte) (*model.Document, error) {
	switch format.DetectFromMagic(data) {
	case format.Binary:
		return nil, fmt.Errorf("%w: binary DXF is not supported", ErrMalformed)
	case format.Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: bad gzip stream: %v", ErrMalformed, err)
		}
		defer zr.Close()
		raw, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: bad gzip stream: %v", ErrMalformed, err)
		}
		data = raw
	}

	codepage := sniffCodepage(data)
	decoded, err := decodeCodepage(data, codepage)
	if err != nil {
		return nil, fmt.Errorf("%w: codepage %s: %v", ErrMalformed, codepage, err)
	}

	doc, err := parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, err
	}
	doc.Codepage = codepage

	if doc.Version != "" && !supportedVersions[doc.Version] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, doc.Version)
	}
	return doc, nil
}

// parser walks the tag stream section by section.
type parser struct {
	tr  *core.TagReader
	doc *model.Document
}

func parse(r io.Reader) (*model.Document, error) {
	p := &parser{tr: core.NewTagReader(r), doc: model.NewDocument()}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

func (p *parser) run() error {
	for {
		tag, err := p.tr.Next()
		if err == io.EOF {
			// A missing 0/EOF marker is tolerated; truncated sections are not.
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if tag.Code == 999 {
			continue
		}
		if !tag.IsEntityType() {
			return fmt.Errorf("%w: line %d: unexpected tag %s outside a section", ErrMalformed, p.tr.Line(), tag)
		}
		switch tag.Value {
		case "SECTION":
			if err := p.parseSection(); err != nil {
				return err
			}
		case "EOF":
			return nil
		default:
			return fmt.Errorf("%w: line %d: unexpected marker %q at top level", ErrMalformed, p.tr.Line(), tag.Value)
		}
	}
}

func (p *parser) parseSection() error {
	name, err := p.tr.Next()
	if err != nil {
		return fmt.Errorf("%w: section without a name tag: %v", ErrMalformed, err)
	}
	if name.Code != core.CodeName {
		return fmt.Errorf("%w: line %d: section name expected, got %s", ErrMalformed, p.tr.Line(), name)
	}

	switch name.Value {
	case "HEADER":
		return p.parseHeader()
	case "TABLES":
		return p.parseTables()
	case "BLOCKS":
		return p.parseBlocks()
	case "ENTITIES":
		return p.parseEntities()
	default:
		tags, err := p.collectUntil("ENDSEC")
		if err != nil {
			return err
		}
		p.doc.Extra = append(p.doc.Extra, model.RawSection{Name: name.Value, Tags: tags})
		return nil
	}
}

// parseHeader keeps the header tags raw and picks out the variables the
// library cares about.
func (p *parser) parseHeader() error {
	tags, err := p.collectUntil("ENDSEC")
	if err != nil {
		return err
	}
	p.doc.Header = tags
	for i, t := range tags {
		if t.Code == core.CodeVariable && t.Value == "$ACADVER" && i+1 < len(tags) {
			p.doc.Version = tags[i+1].Value
		}
	}
	return nil
}

func (p *parser) parseTables() error {
	for {
		tag, err := p.tr.Next()
		if err != nil {
			return fmt.Errorf("%w: unterminated TABLES section: %v", ErrMalformed, err)
		}
		if !tag.IsEntityType() {
			return fmt.Errorf("%w: line %d: unexpected tag %s in TABLES", ErrMalformed, p.tr.Line(), tag)
		}
		switch tag.Value {
		case "ENDSEC":
			return nil
		case "TABLE":
			if err := p.parseTable(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: line %d: unexpected marker %q in TABLES", ErrMalformed, p.tr.Line(), tag.Value)
		}
	}
}

func (p *parser) parseTable() error {
	tags, err := p.collectUntil("ENDTAB")
	if err != nil {
		return err
	}
	name := ""
	for _, t := range tags {
		if t.Code == core.CodeName {
			name = t.Value
			break
		}
	}
	p.doc.Tables = append(p.doc.Tables, model.RawTable{Name: name, Tags: tags})
	if name == "LAYER" {
		p.parseLayerTable(tags)
	}
	return nil
}

// parseLayerTable extracts structured layer definitions from the raw LAYER
// table tags.
func (p *parser) parseLayerTable(tags []core.Tag) {
	var cur *model.Layer
	flush := func() {
		if cur != nil && cur.Name != "" {
			p.doc.Layers.Add(*cur)
		}
		cur = nil
	}
	for _, t := range tags {
		switch t.Code {
		case core.CodeEntityType:
			flush()
			if t.Value == "LAYER" {
				l := model.NewLayer("", 7)
				cur = &l
			}
		case core.CodeName:
			if cur != nil {
				cur.Name = t.Value
			}
		case core.CodeFlags:
			if cur != nil {
				if v, err := t.Int(); err == nil {
					cur.Flags = int(v)
				}
			}
		case core.CodeColor:
			if cur != nil {
				if v, err := t.Int(); err == nil {
					cur.Color = int(v)
				}
			}
		case core.CodeLinetype:
			if cur != nil {
				cur.Linetype = t.Value
			}
		}
	}
	flush()
}

func (p *parser) parseBlocks() error {
	var block []core.Tag
	inBlock := false
	for {
		tag, err := p.tr.Next()
		if err != nil {
			return fmt.Errorf("%w: unterminated BLOCKS section: %v", ErrMalformed, err)
		}
		if tag.IsEntityType() {
			switch tag.Value {
			case "ENDSEC":
				if inBlock {
					return fmt.Errorf("%w: line %d: BLOCK without ENDBLK", ErrMalformed, p.tr.Line())
				}
				return nil
			case "BLOCK":
				if inBlock {
					return fmt.Errorf("%w: line %d: nested BLOCK", ErrMalformed, p.tr.Line())
				}
				inBlock = true
				block = []core.Tag{tag}
				continue
			case "ENDBLK":
				if !inBlock {
					return fmt.Errorf("%w: line %d: ENDBLK without BLOCK", ErrMalformed, p.tr.Line())
				}
				block = append(block, tag)
				// ENDBLK trailing tags (handle, layer) belong to the block;
				// they are collected until the next marker by the loop below.
				name := ""
				for _, t := range block {
					if t.Code == core.CodeName {
						name = t.Value
						break
					}
				}
				p.doc.Blocks = append(p.doc.Blocks, model.Block{Name: name, Tags: block})
				inBlock = false
				block = nil
				continue
			}
		}
		if inBlock {
			block = append(block, tag)
		} else if len(p.doc.Blocks) > 0 && !tag.IsEntityType() {
			// Trailing non-marker tags after ENDBLK attach to the block just closed.
			last := &p.doc.Blocks[len(p.doc.Blocks)-1]
			last.Tags = append(last.Tags, tag)
		} else {
			return fmt.Errorf("%w: line %d: unexpected tag %s in BLOCKS", ErrMalformed, p.tr.Line(), tag)
		}
	}
}

// followerTypes are entity records that belong to a preceding container
// entity rather than standing alone.
var followerTypes = map[string]bool{
	"VERTEX": true,
	"ATTRIB": true,
	"SEQEND": true,
}

// containerTypes are entity types whose follower records are folded into
// their own tag list.
var containerTypes = map[string]bool{
	"POLYLINE": true,
	"INSERT":   true,
}

func (p *parser) parseEntities() error {
	var cur []core.Tag
	folding := false

	flush := func() {
		if len(cur) > 0 {
			p.doc.AddEntity(model.NewEntity(cur))
		}
		cur = nil
		folding = false
	}

	for {
		tag, err := p.tr.Next()
		if err != nil {
			return fmt.Errorf("%w: unterminated ENTITIES section: %v", ErrMalformed, err)
		}
		if tag.IsEntityType() {
			switch {
			case tag.Value == "ENDSEC":
				flush()
				return nil
			case folding && followerTypes[tag.Value]:
				cur = append(cur, tag)
				if tag.Value == "SEQEND" {
					// SEQEND closes the chain; its trailing tags still
					// belong to it and arrive before the next marker.
					folding = false
				}
			default:
				flush()
				cur = []core.Tag{tag}
				folding = containerTypes[tag.Value]
			}
			continue
		}
		if len(cur) == 0 {
			return fmt.Errorf("%w: line %d: tag %s before first entity", ErrMalformed, p.tr.Line(), tag)
		}
		cur = append(cur, tag)
	}
}

// collectUntil gathers raw tags until a group 0 marker with the given value,
// exclusive. Nested SECTION markers are rejected.
func (p *parser) collectUntil(marker string) ([]core.Tag, error) {
	var tags []core.Tag
	for {
		tag, err := p.tr.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: missing %s: %v", ErrMalformed, marker, err)
		}
		if tag.IsEntityType() {
			if tag.Value == marker {
				return tags, nil
			}
			if tag.Value == "SECTION" {
				return nil, fmt.Errorf("%w: line %d: nested SECTION", ErrMalformed, p.tr.Line())
			}
		}
		tags = append(tags, tag)
	}
}
