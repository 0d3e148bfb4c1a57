package model

import (
	"strings"

	"github.com/tsawler/dxfkit/core"
)

// EntityKind identifies the kind of a drawing entity. It is a closed enum:
// the diff engine and the writer switch exhaustively over it, so adding a new
// kind is a compile-time visible change.
type EntityKind int

const (
	// KindOther covers entity types the library passes through without
	// interpreting their geometry codes individually.
	KindOther EntityKind = iota
	// KindLine is a straight line segment (LINE).
	KindLine
	// KindCircle is a full circle (CIRCLE).
	KindCircle
	// KindArc is a circular arc (ARC).
	KindArc
	// KindPolyline is a vertex sequence (LWPOLYLINE or legacy POLYLINE).
	KindPolyline
	// KindText is a text annotation (TEXT or MTEXT).
	KindText
	// KindInsert is a block reference (INSERT).
	KindInsert
)

// String returns the kind name used in summaries and reports.
func (k EntityKind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindCircle:
		return "Circle"
	case KindArc:
		return "Arc"
	case KindPolyline:
		return "Polyline"
	case KindText:
		return "Text"
	case KindInsert:
		return "Insert"
	default:
		return "Other"
	}
}

// KindOf maps a DXF entity type name (the value of its group 0 tag) to an
// EntityKind.
func KindOf(dxfType string) EntityKind {
	switch strings.ToUpper(dxfType) {
	case "LINE":
		return KindLine
	case "CIRCLE":
		return KindCircle
	case "ARC":
		return KindArc
	case "LWPOLYLINE", "POLYLINE":
		return KindPolyline
	case "TEXT", "MTEXT":
		return KindText
	case "INSERT":
		return KindInsert
	default:
		return KindOther
	}
}

// Entity represents one drawing primitive. An Entity is immutable once
// loaded; transformations such as ReLayer return a new value.
//
// Tags holds the complete raw tag sequence of the entity, starting with its
// group 0 type tag. For container entities (legacy POLYLINE, INSERT with
// attributes) the reader folds the follower records (VERTEX, ATTRIB, SEQEND)
// into the container's tag list so the chain round-trips as a unit.
type Entity struct {
	Handle  string
	DXFType string // raw type name, e.g. "LWPOLYLINE"
	Kind    EntityKind
	Layer   string
	Tags    []core.Tag
}

// NewEntity builds an Entity from its raw tags, deriving type, kind, layer
// and handle. The tag slice is retained, not copied.
func NewEntity(tags []core.Tag) *Entity {
	e := &Entity{Tags: tags}
	for _, t := range tags {
		switch t.Code {
		case core.CodeEntityType:
			if e.DXFType == "" {
				e.DXFType = t.Value
			}
		case core.CodeLayer:
			if e.Layer == "" {
				e.Layer = t.Value
			}
		case core.CodeHandle:
			if e.Handle == "" {
				e.Handle = t.Value
			}
		}
	}
	e.Kind = KindOf(e.DXFType)
	return e
}

// Text returns the annotation content for text entities: the values of group
// 3 continuation chunks and the group 1 value, concatenated in tag order.
// For non-text entities it returns the group 1 value if present.
func (e *Entity) Text() string {
	var sb strings.Builder
	for _, t := range e.Tags {
		if t.Code == core.CodeText || t.Code == core.CodeTextChunk {
			sb.WriteString(t.Value)
		}
	}
	return sb.String()
}

// Name returns the group 2 name of the entity. For INSERT entities this is
// the referenced block name.
func (e *Entity) Name() string {
	for _, t := range e.Tags {
		if t.Code == core.CodeName {
			return t.Value
		}
	}
	return ""
}

// Geometry returns the entity's comparable geometry as a flat ordered
// sequence of coordinate and scalar values. The selection of group codes is
// kind-specific; tag order is preserved, so vertex order is significant for
// polylines. Text entities return nil: their identity is their content, not
// their position.
func (e *Entity) Geometry() []float64 {
	switch e.Kind {
	case KindLine:
		return e.floats(geomCodes{10: true, 20: true, 30: true, 11: true, 21: true, 31: true})
	case KindCircle:
		return e.floats(geomCodes{10: true, 20: true, 30: true, 40: true})
	case KindArc:
		return e.floats(geomCodes{10: true, 20: true, 30: true, 40: true, 50: true, 51: true})
	case KindPolyline:
		vals := e.floats(geomCodes{10: true, 20: true, 30: true, 42: true})
		// The closed flag is part of the shape's identity.
		if e.flags()&1 != 0 {
			vals = append(vals, 1)
		} else {
			vals = append(vals, 0)
		}
		return vals
	case KindText:
		return nil
	case KindInsert:
		return e.floats(geomCodes{10: true, 20: true, 30: true, 41: true, 42: true, 43: true, 50: true})
	default:
		return e.genericGeometry()
	}
}

// ReLayer returns a copy of the entity moved to the given layer. Every group
// 8 tag in the raw sequence is rewritten, so folded follower records (VERTEX,
// ATTRIB) move together with their container.
func (e *Entity) ReLayer(layer string) *Entity {
	tags := make([]core.Tag, len(e.Tags))
	copy(tags, e.Tags)
	for i, t := range tags {
		if t.Code == core.CodeLayer {
			tags[i].Value = layer
		}
	}
	return &Entity{
		Handle:  e.Handle,
		DXFType: e.DXFType,
		Kind:    e.Kind,
		Layer:   layer,
		Tags:    tags,
	}
}

type geomCodes map[int]bool

func (e *Entity) floats(codes geomCodes) []float64 {
	var vals []float64
	for _, t := range e.Tags {
		if !codes[t.Code] {
			continue
		}
		v, err := t.Float()
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}

// genericGeometry collects every coordinate and scalar group in tag order.
// Used for kinds the library does not model individually, so that they still
// participate in the diff deterministically.
func (e *Entity) genericGeometry() []float64 {
	var vals []float64
	for _, t := range e.Tags {
		if !core.IsCoordCode(t.Code) && !core.IsFloatCode(t.Code) {
			continue
		}
		v, err := t.Float()
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}

func (e *Entity) flags() int {
	for _, t := range e.Tags {
		if t.Code == core.CodeFlags {
			v, err := t.Int()
			if err == nil {
				return int(v)
			}
		}
	}
	return 0
}
