// Package model provides the intermediate representation (IR) for parsed DXF
// drawings.
//
// This package defines the user-facing data structures produced by the reader
// and consumed by the diff, labels, and structure packages. All analysis
// operations work on these types.
//
// # Documents
//
// The [Document] type represents a complete drawing: the declared format
// version, raw header variables, the layer table, block definitions, and the
// ordered entity list:
//
//	doc := model.NewDocument()
//	doc.AddEntity(entity)
//
// Documents are never mutated in place by the library. Transformations such as
// the delta builder in package diff produce new Document values.
//
// # Entities
//
// [Entity] is one drawing primitive. Its [EntityKind] is a closed enum so
// that normalization and serialization can switch exhaustively over kinds.
// The raw tag list of every entity is retained verbatim, which makes
// re-serialization lossless for attributes the library does not interpret.
//
// # Geometry
//
// Entity geometry is exposed through [Entity.Geometry] as a flat ordered
// sequence of coordinate and scalar values, which is the representation the
// comparison engine quantizes and matches on.
package model
