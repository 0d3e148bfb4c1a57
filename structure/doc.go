// Package structure provides raw structural inspection of drawings.
//
// [Dump] produces one row per tag of the document: the section it belongs
// to, the entity or variable it is part of, the group code with its meaning,
// and the raw value. The rows are suitable for CSV export and review.
// [Outline] renders the same structure as a compact markdown hierarchy for
// documentation.
package structure
