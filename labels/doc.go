// Package labels extracts text annotations from drawings and compares label
// lists.
//
// # Extraction
//
// [Extract] collects the content of MTEXT entities in drawing order,
// stripping inline formatting codes (\f...; font switches and the like) and
// converting paragraph breaks to spaces. An optional filter keeps only labels
// that look like part designators, using the classification heuristics of the
// upstream engineering review workflow; see [ExtractOptions].
//
// # Comparison
//
// [CompareSets] compares two plain label lists under case-normalized, trimmed
// equality with multiplicity: three identical labels on one side and two on
// the other report one surplus. The result renders as a markdown report and,
// for quick inspection, as a unified diff of the normalized lists.
package labels
