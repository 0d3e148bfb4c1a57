// Package diff implements the geometric difference engine: given a baseline
// document A and a candidate B plus a numeric tolerance, it classifies every
// entity as unchanged, removed (present only in A), or added (present only in
// B), and builds a delta document encoding the classification.
//
// # Matching
//
// Comparison runs in two passes. The first pass buckets entities from both
// documents by a canonical key built from the kind, the layer, and the
// geometry quantized to the nearest multiple of the tolerance, and pairs
// bucket members greedily in
// original order. Bucketing keeps the common case linear in the entity count.
//
// Quantization splits values that straddle a bucket boundary into different
// keys even when they are within tolerance of each other, so a second,
// bounded pass runs over the unmatched residue: each leftover A entity scans
// leftover B entities of the same kind and layer and accepts the first whose
// every geometric value lies within the tolerance under exact comparison. The
// residue is expected to be small, which keeps the quadratic fallback cheap.
//
// # Polylines
//
// Polyline geometry is compared as a literal ordered vertex sequence; closed
// shapes re-exported starting from a different vertex will not match. If
// source drawings regularly rotate the start vertex of closed shapes this
// will over-report differences; cyclic matching is deliberately not applied
// until that behavior is confirmed against real exports.
//
// # Delta documents
//
// [BuildDelta] produces a new document carrying unchanged entities once (from
// A), removed entities re-layered onto a removal marker layer, and added
// entities re-layered onto an addition marker layer. Marker layer names and
// colors are configurable through [MarkerOptions].
package diff
