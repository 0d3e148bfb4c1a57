package diff

import (
	"github.com/tsawler/dxfkit/model"
)

// MarkerOptions configures the synthetic layers that carry removed and added
// entities in the delta document.
type MarkerOptions struct {
	RemovedLayer string
	AddedLayer   string
	RemovedColor int // ACI color number
	AddedColor   int // ACI color number
}

// DefaultMarkers returns the standard marker configuration: DIFF_REMOVED in
// red and DIFF_ADDED in green.
func DefaultMarkers() MarkerOptions {
	return MarkerOptions{
		RemovedLayer: "DIFF_REMOVED",
		AddedLayer:   "DIFF_ADDED",
		RemovedColor: 1,
		AddedColor:   3,
	}
}

// BuildDelta builds the output document for a comparison. The result carries
// A's header, tables, and version; its layer table is the union of both
// inputs' layers plus the two marker layers. Unchanged entities are emitted
// once, from A, unmodified; removed entities from A re-layered onto the
// removal marker; added entities from B re-layered onto the addition marker.
// Block definitions are merged so that added INSERT entities keep their
// referenced blocks. Neither input document is modified.
func BuildDelta(docA, docB *model.Document, results []MatchResult, markers MarkerOptions) *model.Document {
	out := model.NewDocument()
	out.Version = docA.Version
	out.Codepage = docA.Codepage
	out.Header = docA.Header
	out.Tables = docA.Tables
	out.Extra = docA.Extra

	out.Layers = docA.Layers.Clone()
	for _, l := range docB.Layers.All() {
		if !out.Layers.Has(l.Name) {
			out.Layers.Add(l)
		}
	}
	out.Layers.Add(model.Layer{Name: markers.RemovedLayer, Color: markers.RemovedColor, Linetype: "CONTINUOUS"})
	out.Layers.Add(model.Layer{Name: markers.AddedLayer, Color: markers.AddedColor, Linetype: "CONTINUOUS"})

	out.Blocks = append(out.Blocks, docA.Blocks...)
	for _, b := range docB.Blocks {
		if !out.HasBlock(b.Name) {
			out.Blocks = append(out.Blocks, b)
		}
	}

	// Results arrive ordered A then B, each side in original document order,
	// so emission preserves A's drawing order followed by B's additions.
	for _, r := range results {
		switch r.Status {
		case StatusMatched:
			if r.Side == SideA {
				out.AddEntity(r.Entity)
			}
		case StatusRemoved:
			out.AddEntity(r.Entity.ReLayer(markers.RemovedLayer))
		case StatusAdded:
			out.AddEntity(r.Entity.ReLayer(markers.AddedLayer))
		}
	}
	return out
}
