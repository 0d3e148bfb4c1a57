package diff

import (
	"github.com/tsawler/dxfkit/model"
)

// Side identifies which input document an entity came from.
type Side int

const (
	// SideA is the baseline document.
	SideA Side = iota
	// SideB is the candidate document.
	SideB
)

// String returns "A" or "B".
func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Status is the three-way classification of an entity's presence across the
// two compared documents.
type Status int

const (
	// StatusMatched means the entity has a counterpart within tolerance in
	// the other document.
	StatusMatched Status = iota
	// StatusRemoved means the entity is present only in A.
	StatusRemoved
	// StatusAdded means the entity is present only in B.
	StatusAdded
)

// String returns the status name used in summaries.
func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "Unchanged"
	case StatusRemoved:
		return "Removed"
	default:
		return "Added"
	}
}

// MatchResult tags one entity with its classification. Every non-degenerate
// entity from both documents receives exactly one result.
type MatchResult struct {
	Side        Side
	Index       int // position in the input slice of that side
	Entity      *model.Entity
	Status      Status
	Counterpart *model.Entity // non-nil only when Status is StatusMatched
}

// candidate tracks one not-yet-matched entity during matching.
type candidate struct {
	index  int
	entity *model.Entity
}

// Match classifies the entities of baseline a against candidate b under the
// given tolerance. Degenerate entities (no geometry and no content) are
// dropped and receive no result.
//
// Results are ordered: all of A's entities in original order, then all of
// B's.
func Match(a, b []*model.Entity, tol float64) []MatchResult {
	keysA, orderA := bucket(a, tol)
	keysB, orderB := bucket(b, tol)

	matchedA := make(map[int]*model.Entity) // A index -> B counterpart
	matchedB := make(map[int]*model.Entity) // B index -> A counterpart

	// Pass 1: greedy in-order pairing inside each shared bucket. Duplicate
	// geometry pairs deterministically (A's i-th with B's i-th); the surplus
	// side keeps its leftovers.
	for key, listA := range keysA {
		listB, ok := keysB[key]
		if !ok {
			continue
		}
		n := len(listA)
		if len(listB) < n {
			n = len(listB)
		}
		for i := 0; i < n; i++ {
			matchedA[listA[i].index] = listB[i].entity
			matchedB[listB[i].index] = listA[i].entity
		}
	}

	// Pass 2: bounded fallback over the residue. Quantization can split
	// near-identical geometry across adjacent buckets; exact comparison
	// within tolerance recovers those pairs. The scan is restricted to
	// unmatched candidates of the same kind and layer.
	var residueB []candidate
	for _, c := range orderB {
		if _, ok := matchedB[c.index]; !ok {
			residueB = append(residueB, c)
		}
	}
	for _, ca := range orderA {
		if _, ok := matchedA[ca.index]; ok {
			continue
		}
		for i, cb := range residueB {
			if cb.entity == nil {
				continue
			}
			if withinTolerance(ca.entity, cb.entity, tol) {
				matchedA[ca.index] = cb.entity
				matchedB[cb.index] = ca.entity
				residueB[i].entity = nil
				break
			}
		}
	}

	results := make([]MatchResult, 0, len(orderA)+len(orderB))
	for _, c := range orderA {
		r := MatchResult{Side: SideA, Index: c.index, Entity: c.entity, Status: StatusRemoved}
		if counterpart, ok := matchedA[c.index]; ok {
			r.Status = StatusMatched
			r.Counterpart = counterpart
		}
		results = append(results, r)
	}
	for _, c := range orderB {
		r := MatchResult{Side: SideB, Index: c.index, Entity: c.entity, Status: StatusAdded}
		if counterpart, ok := matchedB[c.index]; ok {
			r.Status = StatusMatched
			r.Counterpart = counterpart
		}
		results = append(results, r)
	}
	return results
}

// bucket maps canonical keys to the entities bearing them, preserving
// original order both inside each bucket and in the returned order slice.
// Degenerate entities are excluded.
func bucket(entities []*model.Entity, tol float64) (map[string][]candidate, []candidate) {
	keys := make(map[string][]candidate)
	var order []candidate
	for i, e := range entities {
		key, ok := Canonicalize(e, tol)
		if !ok {
			continue
		}
		c := candidate{index: i, entity: e}
		keys[key] = append(keys[key], c)
		order = append(order, c)
	}
	return keys, order
}
