package diff

import (
	"errors"
	"fmt"

	"github.com/tsawler/dxfkit/model"
)

// ErrInconsistent indicates the classifier was handed a match result set
// that violates the matcher's invariants: an entity tagged twice, or a tag
// that cannot belong to the entity's side. It signals a bug in the matcher
// and is never recovered from.
var ErrInconsistent = errors.New("diff: inconsistent match results")

// KindCounts holds per-kind classification counts.
type KindCounts struct {
	Unchanged int
	Removed   int
	Added     int
}

// Summary aggregates the classification of one comparison.
type Summary struct {
	Unchanged int
	Removed   int
	Added     int
	ByKind    map[model.EntityKind]KindCounts
}

// Changed reports whether the comparison found any difference.
func (s Summary) Changed() bool {
	return s.Removed > 0 || s.Added > 0
}

// String renders the summary in compact single-line form.
func (s Summary) String() string {
	return fmt.Sprintf("unchanged=%d removed=%d added=%d", s.Unchanged, s.Removed, s.Added)
}

// Classify aggregates match results into a Summary. Matched entities are
// counted once, from side A, so a pair contributes a single unchanged entry.
// Inconsistent input yields ErrInconsistent.
func Classify(results []MatchResult) (Summary, error) {
	summary := Summary{ByKind: make(map[model.EntityKind]KindCounts)}
	seen := make(map[[2]int]bool, len(results))

	for _, r := range results {
		id := [2]int{int(r.Side), r.Index}
		if seen[id] {
			return Summary{}, fmt.Errorf("%w: entity %s/%d tagged twice", ErrInconsistent, r.Side, r.Index)
		}
		seen[id] = true

		counts := summary.ByKind[r.Entity.Kind]
		switch r.Status {
		case StatusMatched:
			if r.Counterpart == nil {
				return Summary{}, fmt.Errorf("%w: entity %s/%d matched without counterpart", ErrInconsistent, r.Side, r.Index)
			}
			if r.Side == SideA {
				summary.Unchanged++
				counts.Unchanged++
			}
		case StatusRemoved:
			if r.Side != SideA {
				return Summary{}, fmt.Errorf("%w: entity %s/%d tagged Removed", ErrInconsistent, r.Side, r.Index)
			}
			summary.Removed++
			counts.Removed++
		case StatusAdded:
			if r.Side != SideB {
				return Summary{}, fmt.Errorf("%w: entity %s/%d tagged Added", ErrInconsistent, r.Side, r.Index)
			}
			summary.Added++
			counts.Added++
		default:
			return Summary{}, fmt.Errorf("%w: entity %s/%d has unknown status %d", ErrInconsistent, r.Side, r.Index, r.Status)
		}
		summary.ByKind[r.Entity.Kind] = counts
	}
	return summary, nil
}
