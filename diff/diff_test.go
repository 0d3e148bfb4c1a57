package diff

import (
	"errors"
	"testing"

	"github.com/tsawler/dxfkit/core"
	"github.com/tsawler/dxfkit/model"
)

func line(layer string, x1, y1, x2, y2 float64) *model.Entity {
	return model.NewEntity([]core.Tag{
		{Code: 0, Value: "LINE"},
		{Code: 8, Value: layer},
		core.FloatTag(10, x1), core.FloatTag(20, y1),
		core.FloatTag(11, x2), core.FloatTag(21, y2),
	})
}

func circle(layer string, cx, cy, r float64) *model.Entity {
	return model.NewEntity([]core.Tag{
		{Code: 0, Value: "CIRCLE"},
		{Code: 8, Value: layer},
		core.FloatTag(10, cx), core.FloatTag(20, cy),
		core.FloatTag(40, r),
	})
}

func mtext(layer, content string) *model.Entity {
	return model.NewEntity([]core.Tag{
		{Code: 0, Value: "MTEXT"},
		{Code: 8, Value: layer},
		core.FloatTag(10, 0), core.FloatTag(20, 0),
		{Code: 1, Value: content},
	})
}

func summarize(t *testing.T, a, b []*model.Entity, tol float64) Summary {
	t.Helper()
	s, err := Classify(Match(a, b, tol))
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	return s
}

func TestIdenticalLine(t *testing.T) {
	// Scenario: one identical line on layer WIRE in both documents.
	a := []*model.Entity{line("WIRE", 0, 0, 10, 0)}
	b := []*model.Entity{line("WIRE", 0, 0, 10, 0)}

	s := summarize(t, a, b, 1e-6)
	if s.Unchanged != 1 || s.Removed != 0 || s.Added != 0 {
		t.Errorf("summary = %s, want unchanged=1 removed=0 added=0", s)
	}
	if s.ByKind[model.KindLine].Unchanged != 1 {
		t.Errorf("ByKind = %+v", s.ByKind)
	}
}

func TestCircleWithinTolerance(t *testing.T) {
	// Scenario: circle center moved by 5e-8, well inside tolerance 1e-6.
	a := []*model.Entity{circle("WIRE", 5, 5, 2)}
	b := []*model.Entity{circle("WIRE", 5.00000005, 5, 2)}

	s := summarize(t, a, b, 1e-6)
	if s.Unchanged != 1 || s.Changed() {
		t.Errorf("summary = %s, want one unchanged circle", s)
	}
}

func TestRemovedText(t *testing.T) {
	// Scenario: label "R1" present only in A.
	a := []*model.Entity{mtext("NOTES", "R1")}
	var b []*model.Entity

	s := summarize(t, a, b, 1e-6)
	if s.Removed != 1 || s.Added != 0 {
		t.Errorf("summary = %s, want removed=1 added=0", s)
	}
	if s.ByKind[model.KindText].Removed != 1 {
		t.Errorf("ByKind = %+v", s.ByKind)
	}
}

func TestDuplicateCountPreserved(t *testing.T) {
	// Scenario: two identical overlapping lines in A, one in B. The count
	// difference must be preserved, not collapsed.
	a := []*model.Entity{line("WIRE", 0, 0, 1, 1), line("WIRE", 0, 0, 1, 1)}
	b := []*model.Entity{line("WIRE", 0, 0, 1, 1)}

	s := summarize(t, a, b, 1e-6)
	if s.Unchanged != 1 || s.Removed != 1 || s.Added != 0 {
		t.Errorf("summary = %s, want unchanged=1 removed=1", s)
	}
}

func TestIdempotence(t *testing.T) {
	entities := []*model.Entity{
		line("WIRE", 0, 0, 10, 0),
		circle("WIRE", 5, 5, 2),
		mtext("NOTES", "R1"),
		line("POWER", -3, 2, 7, 7),
	}
	for _, tol := range []float64{1e-8, 1e-6, 1e-3, 1e-1} {
		s := summarize(t, entities, entities, tol)
		if s.Changed() {
			t.Errorf("tol=%g: compare(A, A) = %s, want no differences", tol, s)
		}
		if s.Unchanged != len(entities) {
			t.Errorf("tol=%g: unchanged = %d, want %d", tol, s.Unchanged, len(entities))
		}
	}
}

func TestSymmetry(t *testing.T) {
	a := []*model.Entity{
		line("WIRE", 0, 0, 10, 0),
		circle("WIRE", 5, 5, 2),
		mtext("NOTES", "R1"),
	}
	b := []*model.Entity{
		line("WIRE", 0, 0, 10, 0),
		circle("WIRE", 6, 6, 2),
		mtext("NOTES", "R2"),
	}

	ab := summarize(t, a, b, 1e-6)
	ba := summarize(t, b, a, 1e-6)

	if ab.Removed != ba.Added || ab.Added != ba.Removed {
		t.Errorf("swap asymmetry: A→B %s, B→A %s", ab, ba)
	}
	if ab.Unchanged != ba.Unchanged {
		t.Errorf("unchanged differs under swap: %d vs %d", ab.Unchanged, ba.Unchanged)
	}
}

func TestToleranceMonotonicity(t *testing.T) {
	a := []*model.Entity{
		line("WIRE", 0, 0, 10, 0),
		circle("WIRE", 5, 5, 2),
	}
	b := []*model.Entity{
		line("WIRE", 0.0004, 0, 10, 0),
		circle("WIRE", 5, 5.02, 2),
	}

	prev := -1
	for _, tol := range []float64{1e-6, 1e-4, 1e-3, 1e-1} {
		s := summarize(t, a, b, tol)
		delta := s.Removed + s.Added
		if prev >= 0 && delta > prev {
			t.Errorf("tol=%g: removed+added=%d grew from %d", tol, delta, prev)
		}
		prev = delta
	}
	// At the loosest tolerance both deviations fit.
	if s := summarize(t, a, b, 1e-1); s.Changed() {
		t.Errorf("tol=0.1: %s, want everything matched", s)
	}
}

func TestFallbackRecoversBucketBoundary(t *testing.T) {
	// 0.49 and 0.51 quantize to different buckets at tol=1 but differ by
	// only 0.02; the fallback pass must recover the pair.
	a := []*model.Entity{line("WIRE", 0.49, 0, 10, 0)}
	b := []*model.Entity{line("WIRE", 0.51, 0, 10, 0)}

	s := summarize(t, a, b, 1.0)
	if s.Unchanged != 1 || s.Changed() {
		t.Errorf("summary = %s, want boundary pair matched", s)
	}
}

func TestFallbackRestrictedToKindAndLayer(t *testing.T) {
	// Same geometry, different layer: must not match.
	a := []*model.Entity{line("WIRE", 0, 0, 1, 0)}
	b := []*model.Entity{line("POWER", 0, 0, 1, 0)}

	s := summarize(t, a, b, 1e-1)
	if s.Removed != 1 || s.Added != 1 {
		t.Errorf("summary = %s, want removed=1 added=1 across layers", s)
	}
}

func TestTextPositionIgnored(t *testing.T) {
	// Text identity is content and layer; position is not compared.
	a := []*model.Entity{mtext("NOTES", "R1")}
	b := []*model.Entity{model.NewEntity([]core.Tag{
		{Code: 0, Value: "MTEXT"},
		{Code: 8, Value: "NOTES"},
		core.FloatTag(10, 100), core.FloatTag(20, 100),
		{Code: 1, Value: " R1 "},
	})}

	s := summarize(t, a, b, 1e-6)
	if s.Unchanged != 1 {
		t.Errorf("summary = %s, want moved text matched on trimmed content", s)
	}
}

func TestDegenerateEntitiesDropped(t *testing.T) {
	empty := model.NewEntity([]core.Tag{
		{Code: 0, Value: "MTEXT"},
		{Code: 8, Value: "NOTES"},
		{Code: 1, Value: "   "},
	})
	a := []*model.Entity{empty, line("WIRE", 0, 0, 1, 0)}
	b := []*model.Entity{line("WIRE", 0, 0, 1, 0)}

	results := Match(a, b, 1e-6)
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2 (degenerate dropped)", len(results))
	}
	s, err := Classify(results)
	if err != nil {
		t.Fatal(err)
	}
	if s.Unchanged != 1 || s.Changed() {
		t.Errorf("summary = %s", s)
	}
}

func TestInsertBlockNameSignificant(t *testing.T) {
	ins := func(block string) *model.Entity {
		return model.NewEntity([]core.Tag{
			{Code: 0, Value: "INSERT"},
			{Code: 8, Value: "PARTS"},
			{Code: 2, Value: block},
			core.FloatTag(10, 3), core.FloatTag(20, 4),
		})
	}
	s := summarize(t, []*model.Entity{ins("CONN")}, []*model.Entity{ins("RELAY")}, 1e-6)
	if s.Unchanged != 0 || s.Removed != 1 || s.Added != 1 {
		t.Errorf("summary = %s, want block rename reported as remove+add", s)
	}
}

func TestClassifyInconsistent(t *testing.T) {
	e := line("WIRE", 0, 0, 1, 0)

	t.Run("duplicate tag", func(t *testing.T) {
		results := []MatchResult{
			{Side: SideA, Index: 0, Entity: e, Status: StatusRemoved},
			{Side: SideA, Index: 0, Entity: e, Status: StatusRemoved},
		}
		if _, err := Classify(results); !errors.Is(err, ErrInconsistent) {
			t.Errorf("expected ErrInconsistent, got %v", err)
		}
	})

	t.Run("added on side A", func(t *testing.T) {
		results := []MatchResult{{Side: SideA, Index: 0, Entity: e, Status: StatusAdded}}
		if _, err := Classify(results); !errors.Is(err, ErrInconsistent) {
			t.Errorf("expected ErrInconsistent, got %v", err)
		}
	})

	t.Run("matched without counterpart", func(t *testing.T) {
		results := []MatchResult{{Side: SideA, Index: 0, Entity: e, Status: StatusMatched}}
		if _, err := Classify(results); !errors.Is(err, ErrInconsistent) {
			t.Errorf("expected ErrInconsistent, got %v", err)
		}
	})
}

func TestCanonicalizeQuantization(t *testing.T) {
	tests := []struct {
		name string
		a, b *model.Entity
		tol  float64
		same bool
	}{
		{"identical", line("W", 1, 2, 3, 4), line("W", 1, 2, 3, 4), 1e-6, true},
		{"sub-half-tolerance", circle("W", 5, 5, 2), circle("W", 5.0000000005, 5, 2), 1e-6, true},
		{"above tolerance", circle("W", 5, 5, 2), circle("W", 5.1, 5, 2), 1e-6, false},
		{"layer case-insensitive", line("Wire", 0, 0, 1, 1), line("WIRE", 0, 0, 1, 1), 1e-6, true},
		{"negative zero", line("W", -1e-12, 0, 1, 1), line("W", 0, 0, 1, 1), 1e-6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, okA := Canonicalize(tt.a, tt.tol)
			kb, okB := Canonicalize(tt.b, tt.tol)
			if !okA || !okB {
				t.Fatal("unexpected degenerate entity")
			}
			if (ka == kb) != tt.same {
				t.Errorf("keys %q vs %q, want same=%v", ka, kb, tt.same)
			}
		})
	}
}

func TestBuildDelta(t *testing.T) {
	docA := model.NewDocument()
	docA.Version = "AC1009"
	docA.Layers.Add(model.NewLayer("WIRE", 7))
	docA.AddEntity(line("WIRE", 0, 0, 10, 0)) // unchanged
	docA.AddEntity(mtext("NOTES", "R1"))      // removed

	docB := model.NewDocument()
	docB.Layers.Add(model.NewLayer("POWER", 5))
	docB.AddEntity(line("WIRE", 0, 0, 10, 0))  // unchanged
	docB.AddEntity(circle("POWER", 5, 5, 2))   // added

	results := Match(docA.Entities, docB.Entities, 1e-6)
	out := BuildDelta(docA, docB, results, DefaultMarkers())

	if out.Version != "AC1009" {
		t.Errorf("version = %q, want AC1009", out.Version)
	}

	for _, name := range []string{"WIRE", "POWER", "DIFF_REMOVED", "DIFF_ADDED"} {
		if !out.Layers.Has(name) {
			t.Errorf("missing layer %s in delta", name)
		}
	}
	removed, _ := out.Layers.Get("DIFF_REMOVED")
	added, _ := out.Layers.Get("DIFF_ADDED")
	if removed.Color != 1 || added.Color != 3 {
		t.Errorf("marker colors = %d/%d, want 1/3", removed.Color, added.Color)
	}

	if out.EntityCount() != 3 {
		t.Fatalf("entity count = %d, want 3", out.EntityCount())
	}
	// Unchanged first (from A, original layer), then removed, then added.
	if out.Entities[0].Layer != "WIRE" {
		t.Errorf("unchanged entity layer = %q, want WIRE", out.Entities[0].Layer)
	}
	if out.Entities[1].Layer != "DIFF_REMOVED" || out.Entities[1].Text() != "R1" {
		t.Errorf("removed entity = %q on %q", out.Entities[1].Text(), out.Entities[1].Layer)
	}
	if out.Entities[2].Layer != "DIFF_ADDED" || out.Entities[2].Kind != model.KindCircle {
		t.Errorf("added entity kind = %v on %q", out.Entities[2].Kind, out.Entities[2].Layer)
	}

	// Inputs untouched.
	if docA.Entities[1].Layer != "NOTES" || docB.Entities[1].Layer != "POWER" {
		t.Error("BuildDelta mutated an input document")
	}
}
