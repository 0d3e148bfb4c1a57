package labels

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"k1", "K1"},
		{"  CN3  ", "CN3"},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCompareSets(t *testing.T) {
	a := []string{"K1", "K1", "K1", "CN3", "r5"}
	b := []string{"k1", "K1", "CN3", "SW2"}

	c := CompareSets(a, b)

	if c.TotalA != 5 || c.UniqueA != 3 {
		t.Errorf("A counts = %d/%d, want 5/3", c.TotalA, c.UniqueA)
	}
	if c.TotalB != 4 || c.UniqueB != 3 {
		t.Errorf("B counts = %d/%d, want 4/3", c.TotalB, c.UniqueB)
	}
	if c.CommonCount != 2 {
		t.Errorf("CommonCount = %d, want 2 (K1, CN3)", c.CommonCount)
	}

	// K1 surplus of one plus R5, multiplicity-expanded and sorted.
	if strings.Join(c.OnlyInA, ",") != "K1,R5" {
		t.Errorf("OnlyInA = %v, want [K1 R5]", c.OnlyInA)
	}
	if strings.Join(c.OnlyInB, ",") != "SW2" {
		t.Errorf("OnlyInB = %v, want [SW2]", c.OnlyInB)
	}
}

func TestCompareSetsIgnoresEmpty(t *testing.T) {
	c := CompareSets([]string{"", "  ", "K1"}, []string{"K1"})
	if c.TotalA != 1 || c.TotalB != 1 {
		t.Errorf("totals = %d/%d, want 1/1", c.TotalA, c.TotalB)
	}
	if len(c.OnlyInA) != 0 || len(c.OnlyInB) != 0 {
		t.Errorf("surpluses = %v / %v, want none", c.OnlyInA, c.OnlyInB)
	}
}

func TestComparisonMarkdown(t *testing.T) {
	c := CompareSets([]string{"K1"}, []string{"CN3"})
	md := c.Markdown()

	for _, want := range []string{
		"# Label comparison",
		"## Only in A",
		"- K1",
		"## Only in B",
		"- CN3",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	empty := CompareSets(nil, nil).Markdown()
	if !strings.Contains(empty, "- none") {
		t.Errorf("empty comparison should render 'none':\n%s", empty)
	}
}

func TestUnifiedDiff(t *testing.T) {
	out, err := UnifiedDiff([]string{"K1", "R5"}, []string{"K1", "SW2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "-R5") || !strings.Contains(out, "+SW2") {
		t.Errorf("diff missing expected hunks:\n%s", out)
	}

	same, err := UnifiedDiff([]string{"K1"}, []string{"k1"})
	if err != nil {
		t.Fatal(err)
	}
	if same != "" {
		t.Errorf("identical normalized lists should produce empty diff, got:\n%s", same)
	}
}
