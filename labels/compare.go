package labels

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Comparison is the result of comparing two label lists as multisets.
// OnlyInA and OnlyInB are multiplicity-expanded and sorted: a label present
// three times in A and once in B appears twice in OnlyInA.
type Comparison struct {
	TotalA  int
	TotalB  int
	UniqueA int
	UniqueB int

	CommonCount int // distinct labels present on both sides
	OnlyInA     []string
	OnlyInB     []string
}

// Normalize canonicalizes a label for comparison: surrounding whitespace is
// trimmed and the label is upper-cased.
func Normalize(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// CompareSets compares two label lists under normalized multiset equality.
// Empty labels are ignored on both sides.
func CompareSets(listA, listB []string) Comparison {
	countA := counter(listA)
	countB := counter(listB)

	c := Comparison{
		TotalA:  total(countA),
		TotalB:  total(countB),
		UniqueA: len(countA),
		UniqueB: len(countB),
	}

	for label := range countA {
		if _, ok := countB[label]; ok {
			c.CommonCount++
		}
	}
	c.OnlyInA = surplus(countA, countB)
	c.OnlyInB = surplus(countB, countA)
	return c
}

// Markdown renders the comparison as a markdown report.
func (c Comparison) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Label comparison\n\n")
	sb.WriteString("## Overview\n")
	fmt.Fprintf(&sb, "- Labels in A: %d (unique: %d)\n", c.TotalA, c.UniqueA)
	fmt.Fprintf(&sb, "- Labels in B: %d (unique: %d)\n", c.TotalB, c.UniqueB)
	fmt.Fprintf(&sb, "- Common unique labels: %d\n", c.CommonCount)
	fmt.Fprintf(&sb, "- Only in A: %d\n", len(c.OnlyInA))
	fmt.Fprintf(&sb, "- Only in B: %d\n\n", len(c.OnlyInB))

	writeList := func(title string, list []string) {
		sb.WriteString("## " + title + "\n")
		if len(list) == 0 {
			sb.WriteString("- none\n")
		}
		for _, label := range list {
			sb.WriteString("- " + label + "\n")
		}
		sb.WriteString("\n")
	}
	writeList("Only in A", c.OnlyInA)
	writeList("Only in B", c.OnlyInB)
	return sb.String()
}

// UnifiedDiff renders the two normalized, sorted label lists as a unified
// diff for quick inspection in review tools.
func UnifiedDiff(listA, listB []string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(joined(listA)),
		B:        difflib.SplitLines(joined(listB)),
		FromFile: "labels-a",
		ToFile:   "labels-b",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func joined(list []string) string {
	normalized := make([]string, 0, len(list))
	for _, label := range list {
		if n := Normalize(label); n != "" {
			normalized = append(normalized, n)
		}
	}
	sort.Strings(normalized)
	if len(normalized) == 0 {
		return ""
	}
	return strings.Join(normalized, "\n") + "\n"
}

func counter(list []string) map[string]int {
	counts := make(map[string]int, len(list))
	for _, label := range list {
		if n := Normalize(label); n != "" {
			counts[n]++
		}
	}
	return counts
}

func total(counts map[string]int) int {
	sum := 0
	for _, n := range counts {
		sum += n
	}
	return sum
}

// surplus returns the multiplicity-expanded labels of a minus b, sorted.
func surplus(a, b map[string]int) []string {
	var out []string
	for label, n := range a {
		extra := n - b[label]
		for i := 0; i < extra; i++ {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}
