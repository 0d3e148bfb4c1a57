package labels

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/dxfkit/model"
)

// SortOrder controls the ordering of extracted labels.
type SortOrder int

const (
	// SortNone keeps drawing order.
	SortNone SortOrder = iota
	// SortAsc sorts labels ascending.
	SortAsc
	// SortDesc sorts labels descending.
	SortDesc
)

// ExtractOptions configures label extraction.
type ExtractOptions struct {
	// FilterNonParts drops labels that the part-designator heuristics
	// classify as not being circuit symbols (annotations, wire gauges,
	// ground markers, free-form notes).
	FilterNonParts bool
	// Sort orders the result.
	Sort SortOrder
}

// Info reports what extraction did.
type Info struct {
	TotalExtracted int // labels found before filtering
	FilteredCount  int // labels removed by the part-designator filter
	FinalCount     int // labels returned
}

// formatCodePattern matches inline MTEXT formatting codes such as \fArial;
// and \H2.5; which are display directives, not content.
var formatCodePattern = regexp.MustCompile(`\\[A-Za-z0-9.]+;`)

// Exclusion rules of the part-designator filter. A label matching any rule is
// judged not to be a part designator.
var nonPartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\(`),             // leading parenthesis: (BK), (M5)
	regexp.MustCompile(`^[0-9]`),          // leading digit: 2.1+, 500DJ
	regexp.MustCompile(`^[A-Z]{1,2}$`),    // short all-caps: E, L, PE
	regexp.MustCompile(`^[A-Z][0-9]+$`),   // letter plus digits: R1, T2
	regexp.MustCompile(`^[A-Z][0-9.]+$`),  // letter plus digits and dots: L1.1, P01
	regexp.MustCompile(`^[A-Za-z]+[+-]$`), // letters ending in + or -: P+, VCC-
	regexp.MustCompile(`GND`),             // ground markers: GND, GND(M4)
	regexp.MustCompile(`^AWG`),            // wire gauges: AWG14, AWG18
	regexp.MustCompile(`^[a-z]+\s`),       // free-form notes: on ..., to ...
	regexp.MustCompile(`^☆`),              // star-marked annotations
	regexp.MustCompile(`^注`),              // notes ("注" prefix)
}

// parenPattern matches a parenthesized substring inside a label, removed
// before the exclusion rules run.
var parenPattern = regexp.MustCompile(`\([^)]*\)`)

// Extract collects the text content of the document's MTEXT entities.
func Extract(doc *model.Document, opts ExtractOptions) ([]string, Info) {
	var info Info
	labels := make([]string, 0, 32)

	for _, e := range doc.Entities {
		if e.Kind != model.KindText || strings.ToUpper(e.DXFType) != "MTEXT" {
			continue
		}
		label := CleanText(e.Text())
		if label == "" {
			continue
		}
		info.TotalExtracted++

		if opts.FilterNonParts {
			cleaned := strings.TrimSpace(parenPattern.ReplaceAllString(label, ""))
			if cleaned == "" || isNonPart(cleaned) {
				info.FilteredCount++
				continue
			}
			label = cleaned
		}
		labels = append(labels, label)
	}

	switch opts.Sort {
	case SortAsc:
		sort.Strings(labels)
	case SortDesc:
		sort.Sort(sort.Reverse(sort.StringSlice(labels)))
	}

	info.FinalCount = len(labels)
	return labels, info
}

// CleanText strips inline formatting codes from MTEXT content and converts
// paragraph breaks (\P) to spaces.
func CleanText(text string) string {
	text = formatCodePattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\P`, " ")
	return strings.TrimSpace(text)
}

func isNonPart(label string) bool {
	for _, p := range nonPartPatterns {
		if p.MatchString(label) {
			return true
		}
	}
	return false
}
