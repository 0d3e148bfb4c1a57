package diff

import (
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/dxfkit/model"
)

// Canonicalize computes the tolerance-quantized comparison key for an entity.
// Entities with equal keys are match candidates; exact comparison within
// tolerance is the final acceptance test in the fallback pass.
//
// Geometry values are quantized as round(v/tol)*tol, which buckets values
// differing by less than roughly half the tolerance into the same key. Text
// entities key on their trimmed content instead and ignore quantization.
//
// The second return value is false for degenerate entities (no geometry and
// no content); those never participate in the diff.
func Canonicalize(e *model.Entity, tol float64) (string, bool) {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteByte('|')
	sb.WriteString(strings.ToUpper(e.Layer))
	sb.WriteByte('|')

	if e.Kind == model.KindText {
		text := strings.TrimSpace(e.Text())
		if text == "" {
			return "", false
		}
		sb.WriteString(text)
		return sb.String(), true
	}

	// Block references are identified by the referenced block name on top of
	// their placement geometry.
	if e.Kind == model.KindInsert {
		sb.WriteString(strings.ToUpper(e.Name()))
		sb.WriteByte('|')
	}

	geom := e.Geometry()
	if len(geom) == 0 {
		return "", false
	}
	for i, v := range geom {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(quantize(v, tol), 'g', -1, 64))
	}
	return sb.String(), true
}

// quantize rounds v to the nearest multiple of tol.
func quantize(v, tol float64) float64 {
	q := math.Round(v/tol) * tol
	if q == 0 {
		// Normalize -0 so it formats identically to +0.
		return 0
	}
	return q
}

// withinTolerance reports whether the two entities' geometry vectors have the
// same shape and every corresponding value differs by at most tol. Text
// content, kind, and block name must agree exactly; this is the acceptance
// test of the fallback pass.
func withinTolerance(a, b *model.Entity, tol float64) bool {
	if a.Kind != b.Kind {
		return false
	}
	if !strings.EqualFold(a.Layer, b.Layer) {
		return false
	}
	if a.Kind == model.KindText {
		return strings.TrimSpace(a.Text()) == strings.TrimSpace(b.Text())
	}
	if a.Kind == model.KindInsert && !strings.EqualFold(a.Name(), b.Name()) {
		return false
	}
	ga, gb := a.Geometry(), b.Geometry()
	if len(ga) != len(gb) {
		return false
	}
	for i := range ga {
		if math.Abs(ga[i]-gb[i]) > tol {
			return false
		}
	}
	return true
}
