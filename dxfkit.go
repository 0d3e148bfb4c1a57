// Package dxfkit compares CAD drawings in DXF format and reports their
// geometric differences.
//
// Basic usage:
//
//	summary, err := dxfkit.Compare("before.dxf", "after.dxf", "delta.dxf", 1e-6)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(summary)
//
// The delta drawing contains every entity from both inputs: unchanged
// entities keep their original layers, while removed and added entities are
// moved to marker layers (DIFF_REMOVED and DIFF_ADDED by default) so the
// change set is visible when the file is opened in a CAD viewer.
//
// For inspecting a single drawing, Open returns a fluent accessor:
//
//	outline, err := dxfkit.Open("drawing.dxf").Outline()
//
// The lower-level reader, diff, and writer packages are also available.
package dxfkit

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/dxfkit/diff"
	"github.com/tsawler/dxfkit/labels"
	"github.com/tsawler/dxfkit/model"
	"github.com/tsawler/dxfkit/reader"
	"github.com/tsawler/dxfkit/structure"
	"github.com/tsawler/dxfkit/writer"
)

// ErrTolerance is returned when the comparison tolerance is not a positive
// finite number.
var ErrTolerance = errors.New("dxfkit: tolerance must be a positive finite number")

// Compare loads two drawings, classifies every entity as unchanged, removed,
// or added under the given tolerance, and writes a delta drawing to outPath.
// An empty outPath skips writing and only returns the summary.
//
// The two inputs are loaded concurrently.
func Compare(pathA, pathB, outPath string, tolerance float64, opts ...Option) (diff.Summary, error) {
	return CompareContext(context.Background(), pathA, pathB, outPath, tolerance, opts...)
}

// CompareContext is Compare with an explicit context governing the load phase.
func CompareContext(ctx context.Context, pathA, pathB, outPath string, tolerance float64, opts ...Option) (diff.Summary, error) {
	if tolerance <= 0 || math.IsInf(tolerance, 0) || math.IsNaN(tolerance) {
		return diff.Summary{}, fmt.Errorf("%w: got %v", ErrTolerance, tolerance)
	}

	cfg := defaultCompareOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger

	var docA, docB *model.Document
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := reader.Load(pathA)
		log.LogLoad(ctx, pathA, count(doc), err)
		if err != nil {
			return fmt.Errorf("loading %s: %w", pathA, err)
		}
		docA = doc
		return nil
	})
	g.Go(func() error {
		doc, err := reader.Load(pathB)
		log.LogLoad(ctx, pathB, count(doc), err)
		if err != nil {
			return fmt.Errorf("loading %s: %w", pathB, err)
		}
		docB = doc
		return nil
	})
	if err := g.Wait(); err != nil {
		return diff.Summary{}, err
	}

	results := diff.Match(docA.Entities, docB.Entities, tolerance)
	summary, err := diff.Classify(results)
	if err != nil {
		return diff.Summary{}, err
	}
	log.LogCompare(ctx, tolerance, summary.Unchanged, summary.Removed, summary.Added)

	if outPath != "" {
		delta := diff.BuildDelta(docA, docB, results, cfg.markers)
		err := writer.Write(delta, outPath)
		log.LogWrite(ctx, outPath, err)
		if err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// CompareLabels loads two drawings and compares their part labels as
// multisets, ignoring geometry entirely.
func CompareLabels(pathA, pathB string, opts labels.ExtractOptions) (labels.Comparison, error) {
	docA, err := reader.Load(pathA)
	if err != nil {
		return labels.Comparison{}, fmt.Errorf("loading %s: %w", pathA, err)
	}
	docB, err := reader.Load(pathB)
	if err != nil {
		return labels.Comparison{}, fmt.Errorf("loading %s: %w", pathB, err)
	}
	listA, _ := labels.Extract(docA, opts)
	listB, _ := labels.Extract(docB, opts)
	return labels.CompareSets(listA, listB), nil
}

func count(doc *model.Document) int {
	if doc == nil {
		return 0
	}
	return doc.EntityCount()
}

// Drawing provides fluent access to the contents of one DXF file. The file
// is loaded lazily on the first terminal call; a load failure is reported by
// every subsequent call.
type Drawing struct {
	filename string
	doc      *model.Document
	opened   bool
	err      error
}

// Open prepares a Drawing for the given file. The file is not read until a
// terminal method is called.
func Open(filename string) *Drawing {
	return &Drawing{filename: filename}
}

// FromDocument wraps an already-parsed document in a Drawing accessor.
func FromDocument(doc *model.Document) *Drawing {
	return &Drawing{doc: doc, opened: true}
}

func (d *Drawing) ensure() error {
	if d.opened {
		return d.err
	}
	d.opened = true
	d.doc, d.err = reader.Load(d.filename)
	if d.err != nil {
		d.err = fmt.Errorf("loading %s: %w", d.filename, d.err)
	}
	return d.err
}

// Document returns the parsed document.
func (d *Drawing) Document() (*model.Document, error) {
	if err := d.ensure(); err != nil {
		return nil, err
	}
	return d.doc, nil
}

// Labels extracts part labels from the drawing's text entities.
func (d *Drawing) Labels(opts labels.ExtractOptions) ([]string, labels.Info, error) {
	if err := d.ensure(); err != nil {
		return nil, labels.Info{}, err
	}
	list, info := labels.Extract(d.doc, opts)
	return list, info, nil
}

// Structure returns the per-tag structural dump of the drawing.
func (d *Drawing) Structure() ([]structure.Row, error) {
	if err := d.ensure(); err != nil {
		return nil, err
	}
	return structure.Dump(d.doc), nil
}

// Outline returns a markdown outline of the drawing's sections, tables,
// blocks, and entities.
func (d *Drawing) Outline() ([]string, error) {
	if err := d.ensure(); err != nil {
		return nil, err
	}
	return structure.Outline(d.doc), nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
