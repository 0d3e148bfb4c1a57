// Package main provides the dxfdiff CLI for comparing DXF drawings and
// inspecting their contents.
//
// Modes:
//   - compare    : dxfdiff [-o delta.dxf] [-tol 1e-6] a.dxf b.dxf
//   - labels     : dxfdiff -labels drawing.dxf
//   - label diff : dxfdiff -label-diff a.dxf b.dxf
//   - structure  : dxfdiff -structure drawing.dxf
//   - outline    : dxfdiff -outline drawing.dxf
//   - partslist  : dxfdiff -partslist a.txt b.txt
//
// A TOML configuration file (-config) can set the tolerance, marker layer
// names and colors, and label filtering rules; flags override it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/dxfkit"
	"github.com/tsawler/dxfkit/labels"
	"github.com/tsawler/dxfkit/structure"
)

func main() {
	flag.Usage = func() {
		prog := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  compare    : %s [-o delta.dxf] [-tol 1e-6] a.dxf b.dxf\n", prog)
		fmt.Fprintf(os.Stderr, "  labels     : %s -labels drawing.dxf\n", prog)
		fmt.Fprintf(os.Stderr, "  label diff : %s -label-diff a.dxf b.dxf\n", prog)
		fmt.Fprintf(os.Stderr, "  structure  : %s -structure drawing.dxf\n", prog)
		fmt.Fprintf(os.Stderr, "  outline    : %s -outline drawing.dxf\n", prog)
		fmt.Fprintf(os.Stderr, "  partslist  : %s -partslist a.txt b.txt\n", prog)
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}

	// Modes
	labelsMode := flag.Bool("labels", false, "extract part labels from one drawing")
	labelDiffMode := flag.Bool("label-diff", false, "compare part labels between two drawings")
	structureMode := flag.Bool("structure", false, "dump one drawing's tags as CSV")
	outlineMode := flag.Bool("outline", false, "print one drawing's structure as markdown")
	partslistMode := flag.Bool("partslist", false, "compare two parts-list text files (one part per line)")

	// Output & tuning
	outFlag := flag.String("o", "", "path for the delta drawing (compare) or CSV (structure); default stdout for CSV, none for compare")
	tolFlag := flag.Float64("tol", 0, "comparison tolerance (overrides config; default 1e-6)")
	configFlag := flag.String("config", "", "path to TOML configuration file")
	noFilterFlag := flag.Bool("no-filter", false, "keep labels that look like reference designators")
	verboseFlag := flag.Bool("v", false, "verbose logging")

	flag.Parse()

	modes := 0
	for _, m := range []bool{*labelsMode, *labelDiffMode, *structureMode, *outlineMode, *partslistMode} {
		if m {
			modes++
		}
	}
	if modes > 1 {
		fmt.Fprintln(os.Stderr, "ERROR: -labels, -label-diff, -structure, -outline and -partslist are mutually exclusive")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fatal(err)
	}
	if *tolFlag != 0 {
		cfg.Tolerance = *tolFlag
	}
	if *noFilterFlag {
		cfg.Labels.FilterNonParts = false
	}
	if err := cfg.validate(); err != nil {
		fatal(err)
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	log := dxfkit.NewTextLogger(level).WithRunID(uuid.NewString())

	switch {
	case *labelsMode:
		err = runLabels(cfg, flag.Args())
	case *labelDiffMode:
		err = runLabelDiff(cfg, flag.Args())
	case *structureMode:
		err = runStructure(*outFlag, flag.Args())
	case *outlineMode:
		err = runOutline(flag.Args())
	case *partslistMode:
		err = runPartslist(flag.Args())
	default:
		err = runCompare(cfg, log, *outFlag, flag.Args())
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}

func oneArg(args []string) (string, error) {
	if len(args) != 1 {
		flag.Usage()
		return "", fmt.Errorf("expected one drawing, got %d arguments", len(args))
	}
	return args[0], nil
}

func twoArgs(args []string) (string, string, error) {
	if len(args) != 2 {
		flag.Usage()
		return "", "", fmt.Errorf("expected two drawings, got %d arguments", len(args))
	}
	return args[0], args[1], nil
}

func runCompare(cfg config, log *dxfkit.Logger, outPath string, args []string) error {
	pathA, pathB, err := twoArgs(args)
	if err != nil {
		return err
	}

	summary, err := dxfkit.CompareContext(context.Background(), pathA, pathB, outPath, cfg.Tolerance,
		dxfkit.WithLogger(log),
		dxfkit.WithMarkers(cfg.markerOptions()),
	)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	if summary.Changed() && outPath == "" {
		fmt.Println("(no output path given; pass -o to write the delta drawing)")
	}
	return nil
}

func runLabels(cfg config, args []string) error {
	path, err := oneArg(args)
	if err != nil {
		return err
	}
	list, info, err := dxfkit.Open(path).Labels(cfg.extractOptions())
	if err != nil {
		return err
	}
	for _, l := range list {
		fmt.Println(l)
	}
	fmt.Fprintf(os.Stderr, "%d extracted, %d filtered, %d kept\n",
		info.TotalExtracted, info.FilteredCount, info.FinalCount)
	return nil
}

func runLabelDiff(cfg config, args []string) error {
	pathA, pathB, err := twoArgs(args)
	if err != nil {
		return err
	}
	listA, _, err := dxfkit.Open(pathA).Labels(cfg.extractOptions())
	if err != nil {
		return err
	}
	listB, _, err := dxfkit.Open(pathB).Labels(cfg.extractOptions())
	if err != nil {
		return err
	}
	fmt.Println(labels.CompareSets(listA, listB).Markdown())

	ud, err := labels.UnifiedDiff(listA, listB)
	if err != nil {
		return err
	}
	if ud != "" {
		fmt.Println("```diff")
		fmt.Print(ud)
		fmt.Println("```")
	}
	return nil
}

func runStructure(outPath string, args []string) error {
	path, err := oneArg(args)
	if err != nil {
		return err
	}
	rows, err := dxfkit.Open(path).Structure()
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return structure.WriteCSV(out, rows)
}

func runPartslist(args []string) error {
	pathA, pathB, err := twoArgs(args)
	if err != nil {
		return err
	}
	listA, err := readLines(pathA)
	if err != nil {
		return err
	}
	listB, err := readLines(pathB)
	if err != nil {
		return err
	}
	fmt.Println(labels.CompareSets(listA, listB).Markdown())
	return nil
}

// readLines reads a parts list, one part per line, skipping blank lines.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func runOutline(args []string) error {
	path, err := oneArg(args)
	if err != nil {
		return err
	}
	lines, err := dxfkit.Open(path).Outline()
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}
