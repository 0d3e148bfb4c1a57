package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/tsawler/dxfkit/aci"
	"github.com/tsawler/dxfkit/diff"
	"github.com/tsawler/dxfkit/labels"
)

// Tolerance limits for the CLI. The library accepts any positive finite
// value; the command line restricts input to a range that is meaningful for
// drawing coordinates.
const (
	minTolerance = 1e-8
	maxTolerance = 1e-1
)

// config is the TOML configuration file layout. Every field has a default,
// so an empty or absent file is valid.
type config struct {
	Tolerance float64      `toml:"tolerance"`
	Markers   markerConfig `toml:"markers"`
	Labels    labelConfig  `toml:"labels"`

	// Resolved by validate so that color parsing happens exactly once.
	removedColor int
	addedColor   int
}

type markerConfig struct {
	RemovedLayer string `toml:"removed_layer"`
	AddedLayer   string `toml:"added_layer"`
	// Colors accept either an AutoCAD color index ("1") or a hex RGB
	// string ("#FF0000"), which is mapped to the nearest index.
	RemovedColor string `toml:"removed_color"`
	AddedColor   string `toml:"added_color"`
}

type labelConfig struct {
	FilterNonParts bool   `toml:"filter_non_parts"`
	Sort           string `toml:"sort"`
}

func defaultConfig() config {
	return config{
		Tolerance: 1e-6,
		Markers: markerConfig{
			RemovedLayer: "DIFF_REMOVED",
			AddedLayer:   "DIFF_ADDED",
			RemovedColor: strconv.Itoa(aci.Red),
			AddedColor:   strconv.Itoa(aci.Green),
		},
		Labels: labelConfig{
			FilterNonParts: true,
			Sort:           "asc",
		},
	}
}

// loadConfig reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) validate() error {
	if c.Tolerance < minTolerance || c.Tolerance > maxTolerance {
		return fmt.Errorf("tolerance %g outside valid range [%g, %g]", c.Tolerance, minTolerance, maxTolerance)
	}
	if c.Markers.RemovedLayer == "" || c.Markers.AddedLayer == "" {
		return errors.New("marker layer names must not be empty")
	}
	if strings.EqualFold(c.Markers.RemovedLayer, c.Markers.AddedLayer) {
		return errors.New("marker layer names must differ")
	}
	removed, err := resolveColor(c.Markers.RemovedColor)
	if err != nil {
		return fmt.Errorf("removed_color: %w", err)
	}
	added, err := resolveColor(c.Markers.AddedColor)
	if err != nil {
		return fmt.Errorf("added_color: %w", err)
	}
	c.removedColor, c.addedColor = removed, added
	if _, err := c.sortOrder(); err != nil {
		return err
	}
	return nil
}

// markerOptions returns the marker configuration with the colors resolved by
// validate. Call validate first.
func (c config) markerOptions() diff.MarkerOptions {
	return diff.MarkerOptions{
		RemovedLayer: c.Markers.RemovedLayer,
		AddedLayer:   c.Markers.AddedLayer,
		RemovedColor: c.removedColor,
		AddedColor:   c.addedColor,
	}
}

// resolveColor turns a color setting into an AutoCAD color index. Plain
// integers are taken as-is; anything else is parsed as a hex RGB string and
// snapped to the nearest palette entry.
func resolveColor(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 255 {
			return 0, fmt.Errorf("color index %d outside range 1-255", n)
		}
		return n, nil
	}
	return aci.Nearest(s)
}

func (c config) sortOrder() (labels.SortOrder, error) {
	switch strings.ToLower(c.Labels.Sort) {
	case "", "none":
		return labels.SortNone, nil
	case "asc":
		return labels.SortAsc, nil
	case "desc":
		return labels.SortDesc, nil
	default:
		return labels.SortNone, fmt.Errorf("unknown sort order %q (want none, asc, or desc)", c.Labels.Sort)
	}
}

func (c config) extractOptions() labels.ExtractOptions {
	order, _ := c.sortOrder()
	return labels.ExtractOptions{
		FilterNonParts: c.Labels.FilterNonParts,
		Sort:           order,
	}
}
