package dxfkit

import (
	"github.com/tsawler/dxfkit/diff"
)

// compareOptions holds configuration for a comparison run.
type compareOptions struct {
	markers diff.MarkerOptions
	logger  *Logger
}

// defaultCompareOptions returns the default comparison configuration:
// standard marker layers and no logging.
func defaultCompareOptions() compareOptions {
	return compareOptions{
		markers: diff.DefaultMarkers(),
		logger:  NoopLogger(),
	}
}

// Option configures a comparison run.
type Option func(*compareOptions)

// WithLogger sets the logger used during comparison. The default discards
// all output.
func WithLogger(l *Logger) Option {
	return func(o *compareOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMarkerLayers overrides the layer names that removed and added
// entities are moved to in the delta drawing.
func WithMarkerLayers(removed, added string) Option {
	return func(o *compareOptions) {
		if removed != "" {
			o.markers.RemovedLayer = removed
		}
		if added != "" {
			o.markers.AddedLayer = added
		}
	}
}

// WithMarkerColors overrides the color indexes assigned to the marker
// layers in the delta drawing.
func WithMarkerColors(removed, added int) Option {
	return func(o *compareOptions) {
		o.markers.RemovedColor = removed
		o.markers.AddedColor = added
	}
}

// WithMarkers replaces the full marker configuration.
func WithMarkers(m diff.MarkerOptions) Option {
	return func(o *compareOptions) {
		o.markers = m
	}
}
