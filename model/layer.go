package model

import "strings"

// Layer describes one entry of the drawing's layer table.
type Layer struct {
	Name     string
	Flags    int
	Color    int    // ACI color number, negative when the layer is off
	Linetype string // linetype name, defaults to CONTINUOUS
}

// NewLayer returns a layer with default display attributes.
func NewLayer(name string, color int) Layer {
	return Layer{Name: name, Color: color, Linetype: "CONTINUOUS"}
}

// LayerTable is the ordered set of layer definitions of a document.
// Lookup is case-insensitive, as layer names are in DXF.
type LayerTable struct {
	layers []Layer
	index  map[string]int
}

// NewLayerTable creates an empty layer table.
func NewLayerTable() *LayerTable {
	return &LayerTable{index: make(map[string]int)}
}

// Add appends a layer, replacing an existing definition with the same name.
func (lt *LayerTable) Add(l Layer) {
	key := strings.ToUpper(l.Name)
	if i, ok := lt.index[key]; ok {
		lt.layers[i] = l
		return
	}
	lt.index[key] = len(lt.layers)
	lt.layers = append(lt.layers, l)
}

// Get returns the layer with the given name.
func (lt *LayerTable) Get(name string) (Layer, bool) {
	i, ok := lt.index[strings.ToUpper(name)]
	if !ok {
		return Layer{}, false
	}
	return lt.layers[i], true
}

// Has reports whether a layer with the given name is defined.
func (lt *LayerTable) Has(name string) bool {
	_, ok := lt.index[strings.ToUpper(name)]
	return ok
}

// All returns the layers in definition order. The returned slice is a copy.
func (lt *LayerTable) All() []Layer {
	out := make([]Layer, len(lt.layers))
	copy(out, lt.layers)
	return out
}

// Len returns the number of defined layers.
func (lt *LayerTable) Len() int {
	return len(lt.layers)
}

// Clone returns a deep copy of the table.
func (lt *LayerTable) Clone() *LayerTable {
	out := NewLayerTable()
	for _, l := range lt.layers {
		out.Add(l)
	}
	return out
}
