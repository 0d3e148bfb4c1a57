package aci

import (
	"errors"
	"fmt"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is returned when a color string cannot be parsed.
var ErrBadColor = errors.New("aci: invalid color")

// Named indexes for the standard colors.
const (
	Red     = 1
	Yellow  = 2
	Green   = 3
	Cyan    = 4
	Blue    = 5
	Magenta = 6
	White   = 7
)

// palette holds the indexes this package knows: the seven standard colors,
// the two dark grays that follow them, and the gray ramp at the top of the
// index range. The full 255-entry table is not needed for marker layers.
var palette = map[int]string{
	1:   "#FF0000",
	2:   "#FFFF00",
	3:   "#00FF00",
	4:   "#00FFFF",
	5:   "#0000FF",
	6:   "#FF00FF",
	7:   "#FFFFFF",
	8:   "#808080",
	9:   "#C0C0C0",
	250: "#333333",
	251: "#5B5B5B",
	252: "#848484",
	253: "#ADADAD",
	254: "#D6D6D6",
	255: "#FFFFFF",
}

// Hex returns the RGB hex string for a known color index.
func Hex(index int) (string, bool) {
	hex, ok := palette[index]
	return hex, ok
}

// Nearest returns the palette index whose color is closest to the given hex
// string, compared in Lab space. Ties break toward the lower index.
func Nearest(hex string) (int, error) {
	target, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadColor, hex)
	}

	indexes := make([]int, 0, len(palette))
	for idx := range palette {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	best := indexes[0]
	bestDist := math.Inf(1)
	for _, idx := range indexes {
		c, _ := colorful.Hex(palette[idx])
		if d := target.DistanceLab(c); d < bestDist {
			best = idx
			bestDist = d
		}
	}
	return best, nil
}
