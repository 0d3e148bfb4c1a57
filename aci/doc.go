// Package aci maps between AutoCAD Color Index values and RGB colors.
//
// DXF files identify colors by index (group code 62) rather than by RGB
// triple. This package carries the portion of the standard palette the
// writer emits for marker layers, and can find the closest index for an
// arbitrary hex color so configuration files may specify colors either way.
package aci
