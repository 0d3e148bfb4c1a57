package structure

import "fmt"

// groupCodeNames maps exact group codes to their meaning.
var groupCodeNames = map[int]string{
	0:   "Entity type",
	1:   "Primary text value",
	2:   "Name",
	3:   "Additional text",
	5:   "Handle",
	6:   "Linetype name",
	7:   "Text style name",
	8:   "Layer name",
	9:   "Header variable name",
	39:  "Thickness",
	48:  "Linetype scale",
	62:  "Color number",
	66:  "Entities-follow flag",
	90:  "Integer count",
	100: "Subclass marker",
	102: "Control string",
	210: "Extrusion direction X",
	220: "Extrusion direction Y",
	230: "Extrusion direction Z",
	999: "Comment",
}

// DefineCode returns a human-readable definition of a DXF group code.
func DefineCode(code int) string {
	if name, ok := groupCodeNames[code]; ok {
		return name
	}
	switch {
	case code >= 10 && code <= 18:
		return fmt.Sprintf("X coordinate (point %d)", code-10)
	case code >= 20 && code <= 28:
		return fmt.Sprintf("Y coordinate (point %d)", code-20)
	case code >= 30 && code <= 38:
		return fmt.Sprintf("Z coordinate (point %d)", code-30)
	case code >= 40 && code <= 47:
		return "Floating point value"
	case code >= 50 && code <= 58:
		return "Angle (degrees)"
	case code >= 60 && code <= 79:
		return "Integer value"
	case code >= 91 && code <= 99:
		return "Integer value"
	case code >= 140 && code <= 149:
		return "Floating point value"
	case code >= 170 && code <= 179:
		return "Integer value"
	case code >= 280 && code <= 289:
		return "8-bit integer value"
	case code >= 300 && code <= 309:
		return "Arbitrary text"
	case code >= 310 && code <= 319:
		return "Binary chunk"
	case code >= 330 && code <= 369:
		return "Object reference"
	case code >= 370 && code <= 389:
		return "Lineweight / plot style"
	case code >= 1000 && code <= 1071:
		return "Extended data"
	default:
		return "Unclassified"
	}
}
