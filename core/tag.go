package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known group codes used throughout the library.
const (
	CodeEntityType = 0  // entity or structure marker (SECTION, LINE, ...)
	CodeText       = 1  // primary text value
	CodeName       = 2  // name (section name, block name, table name)
	CodeTextChunk  = 3  // additional text chunk (MTEXT continuation)
	CodeHandle     = 5  // entity handle (hex string)
	CodeLinetype   = 6  // linetype name
	CodeTextStyle  = 7  // text style name
	CodeLayer      = 8  // layer name
	CodeVariable   = 9  // header variable name
	CodeColor      = 62 // color number (ACI)
	CodeFlags      = 70 // integer flags
)

// Tag represents a single DXF group-code/value pair.
// The value is stored exactly as read so that tags the library does not
// interpret can be re-emitted without loss.
type Tag struct {
	Code  int
	Value string
}

// Int returns the tag value parsed as an integer.
func (t Tag) Int() (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(t.Value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("dxf: group %d: invalid integer %q", t.Code, t.Value)
	}
	return v, nil
}

// Float returns the tag value parsed as a floating point number.
func (t Tag) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("dxf: group %d: invalid number %q", t.Code, t.Value)
	}
	return v, nil
}

// String returns the tag in "code/value" display form. It is used in error
// messages and debug output, not for serialization.
func (t Tag) String() string {
	return fmt.Sprintf("%d/%s", t.Code, t.Value)
}

// IsEntityType reports whether the tag is a structure marker (group code 0).
func (t Tag) IsEntityType() bool {
	return t.Code == CodeEntityType
}

// FloatTag builds a tag from a float value using the shortest round-trippable
// decimal representation.
func FloatTag(code int, v float64) Tag {
	return Tag{Code: code, Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

// IntTag builds a tag from an integer value.
func IntTag(code int, v int) Tag {
	return Tag{Code: code, Value: strconv.Itoa(v)}
}

// IsCoordCode reports whether the group code carries a coordinate component
// (10-39: X on 10-18, Y on 20-28, Z on 30-38, plus elevation/thickness).
func IsCoordCode(code int) bool {
	return code >= 10 && code <= 39
}

// IsFloatCode reports whether the group code carries a scalar floating point
// value (radii, heights, scale factors on 40-48, angles on 50-58).
func IsFloatCode(code int) bool {
	return code >= 40 && code <= 58
}

// IsAngleCode reports whether the group code carries an angle in degrees.
func IsAngleCode(code int) bool {
	return code >= 50 && code <= 58
}
