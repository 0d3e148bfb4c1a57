package core

import (
	"bufio"
	"io"
	"strconv"
)

// TagWriter serializes tags back into the two-line DXF representation.
// Group codes are right-aligned in a three character field, matching the
// layout produced by common CAD exporters.
type TagWriter struct {
	w *bufio.Writer
}

// NewTagWriter creates a TagWriter over w.
func NewTagWriter(w io.Writer) *TagWriter {
	return &TagWriter{w: bufio.NewWriter(w)}
}

// Write emits a single tag.
func (tw *TagWriter) Write(t Tag) error {
	if err := tw.writeCode(t.Code); err != nil {
		return err
	}
	if _, err := tw.w.WriteString(t.Value); err != nil {
		return err
	}
	return tw.w.WriteByte('\n')
}

// WriteAll emits every tag in order.
func (tw *TagWriter) WriteAll(tags []Tag) error {
	for _, t := range tags {
		if err := tw.Write(t); err != nil {
			return err
		}
	}
	return nil
}

// WriteStr emits a string-valued tag.
func (tw *TagWriter) WriteStr(code int, value string) error {
	return tw.Write(Tag{Code: code, Value: value})
}

// WriteInt emits an integer-valued tag.
func (tw *TagWriter) WriteInt(code, value int) error {
	return tw.Write(IntTag(code, value))
}

// WriteFloat emits a float-valued tag.
func (tw *TagWriter) WriteFloat(code int, value float64) error {
	return tw.Write(FloatTag(code, value))
}

// Flush writes buffered output to the underlying writer.
func (tw *TagWriter) Flush() error {
	return tw.w.Flush()
}

func (tw *TagWriter) writeCode(code int) error {
	s := strconv.Itoa(code)
	for pad := 3 - len(s); pad > 0; pad-- {
		if err := tw.w.WriteByte(' '); err != nil {
			return err
		}
	}
	if _, err := tw.w.WriteString(s); err != nil {
		return err
	}
	return tw.w.WriteByte('\n')
}
