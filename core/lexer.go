package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadTag is returned (wrapped) when the input cannot be tokenized as DXF
// tagged data: a non-numeric group code line or a code line with no value line
// following it.
var ErrBadTag = errors.New("dxf: malformed tag")

// TagReader tokenizes a stream of DXF tagged data into Tags.
type TagReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewTagReader creates a TagReader over r.
func NewTagReader(r io.Reader) *TagReader {
	sc := bufio.NewScanner(r)
	// Some CAD exporters emit very long MTEXT values on a single line.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &TagReader{scanner: sc}
}

// Next returns the next tag from the input. It returns io.EOF when the input
// is exhausted.
func (tr *TagReader) Next() (Tag, error) {
	codeLine, ok := tr.readLine()
	if !ok {
		if err := tr.scanner.Err(); err != nil {
			return Tag{}, err
		}
		return Tag{}, io.EOF
	}

	code, err := strconv.Atoi(strings.TrimSpace(codeLine))
	if err != nil {
		return Tag{}, fmt.Errorf("%w: line %d: group code %q is not numeric", ErrBadTag, tr.line, strings.TrimSpace(codeLine))
	}

	valueLine, ok := tr.readLine()
	if !ok {
		if err := tr.scanner.Err(); err != nil {
			return Tag{}, err
		}
		return Tag{}, fmt.Errorf("%w: line %d: group code %d has no value line", ErrBadTag, tr.line, code)
	}

	// Values keep interior whitespace; only the line terminator is stripped.
	return Tag{Code: code, Value: strings.TrimRight(valueLine, "\r")}, nil
}

// Line returns the 1-based line number of the most recently read line,
// for use in error reporting by callers.
func (tr *TagReader) Line() int {
	return tr.line
}

// ReadAll consumes the reader and returns every tag in order.
func (tr *TagReader) ReadAll() ([]Tag, error) {
	var tags []Tag
	for {
		tag, err := tr.Next()
		if err == io.EOF {
			return tags, nil
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
}

func (tr *TagReader) readLine() (string, bool) {
	if !tr.scanner.Scan() {
		return "", false
	}
	tr.line++
	return tr.scanner.Text(), true
}
